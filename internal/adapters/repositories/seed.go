package repositories

import (
	"encoding/json"
	"fmt"
	"itinerary-planner-service/internal/domain"
	"os"
)

// Populate the repository with trips from a JSON file holding an array of trips.
// It returns how many trips were stored.
func SeedFromJSON(repo *MemoryTripRepository, jsonPath string) (int, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed trips: read %q: %w", jsonPath, err)
	}

	var data []domain.Trip
	if err := json.Unmarshal(bytes, &data); err != nil {
		return 0, fmt.Errorf("seed trips: parse json: %w", err)
	}

	for i, item := range data {
		if err := repo.Put(item); err != nil {
			return i, fmt.Errorf("seed trips: item at index %d: %w", i+1, err)
		}
	}

	return len(data), nil
}
