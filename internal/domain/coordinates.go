package domain

import "fmt"

// Immutable geographic coordinates (latitude, longitude).
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lng, c.Lat} }

// Key renders coordinates with fixed precision so they can be used as cache keys.
func (c Coordinates) Key() string { return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lng) }

// IsZero reports whether the coordinates were never set.
func (c Coordinates) IsZero() bool { return c.Lat == 0 && c.Lng == 0 }
