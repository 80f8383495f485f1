package domain

// Category drives how long an activity is expected to take.
type Category string

const (
	CategoryAttraction Category = "attraction"
	CategoryRestaurant Category = "restaurant"
	CategoryHotel      Category = "hotel"
	CategoryOther      Category = "other"
)

// Duration returns the expected visit length in decimal hours.
func (c Category) Duration() float64 {
	switch c {
	case CategoryRestaurant:
		return 1.5
	case CategoryHotel:
		return 0
	default:
		return 2
	}
}

// ManualPin is a user-chosen day and "HH:MM" time that overrides automatic placement.
type ManualPin struct {
	Day  int    `json:"day"`
	Time string `json:"time"`
}

// Represents a point of interest the traveller wants to visit.
// Activities are owned by the trip; scheduling reads them and never mutates them.
type Activity struct {
	ID           string      `json:"id"`
	PlaceID      string      `json:"place_id,omitempty"`
	Name         string      `json:"name"`
	Address      string      `json:"address"`
	Location     Coordinates `json:"location"`
	Category     Category    `json:"type"`
	Rating       *float64    `json:"rating,omitempty"`
	PhotoURL     string      `json:"photo_url,omitempty"`
	PhoneNumber  string      `json:"phone_number,omitempty"`
	Website      string      `json:"website,omitempty"`
	OpeningHours []string    `json:"opening_hours,omitempty"`
	// Absent when the activity is placed automatically.
	ManualPin *ManualPin `json:"manual_schedule,omitempty"`
}

// Clone returns a copy that shares no mutable state with a.
func (a Activity) Clone() Activity {
	out := a
	if a.Rating != nil {
		r := *a.Rating
		out.Rating = &r
	}
	if a.OpeningHours != nil {
		out.OpeningHours = append([]string(nil), a.OpeningHours...)
	}
	if a.ManualPin != nil {
		p := *a.ManualPin
		out.ManualPin = &p
	}
	return out
}
