package domain

type EntryKind string

const (
	EntryActivity EntryKind = "activity"
	EntryFlight   EntryKind = "flight"
	EntryCheckIn  EntryKind = "check_in"
	EntryCheckOut EntryKind = "check_out"
)

type TravelMode string

const (
	TravelDriving TravelMode = "driving"
	TravelTransit TravelMode = "transit"
)

func (m TravelMode) Valid() bool { return m == TravelDriving || m == TravelTransit }

// TravelLeg is the estimated trip from one agenda entry to the next one.
type TravelLeg struct {
	Mode            TravelMode `json:"mode"`
	DurationText    string     `json:"duration"`
	DurationMinutes int        `json:"duration_minutes"`
	DistanceText    string     `json:"distance"`
}

// One item on a day's agenda. Exactly one of Placement, Flight or Accommodation is set.
type Entry struct {
	Kind          EntryKind      `json:"kind"`
	Time          string         `json:"time"`
	SortKey       float64        `json:"sort_key"`
	Placement     *Placement     `json:"placement,omitempty"`
	Activity      *Activity      `json:"activity,omitempty"`
	Flight        *Flight        `json:"flight,omitempty"`
	Accommodation *Accommodation `json:"accommodation,omitempty"`
	TravelToNext  *TravelLeg     `json:"travel_to_next,omitempty"`
}

// Title is a short human label for the entry.
func (e Entry) Title() string {
	switch e.Kind {
	case EntryActivity:
		if e.Activity != nil {
			return e.Activity.Name
		}
		if e.Placement != nil {
			return e.Placement.ActivityID
		}
	case EntryFlight:
		if e.Flight != nil {
			if first, ok := e.Flight.First(); ok {
				last, _ := e.Flight.Last()
				return "Flight " + first.DepartureAirport + " → " + last.ArrivalAirport
			}
		}
	case EntryCheckIn:
		if e.Accommodation != nil {
			return "Check in: " + e.Accommodation.Name
		}
	case EntryCheckOut:
		if e.Accommodation != nil {
			return "Check out: " + e.Accommodation.Name
		}
	}
	return string(e.Kind)
}

// DayForecast is a midday weather reading for one calendar date.
type DayForecast struct {
	Date        string `json:"date"`
	TempF       int    `json:"temp_f"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Humidity    int    `json:"humidity"`
	WindSpeed   int    `json:"wind_speed"`
}

type Day struct {
	Number             int          `json:"day"`
	Date               string       `json:"date"`
	Label              string       `json:"label"`
	Entries            []Entry      `json:"entries"`
	TotalTravelMinutes int          `json:"total_travel_minutes,omitempty"`
	TotalTravelText    string       `json:"total_travel,omitempty"`
	Forecast           *DayForecast `json:"forecast,omitempty"`
}

// Agenda holds every trip day in order, including days with no entries.
type Agenda struct {
	Days []Day `json:"days"`
	// Placements pinned to a day outside the trip.
	Orphans []Placement `json:"orphans,omitempty"`
}

// Day returns the 1-based trip day, or nil when out of range.
func (a *Agenda) Day(n int) *Day {
	if n < 1 || n > len(a.Days) {
		return nil
	}
	return &a.Days[n-1]
}

// Clone copies the day and entry slices so decorations don't leak into the original.
func (a Agenda) Clone() Agenda {
	out := Agenda{
		Days:    make([]Day, len(a.Days)),
		Orphans: append([]Placement(nil), a.Orphans...),
	}
	for i, d := range a.Days {
		d.Entries = append([]Entry(nil), d.Entries...)
		out.Days[i] = d
	}
	return out
}
