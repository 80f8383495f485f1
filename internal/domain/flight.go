package domain

import (
	"fmt"
	"time"
)

type Direction string

const (
	Outbound Direction = "outbound"
	Return   Direction = "return"
)

// One leg of a flight. Dates are "YYYY-MM-DD", times are 24-hour "HH:MM".
type FlightSegment struct {
	ID               string `json:"id,omitempty"`
	FlightNumber     string `json:"flight_number"`
	Airline          string `json:"airline"`
	DepartureAirport string `json:"departure_airport"`
	DepartureDate    string `json:"departure_date"`
	DepartureTime    string `json:"departure_time"`
	ArrivalAirport   string `json:"arrival_airport"`
	ArrivalDate      string `json:"arrival_date"`
	ArrivalTime      string `json:"arrival_time"`
	IsLayover        bool   `json:"is_layover,omitempty"`
}

// Departure returns the parsed departure date and decimal hour.
func (s FlightSegment) Departure() (Date, float64, error) {
	return parseDateTime(s.DepartureDate, s.DepartureTime)
}

// Arrival returns the parsed arrival date and decimal hour.
func (s FlightSegment) Arrival() (Date, float64, error) {
	return parseDateTime(s.ArrivalDate, s.ArrivalTime)
}

func parseDateTime(date, clock string) (Date, float64, error) {
	d, err := ParseDate(date)
	if err != nil {
		return Date{}, 0, err
	}

	h, err := ParseClock(clock)
	if err != nil {
		return Date{}, 0, err
	}

	return d, h, nil
}

// A flight is an ordered, non-empty sequence of segments travelling in one direction.
type Flight struct {
	ID        string          `json:"id"`
	Direction Direction       `json:"type"`
	Segments  []FlightSegment `json:"segments"`
	Notes     string          `json:"notes,omitempty"`
}

func (f Flight) First() (FlightSegment, bool) {
	if len(f.Segments) == 0 {
		return FlightSegment{}, false
	}
	return f.Segments[0], true
}

func (f Flight) Last() (FlightSegment, bool) {
	if len(f.Segments) == 0 {
		return FlightSegment{}, false
	}
	return f.Segments[len(f.Segments)-1], true
}

// RelevantDate is the date that ties a segment to a trip day: arrival for
// outbound flights, departure for return flights.
func (f Flight) RelevantDate(s FlightSegment) string {
	if f.Direction == Return {
		return s.DepartureDate
	}
	return s.ArrivalDate
}

// Endpoint returns the airport a traveller is at on the flight's trip day:
// the final arrival airport for outbound flights, the first departure airport for return flights.
func (f Flight) Endpoint() (string, bool) {
	if f.Direction == Return {
		s, ok := f.First()
		return s.DepartureAirport, ok
	}
	s, ok := f.Last()
	return s.ArrivalAirport, ok
}

func segmentInstant(date, clock string) (time.Time, error) {
	d, h, err := parseDateTime(date, clock)
	if err != nil {
		return time.Time{}, err
	}
	return d.midnight().Add(time.Duration(h * float64(time.Hour))).Round(time.Minute), nil
}

// TotalDuration spans the first departure to the last arrival, both taken as local wall-clock times.
func (f Flight) TotalDuration() (time.Duration, error) {
	first, ok := f.First()
	if !ok {
		return 0, fmt.Errorf("flight %s: no segments", f.ID)
	}
	last, _ := f.Last()

	start, err := segmentInstant(first.DepartureDate, first.DepartureTime)
	if err != nil {
		return 0, fmt.Errorf("flight %s departure: %w", f.ID, err)
	}

	end, err := segmentInstant(last.ArrivalDate, last.ArrivalTime)
	if err != nil {
		return 0, fmt.Errorf("flight %s arrival: %w", f.ID, err)
	}

	return end.Sub(start), nil
}

// Layover is the wait between two consecutive segments.
type Layover struct {
	Airport string
	Wait    time.Duration
}

func (f Flight) Layovers() ([]Layover, error) {
	out := make([]Layover, 0, len(f.Segments))
	for i := 0; i+1 < len(f.Segments); i++ {
		cur, next := f.Segments[i], f.Segments[i+1]

		arrive, err := segmentInstant(cur.ArrivalDate, cur.ArrivalTime)
		if err != nil {
			return nil, fmt.Errorf("flight %s segment %d arrival: %w", f.ID, i+1, err)
		}

		depart, err := segmentInstant(next.DepartureDate, next.DepartureTime)
		if err != nil {
			return nil, fmt.Errorf("flight %s segment %d departure: %w", f.ID, i+2, err)
		}

		out = append(out, Layover{Airport: cur.ArrivalAirport, Wait: depart.Sub(arrive)})
	}

	return out, nil
}

func (f Flight) Clone() Flight {
	out := f
	out.Segments = append([]FlightSegment(nil), f.Segments...)
	return out
}
