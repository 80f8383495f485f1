package export

import (
	"fmt"
	"io"
	"itinerary-planner-service/internal/domain"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
)

// Lodging events get a short block so calendars render them.
const lodgingEventLength = 30 * time.Minute

// ICS renders an agenda as an iCalendar feed with trip-local times.
type ICS struct {
	Location *time.Location
	Now      func() time.Time
}

func NewICS(loc *time.Location) *ICS {
	if loc == nil {
		loc = time.UTC
	}
	return &ICS{Location: loc, Now: time.Now}
}

// Write emits one event per scheduled activity, flight and hotel check-in or
// check-out. Activities that could not be scheduled are left out, and a
// flight listed on several days is written once.
func (e *ICS) Write(w io.Writer, tripID, title string, agenda domain.Agenda) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//itinerary-planner-service//EN")
	if title != "" {
		cal.SetXWRCalName(title)
	}

	stamp := e.Now().UTC()
	flights := map[string]struct{}{}

	for _, day := range agenda.Days {
		date, err := domain.ParseDate(day.Date)
		if err != nil {
			return fmt.Errorf("ics: day %d: %w", day.Number, err)
		}

		for i, entry := range day.Entries {
			uid := fmt.Sprintf("%s-%d-%d@itinerary-planner", tripID, day.Number, i)

			switch entry.Kind {
			case domain.EntryActivity:
				if entry.Placement == nil || !entry.Placement.Scheduled() {
					continue
				}
				start, ok := e.at(date, entry.Time)
				if !ok {
					continue
				}
				length := time.Duration(0)
				if entry.Activity != nil {
					length = time.Duration(entry.Activity.Category.Duration() * float64(time.Hour))
				}

				ev := cal.AddEvent(uid)
				ev.SetDtStampTime(stamp)
				ev.SetStartAt(start)
				ev.SetEndAt(start.Add(length))
				ev.SetSummary(entry.Title())
				if entry.Activity != nil && entry.Activity.Address != "" {
					ev.SetLocation(entry.Activity.Address)
				}
				if desc := describe(entry); desc != "" {
					ev.SetDescription(desc)
				}

			case domain.EntryFlight:
				if entry.Flight == nil {
					continue
				}
				if _, dup := flights[entry.Flight.ID]; dup {
					continue
				}
				flights[entry.Flight.ID] = struct{}{}

				start, end, ok := e.flightSpan(*entry.Flight)
				if !ok {
					continue
				}

				ev := cal.AddEvent(fmt.Sprintf("%s-flight-%s@itinerary-planner", tripID, entry.Flight.ID))
				ev.SetDtStampTime(stamp)
				ev.SetStartAt(start)
				ev.SetEndAt(end)
				ev.SetSummary(entry.Title())
				ev.SetDescription(flightNumbers(*entry.Flight))

			case domain.EntryCheckIn, domain.EntryCheckOut:
				start, ok := e.at(date, entry.Time)
				if !ok {
					continue
				}

				ev := cal.AddEvent(uid)
				ev.SetDtStampTime(stamp)
				ev.SetStartAt(start)
				ev.SetEndAt(start.Add(lodgingEventLength))
				ev.SetSummary(entry.Title())
				if entry.Accommodation != nil {
					ev.SetLocation(entry.Accommodation.Address)
					if entry.Accommodation.ConfirmationNumber != "" {
						ev.SetDescription("Confirmation: " + entry.Accommodation.ConfirmationNumber)
					}
				}
			}
		}
	}

	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("ics: write: %w", err)
	}
	return nil
}

func (e *ICS) at(date domain.Date, clock string) (time.Time, bool) {
	h, err := domain.ParseClock(clock)
	if err != nil {
		return time.Time{}, false
	}
	return date.At(h, e.Location), true
}

func (e *ICS) flightSpan(f domain.Flight) (time.Time, time.Time, bool) {
	first, ok := f.First()
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	last, _ := f.Last()

	depDate, err := domain.ParseDate(first.DepartureDate)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	arrDate, err := domain.ParseDate(last.ArrivalDate)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}

	start, ok := e.at(depDate, first.DepartureTime)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	end, ok := e.at(arrDate, last.ArrivalTime)
	if !ok || end.Before(start) {
		end = start
	}
	return start, end, true
}

func describe(entry domain.Entry) string {
	var parts []string
	if entry.Placement != nil && entry.Placement.Note != "" {
		parts = append(parts, entry.Placement.Note)
	}
	if leg := entry.TravelToNext; leg != nil {
		parts = append(parts, fmt.Sprintf("Next stop: %s by %s (%s)", leg.DurationText, leg.Mode, leg.DistanceText))
	}
	return strings.Join(parts, "\n")
}

func flightNumbers(f domain.Flight) string {
	nums := make([]string, 0, len(f.Segments))
	for _, s := range f.Segments {
		if s.FlightNumber != "" {
			nums = append(nums, strings.TrimSpace(s.Airline+" "+s.FlightNumber))
		}
	}
	return strings.Join(nums, ", ")
}
