package services

import (
	"context"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/ports"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"
)

const defaultTravelConcurrency = 5

type TravelOptions struct {
	Mode domain.TravelMode
	// Upper bound on lookups in flight at once. Zero means 5.
	Concurrency int
}

// TravelSummary counts what an augmentation pass managed to resolve.
type TravelSummary struct {
	Mode      domain.TravelMode `json:"mode"`
	Pairs     int               `json:"pairs"`
	Estimated int               `json:"estimated"`
	Failed    int               `json:"failed"`
}

// locator is how an entry resolves to a point on the map.
type locator struct {
	coords  domain.Coordinates
	address string
	known   bool
}

type pairJob struct {
	day, entry int
	from, to   domain.Coordinates
}

// AugmentTravel returns a copy of agenda where every entry that is followed by
// another locatable entry on the same day carries a TravelToNext estimate, and
// every day carries its total travel time.
//
// Activities resolve to their stored coordinates, hotels by address and
// flights through their airport on that day. Activities without a scheduled
// time are not part of any pair even when they have coordinates, since they
// have no place in the day's order. Lookups that fail only leave their pair
// without an estimate. The only error is ctx being done, in which case the
// input agenda is returned untouched.
func AugmentTravel(
	ctx context.Context,
	agenda domain.Agenda,
	opts TravelOptions,
	routing ports.RoutingProvider,
	geocoder ports.Geocoder,
) (domain.Agenda, TravelSummary, error) {
	var summary TravelSummary
	if routing == nil {
		return agenda, summary, nil
	}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = defaultTravelConcurrency
	}
	mode := opts.Mode
	if !mode.Valid() {
		mode = domain.TravelDriving
	}

	out := agenda.Clone()

	// Locate every entry, collecting the distinct addresses still to geocode.
	locs := make([][]locator, len(out.Days))
	var addresses []string
	seen := map[string]int{}
	for d, day := range out.Days {
		locs[d] = make([]locator, len(day.Entries))
		for i, e := range day.Entries {
			loc := locate(e)
			if !loc.known && loc.address != "" && geocoder != nil {
				if _, ok := seen[loc.address]; !ok {
					seen[loc.address] = len(addresses)
					addresses = append(addresses, loc.address)
				}
			}
			locs[d][i] = loc
		}
	}

	coords := make([]*domain.Coordinates, len(addresses))
	g := new(errgroup.Group)
	g.SetLimit(limit)
	for i, addr := range addresses {
		g.Go(func() error {
			c, err := geocoder.Geocode(ctx, addr)
			if err != nil {
				if ctx.Err() == nil {
					log.Printf("travel: geocode address=%q err=%v", addr, err)
				}
				return nil
			}
			coords[i] = &c
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return agenda, summary, err
	}

	for d := range locs {
		for i := range locs[d] {
			loc := &locs[d][i]
			if loc.known || loc.address == "" {
				continue
			}
			if idx, ok := seen[loc.address]; ok && coords[idx] != nil {
				loc.coords = *coords[idx]
				loc.known = true
			}
		}
	}

	var jobs []pairJob
	for d := range locs {
		for i := 0; i+1 < len(locs[d]); i++ {
			from, to := locs[d][i], locs[d][i+1]
			if from.known && to.known {
				jobs = append(jobs, pairJob{day: d, entry: i, from: from.coords, to: to.coords})
			}
		}
	}
	summary.Mode = mode
	summary.Pairs = len(jobs)

	legs := make([]*domain.TravelLeg, len(jobs))
	g = new(errgroup.Group)
	g.SetLimit(limit)
	for i, job := range jobs {
		g.Go(func() error {
			est, err := routing.Estimate(ctx, job.from, job.to, mode)
			if err != nil {
				if ctx.Err() == nil {
					log.Printf("travel: estimate day=%d entry=%d mode=%s err=%v", job.day+1, job.entry, mode, err)
				}
				return nil
			}
			legs[i] = &domain.TravelLeg{
				Mode:            mode,
				DurationText:    est.DurationText,
				DurationMinutes: est.DurationMinutes(),
				DistanceText:    est.DistanceText,
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return agenda, TravelSummary{}, err
	}

	for i, job := range jobs {
		leg := legs[i]
		if leg == nil {
			summary.Failed++
			continue
		}
		summary.Estimated++

		day := &out.Days[job.day]
		day.Entries[job.entry].TravelToNext = leg
		day.TotalTravelMinutes += leg.DurationMinutes
	}

	for d := range out.Days {
		if m := out.Days[d].TotalTravelMinutes; m > 0 {
			out.Days[d].TotalTravelText = domain.FormatMinutes(m)
		}
	}

	return out, summary, nil
}

func locate(e domain.Entry) locator {
	switch e.Kind {
	case domain.EntryActivity:
		if e.Placement != nil && !e.Placement.Scheduled() {
			return locator{}
		}
		if e.Activity == nil {
			return locator{}
		}
		if !e.Activity.Location.IsZero() {
			return locator{coords: e.Activity.Location, known: true}
		}
		return locator{address: strings.TrimSpace(e.Activity.Address)}

	case domain.EntryFlight:
		if e.Flight == nil {
			return locator{}
		}
		airport, ok := e.Flight.Endpoint()
		if !ok || strings.TrimSpace(airport) == "" {
			return locator{}
		}
		return locator{address: strings.TrimSpace(airport) + " Airport"}

	case domain.EntryCheckIn, domain.EntryCheckOut:
		if e.Accommodation == nil {
			return locator{}
		}
		return locator{address: strings.TrimSpace(e.Accommodation.Address)}
	}
	return locator{}
}
