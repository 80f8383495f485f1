package services

import "itinerary-planner-service/internal/domain"

// AttachForecasts returns a copy of agenda with each day's forecast set when
// one is available for its date.
func AttachForecasts(agenda domain.Agenda, forecasts []domain.DayForecast) domain.Agenda {
	out := agenda.Clone()

	byDate := make(map[string]domain.DayForecast, len(forecasts))
	for _, f := range forecasts {
		if _, ok := byDate[f.Date]; !ok {
			byDate[f.Date] = f
		}
	}

	for i := range out.Days {
		if f, ok := byDate[out.Days[i].Date]; ok {
			out.Days[i].Forecast = &f
		}
	}

	return out
}
