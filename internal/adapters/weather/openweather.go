package weather

import (
	"context"
	"errors"
	"fmt"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/platform/httpclient"
	"itinerary-planner-service/internal/platform/obs"
	"math"
	"net/url"
	"strings"
	"time"
)

// OpenWeather implements ForecastProvider with the OpenWeatherMap geocoding
// and 5-day / 3-hour forecast APIs. Temperatures are Fahrenheit, wind mph.
type OpenWeather struct {
	client  *httpclient.Client
	apiKey  string
	baseURL string
}

type geoResult struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

type forecastResponse struct {
	List []struct {
		DtTxt string `json:"dt_txt"`
		Main  struct {
			Temp     float64 `json:"temp"`
			Humidity int     `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
	} `json:"list"`
}

func NewOpenWeather(apiKey string, opts ...httpclient.Option) (*OpenWeather, error) {
	if apiKey == "" {
		return nil, errors.New("openweather api key is empty")
	}

	return &OpenWeather{
		client:  httpclient.New(10*time.Second, opts...),
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org",
	}, nil
}

func (o *OpenWeather) WithBaseURL(u string) *OpenWeather {
	o.baseURL = strings.TrimRight(u, "/")
	return o
}

// Forecast returns one midday reading per date: the first one between 11:00
// and 13:00 of that date.
func (o *OpenWeather) Forecast(ctx context.Context, destination string) (_ []domain.DayForecast, err error) {
	defer obs.Time(ctx, "openweather.Forecast")(&err)

	if strings.TrimSpace(destination) == "" {
		return nil, errors.New("forecast: destination must be non-empty")
	}

	q := url.Values{}
	q.Set("q", destination)
	q.Set("limit", "1")
	q.Set("appid", o.apiKey)

	var places []geoResult
	if err := o.client.GetJSON(ctx, o.baseURL+"/geo/1.0/direct?"+q.Encode(), &places); err != nil {
		return nil, fmt.Errorf("forecast: geocode %q: %w", destination, err)
	}
	if len(places) == 0 {
		return nil, fmt.Errorf("forecast: no location found for %q", destination)
	}

	q = url.Values{}
	q.Set("lat", fmt.Sprintf("%f", places[0].Lat))
	q.Set("lon", fmt.Sprintf("%f", places[0].Lon))
	q.Set("units", "imperial")
	q.Set("appid", o.apiKey)

	var fr forecastResponse
	if err := o.client.GetJSON(ctx, o.baseURL+"/data/2.5/forecast?"+q.Encode(), &fr); err != nil {
		return nil, fmt.Errorf("forecast: fetch for %q: %w", destination, err)
	}

	seen := map[string]struct{}{}
	out := make([]domain.DayForecast, 0, 5)
	for _, item := range fr.List {
		at, err := time.Parse(time.DateTime, item.DtTxt)
		if err != nil {
			continue
		}

		date := at.Format(time.DateOnly)
		if _, ok := seen[date]; ok || at.Hour() < 11 || at.Hour() > 13 {
			continue
		}
		seen[date] = struct{}{}

		f := domain.DayForecast{
			Date:      date,
			TempF:     int(math.Round(item.Main.Temp)),
			Humidity:  item.Main.Humidity,
			WindSpeed: int(math.Round(item.Wind.Speed)),
		}
		if len(item.Weather) > 0 {
			f.Description = item.Weather[0].Description
			f.Icon = item.Weather[0].Icon
		}
		out = append(out, f)
	}

	return out, nil
}
