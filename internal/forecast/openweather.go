package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const openWeatherForecastURL = "https://api.openweathermap.org/data/2.5/forecast"

// OpenWeatherSource fetches the 5-day/3-hour forecast from OpenWeatherMap.
type OpenWeatherSource struct {
	apiKey  string
	country string
	units   string
	baseURL string
	client  *http.Client
}

func NewOpenWeatherSource(apiKey, country, units string) *OpenWeatherSource {
	if units == "" {
		units = "metric"
	}
	return &OpenWeatherSource{
		apiKey:  apiKey,
		country: country,
		units:   units,
		baseURL: openWeatherForecastURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (s *OpenWeatherSource) Name() string {
	return "openweather"
}

type openWeatherForecastResponse struct {
	City struct {
		Name string `json:"name"`
	} `json:"city"`
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity float64 `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
	} `json:"list"`
}

func (s *OpenWeatherSource) Fetch(ctx context.Context, city string) (Set, error) {
	if s.apiKey == "" {
		return Set{}, fmt.Errorf("openweather api key is empty")
	}
	if city == "" {
		return Set{}, fmt.Errorf("openweather city is empty")
	}

	query := url.Values{}
	query.Set("appid", s.apiKey)
	query.Set("units", s.units)
	if s.country != "" {
		query.Set("q", fmt.Sprintf("%s,%s", city, s.country))
	} else {
		query.Set("q", city)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return Set{}, fmt.Errorf("openweather request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return Set{}, fmt.Errorf("openweather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Set{}, fmt.Errorf("openweather bad status: %s", resp.Status)
	}

	var payload openWeatherForecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Set{}, fmt.Errorf("openweather decode: %w", err)
	}

	if len(payload.List) == 0 {
		return Set{}, fmt.Errorf("openweather returned no forecast entries for %q", city)
	}

	records := make([]Record, 0, len(payload.List))
	for _, item := range payload.List {
		records = append(records, Record{
			Timestamp:   time.Unix(item.Dt, 0).UTC(),
			Temperature: item.Main.Temp,
			Humidity:    item.Main.Humidity,
			WindSpeed:   item.Wind.Speed,
		})
	}

	name := payload.City.Name
	if name == "" {
		name = city
	}

	return Set{
		City:     name,
		Provider: s.Name(),
		Fetched:  time.Now(),
		Records:  records,
	}, nil
}
