package forecast

import (
	"context"
	"time"
)

// Record is a single forecast measurement.
type Record struct {
	Timestamp   time.Time `json:"timestamp"`
	Temperature float64   `json:"temperature"` // °C
	Humidity    float64   `json:"humidity"`    // percent
	WindSpeed   float64   `json:"wind_speed"`  // m/s
}

// Set is the ordered collection of records returned by one fetch.
// It is replaced wholesale on every fetch, never merged.
type Set struct {
	City     string    `json:"city"`
	Provider string    `json:"provider"`
	Fetched  time.Time `json:"fetched"`
	Records  []Record  `json:"records"`
}

// Source abstracts a forecast data source.
type Source interface {
	Name() string
	Fetch(ctx context.Context, city string) (Set, error)
}
