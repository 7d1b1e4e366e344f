package trend

import (
	"errors"

	"weather-report/internal/forecast"
)

// ErrNoRecords is returned when a forecast set has no measurements to reduce.
var ErrNoRecords = errors.New("forecast set contains no records")

// Summary holds the temperature statistics for one forecast set.
type Summary struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
}

// Analyze reduces a forecast set to min/max/mean temperature in one pass.
func Analyze(set forecast.Set) (Summary, error) {
	if len(set.Records) == 0 {
		return Summary{}, ErrNoRecords
	}

	first := set.Records[0].Temperature
	summary := Summary{Min: first, Max: first}

	sum := 0.0
	for _, r := range set.Records {
		if r.Temperature < summary.Min {
			summary.Min = r.Temperature
		}
		if r.Temperature > summary.Max {
			summary.Max = r.Temperature
		}
		sum += r.Temperature
	}

	summary.Mean = sum / float64(len(set.Records))
	return summary, nil
}
