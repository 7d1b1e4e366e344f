package trend

import (
	"context"
	"errors"
	"testing"
	"time"

	"weather-report/internal/forecast"

	"github.com/matryer/is"
)

func TestAnalyzeEmptySet(t *testing.T) {
	is := is.New(t)

	_, err := Analyze(forecast.Set{})
	is.True(errors.Is(err, ErrNoRecords))
}

func TestAnalyzeSingleRecord(t *testing.T) {
	is := is.New(t)

	set := forecast.Set{
		Records: []forecast.Record{
			{Timestamp: time.Now(), Temperature: 13.7},
		},
	}

	summary, err := Analyze(set)
	is.NoErr(err)
	is.Equal(summary.Min, 13.7)
	is.Equal(summary.Max, 13.7)
	is.Equal(summary.Mean, 13.7)
}

func TestAnalyzeSampleSet(t *testing.T) {
	is := is.New(t)

	set, err := forecast.NewSampleSource().Fetch(context.Background(), "London")
	is.NoErr(err)

	summary, err := Analyze(set)
	is.NoErr(err)

	// Exhaustive evaluation of 20 + ((i%8)-4) + (i%3) over i=0..39:
	// minimum 16 (i=0, 24), maximum 25 (i=23), sum 819.
	is.Equal(summary.Min, 16.0)
	is.Equal(summary.Max, 25.0)
	is.Equal(summary.Mean, 819.0/40.0)

	is.True(summary.Min <= summary.Mean)
	is.True(summary.Mean <= summary.Max)
}

func TestAnalyzeBoundsHold(t *testing.T) {
	is := is.New(t)

	set := forecast.Set{
		Records: []forecast.Record{
			{Temperature: -3.2},
			{Temperature: 0},
			{Temperature: 7.9},
			{Temperature: 7.9},
		},
	}

	summary, err := Analyze(set)
	is.NoErr(err)
	is.Equal(summary.Min, -3.2)
	is.Equal(summary.Max, 7.9)
	is.True(summary.Min <= summary.Mean)
	is.True(summary.Mean <= summary.Max)
}
