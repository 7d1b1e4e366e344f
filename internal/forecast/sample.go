package forecast

import (
	"context"
	"time"
)

const (
	sampleBaseTemp    = 20.0
	sampleRecordCount = 40 // 5 days * 8 measurements per day
	sampleStep        = 3 * time.Hour
)

// SampleSource generates a deterministic synthetic forecast. It is a demo
// fixture: the values follow a fixed periodic formula and do not depend on
// the requested city.
type SampleSource struct {
	now func() time.Time
}

func NewSampleSource() *SampleSource {
	return &SampleSource{now: time.Now}
}

func (s *SampleSource) Name() string {
	return "sample"
}

func (s *SampleSource) Fetch(_ context.Context, city string) (Set, error) {
	now := s.now()

	records := make([]Record, 0, sampleRecordCount)
	for i := 0; i < sampleRecordCount; i++ {
		tempVariation := float64(i%8) - 4 // daily swing
		records = append(records, Record{
			Timestamp:   now.Add(time.Duration(i) * sampleStep),
			Temperature: sampleBaseTemp + tempVariation + float64(i%3),
			Humidity:    60 + float64(i%20),
			WindSpeed:   5 + float64(i%10),
		})
	}

	return Set{
		City:     city,
		Provider: s.Name(),
		Fetched:  now,
		Records:  records,
	}, nil
}
