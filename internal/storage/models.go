package storage

import (
	"time"

	"gorm.io/gorm"
)

// ReportRun is one completed report pipeline execution.
type ReportRun struct {
	gorm.Model
	City        string    `json:"city"`
	Provider    string    `json:"provider"`
	FetchedAt   time.Time `gorm:"index" json:"fetched_at"`
	RecordCount int       `json:"record_count"`

	// Trend statistics
	MinTemp  float64 `json:"min_temp_c"`
	MaxTemp  float64 `json:"max_temp_c"`
	MeanTemp float64 `json:"mean_temp_c"`

	OutputPath string `json:"output_path"`
}

// RunRecord is a single measurement belonging to a stored run.
type RunRecord struct {
	gorm.Model
	RunID       uint      `gorm:"index" json:"run_id"`
	Timestamp   time.Time `json:"timestamp"`
	Temperature float64   `json:"temperature_c"`
	Humidity    float64   `json:"humidity_pct"`
	WindSpeed   float64   `json:"wind_speed_ms"`
}
