package storage

import (
	"fmt"
	"time"

	"weather-report/internal/forecast"
	"weather-report/internal/trend"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	db *gorm.DB
}

func NewDatabase(path string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Auto-migrate the schema
	if err := db.AutoMigrate(&ReportRun{}, &RunRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Database{db: db}, nil
}

// SaveRun stores a completed run and all of its measurements, returning the run ID.
func (d *Database) SaveRun(set forecast.Set, summary trend.Summary, outputPath string) (uint, error) {
	run := &ReportRun{
		City:        set.City,
		Provider:    set.Provider,
		FetchedAt:   set.Fetched,
		RecordCount: len(set.Records),
		MinTemp:     summary.Min,
		MaxTemp:     summary.Max,
		MeanTemp:    summary.Mean,
		OutputPath:  outputPath,
	}

	err := d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(run).Error; err != nil {
			return err
		}

		if len(set.Records) == 0 {
			return nil
		}

		records := make([]RunRecord, 0, len(set.Records))
		for _, r := range set.Records {
			records = append(records, RunRecord{
				RunID:       run.ID,
				Timestamp:   r.Timestamp,
				Temperature: r.Temperature,
				Humidity:    r.Humidity,
				WindSpeed:   r.WindSpeed,
			})
		}
		return tx.Create(&records).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to save run: %w", err)
	}

	return run.ID, nil
}

func (d *Database) RecentRuns(limit int) ([]ReportRun, error) {
	var runs []ReportRun
	result := d.db.Order("fetched_at desc").Limit(limit).Find(&runs)
	if result.Error != nil {
		return nil, result.Error
	}
	return runs, nil
}

func (d *Database) RunRecords(runID uint) ([]RunRecord, error) {
	var records []RunRecord
	result := d.db.Where("run_id = ?", runID).
		Order("timestamp asc").
		Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}
	return records, nil
}

func (d *Database) RunsByRange(from, to time.Time) ([]ReportRun, error) {
	var runs []ReportRun
	result := d.db.Where("fetched_at BETWEEN ? AND ?", from, to).
		Order("fetched_at desc").
		Find(&runs)
	if result.Error != nil {
		return nil, result.Error
	}
	return runs, nil
}

func (d *Database) CleanOldRuns(olderThan time.Duration) error {
	cutoff := time.Now().Add(-olderThan)

	var stale []ReportRun
	if err := d.db.Where("fetched_at < ?", cutoff).Find(&stale).Error; err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(stale))
	for _, run := range stale {
		ids = append(ids, run.ID)
	}

	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("run_id IN ?", ids).Delete(&RunRecord{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&ReportRun{}).Error
	})
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
