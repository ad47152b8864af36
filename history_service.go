package main

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type HistoryService struct {
	db *gorm.DB
}

// NewHistoryService opens the share journal. The journal is telemetry only:
// nothing in the share decision path reads it back.
func NewHistoryService(dbPath string) (*HistoryService, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	service := &HistoryService{
		db: db,
	}

	if err := service.runMigrations(); err != nil {
		return nil, fmt.Errorf("failed to run history migrations: %w", err)
	}

	return service, nil
}

func (s *HistoryService) runMigrations() error {
	return s.db.AutoMigrate(
		&ShareLogModel{},
		&SkipLogModel{},
		&CycleLogModel{},
	)
}

func (s *HistoryService) LogShare(share ShareLogModel) error {
	share.SharedAt = time.Now()
	return s.db.Create(&share).Error
}

func (s *HistoryService) LogSkip(skip SkipLogModel) error {
	skip.SkippedAt = time.Now()
	return s.db.Create(&skip).Error
}

func (s *HistoryService) LogCycle(cycle CycleLogModel) error {
	cycle.FinishedAt = time.Now()
	return s.db.Create(&cycle).Error
}

// GetShareCountSince counts reshares that actually went out (dry runs and
// failed attempts excluded).
func (s *HistoryService) GetShareCountSince(since time.Time) (int64, error) {
	var count int64
	err := s.db.Model(&ShareLogModel{}).
		Where("shared_at >= ? AND outcome = ?", since, SHARE_OUTCOME_SHARED).
		Count(&count).Error
	return count, err
}

func (s *HistoryService) GetRecentShares(limit int) ([]ShareLogModel, error) {
	var shares []ShareLogModel
	err := s.db.Order("shared_at DESC").Limit(limit).Find(&shares).Error
	return shares, err
}

// GetDailyShareStats returns per-day share attempt counts for the last days.
func (s *HistoryService) GetDailyShareStats(days int) ([]map[string]interface{}, error) {
	var results []map[string]interface{}
	now := time.Now()

	for i := days - 1; i >= 0; i-- {
		dayStart := now.AddDate(0, 0, -i).Truncate(24 * time.Hour)
		dayEnd := dayStart.Add(24 * time.Hour)

		var count int64
		err := s.db.Model(&ShareLogModel{}).
			Where("shared_at >= ? AND shared_at < ?", dayStart, dayEnd).
			Count(&count).Error
		if err != nil {
			return nil, err
		}

		results = append(results, map[string]interface{}{
			"date":  dayStart.Format("2006-01-02"),
			"count": count,
		})
	}

	return results, nil
}

// CleanupOldRecords hard-deletes journal rows older than the given number of days.
func (s *HistoryService) CleanupOldRecords(days int) error {
	cutoffDate := time.Now().AddDate(0, 0, -days)

	log.Printf("🧹 Cleaning up history database records older than %d days (before %s)", days, cutoffDate.Format("2006-01-02"))

	result := s.db.Unscoped().Where("created_at < ?", cutoffDate).Delete(&ShareLogModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to cleanup share logs: %w", result.Error)
	}
	log.Printf("🧹 Cleaned up %d share log records", result.RowsAffected)

	result = s.db.Unscoped().Where("created_at < ?", cutoffDate).Delete(&SkipLogModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to cleanup skip logs: %w", result.Error)
	}
	log.Printf("🧹 Cleaned up %d skip log records", result.RowsAffected)

	result = s.db.Unscoped().Where("created_at < ?", cutoffDate).Delete(&CycleLogModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to cleanup cycle logs: %w", result.Error)
	}
	log.Printf("🧹 Cleaned up %d cycle log records", result.RowsAffected)

	return nil
}

// VacuumDatabase runs VACUUM command to reclaim space
func (s *HistoryService) VacuumDatabase() error {
	log.Printf("🧹 Running VACUUM on history database to reclaim space...")
	err := s.db.Exec("VACUUM").Error
	if err != nil {
		return fmt.Errorf("failed to vacuum history database: %w", err)
	}
	log.Printf("✅ VACUUM completed successfully")
	return nil
}

// GetHistoryStats returns record counts and the journal's time range.
func (s *HistoryService) GetHistoryStats() (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var shareCount int64
	s.db.Model(&ShareLogModel{}).Count(&shareCount)
	stats["share_logs"] = shareCount

	var skipCount int64
	s.db.Model(&SkipLogModel{}).Count(&skipCount)
	stats["skip_logs"] = skipCount

	var cycleCount int64
	s.db.Model(&CycleLogModel{}).Count(&cycleCount)
	stats["cycle_logs"] = cycleCount

	var oldestShare ShareLogModel
	s.db.Order("created_at ASC").First(&oldestShare)
	if oldestShare.ID != 0 {
		stats["oldest_record"] = oldestShare.CreatedAt.Format("2006-01-02 15:04:05")
	}

	var newestShare ShareLogModel
	s.db.Order("created_at DESC").First(&newestShare)
	if newestShare.ID != 0 {
		stats["newest_record"] = newestShare.CreatedAt.Format("2006-01-02 15:04:05")
	}

	return stats, nil
}

// Close closes the history database connection
func (s *HistoryService) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
