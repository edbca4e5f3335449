package services

import (
	"fmt"
	"log"
	"time"

	"flight-planner/config"
	"flight-planner/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDatabase - connect according to DB_DRIVER and migrate the plan log
// table. An empty driver disables persistence and returns a nil DB.
func OpenDatabase(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "":
		log.Println("⚠️  DB_DRIVER not set, plan logs are not persisted")
		return nil, nil
	case "mysql":
		if cfg.MySQLHost == "" || cfg.MySQLUser == "" || cfg.MySQLPassword == "" || cfg.MySQLDatabase == "" {
			return nil, fmt.Errorf("MySQL environment incomplete: MYSQL_HOST, MYSQL_USER, MYSQL_PASSWORD, MYSQL_DATABASE are required")
		}
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.MySQLUser, cfg.MySQLPassword, cfg.MySQLHost, cfg.MySQLPort, cfg.MySQLDatabase)
		dialector = mysql.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("DB connection failed: %w", err)
	}

	if err := db.AutoMigrate(&models.PlanLog{}); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	log.Printf("✅ %s connected and migrated", cfg.DBDriver)
	return db, nil
}

// GetRecentPlanLogs - newest plan logs first
func GetRecentPlanLogs(db *gorm.DB, limit int) ([]models.PlanLog, error) {
	var logs []models.PlanLog
	err := db.Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

// GetPlanLogsByStatus - plan logs with the given status, newest first
func GetPlanLogsByStatus(db *gorm.DB, status string, limit int) ([]models.PlanLog, error) {
	var logs []models.PlanLog
	err := db.Where("status = ?", status).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

// GetPlanStats - request counts per status over the last hours
func GetPlanStats(db *gorm.DB, hours int) (map[string]interface{}, error) {
	since := time.Now().Add(-time.Duration(hours) * time.Hour)

	var total int64
	if err := db.Model(&models.PlanLog{}).
		Where("created_at >= ?", since).
		Count(&total).Error; err != nil {
		return nil, err
	}

	var statusCounts []struct {
		Status string
		Count  int64
	}
	if err := db.Model(&models.PlanLog{}).
		Select("status, COUNT(*) as count").
		Where("created_at >= ?", since).
		Group("status").
		Scan(&statusCounts).Error; err != nil {
		return nil, err
	}

	var avgDuration float64
	db.Model(&models.PlanLog{}).
		Select("COALESCE(AVG(duration_ms), 0)").
		Where("created_at >= ? AND status = ?", since, models.PlanStatusOK).
		Scan(&avgDuration)

	statusMap := make(map[string]int64)
	for _, sc := range statusCounts {
		statusMap[sc.Status] = sc.Count
	}

	return map[string]interface{}{
		"total_requests":  total,
		"status_counts":   statusMap,
		"avg_duration_ms": avgDuration,
		"time_range":      fmt.Sprintf("Last %d hours", hours),
	}, nil
}
