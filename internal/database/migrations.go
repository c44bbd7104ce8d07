package database

import (
	"fmt"
	"strings"

	"github.com/yukikurage/dashboard-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AddIndexes adds composite indexes for the per-user list queries. Single column and
// unique indexes live in the model tags.
func AddIndexes(db *gorm.DB, log *zap.Logger) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Task list: owner's tasks newest first
		{"tasks", "idx_tasks_user_created_at", "user_id, created_at"},
		// Calendar: owner's events by date
		{"events", "idx_events_user_date", "user_id, date"},
		// Team list: owner's memberships newest first
		{"team_members", "idx_team_members_owner_created_at", "added_by, created_at"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			log.Debug("Index already exists, skipping", zap.String("index", idx.name))
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info("Created index", zap.String("index", idx.name), zap.String("table", idx.table))
	}

	return nil
}

// BackfillSearchColumns fills full_name_lower for rows written before the column existed.
func BackfillSearchColumns(db *gorm.DB, log *zap.Logger) error {
	var users []models.User
	var filled int
	result := db.Select("id", "full_name").
		Where("full_name_lower = ? AND full_name <> ?", "", "").
		FindInBatches(&users, 200, func(tx *gorm.DB, batch int) error {
			for _, u := range users {
				err := db.Model(&models.User{}).
					Where("id = ?", u.ID).
					UpdateColumn("full_name_lower", strings.ToLower(u.FullName)).Error
				if err != nil {
					return err
				}
				filled++
			}
			return nil
		})
	if result.Error != nil {
		return fmt.Errorf("failed to backfill full_name_lower: %w", result.Error)
	}

	if filled > 0 {
		log.Info("Backfilled user search column", zap.Int("rows", filled))
	}
	return nil
}
