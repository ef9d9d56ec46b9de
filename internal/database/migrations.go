package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	// pg_indexes is postgres-only; AutoMigrate already created the
	// tag-declared indexes on the other drivers.
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Task indexes for team listings and the calendar view
		{"tasks", "idx_tasks_status", "status"},
		{"tasks", "idx_tasks_deadline", "deadline"},
		{"tasks", "idx_tasks_created_at", "created_at"},

		// Membership lookups by user (composite PK covers team_id prefix)
		{"team_members", "idx_team_members_user_id", "user_id"},

		// Ordered comment listings per task
		{"comments", "idx_comments_task_created", "task_id, created_at"},

		// Average-score join and window
		{"evaluations", "idx_evaluations_evaluator_id", "evaluator_id"},
		{"evaluations", "idx_evaluations_created_at", "created_at"},

		// Meetings-for-member join and the calendar view
		{"meeting_participants", "idx_meeting_participants_user_id", "user_id"},
		{"meetings", "idx_meetings_date", "date"},
	}

	for _, idx := range indexes {
		// Check if index already exists
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		logrus.Infof("Created index %s on %s(%s)", idx.name, idx.table, idx.columns)
	}

	return nil
}
