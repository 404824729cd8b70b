package migrations

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/northpole96/habit/internal/domain/habits"
	"github.com/northpole96/habit/internal/infrastructure/persistence/sqlite/connection"
)

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *connection.Database, logger *zap.Logger) error {
	logger.Info("Starting automatic database migration...")

	models := []interface{}{
		&habits.Habit{},
		&habits.ActivityLog{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		logger.Error("Failed to migrate database schema", zap.Error(err))
		return fmt.Errorf("failed to migrate database schema: %w", err)
	}

	logger.Info("Database migration completed successfully")
	return nil
}
