package database

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"fittrack/internal/middleware"
	"fittrack/internal/models"

	"gorm.io/gorm"
)

// ApplySchema applies the versioned schema file at path. Every statement is
// written as CREATE TABLE IF NOT EXISTS / CREATE INDEX IF NOT EXISTS, so the
// call is idempotent and safe at every startup.
//
// When the schema file is missing the store degrades to a users-only fallback
// schema. That is a documented degraded mode, not an error: the app still
// starts and auth works, while plan and log tables are absent until the
// schema file is deployed.
func ApplySchema(db *gorm.DB, path string) error {
	script, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to read schema file %s: %w", path, err)
		}
		middleware.Logger.Warn("Schema file not found, creating minimal fallback schema",
			slog.String("path", path))
		return db.AutoMigrate(&models.User{})
	}

	for _, stmt := range splitStatements(string(script)) {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}

	middleware.Logger.Info("Database schema applied", slog.String("path", path))
	return nil
}

// MigrateAll runs GORM AutoMigrate over the full model registry. It backs
// cmd/migrate and test setup, where the SQL schema file may not be on disk.
func MigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(PersistentModels()...)
}

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Session{},
		&models.WorkoutPlan{},
		&models.WorkoutDay{},
		&models.Exercise{},
		&models.WorkoutExercise{},
		&models.WorkoutLog{},
		&models.ExerciseLog{},
		&models.DietPlan{},
		&models.MealPlan{},
		&models.ShoppingListItem{},
		&models.FoodInventoryItem{},
		&models.MealLog{},
		&models.ProgressEntry{},
	}
}

// splitStatements breaks a schema script into individual statements. Comment
// lines are stripped so trailing semicolons inside them cannot confuse the
// split.
func splitStatements(script string) []string {
	var b strings.Builder
	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "--") {
			continue
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	var stmts []string
	for _, stmt := range strings.Split(b.String(), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}
