package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fittrack/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WorkoutRepository defines persistence operations for workout plans and logs.
type WorkoutRepository interface {
	SavePlan(ctx context.Context, userID uint, input models.WorkoutPlanInput) (uint, error)
	GetPlans(ctx context.Context, userID uint) ([]models.WorkoutPlan, error)
	GetPlanDetail(ctx context.Context, userID, planID uint) (*models.WorkoutPlan, error)
	DeletePlan(ctx context.Context, userID, planID uint) error
	LogWorkout(ctx context.Context, userID uint, input models.WorkoutLogInput) (uint, error)
	History(ctx context.Context, userID uint, dateRange string) ([]models.WorkoutHistoryRow, error)
}

type workoutRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewWorkoutRepository returns a new WorkoutRepository implementation.
func NewWorkoutRepository(db *gorm.DB) WorkoutRepository {
	return &workoutRepository{db: db, now: time.Now}
}

// SavePlan persists a plan, its days, the exercise catalog upserts and the
// day-exercise links as one transaction. Catalog rows are deduplicated by
// name with an atomic insert-or-ignore followed by a fetch, never a separate
// existence check.
func (r *workoutRepository) SavePlan(ctx context.Context, userID uint, input models.WorkoutPlanInput) (uint, error) {
	if input.Name == "" {
		return 0, models.NewValidationError("Plan name is required")
	}

	var planID uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		plan := models.WorkoutPlan{
			UserID:           userID,
			Name:             input.Name,
			Description:      input.Description,
			DurationWeeks:    input.DurationWeeks,
			AIGenerated:      input.AIGenerated,
			GenerationPrompt: input.GenerationPrompt,
		}
		if err := tx.Create(&plan).Error; err != nil {
			return err
		}

		for _, dayInput := range input.Days {
			day := models.WorkoutDay{
				WorkoutPlanID: plan.ID,
				DayNumber:     dayInput.DayNumber,
				DayName:       dayInput.DayName,
				FocusArea:     dayInput.FocusArea,
			}
			if err := tx.Create(&day).Error; err != nil {
				if isUniqueConstraintError(err) {
					return models.NewValidationError(
						fmt.Sprintf("Duplicate day number %d in plan", dayInput.DayNumber))
				}
				return err
			}

			for _, exInput := range dayInput.Exercises {
				exerciseID, err := upsertExercise(tx, exInput)
				if err != nil {
					return err
				}

				link := models.WorkoutExercise{
					WorkoutDayID: day.ID,
					ExerciseID:   exerciseID,
					Sets:         exInput.Sets,
					Reps:         exInput.Reps,
					WeightKg:     exInput.WeightKg,
					RestSeconds:  exInput.RestSeconds,
					Notes:        exInput.Notes,
				}
				if err := tx.Create(&link).Error; err != nil {
					return err
				}
			}
		}

		planID = plan.ID
		return nil
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return 0, appErr
		}
		return 0, models.NewInternalError(err)
	}
	return planID, nil
}

// upsertExercise inserts a catalog row if the name is absent and returns the
// existing row's ID otherwise. INSERT ... ON CONFLICT DO NOTHING plus the
// follow-up fetch keeps the pair race-free under concurrent writers.
func upsertExercise(tx *gorm.DB, input models.WorkoutExerciseInput) (uint, error) {
	if input.Name == "" {
		return 0, models.NewValidationError("Exercise name is required")
	}

	exercise := models.Exercise{
		Name:            input.Name,
		Category:        input.Category,
		MuscleGroups:    input.MuscleGroups,
		Equipment:       input.Equipment,
		DifficultyLevel: input.DifficultyLevel,
		Instructions:    input.Instructions,
	}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&exercise).Error
	if err != nil {
		return 0, err
	}
	if exercise.ID != 0 {
		return exercise.ID, nil
	}

	// Conflict path: the row already existed, fetch its ID.
	var existing models.Exercise
	if err := tx.Where("name = ?", input.Name).First(&existing).Error; err != nil {
		return 0, err
	}
	return existing.ID, nil
}

func (r *workoutRepository) GetPlans(ctx context.Context, userID uint) ([]models.WorkoutPlan, error) {
	var plans []models.WorkoutPlan
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&plans).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return plans, nil
}

func (r *workoutRepository) GetPlanDetail(ctx context.Context, userID, planID uint) (*models.WorkoutPlan, error) {
	var plan models.WorkoutPlan
	err := r.db.WithContext(ctx).
		Preload("Days", func(db *gorm.DB) *gorm.DB {
			return db.Order("day_number ASC")
		}).
		Preload("Days.Exercises").
		Preload("Days.Exercises.Exercise").
		Where("id = ? AND user_id = ?", planID, userID).
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Workout plan", planID)
		}
		return nil, models.NewInternalError(err)
	}
	return &plan, nil
}

// DeletePlan removes the plan and all owned children in dependency order
// inside one transaction. The shared exercise catalog is never touched.
func (r *workoutRepository) DeletePlan(ctx context.Context, userID, planID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var plan models.WorkoutPlan
		if err := tx.Where("id = ? AND user_id = ?", planID, userID).First(&plan).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Workout plan", planID)
			}
			return err
		}

		dayIDs := tx.Model(&models.WorkoutDay{}).
			Select("id").
			Where("workout_plan_id = ?", planID)

		logIDs := tx.Model(&models.WorkoutLog{}).
			Select("id").
			Where("workout_day_id IN (?)", dayIDs)

		if err := tx.Where("workout_log_id IN (?)", logIDs).
			Delete(&models.ExerciseLog{}).Error; err != nil {
			return err
		}
		if err := tx.Where("workout_day_id IN (?)", dayIDs).
			Delete(&models.WorkoutLog{}).Error; err != nil {
			return err
		}
		if err := tx.Where("workout_day_id IN (?)", dayIDs).
			Delete(&models.WorkoutExercise{}).Error; err != nil {
			return err
		}
		if err := tx.Where("workout_plan_id = ?", planID).
			Delete(&models.WorkoutDay{}).Error; err != nil {
			return err
		}
		return tx.Delete(&plan).Error
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return models.NewInternalError(err)
	}
	return nil
}

// LogWorkout records a performed session and its exercise results as one
// transaction.
func (r *workoutRepository) LogWorkout(ctx context.Context, userID uint, input models.WorkoutLogInput) (uint, error) {
	completedAt := r.now()
	if input.CompletedAt != nil {
		completedAt = *input.CompletedAt
	}

	var logID uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var day models.WorkoutDay
		if err := tx.First(&day, input.WorkoutDayID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Workout day", input.WorkoutDayID)
			}
			return err
		}

		log := models.WorkoutLog{
			UserID:          userID,
			WorkoutDayID:    day.ID,
			DurationMinutes: input.DurationMinutes,
			Notes:           input.Notes,
			CompletedAt:     completedAt,
		}
		if err := tx.Create(&log).Error; err != nil {
			return err
		}

		for _, exInput := range input.Exercises {
			entry := models.ExerciseLog{
				WorkoutLogID:    log.ID,
				ExerciseID:      exInput.ExerciseID,
				SetsCompleted:   exInput.SetsCompleted,
				RepsCompleted:   exInput.RepsCompleted,
				WeightUsedKg:    exInput.WeightUsedKg,
				PerceivedEffort: exInput.PerceivedEffort,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}

		logID = log.ID
		return nil
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return 0, appErr
		}
		return 0, models.NewInternalError(err)
	}
	return logID, nil
}

// History aggregates logged exercise performance into per-day/per-plan/
// per-day-number volume buckets (volume = sets * reps * weight) within the
// trailing window.
func (r *workoutRepository) History(ctx context.Context, userID uint, dateRange string) ([]models.WorkoutHistoryRow, error) {
	start := WindowStart(dateRange, r.now())
	bucket := dayBucket(r.db, "workout_logs.completed_at")

	var rows []models.WorkoutHistoryRow
	err := r.db.WithContext(ctx).
		Table("workout_logs").
		Select(bucket+" AS date, "+
			"workout_plans.name AS plan_name, "+
			"workout_days.day_number AS day_number, "+
			"SUM(exercise_logs.sets_completed * exercise_logs.reps_completed * exercise_logs.weight_used_kg) AS volume, "+
			"COUNT(DISTINCT workout_logs.id) AS sessions, "+
			"AVG(workout_logs.duration_minutes) AS duration").
		Joins("JOIN exercise_logs ON exercise_logs.workout_log_id = workout_logs.id").
		Joins("JOIN workout_days ON workout_days.id = workout_logs.workout_day_id").
		Joins("JOIN workout_plans ON workout_plans.id = workout_days.workout_plan_id").
		Where("workout_logs.user_id = ? AND workout_logs.completed_at >= ?", userID, start).
		Group(bucket + ", workout_plans.name, workout_days.day_number").
		Order("date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return rows, nil
}
