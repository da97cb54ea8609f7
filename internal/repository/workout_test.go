package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fittrack/internal/models"
	"fittrack/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePlanInput(name string) models.WorkoutPlanInput {
	return models.WorkoutPlanInput{
		Name:          name,
		Description:   "Three day split",
		DurationWeeks: 4,
		Days: []models.WorkoutDayInput{
			{
				DayNumber: 1,
				DayName:   "Push Day",
				FocusArea: "Chest and triceps",
				Exercises: []models.WorkoutExerciseInput{
					{Name: "Push-ups", Category: "Strength", Sets: 3, Reps: "8-12", RestSeconds: 60},
					{Name: "Bench Press", Category: "Strength", Sets: 4, Reps: "5", WeightKg: 60, RestSeconds: 120},
				},
			},
			{
				DayNumber: 2,
				DayName:   "Pull Day",
				FocusArea: "Back and biceps",
				Exercises: []models.WorkoutExerciseInput{
					{Name: "Pull-ups", Category: "Strength", Sets: 3, Reps: "6-10", RestSeconds: 90},
				},
			},
		},
	}
}

func TestWorkoutRepositorySaveAndGetPlanDetail(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewWorkoutRepository(db)
	ctx := context.Background()

	planID, err := repo.SavePlan(ctx, 1, samplePlanInput("Strength Block"))
	require.NoError(t, err)
	require.NotZero(t, planID)

	plan, err := repo.GetPlanDetail(ctx, 1, planID)
	require.NoError(t, err)
	assert.Equal(t, "Strength Block", plan.Name)
	require.Len(t, plan.Days, 2)
	assert.Equal(t, 1, plan.Days[0].DayNumber)
	assert.Equal(t, 2, plan.Days[1].DayNumber)
	require.Len(t, plan.Days[0].Exercises, 2)
	assert.Equal(t, "Push-ups", plan.Days[0].Exercises[0].Exercise.Name)
}

func TestWorkoutRepositorySavePlanDedupesCatalog(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewWorkoutRepository(db)
	ctx := context.Background()

	_, err := repo.SavePlan(ctx, 1, samplePlanInput("Plan A"))
	require.NoError(t, err)
	_, err = repo.SavePlan(ctx, 1, samplePlanInput("Plan B"))
	require.NoError(t, err)

	// Both plans reference "Push-ups"; the catalog holds a single row.
	var count int64
	require.NoError(t, db.Model(&models.Exercise{}).Where("name = ?", "Push-ups").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var links int64
	require.NoError(t, db.Model(&models.WorkoutExercise{}).Count(&links).Error)
	assert.Equal(t, int64(6), links)
}

func TestWorkoutRepositorySavePlanValidation(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewWorkoutRepository(db)
	ctx := context.Background()

	_, err := repo.SavePlan(ctx, 1, models.WorkoutPlanInput{})
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeValidation, appErr.Code)

	dup := samplePlanInput("Dup Days")
	dup.Days[1].DayNumber = 1
	_, err = repo.SavePlan(ctx, 1, dup)
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeValidation, appErr.Code)

	// The failed transaction must not leave a partial plan behind.
	var plans int64
	require.NoError(t, db.Model(&models.WorkoutPlan{}).Count(&plans).Error)
	assert.Zero(t, plans)
}

func TestWorkoutRepositoryPlanOwnership(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewWorkoutRepository(db)
	ctx := context.Background()

	planID, err := repo.SavePlan(ctx, 1, samplePlanInput("Mine"))
	require.NoError(t, err)

	_, err = repo.GetPlanDetail(ctx, 2, planID)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)

	err = repo.DeletePlan(ctx, 2, planID)
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestWorkoutRepositoryDeletePlanCascades(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewWorkoutRepository(db)
	ctx := context.Background()

	planID, err := repo.SavePlan(ctx, 1, samplePlanInput("Doomed"))
	require.NoError(t, err)

	plan, err := repo.GetPlanDetail(ctx, 1, planID)
	require.NoError(t, err)
	dayID := plan.Days[0].ID
	exerciseID := plan.Days[0].Exercises[0].ExerciseID

	_, err = repo.LogWorkout(ctx, 1, models.WorkoutLogInput{
		WorkoutDayID:    dayID,
		DurationMinutes: 45,
		Exercises: []models.ExerciseLogInput{
			{ExerciseID: exerciseID, SetsCompleted: 3, RepsCompleted: 10, WeightUsedKg: 0},
		},
	})
	require.NoError(t, err)

	require.NoError(t, repo.DeletePlan(ctx, 1, planID))

	for _, check := range []struct {
		name  string
		model interface{}
	}{
		{"days", &models.WorkoutDay{}},
		{"links", &models.WorkoutExercise{}},
		{"logs", &models.WorkoutLog{}},
		{"exercise logs", &models.ExerciseLog{}},
	} {
		var count int64
		require.NoError(t, db.Model(check.model).Count(&count).Error)
		assert.Zero(t, count, "leftover %s after delete", check.name)
	}

	// The shared catalog survives plan deletion.
	var exercises int64
	require.NoError(t, db.Model(&models.Exercise{}).Count(&exercises).Error)
	assert.Equal(t, int64(3), exercises)
}

func TestWorkoutRepositoryLogWorkoutUnknownDay(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewWorkoutRepository(db)

	_, err := repo.LogWorkout(context.Background(), 1, models.WorkoutLogInput{WorkoutDayID: 42})
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestWorkoutRepositoryHistoryAggregatesVolume(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewWorkoutRepository(db)
	ctx := context.Background()

	planID, err := repo.SavePlan(ctx, 1, samplePlanInput("Tracked"))
	require.NoError(t, err)
	plan, err := repo.GetPlanDetail(ctx, 1, planID)
	require.NoError(t, err)
	dayID := plan.Days[0].ID
	exerciseID := plan.Days[0].Exercises[1].ExerciseID

	completed := time.Now().Add(-48 * time.Hour)
	for i := 0; i < 2; i++ {
		_, err = repo.LogWorkout(ctx, 1, models.WorkoutLogInput{
			WorkoutDayID:    dayID,
			DurationMinutes: 40,
			CompletedAt:     &completed,
			Exercises: []models.ExerciseLogInput{
				{ExerciseID: exerciseID, SetsCompleted: 4, RepsCompleted: 5, WeightUsedKg: 60},
			},
		})
		require.NoError(t, err)
	}

	rows, err := repo.History(ctx, 1, "1 Week")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Tracked", rows[0].PlanName)
	assert.Equal(t, 1, rows[0].DayNumber)
	assert.Equal(t, 2, rows[0].Sessions)
	// 2 sessions x 4 sets x 5 reps x 60 kg
	assert.Equal(t, 2400.0, rows[0].Volume)
	assert.Equal(t, 40.0, rows[0].Duration)
}

func TestWorkoutRepositoryHistoryWindow(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewWorkoutRepository(db)
	ctx := context.Background()

	planID, err := repo.SavePlan(ctx, 1, samplePlanInput("Windowed"))
	require.NoError(t, err)
	plan, err := repo.GetPlanDetail(ctx, 1, planID)
	require.NoError(t, err)
	dayID := plan.Days[0].ID
	exerciseID := plan.Days[0].Exercises[0].ExerciseID

	old := time.Now().AddDate(0, 0, -20)
	_, err = repo.LogWorkout(ctx, 1, models.WorkoutLogInput{
		WorkoutDayID: dayID,
		CompletedAt:  &old,
		Exercises: []models.ExerciseLogInput{
			{ExerciseID: exerciseID, SetsCompleted: 3, RepsCompleted: 10, WeightUsedKg: 20},
		},
	})
	require.NoError(t, err)

	rows, err := repo.History(ctx, 1, "1 Week")
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = repo.History(ctx, 1, "1 Month")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
