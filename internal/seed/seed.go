// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"fittrack/internal/credentials"
	"fittrack/internal/middleware"
	"fittrack/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options control demo seeding.
type Options struct {
	Users           int
	ProgressEntries int
	MealLogs        int
	Password        string
}

// DefaultOptions returns the preset used by cmd/seed.
func DefaultOptions() Options {
	return Options{
		Users:           3,
		ProgressEntries: 12,
		MealLogs:        20,
		Password:        "demo-password",
	}
}

var activityLevels = []string{"Sedentary", "Lightly Active", "Moderately Active", "Very Active"}
var experienceLevels = []string{"Beginner", "Intermediate", "Advanced"}
var fitnessGoals = []string{"Weight loss", "Muscle gain", "General fitness", "Endurance"}
var mealTypes = []string{"Breakfast", "Lunch", "Dinner", "Snack"}

// Demo populates the database with a handful of users, each carrying a
// workout plan, meal logs, a food inventory and a progress series.
func Demo(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for i := 0; i < opts.Users; i++ {
		user, err := createUser(db, opts, i)
		if err != nil {
			return err
		}
		if err := createWorkoutPlan(db, r, user); err != nil {
			return err
		}
		if err := createNutrition(db, r, user, opts.MealLogs); err != nil {
			return err
		}
		if err := createProgress(db, r, user, opts.ProgressEntries); err != nil {
			return err
		}
	}

	middleware.Logger.Info("demo data seeded", "users", opts.Users)
	return nil
}

func createUser(db *gorm.DB, opts Options, index int) (*models.User, error) {
	hash, err := credentials.HashPassword(opts.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:        fmt.Sprintf("demo_%s%d", gofakeit.Username(), index),
		Email:           fmt.Sprintf("demo%d.%s", index, gofakeit.Email()),
		PasswordHash:    hash,
		FirstName:       gofakeit.FirstName(),
		LastName:        gofakeit.LastName(),
		Age:             gofakeit.Number(18, 65),
		Gender:          gofakeit.Gender(),
		HeightCm:        float64(gofakeit.Number(150, 200)),
		WeightKg:        float64(gofakeit.Number(50, 110)),
		ActivityLevel:   activityLevels[gofakeit.Number(0, len(activityLevels)-1)],
		FitnessGoals:    fitnessGoals[gofakeit.Number(0, len(fitnessGoals)-1)],
		ExperienceLevel: experienceLevels[gofakeit.Number(0, len(experienceLevels)-1)],
	}
	if err := db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("seed user: %w", err)
	}
	return user, nil
}

func createWorkoutPlan(db *gorm.DB, r *rand.Rand, user *models.User) error {
	plan := &models.WorkoutPlan{
		UserID:        user.ID,
		Name:          fmt.Sprintf("%s Program", gofakeit.HipsterWord()),
		Description:   gofakeit.Sentence(8),
		DurationWeeks: 4,
	}
	if err := db.Create(plan).Error; err != nil {
		return fmt.Errorf("seed workout plan: %w", err)
	}

	exercises := []models.Exercise{
		{Name: "Push-ups", Category: "Strength", MuscleGroups: "Chest, shoulders, triceps", Equipment: "Bodyweight", DifficultyLevel: "Beginner"},
		{Name: "Squats", Category: "Strength", MuscleGroups: "Quads, glutes", Equipment: "Bodyweight", DifficultyLevel: "Beginner"},
		{Name: "Deadlift", Category: "Strength", MuscleGroups: "Back, hamstrings", Equipment: "Barbell", DifficultyLevel: "Intermediate"},
		{Name: "Plank", Category: "Core", MuscleGroups: "Core", Equipment: "Bodyweight", DifficultyLevel: "Beginner"},
	}

	for dayNum := 1; dayNum <= 3; dayNum++ {
		day := &models.WorkoutDay{
			WorkoutPlanID: plan.ID,
			DayNumber:     dayNum,
			DayName:       fmt.Sprintf("Day %d", dayNum),
			FocusArea:     gofakeit.RandomString([]string{"Upper body", "Lower body", "Full body"}),
		}
		if err := db.Create(day).Error; err != nil {
			return fmt.Errorf("seed workout day: %w", err)
		}

		for _, template := range exercises[:2+r.Intn(len(exercises)-1)] {
			exercise := template
			// Insert-or-reuse by unique name, mirroring the save path.
			if err := db.Where("name = ?", exercise.Name).
				FirstOrCreate(&exercise).Error; err != nil {
				return fmt.Errorf("seed exercise: %w", err)
			}

			link := &models.WorkoutExercise{
				WorkoutDayID: day.ID,
				ExerciseID:   exercise.ID,
				Sets:         3,
				Reps:         "8-12",
				RestSeconds:  60,
			}
			if err := db.Create(link).Error; err != nil {
				return fmt.Errorf("seed workout exercise: %w", err)
			}

			// A logged session for each day so history has volume to sum.
			log := &models.WorkoutLog{
				UserID:          user.ID,
				WorkoutDayID:    day.ID,
				DurationMinutes: 30 + r.Intn(45),
				CompletedAt:     time.Now().AddDate(0, 0, -r.Intn(28)),
			}
			if err := db.Create(log).Error; err != nil {
				return fmt.Errorf("seed workout log: %w", err)
			}
			entry := &models.ExerciseLog{
				WorkoutLogID:  log.ID,
				ExerciseID:    exercise.ID,
				SetsCompleted: 3,
				RepsCompleted: 10,
				WeightUsedKg:  float64(r.Intn(60)),
			}
			if err := db.Create(entry).Error; err != nil {
				return fmt.Errorf("seed exercise log: %w", err)
			}
		}
	}
	return nil
}

func createNutrition(db *gorm.DB, r *rand.Rand, user *models.User, mealLogs int) error {
	for _, food := range []string{"Oats", "Chicken breast", "Rice", "Broccoli", "Eggs", "Greek yogurt"} {
		item := &models.FoodInventoryItem{UserID: user.ID, FoodName: food}
		if err := db.Where("user_id = ? AND food_name = ?", user.ID, food).
			FirstOrCreate(item).Error; err != nil {
			return fmt.Errorf("seed food inventory: %w", err)
		}
	}

	for i := 0; i < mealLogs; i++ {
		log := &models.MealLog{
			UserID:           user.ID,
			MealType:         mealTypes[r.Intn(len(mealTypes))],
			FoodItems:        gofakeit.Dinner(),
			CaloriesConsumed: float64(200 + r.Intn(700)),
			ProteinG:         float64(10 + r.Intn(40)),
			CarbsG:           float64(20 + r.Intn(80)),
			FatG:             float64(5 + r.Intn(30)),
			LoggedAt:         time.Now().AddDate(0, 0, -r.Intn(28)),
		}
		if err := db.Create(log).Error; err != nil {
			return fmt.Errorf("seed meal log: %w", err)
		}
	}
	return nil
}

func createProgress(db *gorm.DB, r *rand.Rand, user *models.User, entries int) error {
	weight := user.WeightKg
	for i := entries; i > 0; i-- {
		weight += float64(r.Intn(3)-1) * 0.5
		entry := &models.ProgressEntry{
			UserID:   user.ID,
			WeightKg: weight,
			HeightCm: user.HeightCm,
			Date:     time.Now().AddDate(0, 0, -i*7),
		}
		if err := db.Create(entry).Error; err != nil {
			return fmt.Errorf("seed progress entry: %w", err)
		}
	}
	return nil
}
