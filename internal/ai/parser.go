package ai

import (
	"context"
	"encoding/json"
	"strings"

	"fittrack/internal/middleware"
	"fittrack/internal/models"
)

// extractJSON slices out the first '{' through the last '}' of a completion,
// tolerating prose or code fences around the object.
func extractJSON(content string) (string, bool) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return content[start : end+1], true
}

// parseWorkoutPlan decodes a completion into a workout plan. Anything that
// fails decoding or lacks the required fields degrades to the fallback plan
// so a flaky model never fails the request; the second return reports whether
// that happened.
func parseWorkoutPlan(ctx context.Context, content string) (*models.WorkoutPlanInput, bool) {
	raw, ok := extractJSON(content)
	if !ok {
		middleware.Logger.WarnContext(ctx, "workout completion had no JSON object, using fallback plan")
		return fallbackWorkoutPlan(), true
	}

	var plan models.WorkoutPlanInput
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		middleware.Logger.WarnContext(ctx, "workout completion unparseable, using fallback plan", "error", err)
		return fallbackWorkoutPlan(), true
	}
	if plan.Name == "" || plan.Description == "" || len(plan.Days) == 0 {
		middleware.Logger.WarnContext(ctx, "workout completion missing required fields, using fallback plan")
		return fallbackWorkoutPlan(), true
	}
	return &plan, false
}

// parseDietPlan decodes a completion into a diet plan, with the same
// degrade-to-fallback behavior as parseWorkoutPlan.
func parseDietPlan(ctx context.Context, content string) (*models.DietPlanInput, bool) {
	raw, ok := extractJSON(content)
	if !ok {
		middleware.Logger.WarnContext(ctx, "diet completion had no JSON object, using fallback plan")
		return fallbackDietPlan(), true
	}

	var plan models.DietPlanInput
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		middleware.Logger.WarnContext(ctx, "diet completion unparseable, using fallback plan", "error", err)
		return fallbackDietPlan(), true
	}
	if plan.Name == "" || len(plan.Meals) == 0 {
		middleware.Logger.WarnContext(ctx, "diet completion missing required fields, using fallback plan")
		return fallbackDietPlan(), true
	}
	return &plan, false
}

// fallbackWorkoutPlan is the minimal plan saved when the model's output
// cannot be used.
func fallbackWorkoutPlan() *models.WorkoutPlanInput {
	return &models.WorkoutPlanInput{
		Name:          "AI-Generated Workout Plan",
		Description:   "Custom workout plan generated by AI",
		DurationWeeks: 4,
		Days: []models.WorkoutDayInput{
			{
				DayNumber: 1,
				DayName:   "Full Body Workout",
				FocusArea: "General fitness",
				Exercises: []models.WorkoutExerciseInput{
					{
						Name:            "Push-ups",
						Category:        "Strength",
						MuscleGroups:    "Chest, shoulders, triceps",
						Equipment:       "Bodyweight",
						DifficultyLevel: "Beginner",
						Instructions:    "Standard push-up form",
						Sets:            3,
						Reps:            "8-12",
						RestSeconds:     60,
						Notes:           "Modify as needed",
					},
				},
			},
		},
	}
}

// fallbackDietPlan is the minimal plan saved when the model's output cannot
// be used.
func fallbackDietPlan() *models.DietPlanInput {
	return &models.DietPlanInput{
		Name:                "AI-Generated Meal Plan",
		CalorieTarget:       2000,
		ProteinTargetG:      120,
		CarbTargetG:         250,
		FatTargetG:          67,
		DietaryRestrictions: "None specified",
		Meals: []models.MealPlanInput{
			{
				DayNumber:          1,
				MealType:           "Breakfast",
				RecipeName:         "Balanced Breakfast",
				Ingredients:        "Oats, protein powder, banana, berries",
				Instructions:       "Combine ingredients for a nutritious start",
				CaloriesPerServing: 400,
				ProteinG:           25,
				CarbsG:             45,
				FatG:               8,
				Servings:           1,
			},
		},
	}
}
