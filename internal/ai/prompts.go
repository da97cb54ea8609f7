package ai

import (
	"fmt"
	"strings"

	"fittrack/internal/models"
)

const (
	trainerPersona = "You are a certified personal trainer and exercise physiologist " +
		"with over 15 years of experience. You respond with a single JSON object and nothing else."

	dietitianPersona = "You are a registered dietitian and sports nutritionist with " +
		"expertise in meal planning. You respond with a single JSON object and nothing else."
)

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// workoutPrompt renders the workout generation request. The JSON skeleton in
// the prompt matches WorkoutPlanInput field for field.
func workoutPrompt(profile models.Profile, prefs WorkoutPreferences) string {
	daysPerWeek := prefs.DaysPerWeek
	if daysPerWeek <= 0 {
		daysPerWeek = 4
	}

	return fmt.Sprintf(`Create a comprehensive, personalized 4-week workout plan for the following client:

USER PROFILE:
- Age: %d
- Gender: %s
- Height: %.1f cm
- Weight: %.1f kg
- Activity Level: %s
- Experience Level: %s
- Fitness Goals: %s
- Injuries/Limitations: %s

WORKOUT PREFERENCES:
- Days per week: %d
- Session duration: %s
- Preferred equipment: %s
- Workout type focus: %s

REQUIREMENTS:
1. Create a 4-week progressive program with weekly variations
2. Include %d workouts per week, adjusted for experience level
3. Provide specific exercises, sets, reps and rest periods
4. Include a warm-up and cool-down for each session
5. Respect the client's limitations and experience level
6. Progress difficulty over the 4 weeks
7. Include alternative exercises for accessibility

FORMAT YOUR RESPONSE AS JSON:
{
    "name": "Personalized 4-Week Training Plan",
    "description": "Brief description of the plan approach",
    "duration_weeks": 4,
    "days": [
        {
            "day_number": 1,
            "day_name": "Day 1: Upper Body Strength",
            "focus_area": "Upper body strength and muscle building",
            "exercises": [
                {
                    "name": "Push-ups",
                    "category": "Strength",
                    "muscle_groups": "Chest, shoulders, triceps",
                    "equipment": "Bodyweight",
                    "difficulty_level": "Beginner",
                    "instructions": "Detailed step-by-step instructions",
                    "sets": 3,
                    "reps": "8-12",
                    "rest_seconds": 60,
                    "notes": "Modify on knees if needed"
                }
            ]
        }
    ]
}

Provide a complete, detailed plan that follows these specifications exactly.`,
		profile.Age,
		orUnknown(profile.Gender),
		profile.HeightCm,
		profile.WeightKg,
		orUnknown(profile.ActivityLevel),
		orDefault(profile.ExperienceLevel, "Beginner"),
		orDefault(profile.FitnessGoals, "General fitness"),
		orDefault(profile.Injuries, "None specified"),
		daysPerWeek,
		orDefault(prefs.SessionDuration, "45-60 minutes"),
		orDefault(prefs.Equipment, "Full gym access"),
		orDefault(prefs.WorkoutType, "Balanced strength and cardio"),
		daysPerWeek,
	)
}

// dietPrompt renders the diet generation request. The JSON skeleton in the
// prompt matches DietPlanInput field for field.
func dietPrompt(profile models.Profile, availableFoods []string, goals DietaryGoals) string {
	foods := "Standard grocery items"
	if len(availableFoods) > 0 {
		foods = strings.Join(availableFoods, ", ")
	}

	calorieTarget := "Calculate based on profile"
	if goals.CalorieTarget > 0 {
		calorieTarget = fmt.Sprintf("%.0f", goals.CalorieTarget)
	}
	mealsPerDay := goals.MealsPerDay
	if mealsPerDay <= 0 {
		mealsPerDay = 3
	}
	snacksPerDay := goals.SnacksPerDay
	if snacksPerDay <= 0 {
		snacksPerDay = 1
	}

	return fmt.Sprintf(`Create a comprehensive 7-day meal plan for the following client:

USER PROFILE:
- Age: %d
- Gender: %s
- Height: %.1f cm
- Weight: %.1f kg
- Activity Level: %s
- Fitness Goals: %s

AVAILABLE FOODS:
%s

DIETARY GOALS:
- Calorie Target: %s
- Protein Goal: %.0fg
- Carb Goal: %.0fg
- Fat Goal: %.0fg
- Dietary Restrictions: %s
- Meal Frequency: %d meals + %d snacks

REQUIREMENTS:
1. Create 7 days of complete meal plans
2. Use primarily the available foods listed
3. Include breakfast, lunch, dinner and snacks per the meal frequency
4. Provide detailed recipes with ingredients and portions
5. Calculate nutritional information for each meal
6. Create a shopping list for missing ingredients
7. Align meals with the fitness goals
8. Honor the dietary restrictions

FORMAT YOUR RESPONSE AS JSON:
{
    "name": "Personalized 7-Day Meal Plan",
    "calorie_target": 2000,
    "protein_target_g": 120,
    "carb_target_g": 250,
    "fat_target_g": 67,
    "dietary_restrictions": "None",
    "meals": [
        {
            "day_number": 1,
            "meal_type": "Breakfast",
            "recipe_name": "Protein Oatmeal Bowl",
            "ingredients": "1 cup oats, 1 scoop protein powder, 1 banana",
            "instructions": "Cook oats, mix in protein powder, top with sliced banana",
            "calories_per_serving": 450,
            "protein_g": 25,
            "carbs_g": 55,
            "fat_g": 12,
            "servings": 1
        }
    ],
    "shopping_list": [
        {
            "item_name": "Quinoa",
            "quantity": 2,
            "unit": "cups",
            "category": "Grains"
        }
    ]
}

Provide a complete, nutritionally balanced plan that maximizes the use of available foods.`,
		profile.Age,
		orUnknown(profile.Gender),
		profile.HeightCm,
		profile.WeightKg,
		orUnknown(profile.ActivityLevel),
		orDefault(profile.FitnessGoals, "General health"),
		foods,
		calorieTarget,
		goals.ProteinTarget,
		goals.CarbTarget,
		goals.FatTarget,
		orDefault(goals.Restrictions, "None"),
		mealsPerDay,
		snacksPerDay,
	)
}
