package models

import "time"

// WorkoutPlan is a user-owned training program. Generated plans keep a
// truncated copy of the generation prompt as provenance.
type WorkoutPlan struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"index;not null" json:"user_id"`
	Name             string    `gorm:"not null" json:"name"`
	Description      string    `json:"description"`
	DurationWeeks    int       `json:"duration_weeks"`
	AIGenerated      bool      `json:"ai_generated"`
	GenerationPrompt string    `json:"generation_prompt,omitempty"`
	CreatedAt        time.Time `json:"created_at"`

	Days []WorkoutDay `gorm:"foreignKey:WorkoutPlanID" json:"days,omitempty"`
}

// WorkoutDay is one day of a plan. Day numbers are unique within a plan.
type WorkoutDay struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	WorkoutPlanID uint   `gorm:"index;not null;uniqueIndex:idx_plan_day,priority:1" json:"workout_plan_id"`
	DayNumber     int    `gorm:"not null;uniqueIndex:idx_plan_day,priority:2" json:"day_number"`
	DayName       string `json:"day_name"`
	FocusArea     string `json:"focus_area"`

	Exercises []WorkoutExercise `gorm:"foreignKey:WorkoutDayID" json:"exercises,omitempty"`
}

// Exercise is a shared catalog row, deduplicated by name. Plans reference
// catalog rows through WorkoutExercise links and never own them.
type Exercise struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Name            string `gorm:"uniqueIndex;not null" json:"name"`
	Category        string `json:"category"`
	MuscleGroups    string `json:"muscle_groups"`
	Equipment       string `json:"equipment"`
	DifficultyLevel string `json:"difficulty_level"`
	Instructions    string `json:"instructions"`
}

// WorkoutExercise links a workout day to a catalog exercise with the
// prescribed work.
type WorkoutExercise struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	WorkoutDayID uint    `gorm:"index;not null" json:"workout_day_id"`
	ExerciseID   uint    `gorm:"index;not null" json:"exercise_id"`
	Sets         int     `json:"sets"`
	Reps         string  `json:"reps"`
	WeightKg     float64 `json:"weight_kg"`
	RestSeconds  int     `json:"rest_seconds"`
	Notes        string  `json:"notes"`

	Exercise Exercise `json:"exercise,omitempty"`
}

// WorkoutLog records an actually performed session against a plan day.
type WorkoutLog struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"index;not null" json:"user_id"`
	WorkoutDayID    uint      `gorm:"index;not null" json:"workout_day_id"`
	DurationMinutes int       `json:"duration_minutes"`
	Notes           string    `json:"notes"`
	CompletedAt     time.Time `json:"completed_at"`

	Exercises []ExerciseLog `gorm:"foreignKey:WorkoutLogID" json:"exercises,omitempty"`
}

// ExerciseLog records the completed work for one exercise of a logged session.
type ExerciseLog struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	WorkoutLogID    uint    `gorm:"index;not null" json:"workout_log_id"`
	ExerciseID      uint    `gorm:"index;not null" json:"exercise_id"`
	SetsCompleted   int     `json:"sets_completed"`
	RepsCompleted   int     `json:"reps_completed"`
	WeightUsedKg    float64 `json:"weight_used_kg"`
	PerceivedEffort int     `json:"perceived_effort"`
}

// WorkoutPlanInput is the structured payload persisted by SaveWorkoutPlan,
// either machine-generated or supplied directly by the client.
type WorkoutPlanInput struct {
	Name             string            `json:"name"`
	Description      string            `json:"description"`
	DurationWeeks    int               `json:"duration_weeks"`
	AIGenerated      bool              `json:"ai_generated"`
	GenerationPrompt string            `json:"generation_prompt,omitempty"`
	Days             []WorkoutDayInput `json:"days"`
}

// WorkoutDayInput is one day of a WorkoutPlanInput.
type WorkoutDayInput struct {
	DayNumber int                    `json:"day_number"`
	DayName   string                 `json:"day_name"`
	FocusArea string                 `json:"focus_area"`
	Exercises []WorkoutExerciseInput `json:"exercises"`
}

// WorkoutExerciseInput carries both the catalog attributes of an exercise and
// the prescription for one day. The catalog part is upserted by name.
type WorkoutExerciseInput struct {
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	MuscleGroups    string  `json:"muscle_groups"`
	Equipment       string  `json:"equipment"`
	DifficultyLevel string  `json:"difficulty_level"`
	Instructions    string  `json:"instructions"`
	Sets            int     `json:"sets"`
	Reps            string  `json:"reps"`
	WeightKg        float64 `json:"weight_kg"`
	RestSeconds     int     `json:"rest_seconds"`
	Notes           string  `json:"notes"`
}

// WorkoutLogInput is the payload for logging a performed session.
type WorkoutLogInput struct {
	WorkoutDayID    uint               `json:"workout_day_id"`
	DurationMinutes int                `json:"duration_minutes"`
	Notes           string             `json:"notes"`
	CompletedAt     *time.Time         `json:"completed_at"`
	Exercises       []ExerciseLogInput `json:"exercises"`
}

// ExerciseLogInput is one performed exercise within a WorkoutLogInput.
type ExerciseLogInput struct {
	ExerciseID      uint    `json:"exercise_id"`
	SetsCompleted   int     `json:"sets_completed"`
	RepsCompleted   int     `json:"reps_completed"`
	WeightUsedKg    float64 `json:"weight_used_kg"`
	PerceivedEffort int     `json:"perceived_effort"`
}

// WorkoutHistoryRow is one per-day/per-plan/per-day-number volume bucket.
type WorkoutHistoryRow struct {
	Date      string  `json:"date"`
	PlanName  string  `json:"name"`
	DayNumber int     `json:"day_number"`
	Volume    float64 `json:"volume"`
	Sessions  int     `json:"sessions"`
	Duration  float64 `json:"duration"`
}
