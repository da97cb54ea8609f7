// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered account together with the demographic and
// fitness attributes used for plan generation.
type User struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Username        string    `gorm:"uniqueIndex;not null" json:"username"`
	Email           string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash    string    `gorm:"not null" json:"-"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Age             int       `json:"age"`
	Gender          string    `json:"gender"`
	HeightCm        float64   `json:"height_cm"`
	WeightKg        float64   `json:"weight_kg"`
	ActivityLevel   string    `json:"activity_level"`
	FitnessGoals    string    `json:"fitness_goals"`
	Injuries        string    `json:"injuries"`
	ExperienceLevel string    `json:"experience_level"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Profile is the subset of User handed to the plan generator.
type Profile struct {
	Age             int     `json:"age"`
	Gender          string  `json:"gender"`
	HeightCm        float64 `json:"height_cm"`
	WeightKg        float64 `json:"weight_kg"`
	ActivityLevel   string  `json:"activity_level"`
	FitnessGoals    string  `json:"fitness_goals"`
	Injuries        string  `json:"injuries"`
	ExperienceLevel string  `json:"experience_level"`
}

// GeneratorProfile extracts the generation-relevant fields.
func (u *User) GeneratorProfile() Profile {
	return Profile{
		Age:             u.Age,
		Gender:          u.Gender,
		HeightCm:        u.HeightCm,
		WeightKg:        u.WeightKg,
		ActivityLevel:   u.ActivityLevel,
		FitnessGoals:    u.FitnessGoals,
		Injuries:        u.Injuries,
		ExperienceLevel: u.ExperienceLevel,
	}
}

// ProfileUpdate carries a partial profile update. Only non-nil fields are
// applied; omitted fields are left untouched.
type ProfileUpdate struct {
	FirstName       *string  `json:"first_name"`
	LastName        *string  `json:"last_name"`
	Age             *int     `json:"age"`
	Gender          *string  `json:"gender"`
	HeightCm        *float64 `json:"height_cm"`
	WeightKg        *float64 `json:"weight_kg"`
	ActivityLevel   *string  `json:"activity_level"`
	FitnessGoals    *string  `json:"fitness_goals"`
	Injuries        *string  `json:"injuries"`
	ExperienceLevel *string  `json:"experience_level"`
}

// Columns returns the column assignments for the fields present in the update.
func (p ProfileUpdate) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.FirstName != nil {
		cols["first_name"] = *p.FirstName
	}
	if p.LastName != nil {
		cols["last_name"] = *p.LastName
	}
	if p.Age != nil {
		cols["age"] = *p.Age
	}
	if p.Gender != nil {
		cols["gender"] = *p.Gender
	}
	if p.HeightCm != nil {
		cols["height_cm"] = *p.HeightCm
	}
	if p.WeightKg != nil {
		cols["weight_kg"] = *p.WeightKg
	}
	if p.ActivityLevel != nil {
		cols["activity_level"] = *p.ActivityLevel
	}
	if p.FitnessGoals != nil {
		cols["fitness_goals"] = *p.FitnessGoals
	}
	if p.Injuries != nil {
		cols["injuries"] = *p.Injuries
	}
	if p.ExperienceLevel != nil {
		cols["experience_level"] = *p.ExperienceLevel
	}
	return cols
}
