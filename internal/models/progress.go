package models

import "time"

// ProgressEntry is an append-only weight/height/date sample.
type ProgressEntry struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"index;not null" json:"user_id"`
	WeightKg float64   `json:"weight_kg"`
	HeightCm float64   `json:"height_cm"`
	Date     time.Time `gorm:"index" json:"date"`
}

// TableName keeps the table aligned with the versioned schema.
func (ProgressEntry) TableName() string { return "progress_tracking" }

// ProgressEntryInput is the payload for recording a body measurement. Date
// defaults to the current time when omitted.
type ProgressEntryInput struct {
	WeightKg float64    `json:"weight_kg"`
	HeightCm float64    `json:"height_cm"`
	Date     *time.Time `json:"date,omitempty"`
}

// BodyMetric is one point of the body composition time series. BMI is nil
// when height or weight is missing, so callers can surface "insufficient
// data" instead of a zero value.
type BodyMetric struct {
	Date             time.Time `json:"date"`
	WeightKg         float64   `json:"weight_kg"`
	HeightCm         float64   `json:"height_cm"`
	BMI              *float64  `json:"bmi,omitempty"`
	InsufficientData bool      `json:"insufficient_data,omitempty"`
}
