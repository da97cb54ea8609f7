package repository

import (
	"context"
	"time"

	"fittrack/internal/models"

	"gorm.io/gorm"
)

// ProgressRepository defines persistence operations for body measurements.
type ProgressRepository interface {
	AddEntry(ctx context.Context, userID uint, input models.ProgressEntryInput) (uint, error)
	GetBodyMetrics(ctx context.Context, userID uint, dateRange string) ([]models.BodyMetric, error)
}

type progressRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewProgressRepository returns a new ProgressRepository implementation.
func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db, now: time.Now}
}

func (r *progressRepository) AddEntry(ctx context.Context, userID uint, input models.ProgressEntryInput) (uint, error) {
	if input.WeightKg < 0 || input.HeightCm < 0 {
		return 0, models.NewValidationError("Weight and height must not be negative")
	}

	date := r.now()
	if input.Date != nil {
		date = *input.Date
	}

	entry := models.ProgressEntry{
		UserID:   userID,
		WeightKg: input.WeightKg,
		HeightCm: input.HeightCm,
		Date:     date,
	}
	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return entry.ID, nil
}

// GetBodyMetrics returns the measurement series in the trailing window,
// oldest first, with BMI derived per point. Points missing height or weight
// carry no BMI and are flagged instead.
func (r *progressRepository) GetBodyMetrics(ctx context.Context, userID uint, dateRange string) ([]models.BodyMetric, error) {
	start := WindowStart(dateRange, r.now())

	var entries []models.ProgressEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ?", userID, start).
		Order("date ASC, id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	metrics := make([]models.BodyMetric, 0, len(entries))
	for _, entry := range entries {
		metric := models.BodyMetric{
			Date:     entry.Date,
			WeightKg: entry.WeightKg,
			HeightCm: entry.HeightCm,
		}
		if entry.WeightKg > 0 && entry.HeightCm > 0 {
			heightM := entry.HeightCm / 100
			bmi := entry.WeightKg / (heightM * heightM)
			metric.BMI = &bmi
		} else {
			metric.InsufficientData = true
		}
		metrics = append(metrics, metric)
	}
	return metrics, nil
}
