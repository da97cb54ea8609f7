package repository_test

import (
	"testing"

	"fittrack/internal/repository"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWindowStart(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		dateRange string
		wantDays  int
	}{
		{"1 Week", 7},
		{"2 Weeks", 14},
		{"1 Month", 30},
		{"3 Months", 90},
		{"6 Months", 180},
		{"1 Year", 365},
		{"garbage", 30},
		{"", 30},
	}
	for _, tt := range tests {
		t.Run(tt.dateRange, func(t *testing.T) {
			got := repository.WindowStart(tt.dateRange, now)
			assert.Equal(t, now.AddDate(0, 0, -tt.wantDays), got)
		})
	}
}

func TestDayBucketDialects(t *testing.T) {
	db := setupTestDB(t)
	assert.Equal(t, "DATE(logged_at)", repository.DayBucket(db, "logged_at"))
}
