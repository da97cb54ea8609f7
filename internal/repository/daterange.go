package repository

import (
	"time"

	"gorm.io/gorm"
)

// windowDays maps the supported trailing windows to a fixed day count.
var windowDays = map[string]int{
	"1 Week":   7,
	"2 Weeks":  14,
	"1 Month":  30,
	"3 Months": 90,
	"6 Months": 180,
	"1 Year":   365,
}

// WindowStart returns the inclusive start of the trailing window named by
// dateRange. Unknown ranges fall back to one month.
func WindowStart(dateRange string, now time.Time) time.Time {
	days, ok := windowDays[dateRange]
	if !ok {
		days = 30
	}
	return now.AddDate(0, 0, -days)
}

// dayBucket returns the SQL expression that truncates a timestamp column to
// its calendar day for the connected dialect.
func dayBucket(db *gorm.DB, column string) string {
	if db.Dialector.Name() == "postgres" {
		return "DATE_TRUNC('day', " + column + ")::date"
	}
	return "DATE(" + column + ")"
}
