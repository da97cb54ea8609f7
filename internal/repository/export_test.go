package repository

// DayBucket exposes dayBucket to external tests.
var DayBucket = dayBucket
