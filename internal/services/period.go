package services

import (
	"regexp"
	"time"

	"university-hr/internal/models"
)

var semesterPattern = regexp.MustCompile(`^[WS]\d{2}$`)

// dayBounds returns the half-open range [start of t's day, start of next day).
func dayBounds(t time.Time) (models.Date, models.Date) {
	day := models.NewDate(t)
	return day, models.Date{Time: day.AddDate(0, 0, 1)}
}

// monthBounds returns the half-open range [first of t's month, first of next month).
func monthBounds(t time.Time) (models.Date, models.Date) {
	y, m, _ := t.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	return models.Date{Time: first}, models.Date{Time: first.AddDate(0, 1, 0)}
}

// parsePeriod validates a from/to pair of YYYY-MM-DD dates.
func parsePeriod(from, to, orderMessage string) (models.Date, models.Date, error) {
	fromDate, err := models.ParseDate(from)
	if err != nil {
		return models.Date{}, models.Date{}, validationError("Invalid date format")
	}
	toDate, err := models.ParseDate(to)
	if err != nil {
		return models.Date{}, models.Date{}, validationError("Invalid date format")
	}
	if fromDate.After(toDate.Time) {
		return models.Date{}, models.Date{}, validationError("%s", orderMessage)
	}
	return fromDate, toDate, nil
}

const errFromAfterTo = "From date can't be after the to date"
