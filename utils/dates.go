// utils/dates.go
package utils

import (
	"math"
	"time"
)

const DateLayout = "2006-01-02"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}

// DaysUntil rounds the remaining time up to whole days, so anything later today counts as 1
func DaysUntil(now, t time.Time) int {
	return int(math.Ceil(t.Sub(now).Hours() / 24))
}

// ParseDate accepts YYYY-MM-DD or RFC3339 and returns a UTC date at midnight
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return BeginningOfDay(t.UTC()), nil
}

// DateRange is a half-open [From, To) window; zero bounds are unbounded
type DateRange struct {
	From time.Time
	To   time.Time
}

// ParseDateRange turns optional start/end dates into a window that includes the whole end day
func ParseDateRange(start, end string) (DateRange, error) {
	var r DateRange
	if start != "" {
		from, err := ParseDate(start)
		if err != nil {
			return r, err
		}
		r.From = from
	}
	if end != "" {
		to, err := ParseDate(end)
		if err != nil {
			return r, err
		}
		r.To = to.AddDate(0, 0, 1)
	}
	return r, nil
}

// MonthRange returns the calendar month containing t, in UTC
func MonthRange(t time.Time) DateRange {
	t = t.UTC()
	from := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return DateRange{From: from, To: from.AddDate(0, 1, 0)}
}

func (r DateRange) Contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && !t.Before(r.To) {
		return false
	}
	return true
}
