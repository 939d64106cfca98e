package usecase

import (
	"time"

	"github.com/shandysiswandi/gofta/internal/fta/entity"
)

// MonthLayout is the layout of the month accepted by the report.
const MonthLayout = "2006-01"

// dayWindow returns [day 00:00:00, day 23:59:59]. The end bound stops at the
// whole second, so 23:59:59.5 falls outside.
func dayWindow(day time.Time) (time.Time, time.Time) {
	start := entity.DayOf(day)
	end := start.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	return start, end
}

// monthWindow parses "YYYY-MM" and returns [first day 00:00, last day 23:59].
// The end bound is minute-granular, unlike dayWindow.
func monthWindow(month string) (time.Time, time.Time, error) {
	first, err := time.Parse(entity.DateLayout, month+"-01")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	start := entity.DayOf(first)
	lastDay := start.AddDate(0, 1, -1)
	end := lastDay.Add(23*time.Hour + 59*time.Minute)

	return start, end, nil
}
