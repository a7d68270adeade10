package timex

import "time"

// MonthRange returns the calendar month containing now: day 1 at 00:00 and the
// last day at 23:59. The last day is the first day of the next month minus
// one day, which handles 28..31 day months and leap years.
func MonthRange(now time.Time) (time.Time, time.Time) {
	loc := now.Location()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	last := start.AddDate(0, 1, -1)
	end := time.Date(last.Year(), last.Month(), last.Day(), 23, 59, 0, 0, loc)
	return start, end
}

// StartOfDay parses a date-only filter boundary as 00:00 of that day.
func StartOfDay(date string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, time.Local)
}

// EndOfDay parses a date-only filter boundary as 23:59 of that day.
func EndOfDay(date string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, date, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 0, 0, time.Local), nil
}
