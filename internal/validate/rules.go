package validate

import "time"

// CheckStartDay reports whether start falls on the first day of its month.
func CheckStartDay(start time.Time) bool {
	return start.Day() == 1
}

// CheckEndDay reports whether end falls on the last day of its month.
func CheckEndDay(end time.Time) bool {
	return end.Day() == daysInMonth(end)
}

// CheckDuration reports whether the period spans exactly the given number
// of whole months. The arithmetic is month-number difference only: a
// one-month period a year apart (Dec 2022 to Dec 2023) aliases to zero and
// passes. Known limitation, kept for verdict stability on historical data.
func CheckDuration(start, end time.Time, months int) bool {
	return int(end.Month())-int(start.Month()) == months
}

func daysInMonth(t time.Time) int {
	// Day 0 of the next month normalizes to the last day of t's month.
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
