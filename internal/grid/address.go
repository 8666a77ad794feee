package grid

import (
	"fmt"
	"time"
)

// DateLabel renders the column-A label for a date row: "Monday, January 2".
// The day of month is not zero padded. Row lookup compares these strings
// byte for byte, so write-time and lookup-time labels must agree exactly.
func DateLabel(t time.Time) string {
	return fmt.Sprintf("%s, %s %d", t.Weekday(), t.Month(), t.Day())
}

// WeekHeaderLabel renders the separator row label for an ISO week.
func WeekHeaderLabel(week int) string {
	return fmt.Sprintf("Week %d", week)
}

// ISOWeek returns the ISO-8601 week number of a date (weeks start Monday,
// week 1 contains the year's first Thursday).
func ISOWeek(t time.Time) int {
	_, week := t.ISOWeek()
	return week
}

// NextDay advances a date by one calendar day.
func NextDay(t time.Time) time.Time {
	return t.AddDate(0, 0, 1)
}

// YearLabels generates the expected column-A sequence for a year: every day
// from Jan 1 to Dec 31 in order, each run of a new ISO week preceded by its
// week header. The first day of the year always gets a header.
func YearLabels(year int) []string {
	labels := make([]string, 0, 420)
	week := -1

	for d := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC); d.Year() == year; d = NextDay(d) {
		if w := ISOWeek(d); w != week {
			labels = append(labels, WeekHeaderLabel(w))
			week = w
		}
		labels = append(labels, DateLabel(d))
	}

	return labels
}
