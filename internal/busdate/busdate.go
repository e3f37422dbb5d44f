// Package busdate computes Russian business-calendar dates for document
// headers: every generated document shows the first working day of the
// current month as its order date.
package busdate

import (
	"fmt"
	"time"
)

// holidays are the federal non-working holidays (TK RF art. 112), keyed by
// month/day. New Year holidays span January 1-8 including Christmas on the 7th.
var holidays = map[[2]int]bool{
	{1, 1}: true, {1, 2}: true, {1, 3}: true, {1, 4}: true,
	{1, 5}: true, {1, 6}: true, {1, 7}: true, {1, 8}: true,
	{2, 23}: true, // Defender of the Fatherland Day
	{3, 8}:  true, // International Women's Day
	{5, 1}:  true, // Spring and Labour Day
	{5, 9}:  true, // Victory Day
	{6, 12}: true, // Russia Day
	{11, 4}: true, // Unity Day
}

// genitive month names for long-form dates ("2 июня 2025").
var monthsGenitive = [13]string{
	"",
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// IsWorkingDay reports whether d is neither a weekend nor a federal holiday.
// Regional holidays and ad-hoc transfer days are not modeled.
func IsWorkingDay(d time.Time) bool {
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return !holidays[[2]int{int(d.Month()), d.Day()}]
}

// FirstBusinessDay returns the first working day of the given month.
func FirstBusinessDay(year int, month time.Month, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	d := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	for !IsWorkingDay(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// FormatLong renders d as a Russian long date, e.g. "2 июня 2025".
func FormatLong(d time.Time) string {
	return fmt.Sprintf("%d %s %d", d.Day(), monthsGenitive[d.Month()], d.Year())
}
