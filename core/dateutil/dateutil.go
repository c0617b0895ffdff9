// Package dateutil has day-granularity date and workday arithmetic shared by
// the capacity, demand and sprint engines. All arithmetic happens in UTC after
// normalizing bounds to midnight, so local-clock inputs cannot drift a day.
package dateutil

import (
	"fmt"
	"time"

	"github.com/capsight/capsight/schema"
)

// ParseDay parses a YYYY-MM-DD day string as UTC midnight.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(schema.DayFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q: expected YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

// FormatDay formats a time as its YYYY-MM-DD day in UTC.
func FormatDay(t time.Time) string {
	return t.UTC().Format(schema.DayFormat)
}

// Midnight normalizes a time to UTC midnight of its calendar day.
func Midnight(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// IsWeekend reports whether the UTC day-of-week is Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.UTC().Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// EnumerateDates returns every calendar day between from and to inclusive as
// ordered YYYY-MM-DD strings. The result is empty when to is before from.
func EnumerateDates(from, to time.Time) []string {
	start := Midnight(from)
	end := Midnight(to)
	if end.Before(start) {
		return nil
	}

	var days []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, FormatDay(d))
	}
	return days
}

// CountWorkdays returns the inclusive number of days between start and end
// that fall on Monday through Friday. Returns 0 when end is before start.
func CountWorkdays(start, end time.Time) int {
	s := Midnight(start)
	e := Midnight(end)
	if e.Before(s) {
		return 0
	}

	count := 0
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		if !IsWeekend(d) {
			count++
		}
	}
	return count
}

// Workdays returns the Monday-Friday days between start and end inclusive.
func Workdays(start, end time.Time) []time.Time {
	s := Midnight(start)
	e := Midnight(end)
	if e.Before(s) {
		return nil
	}

	var days []time.Time
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		if !IsWeekend(d) {
			days = append(days, d)
		}
	}
	return days
}

// Overlap intersects [aStart, aEnd] with [bStart, bEnd]. The third return
// value is false when the later start exceeds the earlier end.
func Overlap(aStart, aEnd, bStart, bEnd time.Time) (time.Time, time.Time, bool) {
	start := Midnight(aStart)
	if b := Midnight(bStart); b.After(start) {
		start = b
	}
	end := Midnight(aEnd)
	if b := Midnight(bEnd); b.Before(end) {
		end = b
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// WeekStart returns the Monday that starts the ISO week containing t.
// Sunday counts as the last day of the previous week.
func WeekStart(t time.Time) time.Time {
	d := Midnight(t)
	diff := int(d.Weekday()) - 1
	if d.Weekday() == time.Sunday {
		diff = 6
	}
	return d.AddDate(0, 0, -diff)
}
