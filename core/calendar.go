// Package core implements the capacity, demand and sprint analytics engine.
// Everything here is a pure, deterministic transformation over already-fetched
// in-memory data; the only I/O lives behind the contract interfaces.
package core

import (
	"github.com/capsight/capsight/core/dateutil"
	"github.com/capsight/capsight/internal/contract"
	"github.com/capsight/capsight/schema"
)

// BuildCapacityMap derives per-user, per-day availability for the inclusive
// date range. Every enumerated day is seeded with the weekday default
// (8h Monday-Friday, 0h on weekends, UTC day-of-week) and then any stored
// override for that exact (user, date) replaces the default, regardless of
// which side of the weekend boundary it falls on.
//
// An empty userIDs slice yields an empty map, not an error. Overrides outside
// the requested users or range are ignored.
func BuildCapacityMap(userIDs []string, from, to string, overrides []schema.CapacityOverride) (schema.CapacityMap, error) {
	capMap := make(schema.CapacityMap, len(userIDs))
	if len(userIDs) == 0 {
		return capMap, nil
	}

	start, err := dateutil.ParseDay(from)
	if err != nil {
		return nil, err
	}
	end, err := dateutil.ParseDay(to)
	if err != nil {
		return nil, err
	}

	days := dateutil.EnumerateDates(start, end)
	for _, userID := range userIDs {
		perDay := make(map[string]float64, len(days))
		for _, day := range days {
			d, _ := dateutil.ParseDay(day)
			if dateutil.IsWeekend(d) {
				perDay[day] = 0
			} else {
				perDay[day] = schema.DefaultHoursPerDay
			}
		}
		capMap[userID] = perDay
	}

	// Overrides always win over the weekday/weekend default.
	for _, ov := range overrides {
		perDay, ok := capMap[ov.UserID]
		if !ok {
			continue
		}
		if _, ok := perDay[ov.Date]; ok {
			perDay[ov.Date] = ov.Hours
		}
	}

	return capMap, nil
}

// ValidateOverride checks an override before it reaches the store. Negative
// hours are the one rejected input; zero hours is an explicit day off.
func ValidateOverride(ov schema.CapacityOverride) error {
	if ov.Hours < 0 {
		return contract.NewNegativeCapacity(ov.Hours)
	}
	if _, err := dateutil.ParseDay(ov.Date); err != nil {
		return err
	}
	return nil
}
