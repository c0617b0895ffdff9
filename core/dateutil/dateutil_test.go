package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := ParseDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestParseDay(t *testing.T) {
	parsed, err := ParseDay("2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), parsed)

	_, err = ParseDay("15/01/2024")
	assert.Error(t, err)

	_, err = ParseDay("")
	assert.Error(t, err)
}

func TestMidnight(t *testing.T) {
	loc := time.FixedZone("UTC+11", 11*3600)
	local := time.Date(2024, 1, 15, 23, 30, 0, 0, loc)

	// 23:30 UTC+11 is 12:30 UTC the same day; normalization must not drift.
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), Midnight(local))
}

func TestEnumerateDates(t *testing.T) {
	days := EnumerateDates(day("2024-01-01"), day("2024-01-03"))
	assert.Equal(t, []string{"2024-01-01", "2024-01-02", "2024-01-03"}, days)

	assert.Equal(t, []string{"2024-01-01"}, EnumerateDates(day("2024-01-01"), day("2024-01-01")))

	// Inverted range yields an empty sequence, not an error.
	assert.Empty(t, EnumerateDates(day("2024-01-03"), day("2024-01-01")))
}

func TestCountWorkdays(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{"ten business days", "2024-01-01", "2024-01-12", 10},
		{"single monday", "2024-01-01", "2024-01-01", 1},
		{"single saturday", "2024-01-06", "2024-01-06", 0},
		{"single sunday", "2024-01-07", "2024-01-07", 0},
		{"full week", "2024-01-01", "2024-01-07", 5},
		{"end before start", "2024-01-12", "2024-01-01", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountWorkdays(day(tt.start), day(tt.end)))
		})
	}
}

func TestWorkdays(t *testing.T) {
	days := Workdays(day("2024-01-05"), day("2024-01-08"))
	require.Len(t, days, 2) // Friday and Monday; weekend excluded
	assert.Equal(t, "2024-01-05", FormatDay(days[0]))
	assert.Equal(t, "2024-01-08", FormatDay(days[1]))
}

func TestIsWeekend(t *testing.T) {
	assert.False(t, IsWeekend(day("2024-01-05"))) // Friday
	assert.True(t, IsWeekend(day("2024-01-06")))  // Saturday
	assert.True(t, IsWeekend(day("2024-01-07")))  // Sunday
	assert.False(t, IsWeekend(day("2024-01-08"))) // Monday
}

func TestOverlap(t *testing.T) {
	start, end, ok := Overlap(day("2024-01-01"), day("2024-01-10"), day("2024-01-05"), day("2024-01-20"))
	require.True(t, ok)
	assert.Equal(t, "2024-01-05", FormatDay(start))
	assert.Equal(t, "2024-01-10", FormatDay(end))

	// Disjoint intervals have no overlap.
	_, _, ok = Overlap(day("2024-01-01"), day("2024-01-04"), day("2024-01-05"), day("2024-01-10"))
	assert.False(t, ok)

	// Touching at a single day counts as overlap.
	start, end, ok = Overlap(day("2024-01-01"), day("2024-01-05"), day("2024-01-05"), day("2024-01-10"))
	require.True(t, ok)
	assert.Equal(t, "2024-01-05", FormatDay(start))
	assert.Equal(t, "2024-01-05", FormatDay(end))
}

func TestWeekStart(t *testing.T) {
	// 2024-01-01 is a Monday.
	assert.Equal(t, "2024-01-01", FormatDay(WeekStart(day("2024-01-01"))))
	assert.Equal(t, "2024-01-01", FormatDay(WeekStart(day("2024-01-03"))))

	// Sunday belongs to the week that started the previous Monday.
	assert.Equal(t, "2024-01-01", FormatDay(WeekStart(day("2024-01-07"))))
	assert.Equal(t, "2024-01-08", FormatDay(WeekStart(day("2024-01-08"))))
}
