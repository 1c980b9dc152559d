package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseISO(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string // expected ISO round-trip, "" for zero
	}{
		{"plain date", "2025-02-20", "2025-02-20"},
		{"rfc3339 timestamp", "2025-02-20T14:30:00Z", "2025-02-20"},
		{"padded", "  2025-02-20  ", "2025-02-20"},
		{"empty", "", ""},
		{"garbage", "not-a-date", ""},
		{"too short", "2025-2-2", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseISO(tt.in)
			assert.Equal(t, tt.want, got.ISO())
			assert.Equal(t, tt.want == "", got.IsZero())
		})
	}
}

func TestComparisons(t *testing.T) {
	a := NewDate(2025, time.March, 10)
	b := NewDate(2025, time.March, 11)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, a.BeforeOrEqual(a))
	assert.True(t, a.AfterOrEqual(a))
	assert.True(t, a.Equal(NewDate(2025, time.March, 10)))
	assert.False(t, a.Equal(b))
}

func TestAddMonthsNormalizes(t *testing.T) {
	// GIVEN January 31
	d := NewDate(2025, time.January, 31)

	// WHEN adding one month
	next := d.AddMonths(1)

	// THEN the overflow rolls into March, same as the calendar would
	assert.Equal(t, "2025-03-03", next.ISO())
}

func TestMonthIndexIsZeroBased(t *testing.T) {
	assert.Equal(t, 0, NewDate(2025, time.January, 15).MonthIndex())
	assert.Equal(t, 11, NewDate(2025, time.December, 15).MonthIndex())
}

func TestShiftWeekendToFriday(t *testing.T) {
	// 2025-03-08 is a Saturday, 2025-03-09 a Sunday, 2025-03-07 a Friday.
	sat := NewDate(2025, time.March, 8)
	sun := NewDate(2025, time.March, 9)
	fri := NewDate(2025, time.March, 7)
	wed := NewDate(2025, time.March, 5)

	require.Equal(t, time.Saturday, sat.Weekday())
	assert.Equal(t, fri.ISO(), sat.ShiftWeekendToFriday().ISO())
	assert.Equal(t, fri.ISO(), sun.ShiftWeekendToFriday().ISO())
	assert.Equal(t, wed.ISO(), wed.ShiftWeekendToFriday().ISO())
}

func TestMonthBounds(t *testing.T) {
	d := NewDate(2025, time.February, 20)
	assert.Equal(t, "2025-02-01", d.StartOfMonth().ISO())
	assert.Equal(t, "2025-02-28", d.EndOfMonth().ISO())

	leap := NewDate(2024, time.February, 5)
	assert.Equal(t, "2024-02-29", leap.EndOfMonth().ISO())
}

func TestSemesterOf(t *testing.T) {
	first := SemesterOf(NewDate(2025, time.June, 30))
	assert.Equal(t, Semester{Start: 0, End: 5}, first)

	second := SemesterOf(NewDate(2025, time.July, 1))
	assert.Equal(t, Semester{Start: 6, End: 11}, second)
}

func TestSemesterContainsIndexDoesNotWrap(t *testing.T) {
	// GIVEN the Jan-Jun window
	s := Semester{Start: 0, End: 5}

	// THEN a continuous index past December never re-enters the window
	assert.True(t, s.ContainsIndex(5))
	assert.False(t, s.ContainsIndex(6))
	assert.False(t, s.ContainsIndex(12)) // not treated as January again
	assert.False(t, s.ContainsIndex(13))
}

func TestParseDayMonth(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		fallback  int
		wantDay   int
		wantMonth int
	}{
		{"full form", "20/01", 3, 20, 0},
		{"legacy bare day", "18", 3, 18, 3},
		{"empty defaults", "", 7, 1, 7},
		{"garbage day", "x/05", 0, 1, 4},
		{"zero day", "0/02", 0, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, month := ParseDayMonth(tt.in, tt.fallback)
			assert.Equal(t, tt.wantDay, day)
			assert.Equal(t, tt.wantMonth, month)
		})
	}
}

func TestFormatDayMonth(t *testing.T) {
	assert.Equal(t, "20/02", FormatDayMonth(20, 1, 2025))
	// Month index 12 wraps into January of the next year
	assert.Equal(t, "05/01", FormatDayMonth(5, 12, 2025))
	// Day overflow rolls into the next month
	assert.Equal(t, "03/03", FormatDayMonth(31, 1, 2025))
}
