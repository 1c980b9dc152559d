package birthdays

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carioca/estrategia/calendar"
)

func names(people []Person) []string {
	out := make([]string, len(people))
	for i, p := range people {
		out[i] = p.Name
	}
	return out
}

func TestMatchShiftsWeekendBirthdaysToFriday(t *testing.T) {
	// GIVEN a Friday reference (2025-03-07) and two stored dates that
	// fall on the weekend of their own calendar (2025-03-08 is a
	// Saturday, 2025-03-09 a Sunday).
	today := calendar.NewDate(2025, time.March, 7)
	require.Equal(t, time.Friday, today.Weekday())

	people := []Person{
		{ID: "1", Name: "sat", Birth: "2025-03-08"},
		{ID: "2", Name: "sun", Birth: "2025-03-09"},
		{ID: "3", Name: "mid", Birth: "2025-03-12"},
	}

	// THEN both weekend dates collapse onto the Friday greeting.
	m := Match(people, today)
	assert.ElementsMatch(t, []string{"sat", "sun"}, names(m.Today))
}

func TestMatchNormalizesTheReferenceToo(t *testing.T) {
	// GIVEN a Saturday reference: it shifts back to Friday, so a
	// weekday birth date stored on that Friday matches.
	sat := calendar.NewDate(2025, time.March, 8)
	require.Equal(t, time.Saturday, sat.Weekday())

	people := []Person{{ID: "1", Name: "fri", Birth: "2000-03-07"}} // a Tuesday in 2000

	m := Match(people, sat)
	assert.Equal(t, []string{"fri"}, names(m.Today))
}

func TestMatchWeekWindow(t *testing.T) {
	// 2025-03-10 is a Monday; the window runs through 2025-03-16.
	today := calendar.NewDate(2025, time.March, 10)
	require.Equal(t, time.Monday, today.Weekday())

	people := []Person{
		{ID: "1", Name: "today", Birth: "2003-03-10"},
		{ID: "2", Name: "inside", Birth: "2010-03-12"},
		{ID: "3", Name: "edge", Birth: "2004-03-16"},
		{ID: "4", Name: "outside", Birth: "2004-03-17"},
	}

	m := Match(people, today)
	assert.Contains(t, names(m.ThisWeek), "inside")
	assert.Contains(t, names(m.ThisWeek), "today", "the week window includes the reference day")
	assert.NotContains(t, names(m.ThisWeek), "outside")
}

func TestMatchThisMonthIsRawAndUpcomingOnly(t *testing.T) {
	today := calendar.NewDate(2025, time.March, 10)

	people := []Person{
		{ID: "1", Name: "ahead", Birth: "1990-03-25"},
		{ID: "2", Name: "behind", Birth: "1990-03-05"},
		{ID: "3", Name: "other month", Birth: "1990-04-02"},
	}

	m := Match(people, today)
	assert.Equal(t, []string{"ahead"}, names(m.ThisMonth))
}

func TestMatchSkipsUnparseableDates(t *testing.T) {
	today := calendar.NewDate(2025, time.March, 10)
	people := []Person{{ID: "1", Name: "broken", Birth: "??"}}

	counts := CountOf(people, today)
	assert.Zero(t, counts.Today)
	assert.Zero(t, counts.ThisWeek)
	assert.Zero(t, counts.ThisMonth)
}

func TestExactTodaySkipsNormalization(t *testing.T) {
	// GIVEN a Saturday: the day dashboard greets on the actual date.
	sat := calendar.NewDate(2025, time.March, 8)
	people := []Person{
		{ID: "1", Name: "exact", Birth: "1999-03-08"},
		{ID: "2", Name: "friday", Birth: "2001-03-07"},
	}

	out := ExactToday(people, sat)
	assert.Equal(t, []string{"exact"}, names(out))
}
