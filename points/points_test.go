package points

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carioca/estrategia/calendar"
)

func tdv(id string, remaining int, nextDue string, pts int, sale calendar.Date) Plan {
	return Plan{ID: id, Proposal: id, Remaining: remaining, NextDue: nextDue, Points: pts, SaleDate: sale}
}

func TestThisMonthWorkedExample(t *testing.T) {
	// GIVEN a contract sold 2025-01-10, due marker "20/01", 3 months
	// remaining, 50 points per period.
	p := tdv("a", 3, "20/01", 50, calendar.NewDate(2025, time.January, 10))

	// WHEN today is 2025-02-01: January is the immediately preceding
	// month and Jan 20 is after the sale date.
	today := calendar.NewDate(2025, time.February, 1)

	// THEN exactly one period's points count this month.
	assert.Equal(t, 50, ThisMonth([]Plan{p}, today))
}

func TestUpcomingFilters(t *testing.T) {
	today := calendar.NewDate(2025, time.March, 15)
	sold2024 := calendar.NewDate(2024, time.June, 1)

	plans := []Plan{
		tdv("current", 5, "20/03", 10, sold2024),
		tdv("previous", 5, "10/02", 10, sold2024),
		tdv("too old", 5, "10/01", 10, sold2024),
		tdv("future", 5, "10/04", 10, sold2024),
		tdv("settled", 0, "20/03", 10, sold2024),
		// Due Mar 5 but sold Mar 10 of the current cycle: the period
		// matured before the sale existed, so it does not count.
		tdv("presale", 5, "05/03", 10, calendar.NewDate(2025, time.March, 10)),
		tdv("undated", 5, "20/03", 10, calendar.Date{}),
	}

	up := Upcoming(plans, today)

	ids := make([]string, len(up))
	for i, p := range up {
		ids[i] = p.ID
	}
	assert.Equal(t, []string{"previous", "current"}, ids, "sorted by (month, day)")
}

func TestUpcomingLegacyBareDay(t *testing.T) {
	// GIVEN a legacy marker carrying only the day: the month defaults to
	// the current one.
	p := tdv("legacy", 2, "18", 25, calendar.NewDate(2024, time.June, 1))
	today := calendar.NewDate(2025, time.March, 15)

	up := Upcoming([]Plan{p}, today)

	require.Len(t, up, 1)
	assert.Equal(t, 25, ThisMonth([]Plan{p}, today))
}

func TestUpcomingJanuaryWrap(t *testing.T) {
	// In January the preceding month is December.
	p := tdv("dec", 2, "20/12", 30, calendar.NewDate(2024, time.June, 1))
	today := calendar.NewDate(2025, time.January, 10)

	assert.Equal(t, 30, ThisMonth([]Plan{p}, today))
}

func TestOverdue(t *testing.T) {
	today := calendar.NewDate(2025, time.May, 15)
	sold := calendar.NewDate(2024, time.June, 1)

	plans := []Plan{
		tdv("one back", 3, "10/04", 10, sold),   // April, passed
		tdv("three back", 3, "10/02", 10, sold), // February, passed
		tdv("four back", 3, "10/01", 10, sold),  // January: outside the 3-month lookback
		tdv("current", 3, "10/05", 10, sold),    // current month is not overdue
		tdv("settled", 0, "10/04", 10, sold),
	}

	over := Overdue(plans, today)

	ids := make([]string, len(over))
	for i, p := range over {
		ids[i] = p.ID
	}
	assert.Equal(t, []string{"three back", "one back"}, ids)
}

func TestThisSemesterEnumeratesPerMonth(t *testing.T) {
	// GIVEN a contract due first in March with 2 months remaining:
	// periods in March and April, both inside the Jan-Jun semester.
	p := tdv("a", 2, "20/03", 50, calendar.NewDate(2025, time.January, 10))
	today := calendar.NewDate(2025, time.March, 1)

	assert.Equal(t, 100, ThisSemester([]Plan{p}, today))
}

func TestThisSemesterCapsAtSemesterEnd(t *testing.T) {
	// GIVEN 12 remaining months starting in May: only May and June fit
	// inside the first semester.
	p := tdv("a", 12, "20/05", 10, calendar.NewDate(2025, time.January, 10))
	today := calendar.NewDate(2025, time.May, 1)

	assert.Equal(t, 20, ThisSemester([]Plan{p}, today))
}

func TestThisSemesterSkipsPreSalePeriods(t *testing.T) {
	// GIVEN a contract sold April 25 with periods due on the 20th from
	// April on: the April period matured before the sale, so only May
	// and June count.
	p := tdv("a", 6, "20/04", 10, calendar.NewDate(2025, time.April, 25))
	today := calendar.NewDate(2025, time.April, 28)

	assert.Equal(t, 20, ThisSemester([]Plan{p}, today))
}

func TestConfirmAdvancesOneMonth(t *testing.T) {
	p := tdv("a", 3, "20/01", 50, calendar.NewDate(2025, time.January, 10))
	today := calendar.NewDate(2025, time.February, 1)

	updated := Confirm(p, today)

	assert.Equal(t, 2, updated.Remaining)
	assert.Equal(t, "20/02", updated.NextDue)
	assert.Equal(t, 3, p.Remaining, "input plan is not mutated")
}

func TestConfirmWrapsDecember(t *testing.T) {
	p := tdv("a", 2, "15/12", 50, calendar.NewDate(2025, time.January, 10))
	today := calendar.NewDate(2025, time.December, 10)

	updated := Confirm(p, today)

	assert.Equal(t, "15/01", updated.NextDue)
}

func TestConfirmFloorsRemainingAtZero(t *testing.T) {
	p := tdv("a", 0, "20/01", 50, calendar.NewDate(2025, time.January, 10))

	updated := Confirm(p, calendar.NewDate(2025, time.February, 1))

	assert.Equal(t, 0, updated.Remaining)
}
