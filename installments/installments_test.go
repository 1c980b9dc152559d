package installments

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carioca/estrategia/calendar"
)

func plan(id string, sale calendar.Date, cat Category, value string, paid int) Plan {
	return Plan{ID: id, Proposal: id, SaleDate: sale, Category: cat, Value: ParseValue(value), Paid: paid}
}

func TestDueDayByCategory(t *testing.T) {
	assert.Equal(t, 15, DueDay(CategoryProperty))
	assert.Equal(t, 10, DueDay(CategoryVehicle))
	assert.Equal(t, 10, DueDay(CategoryHeavy))
	assert.Equal(t, 10, DueDay(Category("unknown")))
}

func TestOffsetRule(t *testing.T) {
	// GIVEN a property plan (due day 15)
	// WHEN sold on the 20th, after the due day
	late := plan("a", calendar.NewDate(2025, time.February, 20), CategoryProperty, "1000", 0)
	// THEN the schedule shifts one month
	assert.Equal(t, 1, late.offset())

	// Sold on the 5th, before the due day: no shift
	early := plan("b", calendar.NewDate(2025, time.February, 5), CategoryProperty, "1000", 0)
	assert.Equal(t, 0, early.offset())

	// Sold exactly on the due day: no shift (strictly greater)
	exact := plan("c", calendar.NewDate(2025, time.February, 15), CategoryProperty, "1000", 0)
	assert.Equal(t, 0, exact.offset())
}

func TestPendingInSemesterWorkedExample(t *testing.T) {
	// GIVEN a property plan sold 2025-02-20, value 1000, nothing paid.
	// The sale day (20) is past the due day (15), so installments land in
	// months Mar, Apr, May, Jun - all inside the Jan-Jun semester.
	p := plan("a", calendar.NewDate(2025, time.February, 20), CategoryProperty, "1000", 0)
	today := calendar.NewDate(2025, time.March, 1)

	pending := PendingInSemester([]Plan{p}, today)

	assert.True(t, pending.Equal(decimal.NewFromInt(4000)), "got %s", pending)
}

func TestPendingInSemesterDropsOverflowingInstallments(t *testing.T) {
	// GIVEN a May 20 property sale: offset 1 puts installments in
	// Jun, Jul, Aug, Sep - only June is inside the first semester.
	p := plan("a", calendar.NewDate(2025, time.May, 20), CategoryProperty, "500", 0)
	today := calendar.NewDate(2025, time.June, 1)

	pending := PendingInSemester([]Plan{p}, today)

	assert.True(t, pending.Equal(decimal.NewFromInt(500)), "got %s", pending)
}

func TestPaidInSemesterAppliesNoOffset(t *testing.T) {
	// GIVEN a plan sold 2025-05-20 with two installments paid. The paid
	// enumeration counts from the sale month directly (May, June), even
	// though collection was shifted; both fall inside the first semester.
	p := plan("a", calendar.NewDate(2025, time.May, 20), CategoryProperty, "300", 2)
	today := calendar.NewDate(2025, time.June, 1)

	paid := PaidInSemester([]Plan{p}, today)

	assert.True(t, paid.Equal(decimal.NewFromInt(600)), "got %s", paid)
}

func TestPaidAndPendingSkipUnparseableSaleDates(t *testing.T) {
	p := plan("a", calendar.ParseISO("not-a-date"), CategoryVehicle, "1000", 2)
	today := calendar.NewDate(2025, time.March, 1)

	assert.True(t, PaidInSemester([]Plan{p}, today).IsZero())
	assert.True(t, PendingInSemester([]Plan{p}, today).IsZero())
	assert.Empty(t, DueThisMonth([]Plan{p}, today))
}

func TestParseValueDegradesToZero(t *testing.T) {
	assert.True(t, ParseValue("banana").IsZero())
	assert.True(t, ParseValue("").IsZero())
	assert.True(t, ParseValue("1234.56").Equal(decimal.RequireFromString("1234.56")))
}

func TestDueThisMonth(t *testing.T) {
	today := calendar.NewDate(2025, time.April, 10)

	plans := []Plan{
		// next installment (index 0+1=1? no: offset 0, paid 1 -> index 1)
		// sold January, one paid: next due in February -> too old
		plan("stale", calendar.NewDate(2025, time.January, 5), CategoryVehicle, "100", 1),
		// sold February 20 (offset 1), one paid: next index 2 -> April
		plan("hit", calendar.NewDate(2025, time.February, 20), CategoryProperty, "100", 1),
		// sold March 5, nothing paid: next due March -> previous month, matches
		plan("slipped", calendar.NewDate(2025, time.March, 5), CategoryVehicle, "100", 0),
		// sold April, fully settled
		plan("settled", calendar.NewDate(2025, time.April, 1), CategoryVehicle, "100", 4),
		// sold May: next due ahead of the window
		plan("future", calendar.NewDate(2025, time.May, 5), CategoryVehicle, "100", 0),
	}

	due := DueThisMonth(plans, today)

	ids := make([]string, len(due))
	for i, p := range due {
		ids[i] = p.ID
	}
	assert.ElementsMatch(t, []string{"hit", "slipped"}, ids)
}

func TestDueThisMonthJanuaryCorner(t *testing.T) {
	// GIVEN a plan whose next installment slipped from December.
	// In January the previous-month match would need last year's December,
	// which the same-year requirement excludes. Nothing is due.
	p := plan("dec", calendar.NewDate(2024, time.September, 5), CategoryVehicle, "100", 3)
	today := calendar.NewDate(2025, time.January, 10)

	// next index = 3, due month = Sep+3 = Dec 2024
	assert.Empty(t, DueThisMonth([]Plan{p}, today))
}

func TestDueThisMonthYearCarry(t *testing.T) {
	// GIVEN a November 2024 sale with two paid: next index 2 lands in
	// January 2025, the current month.
	p := plan("carry", calendar.NewDate(2024, time.November, 5), CategoryVehicle, "100", 2)
	today := calendar.NewDate(2025, time.January, 10)

	due := DueThisMonth([]Plan{p}, today)

	require.Len(t, due, 1)
	assert.Equal(t, "carry", due[0].ID)
}

func TestConfirm(t *testing.T) {
	p := plan("a", calendar.NewDate(2025, time.February, 20), CategoryProperty, "1000", 3)

	updated, ok := Confirm(p)
	require.True(t, ok)
	assert.Equal(t, 4, updated.Paid)
	assert.True(t, updated.Settled())
	assert.Equal(t, 3, p.Paid, "input plan is not mutated")

	_, ok = Confirm(updated)
	assert.False(t, ok, "settled plans reject further confirmation")
}
