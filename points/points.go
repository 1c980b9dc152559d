/*
Package points implements the TDV points accrual schedule.

PURPOSE:
  A TDV contract pays a fixed number of points per monthly period for a
  counted number of remaining months. Each contract tracks its next due
  date in the "DD/MM" notation (legacy rows carry a bare day, whose month
  defaults to the current one). The dashboard needs two figures with
  intentionally different cardinalities:

    - points this month: contracts whose next period matures this cycle
      (next-due month is the current or the immediately preceding month)
      contribute at most ONE period's points;
    - points this semester: each contract contributes one period for
      every due month from its next-due month to the semester end (capped
      by its remaining months), so a single contract may contribute
      several periods.

  In both, a period only counts once its due date is strictly after the
  sale date - a contract sold mid-month does not accrue the period that
  matured before the sale existed.

SETTLED CONTRACTS:
  remaining months <= 0 means fully settled: excluded everywhere.
*/
package points

import (
	"sort"
	"time"

	"github.com/carioca/estrategia/calendar"
)

// Plan is a read-only snapshot of a TDV contract.
type Plan struct {
	ID        string
	Proposal  string
	Remaining int    // months still to collect; <=0 means settled
	NextDue   string // "DD/MM" marker, or legacy bare day
	Points    int    // points per monthly period
	SaleDate  calendar.Date
}

// nextDue resolves the plan's due marker against today's month for the
// legacy bare-day form.
func (p Plan) nextDue(today calendar.Date) (day, monthIndex int) {
	return calendar.ParseDayMonth(p.NextDue, today.MonthIndex())
}

// dueDateIn places the plan's due day inside a (0-based) month of the
// given year. Overflowing days normalize through the calendar, same as
// the stored markers do when re-encoded.
func dueDateIn(year, monthIndex, day int) calendar.Date {
	return calendar.NewDate(year, time.Month(monthIndex+1), day)
}

// ThisMonth sums one period's points for every upcoming plan.
func ThisMonth(plans []Plan, today calendar.Date) int {
	total := 0
	for _, p := range Upcoming(plans, today) {
		total += p.Points
	}
	return total
}

// Upcoming lists the active plans whose next period matures this cycle:
// next-due month is the current or the immediately preceding month, and
// the due date is strictly after the sale date. Sorted by (month, day).
func Upcoming(plans []Plan, today calendar.Date) []Plan {
	year := today.Year()
	month := today.MonthIndex()
	prevMonth := month - 1
	if month == 0 {
		prevMonth = 11
	}

	var list []Plan
	for _, p := range plans {
		if p.Remaining <= 0 || p.SaleDate.IsZero() {
			continue
		}
		day, dueMonth := p.nextDue(today)
		if dueMonth != month && dueMonth != prevMonth {
			continue
		}
		if !dueDateIn(year, dueMonth, day).After(p.SaleDate) {
			continue
		}
		list = append(list, p)
	}
	return sortByDue(list, today)
}

// Overdue lists the active plans whose next-due month sits one to three
// months behind the current one and whose due date has already passed.
func Overdue(plans []Plan, today calendar.Date) []Plan {
	year := today.Year()
	month := today.MonthIndex()
	behind := map[int]bool{
		(month + 11) % 12: true,
		(month + 10) % 12: true,
		(month + 9) % 12:  true,
	}

	var list []Plan
	for _, p := range plans {
		if p.Remaining <= 0 {
			continue
		}
		day, dueMonth := p.nextDue(today)
		if !behind[dueMonth] {
			continue
		}
		if dueDateIn(year, dueMonth, day).After(today) {
			continue
		}
		list = append(list, p)
	}
	return sortByDue(list, today)
}

// ThisSemester sums, per plan, one period's points for every due month
// from the next-due month through the semester end, capped by the
// plan's remaining months, counting only months whose due date falls
// strictly after the sale date.
func ThisSemester(plans []Plan, today calendar.Date) int {
	year := today.Year()
	semEnd := calendar.SemesterOf(today).End

	total := 0
	for _, p := range plans {
		if p.Remaining <= 0 || p.SaleDate.IsZero() {
			continue
		}
		day, firstMonth := p.nextDue(today)
		lastMonth := firstMonth + p.Remaining - 1
		if lastMonth > semEnd {
			lastMonth = semEnd
		}
		for m := firstMonth; m <= lastMonth; m++ {
			if dueDateIn(year, m, day).After(p.SaleDate) {
				total += p.Points
			}
		}
	}
	return total
}

// Confirm records one collected period: the remaining counter drops
// (floored at zero) and the next-due marker advances exactly one
// calendar month, December wrapping into January.
func Confirm(p Plan, today calendar.Date) Plan {
	day, month := p.nextDue(today)
	// Month index +1 lands in the following month; time.Date wraps a
	// December overflow into January of the next year.
	next := calendar.NewDate(today.Year(), time.Month(month+2), day)

	p.Remaining--
	if p.Remaining < 0 {
		p.Remaining = 0
	}
	p.NextDue = calendar.FormatDayMonth(next.Day(), next.MonthIndex(), next.Year())
	return p
}

func sortByDue(list []Plan, today calendar.Date) []Plan {
	sort.SliceStable(list, func(i, j int) bool {
		di, mi := list[i].nextDue(today)
		dj, mj := list[j].nextDue(today)
		if mi != mj {
			return mi < mj
		}
		return di < dj
	})
	return list
}
