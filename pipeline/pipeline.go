/*
Package pipeline splits the sales pipeline ("esteira") into month windows
and operation categories.

PURPOSE:
  The pipeline screen shows deals expected to close this calendar month
  versus everything further out, grouped by the operation taxonomy:
  corporate credit (Pessoa Juridica), housing (Habitação) and the rest.
  Undated deals are parked in the upcoming half rather than dropped - a
  deal without a forecast date is still in the pipeline.
*/
package pipeline

import (
	"sort"
	"strings"

	"github.com/carioca/estrategia/calendar"
	"github.com/shopspring/decimal"
)

// Category is the operation taxonomy the screen groups by.
type Category string

const (
	CategoryCorporate Category = "Pessoa Juridica"
	CategoryHousing   Category = "Habitação"
	CategoryOther     Category = "Outras"
)

// Deal is a read-only snapshot of a pipeline entry.
type Deal struct {
	ID        string
	Name      string
	TaxID     string // CNPJ or CPF
	Operation string
	Value     decimal.Decimal
	Date      calendar.Date // forecast close date; zero = undated
}

// CategoryOf maps an operation label to its category. The corporate
// markers win over the housing ones when both appear.
func CategoryOf(operation string) Category {
	op := strings.ToLower(operation)
	switch {
	case op == "":
		return CategoryOther
	case strings.Contains(op, "livre"), strings.Contains(op, "direcionado"), strings.Contains(op, "pj"):
		return CategoryCorporate
	case strings.Contains(op, "sbpe"), strings.Contains(op, "fgts"), strings.Contains(op, "egi"),
		strings.Contains(op, "habitação"), strings.Contains(op, "habitacao"):
		return CategoryHousing
	default:
		return CategoryOther
	}
}

// Split separates current-month deals from upcoming ones.
type Split struct {
	CurrentMonth []Deal
	Upcoming     []Deal
}

// SplitByMonth partitions deals against today's calendar month. Dated
// deals inside [first, last day] are current; later ones and undated
// ones are upcoming. Both halves come back date-sorted.
func SplitByMonth(deals []Deal, today calendar.Date) Split {
	monthStart := today.StartOfMonth()
	monthEnd := today.EndOfMonth()

	var s Split
	for _, d := range deals {
		switch {
		case d.Date.IsZero():
			s.Upcoming = append(s.Upcoming, d)
		case d.Date.AfterOrEqual(monthStart) && d.Date.BeforeOrEqual(monthEnd):
			s.CurrentMonth = append(s.CurrentMonth, d)
		case d.Date.After(monthEnd):
			s.Upcoming = append(s.Upcoming, d)
		}
		// Deals dated before the month window are neither current nor
		// upcoming; the day dashboard reports them as overdue instead.
	}
	sortByDate(s.CurrentMonth)
	sortByDate(s.Upcoming)
	return s
}

// GroupByCategory buckets deals by operation category, preserving order.
func GroupByCategory(deals []Deal) map[Category][]Deal {
	groups := map[Category][]Deal{
		CategoryCorporate: nil,
		CategoryHousing:   nil,
		CategoryOther:     nil,
	}
	for _, d := range deals {
		cat := CategoryOf(d.Operation)
		groups[cat] = append(groups[cat], d)
	}
	return groups
}

func sortByDate(deals []Deal) {
	sort.SliceStable(deals, func(i, j int) bool {
		return deals[i].Date.ISO() < deals[j].Date.ISO()
	})
}
