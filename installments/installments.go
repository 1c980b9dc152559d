/*
Package installments implements the Consórcio installment schedule.

PURPOSE:
  A consortium sale is collected in four monthly installments of a fixed
  value. The due day depends on the plan category (property plans collect
  on the 15th, everything else on the 10th), and a sale closed after its
  category's due day pushes the whole schedule one month forward. This
  package answers the two dashboard figures (paid and pending value
  inside the current semester) and lists the plans whose next installment
  is due this month.

THE OFFSET RULE:
  saleDay > dueDay(category)  =>  offset = 1, else 0.
  Installment k (1-indexed) falls in continuous month index
      saleMonth + offset + (k-1).
  The offset is a one-time shift for the whole plan, never recomputed per
  installment. Paid-total enumeration deliberately applies NO offset:
  settled installments are counted against the sale month directly.

MONTH INDEXES:
  Months are compared on a continuous 0-based index relative to the sale
  year. An index past 11 never lands inside a semester window; an actual
  calendar date is only constructed when the next-due month has to carry
  a year overflow.

AMOUNTS:
  Installment values are decimal.Decimal; string amounts that fail to
  parse count as zero rather than poisoning a total.
*/
package installments

import (
	"github.com/carioca/estrategia/calendar"
	"github.com/shopspring/decimal"
)

// Category is the consortium plan taxonomy.
type Category string

const (
	CategoryProperty Category = "imovel"
	CategoryVehicle  Category = "veiculo"
	CategoryHeavy    Category = "pesado"
)

// TotalInstallments is fixed for consortium plans.
const TotalInstallments = 4

// DueDay returns the category's collection day of month.
func DueDay(c Category) int {
	if c == CategoryProperty {
		return 15
	}
	return 10
}

// Plan is a read-only snapshot of a consortium sale.
type Plan struct {
	ID       string
	Proposal string
	SaleDate calendar.Date // zero when the stored date was unparseable
	Category Category
	Value    decimal.Decimal // value of one installment
	Paid     int             // installments already confirmed, 0..4
}

// Settled reports whether every installment has been confirmed. Settled
// plans allow no further confirmation and never appear in DueThisMonth.
func (p Plan) Settled() bool { return p.Paid >= TotalInstallments }

// offset is the one-time schedule shift: a sale closed after the
// category due day collects its first installment the following month.
func (p Plan) offset() int {
	if p.SaleDate.Day() > DueDay(p.Category) {
		return 1
	}
	return 0
}

// ParseValue converts the stored amount string, degrading to zero.
func ParseValue(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// PaidInSemester sums the value of already-paid installments whose month
// falls inside today's semester window.
func PaidInSemester(plans []Plan, today calendar.Date) decimal.Decimal {
	sem := calendar.SemesterOf(today)
	total := decimal.Zero

	for _, p := range plans {
		if p.SaleDate.IsZero() {
			continue
		}
		saleMonth := p.SaleDate.MonthIndex()
		for k := 1; k <= p.Paid && k <= TotalInstallments; k++ {
			if sem.ContainsIndex(saleMonth + (k - 1)) {
				total = total.Add(p.Value)
			}
		}
	}
	return total
}

// PendingInSemester sums the value of not-yet-paid installments whose
// offset-shifted month falls inside today's semester window.
func PendingInSemester(plans []Plan, today calendar.Date) decimal.Decimal {
	sem := calendar.SemesterOf(today)
	total := decimal.Zero

	for _, p := range plans {
		if p.SaleDate.IsZero() {
			continue
		}
		saleMonth := p.SaleDate.MonthIndex()
		shift := p.offset()
		for k := p.Paid + 1; k <= TotalInstallments; k++ {
			if sem.ContainsIndex(saleMonth + shift + (k - 1)) {
				total = total.Add(p.Value)
			}
		}
	}
	return total
}

// DueThisMonth lists the plans whose next pending installment is due in
// the current month, or slipped from the previous month of the same
// year. In January only a current-month match is possible: last year's
// December slippage is out of window by the year test.
func DueThisMonth(plans []Plan, today calendar.Date) []Plan {
	year := today.Year()
	month := today.MonthIndex()

	prevMonth := month - 1
	prevYear := year
	if month == 0 {
		prevMonth = 11
		prevYear = year - 1
	}

	var due []Plan
	for _, p := range plans {
		if p.SaleDate.IsZero() || p.Settled() {
			continue
		}

		nextIndex := p.offset() + p.Paid // 0-based index of the next installment
		dueMonth := p.SaleDate.MonthIndex() + nextIndex
		dueYear := p.SaleDate.Year() + floorDiv(dueMonth, 12)
		normMonth := ((dueMonth % 12) + 12) % 12

		if dueYear != year {
			continue
		}
		if normMonth == month || (normMonth == prevMonth && dueYear == prevYear) {
			due = append(due, p)
		}
	}
	return due
}

// Confirm records one installment payment, capped at the total. The
// second return is false when the plan was already settled and the
// confirmation did not apply.
func Confirm(p Plan) (Plan, bool) {
	if p.Settled() {
		return p, false
	}
	p.Paid++
	if p.Paid > TotalInstallments {
		p.Paid = TotalInstallments
	}
	return p, true
}

// floorDiv is integer division rounding toward negative infinity, the
// year-carry the continuous month index needs.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
