/*
Package calendar provides the shared date primitives for the dashboard.

PURPOSE:
  Every screen of the back office reasons about the same handful of date
  concepts: a day-granular date (time-of-day is never significant), the
  current half-year window, a continuous month index that may run past
  December, the "DD/MM" next-due notation used by the TDV records, and
  the weekend-to-Friday shift applied to birthday greetings.

KEY CONCEPTS IN THIS FILE:
  - Date: A day-granular point in time (zero value = missing/unparseable)
  - Semester: The Jan-Jun or Jul-Dec window, as 0-based month indexes
  - ParseDayMonth: The "DD/MM" convention, with the legacy bare-day form

DESIGN PRINCIPLES:
  1. Injectability: nothing here reads the wall clock except Today(),
     which exists for call sites; calculators take a Date parameter.
  2. Degradation: parsers return the zero Date instead of an error; a
     record with a broken date drops out of calculations, it never fails
     a dashboard render.
  3. String comparison: dates compare as ISO "YYYY-MM-DD" strings where
     the screens did, so day boundaries are immune to timezone drift.

SEE ALSO:
  - dueness: due-date bucket classification
  - installments, points: month-index arithmetic over these primitives
*/
package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// DATE - Day-granular point in time
// =============================================================================

// Date is a calendar day. The zero value means "no date" and is what the
// parsers return for malformed input.
type Date struct {
	Time time.Time
}

// NewDate constructs a Date at day granularity in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current wall-clock day. Calculators never call this;
// it exists for the HTTP and digest layers.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// ParseISO accepts "YYYY-MM-DD" and anything that starts with it (the
// agenda rows arrive as full RFC 3339 timestamps). Returns the zero Date
// when the input does not parse.
func ParseISO(s string) Date {
	s = strings.TrimSpace(s)
	if len(s) < 10 {
		return Date{}
	}
	t, err := time.Parse("2006-01-02", s[:10])
	if err != nil {
		return Date{}
	}
	return Date{Time: t}
}

// Comparison
func (d Date) IsZero() bool          { return d.Time.IsZero() }
func (d Date) Before(o Date) bool    { return d.normalize().Before(o.normalize()) }
func (d Date) Equal(o Date) bool     { return d.normalize().Equal(o.normalize()) }
func (d Date) After(o Date) bool     { return d.normalize().After(o.normalize()) }
func (d Date) BeforeOrEqual(o Date) bool { return !d.After(o) }
func (d Date) AfterOrEqual(o Date) bool  { return !d.Before(o) }

func (d Date) normalize() time.Time {
	return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// Arithmetic
func (d Date) AddDays(n int) Date   { return Date{Time: d.Time.AddDate(0, 0, n)} }
func (d Date) AddMonths(n int) Date { return Date{Time: d.Time.AddDate(0, n, 0)} }

// Properties
func (d Date) Year() int             { return d.Time.Year() }
func (d Date) Month() time.Month     { return d.Time.Month() }
func (d Date) Day() int              { return d.Time.Day() }
func (d Date) Weekday() time.Weekday { return d.normalize().Weekday() }

// MonthIndex returns the 0-based month (January = 0), the convention the
// installment and points arithmetic runs on.
func (d Date) MonthIndex() int { return int(d.Time.Month()) - 1 }

// ISO formats as "2006-01-02"; the zero Date formats as "".
func (d Date) ISO() string {
	if d.IsZero() {
		return ""
	}
	return d.normalize().Format("2006-01-02")
}

// MonthDay formats as "MM-DD", the recurring-event key used for birthday
// matching (year is intentionally absent).
func (d Date) MonthDay() string {
	return d.normalize().Format("01-02")
}

// ShiftWeekendToFriday moves Saturday back one day and Sunday back two,
// so weekend dates land on the preceding Friday. Weekdays pass through.
func (d Date) ShiftWeekendToFriday() Date {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDays(-1)
	case time.Sunday:
		return d.AddDays(-2)
	default:
		return d
	}
}

// StartOfMonth and EndOfMonth bound the current calendar month.
func (d Date) StartOfMonth() Date { return NewDate(d.Year(), d.Month(), 1) }
func (d Date) EndOfMonth() Date {
	return NewDate(d.Year(), d.Month(), 1).AddMonths(1).AddDays(-1)
}

// =============================================================================
// SEMESTER - Half-year window, recomputed per call from "today"
// =============================================================================

// Semester is the Jan-Jun or Jul-Dec bucket as inclusive 0-based month
// indexes. Installment months are compared against it on a continuous
// index that may exceed 11; such months simply never land in the window,
// which is the intended behavior for schedules that overflow the year.
type Semester struct {
	Start int
	End   int
}

// SemesterOf returns the half-year containing the given day.
func SemesterOf(d Date) Semester {
	if d.MonthIndex() <= 5 {
		return Semester{Start: 0, End: 5}
	}
	return Semester{Start: 6, End: 11}
}

// ContainsIndex reports whether a continuous month index falls inside the
// window. No modulo wrap: index 13 is not February.
func (s Semester) ContainsIndex(m int) bool {
	return m >= s.Start && m <= s.End
}

func (s Semester) String() string {
	return fmt.Sprintf("[%s..%s]", time.Month(s.Start+1), time.Month(s.End+1))
}

// =============================================================================
// DAY/MONTH NOTATION - The "DD/MM" next-due convention
// =============================================================================

// ParseDayMonth parses the "DD/MM" next-due marker. The legacy form is a
// bare day ("18"), whose month defaults to fallbackMonth (0-based).
// Malformed days default to 1; malformed months to fallbackMonth.
func ParseDayMonth(text string, fallbackMonth int) (day, monthIndex int) {
	parts := strings.Split(strings.TrimSpace(text), "/")
	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || day <= 0 {
		day = 1
	}
	monthIndex = fallbackMonth
	if len(parts) > 1 {
		if m, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
			monthIndex = m - 1
		}
	}
	return day, monthIndex
}

// FormatDayMonth renders a (day, 0-based month) pair back to "DD/MM",
// normalizing overflow through the calendar (month index 12 wraps to
// January, day 31 in a short month rolls over).
func FormatDayMonth(day, monthIndex, year int) string {
	t := time.Date(year, time.Month(monthIndex+1), day, 0, 0, 0, 0, time.UTC)
	return t.Format("02/01")
}
