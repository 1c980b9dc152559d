/*
Package birthdays matches team members' birthdays against a reference day.

PURPOSE:
  "Who do we greet today" is an operational question: nobody greets on a
  Saturday, so weekend birthdays are celebrated on the preceding Friday.
  The matcher therefore works on weekend-normalized month/day keys for
  the today and this-week modes, while the this-month mode is a raw
  calendar match (upcoming birthdays in the current month, no shifting).

NORMALIZATION RULE:
  Saturday shifts back one day, Sunday two, landing on Friday. Both the
  reference date and each stored birth date are normalized, so a
  birthday that falls on a weekend matches when the reference day is the
  preceding Friday - and does not match on the weekend day itself.

YEARS:
  Matching ignores the birth year entirely; a birthday is a recurring
  month/day event.
*/
package birthdays

import (
	"strconv"
	"strings"

	"github.com/carioca/estrategia/calendar"
)

// Person is a read-only snapshot of a team member.
type Person struct {
	ID    string
	Name  string
	Birth string // stored ISO date "YYYY-MM-DD"
}

// Matches holds the three match lists for a reference day.
type Matches struct {
	Today     []Person
	ThisWeek  []Person
	ThisMonth []Person
}

// Counts are the widget figures.
type Counts struct {
	Today     int
	ThisWeek  int
	ThisMonth int
}

// Match evaluates every person against the reference day. People whose
// stored date does not parse are skipped.
func Match(people []Person, today calendar.Date) Matches {
	ref := today.ShiftWeekendToFriday()
	todayKey := ref.MonthDay()

	// The week window is the 7 calendar days from the normalized
	// reference, inclusive.
	week := make(map[string]bool, 7)
	for i := 0; i < 7; i++ {
		week[ref.AddDays(i).MonthDay()] = true
	}

	var m Matches
	for _, p := range people {
		bd := calendar.ParseISO(p.Birth)
		if !bd.IsZero() {
			key := bd.ShiftWeekendToFriday().MonthDay()
			if key == todayKey {
				m.Today = append(m.Today, p)
			}
			if week[key] {
				m.ThisWeek = append(m.ThisWeek, p)
			}
		}
		if monthUpcoming(p.Birth, ref) {
			m.ThisMonth = append(m.ThisMonth, p)
		}
	}
	return m
}

// CountOf reduces Match to the widget numbers.
func CountOf(people []Person, today calendar.Date) Counts {
	m := Match(people, today)
	return Counts{Today: len(m.Today), ThisWeek: len(m.ThisWeek), ThisMonth: len(m.ThisMonth)}
}

// ExactToday is the day-dashboard variant: a raw month/day match with no
// weekend normalization on either side.
func ExactToday(people []Person, today calendar.Date) []Person {
	key := today.MonthDay()
	var out []Person
	for _, p := range people {
		bd := calendar.ParseISO(p.Birth)
		if !bd.IsZero() && bd.MonthDay() == key {
			out = append(out, p)
		}
	}
	return out
}

// monthUpcoming reports a raw-calendar match for the this-month mode:
// same month as the reference, day still ahead of it.
func monthUpcoming(rawBirth string, ref calendar.Date) bool {
	parts := strings.Split(rawBirth, "-")
	if len(parts) < 3 {
		return false
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return false
	}
	day, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return false
	}
	return month == int(ref.Month()) && day > ref.Day()
}
