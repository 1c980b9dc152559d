/*
Package dueness classifies dated records into due-date buckets.

PURPOSE:
  Tasks, actions, pipeline deals and agenda entries all present the same
  question: is this thing overdue, due today, due within the week, or
  further out? The screens used to re-derive that split independently;
  this package is the single answer.

CONTRACT:
  Classify partitions the items that carry a parseable date into exactly
  four buckets; no item appears twice, items without a date appear
  nowhere. Bucket order within a bucket is input order; call sites that
  need chronological order use SortByDate.

WINDOW:
  "This week" is the static window (today, today+7]: seven calendar days
  from the classification instant, not a Monday-anchored week.
*/
package dueness

import (
	"sort"

	"github.com/carioca/estrategia/calendar"
)

// Item is a record with an optional due date. Due is the zero Date when
// the source field was absent or unparseable.
type Item struct {
	ID    string
	Title string
	Due   calendar.Date
}

// NewItem builds an Item from the raw date string a record carries.
func NewItem(id, title, rawDue string) Item {
	return Item{ID: id, Title: title, Due: calendar.ParseISO(rawDue)}
}

// Buckets is the four-way partition of the dated items.
type Buckets struct {
	Overdue     []Item
	DueToday    []Item
	DueThisWeek []Item
	Later       []Item
}

// Counts summarizes bucket sizes for the widgets.
type Counts struct {
	Overdue     int
	DueToday    int
	DueThisWeek int
	Later       int
}

// WeekWithToday is the team widget's "this week" figure, which counts
// today's items inside the week.
func (c Counts) WeekWithToday() int { return c.DueToday + c.DueThisWeek }

// Classify partitions items by due date relative to today. Comparison is
// on ISO day strings, so time-of-day and timezone never move an item
// across a boundary.
func Classify(items []Item, today calendar.Date) Buckets {
	var b Buckets
	todayISO := today.ISO()
	weekISO := today.AddDays(7).ISO()

	for _, it := range items {
		if it.Due.IsZero() {
			continue
		}
		iso := it.Due.ISO()
		switch {
		case iso < todayISO:
			b.Overdue = append(b.Overdue, it)
		case iso == todayISO:
			b.DueToday = append(b.DueToday, it)
		case iso <= weekISO:
			b.DueThisWeek = append(b.DueThisWeek, it)
		default:
			b.Later = append(b.Later, it)
		}
	}
	return b
}

// CountOf runs Classify and reduces to sizes.
func CountOf(items []Item, today calendar.Date) Counts {
	b := Classify(items, today)
	return Counts{
		Overdue:     len(b.Overdue),
		DueToday:    len(b.DueToday),
		DueThisWeek: len(b.DueThisWeek),
		Later:       len(b.Later),
	}
}

// SortByDate orders items chronologically, title as the tie-break. Sorts
// in place and returns the slice for chaining.
func SortByDate(items []Item) []Item {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].Due.ISO(), items[j].Due.ISO()
		if a != b {
			return a < b
		}
		return items[i].Title < items[j].Title
	})
	return items
}
