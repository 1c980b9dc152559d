/*
Package feedback computes the team feedback score summary.

The widget shows the team average, the total of registered feedback
entries, and the pass/fail split at the cutoff score of 7. Entries with
non-numeric scores still count toward the total but stay out of the
average and the split.
*/
package feedback

import (
	"math"
	"strconv"
)

// PassingScore is the approval cutoff.
const PassingScore = 7

// Entry is a read-only snapshot of a feedback record. Score is kept raw:
// the upstream rows carry it as free text.
type Entry struct {
	ID       string
	MemberID string
	Score    string
	Note     string
}

// Stats is the widget summary.
type Stats struct {
	Total    int
	Approved int // numeric score >= PassingScore
	Failed   int // numeric score < PassingScore
	Average  float64
	Scored   int // entries with a parseable score; 0 means Average is meaningless
}

// Compute reduces the entries to the widget figures. The average is
// rounded to two decimal places over the parseable scores only.
func Compute(entries []Entry) Stats {
	s := Stats{Total: len(entries)}

	sum := 0.0
	for _, e := range entries {
		v, err := strconv.ParseFloat(e.Score, 64)
		if err != nil {
			continue
		}
		s.Scored++
		sum += v
		if v >= PassingScore {
			s.Approved++
		} else {
			s.Failed++
		}
	}

	if s.Scored > 0 {
		s.Average = math.Round(sum/float64(s.Scored)*100) / 100
	}
	return s
}
