package feedback

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeStats(t *testing.T) {
	entries := []Entry{
		{ID: "1", MemberID: "m1", Score: "8"},
		{ID: "2", MemberID: "m1", Score: "7"}, // passing is inclusive
		{ID: "3", MemberID: "m2", Score: "5.5"},
		{ID: "4", MemberID: "m2", Score: ""},        // unscored
		{ID: "5", MemberID: "m3", Score: "pending"}, // unscored
	}

	s := Compute(entries)

	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 3, s.Scored)
	assert.Equal(t, 2, s.Approved)
	assert.Equal(t, 1, s.Failed)
	// (8 + 7 + 5.5) / 3 = 6.8333... -> 6.83
	assert.InDelta(t, 6.83, s.Average, 0.001)
}

func TestComputeEmpty(t *testing.T) {
	s := Compute(nil)

	assert.Zero(t, s.Total)
	assert.Zero(t, s.Scored)
	assert.Zero(t, s.Average)
}

func TestComputeRoundsToTwoDecimals(t *testing.T) {
	s := Compute([]Entry{
		{ID: "1", Score: "7"},
		{ID: "2", Score: "8"},
		{ID: "3", Score: "8"},
	})

	// 23/3 = 7.6666... -> 7.67
	assert.InDelta(t, 7.67, s.Average, 0.0001)
}
