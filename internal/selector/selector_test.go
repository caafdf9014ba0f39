package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/studydrill/studydrill/internal/practice"
)

func question(id int64, seen, failed int) practice.Question {
	return practice.Question{
		ID:          id,
		TimesSeen:   seen,
		TimesFailed: failed,
		FailRate:    practice.DeriveFailRate(seen, failed),
	}
}

func TestWeight(t *testing.T) {
	cases := []struct {
		name   string
		seen   int
		failed int
		want   float64
	}{
		{name: "never seen gets fresh boost", seen: 0, failed: 0, want: 1.5},
		{name: "under-seen perfect record keeps boost", seen: 1, failed: 0, want: 1.5},
		{name: "well-seen always failed", seen: 10, failed: 10, want: 4.0},
		{name: "boost and fail rate stack", seen: 2, failed: 2, want: 1.5 + 3.0},
		{name: "well-seen never failed floors at one", seen: 10, failed: 0, want: 1.0},
		{name: "boost cutoff at three attempts", seen: 3, failed: 0, want: 1.0},
		{name: "half fail rate", seen: 4, failed: 2, want: 2.5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, Weight(question(1, tc.seen, tc.failed)), 1e-9)
		})
	}
}

func TestPickEmptySet(t *testing.T) {
	s := New(1)
	_, ok := s.Pick(nil)
	assert.False(t, ok)
	_, ok = s.Pick([]practice.Question{})
	assert.False(t, ok)
}

func TestPickSingleQuestion(t *testing.T) {
	s := New(1)
	q := question(42, 100, 0)
	for i := 0; i < 50; i++ {
		got, ok := s.Pick([]practice.Question{q})
		assert.True(t, ok)
		assert.Equal(t, int64(42), got.ID)
	}
}

func TestPickConvergesToWeightRatio(t *testing.T) {
	// Weights 1.0 (seen often, never failed) and 4.0 (always failed):
	// the second question should win ~4/5 of draws.
	s := New(7)
	set := []practice.Question{
		question(1, 10, 0),
		question(2, 10, 10),
	}

	const draws = 50000
	var second int
	for i := 0; i < draws; i++ {
		got, ok := s.Pick(set)
		assert.True(t, ok)
		if got.ID == 2 {
			second++
		}
	}

	assert.InDelta(t, 0.8, float64(second)/draws, 0.02)
}

func TestPickUniformWhenAllUnseen(t *testing.T) {
	// All-zero counters give every question the same weight (1.5).
	s := New(11)
	set := []practice.Question{
		question(1, 0, 0),
		question(2, 0, 0),
		question(3, 0, 0),
	}

	counts := map[int64]int{}
	const draws = 30000
	for i := 0; i < draws; i++ {
		got, _ := s.Pick(set)
		counts[got.ID]++
	}

	for id, n := range counts {
		assert.InDeltaf(t, 1.0/3.0, float64(n)/draws, 0.02, "question %d", id)
	}
}
