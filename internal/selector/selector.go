package selector

import (
	"math/rand"
	"sync"
	"time"

	"github.com/studydrill/studydrill/internal/practice"
)

// Weighting constants. A question needs fewer than minSeenForNoBoost
// recorded attempts to receive the fresh-material boost.
const (
	baseWeight        = 1.0
	freshBoost        = 1.5
	failRateScale     = 3.0
	minSeenForNoBoost = 3
)

// Selector draws one question per call, biased toward material the user
// is weak on or has rarely seen. Each draw is independent: there is no
// memory of past picks and no guarantee against immediate repeats.
type Selector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New constructs a selector. A non-positive seed uses the current time,
// tests pass a fixed seed for deterministic draws.
func New(seed int64) *Selector {
	if seed <= 0 {
		seed = time.Now().UnixNano()
	}
	return &Selector{rng: rand.New(rand.NewSource(seed))}
}

// Weight computes the selection weight for a question:
//
//	weight = 1.0
//	if times_seen < 3: weight *= 1.5
//	weight += fail_rate * 3.0
//
// The fresh boost surfaces under-seen questions regardless of performance;
// the additive term grows linearly with historical fail rate, up to +3.0
// at a 100% fail rate. The minimum weight is 1.0, so every question keeps
// a non-zero probability of selection.
func Weight(q practice.Question) float64 {
	weight := baseWeight
	if q.TimesSeen < minSeenForNoBoost {
		weight *= freshBoost
	}
	return weight + practice.DeriveFailRate(q.TimesSeen, q.TimesFailed)*failRateScale
}

// Pick performs a single weighted random draw with replacement.
// ok is false when the question set is empty.
func (s *Selector) Pick(questions []practice.Question) (practice.Question, bool) {
	if len(questions) == 0 {
		return practice.Question{}, false
	}

	weights := make([]float64, len(questions))
	var total float64
	for i, q := range questions {
		weights[i] = Weight(q)
		total += weights[i]
	}

	s.mu.Lock()
	target := s.rng.Float64() * total
	s.mu.Unlock()

	var cumulative float64
	for i, w := range weights {
		cumulative += w
		if target < cumulative {
			return questions[i], true
		}
	}
	// Float rounding can leave target at the very end of the range.
	return questions[len(questions)-1], true
}
