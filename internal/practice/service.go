package practice

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
)

// QuestionStore is the durable record the service reads and mutates.
// Implemented by the Postgres repository; mocked in tests.
type QuestionStore interface {
	Count(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id int64) (Question, error)
	GetAll(ctx context.Context) ([]Question, error)
	RecordAttempt(ctx context.Context, id int64, passed bool) error
	ResetAll(ctx context.Context) error
}

// Picker chooses one question from the current set; ok is false when
// the set is empty.
type Picker interface {
	Pick(questions []Question) (Question, bool)
}

// Service orchestrates the question store and the weighted selector.
type Service struct {
	store  QuestionStore
	picker Picker
	logger zerolog.Logger
}

// NewService constructs the practice service.
func NewService(store QuestionStore, picker Picker, logger zerolog.Logger) *Service {
	return &Service{
		store:  store,
		picker: picker,
		logger: logger.With().Str("component", "practice").Logger(),
	}
}

// NextQuestion draws the next question to present, biased by the
// per-question counters. ErrNoQuestions when the store is empty.
func (s *Service) NextQuestion(ctx context.Context) (Question, error) {
	questions, err := s.store.GetAll(ctx)
	if err != nil {
		return Question{}, fmt.Errorf("load question set: %w", err)
	}

	q, ok := s.picker.Pick(questions)
	if !ok {
		return Question{}, ErrNoQuestions
	}

	selectionsTotal.Inc()
	return q, nil
}

// RecordAttempt applies one pass/fail outcome and returns the updated
// question. Propagates ErrNotFound for unknown ids.
func (s *Service) RecordAttempt(ctx context.Context, id int64, passed bool) (Question, error) {
	if err := s.store.RecordAttempt(ctx, id, passed); err != nil {
		return Question{}, err
	}

	result := "fail"
	if passed {
		result = "pass"
	}
	attemptsTotal.WithLabelValues(result).Inc()
	s.logger.Debug().Int64("question_id", id).Str("result", result).Msg("attempt recorded")

	return s.store.GetByID(ctx, id)
}

// GetQuestion fetches one question by id.
func (s *Service) GetQuestion(ctx context.Context, id int64) (Question, error) {
	return s.store.GetByID(ctx, id)
}

// ListQuestions returns the full question set.
func (s *Service) ListQuestions(ctx context.Context) ([]Question, error) {
	return s.store.GetAll(ctx)
}

// MostMissed returns questions sorted by (fail_rate, times_failed)
// descending, truncated to limit. Ties on fail rate break toward the
// question failed more often in absolute terms.
func (s *Service) MostMissed(ctx context.Context, limit int) ([]Question, error) {
	questions, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load question set: %w", err)
	}

	sort.SliceStable(questions, func(i, j int) bool {
		if questions[i].FailRate != questions[j].FailRate {
			return questions[i].FailRate > questions[j].FailRate
		}
		return questions[i].TimesFailed > questions[j].TimesFailed
	})

	if limit > 0 && len(questions) > limit {
		questions = questions[:limit]
	}
	return questions, nil
}

// GetSummary aggregates attempt counters across the whole set.
func (s *Service) GetSummary(ctx context.Context) (Summary, error) {
	questions, err := s.store.GetAll(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("load question set: %w", err)
	}

	summary := Summary{TotalQuestions: len(questions)}
	for _, q := range questions {
		summary.TotalAttempts += q.TimesSeen
		summary.TotalFailed += q.TimesFailed
	}
	if summary.TotalAttempts > 0 {
		summary.PassRate = float64(summary.TotalAttempts-summary.TotalFailed) / float64(summary.TotalAttempts)
	}
	return summary, nil
}

// ResetStats zeroes every question's counters.
func (s *Service) ResetStats(ctx context.Context) error {
	if err := s.store.ResetAll(ctx); err != nil {
		return err
	}
	s.logger.Info().Msg("statistics reset")
	return nil
}
