package practice

import "errors"

// Sentinel errors shared between the store and the service layers.
var (
	// ErrNotFound signals an operation referencing a question id that
	// does not exist. Callers treat it as a no-op condition, never a crash.
	ErrNotFound = errors.New("question not found")

	// ErrNoQuestions signals an empty store; the caller must handle the
	// "nothing to practice" state.
	ErrNoQuestions = errors.New("no questions available")
)

// Question is a trivia question/answer pair with its attempt counters.
type Question struct {
	ID           int64   `json:"id"`
	QuestionText string  `json:"question_text"`
	AnswerText   string  `json:"answer_text"`
	Category     *string `json:"category,omitempty"`
	TimesSeen    int     `json:"times_seen"`
	TimesFailed  int     `json:"times_failed"`

	// FailRate is derived, not stored: times_failed / times_seen,
	// 0 when the question was never seen.
	FailRate float64 `json:"fail_rate"`
}

// DeriveFailRate returns times_failed/times_seen, 0 for an unseen question.
func DeriveFailRate(timesSeen, timesFailed int) float64 {
	if timesSeen <= 0 {
		return 0.0
	}
	return float64(timesFailed) / float64(timesSeen)
}

// Summary aggregates attempt counters across the whole question set.
type Summary struct {
	TotalQuestions int     `json:"total_questions"`
	TotalAttempts  int     `json:"total_attempts"`
	TotalFailed    int     `json:"total_failed"`
	PassRate       float64 `json:"pass_rate"`
}
