package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/studydrill/studydrill/internal/ingest"
	"github.com/studydrill/studydrill/internal/practice"
)

// querier is the subset of pgxpool.Pool the repository depends on.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// QuestionRepository is the durable record of questions and their
// seen/failed counters. Every call commits independently; the design
// assumes a single active user, so no cross-call transactions are held.
type QuestionRepository struct {
	db querier
}

// NewQuestionRepository constructs a repository over a pgx pool.
func NewQuestionRepository(db querier) *QuestionRepository {
	return &QuestionRepository{db: db}
}

const questionColumns = "id, question_text, answer_text, category, times_seen, times_failed"

// Count returns the total number of question rows.
func (r *QuestionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM questions").Scan(&count); err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return count, nil
}

// GetByID fetches a single question, practice.ErrNotFound when absent.
func (r *QuestionRepository) GetByID(ctx context.Context, id int64) (practice.Question, error) {
	row := r.db.QueryRow(ctx, "SELECT "+questionColumns+" FROM questions WHERE id = $1", id)
	q, err := scanQuestion(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return practice.Question{}, practice.ErrNotFound
	}
	if err != nil {
		return practice.Question{}, fmt.Errorf("get question %d: %w", id, err)
	}
	return q, nil
}

// GetAll returns every question with its derived fail rate. Order is
// unspecified; callers that need an ordering sort for themselves.
func (r *QuestionRepository) GetAll(ctx context.Context) ([]practice.Question, error) {
	rows, err := r.db.Query(ctx, "SELECT "+questionColumns+" FROM questions")
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var questions []practice.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return questions, nil
}

// RecordAttempt increments times_seen, and times_failed on a fail, as a
// single atomic UPDATE. Returns practice.ErrNotFound when id has no row.
func (r *QuestionRepository) RecordAttempt(ctx context.Context, id int64, passed bool) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE questions
		SET times_seen = times_seen + 1,
		    times_failed = times_failed + CASE WHEN $2 THEN 0 ELSE 1 END
		WHERE id = $1`, id, passed)
	if err != nil {
		return fmt.Errorf("record attempt for question %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return practice.ErrNotFound
	}
	return nil
}

// ResetAll zeroes both counters on every row. Text and category are untouched.
func (r *QuestionRepository) ResetAll(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, "UPDATE questions SET times_seen = 0, times_failed = 0"); err != nil {
		return fmt.Errorf("reset statistics: %w", err)
	}
	return nil
}

// UpsertByText inserts a new question with zero counters, or overwrites
// answer_text/category of the row whose question_text matches exactly.
// Counters are never touched on conflict.
func (r *QuestionRepository) UpsertByText(ctx context.Context, questionText, answerText string, category *string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO questions (question_text, answer_text, category)
		VALUES ($1, $2, $3)
		ON CONFLICT (question_text)
		DO UPDATE SET answer_text = EXCLUDED.answer_text, category = EXCLUDED.category`,
		questionText, answerText, category)
	if err != nil {
		return fmt.Errorf("upsert question: %w", err)
	}
	return nil
}

// BulkImport applies all ingested entries in one transaction so a failed
// ingestion commits nothing. Returns the number of entries applied.
func (r *QuestionRepository) BulkImport(ctx context.Context, entries []ingest.Entry) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, e := range entries {
		if _, err := tx.Exec(ctx, `
			INSERT INTO questions (question_text, answer_text, category)
			VALUES ($1, $2, $3)
			ON CONFLICT (question_text)
			DO UPDATE SET answer_text = EXCLUDED.answer_text, category = EXCLUDED.category`,
			e.QuestionText, e.AnswerText, e.Category); err != nil {
			return 0, fmt.Errorf("import %q: %w", e.QuestionText, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return len(entries), nil
}

func scanQuestion(row pgx.Row) (practice.Question, error) {
	var q practice.Question
	if err := row.Scan(&q.ID, &q.QuestionText, &q.AnswerText, &q.Category, &q.TimesSeen, &q.TimesFailed); err != nil {
		return practice.Question{}, err
	}
	q.FailRate = practice.DeriveFailRate(q.TimesSeen, q.TimesFailed)
	return q, nil
}
