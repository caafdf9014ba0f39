package ingest

import (
	"errors"
	"fmt"
)

// ErrIngestion classifies any failure to extract rows from a workbook:
// unreadable file, unrecognizable layout, or zero valid rows. Nothing is
// committed to the store when it is returned.
var ErrIngestion = errors.New("ingestion failed")

// ErrNoRows is the zero-valid-rows case of ErrIngestion.
var ErrNoRows = fmt.Errorf("%w: no valid rows extracted from workbook", ErrIngestion)

// Entry is one normalized (question, answer, category) tuple extracted
// from a workbook, ready to be upserted into the store.
type Entry struct {
	QuestionText string
	AnswerText   string
	Category     *string
}
