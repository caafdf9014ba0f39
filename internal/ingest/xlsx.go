package ingest

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// Column-name rules for single-sheet workbooks, evaluated in a fixed
// order; the first exact (case-insensitive) header match wins.
var (
	questionHeaders = []string{"question", "question_text", "q"}
	answerHeaders   = []string{"answer", "answer_text", "a"}
	categoryHeaders = []string{"category", "cat", "type"}
)

// ReadWorkbook extracts question/answer entries from an Excel workbook.
//
// A workbook with two or more sheets is read in two-sheet mode: the first
// sheet holds questions, the second answers, matched by row position. A
// single-sheet workbook is read by recognizing question/answer/category
// columns from the header row.
func ReadWorkbook(path string) ([]Entry, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook %s: %v", ErrIngestion, path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoRows
	}

	var entries []Entry
	if len(sheets) >= 2 {
		entries, err = readTwoSheets(f, sheets[0], sheets[1])
	} else {
		entries, err = readSingleSheet(f, sheets[0])
	}
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoRows
	}
	return entries, nil
}

// readTwoSheets pairs rows of the question and answer sheets by position.
// The questions sheet's first-column header doubles as the category when
// it looks like one ('.' inside or longer than 15 characters). That rule
// is a heuristic inherited from the source material, not a guarantee.
func readTwoSheets(f *excelize.File, questionSheet, answerSheet string) ([]Entry, error) {
	questionRows, err := f.GetRows(questionSheet)
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %s: %v", ErrIngestion, questionSheet, err)
	}
	answerRows, err := f.GetRows(answerSheet)
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %s: %v", ErrIngestion, answerSheet, err)
	}

	var category *string
	if len(questionRows) > 0 {
		if header := firstCell(questionRows[0]); header != "" {
			if strings.Contains(header, ".") || utf8.RuneCountInString(header) > 15 {
				category = &header
			}
		}
	}

	// Row 0 is the header row on both sheets.
	limit := len(questionRows)
	if len(answerRows) < limit {
		limit = len(answerRows)
	}

	var entries []Entry
	for i := 1; i < limit; i++ {
		question := firstCell(questionRows[i])
		answer := firstCell(answerRows[i])
		if !validCell(question) || !validCell(answer) {
			continue
		}
		entries = append(entries, Entry{
			QuestionText: question,
			AnswerText:   answer,
			Category:     category,
		})
	}
	return entries, nil
}

func readSingleSheet(f *excelize.File, sheet string) ([]Entry, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %s: %v", ErrIngestion, sheet, err)
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	header := rows[0]
	questionIdx := findColumn(header, questionHeaders)
	answerIdx := findColumn(header, answerHeaders)
	if questionIdx < 0 || answerIdx < 0 {
		return nil, fmt.Errorf("%w: no recognizable question/answer columns in sheet %s", ErrIngestion, sheet)
	}
	categoryIdx := findColumn(header, categoryHeaders)

	var entries []Entry
	for _, row := range rows[1:] {
		question := cellAt(row, questionIdx)
		answer := cellAt(row, answerIdx)
		if !validCell(question) || !validCell(answer) {
			continue
		}

		var category *string
		if categoryIdx >= 0 {
			if value := cellAt(row, categoryIdx); value != "" {
				category = &value
			}
		}

		entries = append(entries, Entry{
			QuestionText: question,
			AnswerText:   answer,
			Category:     category,
		})
	}
	return entries, nil
}

// findColumn returns the index of the first header matching any rule,
// honoring rule priority over column order.
func findColumn(header []string, rules []string) int {
	for _, rule := range rules {
		for i, name := range header {
			if strings.EqualFold(strings.TrimSpace(name), rule) {
				return i
			}
		}
	}
	return -1
}

func firstCell(row []string) string {
	return cellAt(row, 0)
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// validCell accepts a trimmed cell that is non-empty and not purely
// numeric (bare numbers are row counters, not content).
func validCell(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
