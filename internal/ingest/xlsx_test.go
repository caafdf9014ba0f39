package ingest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, build func(f *excelize.File)) string {
	t.Helper()
	f := excelize.NewFile()
	build(f)
	path := filepath.Join(t.TempDir(), "qa.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestReadWorkbookSingleSheet(t *testing.T) {
	path := writeWorkbook(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "Question")
		f.SetCellValue("Sheet1", "B1", "Answer")
		f.SetCellValue("Sheet1", "C1", "Category")

		f.SetCellValue("Sheet1", "A2", "What is the supreme law of the land?")
		f.SetCellValue("Sheet1", "B2", "The Constitution")
		f.SetCellValue("Sheet1", "C2", "Government")

		// Purely numeric question cell: excluded.
		f.SetCellValue("Sheet1", "A3", "12345")
		f.SetCellValue("Sheet1", "B3", "Not a real answer")

		// Missing answer: excluded.
		f.SetCellValue("Sheet1", "A4", "Who vetoes bills?")

		f.SetCellValue("Sheet1", "A5", "Name one branch of government.")
		f.SetCellValue("Sheet1", "B5", "The legislature")
	})

	entries, err := ReadWorkbook(path)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "What is the supreme law of the land?", entries[0].QuestionText)
	assert.Equal(t, "The Constitution", entries[0].AnswerText)
	require.NotNil(t, entries[0].Category)
	assert.Equal(t, "Government", *entries[0].Category)
	assert.Equal(t, "Name one branch of government.", entries[1].QuestionText)
	assert.Nil(t, entries[1].Category)
}

func TestReadWorkbookColumnPriority(t *testing.T) {
	// Both "q" and "question" headers are present; the exact-match rule
	// list is evaluated in order, so "question" wins regardless of column
	// position.
	path := writeWorkbook(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "Q")
		f.SetCellValue("Sheet1", "B1", "question")
		f.SetCellValue("Sheet1", "C1", "A")
		f.SetCellValue("Sheet1", "D1", "answer")

		f.SetCellValue("Sheet1", "A2", "shorthand question")
		f.SetCellValue("Sheet1", "B2", "full question")
		f.SetCellValue("Sheet1", "C2", "shorthand answer")
		f.SetCellValue("Sheet1", "D2", "full answer")
	})

	entries, err := ReadWorkbook(path)

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "full question", entries[0].QuestionText)
	assert.Equal(t, "full answer", entries[0].AnswerText)
}

func TestReadWorkbookTwoSheets(t *testing.T) {
	path := writeWorkbook(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "A. Principles of American Government")
		f.SetCellValue("Sheet1", "A2", "What is the rule of law?")
		f.SetCellValue("Sheet1", "A3", "42") // row counter, excluded
		f.SetCellValue("Sheet1", "A4", "What does the judicial branch do?")

		_, err := f.NewSheet("Answers")
		require.NoError(t, err)
		f.SetCellValue("Answers", "A1", "Answers")
		f.SetCellValue("Answers", "A2", "Everyone must follow the law.")
		f.SetCellValue("Answers", "A3", "ignored")
		f.SetCellValue("Answers", "A4", "Reviews laws.")
	})

	entries, err := ReadWorkbook(path)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "What is the rule of law?", entries[0].QuestionText)
	assert.Equal(t, "Everyone must follow the law.", entries[0].AnswerText)
	require.NotNil(t, entries[0].Category)
	assert.Equal(t, "A. Principles of American Government", *entries[0].Category)
	assert.Equal(t, "Reviews laws.", entries[1].AnswerText)
}

func TestReadWorkbookTwoSheetsPlainHeaderHasNoCategory(t *testing.T) {
	// A short header without a period does not look like a category label.
	path := writeWorkbook(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "Questions")
		f.SetCellValue("Sheet1", "A2", "What is the capital?")

		_, err := f.NewSheet("Answers")
		require.NoError(t, err)
		f.SetCellValue("Answers", "A1", "Answers")
		f.SetCellValue("Answers", "A2", "Washington, D.C.")
	})

	entries, err := ReadWorkbook(path)

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].Category)
}

func TestReadWorkbookTwoSheetsRowMismatch(t *testing.T) {
	// Rows beyond the shorter sheet have no pair and are dropped.
	path := writeWorkbook(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "Questions")
		f.SetCellValue("Sheet1", "A2", "first question")
		f.SetCellValue("Sheet1", "A3", "second question")
		f.SetCellValue("Sheet1", "A4", "third question")

		_, err := f.NewSheet("Answers")
		require.NoError(t, err)
		f.SetCellValue("Answers", "A1", "Answers")
		f.SetCellValue("Answers", "A2", "first answer")
	})

	entries, err := ReadWorkbook(path)

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "first question", entries[0].QuestionText)
}

func TestReadWorkbookNoValidRows(t *testing.T) {
	path := writeWorkbook(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "Question")
		f.SetCellValue("Sheet1", "B1", "Answer")
	})

	_, err := ReadWorkbook(path)

	assert.ErrorIs(t, err, ErrNoRows)
	assert.ErrorIs(t, err, ErrIngestion)
}

func TestReadWorkbookUnrecognizedColumns(t *testing.T) {
	path := writeWorkbook(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "Prompt")
		f.SetCellValue("Sheet1", "B1", "Solution")
		f.SetCellValue("Sheet1", "A2", "some prompt")
		f.SetCellValue("Sheet1", "B2", "some solution")
	})

	_, err := ReadWorkbook(path)

	assert.ErrorIs(t, err, ErrIngestion)
}

func TestReadWorkbookMissingFile(t *testing.T) {
	_, err := ReadWorkbook(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.ErrorIs(t, err, ErrIngestion)
}
