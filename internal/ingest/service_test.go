package ingest

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// fakeStore upserts by exact question text, mirroring the repository.
type fakeStore struct {
	entries     map[string]Entry
	importCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: map[string]Entry{}}
}

func (s *fakeStore) Count(ctx context.Context) (int64, error) {
	return int64(len(s.entries)), nil
}

func (s *fakeStore) BulkImport(ctx context.Context, entries []Entry) (int, error) {
	s.importCalls++
	for _, e := range entries {
		s.entries[e.QuestionText] = e
	}
	return len(entries), nil
}

func sampleWorkbook(t *testing.T) string {
	t.Helper()
	return writeWorkbook(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "Question")
		f.SetCellValue("Sheet1", "B1", "Answer")
		f.SetCellValue("Sheet1", "A2", "What is the capital of France?")
		f.SetCellValue("Sheet1", "B2", "Paris")
		f.SetCellValue("Sheet1", "A3", "How many continents are there?")
		f.SetCellValue("Sheet1", "B3", "Seven")
	})
}

func TestImportFileRoundTrip(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil, zerolog.Nop())
	path := sampleWorkbook(t)

	rows, err := svc.ImportFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, rows)

	// Importing the same workbook again updates by matching text instead
	// of duplicating: the question count stays put.
	rows, err = svc.ImportFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, rows)

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, 2, store.importCalls)
}

func TestImportFileEmptyWorkbookCommitsNothing(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil, zerolog.Nop())
	path := writeWorkbook(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "Question")
		f.SetCellValue("Sheet1", "B1", "Answer")
	})

	_, err := svc.ImportFile(context.Background(), path)

	assert.ErrorIs(t, err, ErrNoRows)
	assert.Equal(t, 0, store.importCalls)
}

func TestAutoLoadSkipsNonEmptyStore(t *testing.T) {
	store := newFakeStore()
	store.entries["existing"] = Entry{QuestionText: "existing", AnswerText: "row"}
	svc := NewService(store, []string{sampleWorkbook(t)}, zerolog.Nop())

	require.NoError(t, svc.AutoLoad(context.Background()))
	assert.Equal(t, 0, store.importCalls)
}

func TestAutoLoadImportsFirstCandidate(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, []string{"does-not-exist.xlsx", sampleWorkbook(t)}, zerolog.Nop())

	require.NoError(t, svc.AutoLoad(context.Background()))
	assert.Equal(t, 1, store.importCalls)

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestAutoLoadMissingWorkbookIsNotFatal(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, []string{"does-not-exist.xlsx"}, zerolog.Nop())

	assert.NoError(t, svc.AutoLoad(context.Background()))
	assert.Equal(t, 0, store.importCalls)
}
