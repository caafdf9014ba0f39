package ingest

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

var rowsImported = promauto.NewCounter(prometheus.CounterOpts{
	Name: "studydrill_ingest_rows_total",
	Help: "Workbook rows applied to the question store.",
})

// Store is the subset of the question store the importer writes through.
type Store interface {
	Count(ctx context.Context) (int64, error)
	BulkImport(ctx context.Context, entries []Entry) (int, error)
}

// Service imports workbooks into the question store.
type Service struct {
	store      Store
	candidates []string
	logger     zerolog.Logger
}

// NewService constructs the import service. candidates are workbook paths
// tried in order when no explicit path is given.
func NewService(store Store, candidates []string, logger zerolog.Logger) *Service {
	return &Service{
		store:      store,
		candidates: candidates,
		logger:     logger.With().Str("component", "ingest").Logger(),
	}
}

// ImportFile reads a workbook and applies every extracted entry in one
// transaction. Existing questions are matched by exact question text and
// updated in place, so re-importing the same workbook never duplicates.
func (s *Service) ImportFile(ctx context.Context, path string) (int, error) {
	entries, err := ReadWorkbook(path)
	if err != nil {
		return 0, err
	}

	count, err := s.store.BulkImport(ctx, entries)
	if err != nil {
		return 0, fmt.Errorf("import into store: %w", err)
	}

	rowsImported.Add(float64(count))
	s.logger.Info().Str("path", path).Int("rows", count).Msg("workbook imported")
	return count, nil
}

// FindWorkbook returns the first configured candidate path that exists.
func (s *Service) FindWorkbook() (string, bool) {
	for _, path := range s.candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// AutoLoad imports the first available candidate workbook when the store
// is empty. A missing workbook is not an error; the service can still run
// and report the empty state.
func (s *Service) AutoLoad(ctx context.Context) error {
	count, err := s.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("check question count: %w", err)
	}
	if count > 0 {
		return nil
	}

	path, ok := s.FindWorkbook()
	if !ok {
		s.logger.Warn().Strs("candidates", s.candidates).Msg("store empty and no workbook found")
		return nil
	}

	if _, err := s.ImportFile(ctx, path); err != nil {
		return fmt.Errorf("auto-load %s: %w", path, err)
	}
	return nil
}
