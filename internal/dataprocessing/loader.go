package dataprocessing

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"emrdash/pkg/contracts/domain"
)

// LoadStatus describes the outcome of the one-shot dataset load.
type LoadStatus struct {
	Attempted bool      `json:"attempted"`
	Loaded    bool      `json:"loaded"`
	Source    string    `json:"source"`
	Sheet     string    `json:"sheet"`
	Records   int       `json:"records"`
	Columns   int       `json:"columns"`
	LoadedAt  time.Time `json:"loaded_at,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Loader reads the source workbook once and serves the cached dataset for the
// rest of the process lifetime. A failed load is cached as well; the user
// re-triggers it by restarting.
type Loader struct {
	path   string
	sheet  string
	logger *slog.Logger
	parse  func(path, sheet string) (*domain.Dataset, error)

	once     sync.Once
	dataset  *domain.Dataset
	err      error
	loadedAt time.Time
	done     bool
	mu       sync.RWMutex
}

// NewLoader creates a loader for the given workbook and sheet.
func NewLoader(path, sheet string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		path:   path,
		sheet:  sheet,
		logger: logger.With(slog.String("component", "dataset_loader")),
		parse:  ParseWorkbook,
	}
}

// Load returns the dataset, reading the source on the first call only.
func (l *Loader) Load(ctx context.Context) (*domain.Dataset, error) {
	l.once.Do(func() {
		start := time.Now()
		l.logger.InfoContext(ctx, "Loading dataset",
			slog.String("source", l.path),
			slog.String("sheet", l.sheet))

		ds, err := l.parse(l.path, l.sheet)

		l.mu.Lock()
		l.dataset, l.err, l.done = ds, err, true
		l.loadedAt = time.Now()
		l.mu.Unlock()

		if err != nil {
			l.logger.ErrorContext(ctx, "Dataset load failed",
				slog.String("source", l.path),
				slog.String("error", err.Error()))
			return
		}
		l.logger.InfoContext(ctx, "Dataset loaded",
			slog.Int("records", ds.Len()),
			slog.Int("columns", len(ds.Columns)),
			slog.Duration("duration", time.Since(start)))
	})

	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.dataset, l.err
}

// Dataset is the read-only accessor for the cached dataset. It triggers the
// load if it has not happened yet.
func (l *Loader) Dataset() (*domain.Dataset, error) {
	return l.Load(context.Background())
}

// Status reports whether the load happened and how it went, without
// triggering it.
func (l *Loader) Status() LoadStatus {
	l.mu.RLock()
	defer l.mu.RUnlock()

	status := LoadStatus{
		Attempted: l.done,
		Source:    l.path,
		Sheet:     l.sheet,
	}
	if !l.done {
		return status
	}
	status.LoadedAt = l.loadedAt
	if l.err != nil {
		status.Error = l.err.Error()
		return status
	}
	status.Loaded = true
	status.Records = l.dataset.Len()
	status.Columns = len(l.dataset.Columns)
	return status
}
