package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/talentscout/resumatch/ai"
	"github.com/talentscout/resumatch/core"
	"github.com/talentscout/resumatch/corpus"
)

// Report summarizes a batch ingestion.
type Report struct {
	Ingested   int // records added to the store
	Duplicates int // files whose content fingerprint was already present
	Failed     int // files that could not be parsed, extracted, or stored
}

// Total returns the number of files the batch attempted.
func (r Report) Total() int {
	return r.Ingested + r.Duplicates + r.Failed
}

// Pipeline orchestrates resume ingestion: parse, extract, repair, store.
type Pipeline struct {
	store     *corpus.Store
	extractor ai.AttributeExtractor
	parser    DocumentParser
	pool      *ants.Pool
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for directory ingestion.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithParser sets a custom document parser.
// Default is NewTextParser().
func WithParser(parser DocumentParser) Option {
	return func(p *Pipeline) error {
		if parser != nil {
			p.parser = parser
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(store *corpus.Store, provider ai.AIProvider, opts ...Option) (*Pipeline, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		store:     store,
		extractor: provider.AttributeExtractor(),
		parser:    NewTextParser(),
		pool:      pool,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// IngestFile ingests a single resume document synchronously.
// Returns core.ErrDuplicateRecord if the store already holds the content.
func (p *Pipeline) IngestFile(ctx context.Context, path string) error {
	text, err := p.parser.Parse(path)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	record, err := p.extractor.ExtractProfile(ctx, text)
	if err != nil {
		return fmt.Errorf("extract profile from %s: %w", path, err)
	}

	record, repaired := core.RepairRecord(record)
	if repaired {
		p.logger.Warn("profile extraction incomplete, stored with placeholders", "path", path)
	}
	record.SourcePath = path

	if err := p.store.Add(ctx, record); err != nil {
		if errors.Is(err, core.ErrDuplicateRecord) {
			return err
		}
		return fmt.Errorf("store record from %s: %w", path, err)
	}

	p.logger.Info("resume ingested",
		"path", path, "name", record.Identity.Name,
		"attributes", len(record.TechnicalAttributes))
	return nil
}

// IngestDir ingests every supported document in a directory concurrently.
// Individual failures and duplicates are counted, not propagated; the
// returned report accounts for every attempted file.
func (p *Pipeline) IngestDir(ctx context.Context, dir string) (Report, error) {
	var report Report

	entries, err := os.ReadDir(dir)
	if err != nil {
		return report, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if p.parser.Supports(path) {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		p.logger.Info("no supported documents found", "dir", dir)
		return report, nil
	}

	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, path := range paths {
		path := path
		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()

			err := p.IngestFile(ctx, path)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				report.Ingested++
			case errors.Is(err, core.ErrDuplicateRecord):
				p.logger.Info("skipping duplicate resume", "path", path)
				report.Duplicates++
			default:
				p.logger.Error("resume ingestion failed", "path", path, "err", err)
				report.Failed++
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			report.Failed++
			mu.Unlock()
			p.logger.Error("submitting ingestion task failed", "path", path, "err", submitErr)
		}
	}

	wg.Wait()

	p.logger.Info("directory ingestion complete", "dir", dir,
		"ingested", report.Ingested, "duplicates", report.Duplicates, "failed", report.Failed)
	return report, nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
