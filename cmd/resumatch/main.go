package main

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/talentscout/resumatch"
	"github.com/talentscout/resumatch/ai"
	"github.com/talentscout/resumatch/core"
	"github.com/talentscout/resumatch/ingest"
	"github.com/talentscout/resumatch/search"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "resumatch",
		Usage: "Match and rank candidate resumes against free-text hiring queries",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory",
				Value:   "./resumatch_db",
			},
			&cli.StringFlag{
				Name:  "embedding-host",
				Usage: "Embedding service host URL",
				Value: "http://localhost:11434/v1",
			},
			&cli.StringFlag{
				Name:  "embedding-model",
				Usage: "Embedding model name",
				Value: "nomic-embed-text",
			},
			&cli.StringFlag{
				Name:  "extractor-host",
				Usage: "Extraction service host URL (defaults to embedding-host)",
			},
			&cli.StringFlag{
				Name:  "extractor-model",
				Usage: "Extraction model name",
				Value: "qwen2.5:3b",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Ingest a resume file or a directory of resumes",
				ArgsUsage: "<path>",
				Action:    ingestCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of concurrent extraction workers",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Rank candidates against a hiring query",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "retrieval",
						Aliases: []string{"k"},
						Usage:   "Number of candidates to retrieve before scoring",
						Value:   search.DefaultRetrievalK,
					},
					&cli.IntFlag{
						Name:    "top",
						Aliases: []string{"n"},
						Usage:   "Number of ranked results to print",
						Value:   search.DefaultTopN,
					},
					&cli.BoolFlag{
						Name:  "expand",
						Usage: "Expand query attributes with related skills before retrieval",
					},
					&cli.BoolFlag{
						Name:    "verbose",
						Aliases: []string{"v"},
						Usage:   "Print each pipeline stage as it completes",
					},
				},
			},
			{
				Name:   "list",
				Usage:  "List all stored candidates",
				Action: listCommand,
			},
			{
				Name:   "clear",
				Usage:  "Delete all stored candidates, fingerprints, and vectors",
				Action: clearCommand,
			},
			{
				Name:   "reindex",
				Usage:  "Rebuild the vector index from stored candidate records",
				Action: reindexCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

// openSystem builds a System from the global flags and loads the persisted
// corpus.
func openSystem(c *cli.Context) (*resumatch.System, error) {
	extractorHost := c.String("extractor-host")
	if extractorHost == "" {
		extractorHost = c.String("embedding-host")
	}

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithExtractorHost(extractorHost),
		ai.WithExtractorModel(c.String("extractor-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	sys, err := resumatch.NewSystem(c.String("db"), resumatch.WithAIConfig(aiConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := sys.Load(c.Context); err != nil {
		sys.Close()
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}

	return sys, nil
}

func ingestCommand(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("path to a resume file or directory is required")
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	var pipelineOpts []ingest.Option
	if workers := c.Int("workers"); workers > 0 {
		pipelineOpts = append(pipelineOpts, ingest.WithPoolSize(workers))
	}

	pipeline, err := sys.NewIngestPipeline(pipelineOpts...)
	if err != nil {
		return fmt.Errorf("failed to create ingest pipeline: %w", err)
	}
	defer pipeline.Release()

	if info.IsDir() {
		report, err := pipeline.IngestDir(c.Context, path)
		if err != nil {
			return fmt.Errorf("ingestion failed: %w", err)
		}
		fmt.Printf("Processed %d documents: %d ingested, %d duplicates, %d failed\n",
			report.Total(), report.Ingested, report.Duplicates, report.Failed)
		return nil
	}

	if err := pipeline.IngestFile(c.Context, path); err != nil {
		if errors.Is(err, core.ErrDuplicateRecord) {
			fmt.Printf("Skipped %s: already in the corpus\n", path)
			return nil
		}
		return fmt.Errorf("ingestion failed: %w", err)
	}
	fmt.Printf("Ingested %s\n", path)
	return nil
}

func searchCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("hiring query is required")
	}

	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	searcher, err := sys.NewSearcher(
		search.WithRetrievalK(c.Int("retrieval")),
		search.WithTopN(c.Int("top")),
		search.WithExpansion(c.Bool("expand")),
	)
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}
	defer searcher.Release()

	var monitor search.SearchMonitor
	if c.Bool("verbose") {
		monitor = &consoleMonitor{out: os.Stderr}
	}

	results, err := searcher.SearchWithMonitor(c.Context, query, monitor)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No candidates matched.")
		return nil
	}

	for i, result := range results {
		fmt.Printf("%d. %s — %.2f%%\n", i+1, result.Record.Identity.Name, result.Breakdown.OverallPct)
		fmt.Printf("   %s\n", result.Explanation)
	}
	return nil
}

func listCommand(c *cli.Context) error {
	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	records, err := sys.Store().List(c.Context)
	if err != nil {
		return fmt.Errorf("failed to list candidates: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("The corpus is empty.")
		return nil
	}

	for _, record := range records {
		fmt.Printf("%d  %s  [%s]  %s\n",
			record.Id,
			record.Identity.Name,
			strings.Join(record.TechnicalAttributes, ", "),
			record.SourcePath)
	}
	fmt.Printf("%d candidates\n", len(records))
	return nil
}

func clearCommand(c *cli.Context) error {
	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	if err := sys.Store().Clear(c.Context); err != nil {
		return fmt.Errorf("failed to clear corpus: %w", err)
	}
	fmt.Println("Corpus cleared.")
	return nil
}

func reindexCommand(c *cli.Context) error {
	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	if err := sys.Store().Reindex(c.Context); err != nil {
		return fmt.Errorf("failed to rebuild vector index: %w", err)
	}

	count, err := sys.Store().Count(c.Context)
	if err != nil {
		return err
	}
	fmt.Printf("Reindexed %d candidates.\n", count)
	return nil
}
