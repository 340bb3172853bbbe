package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/talentscout/resumatch"
	"github.com/talentscout/resumatch/ai"
	"github.com/talentscout/resumatch/core"
)

// profiles are sample candidates inserted directly into the corpus,
// bypassing LLM extraction. Handy for exercising search without an
// extraction model running.
var profiles = []*core.AttributeRecord{
	{
		Identity:            core.Identity{Name: "Alice Moreau", Email: "alice.moreau@example.com"},
		TechnicalAttributes: []string{"python", "django", "postgresql", "rest apis"},
		ToolAttributes:      []string{"docker", "git"},
		SoftAttributes:      []string{"mentoring"},
		Experience:          "8 years",
	},
	{
		Identity:            core.Identity{Name: "Bogdan Ilie", Email: "bogdan.ilie@example.com"},
		TechnicalAttributes: []string{"java", "spring boot", "kafka", "microservices"},
		ToolAttributes:      []string{"maven", "jenkins"},
		SoftAttributes:      []string{"communication"},
		Experience:          "6 years",
	},
	{
		Identity:            core.Identity{Name: "Carla Jensen", Email: "carla.jensen@example.com"},
		TechnicalAttributes: []string{"javascript", "typescript", "react", "node.js"},
		ToolAttributes:      []string{"webpack", "jest"},
		SoftAttributes:      []string{"design collaboration"},
		Experience:          "4 years",
	},
	{
		Identity:            core.Identity{Name: "Deepak Nair", Email: "deepak.nair@example.com"},
		TechnicalAttributes: []string{"go", "grpc", "kubernetes", "distributed systems"},
		ToolAttributes:      []string{"terraform", "prometheus"},
		SoftAttributes:      []string{"incident response"},
		Experience:          "7 years",
	},
	{
		Identity:            core.Identity{Name: "Elena Petrova", Email: "elena.petrova@example.com"},
		TechnicalAttributes: []string{"python", "pytorch", "machine learning", "nlp"},
		ToolAttributes:      []string{"jupyter", "mlflow"},
		SoftAttributes:      []string{"research writing"},
		Experience:          "5 years",
	},
	{
		Identity:            core.Identity{Name: "Farid Hassan", Email: "farid.hassan@example.com"},
		TechnicalAttributes: []string{"c#", ".net", "azure", "sql server"},
		ToolAttributes:      []string{"visual studio"},
		SoftAttributes:      []string{"client presentations"},
		Experience:          "9 years",
	},
	{
		Identity:            core.Identity{Name: "Grete Tamm", Email: "grete.tamm@example.com"},
		TechnicalAttributes: []string{"ruby", "rails", "redis", "sidekiq"},
		ToolAttributes:      []string{"heroku", "circleci"},
		SoftAttributes:      []string{"pair programming"},
		Experience:          "5 years",
	},
	{
		Identity:            core.Identity{Name: "Hiroshi Tanaka", Email: "hiroshi.tanaka@example.com"},
		TechnicalAttributes: []string{"rust", "webassembly", "systems programming"},
		ToolAttributes:      []string{"cargo", "perf"},
		SoftAttributes:      []string{"technical writing"},
		Experience:          "6 years",
	},
	{
		Identity:            core.Identity{Name: "Ingrid Solberg", Email: "ingrid.solberg@example.com"},
		TechnicalAttributes: []string{"php", "laravel", "mysql", "vue.js"},
		ToolAttributes:      []string{"composer", "phpunit"},
		SoftAttributes:      []string{"agile coaching"},
		Experience:          "10 years",
	},
	{
		Identity:            core.Identity{Name: "Jamal Wright", Email: "jamal.wright@example.com"},
		TechnicalAttributes: []string{"swift", "ios", "objective-c", "core data"},
		ToolAttributes:      []string{"xcode", "fastlane"},
		SoftAttributes:      []string{"product thinking"},
		Experience:          "7 years",
	},
	{
		Identity:            core.Identity{Name: "Katya Lebedeva", Email: "katya.lebedeva@example.com"},
		TechnicalAttributes: []string{"python", "airflow", "spark", "data engineering"},
		ToolAttributes:      []string{"dbt", "snowflake"},
		SoftAttributes:      []string{"stakeholder management"},
		Experience:          "6 years",
	},
	{
		Identity:            core.Identity{Name: "Luis Ortega", Email: "luis.ortega@example.com"},
		TechnicalAttributes: []string{"devops", "aws", "kubernetes", "ci/cd"},
		ToolAttributes:      []string{"ansible", "helm", "grafana"},
		SoftAttributes:      []string{"on-call leadership"},
		Experience:          "8 years",
	},
}

var (
	dbPath         = flag.String("db", "./resumatch_db", "path to BadgerDB database directory")
	embeddingHost  = flag.String("embedding-host", "http://localhost:11434/v1", "embedding service host URL")
	embeddingModel = flag.String("embedding-model", "nomic-embed-text", "embedding model name")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

func main() {
	ctx := context.Background()

	// The seeder never calls the extraction model, but the provider still
	// validates the full config.
	aiConfig := ai.NewConfig(
		ai.WithHost(*embeddingHost),
		ai.WithEmbeddingModel(*embeddingModel),
	)

	sys, err := resumatch.NewSystem(*dbPath, resumatch.WithAIConfig(aiConfig))
	if err != nil {
		panic(err)
	}
	defer sys.Close()

	if err := sys.Load(ctx); err != nil {
		panic(err)
	}

	seeded, skipped := 0, 0
	for _, profile := range profiles {
		if err := sys.Store().Add(ctx, profile); err != nil {
			if errors.Is(err, core.ErrDuplicateRecord) {
				skipped++
				continue
			}
			panic(err)
		}
		seeded++
	}

	fmt.Printf("Seeded %d profiles (%d already present)\n", seeded, skipped)
}
