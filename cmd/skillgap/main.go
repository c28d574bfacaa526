package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"skillgap/internal/analyzer"
	"skillgap/internal/config"
	"skillgap/internal/embedding"
	"skillgap/internal/helper"
	"skillgap/internal/ingest"
	"skillgap/internal/llmservice"
	"skillgap/internal/parser"
	"skillgap/internal/store"
)

const defaultConfigPath = "./configs/config.yaml"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	configPath := flag.String("config", defaultConfigPath, "Path to the config file")
	ingestDir := flag.String("ingest", "", "Ingest job postings from this directory and exit")
	role := flag.String("role", "", "Target role to analyze against")
	resumePath := flag.String("resume", "", "Path to the resume file")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found")
	}

	cfg := loadConfig(*configPath)
	ctx := context.Background()

	switch {
	case *ingestDir != "":
		cfg.Ingestion.JobsDir = *ingestDir
		runIngestion(ctx, cfg)
	case *role != "" && *resumePath != "":
		runAnalysis(ctx, cfg, *role, *resumePath)
	default:
		fmt.Fprintln(os.Stderr, "usage:")
		fmt.Fprintln(os.Stderr, "  skillgap -ingest DIR                 rebuild the vector index")
		fmt.Fprintln(os.Stderr, "  skillgap -role ROLE -resume FILE     run a gap analysis")
		flag.PrintDefaults()
		os.Exit(2)
	}
}

func loadConfig(path string) *config.Config {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn().Str("path", path).Msg("config file not found, using defaults")
			return config.Default()
		}
		log.Fatal().Err(err).Msg("error loading config")
	}
	return cfg
}

func runIngestion(ctx context.Context, cfg *config.Config) {
	embedder, err := embedding.NewEmbedder(&cfg.EmbedLLM)
	if err != nil {
		log.Fatal().Err(err).Msg("error initializing embedder")
	}

	index, err := store.New(&cfg.Store)
	if err != nil {
		log.Fatal().Err(err).Msg("error opening vector index")
	}
	defer index.Close()

	summary, err := ingest.New(embedder, index, cfg).Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("ingestion failed")
	}
	helper.PrettyPrint(summary)
}

func runAnalysis(ctx context.Context, cfg *config.Config, role, resumePath string) {
	resume, err := parser.ExtractText(resumePath)
	if err != nil {
		log.Fatal().Err(err).Str("file", resumePath).Msg("error reading resume")
	}

	embedder, err := embedding.NewEmbedder(&cfg.EmbedLLM)
	if err != nil {
		log.Fatal().Err(err).Msg("error initializing embedder")
	}

	index, err := store.New(&cfg.Store)
	if err != nil {
		log.Fatal().Err(err).Msg("error opening vector index")
	}
	defer index.Close()

	generator, err := llmservice.NewClient(&cfg.GenLLM)
	if err != nil {
		log.Fatal().Err(err).Msg("error initializing generation client")
	}

	report, err := analyzer.New(embedder, index, generator, cfg.RAG).AnalyzeGap(ctx, role, resume)
	if err != nil {
		log.Fatal().Err(err).Msg("analysis failed")
	}

	fmt.Printf("# Gap Analysis: %s\n\n%s\n", report.Role, report.Content)
	if len(report.Sources) > 0 {
		fmt.Println("\nGrounded on:")
		for _, s := range report.Sources {
			fmt.Printf("  - %s (similarity %.2f)\n", s.Filename, s.Similarity)
		}
	}
}
