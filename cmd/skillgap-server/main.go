package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"skillgap/internal/analyzer"
	"skillgap/internal/config"
	"skillgap/internal/embedding"
	"skillgap/internal/handlers"
	"skillgap/internal/ingest"
	"skillgap/internal/llmservice"
	"skillgap/internal/store"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	configPath := flag.String("config", "./configs/config.yaml", "Path to the config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found")
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn().Str("path", *configPath).Msg("config file not found, using defaults")
			cfg = config.Default()
		} else {
			log.Fatal().Err(err).Msg("error loading config")
		}
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

	gapAnalyzer := analyzer.New(embedder, index, generator, cfg.RAG)
	pipeline := ingest.New(embedder, index, cfg)

	analyzeHandler := handlers.NewAnalyzeHandler(gapAnalyzer)
	resumeHandler := handlers.NewResumeHandler()
	reindexHandler := handlers.NewReindexHandler(pipeline)
	rolesHandler := handlers.NewRolesHandler(cfg.Ingestion.JobsDir)

	app := fiber.New(fiber.Config{
		AppName:      "Skill-Gap Masr",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		ErrorHandler: handlers.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/", handlers.HandleIndex)
	api := app.Group("/api/v1")
	api.Get("/health", func(c *fiber.Ctx) error {
		count, err := index.Count(c.Context())
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"status": "healthy", "index_entries": count})
	})
	api.Get("/roles", rolesHandler.HandleRoles)
	api.Post("/analyze", analyzeHandler.HandleAnalyze)
	api.Post("/resume", resumeHandler.HandleUpload)
	api.Post("/reindex", reindexHandler.HandleReindex)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Info().Msg("shutting down server")
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("forced shutdown")
		}
	}()

	log.Info().Str("addr", cfg.Server.Addr).Msg("server starting")
	if err := app.Listen(cfg.Server.Addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
