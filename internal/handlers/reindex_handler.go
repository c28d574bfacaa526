package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"skillgap/internal/ingest"
)

// ReindexHandler re-runs the ingestion pipeline, the API twin of the CLI
// -ingest flag. Index writes stay serialized behind a single in-flight run.
type ReindexHandler struct {
	pipeline *ingest.Pipeline
	running  chan struct{}
}

func NewReindexHandler(p *ingest.Pipeline) *ReindexHandler {
	running := make(chan struct{}, 1)
	running <- struct{}{}
	return &ReindexHandler{pipeline: p, running: running}
}

func (h *ReindexHandler) HandleReindex(c *fiber.Ctx) error {
	select {
	case token := <-h.running:
		defer func() { h.running <- token }()
	default:
		return apiError{Code: fiber.StatusConflict, Message: "ingestion already running"}
	}

	summary, err := h.pipeline.Run(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("reindex failed")
		return err
	}
	return c.JSON(summary)
}
