package handlers

import (
	"bytes"

	"github.com/gofiber/fiber/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"skillgap/internal/analyzer"
	"skillgap/internal/models"
)

type AnalyzeRequest struct {
	Role   string `json:"role" validate:"required,min=2"`
	Resume string `json:"resume" validate:"required,min=20"`
}

type AnalyzeResponse struct {
	Report *models.Report `json:"report"`
	HTML   string         `json:"html,omitempty"`
}

type AnalyzeHandler struct {
	analyzer *analyzer.Analyzer
	md       goldmark.Markdown
}

func NewAnalyzeHandler(a *analyzer.Analyzer) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer: a,
		md:       goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// HandleAnalyze runs the gap analysis. With ?format=html the markdown report
// is also rendered to an HTML fragment for the browser display area.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	var req AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return errBadRequest("invalid JSON request")
	}
	if errs := Validate(&req); len(errs) > 0 {
		return validationError{Status: fiber.StatusUnprocessableEntity, Errors: errs}
	}

	report, err := h.analyzer.AnalyzeGap(c.Context(), req.Role, req.Resume)
	if err != nil {
		return err
	}

	resp := AnalyzeResponse{Report: report}
	if c.Query("format") == "html" {
		var buf bytes.Buffer
		if err := h.md.Convert([]byte(report.Content), &buf); err == nil {
			resp.HTML = buf.String()
		}
	}
	return c.JSON(resp)
}
