package handlers

import (
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"skillgap/internal/helper"
	"skillgap/internal/parser"
)

// ResumeHandler extracts plain text from an uploaded resume file so the UI
// can feed it into the analyze endpoint.
type ResumeHandler struct{}

func NewResumeHandler() *ResumeHandler {
	return &ResumeHandler{}
}

func (h *ResumeHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return errBadRequest("missing file field")
	}
	if !parser.Supported(file.Filename) {
		return errBadRequest("unsupported file format")
	}

	id, err := helper.GenerateUUID()
	if err != nil {
		return err
	}
	// The parsers work from paths, so stage the upload in a temp file.
	path := filepath.Join(os.TempDir(), id+filepath.Ext(file.Filename))
	if err := c.SaveFile(file, path); err != nil {
		return err
	}
	defer os.Remove(path)

	text, err := parser.ExtractText(path)
	if err != nil {
		return errBadRequest("could not extract text: " + err.Error())
	}

	return c.JSON(fiber.Map{"filename": file.Filename, "text": text})
}
