package handlers

import (
	"embed"

	"github.com/gofiber/fiber/v2"
)

//go:embed static/index.html
var staticFS embed.FS

// HandleIndex serves the embedded single-page UI.
func HandleIndex(c *fiber.Ctx) error {
	page, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(page)
}
