package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"skillgap/internal/analyzer"
	"skillgap/internal/config"
	"skillgap/internal/store"
)

type flatEmbedder struct{}

func (flatEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0, 0}
	}
	return out, nil
}

func (flatEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return []float32{1, 0, 0, 0}, nil
}

type cannedGenerator struct{}

func (cannedGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return "## Report\n\nLearn **Docker**.", nil
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	idx, err := store.NewChromemIndex("", "handlers_test", true)
	if err != nil {
		t.Fatal(err)
	}
	a := analyzer.New(flatEmbedder{}, idx, cannedGenerator{}, config.Default().RAG)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/", HandleIndex)
	app.Post("/api/v1/analyze", NewAnalyzeHandler(a).HandleAnalyze)
	return app
}

func TestHandleIndex(t *testing.T) {
	app := newTestApp(t)
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Skill-Gap Masr") {
		t.Error("index page missing app title")
	}
}

func TestHandleAnalyze(t *testing.T) {
	app := newTestApp(t)
	payload := `{"role":"Backend Engineer","resume":"Five years of Java and Spring Boot."}`
	req := httptest.NewRequest("POST", "/api/v1/analyze?format=html", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var out AnalyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Report == nil || out.Report.Content == "" {
		t.Fatal("missing report content")
	}
	if !strings.Contains(out.HTML, "<strong>Docker</strong>") {
		t.Errorf("markdown not rendered to HTML: %q", out.HTML)
	}
}

func TestHandleAnalyzeValidation(t *testing.T) {
	app := newTestApp(t)
	req := httptest.NewRequest("POST", "/api/v1/analyze", strings.NewReader(`{"role":"","resume":""}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}

	var out validationError
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if _, ok := out.Errors["role"]; !ok {
		t.Errorf("expected role validation error, got %v", out.Errors)
	}
}

func TestHandleRoles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"backend_engineer.txt", "ml-engineer.md", "notes.bin", "backend_engineer.pdf"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("posting"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	app := fiber.New()
	app.Get("/api/v1/roles", NewRolesHandler(dir).HandleRoles)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/roles", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var out struct {
		Roles []string `json:"roles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	// Sorted, deduplicated across extensions, unsupported files excluded.
	want := []string{"backend engineer", "ml engineer"}
	if !reflect.DeepEqual(out.Roles, want) {
		t.Errorf("roles = %v, want %v", out.Roles, want)
	}
}

func TestHandleRolesMissingDir(t *testing.T) {
	app := fiber.New()
	app.Get("/api/v1/roles", NewRolesHandler("/does/not/exist").HandleRoles)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/roles", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 with empty list, got %d", resp.StatusCode)
	}
	var out struct {
		Roles []string `json:"roles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out.Roles) != 0 {
		t.Errorf("expected no roles, got %v", out.Roles)
	}
}

func TestHandleAnalyzeBadJSON(t *testing.T) {
	app := newTestApp(t)
	req := httptest.NewRequest("POST", "/api/v1/analyze", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
