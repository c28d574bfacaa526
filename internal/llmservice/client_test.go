package llmservice

import (
	"context"
	"errors"
	"testing"

	"github.com/tmc/langchaingo/llms"
)

// fakeModel fails a configurable number of calls before succeeding, counting
// attempts along the way.
type fakeModel struct {
	failures int
	err      error
	calls    int
}

func (m *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	m.calls++
	if m.calls <= m.failures {
		return nil, m.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: "analysis"}},
	}, nil
}

func (m *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return "", errors.New("not used")
}

func TestGenerateRetriesTransientFailure(t *testing.T) {
	model := &fakeModel{failures: 1, err: errors.New("read tcp: i/o timeout")}
	c := &Client{llm: model, temperature: 0.3}

	got, err := c.Generate(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "analysis" {
		t.Errorf("unexpected content: %q", got)
	}
	if model.calls != 2 {
		t.Errorf("expected a single retry, got %d calls", model.calls)
	}
}

func TestGenerateDoesNotRetryAuthFailure(t *testing.T) {
	model := &fakeModel{failures: 2, err: errors.New("API returned unexpected status code: 401 Unauthorized")}
	c := &Client{llm: model, temperature: 0.3}

	if _, err := c.Generate(context.Background(), "system", "user"); err == nil {
		t.Fatal("expected error")
	}
	if model.calls != 1 {
		t.Errorf("auth failure must not be retried, got %d calls", model.calls)
	}
}

func TestGenerateExhaustsRetries(t *testing.T) {
	wantErr := errors.New("rate limit exceeded")
	model := &fakeModel{failures: 5, err: wantErr}
	c := &Client{llm: model, temperature: 0.3}

	_, err := c.Generate(context.Background(), "system", "user")
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected the model error, got %v", err)
	}
	if model.calls != 2 {
		t.Errorf("expected 2 attempts, got %d", model.calls)
	}
}

func TestGenerateCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	model := &fakeModel{failures: 5, err: errors.New("context canceled")}
	c := &Client{llm: model, temperature: 0.3}

	if _, err := c.Generate(ctx, "system", "user"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if model.calls != 1 {
		t.Errorf("canceled context must not be retried, got %d calls", model.calls)
	}
}
