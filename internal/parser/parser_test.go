package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestChunkTextShortContent(t *testing.T) {
	chunks := ChunkText("Requires Python and Docker experience", 500, 50)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Sequence != 1 {
		t.Errorf("expected sequence 1, got %d", chunks[0].Sequence)
	}
	if chunks[0].Content != "Requires Python and Docker experience" {
		t.Errorf("chunk content altered: %q", chunks[0].Content)
	}
}

func TestChunkTextBounds(t *testing.T) {
	content := strings.Repeat("backend developer with cloud experience. ", 100)
	chunks := ChunkText(content, 500, 50)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c.Content) > 500 {
			t.Errorf("chunk %d exceeds max size: %d chars", i, len(c.Content))
		}
		if c.Sequence != i+1 {
			t.Errorf("chunk %d has sequence %d", i, c.Sequence)
		}
	}
}

func TestChunkTextOverlap(t *testing.T) {
	content := strings.Repeat("skills ", 300)
	chunks := ChunkText(content, 100, 20)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	// Neighbouring chunks share text: the tail of one reappears at the
	// head of the next.
	tail := chunks[0].Content[len(chunks[0].Content)-10:]
	if !strings.Contains(chunks[1].Content, strings.TrimSpace(tail)) {
		t.Errorf("no overlap between consecutive chunks")
	}
}

func TestChunkTextDeterministic(t *testing.T) {
	content := strings.Repeat("machine learning engineer in Cairo. ", 50)
	a := ChunkText(content, 200, 30)
	b := ChunkText(content, 200, 30)
	if len(a) != len(b) {
		t.Fatalf("chunk counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}

func TestChunkTextSmallOverlapLosesNothing(t *testing.T) {
	// The single space sits at the far edge of the clean-break window, so
	// the break retreats well behind the nominal chunk end. With a small
	// overlap the next chunk must still start at that break, not beyond
	// the text that follows it.
	content := strings.Repeat("a", 940) + " QUALIFICATION" + strings.Repeat("b", 500)
	chunks := ChunkText(content, 1000, 10)

	found := false
	for _, c := range chunks {
		if strings.Contains(c.Content, "QUALIFICATION") {
			found = true
		}
	}
	if !found {
		t.Errorf("text after the clean break was dropped (%d chunks)", len(chunks))
	}
}

func TestChunkTextEdgeCases(t *testing.T) {
	if got := ChunkText("", 500, 50); got != nil {
		t.Errorf("empty content should yield no chunks, got %d", len(got))
	}
	if got := ChunkText("text", 0, 0); got != nil {
		t.Errorf("zero max size should yield no chunks, got %d", len(got))
	}
	// Overlap >= size must not loop forever.
	chunks := ChunkText(strings.Repeat("x ", 500), 100, 100)
	if len(chunks) == 0 {
		t.Error("expected chunks despite degenerate overlap")
	}
}

func TestExtractTextPlain(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "posting.txt")
	if err := os.WriteFile(path, []byte("  Requires Go and Kubernetes.\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	text, err := ExtractText(path)
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if text != "Requires Go and Kubernetes." {
		t.Errorf("unexpected text: %q", text)
	}
}

func TestExtractTextUnsupported(t *testing.T) {
	if _, err := ExtractText("posting.bin"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestSupported(t *testing.T) {
	cases := map[string]bool{
		"a.txt":  true,
		"a.PDF":  true,
		"a.docx": true,
		"a.xlsx": true,
		"a.bin":  false,
		"a":      false,
	}
	for name, want := range cases {
		if got := Supported(name); got != want {
			t.Errorf("Supported(%q) = %v, want %v", name, got, want)
		}
	}
}
