// Package ingest builds the vector index from a directory of job-posting
// documents. It is the sole writer of the index and runs as a one-shot batch,
// offline from user interaction.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"

	"skillgap/internal/config"
	"skillgap/internal/embedding"
	"skillgap/internal/helper"
	"skillgap/internal/models"
	"skillgap/internal/parser"
	"skillgap/internal/store"
)

// SkippedFile records a source that was left out of the index and why.
type SkippedFile struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Summary is the human-readable outcome of one ingestion run.
type Summary struct {
	RunID    string        `json:"run_id"`
	Sources  int           `json:"sources"`
	Chunks   int           `json:"chunks"`
	Skipped  []SkippedFile `json:"skipped,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Pipeline walks the configured directories, extracts and chunks each
// document, embeds the chunks and writes them to the index.
type Pipeline struct {
	embedder embeddings.Embedder
	index    store.Index
	cfg      *config.Config
}

func New(embedder embeddings.Embedder, index store.Index, cfg *config.Config) *Pipeline {
	return &Pipeline{embedder: embedder, index: index, cfg: cfg}
}

// Run rebuilds the index from scratch. The clear-and-rebuild policy keeps
// re-runs idempotent: ingesting an unchanged document set twice leaves
// retrieval results unchanged. A bad individual file is skipped with a
// warning; an embedder failure aborts the whole run, since without vectors
// nothing can be stored.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	runID, err := helper.GenerateUUID()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(p.cfg.Ingestion.JobsDir); err != nil {
		return nil, fmt.Errorf("%w: job postings directory %s: %v", models.ErrInput, p.cfg.Ingestion.JobsDir, err)
	}

	if err := p.index.Reset(ctx); err != nil {
		return nil, fmt.Errorf("%w: resetting index: %v", models.ErrDependency, err)
	}

	summary := &Summary{RunID: runID}
	if err := p.ingestDir(ctx, p.cfg.Ingestion.JobsDir, models.DocTypeJobPosting, summary); err != nil {
		return nil, err
	}

	// Resume samples are optional reference material; a configured but
	// absent directory is only worth a warning.
	if dir := p.cfg.Ingestion.ResumesDir; dir != "" {
		if _, err := os.Stat(dir); err != nil {
			log.Warn().Str("dir", dir).Msg("resume samples directory not found, skipping")
		} else if err := p.ingestDir(ctx, dir, models.DocTypeResumeSample, summary); err != nil {
			return nil, err
		}
	}

	summary.Duration = time.Since(start)
	log.Info().
		Str("run_id", runID).
		Int("sources", summary.Sources).
		Int("chunks", summary.Chunks).
		Int("skipped", len(summary.Skipped)).
		Dur("duration", summary.Duration).
		Msg("ingestion complete")
	return summary, nil
}

func (p *Pipeline) ingestDir(ctx context.Context, dir, docType string, summary *Summary) error {
	files, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("%w: reading %s: %v", models.ErrInput, dir, err)
	}

	for _, f := range files {
		if f.IsDir() {
			continue
		}
		path := filepath.Join(dir, f.Name())
		if !parser.Supported(path) {
			continue
		}

		text, err := parser.ExtractText(path)
		if err != nil {
			log.Warn().Err(err).Str("file", f.Name()).Msg("skipping unparseable file")
			summary.Skipped = append(summary.Skipped, SkippedFile{Name: f.Name(), Reason: err.Error()})
			continue
		}

		chunks := parser.ChunkText(text, p.cfg.RAG.ChunkSize, p.cfg.RAG.ChunkOverlap)
		if len(chunks) == 0 {
			summary.Skipped = append(summary.Skipped, SkippedFile{Name: f.Name(), Reason: "empty document"})
			continue
		}

		embedded, err := embedding.EmbedChunks(ctx, p.embedder, f.Name(), docType, chunks)
		if err != nil {
			return fmt.Errorf("%w: embedding model: %v", models.ErrDependency, err)
		}

		entries := make([]store.Entry, len(embedded))
		for i, ce := range embedded {
			entries[i] = store.Entry{
				// Deterministic IDs keep re-ingestion stable.
				ID:        fmt.Sprintf("%s#%d", ce.SourceFilename, ce.Sequence),
				Content:   ce.Content,
				Embedding: ce.Embedding,
				Source:    ce.SourceFilename,
				DocType:   ce.DocType,
				Sequence:  ce.Sequence,
			}
		}
		if err := p.index.Add(ctx, entries); err != nil {
			return fmt.Errorf("%w: vector index: %v", models.ErrDependency, err)
		}

		summary.Sources++
		summary.Chunks += len(entries)
		log.Debug().Str("file", f.Name()).Int("chunks", len(entries)).Msg("indexed document")
	}
	return nil
}
