// Package analyzer implements the retrieval-augmented query flow: embed a
// role-derived query, search the job-postings index, assemble a prompt around
// the resume and call the generation model.
package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"

	"skillgap/internal/config"
	"skillgap/internal/llmservice"
	"skillgap/internal/models"
	"skillgap/internal/store"
)

// Analyzer runs gap analyses. It reads the index and never writes it. The
// embedder must be the same model the index was built with.
type Analyzer struct {
	embedder  embeddings.Embedder
	index     store.Index
	generator llmservice.Generator
	cfg       config.RAGConfig
}

func New(embedder embeddings.Embedder, index store.Index, generator llmservice.Generator, cfg config.RAGConfig) *Analyzer {
	return &Analyzer{embedder: embedder, index: index, generator: generator, cfg: cfg}
}

// AnalyzeGap produces a gap-analysis report for the role and resume. Zero
// retrieved chunks degrade to a best-effort analysis; a failed model call
// surfaces as models.ErrGeneration.
func (a *Analyzer) AnalyzeGap(ctx context.Context, role, resume string) (*models.Report, error) {
	role = strings.TrimSpace(role)
	resume = strings.TrimSpace(resume)
	if role == "" {
		return nil, fmt.Errorf("%w: target role is empty", models.ErrInput)
	}
	if resume == "" {
		return nil, fmt.Errorf("%w: resume is empty", models.ErrInput)
	}

	queryVec, err := a.embedder.EmbedQuery(ctx, BuildQuery(role))
	if err != nil {
		return nil, fmt.Errorf("%w: embedding model: %v", models.ErrDependency, err)
	}

	results, err := a.index.Search(ctx, queryVec, a.cfg.TopK, models.DocTypeJobPosting)
	if err != nil {
		return nil, fmt.Errorf("%w: vector index: %v", models.ErrDependency, err)
	}
	if len(results) == 0 {
		log.Warn().Str("role", role).Msg("no postings retrieved, analysis will be ungrounded")
	}

	prompt := AssemblePrompt(role, resume, results, a.cfg.MaxContextChars, a.cfg.MaxResumeChars)

	content, err := a.generator.Generate(ctx, models.SystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrGeneration, err)
	}

	sources := make([]models.Source, len(results))
	for i, r := range results {
		sources[i] = models.Source{Filename: r.Source, Similarity: r.Similarity}
	}
	return &models.Report{Role: role, Content: content, Sources: sources}, nil
}
