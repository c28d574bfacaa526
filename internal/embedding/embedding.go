package embedding

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"skillgap/internal/config"
	"skillgap/internal/models"
)

// NewEmbedder builds the embedding client named in the config. The same
// instance must serve ingestion and query time; a model mismatch between the
// two silently degrades retrieval.
func NewEmbedder(cfg *config.LLMConfig) (*embeddings.EmbedderImpl, error) {
	switch cfg.Provider {
	case "ollama":
		return newOllamaEmbedder(cfg)
	case "openai":
		return newOpenAIEmbedder(cfg)
	default:
		return nil, fmt.Errorf("unknown embedding provider: %q", cfg.Provider)
	}
}

func newOllamaEmbedder(cfg *config.LLMConfig) (*embeddings.EmbedderImpl, error) {
	llm, err := ollama.New(
		ollama.WithServerURL(cfg.BaseURL),
		ollama.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("initializing ollama embedder: %w", err)
	}
	return embeddings.NewEmbedder(llm)
}

func newOpenAIEmbedder(cfg *config.LLMConfig) (*embeddings.EmbedderImpl, error) {
	llm, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(strings.TrimPrefix(cfg.Key, "Bearer ")),
		openai.WithEmbeddingModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("initializing openai embedder: %w", err)
	}
	return embeddings.NewEmbedder(llm)
}

// EmbedChunks computes one vector per chunk and tags each with its source
// file and document type.
func EmbedChunks(ctx context.Context, embedder embeddings.Embedder, filename, docType string, chunks []models.Chunk) ([]models.ChunkEmbedding, error) {
	if len(chunks) == 0 {
		log.Debug().Str("file", filename).Msg("no chunks to embed")
		return nil, nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}

	vectors, err := embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding %s: %w", filename, err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("embedding %s: got %d vectors for %d chunks", filename, len(vectors), len(chunks))
	}

	out := make([]models.ChunkEmbedding, len(chunks))
	for i, chunk := range chunks {
		out[i] = models.ChunkEmbedding{
			Content:        chunk.Content,
			Embedding:      vectors[i],
			SourceFilename: filename,
			DocType:        docType,
			Sequence:       chunk.Sequence,
		}
	}
	return out, nil
}
