// Package store owns the persistent vector index. The ingestion pipeline is
// its sole writer, the query flow its sole reader; both receive an Index by
// injection rather than through package state.
package store

import (
	"context"
	"fmt"

	"skillgap/internal/config"
)

// Entry is one (chunk, embedding, metadata) triple persisted in the index.
type Entry struct {
	ID        string
	Content   string
	Embedding []float32
	Source    string
	DocType   string
	Sequence  int
}

// Result is a retrieved entry with its similarity score, highest first.
type Result struct {
	Content    string
	Source     string
	DocType    string
	Similarity float32
}

// Index is the vector store contract. Search with an empty docType matches
// all entries; a short index returns fewer than k results, an empty one none,
// neither is an error.
type Index interface {
	Add(ctx context.Context, entries []Entry) error
	Search(ctx context.Context, embedding []float32, k int, docType string) ([]Result, error)
	Reset(ctx context.Context) error
	Count(ctx context.Context) (int, error)
	Close() error
}

// New opens the index backend named in the config.
func New(cfg *config.StoreConfig) (Index, error) {
	switch cfg.Backend {
	case "chromem":
		return NewChromemIndex(cfg.Path, cfg.Collection, false)
	case "postgres":
		return NewPostgresIndex(cfg.PostgresDSN, cfg.Debug)
	default:
		return nil, fmt.Errorf("unknown store backend: %q", cfg.Backend)
	}
}
