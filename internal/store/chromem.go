package store

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"

	"github.com/philippgille/chromem-go"
)

const compress = false

// ChromemIndex is the default on-disk backend, an embedded chromem-go
// database persisted under a local directory.
type ChromemIndex struct {
	db   *chromem.DB
	name string

	// mu guards collection, which Reset swaps while readers may be in
	// flight on other goroutines.
	mu         sync.RWMutex
	collection *chromem.Collection
}

// NewChromemIndex opens (or creates) the database at dbPath and its
// collection. With inMemory set nothing touches disk; tests use that.
func NewChromemIndex(dbPath, collectionName string, inMemory bool) (*ChromemIndex, error) {
	var db *chromem.DB
	var err error
	if inMemory {
		db = chromem.NewDB()
	} else {
		db, err = chromem.NewPersistentDB(dbPath, compress)
		if err != nil {
			return nil, fmt.Errorf("opening vector database: %w", err)
		}
	}

	collection, err := db.GetOrCreateCollection(collectionName, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("opening collection %s: %w", collectionName, err)
	}

	return &ChromemIndex{db: db, collection: collection, name: collectionName}, nil
}

func (s *ChromemIndex) Add(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	docs := make([]chromem.Document, len(entries))
	for i, e := range entries {
		docs[i] = chromem.Document{
			ID:        e.ID,
			Content:   e.Content,
			Embedding: e.Embedding,
			Metadata: map[string]string{
				"source":   e.Source,
				"doc_type": e.DocType,
				"sequence": strconv.Itoa(e.Sequence),
			},
		}
	}
	if err := s.current().AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("adding documents: %w", err)
	}
	return nil
}

func (s *ChromemIndex) Search(ctx context.Context, embedding []float32, k int, docType string) ([]Result, error) {
	collection := s.current()

	// chromem rejects nResults greater than the collection size, and the
	// empty index must yield zero results, not an error.
	count := collection.Count()
	if count == 0 || k <= 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	var where map[string]string
	if docType != "" {
		where = map[string]string{"doc_type": docType}
	}

	found, err := collection.QueryEmbedding(ctx, embedding, k, where, nil)
	if err != nil {
		return nil, fmt.Errorf("querying by similarity: %w", err)
	}

	results := make([]Result, len(found))
	for i, r := range found {
		results[i] = Result{
			Content:    r.Content,
			Source:     r.Metadata["source"],
			DocType:    r.Metadata["doc_type"],
			Similarity: r.Similarity,
		}
	}
	return results, nil
}

// Reset drops and recreates the collection. Ingestion calls this first so a
// re-run rebuilds the index instead of stacking duplicates.
func (s *ChromemIndex) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.db.DeleteCollection(s.name); err != nil {
		return fmt.Errorf("dropping collection: %w", err)
	}
	collection, err := s.db.GetOrCreateCollection(s.name, nil, nil)
	if err != nil {
		return fmt.Errorf("recreating collection %s: %w", s.name, err)
	}
	s.collection = collection
	return nil
}

func (s *ChromemIndex) Count(ctx context.Context) (int, error) {
	return s.current().Count(), nil
}

func (s *ChromemIndex) current() *chromem.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collection
}

// Close is a no-op; chromem persists each write as it happens.
func (s *ChromemIndex) Close() error {
	return nil
}
