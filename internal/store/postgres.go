package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
)

// vectorDim must match the embedding model used at ingestion time.
const vectorDim = 768

type entryRow struct {
	bun.BaseModel `bun:"table:index_entries,alias:e"`

	ID         string  `bun:"id,pk"`
	Content    string  `bun:"content,notnull"`
	Source     string  `bun:"source,notnull"`
	DocType    string  `bun:"doc_type,notnull"`
	Sequence   int     `bun:"sequence,notnull"`
	Embedding  string  `bun:"embedding,notnull,type:vector(768)"`
	Similarity float32 `bun:"similarity,scanonly"`
}

// PostgresIndex stores entries in a pgvector-enabled Postgres database, for
// deployments where the embedded store does not fit.
type PostgresIndex struct {
	db *bun.DB
}

func NewPostgresIndex(dsn string, debug bool) (*PostgresIndex, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	if debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "CREATE EXTENSION IF NOT EXISTS vector"); err != nil {
		return nil, fmt.Errorf("enabling pgvector: %w", err)
	}
	if _, err := db.NewCreateTable().Model((*entryRow)(nil)).IfNotExists().Exec(ctx); err != nil {
		return nil, fmt.Errorf("creating index table: %w", err)
	}

	return &PostgresIndex{db: db}, nil
}

func (s *PostgresIndex) Add(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	rows := make([]entryRow, len(entries))
	for i, e := range entries {
		if len(e.Embedding) != vectorDim {
			return fmt.Errorf("embedding dimension %d, index expects %d", len(e.Embedding), vectorDim)
		}
		rows[i] = entryRow{
			ID:        e.ID,
			Content:   e.Content,
			Source:    e.Source,
			DocType:   e.DocType,
			Sequence:  e.Sequence,
			Embedding: vectorLiteral(e.Embedding),
		}
	}
	if _, err := s.db.NewInsert().Model(&rows).Exec(ctx); err != nil {
		return fmt.Errorf("inserting entries: %w", err)
	}
	return nil
}

func (s *PostgresIndex) Search(ctx context.Context, embedding []float32, k int, docType string) ([]Result, error) {
	if k <= 0 {
		return nil, nil
	}
	lit := vectorLiteral(embedding)

	var rows []entryRow
	q := s.db.NewSelect().
		Model(&rows).
		ColumnExpr("e.content, e.source, e.doc_type").
		ColumnExpr("1 - (e.embedding <=> ?::vector) AS similarity", lit).
		OrderExpr("e.embedding <=> ?::vector", lit).
		Limit(k)
	if docType != "" {
		q = q.Where("e.doc_type = ?", docType)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("searching entries: %w", err)
	}

	results := make([]Result, len(rows))
	for i, r := range rows {
		results[i] = Result{
			Content:    r.Content,
			Source:     r.Source,
			DocType:    r.DocType,
			Similarity: r.Similarity,
		}
	}
	return results, nil
}

func (s *PostgresIndex) Reset(ctx context.Context) error {
	if _, err := s.db.NewTruncateTable().Model((*entryRow)(nil)).Exec(ctx); err != nil {
		return fmt.Errorf("truncating index table: %w", err)
	}
	return nil
}

func (s *PostgresIndex) Count(ctx context.Context) (int, error) {
	return s.db.NewSelect().Model((*entryRow)(nil)).Count(ctx)
}

func (s *PostgresIndex) Close() error {
	return s.db.Close()
}

// vectorLiteral renders an embedding in pgvector's input syntax.
func vectorLiteral(v []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, x := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(x), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}
