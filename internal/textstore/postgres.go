package textstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	apperrors "github.com/Adithya-Monish-Kumar-K/wiki-retrieval/pkg/errors"
)

const (
	createTableSQL = `CREATE TABLE IF NOT EXISTS article_texts (
	id   INTEGER PRIMARY KEY,
	body TEXT NOT NULL
)`
	upsertSQL = `INSERT INTO article_texts (id, body) VALUES ($1, $2)
ON CONFLICT (id) DO UPDATE SET body = EXCLUDED.body`
	selectSQL = `SELECT body FROM article_texts WHERE id = $1`

	defaultBatchSize = 500
)

// TxRunner runs a function inside a database transaction.
type TxRunner interface {
	InTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

type pendingRow struct {
	id   int
	body string
}

// PostgresStore keeps article text in the article_texts table. Writes are
// buffered and upserted in batches, one transaction per batch.
type PostgresStore struct {
	db        *sql.DB
	tx        TxRunner
	batchSize int

	mu      sync.Mutex
	pending []pendingRow
}

func NewPostgresStore(db *sql.DB, tx TxRunner) *PostgresStore {
	return &PostgresStore{db: db, tx: tx, batchSize: defaultBatchSize}
}

// EnsureSchema creates the article_texts table when it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("creating article_texts: %w", err)
	}
	return nil
}

func (s *PostgresStore) Put(ctx context.Context, id int, text string) error {
	s.mu.Lock()
	s.pending = append(s.pending, pendingRow{id: id, body: text})
	full := len(s.pending) >= s.batchSize
	s.mu.Unlock()
	if full {
		return s.Flush(ctx)
	}
	return nil
}

// Flush upserts every buffered row.
func (s *PostgresStore) Flush(ctx context.Context) error {
	s.mu.Lock()
	rows := s.pending
	s.pending = nil
	s.mu.Unlock()
	if len(rows) == 0 {
		return nil
	}
	return s.tx.InTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, upsertSQL)
		if err != nil {
			return fmt.Errorf("preparing upsert: %w", err)
		}
		defer stmt.Close()
		for _, r := range rows {
			if _, err := stmt.ExecContext(ctx, r.id, r.body); err != nil {
				return fmt.Errorf("upserting article %d: %w", r.id, err)
			}
		}
		return nil
	})
}

func (s *PostgresStore) Get(ctx context.Context, id int) (string, error) {
	var body string
	err := s.db.QueryRowContext(ctx, selectSQL, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperrors.Newf(apperrors.ErrArticleTextMissing, "article %d", id)
	}
	if err != nil {
		return "", fmt.Errorf("selecting article %d: %w", id, err)
	}
	return body, nil
}
