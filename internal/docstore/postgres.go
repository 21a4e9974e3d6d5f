package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/edusphere/backend/internal/pkg/apperrors"
)

// PostgresStore implements Store on a single JSONB documents table. The full
// document lives in the doc column; kind, timestamps and revision are
// mirrored into columns for filtering and the check-and-set update.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgresStore creates a PostgresStore over the given pool
func NewPostgresStore(pool *pgxpool.Pool, logger zerolog.Logger) *PostgresStore {
	return &PostgresStore{pool: pool, logger: logger}
}

// EnsureSchema creates the documents table when it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS documents (
			id         TEXT PRIMARY KEY,
			kind       TEXT NOT NULL,
			doc        JSONB NOT NULL,
			created_at TEXT NOT NULL,
			revision   TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS documents_kind_created_idx
			ON documents (kind, created_at DESC);`

	if _, err := s.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("failed to ensure documents schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Create(ctx context.Context, doc Document) (Document, error) {
	stored := CopyDocument(doc)
	now := Now()
	id := "doc_" + uuid.NewString()
	stored[FieldID] = id
	stored[FieldRevision] = "1-" + uuid.NewString()
	stored[FieldCreatedAt] = now
	stored[FieldUpdatedAt] = now

	payload, err := json.Marshal(stored)
	if err != nil {
		return nil, apperrors.NewStorageError(err, "failed to encode document")
	}

	const insert = `INSERT INTO documents (id, kind, doc, created_at, revision) VALUES ($1, $2, $3, $4, $5)`
	if _, err := s.pool.Exec(ctx, insert, id, kindOf(stored), payload, now, stored[FieldRevision]); err != nil {
		return nil, apperrors.NewStorageError(err, fmt.Sprintf("failed to insert document %s", id))
	}
	return stored, nil
}

func (s *PostgresStore) Read(ctx context.Context, id string) (Document, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx, `SELECT doc FROM documents WHERE id = $1`, id).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStorageError(err, fmt.Sprintf("failed to read document %s", id))
	}
	return decodeDocument(payload)
}

func (s *PostgresStore) Update(ctx context.Context, id string, patch Document, expectedRev string) (Document, error) {
	existing, err := s.Read(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("document %s not found", id))
	}

	currentRev, _ := existing[FieldRevision].(string)
	if expectedRev != "" && expectedRev != currentRev {
		return nil, apperrors.NewConflictError(fmt.Sprintf("document %s: revision %s is stale", id, expectedRev))
	}

	merged := mergePatch(existing, patch)
	merged[FieldRevision] = NextRevision(currentRev)
	merged[FieldUpdatedAt] = Now()

	payload, err := json.Marshal(merged)
	if err != nil {
		return nil, apperrors.NewStorageError(err, "failed to encode document")
	}

	// The revision guard in the WHERE clause keeps the write atomic against
	// concurrent updaters regardless of expectedRev.
	const update = `UPDATE documents SET doc = $1, revision = $2 WHERE id = $3 AND revision = $4`
	tag, err := s.pool.Exec(ctx, update, payload, merged[FieldRevision], id, currentRev)
	if err != nil {
		return nil, apperrors.NewStorageError(err, fmt.Sprintf("failed to update document %s", id))
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.NewConflictError(fmt.Sprintf("document %s was modified concurrently", id))
	}
	return merged, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return false, apperrors.NewStorageError(err, fmt.Sprintf("failed to delete document %s", id))
	}
	return tag.RowsAffected() > 0, nil
}

// Find fetches all documents of the kind ordered newest-first and applies the
// remaining predicate clauses in process, reusing the shared query matcher.
func (s *PostgresStore) Find(ctx context.Context, q Query) ([]Document, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT doc FROM documents WHERE kind = $1 ORDER BY created_at DESC, id DESC`, q.Kind)
	if err != nil {
		return nil, apperrors.NewStorageError(err, "failed to query documents")
	}
	defer rows.Close()

	var matched []Document
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, apperrors.NewStorageError(err, "failed to scan document")
		}
		doc, err := decodeDocument(payload)
		if err != nil {
			return nil, err
		}
		if q.Matches(doc) {
			matched = append(matched, doc)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError(err, "document rows failed")
	}

	if q.Skip > 0 {
		if q.Skip >= len(matched) {
			return nil, nil
		}
		matched = matched[q.Skip:]
	}
	if q.Limit > 0 && q.Limit < len(matched) {
		matched = matched[:q.Limit]
	}
	return matched, nil
}

func decodeDocument(payload []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, apperrors.NewStorageError(err, "failed to decode document")
	}
	return doc, nil
}
