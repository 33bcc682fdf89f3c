package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"minar-ads/internal/core/domain"
	"minar-ads/internal/core/port"
)

// uniqueViolation is the postgres error code raised when an insert hits
// an existing primary key. The quota gate depends on this mapping.
const uniqueViolation = "23505"

// Store implements port.DocumentStore over a single documents table with
// a jsonb body, keyed by (collection, id). The primary-key constraint
// provides the create-fails-if-exists guarantee and a transaction
// provides all-or-nothing batches.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore returns a new store instance.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Create stores a new document, mapping a primary-key collision to
// port.ErrAlreadyExists.
func (s *Store) Create(ctx context.Context, collection, id string, doc any) error {
	return create(ctx, s.pool, collection, id, doc)
}

func create(ctx context.Context, q querier, collection, id string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = q.Exec(ctx,
		`INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3)`,
		collection, id, raw)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return port.ErrAlreadyExists
		}
		return &domain.TransientStoreError{Op: "create", Err: err}
	}
	return nil
}

// Get decodes the document body into dst.
func (s *Store) Get(ctx context.Context, collection, id string, dst any) error {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM documents WHERE collection = $1 AND id = $2`,
		collection, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return &domain.TransientStoreError{Op: "get", Err: err}
	}
	return json.Unmarshal(raw, dst)
}

// Set merges fields into the document, creating it when absent.
func (s *Store) Set(ctx context.Context, collection, id string, fields map[string]any) error {
	return set(ctx, s.pool, collection, id, fields)
}

func set(ctx context.Context, q querier, collection, id string, fields map[string]any) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	_, err = q.Exec(ctx,
		`INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3)
		 ON CONFLICT (collection, id)
		 DO UPDATE SET data = documents.data || EXCLUDED.data, updated_at = now()`,
		collection, id, raw)
	if err != nil {
		return &domain.TransientStoreError{Op: "set", Err: err}
	}
	return nil
}

// Update merges fields into an existing document.
func (s *Store) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	return update(ctx, s.pool, collection, id, fields)
}

func update(ctx context.Context, q querier, collection, id string, fields map[string]any) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	tag, err := q.Exec(ctx,
		`UPDATE documents SET data = data || $3, updated_at = now()
		 WHERE collection = $1 AND id = $2`,
		collection, id, raw)
	if err != nil {
		return &domain.TransientStoreError{Op: "update", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the document.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	return del(ctx, s.pool, collection, id)
}

func del(ctx context.Context, q querier, collection, id string) error {
	tag, err := q.Exec(ctx,
		`DELETE FROM documents WHERE collection = $1 AND id = $2`,
		collection, id)
	if err != nil {
		return &domain.TransientStoreError{Op: "delete", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// batchTx is the subset of pgx.Tx that applying a batch needs.
type batchTx interface {
	querier
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// BatchCommit applies all writes in one transaction.
func (s *Store) BatchCommit(ctx context.Context, writes []port.Write) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return &domain.TransientStoreError{Op: "batch", Err: err}
	}
	return applyBatch(ctx, tx, writes)
}

// applyBatch runs the writes against tx and commits. The named return
// lets the deferred commit error reach the caller.
func applyBatch(ctx context.Context, tx batchTx, writes []port.Write) (err error) {
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if cerr := tx.Commit(ctx); cerr != nil {
			err = &domain.TransientStoreError{Op: "batch commit", Err: cerr}
		}
	}()
	for _, w := range writes {
		switch w.Kind {
		case port.WriteCreate:
			err = create(ctx, tx, w.Collection, w.ID, w.Doc)
		case port.WriteSet:
			err = set(ctx, tx, w.Collection, w.ID, w.Fields)
		case port.WriteUpdate:
			err = update(ctx, tx, w.Collection, w.ID, w.Fields)
		case port.WriteDelete:
			err = del(ctx, tx, w.Collection, w.ID)
		default:
			err = fmt.Errorf("unknown write kind %d", w.Kind)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// validField guards the field names interpolated into query SQL. Field
// names come from code, never from request input, so anything outside a
// plain identifier is a programming error.
func validField(name string) error {
	for _, r := range name {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' {
			continue
		}
		return fmt.Errorf("invalid query field %q", name)
	}
	if name == "" {
		return fmt.Errorf("empty query field")
	}
	return nil
}

// Query returns documents matching q. Filters and ordering address
// top-level fields of the jsonb body as text.
func (s *Store) Query(ctx context.Context, collection string, q port.Query) ([]port.Document, error) {
	var (
		sb   strings.Builder
		args = []any{collection}
	)
	sb.WriteString(`SELECT id, data FROM documents WHERE collection = $1`)
	for _, f := range q.Filters {
		if f.Op != port.OpEq {
			return nil, fmt.Errorf("unsupported filter op %q", f.Op)
		}
		if err := validField(f.Field); err != nil {
			return nil, err
		}
		args = append(args, fmt.Sprint(f.Value))
		sb.WriteString(fmt.Sprintf(` AND data->>'%s' = $%d`, f.Field, len(args)))
	}
	if q.OrderBy != "" {
		if err := validField(q.OrderBy); err != nil {
			return nil, err
		}
		// Timestamp fields follow the _at naming convention and must
		// order chronologically, not lexicographically: RFC 3339 strings
		// with differing fractional widths compare wrong as text.
		if strings.HasSuffix(q.OrderBy, "_at") {
			sb.WriteString(fmt.Sprintf(` ORDER BY (data->>'%s')::timestamptz`, q.OrderBy))
		} else {
			sb.WriteString(fmt.Sprintf(` ORDER BY data->>'%s'`, q.OrderBy))
		}
		if q.Desc {
			sb.WriteString(` DESC`)
		}
		sb.WriteString(`, id`)
	} else {
		sb.WriteString(` ORDER BY id`)
	}
	if q.Limit > 0 {
		args = append(args, q.Limit)
		sb.WriteString(fmt.Sprintf(` LIMIT $%d`, len(args)))
	}

	rows, err := s.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, &domain.TransientStoreError{Op: "query", Err: err}
	}
	docs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (port.Document, error) {
		var d port.Document
		err := row.Scan(&d.ID, &d.Data)
		return d, err
	})
	if err != nil {
		return nil, &domain.TransientStoreError{Op: "query", Err: err}
	}
	return docs, nil
}
