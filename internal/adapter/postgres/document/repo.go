// Package document implements the generated-document repository using PostgreSQL.
package document

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/asmelnikov/docgen-backend/internal/adapter/postgres"
	"github.com/asmelnikov/docgen-backend/internal/domain"
)

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// nextNumberQuery atomically advances the per-scope counter. The row lock
// taken by the upsert serializes concurrent generations in the same scope,
// so two documents never share a number.
const nextNumberQuery = `
INSERT INTO document_counters (scope_key, counter)
VALUES ($1, 1)
ON CONFLICT (scope_key) DO UPDATE
SET counter = document_counters.counter + 1
RETURNING counter`

// Repo provides document persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new document repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// NextNumber reserves the next sequential number for the scope.
func (r *Repo) NextNumber(ctx context.Context, scope domain.NumberingScope) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var number int
	if err := q.QueryRow(ctx, nextNumberQuery, scope.Key()).Scan(&number); err != nil {
		return 0, mapError(err, "document_counter", scope.Key())
	}
	return number, nil
}

// Create inserts a document record.
func (r *Repo) Create(ctx context.Context, doc *domain.Document) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.
		Insert("documents").
		Columns("id", "template_id", "number", "shown_date", "save_path", "created_at").
		Values(doc.ID, doc.TemplateID, doc.Number, doc.ShownDate, doc.SavePath, doc.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return mapError(err, "document", doc.ID)
	}
	return nil
}

// CreateValues stores the scalar values submitted for a document.
func (r *Repo) CreateValues(ctx context.Context, values []domain.DocumentValue) error {
	if len(values) == 0 {
		return nil
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	ib := builder.
		Insert("document_values").
		Columns("document_id", "field_id", "value")
	for _, v := range values {
		ib = ib.Values(v.DocumentID, v.FieldID, v.Value)
	}

	query, args, err := ib.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return mapError(err, "document_value", values[0].DocumentID)
	}
	return nil
}

// CreateTableValues stores the table cells submitted for a document.
func (r *Repo) CreateTableValues(ctx context.Context, values []domain.TableValue) error {
	if len(values) == 0 {
		return nil
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	ib := builder.
		Insert("table_values").
		Columns("document_id", "column_id", "row_number", "value")
	for _, v := range values {
		ib = ib.Values(v.DocumentID, v.ColumnID, v.RowNumber, v.Value)
	}

	query, args, err := ib.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return mapError(err, "table_value", values[0].DocumentID)
	}
	return nil
}

// GetByID returns a document by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.
		Select("id", "template_id", "number", "shown_date", "save_path", "created_at").
		From("documents").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var doc domain.Document
	err = q.QueryRow(ctx, query, args...).Scan(
		&doc.ID, &doc.TemplateID, &doc.Number, &doc.ShownDate, &doc.SavePath, &doc.CreatedAt,
	)
	if err != nil {
		return nil, mapError(err, "document", id)
	}
	return &doc, nil
}

// ListByTemplate returns the documents generated from one template,
// newest first.
func (r *Repo) ListByTemplate(ctx context.Context, templateID uuid.UUID) ([]domain.Document, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.
		Select("id", "template_id", "number", "shown_date", "save_path", "created_at").
		From("documents").
		Where(sq.Eq{"template_id": templateID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "documents", templateID)
	}
	defer rows.Close()

	var out []domain.Document
	for rows.Next() {
		var doc domain.Document
		err := rows.Scan(&doc.ID, &doc.TemplateID, &doc.Number, &doc.ShownDate, &doc.SavePath, &doc.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// Delete removes a document record. The cascade drops its values.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.
		Delete("documents").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return mapError(err, "document", id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Error mapping
// ---------------------------------------------------------------------------

// mapError converts pgx/pgconn errors into domain errors.
func mapError(err error, entity string, id any) error {
	if err == nil {
		return nil
	}

	// context errors pass through as-is
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %v: %w", entity, id, err)
	}

	// pgx.ErrNoRows -> domain.ErrNotFound
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %v: %w", entity, id, domain.ErrNotFound)
	}

	// PgError codes
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %v: %w", entity, id, domain.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %v: %w", entity, id, domain.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s %v: %w", entity, id, domain.ErrValidation)
		}
	}

	// Everything else: wrap with context
	return fmt.Errorf("%s %v: %w", entity, id, err)
}
