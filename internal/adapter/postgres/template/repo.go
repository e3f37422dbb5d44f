// Package template implements the template repository using PostgreSQL.
package template

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

var templateColumns = []string{
	"id", "name", "type", "file_path", "contractor_person_id", "executor_person_id",
	"created_at", "updated_at",
}

// Repo provides template persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new template repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a template record.
func (r *Repo) Create(ctx context.Context, t *domain.Template) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.
		Insert("templates").
		Columns(templateColumns...).
		Values(t.ID, t.Name, string(t.Type), t.FilePath, t.ContractorPersonID, t.ExecutorPersonID,
			t.CreatedAt, t.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return mapError(err, "template", t.ID)
	}
	return nil
}

// GetByID returns a template by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Template, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.
		Select(templateColumns...).
		From("templates").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var t domain.Template
	err = q.QueryRow(ctx, query, args...).Scan(
		&t.ID, &t.Name, &t.Type, &t.FilePath, &t.ContractorPersonID, &t.ExecutorPersonID,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err, "template", id)
	}
	return &t, nil
}

// List returns every template, newest first.
func (r *Repo) List(ctx context.Context) ([]domain.Template, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.
		Select(templateColumns...).
		From("templates").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "templates", uuid.Nil)
	}
	defer rows.Close()

	var out []domain.Template
	for rows.Next() {
		var t domain.Template
		err := rows.Scan(&t.ID, &t.Name, &t.Type, &t.FilePath, &t.ContractorPersonID,
			&t.ExecutorPersonID, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ---------------------------------------------------------------------------
// Document fields
// ---------------------------------------------------------------------------

// CreateDocumentField attaches a placeholder field definition to a template.
func (r *Repo) CreateDocumentField(ctx context.Context, f *domain.DocumentField) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.
		Insert("document_fields").
		Columns("id", "template_id", "name", "key_name", "type", "validation_regex",
			"is_required", "secure_text", "placeholder", "error_text").
		Values(f.ID, f.TemplateID, f.Name, f.KeyName, string(f.Type), f.ValidationRegex,
			f.IsRequired, f.SecureText, f.Placeholder, f.ErrorText).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return mapError(err, "document_field", f.ID)
	}
	return nil
}

// ListDocumentFields returns the placeholder fields of a template.
func (r *Repo) ListDocumentFields(ctx context.Context, templateID uuid.UUID) ([]domain.DocumentField, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.
		Select("id", "name", "key_name", "type", "validation_regex",
			"is_required", "secure_text", "placeholder", "error_text").
		From("document_fields").
		Where(sq.Eq{"template_id": templateID}).
		OrderBy("key_name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "document_fields", templateID)
	}
	defer rows.Close()

	var out []domain.DocumentField
	for rows.Next() {
		f := domain.DocumentField{TemplateID: templateID}
		err := rows.Scan(&f.ID, &f.Name, &f.KeyName, &f.Type, &f.ValidationRegex,
			&f.IsRequired, &f.SecureText, &f.Placeholder, &f.ErrorText)
		if err != nil {
			return nil, fmt.Errorf("scan document field: %w", err)
		}
		f.EntityKind = domain.EntityKindDocumentField
		f.IsCustom = true
		out = append(out, f)
	}
	return out, rows.Err()
}

// ---------------------------------------------------------------------------
// Table columns
// ---------------------------------------------------------------------------

// CreateTableColumn attaches a table column definition to a template.
func (r *Repo) CreateTableColumn(ctx context.Context, c *domain.TableColumn) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.
		Insert("table_columns").
		Columns("id", "template_id", "name", "key_name", "type", "validation_regex",
			"is_required", "secure_text", "placeholder", "error_text", "draw_order", "is_summable").
		Values(c.ID, c.TemplateID, c.Name, c.KeyName, string(c.Type), c.ValidationRegex,
			c.IsRequired, c.SecureText, c.Placeholder, c.ErrorText, c.DrawOrder, c.IsSummable).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return mapError(err, "table_column", c.ID)
	}
	return nil
}

// ListTableColumns returns the table columns of a template in draw order.
func (r *Repo) ListTableColumns(ctx context.Context, templateID uuid.UUID) ([]domain.TableColumn, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.
		Select("id", "name", "key_name", "type", "validation_regex",
			"is_required", "secure_text", "placeholder", "error_text", "draw_order", "is_summable").
		From("table_columns").
		Where(sq.Eq{"template_id": templateID}).
		OrderBy("draw_order").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "table_columns", templateID)
	}
	defer rows.Close()

	var out []domain.TableColumn
	for rows.Next() {
		c := domain.TableColumn{TemplateID: templateID}
		err := rows.Scan(&c.ID, &c.Name, &c.KeyName, &c.Type, &c.ValidationRegex,
			&c.IsRequired, &c.SecureText, &c.Placeholder, &c.ErrorText, &c.DrawOrder, &c.IsSummable)
		if err != nil {
			return nil, fmt.Errorf("scan table column: %w", err)
		}
		c.EntityKind = domain.EntityKindTableField
		c.IsCustom = true
		out = append(out, c)
	}
	return out, rows.Err()
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
