// Package field implements the field-definition repository using PostgreSQL.
// Plain fields live in the fields table; the template-scoped document_fields
// and table_columns tables are consulted as lookup fallbacks.
package field

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/asmelnikov/docgen-backend/internal/adapter/postgres"
	"github.com/asmelnikov/docgen-backend/internal/domain"
)

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var fieldColumns = []string{
	"id", "name", "key_name", "entity_kind", "type", "validation_regex",
	"is_required", "is_custom", "secure_text", "placeholder", "error_text", "related_info",
}

// Repo provides field-definition persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new field repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByNaturalKey returns the definition for (key_name, entity_kind).
// The plain fields table wins; for the DocumentField and TableField kinds the
// template-scoped tables are consulted when the plain table has no row.
func (r *Repo) GetByNaturalKey(ctx context.Context, keyName string, kind domain.EntityKind) (*domain.FieldDefinition, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	def, err := r.getPlain(ctx, q, keyName, kind)
	if err == nil {
		return def, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, mapError(err, "field", keyName)
	}

	switch kind {
	case domain.EntityKindDocumentField:
		def, err = r.getScoped(ctx, q, "document_fields", keyName, kind)
	case domain.EntityKindTableField:
		def, err = r.getScoped(ctx, q, "table_columns", keyName, kind)
	default:
		return nil, fmt.Errorf("field %s: %w", keyName, domain.ErrNotFound)
	}
	if err != nil {
		return nil, mapError(err, "field", keyName)
	}
	return def, nil
}

func (r *Repo) getPlain(ctx context.Context, q postgres.Querier, keyName string, kind domain.EntityKind) (*domain.FieldDefinition, error) {
	query, args, err := builder.
		Select(fieldColumns...).
		From("fields").
		Where(sq.Eq{"key_name": keyName, "entity_kind": string(kind)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	return scanField(q.QueryRow(ctx, query, args...))
}

// getScoped reads a template-scoped definition by key name. Several templates
// may reuse a key; the oldest definition wins, matching the single-table
// lookup of the schema validator.
func (r *Repo) getScoped(ctx context.Context, q postgres.Querier, table, keyName string, kind domain.EntityKind) (*domain.FieldDefinition, error) {
	query, args, err := builder.
		Select("id", "name", "key_name", "type", "validation_regex",
			"is_required", "secure_text", "placeholder", "error_text").
		From(table).
		Where(sq.Eq{"key_name": keyName}).
		OrderBy("id").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var def domain.FieldDefinition
	err = q.QueryRow(ctx, query, args...).Scan(
		&def.ID, &def.Name, &def.KeyName, &def.Type, &def.ValidationRegex,
		&def.IsRequired, &def.SecureText, &def.Placeholder, &def.ErrorText,
	)
	if err != nil {
		return nil, err
	}
	def.EntityKind = kind
	def.IsCustom = true
	return &def, nil
}

// ListByKind returns all definitions of one entity kind, built-in and custom.
func (r *Repo) ListByKind(ctx context.Context, kind domain.EntityKind) ([]domain.FieldDefinition, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.
		Select(fieldColumns...).
		From("fields").
		Where(sq.Eq{"entity_kind": string(kind)}).
		OrderBy("key_name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "fields", kind)
	}
	defer rows.Close()

	return collectFields(rows)
}

// ListBuiltinRequired returns the non-custom required definitions of a kind.
func (r *Repo) ListBuiltinRequired(ctx context.Context, kind domain.EntityKind) ([]domain.FieldDefinition, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.
		Select(fieldColumns...).
		From("fields").
		Where(sq.Eq{"entity_kind": string(kind), "is_custom": false, "is_required": true}).
		OrderBy("key_name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "fields", kind)
	}
	defer rows.Close()

	return collectFields(rows)
}

// Create inserts a custom plain field definition.
func (r *Repo) Create(ctx context.Context, def *domain.FieldDefinition) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	related, err := relatedInfoJSON(def.RelatedInfo)
	if err != nil {
		return err
	}

	query, args, err := builder.
		Insert("fields").
		Columns(fieldColumns...).
		Values(def.ID, def.Name, def.KeyName, string(def.EntityKind), string(def.Type),
			def.ValidationRegex, def.IsRequired, def.IsCustom, def.SecureText,
			def.Placeholder, def.ErrorText, related).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return mapError(err, "field", def.NaturalKey())
	}
	return nil
}

// Upsert inserts or refreshes a definition by its natural key. The seeder
// uses it so re-running the seed never duplicates built-ins.
func (r *Repo) Upsert(ctx context.Context, def *domain.FieldDefinition) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	related, err := relatedInfoJSON(def.RelatedInfo)
	if err != nil {
		return err
	}

	query, args, err := builder.
		Insert("fields").
		Columns(fieldColumns...).
		Values(def.ID, def.Name, def.KeyName, string(def.EntityKind), string(def.Type),
			def.ValidationRegex, def.IsRequired, def.IsCustom, def.SecureText,
			def.Placeholder, def.ErrorText, related).
		Suffix(`ON CONFLICT (key_name, entity_kind) DO UPDATE SET
			name = EXCLUDED.name,
			type = EXCLUDED.type,
			validation_regex = EXCLUDED.validation_regex,
			is_required = EXCLUDED.is_required,
			secure_text = EXCLUDED.secure_text,
			placeholder = EXCLUDED.placeholder,
			error_text = EXCLUDED.error_text,
			related_info = EXCLUDED.related_info`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return mapError(err, "field", def.NaturalKey())
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

// ---------------------------------------------------------------------------
// Scan helpers
// ---------------------------------------------------------------------------

func scanField(row pgx.Row) (*domain.FieldDefinition, error) {
	var (
		def     domain.FieldDefinition
		related []byte
	)
	err := row.Scan(
		&def.ID, &def.Name, &def.KeyName, &def.EntityKind, &def.Type, &def.ValidationRegex,
		&def.IsRequired, &def.IsCustom, &def.SecureText, &def.Placeholder, &def.ErrorText, &related,
	)
	if err != nil {
		return nil, err
	}
	if len(related) > 0 {
		def.RelatedInfo = &domain.ComboboxInfo{}
		if err := json.Unmarshal(related, def.RelatedInfo); err != nil {
			return nil, fmt.Errorf("decode related_info of %s: %w", def.ID, err)
		}
	}
	return &def, nil
}

func collectFields(rows pgx.Rows) ([]domain.FieldDefinition, error) {
	var out []domain.FieldDefinition
	for rows.Next() {
		def, err := scanField(rows)
		if err != nil {
			return nil, fmt.Errorf("scan field: %w", err)
		}
		out = append(out, *def)
	}
	return out, rows.Err()
}

func relatedInfoJSON(info *domain.ComboboxInfo) ([]byte, error) {
	if info == nil {
		return nil, nil
	}
	data, err := json.Marshal(info)
	if err != nil {
		return nil, fmt.Errorf("encode related_info: %w", err)
	}
	return data, nil
}
