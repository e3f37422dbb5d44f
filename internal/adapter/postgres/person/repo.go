// Package person implements persistence for the document parties: executor
// and contractor companies and their signing persons.
package person

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

// Repo provides party persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new party repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Executors
// ---------------------------------------------------------------------------

// CreateExecutor inserts an executor company.
func (r *Repo) CreateExecutor(ctx context.Context, e *domain.Executor) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.
		Insert("executors").
		Columns("id", "name", "full_name", "created_at", "updated_at").
		Values(e.ID, e.Name, e.FullName, e.CreatedAt, e.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return mapError(err, "executor", e.ID)
	}
	return nil
}

// GetExecutor returns an executor company by primary key.
func (r *Repo) GetExecutor(ctx context.Context, id uuid.UUID) (*domain.Executor, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.
		Select("id", "name", "full_name", "created_at", "updated_at").
		From("executors").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var e domain.Executor
	err = q.QueryRow(ctx, query, args...).Scan(&e.ID, &e.Name, &e.FullName, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, mapError(err, "executor", id)
	}
	return &e, nil
}

// ---------------------------------------------------------------------------
// Contractors
// ---------------------------------------------------------------------------

// CreateContractor inserts a contractor company.
func (r *Repo) CreateContractor(ctx context.Context, c *domain.Contractor) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.
		Insert("contractors").
		Columns("id", "executor_id", "name", "full_name", "city",
			"contract_number", "contract_date", "created_at", "updated_at").
		Values(c.ID, c.ExecutorID, c.Name, c.FullName, c.City,
			c.ContractNumber, c.ContractDate, c.CreatedAt, c.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return mapError(err, "contractor", c.ID)
	}
	return nil
}

// GetContractor returns a contractor company by primary key.
func (r *Repo) GetContractor(ctx context.Context, id uuid.UUID) (*domain.Contractor, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.
		Select("id", "executor_id", "name", "full_name", "city",
			"contract_number", "contract_date", "created_at", "updated_at").
		From("contractors").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var c domain.Contractor
	err = q.QueryRow(ctx, query, args...).Scan(&c.ID, &c.ExecutorID, &c.Name, &c.FullName,
		&c.City, &c.ContractNumber, &c.ContractDate, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, mapError(err, "contractor", id)
	}
	return &c, nil
}

// ListContractors returns the contractors of one executor company.
func (r *Repo) ListContractors(ctx context.Context, executorID uuid.UUID) ([]domain.Contractor, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.
		Select("id", "executor_id", "name", "full_name", "city",
			"contract_number", "contract_date", "created_at", "updated_at").
		From("contractors").
		Where(sq.Eq{"executor_id": executorID}).
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "contractors", executorID)
	}
	defer rows.Close()

	var out []domain.Contractor
	for rows.Next() {
		var c domain.Contractor
		err := rows.Scan(&c.ID, &c.ExecutorID, &c.Name, &c.FullName, &c.City,
			&c.ContractNumber, &c.ContractDate, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan contractor: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ---------------------------------------------------------------------------
// Executor persons
// ---------------------------------------------------------------------------

// CreateExecutorPerson inserts a signing person of an executor company.
func (r *Repo) CreateExecutorPerson(ctx context.Context, p *domain.ExecutorPerson) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.
		Insert("executor_persons").
		Columns("id", "executor_id", "first_name", "last_name", "surname", "post").
		Values(p.ID, p.ExecutorID, p.FirstName, p.LastName, p.Surname, p.Post).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return mapError(err, "executor_person", p.ID)
	}
	return nil
}

// GetExecutorPerson returns a signing person of an executor company.
func (r *Repo) GetExecutorPerson(ctx context.Context, id uuid.UUID) (*domain.ExecutorPerson, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.
		Select("id", "executor_id", "first_name", "last_name", "surname", "post").
		From("executor_persons").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var p domain.ExecutorPerson
	err = q.QueryRow(ctx, query, args...).Scan(&p.ID, &p.ExecutorID, &p.FirstName, &p.LastName, &p.Surname, &p.Post)
	if err != nil {
		return nil, mapError(err, "executor_person", id)
	}
	return &p, nil
}

// ---------------------------------------------------------------------------
// Contractor persons
// ---------------------------------------------------------------------------

// CreateContractorPerson inserts a signing person of a contractor company.
func (r *Repo) CreateContractorPerson(ctx context.Context, p *domain.ContractorPerson) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.
		Insert("contractor_persons").
		Columns("id", "contractor_id", "first_name", "last_name", "surname", "post").
		Values(p.ID, p.ContractorID, p.FirstName, p.LastName, p.Surname, p.Post).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return mapError(err, "contractor_person", p.ID)
	}
	return nil
}

// GetContractorPerson returns a signing person of a contractor company.
func (r *Repo) GetContractorPerson(ctx context.Context, id uuid.UUID) (*domain.ContractorPerson, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := builder.
		Select("id", "contractor_id", "first_name", "last_name", "surname", "post").
		From("contractor_persons").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var p domain.ContractorPerson
	err = q.QueryRow(ctx, query, args...).Scan(&p.ID, &p.ContractorID, &p.FirstName, &p.LastName, &p.Surname, &p.Post)
	if err != nil {
		return nil, mapError(err, "contractor_person", id)
	}
	return &p, nil
}

// ---------------------------------------------------------------------------
// Error mapping
// ---------------------------------------------------------------------------

// mapError converts pgx/pgconn errors into domain errors.
func mapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	// context errors pass through as-is
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	// pgx.ErrNoRows -> domain.ErrNotFound
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	// PgError codes
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrValidation)
		}
	}

	// Everything else: wrap with context
	return fmt.Errorf("%s %s: %w", entity, id, err)
}
