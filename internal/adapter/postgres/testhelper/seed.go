package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/asmelnikov/docgen-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedExecutor creates an executor company. Returns a filled domain.Executor.
func SeedExecutor(t *testing.T, pool *pgxpool.Pool) domain.Executor {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	executor := domain.Executor{
		ID:        uuid.New(),
		Name:      "ООО Исполнитель " + suffix,
		FullName:  "Общество с ограниченной ответственностью «Исполнитель " + suffix + "»",
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO executors (id, name, full_name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		executor.ID, executor.Name, executor.FullName, executor.CreatedAt, executor.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedExecutor insert executor: %v", err)
	}

	return executor
}

// SeedContractor creates a contractor company for the given executor.
// Returns a filled domain.Contractor.
func SeedContractor(t *testing.T, pool *pgxpool.Pool, executorID uuid.UUID) domain.Contractor {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	contractor := domain.Contractor{
		ID:             uuid.New(),
		ExecutorID:     executorID,
		Name:           "ООО Заказчик " + suffix,
		FullName:       "Общество с ограниченной ответственностью «Заказчик " + suffix + "»",
		City:           "Москва",
		ContractNumber: 42,
		ContractDate:   time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO contractors (id, executor_id, name, full_name, city, contract_number, contract_date, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		contractor.ID, contractor.ExecutorID, contractor.Name, contractor.FullName, contractor.City,
		contractor.ContractNumber, contractor.ContractDate, contractor.CreatedAt, contractor.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedContractor insert contractor: %v", err)
	}

	return contractor
}

// SeedExecutorPerson creates a signing person for an executor company.
func SeedExecutorPerson(t *testing.T, pool *pgxpool.Pool, executorID uuid.UUID) domain.ExecutorPerson {
	t.Helper()
	ctx := context.Background()

	person := domain.ExecutorPerson{
		Person: domain.Person{
			ID:        uuid.New(),
			FirstName: "Иван",
			LastName:  "Петров",
			Surname:   "Сергеевич",
			Post:      "Генеральный директор",
		},
		ExecutorID: executorID,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO executor_persons (id, executor_id, first_name, last_name, surname, post)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		person.ID, person.ExecutorID, person.FirstName, person.LastName, person.Surname, person.Post,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedExecutorPerson insert person: %v", err)
	}

	return person
}

// SeedContractorPerson creates a signing person for a contractor company.
func SeedContractorPerson(t *testing.T, pool *pgxpool.Pool, contractorID uuid.UUID) domain.ContractorPerson {
	t.Helper()
	ctx := context.Background()

	person := domain.ContractorPerson{
		Person: domain.Person{
			ID:        uuid.New(),
			FirstName: "Анна",
			LastName:  "Смирнова",
			Surname:   "Павловна",
			Post:      "Директор",
		},
		ContractorID: contractorID,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO contractor_persons (id, contractor_id, first_name, last_name, surname, post)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		person.ID, person.ContractorID, person.FirstName, person.LastName, person.Surname, person.Post,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedContractorPerson insert person: %v", err)
	}

	return person
}

// SeedTemplate creates a template wired to a full party chain: an executor,
// a contractor, and one signing person on each side.
// Returns a filled domain.Template.
func SeedTemplate(t *testing.T, pool *pgxpool.Pool) domain.Template {
	t.Helper()
	ctx := context.Background()

	executor := SeedExecutor(t, pool)
	contractor := SeedContractor(t, pool, executor.ID)
	executorPerson := SeedExecutorPerson(t, pool, executor.ID)
	contractorPerson := SeedContractorPerson(t, pool, contractor.ID)

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	tmpl := domain.Template{
		ID:                 uuid.New(),
		Name:               "Акт " + suffix,
		Type:               domain.DocumentTypeAct,
		FilePath:           "act-" + suffix + ".docx",
		ContractorPersonID: contractorPerson.ID,
		ExecutorPersonID:   executorPerson.ID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO templates (id, name, type, file_path, contractor_person_id, executor_person_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		tmpl.ID, tmpl.Name, string(tmpl.Type), tmpl.FilePath, tmpl.ContractorPersonID,
		tmpl.ExecutorPersonID, tmpl.CreatedAt, tmpl.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTemplate insert template: %v", err)
	}

	return tmpl
}
