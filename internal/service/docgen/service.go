package docgen

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/asmelnikov/docgen-backend/internal/domain"
)

type templateRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Template, error)
	ListDocumentFields(ctx context.Context, templateID uuid.UUID) ([]domain.DocumentField, error)
	ListTableColumns(ctx context.Context, templateID uuid.UUID) ([]domain.TableColumn, error)
}

type personRepo interface {
	GetExecutorPerson(ctx context.Context, id uuid.UUID) (*domain.ExecutorPerson, error)
	GetContractorPerson(ctx context.Context, id uuid.UUID) (*domain.ContractorPerson, error)
	GetExecutor(ctx context.Context, id uuid.UUID) (*domain.Executor, error)
	GetContractor(ctx context.Context, id uuid.UUID) (*domain.Contractor, error)
}

type documentRepo interface {
	Create(ctx context.Context, doc *domain.Document) error
	CreateValues(ctx context.Context, values []domain.DocumentValue) error
	CreateTableValues(ctx context.Context, values []domain.TableValue) error
	NextNumber(ctx context.Context, scope domain.NumberingScope) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type validator interface {
	Validate(ctx context.Context, sub domain.Submission, kind domain.EntityKind) error
	MissingRequired(ctx context.Context, sub domain.Submission, kind domain.EntityKind) ([]string, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Storage locates template and output files on disk.
type Storage struct {
	TemplatesDir string
	DocumentsDir string
}

// Service assembles documents: it validates a submission, renders the
// template, expands its table, and persists the generation record.
type Service struct {
	log       *slog.Logger
	templates templateRepo
	persons   personRepo
	documents documentRepo
	schema    validator
	tx        txManager
	storage   Storage

	now func() time.Time
}

// NewService creates a new Docgen service.
func NewService(
	logger *slog.Logger,
	templates templateRepo,
	persons personRepo,
	documents documentRepo,
	schema validator,
	tx txManager,
	storage Storage,
) *Service {
	return &Service{
		log:       logger.With("service", "docgen"),
		templates: templates,
		persons:   persons,
		documents: documents,
		schema:    schema,
		tx:        tx,
		storage:   storage,
		now:       time.Now,
	}
}
