package docgen

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/asmelnikov/docgen-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockTemplateRepo struct {
	GetByIDFunc            func(ctx context.Context, id uuid.UUID) (*domain.Template, error)
	ListDocumentFieldsFunc func(ctx context.Context, templateID uuid.UUID) ([]domain.DocumentField, error)
	ListTableColumnsFunc   func(ctx context.Context, templateID uuid.UUID) ([]domain.TableColumn, error)
}

func (m *mockTemplateRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Template, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockTemplateRepo) ListDocumentFields(ctx context.Context, templateID uuid.UUID) ([]domain.DocumentField, error) {
	if m.ListDocumentFieldsFunc != nil {
		return m.ListDocumentFieldsFunc(ctx, templateID)
	}
	return nil, nil
}

func (m *mockTemplateRepo) ListTableColumns(ctx context.Context, templateID uuid.UUID) ([]domain.TableColumn, error) {
	if m.ListTableColumnsFunc != nil {
		return m.ListTableColumnsFunc(ctx, templateID)
	}
	return nil, nil
}

type mockPersonRepo struct {
	executorPerson   *domain.ExecutorPerson
	contractorPerson *domain.ContractorPerson
	executor         *domain.Executor
	contractor       *domain.Contractor
}

func (m *mockPersonRepo) GetExecutorPerson(context.Context, uuid.UUID) (*domain.ExecutorPerson, error) {
	return m.executorPerson, nil
}

func (m *mockPersonRepo) GetContractorPerson(context.Context, uuid.UUID) (*domain.ContractorPerson, error) {
	return m.contractorPerson, nil
}

func (m *mockPersonRepo) GetExecutor(context.Context, uuid.UUID) (*domain.Executor, error) {
	return m.executor, nil
}

func (m *mockPersonRepo) GetContractor(context.Context, uuid.UUID) (*domain.Contractor, error) {
	return m.contractor, nil
}

type mockDocumentRepo struct {
	counter int

	created     *domain.Document
	values      []domain.DocumentValue
	tableValues []domain.TableValue
	deleted     []uuid.UUID

	CreateFunc func(ctx context.Context, doc *domain.Document) error
}

func (m *mockDocumentRepo) Create(ctx context.Context, doc *domain.Document) error {
	if m.CreateFunc != nil {
		if err := m.CreateFunc(ctx, doc); err != nil {
			return err
		}
	}
	m.created = doc
	return nil
}

func (m *mockDocumentRepo) CreateValues(_ context.Context, values []domain.DocumentValue) error {
	m.values = append(m.values, values...)
	return nil
}

func (m *mockDocumentRepo) CreateTableValues(_ context.Context, values []domain.TableValue) error {
	m.tableValues = append(m.tableValues, values...)
	return nil
}

func (m *mockDocumentRepo) NextNumber(context.Context, domain.NumberingScope) (int, error) {
	m.counter++
	return m.counter, nil
}

func (m *mockDocumentRepo) Delete(_ context.Context, id uuid.UUID) error {
	m.deleted = append(m.deleted, id)
	return nil
}

type mockValidator struct {
	ValidateFunc        func(ctx context.Context, sub domain.Submission, kind domain.EntityKind) error
	MissingRequiredFunc func(ctx context.Context, sub domain.Submission, kind domain.EntityKind) ([]string, error)
}

func (m *mockValidator) Validate(ctx context.Context, sub domain.Submission, kind domain.EntityKind) error {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(ctx, sub, kind)
	}
	return nil
}

func (m *mockValidator) MissingRequired(ctx context.Context, sub domain.Submission, kind domain.EntityKind) ([]string, error) {
	if m.MissingRequiredFunc != nil {
		return m.MissingRequiredFunc(ctx, sub, kind)
	}
	return nil, nil
}

type mockTxManager struct{}

func (mockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ---------------------------------------------------------------------------
// Fixture helpers
// ---------------------------------------------------------------------------

// writeTemplate builds a minimal docx around the body and stores it under dir.
func writeTemplate(t *testing.T, dir, name, body string) {
	t.Helper()

	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body>` + body + `</w:body></w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for entry, content := range map[string]string{
		"[Content_Types].xml": `<?xml version="1.0"?><Types/>`,
		"word/document.xml":   document,
	} {
		fw, err := zw.Create(entry)
		if err != nil {
			t.Fatalf("create zip entry: %v", err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("write zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
}

func paragraph(text string) string {
	return `<w:p><w:r><w:t>` + text + `</w:t></w:r></w:p>`
}

func markerTable(columns int) string {
	var b strings.Builder
	b.WriteString(`<w:tbl><w:tblPr/>`)
	b.WriteString("<w:tr>")
	for i := 0; i < columns; i++ {
		fmt.Fprintf(&b, "<w:tc>%s</w:tc>", paragraph(fmt.Sprintf("Col %d", i+1)))
	}
	b.WriteString("</w:tr><w:tr>")
	for i := 0; i < columns; i++ {
		fmt.Fprintf(&b, "<w:tc>%s</w:tc>", paragraph("RC"))
	}
	b.WriteString("</w:tr></w:tbl>")
	return b.String()
}

type fixture struct {
	svc       *Service
	docs      *mockDocumentRepo
	tmpl      *domain.Template
	templates *mockTemplateRepo
	schema    *mockValidator
	storage   Storage
}

func newFixture(t *testing.T, body string, cols []domain.TableColumn) *fixture {
	t.Helper()

	storage := Storage{
		TemplatesDir: t.TempDir(),
		DocumentsDir: t.TempDir(),
	}
	writeTemplate(t, storage.TemplatesDir, "act.docx", body)

	tmpl := &domain.Template{
		ID:                 uuid.New(),
		Name:               "Акт выполненных работ",
		Type:               domain.DocumentTypeAct,
		FilePath:           "act.docx",
		ContractorPersonID: uuid.New(),
		ExecutorPersonID:   uuid.New(),
	}

	templates := &mockTemplateRepo{
		GetByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.Template, error) {
			if id != tmpl.ID {
				return nil, domain.ErrNotFound
			}
			return tmpl, nil
		},
		ListTableColumnsFunc: func(context.Context, uuid.UUID) ([]domain.TableColumn, error) {
			return cols, nil
		},
	}

	persons := &mockPersonRepo{
		executorPerson: &domain.ExecutorPerson{
			Person: domain.Person{FirstName: "Иван", LastName: "Петров", Surname: "Сергеевич", Post: "Генеральный директор"},
		},
		contractorPerson: &domain.ContractorPerson{
			Person: domain.Person{FirstName: "Анна", LastName: "Смирнова", Post: "Директор"},
		},
		executor: &domain.Executor{Name: "ООО Исполнитель", FullName: "ООО «Исполнитель»"},
		contractor: &domain.Contractor{
			Name:           "ООО Заказчик",
			FullName:       "ООО «Заказчик»",
			ContractNumber: 77,
			ContractDate:   time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC),
		},
	}

	docs := &mockDocumentRepo{}
	schema := &mockValidator{}

	svc := NewService(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		templates, persons, docs, schema, mockTxManager{}, storage,
	)
	svc.now = func() time.Time {
		return time.Date(2025, time.June, 17, 12, 0, 0, 0, time.UTC)
	}

	return &fixture{svc: svc, docs: docs, tmpl: tmpl, templates: templates, schema: schema, storage: storage}
}

func columns(tmplID uuid.UUID) []domain.TableColumn {
	return []domain.TableColumn{
		{
			FieldDefinition: domain.FieldDefinition{ID: "col-price", KeyName: "price", EntityKind: domain.EntityKindTableField},
			TemplateID:      tmplID,
			DrawOrder:       2,
			IsSummable:      true,
		},
		{
			FieldDefinition: domain.FieldDefinition{ID: "col-name", KeyName: "service", EntityKind: domain.EntityKindTableField},
			TemplateID:      tmplID,
			DrawOrder:       1,
		},
	}
}
