package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/asmelnikov/docgen-backend/internal/domain"
	"github.com/asmelnikov/docgen-backend/internal/service/docgen"
)

type docgenServiceMock struct {
	GenerateFunc func(ctx context.Context, input docgen.GenerateInput) (*docgen.GenerateResult, error)
}

func (m *docgenServiceMock) Generate(ctx context.Context, input docgen.GenerateInput) (*docgen.GenerateResult, error) {
	return m.GenerateFunc(ctx, input)
}

type documentStoreMock struct {
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	ListByTemplateFunc func(ctx context.Context, templateID uuid.UUID) ([]domain.Document, error)
}

func (m *documentStoreMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *documentStoreMock) ListByTemplate(ctx context.Context, templateID uuid.UUID) ([]domain.Document, error) {
	return m.ListByTemplateFunc(ctx, templateID)
}

func TestGenerate_Success(t *testing.T) {
	t.Parallel()

	templateID := uuid.New()
	documentID := uuid.New()
	total := 1500.50
	svc := &docgenServiceMock{
		GenerateFunc: func(_ context.Context, input docgen.GenerateInput) (*docgen.GenerateResult, error) {
			if input.TemplateID != templateID {
				t.Errorf("expected template ID %v, got %v", templateID, input.TemplateID)
			}
			if got, _ := input.Submission.Get("executor_name"); got != "ООО Ромашка" {
				t.Errorf("expected submitted executor_name, got %q", got)
			}
			return &docgen.GenerateResult{
				DocumentID: documentID,
				Number:     7,
				SavePath:   "/data/documents/act_01-25.docx",
				ShownDate:  time.Date(2025, time.January, 9, 0, 0, 0, 0, time.UTC),
				Total:      &total,
				Warnings:   []string{"unused field: extra_note"},
			}, nil
		},
	}
	h := NewDocumentsHandler(svc, &documentStoreMock{}, testLogger())

	body := `{"fields":[{"field_id":"executor_name","value":"ООО Ромашка"}]}`
	req := httptest.NewRequest(http.MethodPost, "/templates/"+templateID.String()+"/documents", strings.NewReader(body))
	req.SetPathValue("id", templateID.String())
	rec := httptest.NewRecorder()

	h.Generate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp generateResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != documentID.String() {
		t.Errorf("expected document ID %s, got %s", documentID, resp.ID)
	}
	if resp.Number != 7 {
		t.Errorf("expected number 7, got %d", resp.Number)
	}
	if resp.FileName != "act_01-25.docx" {
		t.Errorf("expected file name 'act_01-25.docx', got %q", resp.FileName)
	}
	if resp.ShownDate != "2025-01-09" {
		t.Errorf("expected shown date '2025-01-09', got %q", resp.ShownDate)
	}
	if resp.Total == nil || *resp.Total != total {
		t.Errorf("expected total %v, got %v", total, resp.Total)
	}
	if len(resp.Warnings) != 1 {
		t.Errorf("expected 1 warning, got %d", len(resp.Warnings))
	}
}

func TestGenerate_UnknownField(t *testing.T) {
	t.Parallel()

	svc := &docgenServiceMock{
		GenerateFunc: func(_ context.Context, _ docgen.GenerateInput) (*docgen.GenerateResult, error) {
			return nil, domain.NewSubmissionError("mystery", domain.ErrUnknownField, "")
		},
	}
	h := NewDocumentsHandler(svc, &documentStoreMock{}, testLogger())

	templateID := uuid.New()
	body := `{"fields":[{"field_id":"mystery","value":"x"}]}`
	req := httptest.NewRequest(http.MethodPost, "/templates/"+templateID.String()+"/documents", strings.NewReader(body))
	req.SetPathValue("id", templateID.String())
	rec := httptest.NewRecorder()

	h.Generate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var resp errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.FieldID != "mystery" {
		t.Errorf("expected fieldId 'mystery', got %q", resp.FieldID)
	}
}

func TestGenerate_TableRowsDecoded(t *testing.T) {
	t.Parallel()

	svc := &docgenServiceMock{
		GenerateFunc: func(_ context.Context, input docgen.GenerateInput) (*docgen.GenerateResult, error) {
			rows := input.Submission.TableRows()
			if len(rows) != 2 {
				t.Fatalf("expected 2 table rows, got %d", len(rows))
			}
			if got, _ := rows[1].Get("cost"); got != "200" {
				t.Errorf("expected second row cost '200', got %q", got)
			}
			return &docgen.GenerateResult{DocumentID: uuid.New(), SavePath: "x.docx"}, nil
		},
	}
	h := NewDocumentsHandler(svc, &documentStoreMock{}, testLogger())

	templateID := uuid.New()
	body := `{"fields":[{"field_id":"works","value":[` +
		`[{"field_id":"cost","value":"100"}],` +
		`[{"field_id":"cost","value":200}]` +
		`]}]}`
	req := httptest.NewRequest(http.MethodPost, "/templates/"+templateID.String()+"/documents", strings.NewReader(body))
	req.SetPathValue("id", templateID.String())
	rec := httptest.NewRecorder()

	h.Generate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGenerate_InvalidTemplateID(t *testing.T) {
	t.Parallel()

	h := NewDocumentsHandler(&docgenServiceMock{}, &documentStoreMock{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/templates/abc/documents", strings.NewReader("{}"))
	req.SetPathValue("id", "abc")
	rec := httptest.NewRecorder()

	h.Generate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestDocumentsList_Success(t *testing.T) {
	t.Parallel()

	templateID := uuid.New()
	store := &documentStoreMock{
		ListByTemplateFunc: func(_ context.Context, id uuid.UUID) ([]domain.Document, error) {
			if id != templateID {
				t.Errorf("expected template ID %v, got %v", templateID, id)
			}
			return []domain.Document{
				{ID: uuid.New(), TemplateID: templateID, Number: 2, SavePath: "/docs/act_02-25.docx"},
				{ID: uuid.New(), TemplateID: templateID, Number: 1, SavePath: "/docs/act_01-25.docx"},
			}, nil
		},
	}
	h := NewDocumentsHandler(&docgenServiceMock{}, store, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/templates/"+templateID.String()+"/documents", nil)
	req.SetPathValue("id", templateID.String())
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp []documentResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(resp))
	}
	if resp[0].Number != 2 {
		t.Errorf("expected newest document first, got number %d", resp[0].Number)
	}
}

func TestDocumentGet_NotFound(t *testing.T) {
	t.Parallel()

	store := &documentStoreMock{
		GetByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Document, error) {
			return nil, domain.ErrNotFound
		},
	}
	h := NewDocumentsHandler(&docgenServiceMock{}, store, testLogger())

	id := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/documents/"+id.String(), nil)
	req.SetPathValue("id", id.String())
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestDownload_ServesFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "act_01-25.docx")
	if err := os.WriteFile(path, []byte("docx-bytes"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	docID := uuid.New()
	store := &documentStoreMock{
		GetByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.Document, error) {
			return &domain.Document{ID: id, SavePath: path}, nil
		},
	}
	h := NewDocumentsHandler(&docgenServiceMock{}, store, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/documents/"+docID.String()+"/file", nil)
	req.SetPathValue("id", docID.String())
	rec := httptest.NewRecorder()

	h.Download(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "act_01-25.docx") {
		t.Errorf("expected attachment file name in Content-Disposition, got %q", got)
	}
	if rec.Body.String() != "docx-bytes" {
		t.Errorf("unexpected file body %q", rec.Body.String())
	}
}

func TestDownload_FileMissing(t *testing.T) {
	t.Parallel()

	docID := uuid.New()
	store := &documentStoreMock{
		GetByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.Document, error) {
			return &domain.Document{ID: id, SavePath: filepath.Join(t.TempDir(), "gone.docx")}, nil
		},
	}
	h := NewDocumentsHandler(&docgenServiceMock{}, store, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/documents/"+docID.String()+"/file", nil)
	req.SetPathValue("id", docID.String())
	rec := httptest.NewRecorder()

	h.Download(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}
