package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/asmelnikov/docgen-backend/internal/domain"
	"github.com/asmelnikov/docgen-backend/pkg/ctxutil"
)

type fieldCatalogMock struct {
	ListByKindFunc func(ctx context.Context, kind domain.EntityKind) ([]domain.FieldDefinition, error)
	CreateFunc     func(ctx context.Context, def *domain.FieldDefinition) error
}

func (m *fieldCatalogMock) ListByKind(ctx context.Context, kind domain.EntityKind) ([]domain.FieldDefinition, error) {
	return m.ListByKindFunc(ctx, kind)
}

func (m *fieldCatalogMock) Create(ctx context.Context, def *domain.FieldDefinition) error {
	return m.CreateFunc(ctx, def)
}

func superuserCtx(ctx context.Context) context.Context {
	ctx = ctxutil.WithUserID(ctx, uuid.New())
	return ctxutil.WithSuperuser(ctx, true)
}

func TestFieldsList_Success(t *testing.T) {
	t.Parallel()

	regex := `[0-9]{10,12}`
	catalog := &fieldCatalogMock{
		ListByKindFunc: func(_ context.Context, kind domain.EntityKind) ([]domain.FieldDefinition, error) {
			if kind != domain.EntityKindExecutor {
				t.Errorf("expected kind Executor, got %s", kind)
			}
			return []domain.FieldDefinition{
				{
					ID:              "inn__Executor",
					Name:            "ИНН",
					KeyName:         "inn",
					EntityKind:      domain.EntityKindExecutor,
					Type:            domain.FieldTypeText,
					ValidationRegex: &regex,
					IsRequired:      true,
				},
			}, nil
		},
	}
	h := NewFieldsHandler(catalog, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/fields?kind=Executor", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp []fieldResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 1 {
		t.Fatalf("expected 1 field, got %d", len(resp))
	}
	if resp[0].KeyName != "inn" || !resp[0].IsRequired {
		t.Errorf("unexpected field: %+v", resp[0])
	}
}

func TestFieldsList_UnknownKind(t *testing.T) {
	t.Parallel()

	h := NewFieldsHandler(&fieldCatalogMock{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/fields?kind=Widget", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestFieldsCreate_Success(t *testing.T) {
	t.Parallel()

	var created *domain.FieldDefinition
	catalog := &fieldCatalogMock{
		CreateFunc: func(_ context.Context, def *domain.FieldDefinition) error {
			created = def
			return nil
		},
	}
	h := NewFieldsHandler(catalog, testLogger())

	body := `{"name":"КПП","keyName":"kpp","entityKind":"Executor","type":"TEXT","isRequired":false}`
	req := httptest.NewRequest(http.MethodPost, "/fields", strings.NewReader(body))
	req = req.WithContext(superuserCtx(req.Context()))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if created == nil {
		t.Fatal("expected Create to be called")
	}
	if !created.IsCustom {
		t.Error("expected created field to be custom")
	}
	if created.ID != "kpp__Executor" {
		t.Errorf("expected natural-key ID 'kpp__Executor', got %q", created.ID)
	}
}

func TestFieldsCreate_RequiresSuperuser(t *testing.T) {
	t.Parallel()

	catalog := &fieldCatalogMock{
		CreateFunc: func(_ context.Context, _ *domain.FieldDefinition) error {
			t.Error("Create should not be called without superuser")
			return nil
		},
	}
	h := NewFieldsHandler(catalog, testLogger())

	body := `{"name":"КПП","keyName":"kpp","entityKind":"Executor","type":"TEXT"}`
	req := httptest.NewRequest(http.MethodPost, "/fields", strings.NewReader(body))
	req = req.WithContext(ctxutil.WithUserID(req.Context(), uuid.New()))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
}

func TestFieldsCreate_InvalidInput(t *testing.T) {
	t.Parallel()

	h := NewFieldsHandler(&fieldCatalogMock{}, testLogger())

	body := `{"name":"","keyName":"","entityKind":"Widget","type":"BLOB"}`
	req := httptest.NewRequest(http.MethodPost, "/fields", strings.NewReader(body))
	req = req.WithContext(superuserCtx(req.Context()))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var resp errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Details) != 4 {
		t.Errorf("expected 4 field errors, got %d: %+v", len(resp.Details), resp.Details)
	}
}
