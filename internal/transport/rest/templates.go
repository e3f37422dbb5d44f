package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/asmelnikov/docgen-backend/internal/docx"
	"github.com/asmelnikov/docgen-backend/internal/domain"
	"github.com/asmelnikov/docgen-backend/internal/transport/middleware"
)

// templateStore defines the minimal repository interface needed by TemplatesHandler.
type templateStore interface {
	Create(ctx context.Context, t *domain.Template) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Template, error)
	List(ctx context.Context) ([]domain.Template, error)
	CreateDocumentField(ctx context.Context, f *domain.DocumentField) error
	ListDocumentFields(ctx context.Context, templateID uuid.UUID) ([]domain.DocumentField, error)
	CreateTableColumn(ctx context.Context, c *domain.TableColumn) error
	ListTableColumns(ctx context.Context, templateID uuid.UUID) ([]domain.TableColumn, error)
}

// fieldExtractor scans a stored template for placeholders that still need
// field definitions.
type fieldExtractor interface {
	ExtractFields(ctx context.Context, templateID uuid.UUID) ([]string, error)
}

// TemplatesHandler serves template REST endpoints.
type TemplatesHandler struct {
	templates      templateStore
	extractor      fieldExtractor
	templatesDir   string
	maxUploadBytes int64
	log            *slog.Logger
}

// NewTemplatesHandler creates a TemplatesHandler.
func NewTemplatesHandler(
	templates templateStore,
	extractor fieldExtractor,
	templatesDir string,
	maxUploadBytes int64,
	logger *slog.Logger,
) *TemplatesHandler {
	return &TemplatesHandler{
		templates:      templates,
		extractor:      extractor,
		templatesDir:   templatesDir,
		maxUploadBytes: maxUploadBytes,
		log:            logger.With("handler", "templates"),
	}
}

type templateResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Type               string    `json:"type"`
	FileName           string    `json:"fileName"`
	ContractorPersonID string    `json:"contractorPersonId"`
	ExecutorPersonID   string    `json:"executorPersonId"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Create handles POST /templates: a multipart form with the .docx file plus
// name, type, contractorPersonId and executorPersonId fields.
func (h *TemplatesHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := middleware.RequireSuperuser(r.Context()); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "upload too large or malformed")
		return
	}

	tmpl, err := templateFromForm(r)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing template file")
		return
	}
	defer file.Close()

	base := filepath.Base(header.Filename)
	if !strings.EqualFold(filepath.Ext(base), ".docx") {
		writeError(w, http.StatusBadRequest, "template must be a .docx file")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	if _, err := docx.OpenBytes(data); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	dst := filepath.Join(h.templatesDir, base)
	if _, err := os.Stat(dst); err == nil {
		writeError(w, http.StatusConflict, fmt.Sprintf("template file %q already exists", base))
		return
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		respondError(h.log, w, r, fmt.Errorf("store template file: %w", err))
		return
	}

	tmpl.FilePath = base
	if err := h.templates.Create(r.Context(), tmpl); err != nil {
		os.Remove(dst) //nolint:errcheck
		respondError(h.log, w, r, err)
		return
	}

	h.log.InfoContext(r.Context(), "template uploaded",
		slog.String("template_id", tmpl.ID.String()),
		slog.String("file", base),
	)
	writeJSON(w, http.StatusCreated, toTemplateResponse(tmpl))
}

// List handles GET /templates.
func (h *TemplatesHandler) List(w http.ResponseWriter, r *http.Request) {
	templates, err := h.templates.List(r.Context())
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	out := make([]templateResponse, len(templates))
	for i := range templates {
		out[i] = toTemplateResponse(&templates[i])
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /templates/{id}.
func (h *TemplatesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid template id")
		return
	}

	tmpl, err := h.templates.GetByID(r.Context(), id)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTemplateResponse(tmpl))
}

// ExtractFields handles GET /templates/{id}/placeholders: the placeholder
// names found in the file that are not auto-derived, so the template author
// knows which custom fields to define.
func (h *TemplatesHandler) ExtractFields(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid template id")
		return
	}

	names, err := h.extractor.ExtractFields(r.Context(), id)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"fields": names})
}

type createDocumentFieldRequest struct {
	createFieldRequest
}

// CreateDocumentField handles POST /templates/{id}/fields.
func (h *TemplatesHandler) CreateDocumentField(w http.ResponseWriter, r *http.Request) {
	if err := middleware.RequireSuperuser(r.Context()); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid template id")
		return
	}

	var req createDocumentFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.EntityKind = domain.EntityKindDocumentField.String()

	def, err := fieldFromRequest(req.createFieldRequest)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	def.IsCustom = true
	def.ID = uuid.New().String()

	field := &domain.DocumentField{FieldDefinition: *def, TemplateID: id}
	if err := h.templates.CreateDocumentField(r.Context(), field); err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toFieldResponse(&field.FieldDefinition))
}

// ListDocumentFields handles GET /templates/{id}/fields.
func (h *TemplatesHandler) ListDocumentFields(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid template id")
		return
	}

	fields, err := h.templates.ListDocumentFields(r.Context(), id)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	out := make([]fieldResponse, len(fields))
	for i := range fields {
		out[i] = toFieldResponse(&fields[i].FieldDefinition)
	}
	writeJSON(w, http.StatusOK, out)
}

type tableColumnResponse struct {
	fieldResponse
	DrawOrder  int  `json:"drawOrder"`
	IsSummable bool `json:"isSummable"`
}

type createTableColumnRequest struct {
	createFieldRequest
	DrawOrder  int  `json:"drawOrder"`
	IsSummable bool `json:"isSummable"`
}

// CreateTableColumn handles POST /templates/{id}/columns.
func (h *TemplatesHandler) CreateTableColumn(w http.ResponseWriter, r *http.Request) {
	if err := middleware.RequireSuperuser(r.Context()); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid template id")
		return
	}

	var req createTableColumnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.EntityKind = domain.EntityKindTableField.String()

	def, err := fieldFromRequest(req.createFieldRequest)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	def.IsCustom = true
	def.ID = uuid.New().String()

	col := &domain.TableColumn{
		FieldDefinition: *def,
		TemplateID:      id,
		DrawOrder:       req.DrawOrder,
		IsSummable:      req.IsSummable,
	}
	if err := h.templates.CreateTableColumn(r.Context(), col); err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTableColumnResponse(col))
}

// ListTableColumns handles GET /templates/{id}/columns.
func (h *TemplatesHandler) ListTableColumns(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid template id")
		return
	}

	cols, err := h.templates.ListTableColumns(r.Context(), id)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	out := make([]tableColumnResponse, len(cols))
	for i := range cols {
		out[i] = toTableColumnResponse(&cols[i])
	}
	writeJSON(w, http.StatusOK, out)
}

func templateFromForm(r *http.Request) (*domain.Template, error) {
	var fieldErrs []domain.FieldError

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		fieldErrs = append(fieldErrs, domain.FieldError{Field: "name", Message: "must not be empty"})
	}
	docType := domain.DocumentType(r.FormValue("type"))
	if !docType.IsValid() {
		fieldErrs = append(fieldErrs, domain.FieldError{Field: "type", Message: "unknown document type"})
	}
	contractorPersonID, err := uuid.Parse(r.FormValue("contractorPersonId"))
	if err != nil {
		fieldErrs = append(fieldErrs, domain.FieldError{Field: "contractorPersonId", Message: "invalid uuid"})
	}
	executorPersonID, err := uuid.Parse(r.FormValue("executorPersonId"))
	if err != nil {
		fieldErrs = append(fieldErrs, domain.FieldError{Field: "executorPersonId", Message: "invalid uuid"})
	}
	if len(fieldErrs) > 0 {
		return nil, domain.NewValidationErrors(fieldErrs)
	}

	now := time.Now().UTC()
	return &domain.Template{
		ID:                 uuid.New(),
		Name:               name,
		Type:               docType,
		ContractorPersonID: contractorPersonID,
		ExecutorPersonID:   executorPersonID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

func toTemplateResponse(t *domain.Template) templateResponse {
	return templateResponse{
		ID:                 t.ID.String(),
		Name:               t.Name,
		Type:               t.Type.String(),
		FileName:           filepath.Base(t.FilePath),
		ContractorPersonID: t.ContractorPersonID.String(),
		ExecutorPersonID:   t.ExecutorPersonID.String(),
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}

func toTableColumnResponse(c *domain.TableColumn) tableColumnResponse {
	return tableColumnResponse{
		fieldResponse: toFieldResponse(&c.FieldDefinition),
		DrawOrder:     c.DrawOrder,
		IsSummable:    c.IsSummable,
	}
}

// pathUUID parses the named path segment as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	v := r.PathValue(name)
	if v == "" {
		return uuid.Nil, errors.New("missing path value")
	}
	return uuid.Parse(v)
}
