package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/asmelnikov/docgen-backend/internal/domain"
	"github.com/asmelnikov/docgen-backend/internal/transport/middleware"
)

// fieldCatalog defines the minimal interface needed by FieldsHandler.
type fieldCatalog interface {
	ListByKind(ctx context.Context, kind domain.EntityKind) ([]domain.FieldDefinition, error)
	Create(ctx context.Context, def *domain.FieldDefinition) error
}

// FieldsHandler serves the field-definition catalog that drives dynamic forms.
type FieldsHandler struct {
	fields fieldCatalog
	log    *slog.Logger
}

// NewFieldsHandler creates a FieldsHandler.
func NewFieldsHandler(fields fieldCatalog, logger *slog.Logger) *FieldsHandler {
	return &FieldsHandler{fields: fields, log: logger.With("handler", "fields")}
}

type fieldResponse struct {
	ID              string               `json:"id"`
	Name            string               `json:"name"`
	KeyName         string               `json:"keyName"`
	EntityKind      string               `json:"entityKind"`
	Type            string               `json:"type"`
	ValidationRegex *string              `json:"validationRegex,omitempty"`
	IsRequired      bool                 `json:"isRequired"`
	IsCustom        bool                 `json:"isCustom"`
	SecureText      bool                 `json:"secureText"`
	Placeholder     *string              `json:"placeholder,omitempty"`
	ErrorText       *string              `json:"errorText,omitempty"`
	RelatedInfo     *domain.ComboboxInfo `json:"relatedInfo,omitempty"`
}

type createFieldRequest struct {
	Name            string               `json:"name"`
	KeyName         string               `json:"keyName"`
	EntityKind      string               `json:"entityKind"`
	Type            string               `json:"type"`
	ValidationRegex *string              `json:"validationRegex"`
	IsRequired      bool                 `json:"isRequired"`
	SecureText      bool                 `json:"secureText"`
	Placeholder     *string              `json:"placeholder"`
	ErrorText       *string              `json:"errorText"`
	RelatedInfo     *domain.ComboboxInfo `json:"relatedInfo"`
}

// List handles GET /fields?kind={EntityKind}.
func (h *FieldsHandler) List(w http.ResponseWriter, r *http.Request) {
	kind := domain.EntityKind(r.URL.Query().Get("kind"))
	if !kind.IsValid() {
		writeError(w, http.StatusBadRequest, "unknown entity kind")
		return
	}

	defs, err := h.fields.ListByKind(r.Context(), kind)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	out := make([]fieldResponse, len(defs))
	for i := range defs {
		out[i] = toFieldResponse(&defs[i])
	}
	writeJSON(w, http.StatusOK, out)
}

// Create handles POST /fields. Superuser only: custom definitions extend the
// schema for every template, not just one.
func (h *FieldsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := middleware.RequireSuperuser(r.Context()); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	var req createFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	def, err := fieldFromRequest(req)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	def.IsCustom = true
	def.ID = def.NaturalKey()

	if err := h.fields.Create(r.Context(), def); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toFieldResponse(def))
}

func fieldFromRequest(req createFieldRequest) (*domain.FieldDefinition, error) {
	var fieldErrs []domain.FieldError
	kind := domain.EntityKind(req.EntityKind)
	if !kind.IsValid() {
		fieldErrs = append(fieldErrs, domain.FieldError{Field: "entityKind", Message: "unknown entity kind"})
	}
	fieldType := domain.FieldType(req.Type)
	if !fieldType.IsValid() {
		fieldErrs = append(fieldErrs, domain.FieldError{Field: "type", Message: "unknown field type"})
	}
	if req.KeyName == "" {
		fieldErrs = append(fieldErrs, domain.FieldError{Field: "keyName", Message: "must not be empty"})
	}
	if req.Name == "" {
		fieldErrs = append(fieldErrs, domain.FieldError{Field: "name", Message: "must not be empty"})
	}
	if len(fieldErrs) > 0 {
		return nil, domain.NewValidationErrors(fieldErrs)
	}

	return &domain.FieldDefinition{
		Name:            req.Name,
		KeyName:         req.KeyName,
		EntityKind:      kind,
		Type:            fieldType,
		ValidationRegex: req.ValidationRegex,
		IsRequired:      req.IsRequired,
		SecureText:      req.SecureText,
		Placeholder:     req.Placeholder,
		ErrorText:       req.ErrorText,
		RelatedInfo:     req.RelatedInfo,
	}, nil
}

func toFieldResponse(def *domain.FieldDefinition) fieldResponse {
	return fieldResponse{
		ID:              def.ID,
		Name:            def.Name,
		KeyName:         def.KeyName,
		EntityKind:      def.EntityKind.String(),
		Type:            def.Type.String(),
		ValidationRegex: def.ValidationRegex,
		IsRequired:      def.IsRequired,
		IsCustom:        def.IsCustom,
		SecureText:      def.SecureText,
		Placeholder:     def.Placeholder,
		ErrorText:       def.ErrorText,
		RelatedInfo:     def.RelatedInfo,
	}
}
