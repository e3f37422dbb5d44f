package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/asmelnikov/docgen-backend/internal/domain"
	"github.com/asmelnikov/docgen-backend/internal/service/docgen"
)

// docgenService runs the document assembly pipeline.
type docgenService interface {
	Generate(ctx context.Context, input docgen.GenerateInput) (*docgen.GenerateResult, error)
}

// documentStore reads persisted generation records.
type documentStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	ListByTemplate(ctx context.Context, templateID uuid.UUID) ([]domain.Document, error)
}

// DocumentsHandler serves document REST endpoints.
type DocumentsHandler struct {
	docgen    docgenService
	documents documentStore
	log       *slog.Logger
}

// NewDocumentsHandler creates a DocumentsHandler.
func NewDocumentsHandler(docgen docgenService, documents documentStore, logger *slog.Logger) *DocumentsHandler {
	return &DocumentsHandler{
		docgen:    docgen,
		documents: documents,
		log:       logger.With("handler", "documents"),
	}
}

type generateRequest struct {
	Fields domain.Submission `json:"fields"`
}

type generateResponse struct {
	documentResponse
	Total    *float64 `json:"total,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

type documentResponse struct {
	ID         string    `json:"id"`
	TemplateID string    `json:"templateId"`
	Number     int       `json:"number"`
	ShownDate  string    `json:"shownDate"`
	FileName   string    `json:"fileName"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Generate handles POST /templates/{id}/documents. The body carries the
// submitted field values, including at most one list-valued item with the
// table rows.
func (h *DocumentsHandler) Generate(w http.ResponseWriter, r *http.Request) {
	templateID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid template id")
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.docgen.Generate(r.Context(), docgen.GenerateInput{
		TemplateID: templateID,
		Submission: req.Fields,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, generateResponse{
		documentResponse: documentResponse{
			ID:         result.DocumentID.String(),
			TemplateID: templateID.String(),
			Number:     result.Number,
			ShownDate:  result.ShownDate.Format("2006-01-02"),
			FileName:   filepath.Base(result.SavePath),
			CreatedAt:  time.Now().UTC(),
		},
		Total:    result.Total,
		Warnings: result.Warnings,
	})
}

// List handles GET /templates/{id}/documents, newest first.
func (h *DocumentsHandler) List(w http.ResponseWriter, r *http.Request) {
	templateID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid template id")
		return
	}

	docs, err := h.documents.ListByTemplate(r.Context(), templateID)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	out := make([]documentResponse, len(docs))
	for i := range docs {
		out[i] = toDocumentResponse(&docs[i])
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /documents/{id}.
func (h *DocumentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid document id")
		return
	}

	doc, err := h.documents.GetByID(r.Context(), id)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDocumentResponse(doc))
}

// Download handles GET /documents/{id}/file: streams the generated .docx.
func (h *DocumentsHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid document id")
		return
	}

	doc, err := h.documents.GetByID(r.Context(), id)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	if _, err := os.Stat(doc.SavePath); err != nil {
		h.log.ErrorContext(r.Context(), "document file missing",
			slog.String("document_id", doc.ID.String()),
			slog.String("path", doc.SavePath),
		)
		writeError(w, http.StatusNotFound, "document file not found")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filepath.Base(doc.SavePath)+`"`)
	http.ServeFile(w, r, doc.SavePath)
}

func toDocumentResponse(d *domain.Document) documentResponse {
	return documentResponse{
		ID:         d.ID.String(),
		TemplateID: d.TemplateID.String(),
		Number:     d.Number,
		ShownDate:  d.ShownDate.Format("2006-01-02"),
		FileName:   filepath.Base(d.SavePath),
		CreatedAt:  d.CreatedAt,
	}
}
