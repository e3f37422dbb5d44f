package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/asmelnikov/docgen-backend/internal/domain"
)

type errorResponse struct {
	Error   string               `json:"error"`
	FieldID string               `json:"fieldId,omitempty"`
	Details []fieldErrorResponse `json:"details,omitempty"`
}

type fieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// respondError maps a service error to an HTTP response. Submission and
// validation errors carry their field details to the client; anything
// unrecognized is logged and reported as a 500.
func respondError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var subErr *domain.SubmissionError
	if errors.As(err, &subErr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   subErr.Error(),
			FieldID: subErr.FieldID,
		})
		return
	}

	var valErr *domain.ValidationError
	if errors.As(err, &valErr) {
		details := make([]fieldErrorResponse, len(valErr.Errors))
		for i, fe := range valErr.Errors {
			details[i] = fieldErrorResponse{Field: fe.Field, Message: fe.Message}
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "validation failed",
			Details: details,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrBadDocument),
		errors.Is(err, domain.ErrNoMarkerRow),
		errors.Is(err, domain.ErrMissingOrderDate),
		errors.Is(err, domain.ErrDuplicateSummable):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already exists")
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
