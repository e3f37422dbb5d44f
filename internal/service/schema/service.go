package schema

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/asmelnikov/docgen-backend/internal/domain"
)

type fieldRepo interface {
	GetByNaturalKey(ctx context.Context, keyName string, kind domain.EntityKind) (*domain.FieldDefinition, error)
	ListBuiltinRequired(ctx context.Context, kind domain.EntityKind) ([]domain.FieldDefinition, error)
}

// Service validates submissions against the dynamic field schema.
type Service struct {
	log    *slog.Logger
	fields fieldRepo
}

// NewService creates a new Schema service.
func NewService(logger *slog.Logger, fields fieldRepo) *Service {
	return &Service{
		log:    logger.With("service", "schema"),
		fields: fields,
	}
}

// Validate checks every item of a submission against the field definitions of
// the given entity kind. It stops at the first failing item and returns a
// *domain.SubmissionError naming that field; a clean pass returns nil.
//
// A list-valued item is a table-column submission: each of its rows is
// validated recursively against the TableField kind, and the first nested
// error aborts the whole pass.
func (s *Service) Validate(ctx context.Context, sub domain.Submission, kind domain.EntityKind) error {
	for _, item := range sub {
		def, err := s.lookup(ctx, item.FieldID, kind)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewSubmissionError(item.FieldID, domain.ErrUnknownField, "")
		}
		if err != nil {
			return fmt.Errorf("look up field %q: %w", item.FieldID, err)
		}

		switch v := item.Value.(type) {
		case domain.Rows:
			for _, row := range v {
				if err := s.Validate(ctx, row, domain.EntityKindTableField); err != nil {
					return err
				}
			}
		case domain.Scalar:
			ok, err := def.MatchValue(string(v))
			if err != nil {
				return fmt.Errorf("field %q: bad validation regex: %w", item.FieldID, err)
			}
			if !ok {
				msg := ""
				if def.ErrorText != nil {
					msg = *def.ErrorText
				}
				return domain.NewSubmissionError(item.FieldID, domain.ErrFieldFormat, msg)
			}
		}
	}
	return nil
}

// lookup resolves a field_id to its definition. Definitions of the requested
// kind win; the template-scoped DocumentField and TableField kinds are
// fallbacks, in that order.
func (s *Service) lookup(ctx context.Context, keyName string, kind domain.EntityKind) (*domain.FieldDefinition, error) {
	for _, k := range lookupKinds(kind) {
		def, err := s.fields.GetByNaturalKey(ctx, keyName, k)
		if err == nil {
			return def, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}
	return nil, domain.ErrNotFound
}

func lookupKinds(kind domain.EntityKind) []domain.EntityKind {
	kinds := []domain.EntityKind{kind}
	if kind != domain.EntityKindDocumentField {
		kinds = append(kinds, domain.EntityKindDocumentField)
	}
	if kind != domain.EntityKindTableField {
		kinds = append(kinds, domain.EntityKindTableField)
	}
	return kinds
}

// MissingRequired returns the display names of the built-in required fields of
// the given kind that the submission does not include. Custom fields are never
// required here; their presence is up to the template author.
func (s *Service) MissingRequired(ctx context.Context, sub domain.Submission, kind domain.EntityKind) ([]string, error) {
	required, err := s.fields.ListBuiltinRequired(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("list required fields for %s: %w", kind, err)
	}

	var missing []string
	for _, f := range required {
		if !sub.Has(f.KeyName) {
			missing = append(missing, f.Name)
		}
	}
	return missing, nil
}
