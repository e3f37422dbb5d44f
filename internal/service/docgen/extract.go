package docgen

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/asmelnikov/docgen-backend/internal/docx"
)

// derivedFields are the placeholder names the assembler fills on its own.
// They never become user-editable template fields.
var derivedFields = map[string]struct{}{
	"contract_number":         {},
	"contract_date":           {},
	"order_date":              {},
	"order_number":            {},
	"total_cost":              {},
	"total_cost_words":        {},
	"contractor_person":       {},
	"contractor_company":      {},
	"contractor_post":         {},
	"contractor_company_full": {},
	"executor_person":         {},
	"executor_post":           {},
	"executor_company_full":   {},
	"executor_company":        {},
}

// ExtractFields returns the template's placeholder names that need a field
// definition from the template author, i.e. everything the scanner finds
// minus the auto-derived names. Sorted.
func (s *Service) ExtractFields(ctx context.Context, templateID uuid.UUID) ([]string, error) {
	tmpl, err := s.templates.GetByID(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("get template: %w", err)
	}

	pkg, err := docx.Open(filepath.Join(s.storage.TemplatesDir, filepath.Base(tmpl.FilePath)))
	if err != nil {
		return nil, err
	}

	names := pkg.FieldNames()
	out := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := derivedFields[name]; ok {
			continue
		}
		out = append(out, name)
	}
	return out, nil
}
