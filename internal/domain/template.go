package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// DocumentType classifies what a template produces.
type DocumentType string

const (
	DocumentTypeAct    DocumentType = "ACT"
	DocumentTypeOrder  DocumentType = "ORDER"
	DocumentTypeReport DocumentType = "REPORT"
)

func (t DocumentType) String() string { return string(t) }

func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentTypeAct, DocumentTypeOrder, DocumentTypeReport:
		return true
	}
	return false
}

// Template is a stored .docx file plus metadata. It owns a set of
// DocumentField and TableColumn definitions and outlives any single Document.
type Template struct {
	ID                 uuid.UUID
	Name               string
	Type               DocumentType
	FilePath           string
	ContractorPersonID uuid.UUID
	ExecutorPersonID   uuid.UUID
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableColumn is a FieldDefinition specialized for table cells: DrawOrder is
// the column position (unique per template) and IsSummable marks the single
// column whose values are summed into total_cost.
type TableColumn struct {
	FieldDefinition
	TemplateID uuid.UUID
	DrawOrder  int
	IsSummable bool
}

// DocumentField is a per-template custom field bound to a placeholder.
type DocumentField struct {
	FieldDefinition
	TemplateID uuid.UUID
}

// SortColumns orders columns by their declared draw position, in place.
func SortColumns(cols []TableColumn) {
	sort.Slice(cols, func(i, j int) bool { return cols[i].DrawOrder < cols[j].DrawOrder })
}

// SummableIndex returns the index of the summable column within the
// DrawOrder-sorted slice, or -1 if none. More than one summable column
// violates the schema invariant and returns ErrDuplicateSummable.
func SummableIndex(cols []TableColumn) (int, error) {
	idx := -1
	for i, c := range cols {
		if !c.IsSummable {
			continue
		}
		if idx >= 0 {
			return -1, ErrDuplicateSummable
		}
		idx = i
	}
	return idx, nil
}
