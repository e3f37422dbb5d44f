package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NumberingScope keys sequential document numbering: documents are counted
// per (executor person, contractor person, document type).
type NumberingScope struct {
	ExecutorPersonID   uuid.UUID
	ContractorPersonID uuid.UUID
	Type               DocumentType
}

// Key returns the scope's stable string form, used as the counter row key and
// for advisory locking.
func (s NumberingScope) Key() string {
	return fmt.Sprintf("%s:%s:%s", s.ExecutorPersonID, s.ContractorPersonID, s.Type)
}

// Document is one generation event against a template.
type Document struct {
	ID         uuid.UUID
	TemplateID uuid.UUID
	Number     int
	ShownDate  time.Time
	SavePath   string
	CreatedAt  time.Time
}

// DocumentValue is one persisted (document, field) -> value record.
// The (DocumentID, FieldID) pair is unique.
type DocumentValue struct {
	DocumentID uuid.UUID
	FieldID    string
	Value      string
}

// TableValue is one persisted table cell. The (DocumentID, ColumnID,
// RowNumber) triple is unique.
type TableValue struct {
	DocumentID uuid.UUID
	ColumnID   string
	RowNumber  int
	Value      string
}
