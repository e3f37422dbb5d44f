package domain

import (
	"regexp"
)

// EntityKind tags the record type a field definition (or a submission) belongs to.
// DocumentField and TableField are themselves field-defining kinds: a template
// owns DocumentField/TableField definitions which are FieldDefinitions in turn.
type EntityKind string

const (
	EntityKindUser             EntityKind = "User"
	EntityKindExecutor         EntityKind = "Executor"
	EntityKindContractor       EntityKind = "Contractor"
	EntityKindExecutorPerson   EntityKind = "ExecutorPerson"
	EntityKindContractorPerson EntityKind = "ContractorPerson"
	EntityKindTemplate         EntityKind = "Template"
	EntityKindField            EntityKind = "Field"
	EntityKindDocumentField    EntityKind = "DocumentField"
	EntityKindTableField       EntityKind = "TableField"
)

func (k EntityKind) String() string { return string(k) }

func (k EntityKind) IsValid() bool {
	switch k {
	case EntityKindUser, EntityKindExecutor, EntityKindContractor,
		EntityKindExecutorPerson, EntityKindContractorPerson,
		EntityKindTemplate, EntityKindField, EntityKindDocumentField,
		EntityKindTableField:
		return true
	}
	return false
}

// FieldType is the input type a field expects.
type FieldType string

const (
	FieldTypeText     FieldType = "TEXT"
	FieldTypeNumber   FieldType = "NUMBER"
	FieldTypeDate     FieldType = "DATE"
	FieldTypeCurrency FieldType = "CURRENCY"
	FieldTypeBool     FieldType = "BOOL"
	FieldTypeUser     FieldType = "USER"
	FieldTypeCombobox FieldType = "COMBOBOX"
	FieldTypeFile     FieldType = "FILE"
)

func (t FieldType) String() string { return string(t) }

func (t FieldType) IsValid() bool {
	switch t {
	case FieldTypeText, FieldTypeNumber, FieldTypeDate, FieldTypeCurrency,
		FieldTypeBool, FieldTypeUser, FieldTypeCombobox, FieldTypeFile:
		return true
	}
	return false
}

// ComboboxInfo tells the client where to fetch valid options for a COMBOBOX field.
type ComboboxInfo struct {
	URL       string `json:"url"`
	ShowField string `json:"show_field"`
	SaveField string `json:"save_field"`
}

// FieldDefinition describes one attribute of one entity kind.
// (KeyName, EntityKind) is the composite natural key.
type FieldDefinition struct {
	ID              string
	Name            string
	KeyName         string
	EntityKind      EntityKind
	Type            FieldType
	ValidationRegex *string
	IsRequired      bool
	IsCustom        bool
	SecureText      bool
	Placeholder     *string
	ErrorText       *string
	RelatedInfo     *ComboboxInfo
}

// MatchValue reports whether value satisfies the definition's validation regex.
// A definition without a regex accepts any value.
//
// Matching is anchored at the beginning only: a value whose prefix satisfies
// the pattern passes even if the rest does not, unless the pattern itself ends
// with "$". Stored patterns rely on this, do not anchor the tail.
func (f *FieldDefinition) MatchValue(value string) (bool, error) {
	if f.ValidationRegex == nil || *f.ValidationRegex == "" {
		return true, nil
	}
	re, err := regexp.Compile("^(?:" + *f.ValidationRegex + ")")
	if err != nil {
		return false, err
	}
	return re.MatchString(value), nil
}

// NaturalKey returns the "key_name__EntityKind" identifier used for built-in
// field IDs.
func (f *FieldDefinition) NaturalKey() string {
	return f.KeyName + "__" + string(f.EntityKind)
}
