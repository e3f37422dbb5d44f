package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Submission is the ordered list of field values a caller supplies for one
// validation/creation pass.
type Submission []SubmissionItem

// SubmissionItem is a single submitted field value.
// Value is either a Scalar or Rows (nested per-row submissions for a table).
type SubmissionItem struct {
	FieldID string
	Value   Value
}

// Value is the sum type of submitted values: Scalar | Rows.
type Value interface {
	isValue()
}

// Scalar is a plain string value.
type Scalar string

func (Scalar) isValue() {}

func (s Scalar) String() string { return string(s) }

// Rows holds one nested submission per future table row. Each row's items are
// keyed by table-column key names and validated against the TableField kind.
type Rows []Submission

func (Rows) isValue() {}

// Get returns the scalar value for fieldID, or "" and false if the field is
// absent or list-valued.
func (s Submission) Get(fieldID string) (string, bool) {
	for _, item := range s {
		if item.FieldID == fieldID {
			if sc, ok := item.Value.(Scalar); ok {
				return string(sc), true
			}
			return "", false
		}
	}
	return "", false
}

// Has reports whether the submission contains fieldID, scalar or list-valued.
func (s Submission) Has(fieldID string) bool {
	for _, item := range s {
		if item.FieldID == fieldID {
			return true
		}
	}
	return false
}

// Scalars returns the scalar items as a map, skipping list-valued items.
func (s Submission) Scalars() map[string]string {
	out := make(map[string]string, len(s))
	for _, item := range s {
		if sc, ok := item.Value.(Scalar); ok {
			out[item.FieldID] = string(sc)
		}
	}
	return out
}

// TableRows returns the first list-valued item, or nil if the submission has none.
func (s Submission) TableRows() Rows {
	for _, item := range s {
		if rows, ok := item.Value.(Rows); ok {
			return rows
		}
	}
	return nil
}

// submissionItemJSON is the wire form: {"field_id": "...", "value": ...}.
type submissionItemJSON struct {
	FieldID string          `json:"field_id"`
	Value   json.RawMessage `json:"value"`
}

// UnmarshalJSON decodes the wire form. Scalars may arrive as JSON strings,
// numbers, booleans, or null; all are coerced to their string form. An array
// value decodes as Rows: a list of per-row item lists.
func (it *SubmissionItem) UnmarshalJSON(data []byte) error {
	var raw submissionItemJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	it.FieldID = raw.FieldID

	value, err := decodeValue(raw.Value)
	if err != nil {
		return fmt.Errorf("field %q: %w", raw.FieldID, err)
	}
	it.Value = value
	return nil
}

// MarshalJSON encodes back to the wire form.
func (it SubmissionItem) MarshalJSON() ([]byte, error) {
	switch v := it.Value.(type) {
	case Scalar:
		return json.Marshal(struct {
			FieldID string `json:"field_id"`
			Value   string `json:"value"`
		}{it.FieldID, string(v)})
	case Rows:
		return json.Marshal(struct {
			FieldID string `json:"field_id"`
			Value   Rows   `json:"value"`
		}{it.FieldID, v})
	default:
		return json.Marshal(struct {
			FieldID string `json:"field_id"`
			Value   any    `json:"value"`
		}{it.FieldID, nil})
	}
}

func decodeValue(raw json.RawMessage) (Value, error) {
	if len(raw) == 0 {
		return Scalar(""), nil
	}

	var probe any
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, err
	}

	switch v := probe.(type) {
	case nil:
		return Scalar(""), nil
	case string:
		return Scalar(v), nil
	case bool:
		return Scalar(strconv.FormatBool(v)), nil
	case float64:
		// Integers must not pick up a trailing ".0".
		if v == float64(int64(v)) {
			return Scalar(strconv.FormatInt(int64(v), 10)), nil
		}
		return Scalar(strconv.FormatFloat(v, 'f', -1, 64)), nil
	case []any:
		var rowsRaw [][]submissionItemJSON
		if err := json.Unmarshal(raw, &rowsRaw); err != nil {
			return nil, fmt.Errorf("list value must contain item rows: %w", err)
		}
		rows := make(Rows, len(rowsRaw))
		for i, rowRaw := range rowsRaw {
			row := make(Submission, len(rowRaw))
			for j, itemRaw := range rowRaw {
				val, err := decodeValue(itemRaw.Value)
				if err != nil {
					return nil, err
				}
				row[j] = SubmissionItem{FieldID: itemRaw.FieldID, Value: val}
			}
			rows[i] = row
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", probe)
	}
}
