package records

import (
	"github.com/ettle/strcase"
)

// FieldType mirrors the column types exposed by the connected low-code
// database. Unknown types behave as text.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldNumber   FieldType = "number"
	FieldCheckbox FieldType = "checkbox"
	FieldDate     FieldType = "date"
	FieldSelect   FieldType = "select"
)

// Field describes one column of a connected collection.
type Field struct {
	Key     string    `json:"key" yaml:"key"`
	Label   string    `json:"label,omitempty" yaml:"label,omitempty"`
	Type    FieldType `json:"type,omitempty" yaml:"type,omitempty"`
	Options []string  `json:"options,omitempty" yaml:"options,omitempty"`
}

// Title returns the human label, deriving one from the key when absent
// (e.g. "created_at" becomes "Created At").
func (f Field) Title() string {
	if f.Label != "" {
		return f.Label
	}
	return strcase.ToCase(f.Key, strcase.TitleCase, ' ')
}

// Record is an opaque row from the connected database. Field values keep
// whatever runtime type the upstream API returned.
type Record struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

// Value returns the raw field value, nil when absent.
func (r Record) Value(key string) any {
	if r.Fields == nil {
		return nil
	}
	return r.Fields[key]
}

// Collection is the schema of one connected table.
type Collection struct {
	Code        string  `json:"code" yaml:"code"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []Field `json:"fields" yaml:"fields"`
}

// Field looks up field metadata by key.
func (c Collection) Field(key string) (Field, bool) {
	for _, f := range c.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}
