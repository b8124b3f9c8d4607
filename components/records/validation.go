package records

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ViewConfigValidator validates view configuration payloads before a view is
// registered or saved from the console UI.
type ViewConfigValidator interface {
	Validate(view ViewDefinition) error
}

// Per-kind configuration schemas. Kanban views must name the status field
// they pivot on; the rest of the settings are optional.
var viewConfigSchemas = map[ViewKind]map[string]any{
	ViewTable: {
		"type": "object",
		"properties": map[string]any{
			"fields":   map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"sort_by":  map[string]any{"type": "string"},
			"desc":     map[string]any{"type": "boolean"},
			"per_page": map[string]any{"type": "integer", "minimum": 1, "maximum": 200},
		},
	},
	ViewCalendar: {
		"type": "object",
		"properties": map[string]any{
			"date_field": map[string]any{"type": "string"},
		},
	},
	ViewKanban: {
		"type":     "object",
		"required": []string{"status_field"},
		"properties": map[string]any{
			"status_field": map[string]any{"type": "string", "minLength": 1},
		},
	},
}

// JSONSchemaValidator compiles per-kind schemas once and validates view
// configuration maps against them.
type JSONSchemaValidator struct {
	mu       sync.RWMutex
	compiled map[ViewKind]*jsonschema.Schema
}

// NewJSONSchemaValidator builds a validator backed by jsonschema v5.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{
		compiled: make(map[ViewKind]*jsonschema.Schema),
	}
}

// Validate ensures the view configuration satisfies the schema for its kind.
func (v *JSONSchemaValidator) Validate(view ViewDefinition) error {
	schema, err := v.schemaFor(view.Kind)
	if err != nil {
		return err
	}
	if schema == nil {
		return nil
	}
	payload := view.Config
	if payload == nil {
		payload = map[string]any{}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("records: marshal config for %s: %w", view.Code, err)
	}
	var normalized any
	if err := json.Unmarshal(data, &normalized); err != nil {
		return fmt.Errorf("records: normalize config for %s: %w", view.Code, err)
	}
	if err := schema.Validate(normalized); err != nil {
		return fmt.Errorf("records: configuration for view %s failed validation: %w", view.Code, err)
	}
	return nil
}

func (v *JSONSchemaValidator) schemaFor(kind ViewKind) (*jsonschema.Schema, error) {
	v.mu.RLock()
	schema, ok := v.compiled[kind]
	v.mu.RUnlock()
	if ok {
		return schema, nil
	}
	raw, ok := viewConfigSchemas[kind]
	if !ok {
		return nil, nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("records: marshal schema for kind %s: %w", kind, err)
	}
	compiler := jsonschema.NewCompiler()
	name := string(kind) + ".json"
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("records: load schema for kind %s: %w", kind, err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("records: compile schema for kind %s: %w", kind, err)
	}
	v.mu.Lock()
	v.compiled[kind] = compiled
	v.mu.Unlock()
	return compiled, nil
}

type noopViewConfigValidator struct{}

func (noopViewConfigValidator) Validate(ViewDefinition) error { return nil }
