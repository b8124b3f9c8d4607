package board

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-waconsole/components/records"
)

// valueKind is the coercion category of a status field.
type valueKind int

const (
	kindText valueKind = iota
	kindBoolean
	kindNumber
)

// inferKind resolves the coercion category from declared field metadata,
// falling back to the runtime type of the current value when the field has
// no declared type.
func inferKind(field records.Field, current any) valueKind {
	switch field.Type {
	case records.FieldCheckbox:
		return kindBoolean
	case records.FieldNumber:
		return kindNumber
	case "":
		switch current.(type) {
		case bool:
			return kindBoolean
		case int, int32, int64, float32, float64:
			return kindNumber
		}
	}
	return kindText
}

// StatusValue coerces a destination column id into the value persisted on
// the status field. Total: unknown types fall through to string pass-through,
// and the same inputs always yield the same output.
func StatusValue(field records.Field, targetColumnID string, current any) any {
	kind := inferKind(field, current)
	if targetColumnID == UncategorizedColumnID {
		if kind == kindBoolean {
			return false
		}
		return ""
	}
	switch kind {
	case kindBoolean:
		return parseBoolColumn(targetColumnID)
	case kindNumber:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(targetColumnID), 64)
		if err != nil {
			return float64(0)
		}
		return parsed
	default:
		return targetColumnID
	}
}

func parseBoolColumn(columnID string) bool {
	switch strings.ToLower(strings.TrimSpace(columnID)) {
	case "true", "1", "yes":
		return true
	}
	return false
}
