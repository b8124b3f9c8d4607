package board

import (
	"fmt"
	"strconv"

	"github.com/goliatone/go-waconsole/components/records"
)

// UncategorizedColumnID collects records whose status value is missing or
// empty. Boolean false is a real value and never lands here.
const UncategorizedColumnID = "__uncategorized__"

// Column titles use the product's Portuguese labels.
const (
	uncategorizedTitle = "Sem Status"
	trueTitle          = "Sim"
	falseTitle         = "Não"
)

// Column groups the records sharing one distinct status value.
type Column struct {
	ID      string           `json:"id"`
	Title   string           `json:"title"`
	Records []records.Record `json:"records"`
}

// DeriveColumns partitions records by the distinct values of statusField.
// Columns appear in first-seen order; the uncategorized column is appended
// last and only when non-empty. Every record lands in exactly one column.
func DeriveColumns(recs []records.Record, statusField string) []Column {
	var (
		order   []string
		byKey   = map[string]*Column{}
		pending []records.Record
	)
	for _, record := range recs {
		value := record.Value(statusField)
		key, categorized := columnKey(value)
		if !categorized {
			pending = append(pending, record)
			continue
		}
		column, ok := byKey[key]
		if !ok {
			column = &Column{ID: key, Title: columnTitle(value, key)}
			byKey[key] = column
			order = append(order, key)
		}
		column.Records = append(column.Records, record)
	}

	columns := make([]Column, 0, len(order)+1)
	for _, key := range order {
		columns = append(columns, *byKey[key])
	}
	if len(pending) > 0 {
		columns = append(columns, Column{
			ID:      UncategorizedColumnID,
			Title:   uncategorizedTitle,
			Records: pending,
		})
	}
	return columns
}

// columnKey stringifies a status value into a stable column id. The second
// return is false for values that belong in the uncategorized column.
func columnKey(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		if v == "" {
			return "", false
		}
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	default:
		return fmt.Sprint(v), true
	}
}

func columnTitle(value any, key string) string {
	if b, ok := value.(bool); ok {
		if b {
			return trueTitle
		}
		return falseTitle
	}
	return key
}
