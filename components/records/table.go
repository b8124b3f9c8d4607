package records

import (
	"fmt"
	"sort"
	"strings"
)

const defaultPageSize = 25

// TableQuery selects, orders, and paginates a table projection.
type TableQuery struct {
	Fields  []string `json:"fields,omitempty"`
	SortBy  string   `json:"sort_by,omitempty"`
	Desc    bool     `json:"desc,omitempty"`
	Page    int      `json:"page,omitempty"`
	PerPage int      `json:"per_page,omitempty"`
}

// TableColumn is a rendered column header.
type TableColumn struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}

// TablePage is one page of the table projection.
type TablePage struct {
	Columns []TableColumn `json:"columns"`
	Rows    []Record      `json:"rows"`
	Total   int           `json:"total"`
	Page    int           `json:"page"`
	PerPage int           `json:"per_page"`
}

// ProjectTable turns records into an ordered, paginated table. Column order
// follows the query's field selection, falling back to the collection schema.
func ProjectTable(collection Collection, recs []Record, query TableQuery) TablePage {
	columns := tableColumns(collection, query.Fields)

	rows := make([]Record, len(recs))
	copy(rows, recs)
	if query.SortBy != "" {
		sort.SliceStable(rows, func(i, j int) bool {
			less := lessValues(rows[i].Value(query.SortBy), rows[j].Value(query.SortBy))
			if query.Desc {
				return !less && !equalValues(rows[i].Value(query.SortBy), rows[j].Value(query.SortBy))
			}
			return less
		})
	}

	perPage := query.PerPage
	if perPage <= 0 {
		perPage = defaultPageSize
	}
	page := query.Page
	if page <= 0 {
		page = 1
	}
	start := (page - 1) * perPage
	if start > len(rows) {
		start = len(rows)
	}
	end := start + perPage
	if end > len(rows) {
		end = len(rows)
	}

	return TablePage{
		Columns: columns,
		Rows:    rows[start:end],
		Total:   len(recs),
		Page:    page,
		PerPage: perPage,
	}
}

func tableColumns(collection Collection, selected []string) []TableColumn {
	if len(selected) == 0 {
		columns := make([]TableColumn, len(collection.Fields))
		for i, field := range collection.Fields {
			columns[i] = TableColumn{Key: field.Key, Title: field.Title()}
		}
		return columns
	}
	columns := make([]TableColumn, 0, len(selected))
	for _, key := range selected {
		if field, ok := collection.Field(key); ok {
			columns = append(columns, TableColumn{Key: key, Title: field.Title()})
			continue
		}
		columns = append(columns, TableColumn{Key: key, Title: Field{Key: key}.Title()})
	}
	return columns
}

// lessValues compares heterogeneous field values: numbers numerically,
// booleans false-before-true, everything else by string form. Nil sorts
// first.
func lessValues(a, b any) bool {
	if a == nil {
		return b != nil
	}
	if b == nil {
		return false
	}
	af, aok := numericValue(a)
	bf, bok := numericValue(b)
	if aok && bok {
		return af < bf
	}
	ab, aok := a.(bool)
	bb, bok := b.(bool)
	if aok && bok {
		return !ab && bb
	}
	return strings.Compare(stringify(a), stringify(b)) < 0
}

func equalValues(a, b any) bool {
	return !lessValues(a, b) && !lessValues(b, a)
}

func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
