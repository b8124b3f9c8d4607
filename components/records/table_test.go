package records

import (
	"testing"
)

var contactsCollection = Collection{
	Code: "contacts",
	Name: "Contacts",
	Fields: []Field{
		{Key: "name", Label: "Nome", Type: FieldText},
		{Key: "score", Type: FieldNumber},
		{Key: "created_at", Type: FieldDate},
	},
}

func contactRows() []Record {
	return []Record{
		{ID: "r1", Fields: map[string]any{"name": "Bruna", "score": 10}},
		{ID: "r2", Fields: map[string]any{"name": "Ana", "score": 30}},
		{ID: "r3", Fields: map[string]any{"name": "Caio", "score": 20}},
	}
}

func TestProjectTableColumnsFromSchema(t *testing.T) {
	page := ProjectTable(contactsCollection, contactRows(), TableQuery{})
	if len(page.Columns) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(page.Columns))
	}
	if page.Columns[0].Title != "Nome" {
		t.Fatalf("expected explicit label, got %q", page.Columns[0].Title)
	}
	if page.Columns[2].Title != "Created At" {
		t.Fatalf("expected derived title, got %q", page.Columns[2].Title)
	}
	if page.Total != 3 || len(page.Rows) != 3 {
		t.Fatalf("unexpected page: total=%d rows=%d", page.Total, len(page.Rows))
	}
}

func TestProjectTableSortsNumerically(t *testing.T) {
	page := ProjectTable(contactsCollection, contactRows(), TableQuery{SortBy: "score"})
	if page.Rows[0].ID != "r1" || page.Rows[1].ID != "r3" || page.Rows[2].ID != "r2" {
		t.Fatalf("unexpected ascending order: %s %s %s", page.Rows[0].ID, page.Rows[1].ID, page.Rows[2].ID)
	}

	page = ProjectTable(contactsCollection, contactRows(), TableQuery{SortBy: "score", Desc: true})
	if page.Rows[0].ID != "r2" {
		t.Fatalf("expected descending order, got %s first", page.Rows[0].ID)
	}
}

func TestProjectTablePaginates(t *testing.T) {
	page := ProjectTable(contactsCollection, contactRows(), TableQuery{SortBy: "name", Page: 2, PerPage: 2})
	if page.Total != 3 {
		t.Fatalf("expected total 3, got %d", page.Total)
	}
	if len(page.Rows) != 1 {
		t.Fatalf("expected 1 row on last page, got %d", len(page.Rows))
	}
	if page.Rows[0].Value("name") != "Caio" {
		t.Fatalf("unexpected row on page 2: %v", page.Rows[0])
	}
}

func TestProjectTableSelectedFields(t *testing.T) {
	page := ProjectTable(contactsCollection, contactRows(), TableQuery{Fields: []string{"score", "unknown_field"}})
	if len(page.Columns) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(page.Columns))
	}
	if page.Columns[0].Key != "score" || page.Columns[1].Title != "Unknown Field" {
		t.Fatalf("unexpected columns: %+v", page.Columns)
	}
}
