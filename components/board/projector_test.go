package board

import (
	"testing"

	"github.com/goliatone/go-waconsole/components/records"
)

func TestDeriveColumnsPartitionsRecords(t *testing.T) {
	recs := []records.Record{
		{ID: "a", Fields: map[string]any{"status": "open"}},
		{ID: "b", Fields: map[string]any{"status": "closed"}},
		{ID: "c", Fields: map[string]any{"status": nil}},
		{ID: "d", Fields: map[string]any{"status": false}},
	}
	columns := DeriveColumns(recs, "status")

	if len(columns) != 4 {
		t.Fatalf("expected 4 columns, got %d", len(columns))
	}
	wantIDs := []string{"open", "closed", "false", UncategorizedColumnID}
	wantTitles := []string{"open", "closed", "Não", "Sem Status"}
	total := 0
	for i, column := range columns {
		if column.ID != wantIDs[i] {
			t.Fatalf("column %d: expected id %q, got %q", i, wantIDs[i], column.ID)
		}
		if column.Title != wantTitles[i] {
			t.Fatalf("column %d: expected title %q, got %q", i, wantTitles[i], column.Title)
		}
		if len(column.Records) != 1 {
			t.Fatalf("column %s: expected 1 record, got %d", column.ID, len(column.Records))
		}
		total += len(column.Records)
	}
	if total != len(recs) {
		t.Fatalf("partition lost records: %d != %d", total, len(recs))
	}
}

func TestDeriveColumnsBooleanValuesStayDistinct(t *testing.T) {
	recs := []records.Record{
		{ID: "a", Fields: map[string]any{"done": true}},
		{ID: "b", Fields: map[string]any{"done": false}},
		{ID: "c", Fields: map[string]any{"done": nil}},
		{ID: "d", Fields: map[string]any{"done": ""}},
	}
	columns := DeriveColumns(recs, "done")
	if len(columns) != 3 {
		t.Fatalf("expected true/false/uncategorized, got %d columns", len(columns))
	}
	if columns[0].ID != "true" || columns[0].Title != "Sim" {
		t.Fatalf("unexpected first column: %+v", columns[0])
	}
	if columns[1].ID != "false" || columns[1].Title != "Não" {
		t.Fatalf("unexpected second column: %+v", columns[1])
	}
	if columns[2].ID != UncategorizedColumnID || len(columns[2].Records) != 2 {
		t.Fatalf("nil and empty string should share the sentinel: %+v", columns[2])
	}
}

func TestDeriveColumnsFirstSeenOrder(t *testing.T) {
	recs := []records.Record{
		{ID: "a", Fields: map[string]any{"status": "fechado"}},
		{ID: "b", Fields: map[string]any{"status": "novo"}},
		{ID: "c", Fields: map[string]any{"status": "fechado"}},
		{ID: "d", Fields: map[string]any{"status": "contatado"}},
	}
	columns := DeriveColumns(recs, "status")
	got := []string{columns[0].ID, columns[1].ID, columns[2].ID}
	want := []string{"fechado", "novo", "contatado"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
	if len(columns[0].Records) != 2 {
		t.Fatalf("expected fechado to hold 2 records, got %d", len(columns[0].Records))
	}
}

func TestDeriveColumnsNoSentinelWhenAllCategorized(t *testing.T) {
	recs := []records.Record{
		{ID: "a", Fields: map[string]any{"status": "novo"}},
	}
	columns := DeriveColumns(recs, "status")
	if len(columns) != 1 {
		t.Fatalf("expected single column, got %d", len(columns))
	}
}

func TestDeriveColumnsNumericKeys(t *testing.T) {
	recs := []records.Record{
		{ID: "a", Fields: map[string]any{"priority": float64(1)}},
		{ID: "b", Fields: map[string]any{"priority": float64(2.5)}},
	}
	columns := DeriveColumns(recs, "priority")
	if columns[0].ID != "1" || columns[1].ID != "2.5" {
		t.Fatalf("unexpected numeric keys: %q %q", columns[0].ID, columns[1].ID)
	}
}

func TestDeriveColumnsEmptyInput(t *testing.T) {
	if columns := DeriveColumns(nil, "status"); len(columns) != 0 {
		t.Fatalf("expected no columns, got %d", len(columns))
	}
}
