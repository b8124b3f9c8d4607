package records

import (
	"testing"
	"time"
)

func TestDateFieldPrefersDeclaredType(t *testing.T) {
	collection := Collection{
		Code: "tasks",
		Fields: []Field{
			{Key: "title", Type: FieldText},
			{Key: "data_limite", Type: FieldText},
			{Key: "due", Type: FieldDate},
		},
	}
	field, ok := DateField(collection)
	if !ok || field.Key != "due" {
		t.Fatalf("expected declared date field, got %+v ok=%v", field, ok)
	}
}

func TestDateFieldFallsBackToNameHints(t *testing.T) {
	collection := Collection{
		Code: "tasks",
		Fields: []Field{
			{Key: "title", Type: FieldText},
			{Key: "scheduled_at", Type: FieldText},
		},
	}
	field, ok := DateField(collection)
	if !ok || field.Key != "scheduled_at" {
		t.Fatalf("expected heuristic match, got %+v ok=%v", field, ok)
	}
}

func TestProjectCalendarBucketsUnparseable(t *testing.T) {
	collection := Collection{
		Code:   "tasks",
		Fields: []Field{{Key: "due", Type: FieldDate}},
	}
	recs := []Record{
		{ID: "a", Fields: map[string]any{"due": "2026-03-15"}},
		{ID: "b", Fields: map[string]any{"due": "2026-03-15T09:30:00Z"}},
		{ID: "c", Fields: map[string]any{"due": "amanhã"}},
		{ID: "d", Fields: map[string]any{}},
	}
	calendar := ProjectCalendar(collection, recs, "")
	if calendar.FieldKey != "due" {
		t.Fatalf("expected due field, got %q", calendar.FieldKey)
	}
	if len(calendar.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(calendar.Events))
	}
	if !calendar.Events[0].AllDay {
		t.Fatalf("day-only value should be all-day")
	}
	if calendar.Events[1].AllDay {
		t.Fatalf("timestamped value should not be all-day")
	}
	if want := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC); !calendar.Events[1].Start.Equal(want) {
		t.Fatalf("expected %v, got %v", want, calendar.Events[1].Start)
	}
	if len(calendar.Unscheduled) != 2 {
		t.Fatalf("expected 2 unscheduled records, got %d", len(calendar.Unscheduled))
	}
}

func TestProjectCalendarBrazilianLayout(t *testing.T) {
	collection := Collection{Code: "tasks", Fields: []Field{{Key: "data", Type: FieldDate}}}
	recs := []Record{{ID: "a", Fields: map[string]any{"data": "25/12/2026"}}}
	calendar := ProjectCalendar(collection, recs, "data")
	if len(calendar.Events) != 1 {
		t.Fatalf("expected 1 event, got %d unscheduled=%d", len(calendar.Events), len(calendar.Unscheduled))
	}
	want := time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)
	if !calendar.Events[0].Start.Equal(want) {
		t.Fatalf("expected %v, got %v", want, calendar.Events[0].Start)
	}
}

func TestProjectCalendarWithoutCandidateField(t *testing.T) {
	collection := Collection{Code: "notes", Fields: []Field{{Key: "body", Type: FieldText}}}
	recs := []Record{{ID: "a"}, {ID: "b"}}
	calendar := ProjectCalendar(collection, recs, "")
	if len(calendar.Events) != 0 || len(calendar.Unscheduled) != 2 {
		t.Fatalf("expected everything unscheduled, got %+v", calendar)
	}
}
