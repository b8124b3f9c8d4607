package board

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-waconsole/components/records"
)

func newBoardStore(t *testing.T) *records.InMemoryStore {
	t.Helper()
	store := records.NewInMemoryStore()
	if err := store.EnsureCollection(records.Collection{
		Code: "leads",
		Name: "Leads",
		Fields: []records.Field{
			{Key: "status", Type: records.FieldSelect, Options: []string{"novo", "contatado"}},
			{Key: "done", Type: records.FieldCheckbox},
		},
	}); err != nil {
		t.Fatalf("ensure collection: %v", err)
	}
	return store
}

type recordingHook struct {
	events []Event
	err    error
}

func (h *recordingHook) BoardUpdated(_ context.Context, event Event) error {
	h.events = append(h.events, event)
	return h.err
}

func TestMoveCardPersistsCoercedValue(t *testing.T) {
	ctx := context.Background()
	store := newBoardStore(t)
	record, err := store.Create(ctx, "leads", map[string]any{"status": "novo", "done": false})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	hook := &recordingHook{}
	service := NewService(Options{Store: store, RefreshHook: hook})

	err = service.MoveCard(ctx, MoveRequest{
		Collection:   "leads",
		RecordID:     record.ID,
		StatusField:  "done",
		FromColumnID: "false",
		ToColumnID:   "true",
	})
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	updated, err := store.Get(ctx, "leads", record.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if updated.Value("done") != true {
		t.Fatalf("expected boolean true persisted, got %v", updated.Value("done"))
	}
	if len(hook.events) != 1 || hook.events[0].Reason != "move" {
		t.Fatalf("expected move event, got %+v", hook.events)
	}
}

func TestMoveCardSameColumnIsNoOp(t *testing.T) {
	ctx := context.Background()
	store := newBoardStore(t)
	record, _ := store.Create(ctx, "leads", map[string]any{"status": "novo"})
	hook := &recordingHook{}
	service := NewService(Options{Store: store, RefreshHook: hook})

	err := service.MoveCard(ctx, MoveRequest{
		Collection:   "leads",
		RecordID:     record.ID,
		StatusField:  "status",
		FromColumnID: "novo",
		ToColumnID:   "novo",
	})
	if err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
	if len(hook.events) != 0 {
		t.Fatalf("no-op should not emit events, got %+v", hook.events)
	}
}

func TestMoveCardFailureEmitsRevert(t *testing.T) {
	ctx := context.Background()
	store := newBoardStore(t)
	hook := &recordingHook{}
	service := NewService(Options{Store: store, RefreshHook: hook})

	err := service.MoveCard(ctx, MoveRequest{
		Collection:   "leads",
		RecordID:     "missing",
		StatusField:  "status",
		FromColumnID: "novo",
		ToColumnID:   "contatado",
	})
	if !errors.Is(err, records.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if len(hook.events) != 1 {
		t.Fatalf("expected revert event, got %d", len(hook.events))
	}
	if hook.events[0].Reason != "revert" || hook.events[0].ColumnID != "novo" {
		t.Fatalf("revert should point back to the source column: %+v", hook.events[0])
	}
}

func TestMoveCardSentinelTarget(t *testing.T) {
	ctx := context.Background()
	store := newBoardStore(t)
	record, _ := store.Create(ctx, "leads", map[string]any{"status": "novo"})
	service := NewService(Options{Store: store})

	if err := service.MoveCard(ctx, MoveRequest{
		Collection:   "leads",
		RecordID:     record.ID,
		StatusField:  "status",
		FromColumnID: "novo",
		ToColumnID:   UncategorizedColumnID,
	}); err != nil {
		t.Fatalf("move: %v", err)
	}
	updated, _ := store.Get(ctx, "leads", record.ID)
	if updated.Value("status") != "" {
		t.Fatalf("expected empty string, got %v", updated.Value("status"))
	}
}

func TestColumnsRequiresStatusField(t *testing.T) {
	service := NewService(Options{Store: newBoardStore(t)})
	if _, err := service.Columns(context.Background(), "leads", ""); err == nil {
		t.Fatalf("expected error for missing status field")
	}
}

func TestColumnsProjectsStore(t *testing.T) {
	ctx := context.Background()
	store := newBoardStore(t)
	_, _ = store.Create(ctx, "leads", map[string]any{"status": "novo"})
	_, _ = store.Create(ctx, "leads", map[string]any{"status": "contatado"})
	service := NewService(Options{Store: store})

	columns, err := service.Columns(ctx, "leads", "status")
	if err != nil {
		t.Fatalf("columns: %v", err)
	}
	if len(columns) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(columns))
	}
}
