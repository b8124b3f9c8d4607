package board

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-waconsole/components/records"
)

var (
	errMissingStore = errors.New("board: record store not configured")
	errMissingField = errors.New("board: status field is required")

	// ErrRecordInFlight rejects a second move while a record's update is
	// still being persisted.
	ErrRecordInFlight = errors.New("board: record move already in progress")
)

// Event describes a board change transports might care about.
type Event struct {
	Collection string `json:"collection"`
	RecordID   string `json:"record_id"`
	FieldKey   string `json:"field_key"`
	ColumnID   string `json:"column_id"`
	Reason     string `json:"reason"`
}

// RefreshHook notifies transports (REST/WebSocket) about board changes.
type RefreshHook interface {
	BoardUpdated(ctx context.Context, event Event) error
}

// Telemetry records board events for observability.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

// Options configures the board Service. Collaborators are interfaces so
// applications can swap implementations.
type Options struct {
	Store       records.Store
	RefreshHook RefreshHook
	Telemetry   Telemetry
}

// Service projects collections onto kanban boards and commits card moves.
type Service struct {
	opts Options

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewService builds a Service with safe defaults.
func NewService(opts Options) *Service {
	if opts.RefreshHook == nil {
		opts.RefreshHook = noopRefreshHook{}
	}
	if opts.Telemetry == nil {
		opts.Telemetry = noopTelemetry{}
	}
	return &Service{
		opts:     opts,
		inFlight: map[string]bool{},
	}
}

// Columns loads the collection's records and derives its board columns.
func (s *Service) Columns(ctx context.Context, collection, statusField string) ([]Column, error) {
	if s.opts.Store == nil {
		return nil, errMissingStore
	}
	if statusField == "" {
		return nil, errMissingField
	}
	recs, err := s.opts.Store.List(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("board: list %s: %w", collection, err)
	}
	return DeriveColumns(recs, statusField), nil
}

// MoveRequest captures a drag-and-drop commit.
type MoveRequest struct {
	Collection   string `json:"collection"`
	RecordID     string `json:"record_id"`
	StatusField  string `json:"status_field"`
	FromColumnID string `json:"from_column_id"`
	ToColumnID   string `json:"to_column_id"`
}

// MoveCard persists the status change implied by dropping a card on another
// column. Moving within the same column is a no-op. While the update is in
// flight the record is locked against further moves; a failed update emits a
// revert event so callers can undo the optimistic move.
func (s *Service) MoveCard(ctx context.Context, req MoveRequest) error {
	if s.opts.Store == nil {
		return errMissingStore
	}
	if req.RecordID == "" {
		return errors.New("board: record id is required")
	}
	if req.StatusField == "" {
		return errMissingField
	}
	if req.FromColumnID == req.ToColumnID {
		return nil
	}
	if !s.markInFlight(req.RecordID) {
		return ErrRecordInFlight
	}
	defer s.clearInFlight(req.RecordID)

	field, current, err := s.fieldContext(ctx, req)
	if err != nil {
		return err
	}
	value := StatusValue(field, req.ToColumnID, current)

	if _, err := s.opts.Store.Update(ctx, req.Collection, req.RecordID, map[string]any{req.StatusField: value}); err != nil {
		_ = s.opts.RefreshHook.BoardUpdated(ctx, Event{
			Collection: req.Collection,
			RecordID:   req.RecordID,
			FieldKey:   req.StatusField,
			ColumnID:   req.FromColumnID,
			Reason:     "revert",
		})
		s.opts.Telemetry.Record(ctx, "board.card.move_failed", map[string]any{
			"collection": req.Collection,
			"record_id":  req.RecordID,
			"error":      err.Error(),
		})
		return fmt.Errorf("board: move %s/%s: %w", req.Collection, req.RecordID, err)
	}

	if err := s.opts.RefreshHook.BoardUpdated(ctx, Event{
		Collection: req.Collection,
		RecordID:   req.RecordID,
		FieldKey:   req.StatusField,
		ColumnID:   req.ToColumnID,
		Reason:     "move",
	}); err != nil {
		return err
	}
	s.opts.Telemetry.Record(ctx, "board.card.move", map[string]any{
		"collection": req.Collection,
		"record_id":  req.RecordID,
		"column_id":  req.ToColumnID,
	})
	return nil
}

// Moving reports whether a record currently has an uncommitted move.
func (s *Service) Moving(recordID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight[recordID]
}

func (s *Service) fieldContext(ctx context.Context, req MoveRequest) (records.Field, any, error) {
	field := records.Field{Key: req.StatusField}
	if collection, err := s.opts.Store.Collection(ctx, req.Collection); err == nil {
		if declared, ok := collection.Field(req.StatusField); ok {
			field = declared
		}
	}
	var current any
	if record, err := s.opts.Store.Get(ctx, req.Collection, req.RecordID); err == nil {
		current = record.Value(req.StatusField)
	}
	return field, current, nil
}

func (s *Service) markInFlight(recordID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[recordID] {
		return false
	}
	s.inFlight[recordID] = true
	return true
}

func (s *Service) clearInFlight(recordID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, recordID)
}

type noopRefreshHook struct{}

func (noopRefreshHook) BoardUpdated(context.Context, Event) error { return nil }

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}
