package records

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a record or collection does not exist.
	ErrNotFound = errors.New("records: not found")
)

// Store abstracts the connected-database API the console browses. The
// production implementation talks to the external low-code database; the
// in-memory store backs tests and demos.
type Store interface {
	Collection(ctx context.Context, code string) (Collection, error)
	List(ctx context.Context, collection string) ([]Record, error)
	Get(ctx context.Context, collection, recordID string) (Record, error)
	Create(ctx context.Context, collection string, fields map[string]any) (Record, error)
	Update(ctx context.Context, collection, recordID string, changes map[string]any) (Record, error)
	Delete(ctx context.Context, collection, recordID string) error
}

// InMemoryStore is a concurrency-safe Store used in tests and examples.
type InMemoryStore struct {
	mu          sync.RWMutex
	collections map[string]Collection
	rows        map[string][]Record
}

// NewInMemoryStore builds an empty store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		collections: map[string]Collection{},
		rows:        map[string][]Record{},
	}
}

// EnsureCollection registers collection metadata, replacing any previous
// schema with the same code.
func (s *InMemoryStore) EnsureCollection(def Collection) error {
	if def.Code == "" {
		return fmt.Errorf("records: collection code is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[def.Code] = def
	return nil
}

// Collection returns the schema for a collection code.
func (s *InMemoryStore) Collection(_ context.Context, code string) (Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	def, ok := s.collections[code]
	if !ok {
		return Collection{}, fmt.Errorf("collection %s: %w", code, ErrNotFound)
	}
	return def, nil
}

// List returns a copy of all records in the collection.
func (s *InMemoryStore) List(_ context.Context, collection string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.rows[collection]
	out := make([]Record, len(rows))
	for i, row := range rows {
		out[i] = cloneRecord(row)
	}
	return out, nil
}

// Get fetches one record by id.
func (s *InMemoryStore) Get(_ context.Context, collection, recordID string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, row := range s.rows[collection] {
		if row.ID == recordID {
			return cloneRecord(row), nil
		}
	}
	return Record{}, fmt.Errorf("record %s/%s: %w", collection, recordID, ErrNotFound)
}

// Create appends a record with a generated id.
func (s *InMemoryStore) Create(_ context.Context, collection string, fields map[string]any) (Record, error) {
	record := Record{ID: uuid.NewString(), Fields: cloneFields(fields)}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[collection] = append(s.rows[collection], record)
	return cloneRecord(record), nil
}

// Update merges changes into the stored record.
func (s *InMemoryStore) Update(_ context.Context, collection, recordID string, changes map[string]any) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.rows[collection]
	for i, row := range rows {
		if row.ID != recordID {
			continue
		}
		if rows[i].Fields == nil {
			rows[i].Fields = map[string]any{}
		}
		for key, value := range changes {
			rows[i].Fields[key] = value
		}
		return cloneRecord(rows[i]), nil
	}
	return Record{}, fmt.Errorf("record %s/%s: %w", collection, recordID, ErrNotFound)
}

// Delete removes a record by id.
func (s *InMemoryStore) Delete(_ context.Context, collection, recordID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.rows[collection]
	for i, row := range rows {
		if row.ID == recordID {
			s.rows[collection] = append(rows[:i], rows[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("record %s/%s: %w", collection, recordID, ErrNotFound)
}

func cloneRecord(r Record) Record {
	return Record{ID: r.ID, Fields: cloneFields(r.Fields)}
}

func cloneFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for key, value := range fields {
		out[key] = value
	}
	return out
}
