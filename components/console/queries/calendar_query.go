package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-waconsole/components/records"
)

// CalendarInput identifies the calendar projection to resolve. An empty
// FieldKey lets the projection pick the date field heuristically.
type CalendarInput struct {
	Collection string `json:"collection"`
	FieldKey   string `json:"field_key,omitempty"`
}

// CalendarViewQuery executes read-only calendar projection over a record
// store.
type CalendarViewQuery struct {
	store records.Store
}

// NewCalendarViewQuery builds the query.
func NewCalendarViewQuery(store records.Store) *CalendarViewQuery {
	return &CalendarViewQuery{store: store}
}

var _ gocommand.Querier[CalendarInput, records.Calendar] = (*CalendarViewQuery)(nil)

// Query loads the collection and projects it onto its date field.
func (q *CalendarViewQuery) Query(ctx context.Context, input CalendarInput) (records.Calendar, error) {
	collection, err := q.store.Collection(ctx, input.Collection)
	if err != nil {
		return records.Calendar{}, err
	}
	recs, err := q.store.List(ctx, input.Collection)
	if err != nil {
		return records.Calendar{}, err
	}
	return records.ProjectCalendar(collection, recs, input.FieldKey), nil
}
