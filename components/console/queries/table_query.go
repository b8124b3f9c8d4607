package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-waconsole/components/records"
)

// TableInput identifies the table projection to resolve.
type TableInput struct {
	Collection string             `json:"collection"`
	Query      records.TableQuery `json:"query"`
}

// TableViewQuery executes read-only table projection over a record store.
type TableViewQuery struct {
	store records.Store
}

// NewTableViewQuery builds the query.
func NewTableViewQuery(store records.Store) *TableViewQuery {
	return &TableViewQuery{store: store}
}

var _ gocommand.Querier[TableInput, records.TablePage] = (*TableViewQuery)(nil)

// Query loads the collection and projects it as a paginated table.
func (q *TableViewQuery) Query(ctx context.Context, input TableInput) (records.TablePage, error) {
	collection, err := q.store.Collection(ctx, input.Collection)
	if err != nil {
		return records.TablePage{}, err
	}
	recs, err := q.store.List(ctx, input.Collection)
	if err != nil {
		return records.TablePage{}, err
	}
	return records.ProjectTable(collection, recs, input.Query), nil
}
