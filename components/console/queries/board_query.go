package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-waconsole/components/board"
)

type boardService interface {
	Columns(ctx context.Context, collection, statusField string) ([]board.Column, error)
}

// BoardInput identifies the kanban projection to resolve.
type BoardInput struct {
	Collection  string `json:"collection"`
	StatusField string `json:"status_field"`
}

// BoardQuery executes read-only kanban column resolution.
type BoardQuery struct {
	service boardService
}

// NewBoardQuery builds the query.
func NewBoardQuery(service boardService) *BoardQuery {
	return &BoardQuery{service: service}
}

var _ gocommand.Querier[BoardInput, []board.Column] = (*BoardQuery)(nil)

// Query resolves the board columns for the collection.
func (q *BoardQuery) Query(ctx context.Context, input BoardInput) ([]board.Column, error) {
	return q.service.Columns(ctx, input.Collection, input.StatusField)
}
