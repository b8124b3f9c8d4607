package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-waconsole/components/board"
)

type moveService interface {
	MoveCard(ctx context.Context, req board.MoveRequest) error
}

// MoveCardCommand commits a kanban card move so transports can invoke the
// board service without linking against it directly.
type MoveCardCommand struct {
	service   moveService
	telemetry Telemetry
}

// NewMoveCardCommand creates a command instance.
func NewMoveCardCommand(service moveService, telemetry Telemetry) *MoveCardCommand {
	return &MoveCardCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[board.MoveRequest] = (*MoveCardCommand)(nil)

// Execute delegates to the board service.
func (c *MoveCardCommand) Execute(ctx context.Context, msg board.MoveRequest) error {
	if c.service == nil {
		return errors.New("move command requires board service")
	}
	if err := c.service.MoveCard(ctx, msg); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.board.move", map[string]any{
		"collection": msg.Collection,
		"record_id":  msg.RecordID,
		"to":         msg.ToColumnID,
	})
	return nil
}
