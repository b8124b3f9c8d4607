package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-waconsole/components/console"
	"github.com/goliatone/go-waconsole/components/records"
	"github.com/goliatone/go-waconsole/pkg/audit"
)

// UpdateRecordInput carries an inline record edit from the browser views.
type UpdateRecordInput struct {
	Viewer     console.ViewerContext `json:"viewer"`
	Collection string                `json:"collection"`
	RecordID   string                `json:"record_id"`
	Changes    map[string]any        `json:"changes"`
}

// UpdateRecordCommand applies field changes to a stored record after checking
// the viewer may edit records.
type UpdateRecordCommand struct {
	store      records.Store
	authorizer console.Authorizer
	telemetry  Telemetry
	audit      *audit.Emitter
}

// NewUpdateRecordCommand creates a command instance. A nil authorizer allows
// every edit; a nil emitter skips the audit trail.
func NewUpdateRecordCommand(store records.Store, authorizer console.Authorizer, telemetry Telemetry, emitter *audit.Emitter) *UpdateRecordCommand {
	return &UpdateRecordCommand{
		store:      store,
		authorizer: authorizer,
		telemetry:  normalizeTelemetry(telemetry),
		audit:      emitter,
	}
}

var _ gocommand.Commander[UpdateRecordInput] = (*UpdateRecordCommand)(nil)

// Execute applies the changes through the record store.
func (c *UpdateRecordCommand) Execute(ctx context.Context, msg UpdateRecordInput) error {
	if c.store == nil {
		return errors.New("record command requires store")
	}
	if len(msg.Changes) == 0 {
		return errors.New("record command requires at least one change")
	}
	if c.authorizer != nil && !c.authorizer.Can(ctx, msg.Viewer, console.ActionEditRecords) {
		return console.ErrUnauthorized
	}
	if _, err := c.store.Update(ctx, msg.Collection, msg.RecordID, msg.Changes); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.record.update", map[string]any{
		"collection": msg.Collection,
		"record_id":  msg.RecordID,
		"fields":     len(msg.Changes),
	})
	if c.audit.Enabled() {
		_ = c.audit.Emit(ctx, audit.Event{
			Verb:       "console.record.update",
			ActorID:    msg.Viewer.UserID,
			TenantID:   msg.Viewer.TenantID,
			ObjectType: "record",
			ObjectID:   msg.RecordID,
			Metadata: map[string]any{
				"collection": msg.Collection,
				"fields":     len(msg.Changes),
			},
		})
	}
	return nil
}
