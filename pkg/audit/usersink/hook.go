// Package usersink bridges console audit events into a go-users activity
// sink so admin actions show up in the tenant's activity feed.
package usersink

import (
	"context"

	"github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"

	"github.com/goliatone/go-waconsole/pkg/audit"
)

// Sink is the subset of the go-users activity logger the hook needs.
type Sink interface {
	Log(ctx context.Context, record types.ActivityRecord) error
}

// Hook maps audit events onto go-users activity records.
type Hook struct {
	Sink Sink
}

// Notify implements audit.Hook. Events without a verb or sink are dropped.
func (h Hook) Notify(ctx context.Context, evt audit.Event) error {
	if h.Sink == nil || !evt.Valid() {
		return nil
	}
	record := types.ActivityRecord{
		Verb:       evt.Verb,
		ObjectType: evt.ObjectType,
		ObjectID:   evt.ObjectID,
		Channel:    evt.Channel,
		OccurredAt: evt.OccurredAt,
		Data:       map[string]any{},
	}
	if id, err := uuid.Parse(evt.ActorID); err == nil {
		record.ActorID = id
	}
	if id, err := uuid.Parse(evt.UserID); err == nil {
		record.UserID = id
	}
	if id, err := uuid.Parse(evt.TenantID); err == nil {
		record.TenantID = id
	}
	for k, v := range evt.Metadata {
		record.Data[k] = v
	}
	if evt.TemplateCode != "" {
		record.Data["template_code"] = evt.TemplateCode
	}
	if len(evt.Recipients) > 0 {
		record.Data["recipients"] = append([]string(nil), evt.Recipients...)
	}
	return h.Sink.Log(ctx, record)
}
