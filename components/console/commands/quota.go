package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-waconsole/components/console"
)

type quotaService interface {
	SetQuotaLimit(ctx context.Context, viewer console.ViewerContext, tenantID string, limit int) error
}

// SetQuotaInput carries a quota ceiling change.
type SetQuotaInput struct {
	Viewer   console.ViewerContext `json:"viewer"`
	TenantID string                `json:"tenant_id"`
	Limit    int                   `json:"limit"`
}

// SetQuotaCommand adjusts a tenant's message credit ceiling.
type SetQuotaCommand struct {
	service   quotaService
	telemetry Telemetry
}

// NewSetQuotaCommand creates a command instance.
func NewSetQuotaCommand(service quotaService, telemetry Telemetry) *SetQuotaCommand {
	return &SetQuotaCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SetQuotaInput] = (*SetQuotaCommand)(nil)

// Execute delegates to the console service.
func (c *SetQuotaCommand) Execute(ctx context.Context, msg SetQuotaInput) error {
	if c.service == nil {
		return errors.New("quota command requires console service")
	}
	if err := c.service.SetQuotaLimit(ctx, msg.Viewer, msg.TenantID, msg.Limit); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.quota.command", map[string]any{
		"tenant_id": msg.TenantID,
		"limit":     msg.Limit,
	})
	return nil
}
