package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-waconsole/components/console"
)

type featureService interface {
	ToggleFeature(ctx context.Context, viewer console.ViewerContext, tenantID string, feature console.Feature, enabled bool) error
}

// ToggleFeatureInput carries a tenant feature override change.
type ToggleFeatureInput struct {
	Viewer   console.ViewerContext `json:"viewer"`
	TenantID string                `json:"tenant_id"`
	Feature  console.Feature       `json:"feature"`
	Enabled  bool                  `json:"enabled"`
}

// ToggleFeatureCommand flips a tenant-level feature override.
type ToggleFeatureCommand struct {
	service   featureService
	telemetry Telemetry
}

// NewToggleFeatureCommand creates a command instance.
func NewToggleFeatureCommand(service featureService, telemetry Telemetry) *ToggleFeatureCommand {
	return &ToggleFeatureCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleFeatureInput] = (*ToggleFeatureCommand)(nil)

// Execute delegates to the console service.
func (c *ToggleFeatureCommand) Execute(ctx context.Context, msg ToggleFeatureInput) error {
	if c.service == nil {
		return errors.New("feature command requires console service")
	}
	if err := c.service.ToggleFeature(ctx, msg.Viewer, msg.TenantID, msg.Feature, msg.Enabled); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.feature.command", map[string]any{
		"tenant_id": msg.TenantID,
		"feature":   string(msg.Feature),
		"enabled":   msg.Enabled,
	})
	return nil
}
