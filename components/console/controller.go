package console

import (
	"context"
	"errors"
	"io"
)

type overviewResolver interface {
	Overview(ctx context.Context, viewer ViewerContext) (TenantOverview, error)
}

// ControllerOptions configures the HTML controller.
type ControllerOptions struct {
	Service  overviewResolver
	Renderer Renderer
	Template string
}

// Controller renders the console landing page and exposes the overview
// payload for JSON transports.
type Controller struct {
	service  overviewResolver
	renderer Renderer
	template string
}

// NewController wires the service and renderer into a controller.
func NewController(opts ControllerOptions) *Controller {
	template := opts.Template
	if template == "" {
		template = "console.html"
	}
	return &Controller{
		service:  opts.Service,
		renderer: opts.Renderer,
		template: template,
	}
}

// OverviewPayload resolves the overview for JSON consumers.
func (c *Controller) OverviewPayload(ctx context.Context, viewer ViewerContext) (TenantOverview, error) {
	if c.service == nil {
		return TenantOverview{}, errors.New("console: controller requires service")
	}
	return c.service.Overview(ctx, viewer)
}

// RenderTemplate resolves the overview and writes the rendered console page.
func (c *Controller) RenderTemplate(ctx context.Context, viewer ViewerContext, out io.Writer) error {
	if c.renderer == nil {
		return errors.New("console: controller requires renderer")
	}
	overview, err := c.OverviewPayload(ctx, viewer)
	if err != nil {
		return err
	}
	payload := map[string]any{
		"viewer":       viewer,
		"subscription": overview.Subscription,
		"quota":        overview.Quota,
		"features":     overview.Features,
	}
	_, err = c.renderer.Render(c.template, payload, out)
	return err
}
