package audit

import "context"

const defaultChannel = "console"

// Config controls emitter behavior.
type Config struct {
	Enabled bool
	Channel string
}

// Emitter is the audit entry point components emit through. A disabled or
// hook-less emitter drops events silently.
type Emitter struct {
	hooks   Hooks
	enabled bool
	channel string
}

// NewEmitter builds an emitter over the provided hooks.
func NewEmitter(hooks Hooks, cfg Config) *Emitter {
	channel := cfg.Channel
	if channel == "" {
		channel = defaultChannel
	}
	return &Emitter{
		hooks:   hooks,
		enabled: cfg.Enabled,
		channel: channel,
	}
}

// Enabled reports whether emitted events reach any hook.
func (e *Emitter) Enabled() bool {
	return e != nil && e.enabled && len(e.hooks) > 0
}

// Emit delivers the event, stamping the default channel when unset.
func (e *Emitter) Emit(ctx context.Context, evt Event) error {
	if !e.Enabled() {
		return nil
	}
	if evt.Channel == "" {
		evt.Channel = e.channel
	}
	return e.hooks.Notify(ctx, evt)
}
