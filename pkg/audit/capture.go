package audit

import "context"

// CaptureHook retains every event it receives. Intended for tests and local
// debugging.
type CaptureHook struct {
	Events []Event
}

// Notify implements Hook.
func (h *CaptureHook) Notify(_ context.Context, evt Event) error {
	h.Events = append(h.Events, evt)
	return nil
}
