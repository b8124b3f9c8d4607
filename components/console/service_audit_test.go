package console

import (
	"context"
	"testing"

	"github.com/goliatone/go-waconsole/pkg/audit"
)

func TestSetQuotaLimitEmitsAudit(t *testing.T) {
	capture := &audit.CaptureHook{}
	svc := NewService(Options{
		Subscriptions: NewInMemorySubscriptionStore(),
		Quotas:        NewInMemoryQuotaStore(),
		Features:      NewInMemoryFeatureStore(),
		AuditHooks:    audit.Hooks{capture},
		AuditConfig:   audit.Config{Enabled: true},
	})

	viewer := ViewerContext{UserID: "admin-1", TenantID: "acme"}
	if err := svc.SetQuotaLimit(context.Background(), viewer, "acme", 500); err != nil {
		t.Fatalf("SetQuotaLimit returned error: %v", err)
	}
	if len(capture.Events) != 1 {
		t.Fatalf("expected 1 audit event, got %d", len(capture.Events))
	}
	event := capture.Events[0]
	if event.Verb != "console.quota.set" || event.ObjectType != "tenant_quota" {
		t.Fatalf("unexpected event payload: %+v", event)
	}
	if event.ActorID != "admin-1" || event.TenantID != "acme" {
		t.Fatalf("unexpected actor context: %+v", event)
	}
	if event.Channel != "console" {
		t.Fatalf("expected default channel console, got %q", event.Channel)
	}
	if event.Metadata["limit"] != 500 {
		t.Fatalf("expected limit metadata, got %+v", event.Metadata)
	}
}

func TestToggleFeatureEmitsAudit(t *testing.T) {
	capture := &audit.CaptureHook{}
	svc := NewService(Options{
		Subscriptions: NewInMemorySubscriptionStore(),
		Quotas:        NewInMemoryQuotaStore(),
		Features:      NewInMemoryFeatureStore(),
		AuditHooks:    audit.Hooks{capture},
		AuditConfig:   audit.Config{Enabled: true},
	})

	viewer := ViewerContext{UserID: "admin-1", TenantID: "acme"}
	if err := svc.ToggleFeature(context.Background(), viewer, "acme", FeatureKanban, true); err != nil {
		t.Fatalf("ToggleFeature returned error: %v", err)
	}
	if len(capture.Events) != 1 {
		t.Fatalf("expected 1 audit event, got %d", len(capture.Events))
	}
	event := capture.Events[0]
	if event.Verb != "console.feature.toggle" || event.ObjectID != string(FeatureKanban) {
		t.Fatalf("unexpected event payload: %+v", event)
	}
	if event.Metadata["enabled"] != true {
		t.Fatalf("expected enabled metadata, got %+v", event.Metadata)
	}
}

func TestAuditDisabledEmitsNothing(t *testing.T) {
	capture := &audit.CaptureHook{}
	svc := NewService(Options{
		Subscriptions: NewInMemorySubscriptionStore(),
		Quotas:        NewInMemoryQuotaStore(),
		Features:      NewInMemoryFeatureStore(),
		AuditHooks:    audit.Hooks{capture},
	})

	viewer := ViewerContext{UserID: "admin-1", TenantID: "acme"}
	if err := svc.SetQuotaLimit(context.Background(), viewer, "acme", 500); err != nil {
		t.Fatalf("SetQuotaLimit returned error: %v", err)
	}
	if len(capture.Events) != 0 {
		t.Fatalf("disabled audit must not emit, got %d events", len(capture.Events))
	}
}
