package console

import (
	"context"
	"time"
)

// Subscription captures a tenant's commercial state.
type Subscription struct {
	TenantID  string     `json:"tenant_id"`
	Plan      string     `json:"plan"`
	Status    string     `json:"status"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Subscription statuses.
const (
	StatusActive   = "active"
	StatusTrial    = "trial"
	StatusExpired  = "expired"
	StatusCanceled = "canceled"
)

// Active reports whether the subscription entitles the tenant to send
// messages at the given instant.
func (s Subscription) Active(now time.Time) bool {
	switch s.Status {
	case StatusActive, StatusTrial:
	default:
		return false
	}
	if s.ExpiresAt != nil && now.After(*s.ExpiresAt) {
		return false
	}
	return true
}

// Quota tracks message credits for a tenant.
type Quota struct {
	TenantID string `json:"tenant_id"`
	Limit    int    `json:"limit"`
	Used     int    `json:"used"`
}

// Remaining returns the unused credits, never negative.
func (q Quota) Remaining() int {
	if q.Used >= q.Limit {
		return 0
	}
	return q.Limit - q.Used
}

// SubscriptionStore loads and persists tenant subscriptions.
type SubscriptionStore interface {
	Subscription(ctx context.Context, tenantID string) (Subscription, error)
	SaveSubscription(ctx context.Context, sub Subscription) error
}

// QuotaStore tracks per-tenant message credits. Consume must reject amounts
// that would exceed the limit.
type QuotaStore interface {
	Quota(ctx context.Context, tenantID string) (Quota, error)
	SetLimit(ctx context.Context, tenantID string, limit int) error
	Consume(ctx context.Context, tenantID string, amount int) (Quota, error)
}

// FeatureStore persists per-tenant feature toggles.
type FeatureStore interface {
	Features(ctx context.Context, tenantID string) (map[Feature]bool, error)
	SetFeature(ctx context.Context, tenantID string, feature Feature, enabled bool) error
}

// Authorizer decides whether a viewer can run a console action.
type Authorizer interface {
	Can(ctx context.Context, viewer ViewerContext, action string) bool
}

// Telemetry records console events for observability.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

// ViewerContext carries the active admin user, their tenant, and roles.
type ViewerContext struct {
	UserID   string   `json:"user_id"`
	TenantID string   `json:"tenant_id"`
	Roles    []string `json:"roles,omitempty"`
	Locale   string   `json:"locale,omitempty"`
}

// Console actions checked against the Authorizer.
const (
	ActionView           = "console.view"
	ActionManageQuota    = "console.quota.manage"
	ActionManageFeatures = "console.features.manage"
	ActionEditRecords    = "console.records.edit"
)
