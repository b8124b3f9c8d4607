package console

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-waconsole/components/variations"
	"github.com/goliatone/go-waconsole/pkg/audit"
)

var (
	errMissingSubscriptions = errors.New("console: subscription store not configured")
	errMissingQuotas        = errors.New("console: quota store not configured")
	errMissingFeatures      = errors.New("console: feature store not configured")

	// ErrUnauthorized is returned when the authorizer denies an action.
	ErrUnauthorized = errors.New("console: viewer is not allowed to perform this action")
	// ErrSubscriptionInactive blocks sends for lapsed tenants.
	ErrSubscriptionInactive = errors.New("console: subscription is not active")
	// ErrQuotaExceeded blocks sends past the tenant's credit limit.
	ErrQuotaExceeded = errors.New("console: message quota exceeded")
	// ErrFeatureDisabled blocks gated capabilities.
	ErrFeatureDisabled = errors.New("console: feature is not enabled for this tenant")
	// ErrTemplateInvalid blocks sends whose template failed analysis.
	ErrTemplateInvalid = errors.New("console: template failed validation")
)

// Options configures the console Service. Every collaborator is provided via
// interface so applications can swap implementations.
type Options struct {
	Subscriptions SubscriptionStore
	Quotas        QuotaStore
	Features      FeatureStore
	Authorizer    Authorizer
	Telemetry     Telemetry
	Analyzer      *variations.Analyzer
	AuditHooks    audit.Hooks
	AuditConfig   audit.Config
	Now           func() time.Time
}

// Service orchestrates tenant subscription, quota, and feature state.
type Service struct {
	opts  Options
	audit *audit.Emitter
}

// NewService builds a Service with safe defaults.
func NewService(opts Options) *Service {
	if opts.Authorizer == nil {
		opts.Authorizer = allowAllAuthorizer{}
	}
	if opts.Telemetry == nil {
		opts.Telemetry = noopTelemetry{}
	}
	if opts.Analyzer == nil {
		opts.Analyzer = variations.New(variations.DefaultLimits())
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		opts:  opts,
		audit: audit.NewEmitter(opts.AuditHooks, opts.AuditConfig),
	}
}

// TenantOverview is the console landing payload for one tenant.
type TenantOverview struct {
	Subscription Subscription     `json:"subscription"`
	Quota        Quota            `json:"quota"`
	Features     map[Feature]bool `json:"features"`
}

// Overview loads subscription, quota, and feature state for the viewer's
// tenant.
func (s *Service) Overview(ctx context.Context, viewer ViewerContext) (TenantOverview, error) {
	if !s.opts.Authorizer.Can(ctx, viewer, ActionView) {
		return TenantOverview{}, ErrUnauthorized
	}
	subscription, err := s.subscription(ctx, viewer.TenantID)
	if err != nil {
		return TenantOverview{}, err
	}
	quota, err := s.quota(ctx, viewer.TenantID)
	if err != nil {
		return TenantOverview{}, err
	}
	features, err := s.features(ctx, viewer.TenantID, subscription.Plan)
	if err != nil {
		return TenantOverview{}, err
	}
	s.opts.Telemetry.Record(ctx, "console.overview", map[string]any{
		"tenant_id": viewer.TenantID,
		"viewer":    viewer.UserID,
	})
	return TenantOverview{
		Subscription: subscription,
		Quota:        quota,
		Features:     features,
	}, nil
}

// SendPreview is the result of vetting a template against the tenant's
// subscription, quota, and feature state before a webhook send is armed.
type SendPreview struct {
	Analysis variations.Analysis `json:"analysis"`
	Quota    Quota               `json:"quota"`
	Allowed  bool                `json:"allowed"`
	Reason   string              `json:"reason,omitempty"`
}

// PreviewSend analyzes the template and checks every gate a send must pass.
// Gate failures come back inside the preview; only store access errors are
// returned as Go errors.
func (s *Service) PreviewSend(ctx context.Context, viewer ViewerContext, template string) (SendPreview, error) {
	analysis := s.opts.Analyzer.Analyze(template)
	preview := SendPreview{Analysis: analysis}

	subscription, err := s.subscription(ctx, viewer.TenantID)
	if err != nil {
		return preview, err
	}
	quota, err := s.quota(ctx, viewer.TenantID)
	if err != nil {
		return preview, err
	}
	preview.Quota = quota

	switch {
	case !analysis.IsValid():
		preview.Reason = ErrTemplateInvalid.Error()
	case !subscription.Active(s.opts.Now()):
		preview.Reason = ErrSubscriptionInactive.Error()
	case quota.Remaining() < analysis.TotalCombinations:
		preview.Reason = fmt.Sprintf("%s: template expands to %d message(s), %d credit(s) remaining",
			ErrQuotaExceeded, analysis.TotalCombinations, quota.Remaining())
	default:
		if len(analysis.Blocks) > 0 {
			enabled, err := s.FeatureEnabled(ctx, viewer.TenantID, FeatureVariations)
			if err != nil {
				return preview, err
			}
			if !enabled {
				preview.Reason = ErrFeatureDisabled.Error()
				break
			}
		}
		preview.Allowed = true
	}

	s.opts.Telemetry.Record(ctx, "console.send.preview", map[string]any{
		"tenant_id":    viewer.TenantID,
		"allowed":      preview.Allowed,
		"combinations": analysis.TotalCombinations,
	})
	return preview, nil
}

// ConsumeQuota burns credits after a confirmed send.
func (s *Service) ConsumeQuota(ctx context.Context, tenantID string, amount int) (Quota, error) {
	if s.opts.Quotas == nil {
		return Quota{}, errMissingQuotas
	}
	if amount <= 0 {
		return Quota{}, fmt.Errorf("console: consume amount must be positive, got %d", amount)
	}
	quota, err := s.opts.Quotas.Consume(ctx, tenantID, amount)
	if err != nil {
		return Quota{}, err
	}
	s.opts.Telemetry.Record(ctx, "console.quota.consume", map[string]any{
		"tenant_id": tenantID,
		"amount":    amount,
		"used":      quota.Used,
	})
	return quota, nil
}

// SetQuotaLimit adjusts the tenant's credit ceiling.
func (s *Service) SetQuotaLimit(ctx context.Context, viewer ViewerContext, tenantID string, limit int) error {
	if s.opts.Quotas == nil {
		return errMissingQuotas
	}
	if !s.opts.Authorizer.Can(ctx, viewer, ActionManageQuota) {
		return ErrUnauthorized
	}
	if limit < 0 {
		return fmt.Errorf("console: quota limit cannot be negative, got %d", limit)
	}
	if err := s.opts.Quotas.SetLimit(ctx, tenantID, limit); err != nil {
		return err
	}
	s.opts.Telemetry.Record(ctx, "console.quota.set_limit", map[string]any{
		"tenant_id": tenantID,
		"limit":     limit,
		"actor":     viewer.UserID,
	})
	s.emitAudit(ctx, audit.Event{
		Verb:       "console.quota.set",
		ActorID:    viewer.UserID,
		TenantID:   tenantID,
		ObjectType: "tenant_quota",
		ObjectID:   tenantID,
		Metadata:   map[string]any{"limit": limit},
	})
	return nil
}

// ToggleFeature flips a tenant-level feature override.
func (s *Service) ToggleFeature(ctx context.Context, viewer ViewerContext, tenantID string, feature Feature, enabled bool) error {
	if s.opts.Features == nil {
		return errMissingFeatures
	}
	if !s.opts.Authorizer.Can(ctx, viewer, ActionManageFeatures) {
		return ErrUnauthorized
	}
	if err := s.opts.Features.SetFeature(ctx, tenantID, feature, enabled); err != nil {
		return err
	}
	s.opts.Telemetry.Record(ctx, "console.feature.toggle", map[string]any{
		"tenant_id": tenantID,
		"feature":   string(feature),
		"enabled":   enabled,
		"actor":     viewer.UserID,
	})
	s.emitAudit(ctx, audit.Event{
		Verb:       "console.feature.toggle",
		ActorID:    viewer.UserID,
		TenantID:   tenantID,
		ObjectType: "tenant_feature",
		ObjectID:   string(feature),
		Metadata:   map[string]any{"enabled": enabled},
	})
	return nil
}

// FeatureEnabled resolves a feature for a tenant: explicit overrides win,
// then the plan's default matrix.
func (s *Service) FeatureEnabled(ctx context.Context, tenantID string, feature Feature) (bool, error) {
	if s.opts.Features == nil {
		return false, errMissingFeatures
	}
	overrides, err := s.opts.Features.Features(ctx, tenantID)
	if err != nil {
		return false, err
	}
	if enabled, ok := overrides[feature]; ok {
		return enabled, nil
	}
	subscription, err := s.subscription(ctx, tenantID)
	if err != nil {
		return false, err
	}
	return DefaultFeaturesForPlan(subscription.Plan)[feature], nil
}

func (s *Service) subscription(ctx context.Context, tenantID string) (Subscription, error) {
	if s.opts.Subscriptions == nil {
		return Subscription{}, errMissingSubscriptions
	}
	return s.opts.Subscriptions.Subscription(ctx, tenantID)
}

func (s *Service) quota(ctx context.Context, tenantID string) (Quota, error) {
	if s.opts.Quotas == nil {
		return Quota{}, errMissingQuotas
	}
	return s.opts.Quotas.Quota(ctx, tenantID)
}

func (s *Service) features(ctx context.Context, tenantID, plan string) (map[Feature]bool, error) {
	if s.opts.Features == nil {
		return nil, errMissingFeatures
	}
	features := DefaultFeaturesForPlan(plan)
	overrides, err := s.opts.Features.Features(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	for feature, enabled := range overrides {
		features[feature] = enabled
	}
	return features, nil
}

// emitAudit never fails the operation that produced the event.
func (s *Service) emitAudit(ctx context.Context, evt audit.Event) {
	if !s.audit.Enabled() {
		return
	}
	_ = s.audit.Emit(ctx, evt)
}

type allowAllAuthorizer struct{}

func (allowAllAuthorizer) Can(context.Context, ViewerContext, string) bool { return true }

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}
