package console

import (
	"context"
	"fmt"
	"sync"
)

// InMemorySubscriptionStore backs tests and demos.
type InMemorySubscriptionStore struct {
	mu   sync.RWMutex
	data map[string]Subscription
}

// NewInMemorySubscriptionStore creates an empty store.
func NewInMemorySubscriptionStore() *InMemorySubscriptionStore {
	return &InMemorySubscriptionStore{data: map[string]Subscription{}}
}

// Subscription returns the stored subscription for the tenant.
func (s *InMemorySubscriptionStore) Subscription(_ context.Context, tenantID string) (Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.data[tenantID]
	if !ok {
		return Subscription{}, fmt.Errorf("console: tenant %s has no subscription", tenantID)
	}
	return sub, nil
}

// SaveSubscription persists a subscription keyed by tenant.
func (s *InMemorySubscriptionStore) SaveSubscription(_ context.Context, sub Subscription) error {
	if sub.TenantID == "" {
		return fmt.Errorf("console: subscription requires tenant id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sub.TenantID] = sub
	return nil
}

// InMemoryQuotaStore is a concurrency-safe QuotaStore.
type InMemoryQuotaStore struct {
	mu   sync.Mutex
	data map[string]Quota
}

// NewInMemoryQuotaStore creates an empty store.
func NewInMemoryQuotaStore() *InMemoryQuotaStore {
	return &InMemoryQuotaStore{data: map[string]Quota{}}
}

// Quota returns the tenant's quota, zero-valued when unset.
func (s *InMemoryQuotaStore) Quota(_ context.Context, tenantID string) (Quota, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	quota := s.data[tenantID]
	quota.TenantID = tenantID
	return quota, nil
}

// SetLimit adjusts the ceiling without touching usage.
func (s *InMemoryQuotaStore) SetLimit(_ context.Context, tenantID string, limit int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	quota := s.data[tenantID]
	quota.TenantID = tenantID
	quota.Limit = limit
	s.data[tenantID] = quota
	return nil
}

// Consume burns credits, rejecting amounts past the limit.
func (s *InMemoryQuotaStore) Consume(_ context.Context, tenantID string, amount int) (Quota, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	quota := s.data[tenantID]
	quota.TenantID = tenantID
	if quota.Used+amount > quota.Limit {
		return quota, ErrQuotaExceeded
	}
	quota.Used += amount
	s.data[tenantID] = quota
	return quota, nil
}

// InMemoryFeatureStore holds tenant feature overrides.
type InMemoryFeatureStore struct {
	mu   sync.RWMutex
	data map[string]map[Feature]bool
}

// NewInMemoryFeatureStore creates an empty store.
func NewInMemoryFeatureStore() *InMemoryFeatureStore {
	return &InMemoryFeatureStore{data: map[string]map[Feature]bool{}}
}

// Features returns a copy of the tenant's overrides.
func (s *InMemoryFeatureStore) Features(_ context.Context, tenantID string) (map[Feature]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[Feature]bool, len(s.data[tenantID]))
	for feature, enabled := range s.data[tenantID] {
		out[feature] = enabled
	}
	return out, nil
}

// SetFeature records a tenant-level override.
func (s *InMemoryFeatureStore) SetFeature(_ context.Context, tenantID string, feature Feature, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data[tenantID] == nil {
		s.data[tenantID] = map[Feature]bool{}
	}
	s.data[tenantID][feature] = enabled
	return nil
}

// RoleAuthorizer grants manage actions to the listed roles; everyone with a
// role may view.
type RoleAuthorizer struct {
	ManageRoles []string
}

// Can implements Authorizer.
func (a RoleAuthorizer) Can(_ context.Context, viewer ViewerContext, action string) bool {
	switch action {
	case ActionView:
		return len(viewer.Roles) > 0
	default:
		for _, role := range viewer.Roles {
			for _, allowed := range a.ManageRoles {
				if role == allowed {
					return true
				}
			}
		}
		return false
	}
}
