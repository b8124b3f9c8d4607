package records

import (
	"fmt"
	"sync"
)

// ViewHook lets packages register collections/views during init().
type ViewHook func(reg *Registry) error

var (
	globalHookMu sync.Mutex
	globalHooks  []ViewHook
)

// RegisterViewHook registers a hook executed against new registries.
func RegisterViewHook(h ViewHook) {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	globalHooks = append(globalHooks, h)
}

// Registry tracks the collections the console can browse and the views
// declared over them.
type Registry struct {
	mu          sync.RWMutex
	validator   ViewConfigValidator
	collections map[string]Collection
	views       map[string][]ViewDefinition
}

// NewRegistry builds an empty registry, applies global hooks, and validates
// view configuration with the JSON Schema validator.
func NewRegistry() *Registry {
	reg := &Registry{
		validator:   NewJSONSchemaValidator(),
		collections: map[string]Collection{},
		views:       map[string][]ViewDefinition{},
	}
	_ = reg.ApplyHooks()
	return reg
}

// ApplyHooks executes registered view hooks.
func (r *Registry) ApplyHooks() error {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	for _, hook := range globalHooks {
		if err := hook(r); err != nil {
			return err
		}
	}
	return nil
}

// LoadManifestDocument registers collections and views from a decoded
// manifest.
func (r *Registry) LoadManifestDocument(doc *ViewManifestDocument) error {
	if doc == nil {
		return fmt.Errorf("records: manifest document is nil")
	}
	for _, entry := range doc.Collections {
		if err := r.RegisterCollection(entry.Collection); err != nil {
			return fmt.Errorf("records: register collection %s from %s: %w", entry.Collection.Code, doc.Source, err)
		}
		for _, view := range entry.Views {
			if err := r.RegisterView(entry.Collection.Code, view); err != nil {
				return fmt.Errorf("records: register view %s.%s from %s: %w", entry.Collection.Code, view.Code, doc.Source, err)
			}
		}
	}
	return nil
}

// LoadManifestFile reads a manifest from disk and registers it.
func (r *Registry) LoadManifestFile(path string) (*ViewManifestDocument, error) {
	doc, err := ReadManifest(path)
	if err != nil {
		return nil, err
	}
	if err := r.LoadManifestDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// RegisterCollection stores collection metadata.
func (r *Registry) RegisterCollection(def Collection) error {
	if def.Code == "" {
		return fmt.Errorf("collection code is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.collections[def.Code] = def
	return nil
}

// RegisterView attaches a view to a registered collection after validating
// its configuration.
func (r *Registry) RegisterView(collectionCode string, view ViewDefinition) error {
	if view.Code == "" {
		return fmt.Errorf("view code is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.collections[collectionCode]; !ok {
		return fmt.Errorf("collection %s not found", collectionCode)
	}
	if r.validator != nil {
		if err := r.validator.Validate(view); err != nil {
			return err
		}
	}
	for i, existing := range r.views[collectionCode] {
		if existing.Code == view.Code {
			r.views[collectionCode][i] = view
			return nil
		}
	}
	r.views[collectionCode] = append(r.views[collectionCode], view)
	return nil
}

// Collection fetches a collection schema by code.
func (r *Registry) Collection(code string) (Collection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.collections[code]
	return def, ok
}

// View fetches a single view declared over a collection.
func (r *Registry) View(collectionCode, viewCode string) (ViewDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, view := range r.views[collectionCode] {
		if view.Code == viewCode {
			return view, true
		}
	}
	return ViewDefinition{}, false
}

// Views returns all views declared over a collection, in registration order.
func (r *Registry) Views(collectionCode string) []ViewDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	views := make([]ViewDefinition, len(r.views[collectionCode]))
	copy(views, r.views[collectionCode])
	return views
}

// Collections returns all registered collection schemas.
func (r *Registry) Collections() []Collection {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Collection, 0, len(r.collections))
	for _, def := range r.collections {
		out = append(out, def)
	}
	return out
}
