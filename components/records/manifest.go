package records

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	manifestVersionV1 = "1"
	// ManifestVersion exposes the current manifest format version for tooling.
	ManifestVersion = manifestVersionV1
)

// ViewKind selects how a collection is projected.
type ViewKind string

const (
	ViewTable    ViewKind = "table"
	ViewCalendar ViewKind = "calendar"
	ViewKanban   ViewKind = "kanban"
)

// ViewDefinition declares a named projection over a collection.
type ViewDefinition struct {
	Code   string         `json:"code" yaml:"code"`
	Name   string         `json:"name" yaml:"name"`
	Kind   ViewKind       `json:"kind" yaml:"kind"`
	Config map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
}

// ViewManifestDocument models a YAML manifest describing collections and the
// views the console renders over them.
type ViewManifestDocument struct {
	Version     string               `json:"version" yaml:"version"`
	Name        string               `json:"name,omitempty" yaml:"name,omitempty"`
	Collections []ManifestCollection `json:"collections" yaml:"collections"`
	Source      string               `json:"-" yaml:"-"`
}

// ManifestCollection pairs a collection schema with its declared views.
type ManifestCollection struct {
	Collection Collection       `json:"collection" yaml:"collection"`
	Views      []ViewDefinition `json:"views" yaml:"views"`
}

// ReadManifest loads a manifest file from disk without registering it.
func ReadManifest(path string) (*ViewManifestDocument, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("records: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("records: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeManifest reads a manifest from any reader.
func DecodeManifest(r io.Reader) (*ViewManifestDocument, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc ViewManifestDocument
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("records: manifest is empty")
		}
		return nil, fmt.Errorf("records: parse manifest: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate ensures the manifest satisfies required fields.
func (doc *ViewManifestDocument) Validate() error {
	if doc.Version != manifestVersionV1 {
		return fmt.Errorf("records: unsupported manifest version %q", doc.Version)
	}
	seenCollections := make(map[string]struct{}, len(doc.Collections))
	for idx, entry := range doc.Collections {
		code := entry.Collection.Code
		if code == "" {
			return fmt.Errorf("records: manifest collection at index %d is missing collection.code", idx)
		}
		if _, exists := seenCollections[code]; exists {
			return fmt.Errorf("records: manifest duplicates collection code %s", code)
		}
		seenCollections[code] = struct{}{}

		seenViews := make(map[string]struct{}, len(entry.Views))
		for _, view := range entry.Views {
			if view.Code == "" {
				return fmt.Errorf("records: collection %s declares a view without a code", code)
			}
			switch view.Kind {
			case ViewTable, ViewCalendar, ViewKanban:
			default:
				return fmt.Errorf("records: view %s.%s has unknown kind %q", code, view.Code, view.Kind)
			}
			if _, exists := seenViews[view.Code]; exists {
				return fmt.Errorf("records: collection %s duplicates view code %s", code, view.Code)
			}
			seenViews[view.Code] = struct{}{}
		}
	}
	return nil
}

func (doc *ViewManifestDocument) applyDefaults() {
	if doc.Version == "" {
		doc.Version = manifestVersionV1
	}
	for c := range doc.Collections {
		for v := range doc.Collections[c].Views {
			if doc.Collections[c].Views[v].Kind == "" {
				doc.Collections[c].Views[v].Kind = ViewTable
			}
		}
	}
}
