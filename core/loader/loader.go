package loader

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Feature is a route group mounted by the gateway.
type Feature interface {
	// Name identifies the feature in logs and errors.
	Name() string
	// Prefix is the URL prefix the feature is mounted under; "" mounts on the root router.
	Prefix() string
	// IsEnabled reports whether the feature should be mounted.
	IsEnabled() bool
	// Load registers the feature's routes relative to its prefix.
	Load(r fiber.Router) error
}

// Manager keeps the ordered registry of features.
type Manager struct {
	features []Feature
}

// NewManager creates an empty feature registry.
func NewManager() *Manager {
	return &Manager{}
}

// Register appends a feature. Mount order follows registration order.
func (m *Manager) Register(f Feature) {
	m.features = append(m.features, f)
}

// Features returns the registered features in mount order.
func (m *Manager) Features() []Feature {
	out := make([]Feature, len(m.features))
	copy(out, m.features)
	return out
}

// LoadAll validates the mount table and loads every enabled feature into app.
func (m *Manager) LoadAll(app *fiber.App) error {
	if err := m.validate(); err != nil {
		return err
	}

	for _, f := range m.features {
		if !f.IsEnabled() {
			continue
		}

		var r fiber.Router = app
		if p := normalize(f.Prefix()); p != "" {
			r = app.Group(p)
		}

		if err := f.Load(r); err != nil {
			return fmt.Errorf("failed to load feature %s: %w", f.Name(), err)
		}
	}
	return nil
}

// validate rejects prefixes that would make dispatch ambiguous: duplicates, or one
// prefix nested inside another on a segment boundary.
func (m *Manager) validate() error {
	seen := make(map[string]string)
	for _, f := range m.features {
		if !f.IsEnabled() {
			continue
		}
		p := normalize(f.Prefix())
		if p == "" {
			continue
		}
		if p[0] != '/' {
			return fmt.Errorf("feature %s: prefix %q must start with '/'", f.Name(), f.Prefix())
		}
		for other, name := range seen {
			if other == p || strings.HasPrefix(p, other+"/") || strings.HasPrefix(other, p+"/") {
				return fmt.Errorf("feature %s: prefix %q overlaps %q of feature %s", f.Name(), p, other, name)
			}
		}
		seen[p] = f.Name()
	}
	return nil
}

func normalize(prefix string) string {
	return strings.TrimRight(prefix, "/")
}
