package status

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
}

// NewFeature creates the status feature; now may be nil.
func NewFeature(now func() time.Time) *Feature {
	return &Feature{handler: NewHandler(now)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "status"
}

// Prefix mounts the feature on the root router.
func (f *Feature) Prefix() string {
	return ""
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(r fiber.Router) error {
	return f.handler.RegisterRoutes(r)
}
