package doctor

import (
	"nemoris-api/feature/clinic"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Prefix is the URL prefix of the doctor route group.
const Prefix = "/api/doctor"

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new doctor feature.
func NewFeature(handles clinic.Handles, logger *zap.Logger) *Feature {
	svc := NewService(handles, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "doctor"
}

// Prefix returns the mount prefix.
func (f *Feature) Prefix() string {
	return Prefix
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(r fiber.Router) error {
	f.handler.RegisterRoutes(r)
	return nil
}
