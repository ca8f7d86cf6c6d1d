package user

import (
	"fmt"

	"nemoris-api/core/logger"
	"nemoris-api/core/middleware/jsonbody"
	"nemoris-api/feature/clinic"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for the user route group.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the user routes relative to the group prefix.
func (h *Handler) RegisterRoutes(r fiber.Router) {
	r.Get("/doctors", h.HandleListDoctors)
	r.Get("/profile/:id", h.HandleGetProfile)
	r.Put("/profile/:id", h.HandleUpdateProfile)
}

// HandleListDoctors lists bookable doctors.
// @Summary List Available Doctors
// @Tags user
// @Produce json
// @Success 200 {object} map[string]interface{} "Doctors"
// @Failure 503 {object} map[string]string "Database unavailable"
// @Router /api/user/doctors [get]
func (h *Handler) HandleListDoctors(c *fiber.Ctx) error {
	doctors, err := h.service.ListDoctors(c.Context())
	if err != nil {
		return clinic.Respond(c, h.service.logger, err)
	}
	return c.JSON(fiber.Map{"doctors": doctors})
}

// HandleGetProfile returns a patient profile.
// @Summary Get Profile
// @Tags user
// @Produce json
// @Param id path int true "Patient ID"
// @Success 200 {object} map[string]interface{} "Profile"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /api/user/profile/{id} [get]
func (h *Handler) HandleGetProfile(c *fiber.Ctx) error {
	id, err := clinic.ParseID(c, "id")
	if err != nil {
		return clinic.Respond(c, h.service.logger, err)
	}

	profile, err := h.service.GetProfile(c.Context(), id)
	if err != nil {
		return clinic.Respond(c, h.service.logger, err)
	}
	return c.JSON(fiber.Map{"profile": profile})
}

// HandleUpdateProfile updates a patient profile.
// @Summary Update Profile
// @Tags user
// @Accept json
// @Produce json
// @Param id path int true "Patient ID"
// @Param profile body UpdateProfileRequest true "Fields to change"
// @Success 200 {object} map[string]interface{} "Updated profile"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /api/user/profile/{id} [put]
func (h *Handler) HandleUpdateProfile(c *fiber.Ctx) error {
	id, err := clinic.ParseID(c, "id")
	if err != nil {
		return clinic.Respond(c, h.service.logger, err)
	}

	var req UpdateProfileRequest
	if err := jsonbody.Bind(c, &req); err != nil {
		return clinic.Respond(c, h.service.logger, fmt.Errorf("%w: %v", clinic.ErrInvalid, err))
	}

	profile, err := h.service.UpdateProfile(c.Context(), id, req)
	if err != nil {
		return clinic.Respond(c, h.service.logger, err)
	}

	logger.WithRayID(h.service.logger, c).Info("Patient profile updated")
	return c.JSON(fiber.Map{"profile": profile})
}
