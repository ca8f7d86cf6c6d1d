package doctor

import (
	"fmt"

	"nemoris-api/core/logger"
	"nemoris-api/core/middleware/jsonbody"
	"nemoris-api/feature/clinic"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the doctor route group.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the doctor routes relative to the group prefix.
func (h *Handler) RegisterRoutes(r fiber.Router) {
	r.Get("/list", h.HandleList)
	r.Get("/profile/:id", h.HandleProfile)
	r.Post("/change-availability", h.HandleChangeAvailability)
}

// HandleList lists all doctors.
// @Summary List Doctors
// @Tags doctor
// @Produce json
// @Success 200 {object} map[string]interface{} "Doctors"
// @Failure 503 {object} map[string]string "Database unavailable"
// @Router /api/doctor/list [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	doctors, err := h.service.List(c.Context())
	if err != nil {
		return clinic.Respond(c, h.service.logger, err)
	}
	return c.JSON(fiber.Map{"doctors": doctors})
}

// HandleProfile returns one doctor.
// @Summary Get Doctor Profile
// @Tags doctor
// @Produce json
// @Param id path int true "Doctor ID"
// @Success 200 {object} map[string]interface{} "Profile"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /api/doctor/profile/{id} [get]
func (h *Handler) HandleProfile(c *fiber.Ctx) error {
	id, err := clinic.ParseID(c, "id")
	if err != nil {
		return clinic.Respond(c, h.service.logger, err)
	}

	doc, err := h.service.Profile(c.Context(), id)
	if err != nil {
		return clinic.Respond(c, h.service.logger, err)
	}
	return c.JSON(fiber.Map{"profile": doc})
}

// HandleChangeAvailability toggles a doctor's availability.
// @Summary Change Availability
// @Tags doctor
// @Accept json
// @Produce json
// @Param request body ChangeAvailabilityRequest true "Doctor to toggle"
// @Success 200 {object} map[string]interface{} "Updated doctor"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /api/doctor/change-availability [post]
func (h *Handler) HandleChangeAvailability(c *fiber.Ctx) error {
	var req ChangeAvailabilityRequest
	if err := jsonbody.Bind(c, &req); err != nil {
		return clinic.Respond(c, h.service.logger, fmt.Errorf("%w: %v", clinic.ErrInvalid, err))
	}

	doc, err := h.service.ChangeAvailability(c.Context(), req)
	if err != nil {
		return clinic.Respond(c, h.service.logger, err)
	}

	logger.WithRayID(h.service.logger, c).Info("Doctor availability changed",
		zap.Uint("doctor_id", doc.ID),
		zap.Bool("available", doc.Available),
	)
	return c.JSON(fiber.Map{"doctor": doc})
}
