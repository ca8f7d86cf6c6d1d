package admin

import (
	"fmt"

	"nemoris-api/core/logger"
	"nemoris-api/core/middleware/jsonbody"
	"nemoris-api/feature/clinic"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the admin route group.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the admin routes relative to the group prefix.
func (h *Handler) RegisterRoutes(r fiber.Router) {
	r.Post("/add-doctor", h.HandleAddDoctor)
	r.Get("/all-doctors", h.HandleAllDoctors)
	r.Get("/dashboard", h.HandleDashboard)
	r.Get("/media", h.HandleListMedia)
	r.Get("/media/audit", h.HandleAuditMedia)
	r.Post("/media/reconcile", h.HandleReconcileMedia)
}

// HandleAddDoctor creates a doctor.
// @Summary Add Doctor
// @Tags admin
// @Accept json
// @Produce json
// @Param doctor body AddDoctorRequest true "Doctor"
// @Success 201 {object} map[string]interface{} "Created doctor"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 409 {object} map[string]string "Email already registered"
// @Router /api/admin/add-doctor [post]
func (h *Handler) HandleAddDoctor(c *fiber.Ctx) error {
	var req AddDoctorRequest
	if err := jsonbody.Bind(c, &req); err != nil {
		return clinic.Respond(c, h.service.logger, fmt.Errorf("%w: %v", clinic.ErrInvalid, err))
	}

	doc, err := h.service.AddDoctor(c.Context(), req)
	if err != nil {
		return clinic.Respond(c, h.service.logger, err)
	}

	logger.WithRayID(h.service.logger, c).Info("Doctor added", zap.Uint("doctor_id", doc.ID))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"doctor": doc})
}

// HandleAllDoctors lists every doctor.
// @Summary All Doctors
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{} "Doctors"
// @Router /api/admin/all-doctors [get]
func (h *Handler) HandleAllDoctors(c *fiber.Ctx) error {
	doctors, err := h.service.AllDoctors(c.Context())
	if err != nil {
		return clinic.Respond(c, h.service.logger, err)
	}
	return c.JSON(fiber.Map{"doctors": doctors})
}

// HandleDashboard returns directory counts.
// @Summary Admin Dashboard
// @Tags admin
// @Produce json
// @Success 200 {object} Dashboard "Dashboard"
// @Failure 503 {object} map[string]string "Database unavailable"
// @Router /api/admin/dashboard [get]
func (h *Handler) HandleDashboard(c *fiber.Ctx) error {
	d, err := h.service.Dashboard(c.Context())
	if err != nil {
		return clinic.Respond(c, h.service.logger, err)
	}
	return c.JSON(d)
}

// HandleListMedia lists stored media with download URLs.
// @Summary List Media
// @Tags admin
// @Produce json
// @Param prefix query string false "Key prefix, e.g. 'doctors/'"
// @Success 200 {object} MediaListing "Media objects"
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Router /api/admin/media [get]
func (h *Handler) HandleListMedia(c *fiber.Ctx) error {
	listing, err := h.service.ListMedia(c.Context(), c.Query("prefix"))
	if err != nil {
		return clinic.Respond(c, h.service.logger, err)
	}
	return c.JSON(listing)
}

// HandleAuditMedia reports image references without objects and objects without references.
// @Summary Audit Media
// @Tags admin
// @Produce json
// @Param prefix query string false "Key prefix"
// @Param purge query bool false "Include the repair actions"
// @Success 200 {object} reconcile.Plan "Audit"
// @Failure 503 {object} map[string]string "Database or storage unavailable"
// @Router /api/admin/media/audit [get]
func (h *Handler) HandleAuditMedia(c *fiber.Ctx) error {
	plan, err := h.service.AuditMedia(c.Context(), c.Query("prefix"), c.QueryBool("purge"))
	if err != nil {
		return clinic.Respond(c, h.service.logger, err)
	}
	return c.JSON(plan)
}

// HandleReconcileMedia repairs the inconsistencies an audit finds.
// @Summary Reconcile Media
// @Tags admin
// @Accept json
// @Produce json
// @Param request body ReconcileMediaRequest true "Scope and confirmation"
// @Success 200 {object} ReconcileMediaResult "Plan and executed count"
// @Failure 400 {object} map[string]string "Not confirmed"
// @Failure 503 {object} map[string]string "Database or storage unavailable"
// @Router /api/admin/media/reconcile [post]
func (h *Handler) HandleReconcileMedia(c *fiber.Ctx) error {
	var req ReconcileMediaRequest
	if err := jsonbody.Bind(c, &req); err != nil {
		return clinic.Respond(c, h.service.logger, fmt.Errorf("%w: %v", clinic.ErrInvalid, err))
	}

	res, err := h.service.ReconcileMedia(c.Context(), req)
	if err != nil {
		return clinic.Respond(c, h.service.logger, err)
	}

	logger.WithRayID(h.service.logger, c).Info("Media reconciled",
		zap.Int("executed", res.Executed),
		zap.Bool("dry_run", req.DryRun),
	)
	return c.JSON(res)
}
