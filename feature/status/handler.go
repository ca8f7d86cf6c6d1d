package status

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
)

//go:embed views/*.html
var views embed.FS

const statusTemplate = "status"

// Handler serves the welcome text and the status page.
type Handler struct {
	engine *html.Engine
	now    func() time.Time
}

// NewHandler creates a handler reading the clock through now; nil uses time.Now.
func NewHandler(now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	sub, err := fs.Sub(views, "views")
	if err != nil {
		// The embed pattern above guarantees the directory exists.
		panic(err)
	}
	return &Handler{
		engine: html.NewFileSystem(http.FS(sub), ".html"),
		now:    now,
	}
}

// RegisterRoutes loads the templates and registers the root routes.
func (h *Handler) RegisterRoutes(r fiber.Router) error {
	if err := h.engine.Load(); err != nil {
		return fmt.Errorf("failed to load status templates: %w", err)
	}
	r.Get("/", h.HandleWelcome)
	r.Get("/status", h.HandleStatus)
	return nil
}

// HandleWelcome returns the fixed welcome message.
// @Summary Welcome
// @Description Returns a fixed plain-text greeting.
// @Tags status
// @Produce plain
// @Success 200 {string} string "Welcome to the Nemoris API platform!"
// @Router / [get]
func (h *Handler) HandleWelcome(c *fiber.Ctx) error {
	return c.SendString(Welcome)
}

// HandleStatus renders the status page.
// @Summary System Status
// @Description Returns an HTML status page. Indicators are static; only the timestamp changes.
// @Tags status
// @Produce html
// @Success 200 {string} string "HTML document"
// @Router /status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.engine.Render(&buf, statusTemplate, NewReport(h.now())); err != nil {
		return fmt.Errorf("failed to render status page: %w", err)
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}
