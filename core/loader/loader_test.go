package loader_test

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"nemoris-api/core/loader"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFeature struct {
	name    string
	prefix  string
	enabled bool
	loadErr error
}

func (s stubFeature) Name() string    { return s.name }
func (s stubFeature) Prefix() string  { return s.prefix }
func (s stubFeature) IsEnabled() bool { return s.enabled }

func (s stubFeature) Load(r fiber.Router) error {
	if s.loadErr != nil {
		return s.loadErr
	}
	r.Get("/*", func(c *fiber.Ctx) error {
		return c.SendString(s.name + ":" + c.Params("*"))
	})
	return nil
}

func get(t *testing.T, app *fiber.App, path string) (int, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestManager_LoadAll(t *testing.T) {
	mgr := loader.NewManager()
	mgr.Register(stubFeature{name: "user", prefix: "/api/user", enabled: true})
	mgr.Register(stubFeature{name: "admin", prefix: "/api/admin/", enabled: true})
	mgr.Register(stubFeature{name: "off", prefix: "/api/off", enabled: false})

	app := fiber.New()
	require.NoError(t, mgr.LoadAll(app))

	status, body := get(t, app, "/api/user/profile/7")
	assert.Equal(t, 200, status)
	assert.Equal(t, "user:profile/7", body)

	status, body = get(t, app, "/api/admin/dashboard")
	assert.Equal(t, 200, status)
	assert.Equal(t, "admin:dashboard", body)

	status, _ = get(t, app, "/api/off/anything")
	assert.Equal(t, 404, status)

	assert.Len(t, mgr.Features(), 3)
}

func TestManager_RootFeature(t *testing.T) {
	mgr := loader.NewManager()
	mgr.Register(stubFeature{name: "root", prefix: "", enabled: true})

	app := fiber.New()
	require.NoError(t, mgr.LoadAll(app))

	status, body := get(t, app, "/status")
	assert.Equal(t, 200, status)
	assert.Equal(t, "root:status", body)
}

func TestManager_RejectsOverlappingPrefixes(t *testing.T) {
	tests := []struct {
		name string
		a, b string
	}{
		{"Duplicate", "/api/user", "/api/user"},
		{"Nested", "/api", "/api/user"},
		{"NestedReverse", "/api/user/admin", "/api/user"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mgr := loader.NewManager()
			mgr.Register(stubFeature{name: "a", prefix: tt.a, enabled: true})
			mgr.Register(stubFeature{name: "b", prefix: tt.b, enabled: true})
			assert.ErrorContains(t, mgr.LoadAll(fiber.New()), "overlaps")
		})
	}
}

func TestManager_AllowsSiblingPrefixes(t *testing.T) {
	mgr := loader.NewManager()
	mgr.Register(stubFeature{name: "user", prefix: "/api/user", enabled: true})
	mgr.Register(stubFeature{name: "users", prefix: "/api/users", enabled: true})
	assert.NoError(t, mgr.LoadAll(fiber.New()))
}

func TestManager_RejectsRelativePrefix(t *testing.T) {
	mgr := loader.NewManager()
	mgr.Register(stubFeature{name: "bad", prefix: "api/user", enabled: true})
	assert.ErrorContains(t, mgr.LoadAll(fiber.New()), "must start with")
}

func TestManager_LoadError(t *testing.T) {
	loadErr := errors.New("boom")
	mgr := loader.NewManager()
	mgr.Register(stubFeature{name: "broken", prefix: "/api/x", enabled: true, loadErr: loadErr})

	err := mgr.LoadAll(fiber.New())
	assert.ErrorIs(t, err, loadErr)
	assert.ErrorContains(t, err, "broken")
}
