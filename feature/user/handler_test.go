package user_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"nemoris-api/core/bootstrap"
	"nemoris-api/core/middleware/jsonbody"
	"nemoris-api/feature/clinic"
	"nemoris-api/feature/clinic/clinictest"
	"nemoris-api/feature/user"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	db := clinictest.NewDB(t)
	require.NoError(t, db.Create(&clinic.Patient{Name: "Ada", Email: "ada@example.com"}).Error)
	require.NoError(t, db.Create(&[]clinic.Doctor{
		{Name: "Dr. Grey", Email: "grey@example.com", Available: true},
		{Name: "Dr. House", Email: "house@example.com", Available: false},
	}).Error)

	app := fiber.New()
	app.Use(jsonbody.New())
	f := user.NewFeature(bootstrap.Static(db, nil), zap.NewNop())
	require.NoError(t, f.Load(app.Group(f.Prefix())))
	return app, db
}

func decode(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestHandleListDoctors(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/user/doctors", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := decode(t, resp.Body)
	doctors, ok := body["doctors"].([]any)
	require.True(t, ok)
	require.Len(t, doctors, 1)
	assert.Equal(t, "Dr. Grey", doctors[0].(map[string]any)["name"])
}

func TestHandleGetProfile(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/user/profile/1", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	profile := decode(t, resp.Body)["profile"].(map[string]any)
	assert.Equal(t, "ada@example.com", profile["email"])

	resp, err = app.Test(httptest.NewRequest("GET", "/api/user/profile/99", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/user/profile/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleUpdateProfile(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"Valid", "/api/user/profile/1", `{"phone":"555-0100","dob":"1990-04-01"}`, 200},
		{"EmptyName", "/api/user/profile/1", `{"name":"  "}`, 400},
		{"BadDOB", "/api/user/profile/1", `{"dob":"01/04/1990"}`, 400},
		{"Missing", "/api/user/profile/99", `{"phone":"1"}`, 404},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, db := setupTestApp(t)

			req := httptest.NewRequest("PUT", tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			if tt.status == 200 {
				var p clinic.Patient
				require.NoError(t, db.First(&p, 1).Error)
				assert.Equal(t, "555-0100", p.Phone)
				assert.Equal(t, "1990-04-01", p.DOB)
				assert.Equal(t, "Ada", p.Name)
			}
		})
	}
}

func TestDatabaseUnavailable(t *testing.T) {
	app := fiber.New()
	f := user.NewFeature(bootstrap.Static(nil, nil), zap.NewNop())
	require.NoError(t, f.Load(app.Group(f.Prefix())))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/user/doctors", nil))
	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)
}

func TestFeature(t *testing.T) {
	f := user.NewFeature(bootstrap.Static(nil, nil), zap.NewNop())
	assert.Equal(t, "user", f.Name())
	assert.Equal(t, "/api/user", f.Prefix())
	assert.True(t, f.IsEnabled())
}
