package status_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"nemoris-api/feature/status"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lastUpdated = regexp.MustCompile(`Last Updated: <time>([^<]+)</time>`)

func setupApp(t *testing.T, now func() time.Time) *fiber.App {
	t.Helper()
	app := fiber.New()
	require.NoError(t, status.NewFeature(now).Load(app))
	return app
}

func fetch(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestHandleWelcome(t *testing.T) {
	app := setupApp(t, nil)

	requests := []*http.Request{
		httptest.NewRequest("GET", "/", nil),
		httptest.NewRequest("GET", "/?lang=de&x=1", nil),
		httptest.NewRequest("GET", "/", strings.NewReader("ignored body")),
	}
	requests[2].Header.Set("Authorization", "Bearer nothing")

	for _, req := range requests {
		resp, body := fetch(t, app, req)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, status.Welcome, body)
	}
}

func TestHandleStatus_LiveClock(t *testing.T) {
	app := setupApp(t, nil)

	before := time.Now()
	resp, body := fetch(t, app, httptest.NewRequest("GET", "/status", nil))

	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, body, "All Systems Operational")
	assert.True(t, strings.HasPrefix(body, "<!DOCTYPE html>"))

	m := lastUpdated.FindStringSubmatch(body)
	require.Len(t, m, 2)
	stamp, err := http.ParseTime(m[1])
	require.NoError(t, err)
	assert.WithinDuration(t, before, stamp, 3*time.Second)
}

func TestHandleStatus_OnlyTimestampChanges(t *testing.T) {
	ticks := []time.Time{
		time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC),
		time.Date(2026, 10, 19, 9, 30, 5, 0, time.UTC),
	}
	i := 0
	app := setupApp(t, func() time.Time {
		now := ticks[i]
		i++
		return now
	})

	_, first := fetch(t, app, httptest.NewRequest("GET", "/status", nil))
	_, second := fetch(t, app, httptest.NewRequest("GET", "/status", nil))

	firstStamp := lastUpdated.FindStringSubmatch(first)[1]
	secondStamp := lastUpdated.FindStringSubmatch(second)[1]
	assert.Equal(t, "Mon, 19 Oct 2026 09:30:00 GMT", firstStamp)
	assert.Equal(t, "Mon, 19 Oct 2026 09:30:05 GMT", secondStamp)

	assert.Equal(t,
		strings.Replace(first, firstStamp, "", 1),
		strings.Replace(second, secondStamp, "", 1),
	)
}

func TestHandleStatus_StaticIndicators(t *testing.T) {
	app := setupApp(t, nil)
	_, body := fetch(t, app, httptest.NewRequest("GET", "/status", nil))

	for _, want := range []string{
		"Database Server:", "Running Perfectly",
		"Database Shards:", "Kubernetes Clusters:", "Backend Servers:", "Pods:",
		"99.98%", "None Detected", "40ms",
		`<div class="status-value alert">No recent downtime</div>`,
	} {
		assert.Contains(t, body, want)
	}
}

func TestFormatTimestamp(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	got := status.FormatTimestamp(time.Date(2026, 1, 2, 5, 4, 5, 0, loc))
	assert.Equal(t, "Fri, 02 Jan 2026 03:04:05 GMT", got)
}

func TestFeature(t *testing.T) {
	f := status.NewFeature(nil)
	assert.Equal(t, "status", f.Name())
	assert.Equal(t, "", f.Prefix())
	assert.True(t, f.IsEnabled())
}
