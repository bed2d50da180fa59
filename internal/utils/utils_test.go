package utils

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"movie-collection/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Inception  ", "Inception"},
		{"<b>Bold</b> move", "Bold move"},
		{"<script>alert(1)</script>Heat", "Heat"},
		{"Tom & Jerry", "Tom & Jerry"},
		{"   ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Sanitize(tt.in), tt.in)
	}
}

func TestSanitizeEncodedMarkup(t *testing.T) {
	for _, in := range []string{
		"&lt;script&gt;alert(1)&lt;/script&gt;Heat",
		"&amp;lt;img src=x onerror=alert(1)&amp;gt;Heat",
		"&#60;b&#62;Heat&#60;/b&#62;",
	} {
		got := Sanitize(in)
		assert.NotContains(t, got, "<", in)
		assert.Contains(t, got, "Heat", in)
	}
	assert.Equal(t, "a < b", Sanitize("a &lt; b"))
}

func TestCreatePaginationMeta(t *testing.T) {
	meta := CreatePaginationMeta(models.NewPageRequest(2, 10), 25)
	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, int64(25), meta.TotalItems)
	assert.Equal(t, 10, meta.ItemsPerPage)
	assert.True(t, meta.HasNextPage)
	assert.True(t, meta.HasPrevPage)

	empty := CreatePaginationMeta(models.NewPageRequest(1, 10), 0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNextPage)
	assert.False(t, empty.HasPrevPage)

	search := CreateSearchPaginationMeta(models.NewPageRequest(3, 10), 25)
	assert.Equal(t, 3, search.TotalPages)
	assert.False(t, search.HasMoreResults)
}

func TestFormatTimestamp(t *testing.T) {
	require.NoError(t, SetTimezone("UTC"))
	ts := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	assert.Equal(t, "2024-05-06 07:08:09", FormatTimestamp(ts))

	assert.Error(t, SetTimezone("Nowhere/Invalid"))
}

func decode(t *testing.T, app *fiber.App, path string) (int, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	return resp.StatusCode, out
}

func TestResponses(t *testing.T) {
	app := fiber.New()
	app.Get("/ok", func(c *fiber.Ctx) error {
		return SuccessResponse(c, fiber.StatusCreated, "Created", fiber.Map{"id": 1})
	})
	app.Get("/bad", func(c *fiber.Ctx) error {
		return ErrorWithDetailsResponse(c, fiber.StatusBadRequest, "Missing required fields: title",
			fiber.Map{"missing_fields": []string{"title"}})
	})
	app.Get("/db", DatabaseUnavailableResponse)

	status, body := decode(t, app, "/ok")
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Created", body["message"])
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`, body["timestamp"])
	assert.NotContains(t, body, "code")

	status, body = decode(t, app, "/bad")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, float64(400), body["code"])
	assert.Contains(t, body, "details")
	assert.NotContains(t, body, "data")

	status, body = decode(t, app, "/db")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, DBConnectionFailedMessage, body["message"])
	assert.Equal(t, DBConnectionFailedCode, body["error_code"])
}
