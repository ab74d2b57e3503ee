package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quiz-practice/internal/domain"
	"quiz-practice/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newErrorApp(err error) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Get("/", func(c *fiber.Ctx) error { return err })
	return app
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestErrorHandler_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", domain.NewQuestionNotFoundError("01Q"), http.StatusNotFound, "NOT_FOUND"},
		{"extraction", domain.NewExtractionError("PDF has no extractable text layer", nil), http.StatusInternalServerError, "EXTRACTION_ERROR"},
		{"invocation", domain.NewInvocationError(errors.New("timeout")), http.StatusBadGateway, "INVOCATION_ERROR"},
		{"no questions", domain.NewNoQuestionsError("技術"), http.StatusInternalServerError, "NO_QUESTIONS_GENERATED"},
		{"persistence", domain.NewPersistenceError("Failed to record answer", nil), http.StatusInternalServerError, "PERSISTENCE_ERROR"},
		{"conflict", domain.NewConflictError("scheduler is already running"), http.StatusConflict, "CONFLICT"},
		{"rate limited", domain.NewRateLimitedError(), http.StatusTooManyRequests, "RATE_LIMITED"},
		{"invalid input", domain.NewInvalidInputError("bad body"), http.StatusBadRequest, "INVALID_INPUT"},
		{"fiber", fiber.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "HTTP_ERROR"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := newErrorApp(tt.err).Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			body := decodeBody(t, resp)
			assert.Equal(t, tt.wantCode, body["code"])
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestErrorHandler_NoQuestionsMessage(t *testing.T) {
	resp, err := newErrorApp(domain.NewNoQuestionsError("管理")).Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, "Failed to generate questions for category: 管理", decodeBody(t, resp)["error"])
}

func TestErrorHandler_ValidationErrors(t *testing.T) {
	verrs := domain.ValidationErrors{domain.NewMissingFieldError("category")}
	resp, err := newErrorApp(verrs).Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	assert.Len(t, body["errors"], 1)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(60, 2)
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return clock }

	assert.True(t, rl.allow("10.0.0.1"))
	assert.True(t, rl.allow("10.0.0.1"))
	assert.False(t, rl.allow("10.0.0.1"), "burst exhausted")
	assert.True(t, rl.allow("10.0.0.2"), "limits are per client")

	clock = clock.Add(time.Second)
	assert.True(t, rl.allow("10.0.0.1"), "one token per second at 60/min")

	clock = clock.Add(visitorExpiry + time.Second)
	rl.allow("10.0.0.3")
	assert.NotContains(t, rl.visitors, "10.0.0.2", "idle clients are forgotten")
}

func TestRateLimiter_Handler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Post("/generate", NewRateLimiter(1, 1).Handler(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/generate", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/generate", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestValidateCategoryQuery(t *testing.T) {
	vm := NewValidationMiddleware(validation.NewValidator([]string{"技術"}, 50))
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Get("/questions", vm.ValidateCategoryQuery(), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(LocalsCategory).(string))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/questions?category=abc", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "abc", string(body))

	long := make([]byte, 70)
	for i := range long {
		long[i] = 'x'
	}
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/questions?category="+string(long), nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRequestLogger_PassesThrough(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Use(RequestLogger())
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusNoContent) })
	app.Get("/missing", func(c *fiber.Ctx) error { return domain.NewNotFoundError("gone") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
