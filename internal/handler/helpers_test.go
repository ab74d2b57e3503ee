package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"quiz-practice/internal/config"
	"quiz-practice/internal/middleware"
	"quiz-practice/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

var testCategories = []string{"技術", "管理", "其他"}

func testGenerationConfig() config.GenerationConfig {
	return config.GenerationConfig{
		DefaultCount:    15,
		MaxCount:        50,
		SaveConcurrency: 2,
		Categories:      testCategories,
	}
}

func testValidator() *validation.Validator {
	return validation.NewValidator(testCategories, 50)
}

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
