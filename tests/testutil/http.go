package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/institute/backend/internal/interfaces/http/dto"
	"github.com/institute/backend/internal/interfaces/http/middleware"
)

// Envelope is the decoded API response with typed data
type Envelope[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data"`
	Error   *dto.ErrorInfo `json:"error"`
	Meta    *dto.Meta      `json:"meta"`
}

// APIClient sends requests to an engine on behalf of one center
type APIClient struct {
	t        *testing.T
	engine   *gin.Engine
	basePath string
	CenterID uuid.UUID
}

// NewAPIClient creates a client for the /api/v1 routes of engine
func NewAPIClient(t *testing.T, engine *gin.Engine, centerID uuid.UUID) *APIClient {
	return &APIClient{t: t, engine: engine, basePath: "/api/v1", CenterID: centerID}
}

// ForCenter returns a client sharing the engine but acting for another center
func (c *APIClient) ForCenter(centerID uuid.UUID) *APIClient {
	clone := *c
	clone.CenterID = centerID
	return &clone
}

// Do sends body as JSON. A string body is sent verbatim.
func (c *APIClient) Do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	case []byte:
		payload = b
	default:
		raw, err := json.Marshal(b)
		require.NoError(c.t, err, "Failed to marshal request body")
		payload = raw
	}

	req := httptest.NewRequest(method, c.basePath+path, bytes.NewReader(payload))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.CenterID != uuid.Nil {
		req.Header.Set(middleware.CenterHeaderKey, c.CenterID.String())
	}
	w := httptest.NewRecorder()
	c.engine.ServeHTTP(w, req)
	return w
}

// Get is Do without a body
func (c *APIClient) Get(path string) *httptest.ResponseRecorder {
	c.t.Helper()
	return c.Do(http.MethodGet, path, nil)
}

// Post is Do with POST
func (c *APIClient) Post(path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	return c.Do(http.MethodPost, path, body)
}

// Decode parses the envelope of a response
func Decode[T any](t *testing.T, w *httptest.ResponseRecorder) Envelope[T] {
	t.Helper()
	var env Envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

// RequireData asserts the status and returns the decoded data
func RequireData[T any](t *testing.T, w *httptest.ResponseRecorder, status int) T {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
	env := Decode[T](t, w)
	require.True(t, env.Success, w.Body.String())
	return env.Data
}

// AssertAPIError asserts the status and the error code of a failed response
func AssertAPIError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
	env := Decode[any](t, w)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error, "Expected error object in response")
	assert.Equal(t, code, env.Error.Code)
}
