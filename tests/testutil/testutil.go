// Package testutil provides helpers shared by the application and
// integration tests: repository mocks, an event recorder and an HTTP client
// for the API envelope.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// NewTestUUID generates a deterministic UUID from seed
func NewTestUUID(seed string) uuid.UUID {
	namespace := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	return uuid.NewSHA1(namespace, []byte(seed))
}

// TestCenterID returns the standard center ID for tests
func TestCenterID() uuid.UUID {
	return NewTestUUID("test-center")
}

// OtherCenterID returns a second center for isolation checks
func OtherCenterID() uuid.UUID {
	return NewTestUUID("other-center")
}

// ContextWithTimeout creates a context that is cancelled when the test ends
func ContextWithTimeout(t *testing.T, timeout time.Duration) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}
