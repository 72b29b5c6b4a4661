package testutil

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/institute/backend/internal/interfaces/http/dto"
	"github.com/institute/backend/internal/interfaces/http/middleware"
)

func TestNewTestUUID(t *testing.T) {
	assert.Equal(t, NewTestUUID("seed"), NewTestUUID("seed"))
	assert.NotEqual(t, NewTestUUID("seed"), NewTestUUID("other"))
	assert.NotEqual(t, TestCenterID(), OtherCenterID())
}

func TestContextWithTimeout(t *testing.T) {
	ctx := ContextWithTimeout(t, 10*time.Millisecond)
	_, ok := ctx.Deadline()
	assert.True(t, ok)
	<-ctx.Done()
	assert.Error(t, ctx.Err())
}

func TestRecordingPublisher(t *testing.T) {
	p := &RecordingPublisher{}
	centerID := TestCenterID()
	require.NoError(t, p.Publish(t.Context(), NewTestEvent("FeeCreated", centerID), NewTestEvent("FeeCancelled", centerID)))
	assert.Equal(t, []string{"FeeCreated", "FeeCancelled"}, p.EventTypes())
	assert.Len(t, p.Events(), 2)
}

func TestAPIClient(t *testing.T) {
	engine := gin.New()
	engine.GET("/api/v1/echo", func(c *gin.Context) {
		center := c.GetHeader(middleware.CenterHeaderKey)
		if center == "" {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("ERR_BAD_REQUEST", "center missing"))
			return
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse(map[string]string{"center": center}))
	})
	engine.POST("/api/v1/echo", func(c *gin.Context) {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("ERR_BAD_REQUEST", err.Error()))
			return
		}
		c.JSON(http.StatusCreated, dto.NewSuccessResponse(body))
	})

	client := NewAPIClient(t, engine, TestCenterID())

	data := RequireData[map[string]string](t, client.Get("/echo"), http.StatusOK)
	assert.Equal(t, TestCenterID().String(), data["center"])

	other := client.ForCenter(OtherCenterID())
	data = RequireData[map[string]string](t, other.Get("/echo"), http.StatusOK)
	assert.Equal(t, OtherCenterID().String(), data["center"])

	AssertAPIError(t, client.ForCenter(uuid.Nil).Get("/echo"), http.StatusBadRequest, "ERR_BAD_REQUEST")

	posted := RequireData[map[string]any](t, client.Post("/echo", map[string]any{"name": "Meera"}), http.StatusCreated)
	assert.Equal(t, "Meera", posted["name"])
	AssertAPIError(t, client.Post("/echo", "{broken"), http.StatusBadRequest, "ERR_BAD_REQUEST")
}
