package middleware

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/institute/backend/internal/infrastructure/logger"
)

func TestControllerFromRoute(t *testing.T) {
	tests := []struct{ route, want string }{
		{"/api/v1/fees/payments/:id", "fees"},
		{"/api/v1/certifications/verify/:code", "certifications"},
		{"/api/v2/exams", "exams"},
		{"/health", "health"},
		{"/api/v1/:id", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, controllerFromRoute(tt.route), tt.route)
	}
}

func TestIsVersionSegment(t *testing.T) {
	assert.True(t, isVersionSegment("v1"))
	assert.True(t, isVersionSegment("v12"))
	assert.False(t, isVersionSegment("v"))
	assert.False(t, isVersionSegment("vx"))
	assert.False(t, isVersionSegment("exams"))
}

func TestProfilingLabels(t *testing.T) {
	var labels []string
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(logger.GinCenterIDKey, "center-1")
		c.Next()
	})
	router.GET("/api/v1/exams/:id", func(c *gin.Context) {
		labels = profilingLabels(c, c.FullPath())
		okHandler(c)
	})

	serve(router, http.MethodGet, "/api/v1/exams/7", nil)
	assert.Equal(t, []string{
		ProfilingLabelRoute, "/api/v1/exams/:id",
		ProfilingLabelMethod, http.MethodGet,
		ProfilingLabelController, "exams",
		ProfilingLabelCenterID, "center-1",
	}, labels)
}

func TestProfiling(t *testing.T) {
	for _, enabled := range []bool{false, true} {
		router := gin.New()
		router.Use(Profiling(enabled))
		router.GET("/api/v1/courses", okHandler)
		assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/api/v1/courses", nil).Code)
		assert.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/nowhere", nil).Code)
	}
}
