package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/grafana/pyroscope-go"

	"github.com/institute/backend/internal/infrastructure/logger"
)

// Profiling label names
const (
	ProfilingLabelRoute      = "route"
	ProfilingLabelMethod     = "method"
	ProfilingLabelController = "controller"
	ProfilingLabelCenterID   = "center_id"
)

// Profiling tags CPU samples taken while a request runs with its route,
// method, controller and center, so profiles can be sliced per endpoint.
func Profiling(enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			c.Next()
			return
		}

		pyroscope.TagWrapper(c.Request.Context(), pyroscope.Labels(profilingLabels(c, route)...), func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

func profilingLabels(c *gin.Context, route string) []string {
	labels := []string{
		ProfilingLabelRoute, route,
		ProfilingLabelMethod, c.Request.Method,
	}
	if controller := controllerFromRoute(route); controller != "" {
		labels = append(labels, ProfilingLabelController, controller)
	}
	if centerID := c.GetString(logger.GinCenterIDKey); centerID != "" {
		labels = append(labels, ProfilingLabelCenterID, centerID)
	}
	return labels
}

// controllerFromRoute returns the first resource segment after the API version.
// "/api/v1/fees/payments/:id" -> "fees"
func controllerFromRoute(route string) string {
	for _, segment := range strings.Split(strings.Trim(route, "/"), "/") {
		if segment == "" || segment == "api" || isVersionSegment(segment) {
			continue
		}
		if strings.HasPrefix(segment, ":") || strings.HasPrefix(segment, "*") {
			return ""
		}
		return segment
	}
	return ""
}

func isVersionSegment(segment string) bool {
	if len(segment) < 2 || segment[0] != 'v' {
		return false
	}
	for _, r := range segment[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
