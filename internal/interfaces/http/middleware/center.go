package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/institute/backend/internal/infrastructure/logger"
	"github.com/institute/backend/internal/interfaces/http/dto"
)

// CenterHeaderKey selects the center a request operates on
const CenterHeaderKey = "X-Center-ID"

// CenterScopeConfig holds configuration for the center scope middleware
type CenterScopeConfig struct {
	// DefaultCenterID is used when the request carries no header; uuid.Nil makes the header mandatory
	DefaultCenterID uuid.UUID
	// SkipPaths are exact paths or path prefixes that need no center
	SkipPaths []string
}

// DefaultCenterScopeConfig returns the default configuration
func DefaultCenterScopeConfig(defaultCenterID uuid.UUID) CenterScopeConfig {
	return CenterScopeConfig{
		DefaultCenterID: defaultCenterID,
		SkipPaths: []string{
			"/health",
			"/swagger",
			"/api/v1/fees/payments/gateway/notification",
			"/api/v1/certifications/verify",
		},
	}
}

// CenterScope resolves the center ID of the request from X-Center-ID,
// falling back to the configured default center
func CenterScope(cfg CenterScopeConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range cfg.SkipPaths {
			if path == skip || strings.HasPrefix(path, skip+"/") {
				c.Next()
				return
			}
		}

		centerID := cfg.DefaultCenterID
		if raw := strings.TrimSpace(c.GetHeader(CenterHeaderKey)); raw != "" {
			parsed, err := uuid.Parse(raw)
			if err != nil || parsed == uuid.Nil {
				abortWithError(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "Invalid center ID format")
				return
			}
			centerID = parsed
		}
		if centerID == uuid.Nil {
			abortWithError(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "Center identification required")
			return
		}

		c.Set(logger.GinCenterIDKey, centerID.String())
		c.Next()
	}
}

// GetCenterID returns the center ID resolved by CenterScope, or uuid.Nil
func GetCenterID(c *gin.Context) uuid.UUID {
	raw := c.GetString(logger.GinCenterIDKey)
	if raw == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}
