package handler

import "github.com/institute/backend/internal/interfaces/http/dto"

// Swagger-only shapes. Handlers write dto.Response; these mirror it with a
// concrete data type so the generated docs show real payloads.

// APIResponse is the envelope with typed data
type APIResponse[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data,omitempty"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
	Meta    *dto.Meta      `json:"meta,omitempty"`
}

// ErrorResponse is the envelope of a failed call
type ErrorResponse struct {
	Success bool           `json:"success" example:"false"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
}

// SuccessResponse is an acknowledgement with no payload
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

// CountData reports how many records a bulk operation touched
type CountData struct {
	Count int64 `json:"count" example:"3"`
}
