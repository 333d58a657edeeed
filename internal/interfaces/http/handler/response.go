package handler

import "github.com/camphq/backend/internal/interfaces/http/dto"

// APIResponse is the typed response envelope referenced by the swagger
// annotations on each handler. Runtime responses are built from dto.Response;
// this exists so generated docs show the data shape per endpoint.
// @Description Standard API response wrapper with typed data field
type APIResponse[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data,omitempty"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
	Meta    *dto.Meta      `json:"meta,omitempty"`
}

// ErrorResponse is the error envelope referenced by swagger annotations.
// @Description Standard error response
type ErrorResponse struct {
	Success bool           `json:"success" example:"false"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
}

// SuccessResponse is the bare success envelope for endpoints with no payload,
// such as archive and deactivate.
// @Description Simple success response without data
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}
