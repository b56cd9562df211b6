package util

import (
	"log"

	"github.com/fadilmartias/harvard-cv/internal/response"
	"github.com/gofiber/fiber/v2"
)

type SuccessResponseFormat struct {
	Code       int
	Message    string
	Data       any
	Pagination *response.Pagination
}

type OrderedSuccessResponse struct {
	Success    bool                 `json:"success"`
	Message    string               `json:"message,omitempty"`
	Pagination *response.Pagination `json:"pagination,omitempty"`
	Data       any                  `json:"data,omitempty"`
}

type ErrorResponseFormat struct {
	Code    int
	Message string
	Details any
}

// OrderedErrorResponse never carries the underlying cause. Causes go to the
// server log only.
type OrderedErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// SuccessResponse sends the standard success envelope.
func SuccessResponse(c *fiber.Ctx, params SuccessResponseFormat) error {
	code := params.Code
	if code == 0 {
		code = fiber.StatusOK
	}
	return c.Status(code).JSON(OrderedSuccessResponse{
		Success:    true,
		Message:    params.Message,
		Data:       params.Data,
		Pagination: params.Pagination,
	})
}

// ErrorResponse sends {"error": message} and logs the first non-nil cause.
func ErrorResponse(c *fiber.Ctx, params ErrorResponseFormat, errs ...error) error {
	errorCode := params.Code
	if errorCode == 0 {
		errorCode = fiber.StatusInternalServerError
	}
	if len(errs) > 0 && errs[0] != nil {
		log.Printf("%s %s -> %d: %v", c.Method(), c.Path(), errorCode, errs[0])
	}
	return c.Status(errorCode).JSON(OrderedErrorResponse{
		Error:   params.Message,
		Details: params.Details,
	})
}
