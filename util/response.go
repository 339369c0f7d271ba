package util

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Success bool         `json:"success"`
	Error   string       `json:"error"`
	Msg     string       `json:"msg"`
	Errors  []FieldError `json:"errors,omitempty"`
	Data    interface{}  `json:"data"`
}

// FieldError describes a single invalid field in a rejected payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type APIErrorParams struct {
	Msg string
	Err error
}

type APISuccessParams struct {
	Msg  string
	Data interface{}
}

// CallSuccessOK is for return API response with status code 200, you need to specify msg, and data as function parameter
func CallSuccessOK(c *gin.Context, params APISuccessParams) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Msg:     params.Msg,
		Data:    params.Data,
	})
}

// CallCreated is for return API response with status code 201 after a resource is stored
func CallCreated(c *gin.Context, params APISuccessParams) {
	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Msg:     params.Msg,
		Data:    params.Data,
	})
}

// CallNoContent is for return an empty 204 response after a deletion
func CallNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// CallUserError is for return error from user side
func CallUserError(c *gin.Context, params APIErrorParams) {
	c.JSON(http.StatusBadRequest, APIResponse{
		Success: false,
		Error:   params.Err.Error(),
		Msg:     params.Msg,
		Data:    map[string]interface{}{},
	})
}

// CallValidationError is for return a 400 response carrying per-field error detail
func CallValidationError(c *gin.Context, msg string, errors []FieldError) {
	c.JSON(http.StatusBadRequest, APIResponse{
		Success: false,
		Error:   "invalid data",
		Msg:     msg,
		Errors:  errors,
		Data:    map[string]interface{}{},
	})
}

// CallErrorNotFound is for return API response not found
func CallErrorNotFound(c *gin.Context, params APIErrorParams) {
	c.JSON(http.StatusNotFound, APIResponse{
		Success: false,
		Error:   params.Err.Error(),
		Msg:     params.Msg,
		Data:    map[string]interface{}{},
	})
}

// CallServerError is for return API response server error. The generic msg is
// what the caller sees; internals stay in the error field only.
func CallServerError(c *gin.Context, params APIErrorParams) {
	c.JSON(http.StatusInternalServerError, APIResponse{
		Success: false,
		Error:   params.Err.Error(),
		Msg:     params.Msg,
		Data:    map[string]interface{}{},
	})
}

// CallTooManyRequests is for return a 429 response with a Retry-After hint in seconds
func CallTooManyRequests(c *gin.Context, retryAfterSeconds int) {
	c.Header("Retry-After", fmt.Sprintf("%d", retryAfterSeconds))
	c.JSON(http.StatusTooManyRequests, APIResponse{
		Success: false,
		Error:   "rate limit exceeded",
		Msg:     "Too many requests. Please try again later.",
		Data:    map[string]interface{}{},
	})
}
