package response

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

type SuccessResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Errors  interface{} `json:"errors,omitempty"`
}

func Success(c echo.Context, code int, message string, data interface{}) error {
	return c.JSON(code, SuccessResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		Data:    data,
	})
}

func Error(c echo.Context, code int, message string, errDetails interface{}) error {
	return c.JSON(code, ErrorResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		Errors:  errDetails,
	})
}

// APIError is the error type raised by usecases. Handlers and the custom
// echo error handler map it onto the response envelope. Details never
// carries secret material (hashes, raw tokens).
type APIError struct {
	Code    int
	Message string
	Details interface{}
}

func (e *APIError) Error() string {
	return e.Message
}

func NewError(code int, message string, details interface{}) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

func ValidationError(message string) *APIError {
	return NewError(http.StatusBadRequest, message, nil)
}

func Unauthorized(message string) *APIError {
	return NewError(http.StatusUnauthorized, message, nil)
}

func Conflict(message string) *APIError {
	return NewError(http.StatusConflict, message, nil)
}

func NotFound(message string) *APIError {
	return NewError(http.StatusNotFound, message, nil)
}

func InternalServerError(err error) *APIError {
	return &APIError{
		Code:    http.StatusInternalServerError,
		Message: "internal_server_error",
		Details: err,
	}
}

// HandleError writes an error raised by a usecase. Anything that is not an
// APIError is treated as an internal failure.
func HandleError(c echo.Context, err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return Error(c, apiErr.Code, apiErr.Message, apiErr.Details)
	}
	return Error(c, http.StatusInternalServerError, "internal_server_error", err.Error())
}

func CustomErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		Error(c, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		var msg string
		if s, ok := echoErr.Message.(string); ok {
			msg = s
		} else {
			msg = "An error occurred"
		}
		Error(c, echoErr.Code, msg, nil)
		return
	}
	c.Logger().Error(err)
	Error(c, http.StatusInternalServerError, "Internal Server Error", nil)
}
