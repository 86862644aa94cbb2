package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yanqian/faq-chatbot/pkg/errors"
)

// HTTPError captures the metadata required to serialize an error response consistently.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// domainStatus maps AppError codes onto HTTP statuses and public codes.
var domainStatus = map[string]struct {
	status int
	code   string
}{
	"invalid_input":       {http.StatusBadRequest, "invalid_request"},
	"invalid_credentials": {http.StatusUnauthorized, "invalid_credentials"},
	"invalid_token":       {http.StatusUnauthorized, "invalid_token"},
	"email_exists":        {http.StatusConflict, "email_exists"},
	"user_not_found":      {http.StatusNotFound, "user_not_found"},
}

// domainError converts a service error. Unknown codes become a 500 with fallbackCode.
func domainError(err error, fallbackCode string) *HTTPError {
	if mapped, ok := domainStatus[apperrors.CodeOf(err)]; ok {
		return NewHTTPError(mapped.status, mapped.code, errMessage(err), err)
	}
	return NewHTTPError(http.StatusInternalServerError, fallbackCode, errMessage(err), err)
}

// bindError rejects a request body that could not be decoded or validated.
// Decoder and validator details stay in the logs.
func bindError(err error) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, "invalid_request", "invalid request body", err)
}

func errMessage(err error) string {
	return apperrors.PublicMessage(err)
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "something went wrong",
		Err:     err,
	}
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
