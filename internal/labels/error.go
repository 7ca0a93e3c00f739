package labels

import (
	"errors"
	"fmt"
)

// ===== Error model =====

type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeUnavailable     Code = "UNAVAILABLE"
	CodeInternal        Code = "INTERNAL"
)

type APIError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string         { return fmt.Sprintf("%s: %s", e.Code, e.Message) }
func ErrInvalid(msg string) *APIError     { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func ErrUnavailable(msg string) *APIError { return &APIError{Code: CodeUnavailable, Message: msg} }
func ErrInternal(msg string) *APIError    { return &APIError{Code: CodeInternal, Message: msg} }

func toHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument:
			return 400
		case CodeUnavailable:
			return 503
		default:
			return 500
		}
	}
	return 500
}

type errDTO struct {
	Error *APIError `json:"error"`
}

func newErrDTO(err error) errDTO {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return errDTO{Error: apiErr}
	}
	return errDTO{Error: ErrInternal(err.Error())}
}
