package errors

import (
	"errors"
	"net/http"
)

var (
	NotFound            = HttpError{Code: http.StatusNotFound, Err: errors.New("not found")}
	BadRequest          = HttpError{Code: http.StatusBadRequest, Err: errors.New("bad request")}
	Unauthorized        = HttpError{Code: http.StatusUnauthorized, Err: errors.New("unauthorized")}
	BadGateway          = HttpError{Code: http.StatusBadGateway, Err: errors.New("the patient service is unavailable")}
	InternalServerError = HttpError{Code: http.StatusInternalServerError, Err: errors.New("internal server error")}
)

// HttpError is an error with a response status. Err is the message shown to the user,
// Cause is only logged.
type HttpError struct {
	Code  int
	Err   error
	Cause error
}

func (h HttpError) Unwrap() []error {
	if h.Cause == nil {
		return []error{h.Err}
	}
	return []error{h.Err, h.Cause}
}

func (h HttpError) Error() string {
	if h.Cause == nil {
		return h.Err.Error()
	}
	return h.Err.Error() + ": " + h.Cause.Error()
}

// Wrap returns a copy of h carrying the cause
func (h HttpError) Wrap(cause error) HttpError {
	return HttpError{Code: h.Code, Err: h.Err, Cause: cause}
}
