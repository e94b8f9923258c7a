package server

import (
	"errors"
	"net/http"

	"pkt.systems/cardsmith"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func NewErrorResponse(err error) ErrorResponse {
	return ErrorResponse{err.Error()}
}

// statusFor maps render errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, cardsmith.ErrNestedSegment), errors.Is(err, cardsmith.ErrUnmatchedSegmentEnd):
		return http.StatusUnprocessableEntity
	case errors.Is(err, cardsmith.ErrMissingTitle),
		errors.Is(err, cardsmith.ErrUnknownElement),
		errors.Is(err, cardsmith.ErrUnknownCardType),
		errors.Is(err, cardsmith.ErrInvalidUTF8),
		errors.Is(err, cardsmith.ErrBinaryInput),
		errors.Is(err, errUnknownTheme):
		return http.StatusBadRequest
	case errors.Is(err, ErrRenderTimeout):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
