package web

import (
	"errors"
	"net/http"

	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
)

// Configuration errors.
var (
	// ErrNoSearchService indicates the search service was not provided.
	ErrNoSearchService = errors.New("search service has not been provided")

	// ErrNoTopicService indicates the topic service was not provided.
	ErrNoTopicService = errors.New("topic service has not been provided")

	// ErrNoCorpusService indicates the corpus service was not provided.
	ErrNoCorpusService = errors.New("corpus service has not been provided")

	// ErrNoListenAddr indicates the listen address was not specified.
	ErrNoListenAddr = errors.New("listen address has not been specified")

	// ErrInvalidRateLimit indicates a negative rate or burst.
	ErrInvalidRateLimit = errors.New("rate limit and burst must not be negative")
)

// statusFor maps a service error to an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnsupportedType):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrStoreClosed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
