package mojang

import (
	"errors"
	"fmt"
)

// Error types for Mojang API operations.
var (
	ErrInvalidUsername   = errors.New("invalid username")
	ErrInvalidIdentifier = errors.New("invalid profile identifier")
	ErrUsernameNotFound  = errors.New("username not found")
	ErrProfileNotFound   = errors.New("profile not found")
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	ErrAPIUnavailable    = errors.New("mojang API unavailable")
	ErrMalformedResponse = errors.New("malformed response body")
	ErrMalformedTextures = errors.New("malformed textures property")
	ErrNotPNG            = errors.New("texture is not a PNG image")
	ErrSkinTooLarge      = errors.New("skin exceeds size limit")
)

// APIError represents an API error with status code.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mojang API error (status %d): %s", e.StatusCode, e.Message)
}

// NewAPIError creates a new APIError.
func NewAPIError(statusCode int, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// LookupError records the pipeline stage and URL of a failed resolution.
type LookupError struct {
	Stage State
	URL   string
	Err   error
}

func (e *LookupError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("%s: %v", e.Stage.operation(), e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Stage.operation(), e.URL, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// ErrorKind classifies a failure.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindInvalidInput
	KindNotFound
	KindTransport
	KindParse
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindNotFound:
		return "not_found"
	case KindTransport:
		return "transport"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// Kind returns the kind of a resolution error.
func Kind(err error) ErrorKind {
	var apiErr *APIError
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrInvalidUsername), errors.Is(err, ErrInvalidIdentifier):
		return KindInvalidInput
	case errors.Is(err, ErrUsernameNotFound), errors.Is(err, ErrProfileNotFound):
		return KindNotFound
	case errors.Is(err, ErrMalformedResponse), errors.Is(err, ErrMalformedTextures),
		errors.Is(err, ErrNotPNG), errors.Is(err, ErrSkinTooLarge):
		return KindParse
	case errors.Is(err, ErrAPIUnavailable), errors.Is(err, ErrRateLimitExceeded), errors.As(err, &apiErr):
		return KindTransport
	default:
		return KindUnknown
	}
}
