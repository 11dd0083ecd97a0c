package google

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/listing-studio/internal/core/domain"
)

// IsNotFound returns true if the error is a 404 from a Google API.
func IsNotFound(err error) bool {
	return statusCode(err) == http.StatusNotFound
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	return statusCode(err) == http.StatusTooManyRequests
}

// IsConflict returns true if the error reports an existing resource or a
// failed precondition.
func IsConflict(err error) bool {
	code := statusCode(err)
	return code == http.StatusConflict || code == http.StatusPreconditionFailed
}

func statusCode(err error) int {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return 0
}

// retryAfter reads the Retry-After header of a 429 response.
func retryAfter(err error) time.Duration {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) || gerr.Header == nil {
		return 0
	}
	secs, convErr := strconv.Atoi(gerr.Header.Get("Retry-After"))
	if convErr != nil {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// WrapError converts a Google API failure into the persistence error
// taxonomy. 404s become domain.ErrNotFound, authentication failures
// permission errors, rejected requests validation errors and everything
// else network errors. Parse errors pass through unchanged.
func WrapError(op string, err error) error {
	if err == nil || errors.Is(err, domain.ErrParse) {
		return err
	}

	switch code := statusCode(err); {
	case code == http.StatusNotFound:
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return domain.NewStoreError(domain.KindPermission, op, err)
	case code == http.StatusBadRequest || IsConflict(err):
		return domain.NewStoreError(domain.KindValidation, op, err)
	default:
		return domain.NewStoreError(domain.KindNetwork, op, err)
	}
}
