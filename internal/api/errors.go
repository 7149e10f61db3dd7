package api

import (
	"errors"
	"net/http"

	"github.com/intermernet/battery-registry/internal/auth"
	"github.com/intermernet/battery-registry/internal/fleet"
)

// Error kinds carried in every error response.
const (
	KindInvalidCredentials = "invalid_credentials"
	KindUnauthenticated    = "unauthenticated"
	KindInactiveUser       = "inactive_user"
	KindNotFound           = "not_found"
	KindEmptyDataset       = "empty_dataset"
	KindStoreError         = "store_error"
	KindValidation         = "validation_error"
	KindInternal           = "internal_error"
)

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
}

// validationError marks a request that could not be coerced into the expected types.
type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func invalid(msg string) error { return &validationError{msg: msg} }

// errorJSON maps err onto a status code and kind and writes it.
// Unrecognised errors are logged and reported as a generic 500.
func (s *Server) errorJSON(w http.ResponseWriter, r *http.Request, err error) {
	var (
		status  int
		kind    string
		detail  = err.Error()
		headers http.Header
	)

	var storeErr *fleet.StoreError
	var valErr *validationError

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		status, kind = http.StatusBadRequest, KindInvalidCredentials
		detail = "Incorrect username or password"
	case errors.Is(err, auth.ErrUnauthenticated):
		status, kind = http.StatusUnauthorized, KindUnauthenticated
		detail = "Invalid authentication credentials"
		if errors.Is(err, errMissingToken) {
			detail = "Not authenticated"
		}
		headers = http.Header{}
		headers.Set("WWW-Authenticate", "Bearer")
	case errors.Is(err, auth.ErrInactiveUser):
		status, kind = http.StatusBadRequest, KindInactiveUser
		detail = "Inactive user"
	case errors.Is(err, fleet.ErrNotFound):
		status, kind = http.StatusNotFound, KindNotFound
	case errors.Is(err, fleet.ErrEmptyDataset):
		status, kind = http.StatusNotFound, KindEmptyDataset
	case errors.As(err, &storeErr):
		status, kind = http.StatusUnprocessableEntity, KindStoreError
	case errors.As(err, &valErr):
		status, kind = http.StatusUnprocessableEntity, KindValidation
	default:
		s.log.WithError(err).
			WithField("method", r.Method).
			WithField("path", r.URL.Path).
			Error("request failed")
		status, kind = http.StatusInternalServerError, KindInternal
		detail = "internal server error"
	}

	if headers != nil {
		s.writeJSON(w, status, errorResponse{Kind: kind, Detail: detail}, headers)
		return
	}
	s.writeJSON(w, status, errorResponse{Kind: kind, Detail: detail})
}
