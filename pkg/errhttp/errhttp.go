// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/pricetrack/pkg/httpx"
	grocerydomain "github.com/ghuser/pricetrack/services/grocery/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors. When
// hideInternal is set, 5xx messages are replaced with the status text.
func WriteError(w http.ResponseWriter, err error, hideInternal bool) {
	status := mapErrorToStatus(err)
	httpx.JSONError(w, status, httpx.SafeError(err, status, hideInternal))
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, grocerydomain.ErrItemNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, grocerydomain.ErrItemAlreadyExists),
		errors.Is(err, grocerydomain.ErrNothingToUndo):
		return http.StatusConflict // 409
	case errors.Is(err, grocerydomain.ErrInvalidItemName),
		errors.Is(err, grocerydomain.ErrInvalidStoreName),
		errors.Is(err, grocerydomain.ErrInvalidPrice):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, grocerydomain.ErrInvalidWindow):
		return http.StatusBadRequest // 400
	default:
		return http.StatusInternalServerError // 500
	}
}
