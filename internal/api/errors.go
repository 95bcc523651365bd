package api

import (
	"net/http"

	"pingsocial/internal/domain"
)

// httpStatusFromKind maps an error kind to an HTTP status code.
func httpStatusFromKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindInvalidArgument, domain.KindSelfReference, domain.KindUnsupportedFilter:
		return http.StatusBadRequest
	case domain.KindNotFound, domain.KindEdgeNotFound, domain.KindNoTribesConfigured:
		return http.StatusNotFound
	case domain.KindAlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// httpStatusFromError returns the HTTP status code for a domain error.
// Unknown errors return 500 Internal Server Error.
func httpStatusFromError(err error) int {
	return httpStatusFromKind(domain.KindOf(err))
}

// writeError renders err as an Error body. Internal errors are logged and
// replaced with a generic message.
func (h *APIHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := domain.KindOf(err)
	status := httpStatusFromKind(kind)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		msg = "internal error"
	}
	writeJSON(w, status, Error{Code: status, Kind: string(kind), Message: msg})
}
