package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pingsocial/internal/domain"
)

// === Profiles ===

func (h *APIHandler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerID(w, r)
	if !ok {
		return
	}
	h.writeProfile(w, r, viewer)
}

func (h *APIHandler) GetUserProfile(w http.ResponseWriter, r *http.Request) {
	h.writeProfile(w, r, chi.URLParam(r, "userID"))
}

func (h *APIHandler) writeProfile(w http.ResponseWriter, r *http.Request, userID string) {
	p, err := h.profiles.Profile(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profileToAPI(*p))
}

// ListSuggestions returns every other active user with follow state and distance.
func (h *APIHandler) ListSuggestions(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerID(w, r)
	if !ok {
		return
	}
	suggestions, err := h.profiles.Suggestions(r.Context(), viewer)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[Suggestion]{Data: mapSlice(suggestions, suggestionToAPI)})
}

func (h *APIHandler) SaveLocation(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerID(w, r)
	if !ok {
		return
	}
	var body UpdateLocationRequest
	if err := decodeJSON(w, r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	if body.Latitude == nil || body.Longitude == nil {
		h.writeError(w, r, domain.ErrValidation("latitude and longitude are required"))
		return
	}

	loc := domain.UpdateLocationRequest{Latitude: *body.Latitude, Longitude: *body.Longitude}
	if err := h.profiles.SaveLocation(r.Context(), viewer, loc); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *APIHandler) GetMyLocation(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerID(w, r)
	if !ok {
		return
	}
	h.writeLocation(w, r, viewer, viewer)
}

// GetUserLocation returns {userID}'s coordinates and distance from the viewer.
func (h *APIHandler) GetUserLocation(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerID(w, r)
	if !ok {
		return
	}
	h.writeLocation(w, r, viewer, chi.URLParam(r, "userID"))
}

func (h *APIHandler) writeLocation(w http.ResponseWriter, r *http.Request, viewer, userID string) {
	loc, err := h.profiles.Location(r.Context(), viewer, userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, locationToAPI(*loc))
}

// === Audit Logs ===

// ListMyAuditLogs lists the viewer's own audit entries, newest first.
func (h *APIHandler) ListMyAuditLogs(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerID(w, r)
	if !ok {
		return
	}
	page, err := pageFromParams(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	filter := domain.AuditFilter{Page: page}
	q := r.URL.Query()
	if action := q.Get("action"); action != "" {
		filter.Action = &action
	}
	if raw := q.Get("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.writeError(w, r, domain.ErrValidation("since must be an RFC 3339 timestamp"))
			return
		}
		filter.Since = &since
	}

	entries, total, err := h.audit.List(r.Context(), viewer, filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	npt := domain.NextPageToken(page.Offset(), page.Limit(), total)
	writeJSON(w, http.StatusOK, PaginatedAuditLogs{
		Data:          mapSlice(entries, auditEntryToAPI),
		NextPageToken: npt,
	})
}
