package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// === Follow graph ===

// FollowUser makes the viewer follow {userID}.
func (h *APIHandler) FollowUser(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerID(w, r)
	if !ok {
		return
	}
	edge, err := h.follows.Follow(r.Context(), viewer, chi.URLParam(r, "userID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, FollowEdge{
		FollowerID: edge.FollowerID,
		FollowedID: edge.FollowedID,
		CreatedAt:  edge.CreatedAt,
	})
}

// UnfollowUser removes the viewer's edge to {userID}.
func (h *APIHandler) UnfollowUser(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerID(w, r)
	if !ok {
		return
	}
	if err := h.follows.Unfollow(r.Context(), viewer, chi.URLParam(r, "userID")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *APIHandler) IsFollowing(w http.ResponseWriter, r *http.Request) {
	follower, followed := chi.URLParam(r, "userID"), chi.URLParam(r, "otherID")
	following, err := h.follows.IsFollowing(r.Context(), follower, followed)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, FollowStatus{FollowerID: follower, FollowedID: followed, IsFollowing: following})
}

func (h *APIHandler) ListFollowers(w http.ResponseWriter, r *http.Request) {
	entries, err := h.follows.ListFollowers(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[FollowEntry]{Data: mapSlice(entries, followEntryToAPI)})
}

func (h *APIHandler) ListFollowing(w http.ResponseWriter, r *http.Request) {
	entries, err := h.follows.ListFollowing(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[FollowEntry]{Data: mapSlice(entries, followEntryToAPI)})
}

// === Tribes ===

func (h *APIHandler) ListTribes(w http.ResponseWriter, r *http.Request) {
	tribes, err := h.tribes.ListAll(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[Tribe]{Data: mapSlice(tribes, tribeToAPI)})
}

func (h *APIHandler) ListTribeMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.tribes.ListTribeMembers(r.Context(), chi.URLParam(r, "tribeID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[TribeMember]{Data: mapSlice(members, tribeMemberToAPI)})
}

// JoinTribe adds the viewer to {tribeID}.
func (h *APIHandler) JoinTribe(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerID(w, r)
	if !ok {
		return
	}
	if err := h.tribes.Join(r.Context(), viewer, chi.URLParam(r, "tribeID")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// LeaveTribe removes the viewer from {tribeID}. Leaving a tribe the viewer
// is not in succeeds.
func (h *APIHandler) LeaveTribe(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerID(w, r)
	if !ok {
		return
	}
	if err := h.tribes.Leave(r.Context(), viewer, chi.URLParam(r, "tribeID")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *APIHandler) ListMyTribes(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerID(w, r)
	if !ok {
		return
	}
	tribes, err := h.tribes.ListUserTribes(r.Context(), viewer)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[Tribe]{Data: mapSlice(tribes, tribeToAPI)})
}
