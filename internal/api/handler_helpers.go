package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"pingsocial/internal/domain"
)

const maxBodyBytes = 1 << 20

// --- helpers ---

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// decodeJSON reads a JSON request body into dst. Malformed bodies are
// validation errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.ErrValidation("request body is required")
		}
		return domain.ErrValidation("invalid request body: %v", err)
	}
	return nil
}

// pageFromParams extracts a PageRequest from the optional max_results and
// page_token query parameters.
func pageFromParams(r *http.Request) (domain.PageRequest, error) {
	q := r.URL.Query()
	p := domain.PageRequest{PageToken: q.Get("page_token")}
	if raw := q.Get("max_results"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return p, domain.ErrValidation("max_results must be a non-negative integer")
		}
		p.MaxResults = n
	}
	return p, nil
}

// viewerID returns the authenticated viewer. The Auth middleware guarantees
// one on every /v1 route, so a miss is reported as 401.
func viewerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := domain.ViewerFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, Error{Code: http.StatusUnauthorized, Message: "unauthorized"})
	}
	return id, ok
}

// === Mapping helpers ===

func followEntryToAPI(e domain.FollowListEntry) FollowEntry {
	return FollowEntry{
		UserID:      e.UserID,
		Email:       e.Email,
		DisplayName: e.DisplayName,
		FollowedAt:  e.FollowedAt,
	}
}

func tribeToAPI(t domain.Tribe) Tribe {
	return Tribe{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		MemberCount: t.MemberCount,
		CreatedAt:   t.CreatedAt,
	}
}

func tribeMemberToAPI(m domain.TribeMember) TribeMember {
	return TribeMember{
		UserID:      m.UserID,
		Email:       m.Email,
		DisplayName: m.DisplayName,
		JoinedAt:    m.JoinedAt,
	}
}

func postToAPI(p domain.Post) Post {
	tribes := p.TribeIDs
	if tribes == nil {
		tribes = []string{}
	}
	return Post{
		ID:                p.ID,
		AuthorID:          p.AuthorID,
		AuthorDisplayName: p.AuthorDisplayName,
		Content:           p.Content,
		TribeIDs:          tribes,
		CreatedAt:         p.CreatedAt,
	}
}

func profileToAPI(p domain.Profile) Profile {
	names := p.TribeNames
	if names == nil {
		names = []string{}
	}
	return Profile{
		UserID:         p.UserID,
		Email:          p.Email,
		DisplayName:    p.DisplayName,
		AvatarInitials: p.AvatarInitials,
		Followers:      p.Followers,
		Following:      p.Following,
		DaysActive:     p.DaysActive,
		TribeNames:     names,
	}
}

func suggestionToAPI(s domain.Suggestion) Suggestion {
	names := s.TribeNames
	if names == nil {
		names = []string{}
	}
	return Suggestion{
		UserID:         s.UserID,
		Email:          s.Email,
		DisplayName:    s.DisplayName,
		AvatarInitials: s.AvatarInitials,
		Followers:      s.Followers,
		TribeNames:     names,
		IsFollowing:    s.IsFollowing,
		DistanceKm:     s.DistanceKm,
	}
}

func locationToAPI(l domain.Location) Location {
	return Location{
		UserID:     l.UserID,
		Latitude:   l.Latitude,
		Longitude:  l.Longitude,
		DistanceKm: l.DistanceKm,
	}
}

func chatMessageToAPI(m domain.ChatMessage) ChatMessage {
	return ChatMessage{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Text:        m.Text,
		CreatedAt:   m.CreatedAt,
	}
}

func auditEntryToAPI(e domain.AuditEntry) AuditEntry {
	return AuditEntry{
		ID:        e.ID,
		ActorID:   e.ActorID,
		Action:    e.Action,
		TargetID:  e.TargetID,
		Status:    e.Status,
		Detail:    e.Detail,
		CreatedAt: e.CreatedAt,
	}
}

func mapSlice[T, U any](in []T, f func(T) U) []U {
	out := make([]U, len(in))
	for i, v := range in {
		out[i] = f(v)
	}
	return out
}
