package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pingsocial/internal/domain"
)

// === Direct Messages ===

// SendMessage stores a message from the viewer to {userID}.
func (h *APIHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerID(w, r)
	if !ok {
		return
	}
	var body SendMessageRequest
	if err := decodeJSON(w, r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}

	msg, err := h.chat.Send(r.Context(), domain.SendMessageRequest{
		SenderID:    viewer,
		RecipientID: chi.URLParam(r, "userID"),
		Text:        body.Text,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, chatMessageToAPI(*msg))
}

// ListMessages returns one page of the viewer's conversation with {userID},
// oldest first.
func (h *APIHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerID(w, r)
	if !ok {
		return
	}
	page, err := pageFromParams(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	msgs, total, err := h.chat.History(r.Context(), viewer, chi.URLParam(r, "userID"), page)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, PaginatedMessages{
		Data:          mapSlice(msgs, chatMessageToAPI),
		Total:         total,
		NextPageToken: domain.NextPageToken(page.Offset(), page.Limit(), total),
	})
}

func (h *APIHandler) ClearMessages(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerID(w, r)
	if !ok {
		return
	}
	if err := h.chat.Clear(r.Context(), viewer, chi.URLParam(r, "userID")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
