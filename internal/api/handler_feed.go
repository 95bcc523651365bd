package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pingsocial/internal/domain"
)

// GetFeed returns one page of the viewer's feed under ?filter=.
func (h *APIHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerID(w, r)
	if !ok {
		return
	}
	filter, err := domain.ParsePostFilter(r.URL.Query().Get("filter"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	page, err := pageFromParams(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	fp, err := h.feed.Feed(r.Context(), viewer, filter, page)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, PaginatedPosts{
		Filter:        fp.Filter,
		Data:          mapSlice(fp.Posts, postToAPI),
		Total:         fp.Total,
		NextPageToken: fp.NextPageToken,
	})
}

// CreatePost publishes a post authored by the viewer. Tribes the viewer does
// not belong to are dropped from the stored post.
func (h *APIHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerID(w, r)
	if !ok {
		return
	}
	var body CreatePostRequest
	if err := decodeJSON(w, r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}

	post, err := h.feed.CreatePost(r.Context(), domain.CreatePostRequest{
		AuthorID: viewer,
		Content:  body.Content,
		TribeIDs: body.TribeIDs,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/v1/posts/"+post.ID)
	writeJSON(w, http.StatusCreated, postToAPI(*post))
}

func (h *APIHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.feed.GetPost(r.Context(), chi.URLParam(r, "postID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, postToAPI(*post))
}
