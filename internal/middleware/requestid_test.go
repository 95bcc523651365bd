package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureRequestID(t *testing.T, header string) (captured string, echoed string) {
	t.Helper()
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("X-Request-ID", header)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	return captured, rec.Header().Get("X-Request-ID")
}

func TestRequestID_GeneratesNewID(t *testing.T) {
	captured, echoed := captureRequestID(t, "")
	require.NotEmpty(t, captured)
	assert.Equal(t, captured, echoed)
}

func TestRequestID_Validation(t *testing.T) {
	tests := []struct {
		name     string
		headerID string
		keep     bool
	}{
		{"alphanumeric with hyphens", "abc-123_DEF", true},
		{"dotted", "svc.edge.42", true},
		{"max length", strings.Repeat("a", maxRequestIDLength), true},
		{"too long", strings.Repeat("a", maxRequestIDLength+1), false},
		{"newline injection", "fake-id\nINJECTED: malicious", false},
		{"carriage return", "fake-id\rINJECTED", false},
		{"spaces", "id with spaces", false},
		{"markup", "id<script>", false},
		{"non-ascii", "idé", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captured, echoed := captureRequestID(t, tt.headerID)
			require.NotEmpty(t, captured)
			assert.Equal(t, captured, echoed)
			if tt.keep {
				assert.Equal(t, tt.headerID, captured)
			} else {
				assert.NotEqual(t, tt.headerID, captured)
			}
		})
	}
}

func TestRequestIDFromContext_EmptyWithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, RequestIDFromContext(req.Context()))
}
