package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	tests := []struct {
		name            string
		origins         []string
		method          string
		origin          string
		preflight       bool
		wantStatus      int
		wantAllowOrigin string
		wantCredentials string
	}{
		{
			name:            "listed origin",
			origins:         []string{"https://devperu.org/"},
			method:          http.MethodGet,
			origin:          "https://devperu.org",
			wantStatus:      http.StatusTeapot,
			wantAllowOrigin: "https://devperu.org",
			wantCredentials: "true",
		},
		{
			name:       "unlisted origin passes through without headers",
			origins:    []string{"https://devperu.org"},
			method:     http.MethodGet,
			origin:     "https://evil.example",
			wantStatus: http.StatusTeapot,
		},
		{
			name:            "preflight for listed origin",
			origins:         []string{"https://devperu.org"},
			method:          http.MethodOptions,
			origin:          "https://devperu.org",
			preflight:       true,
			wantStatus:      http.StatusNoContent,
			wantAllowOrigin: "https://devperu.org",
			wantCredentials: "true",
		},
		{
			name:            "wildcard echoes origin without credentials",
			origins:         []string{"*"},
			method:          http.MethodPost,
			origin:          "https://anyone.example",
			wantStatus:      http.StatusTeapot,
			wantAllowOrigin: "https://anyone.example",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "http://test/events/published", nil)
			req.Header.Set("Origin", tt.origin)
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
			}
			rr := httptest.NewRecorder()

			CORS(tt.origins)(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantAllowOrigin, rr.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.wantCredentials, rr.Header().Get("Access-Control-Allow-Credentials"))
			if tt.preflight {
				assert.Equal(t, corsAllowMethods, rr.Header().Get("Access-Control-Allow-Methods"))
			}
		})
	}
}
