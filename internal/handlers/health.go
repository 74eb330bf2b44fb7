package handlers

import (
	"context"
	"net/http"
	"time"
)

// Health handles GET /health. It only proves the process serves HTTP.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// Ready returns a GET /ready handler that runs check with a short timeout.
// A nil check always reports ready.
func Ready(check func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			if err := check(ctx); err != nil {
				WriteError(w, http.StatusServiceUnavailable, "not ready")
				return
			}
		}

		WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
