package pkgrouter

import (
	"net/http"
	"strings"

	"github.com/shandysiswandi/gofta/internal/pkg/pkglog"
)

// Middleware wraps an http.Handler, typically to add cross-cutting behavior.
type Middleware func(http.Handler) http.Handler

// Chain applies middleware in order, returning the final wrapped handler.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// MiddlewareUsername stores the acting user named by header into the request
// context (see pkglog.GetUsername). A missing or blank header yields fallback.
func MiddlewareUsername(header, fallback string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username := strings.TrimSpace(r.Header.Get(header))
			if username == "" {
				username = fallback
			}
			next.ServeHTTP(w, r.WithContext(pkglog.SetUsername(r.Context(), username)))
		})
	}
}
