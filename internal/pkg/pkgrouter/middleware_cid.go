package pkgrouter

import (
	"net/http"
	"strings"

	"github.com/shandysiswandi/gofta/internal/pkg/pkglog"
)

// Generator produces correlation ids for requests that arrive without one.
type Generator interface {
	Generate() string
}

const (
	HeaderCorrelationID = "X-Correlation-ID"
	HeaderRequestID     = "X-Request-ID"

	maxCorrelationIDLen = 128
)

// sanitizeCorrelationID keeps a client supplied id only when it is visible
// ASCII. The id ends up in logs and on import audit events.
func sanitizeCorrelationID(v string) string {
	v = strings.TrimSpace(v)
	if len(v) > maxCorrelationIDLen {
		v = v[:maxCorrelationIDLen]
	}
	for i := 0; i < len(v); i++ {
		if v[i] < '!' || v[i] > '~' {
			return ""
		}
	}
	return v
}

func correlationIDFrom(r *http.Request, uid Generator) string {
	for _, header := range []string{HeaderCorrelationID, HeaderRequestID} {
		if cid := sanitizeCorrelationID(r.Header.Get(header)); cid != "" {
			return cid
		}
	}
	if uid != nil {
		return uid.Generate()
	}
	return ""
}

func middlewareCorrelationID(uid Generator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cid := correlationIDFrom(r, uid); cid != "" {
				w.Header().Set(HeaderCorrelationID, cid)
				r = r.WithContext(pkglog.SetCorrelationID(r.Context(), cid))
			}

			next.ServeHTTP(w, r)
		})
	}
}
