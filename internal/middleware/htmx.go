package middleware

import (
	"net/http"
	"net/url"
	"strings"
)

// HTMX reads the htmx request headers so handlers can answer the panel
// toggle with a fragment and place new shells on the calling page.
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var hx *HXRequest
		if r.Header.Get("HX-Request") == "true" {
			hx = &HXRequest{
				Boosted:     r.Header.Get("HX-Boosted") == "true",
				CurrentPath: localPath(r.Header.Get("HX-Current-URL")),
			}
		}
		next.ServeHTTP(w, r.WithContext(WithHTMX(r.Context(), hx)))
	})
}

// OriginPath is the docs path a request was sent from: the htmx current URL,
// then the Referer, then "/".
func OriginPath(r *http.Request) string {
	if hx, ok := HTMXFromContext(r.Context()); ok && hx.CurrentPath != "" {
		return hx.CurrentPath
	}
	if p := localPath(r.Referer()); p != "" {
		return p
	}
	return "/"
}

func localPath(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || !strings.HasPrefix(u.Path, "/") {
		return ""
	}
	return u.Path
}
