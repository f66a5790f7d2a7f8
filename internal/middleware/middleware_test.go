package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func newTestSessions() *Sessions {
	return NewSessions(SessionConfig{
		CookieName: "test_session",
		HashKey:    []byte(strings.Repeat("h", 32)),
		BlockKey:   []byte(strings.Repeat("b", 32)),
	})
}

func TestSessionIssuedAndReused(t *testing.T) {
	sessions := newTestSessions()
	var seen []*SessionData
	h := sessions.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, SessionFromContext(r.Context()))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "test_session", cookies[0].Name)
	require.True(t, cookies[0].HttpOnly)
	require.NotEmpty(t, seen[0].ID)
	require.NotEmpty(t, seen[0].CSRFToken)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Empty(t, rec.Result().Cookies(), "valid cookie is not reissued")
	require.Equal(t, seen[0].ID, seen[1].ID)
	require.Equal(t, seen[0].CSRFToken, seen[1].CSRFToken)
}

func TestSessionRejectsTamperedCookie(t *testing.T) {
	sessions := newTestSessions()
	var id string
	h := sessions.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id = SessionFromContext(r.Context()).ID
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "test_session", Value: "forged"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.NotEmpty(t, id)
	require.Len(t, rec.Result().Cookies(), 1)

	other := NewSessions(SessionConfig{CookieName: "test_session"})
	rec = httptest.NewRecorder()
	other.Handler(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(rec.Result().Cookies()[0])
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Len(t, rec.Result().Cookies(), 1, "cookie from other keys is replaced")
}

func TestCSRF(t *testing.T) {
	sd := &SessionData{ID: "s1", CSRFToken: "secret"}
	h := CSRF(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	serve := func(req *http.Request) int {
		req = req.WithContext(WithSession(req.Context(), sd))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusNoContent, serve(httptest.NewRequest(http.MethodGet, "/", nil)))
	require.Equal(t, http.StatusForbidden, serve(httptest.NewRequest(http.MethodPost, "/", nil)))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(CSRFHeader, "wrong")
	require.Equal(t, http.StatusForbidden, serve(req))

	req = httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(CSRFHeader, "secret")
	require.Equal(t, http.StatusNoContent, serve(req))

	form := url.Values{CSRFFormField: {"secret"}}
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	require.Equal(t, http.StatusNoContent, serve(req))
}

func TestCSRFErrorForHTMXKeepsPanel(t *testing.T) {
	h := HTMX(CSRF(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})))
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.JSONEq(t, `{"status":403,"message":"invalid CSRF token"}`, rec.Body.String())
	require.Equal(t, "none", rec.Header().Get("HX-Reswap"))
	require.JSONEq(t, `{"docs:error":{"status":403,"message":"invalid CSRF token"}}`, rec.Header().Get("HX-Trigger"))
}

func TestCSRFErrorForPlainRequestIsText(t *testing.T) {
	h := HTMX(CSRF(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Empty(t, rec.Header().Get("HX-Trigger"))
	require.Contains(t, rec.Body.String(), "invalid CSRF token")
}

func TestHTMXRequestDetails(t *testing.T) {
	var (
		hx HXRequest
		ok bool
	)
	h := HTMX(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hx, ok = HTMXFromContext(r.Context())
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.False(t, ok)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("HX-Request", "true")
	req.Header.Set("HX-Boosted", "true")
	req.Header.Set("HX-Current-URL", "http://docs.local/variants?x=1")
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.True(t, ok)
	require.True(t, hx.Boosted)
	require.Equal(t, "/variants", hx.CurrentPath)
}

func TestOriginPath(t *testing.T) {
	var got string
	h := HTMX(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = OriginPath(r)
	}))

	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{name: "no hints", want: "/"},
		{name: "referer", headers: map[string]string{"Referer": "http://docs.local/tokens"}, want: "/tokens"},
		{name: "htmx current url wins", headers: map[string]string{
			"HX-Request":     "true",
			"HX-Current-URL": "http://docs.local/api",
			"Referer":        "http://docs.local/tokens",
		}, want: "/api"},
		{name: "unparsable referer", headers: map[string]string{"Referer": "::"}, want: "/"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/_shell/panel/toggle", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestAssetsWithCache(t *testing.T) {
	fsys := fstest.MapFS{"docs.css": {Data: []byte("body{}")}}
	h := AssetsWithCache(fsys)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "body{}", rec.Body.String())
	etag := rec.Header().Get("ETag")
	require.True(t, strings.HasPrefix(etag, `W/"`))
	require.Contains(t, rec.Header().Get("Cache-Control"), "max-age=604800")

	req := httptest.NewRequest(http.MethodGet, "/docs.css", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotModified, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing.css", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
