package middleware

import (
	"encoding/json"
	"net/http"
)

// ErrorEvent is the htmx event fired when a shell request is rejected.
const ErrorEvent = "docs:error"

type errorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// writeError answers plain requests with text. htmx requests get the error as
// JSON plus an HX-Trigger event and no swap, so the panel markup in the page
// stays as it was.
func writeError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	if !IsHTMX(r.Context()) {
		http.Error(w, msg, code)
		return
	}
	body := errorResponse{Status: code, Message: msg}
	trigger, _ := json.Marshal(map[string]errorResponse{ErrorEvent: body})
	w.Header().Set("HX-Trigger", string(trigger))
	w.Header().Set("HX-Reswap", "none")
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
