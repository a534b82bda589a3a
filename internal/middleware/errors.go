package middleware

import (
	"encoding/json"
	"net/http"
)

// writeError writes the API's {"error", "code"} body. It mirrors the handler
// package's encoding, which middleware cannot import.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}{Error: message, Code: code})
}
