// Package httpjson provides the small JSON response helpers the HTTP
// host uses, adapted from salon-shared/utils.
package httpjson

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes payload as a JSON body with the given status code.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteSuccess writes a standardized success envelope.
func WriteSuccess(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    data,
	})
}
