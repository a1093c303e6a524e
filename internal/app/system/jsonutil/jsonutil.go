// Package jsonutil writes the API's JSON response envelopes.
//
// Success envelopes carry success:true plus whatever payload fields the
// handler adds; failures carry success:false and a human-readable message.
package jsonutil

import (
	"encoding/json"
	"net/http"
)

// Envelope is a response body keyed by field name.
type Envelope map[string]any

// Write serializes v as JSON with the given status code.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes a 200 success envelope, merging extra payload fields over
// {"success": true}.
func OK(w http.ResponseWriter, payload Envelope) {
	body := Envelope{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	Write(w, http.StatusOK, body)
}

// Fail writes a failure envelope with the given status and message.
func Fail(w http.ResponseWriter, status int, message string) {
	Write(w, status, Envelope{"success": false, "message": message})
}
