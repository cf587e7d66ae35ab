// Package shared holds the response helpers every feature handler uses so the
// JSON envelopes stay consistent across the API surface.
package shared

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "workbench/pkg/domain-errors"
)

type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// WriteError translates a domain error into the JSON error envelope. Unknown
// errors collapse to a 500 without leaking internals.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	env := errorEnvelope{Error: string(code)}
	var de *dErrors.Error
	if errors.As(err, &de) {
		env.Message = de.Message
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(dErrors.ToHTTPStatus(code))
	_ = json.NewEncoder(w).Encode(env)
}

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}
