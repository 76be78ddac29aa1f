// Package view writes handler results as JSON documents.
package view

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// View renders response bodies.
type View struct {
	indent bool
}

// New creates a View. Indented output is meant for development.
func New(indent bool) *View {
	return &View{indent: indent}
}

// ErrorBody is the document sent for failed requests.
type ErrorBody struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
	Field  string `json:"field,omitempty"`
}

// Render writes data with the given status code.
func (v *View) Render(w http.ResponseWriter, r *http.Request, status int, data interface{}) error {
	// Encode into a buffer first to catch any errors before writing
	// the status code.
	buf := new(bytes.Buffer)
	enc := json.NewEncoder(buf)
	if v.indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(data); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Error writes an ErrorBody. field names the offending input, if any.
func (v *View) Error(w http.ResponseWriter, r *http.Request, status int, message, field string) error {
	if message == "" {
		message = http.StatusText(status)
	}
	return v.Render(w, r, status, ErrorBody{Status: status, Error: message, Field: field})
}
