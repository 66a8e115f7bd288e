package web

import (
	"fmt"
	"net/http"

	"github.com/robinvdvleuten/contrato/contract"
)

// ErrorJSON is an API error response.
type ErrorJSON struct {
	Type    string         `json:"type"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// errorJSON converts err, copying whatever its accessors expose into Details.
func errorJSON(err error) ErrorJSON {
	out := ErrorJSON{
		Type:    fmt.Sprintf("%T", err),
		Message: err.Error(),
		Details: make(map[string]any),
	}

	if e, ok := err.(interface{ GetType() contract.DocumentType }); ok && e.GetType() != "" {
		out.Details["document_type"] = string(e.GetType())
	}
	if e, ok := err.(interface{ GetTemplateID() string }); ok && e.GetTemplateID() != "" {
		out.Details["template_id"] = e.GetTemplateID()
	}
	if e, ok := err.(interface{ GetFilename() string }); ok {
		out.Details["filename"] = e.GetFilename()
	}

	if len(out.Details) == 0 {
		out.Details = nil
	}
	return out
}

// writeError writes err as a JSON error response.
func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorJSON(err))
}
