package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/robinvdvleuten/contrato/contract"
	"github.com/robinvdvleuten/contrato/loader"
	"github.com/robinvdvleuten/contrato/telemetry"
)

// PreviewRequest asks for a document to be rendered. Text, when set, is rendered
// instead of the library template.
type PreviewRequest struct {
	Type       string          `json:"document_type"`
	TemplateID string          `json:"template_id"`
	Text       string          `json:"text"`
	Payload    json.RawMessage `json:"payload"`
}

// handlePreview handles POST requests to /api/preview.
// The response carries a Server-Timing header with the prepare and render spans.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var request PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	docType, err := contract.ParseDocumentType(request.Type)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	payload, err := contract.NewPayload(docType)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(request.Payload) > 0 && string(request.Payload) != "null" {
		if err := json.Unmarshal(request.Payload, payload); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid payload: %w", err))
			return
		}
	}

	tmpl := contract.Template{ID: request.TemplateID, Type: docType, Text: request.Text}
	if request.Text == "" {
		_, lib := s.snapshot()
		tmpl, err = lib.Resolve(request.TemplateID, docType)
		if err != nil {
			status := http.StatusBadRequest
			var unknown *loader.UnknownTemplateError
			if errors.As(err, &unknown) {
				status = http.StatusNotFound
			}
			writeError(w, status, err)
			return
		}
	}

	collector := telemetry.NewTimingCollector()
	ctx := telemetry.WithCollector(r.Context(), collector)

	doc, err := s.engine.Compose(ctx, tmpl, payload)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	w.Header().Set("Server-Timing", serverTiming(collector.Spans()))
	writeJSONResponse(w, doc)
}

// serverTiming formats spans as a Server-Timing header value.
func serverTiming(spans []telemetry.Span) string {
	metrics := make([]string, 0, len(spans))
	for i, span := range spans {
		ms := float64(span.Duration.Microseconds()) / 1000
		metrics = append(metrics, fmt.Sprintf("s%d;desc=%q;dur=%.3f", i, span.Name, ms))
	}
	return strings.Join(metrics, ", ")
}
