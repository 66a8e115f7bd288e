package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/robinvdvleuten/contrato/contract"
	"github.com/robinvdvleuten/contrato/render"
)

// TemplateSummary describes a template without its text.
type TemplateSummary struct {
	ID          string                `json:"id"`
	Type        contract.DocumentType `json:"document_type"`
	TypeLabel   string                `json:"document_type_label"`
	Name        string                `json:"name"`
	Description string                `json:"description,omitempty"`
	Tokens      []string              `json:"tokens"`
}

type TemplatesResponse struct {
	Templates []TemplateSummary `json:"templates"`
	Editable  bool              `json:"editable"`
}

// handleListTemplates handles GET requests to /api/templates.
// The optional type query parameter filters by document type.
func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	var want contract.DocumentType
	if name := r.URL.Query().Get("type"); name != "" {
		t, err := contract.ParseDocumentType(name)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		want = t
	}

	_, lib := s.snapshot()

	templates := make([]TemplateSummary, 0, lib.Len())
	for _, tmpl := range lib.All() {
		if want != "" && tmpl.Type != want {
			continue
		}
		templates = append(templates, TemplateSummary{
			ID:          tmpl.ID,
			Type:        tmpl.Type,
			TypeLabel:   tmpl.Type.Label(),
			Name:        tmpl.Name,
			Description: tmpl.Description,
			Tokens:      render.Tokens(tmpl.Text),
		})
	}

	writeJSONResponse(w, &TemplatesResponse{
		Templates: templates,
		Editable:  !s.ReadOnly && s.TemplatesDir != "",
	})
}

// handleGetTemplate handles GET requests to /api/templates/{id}.
func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	_, lib := s.snapshot()

	tmpl, ok := lib.Get(r.PathValue("id"))
	if !ok {
		http.Error(w, "Template not found", http.StatusNotFound)
		return
	}
	writeJSONResponse(w, tmpl)
}

// isPathWithin checks if the resolved path is within the allowed directory.
// This prevents directory traversal attacks.
func isPathWithin(allowedDir, resolvedPath string) bool {
	rel, err := filepath.Rel(allowedDir, resolvedPath)
	return err == nil && rel != "." && !strings.HasPrefix(rel, "..")
}

// templatePath returns the file a template id is saved to. Ids that would
// escape the templates directory are rejected.
func (s *Server) templatePath(id string) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) {
		return "", errors.New("invalid template id")
	}

	dir, err := filepath.Abs(s.TemplatesDir)
	if err != nil {
		return "", fmt.Errorf("invalid templates directory: %w", err)
	}
	path := filepath.Join(dir, id+".yaml")
	if !isPathWithin(dir, path) {
		return "", errors.New("access denied: path outside templates directory")
	}
	return path, nil
}

// handlePutTemplate handles PUT requests to /api/templates/{id}.
// It writes the template to the templates directory and reloads the library.
func (s *Server) handlePutTemplate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var tmpl contract.Template
	if err := json.NewDecoder(r.Body).Decode(&tmpl); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if _, err := contract.ParseDocumentType(string(tmpl.Type)); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	tmpl.ID = id

	path, err := s.templatePath(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, err := yaml.Marshal(&tmpl)
	if err != nil {
		http.Error(w, "Failed to encode template", http.StatusInternalServerError)
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		http.Error(w, "Failed to write template", http.StatusInternalServerError)
		return
	}

	if err := s.reloadTemplates(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.broadcast("reload")

	writeJSONResponse(w, tmpl)
}
