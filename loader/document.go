package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/robinvdvleuten/contrato/contract"
	"github.com/robinvdvleuten/contrato/telemetry"
	"gopkg.in/yaml.v3"
)

// Document is a payload file: the document type, an optional template and the
// type-specific form data.
type Document struct {
	Type       contract.DocumentType
	TemplateID string
	Payload    contract.Payload
}

type yamlDocument struct {
	Type       string    `yaml:"document_type"`
	TemplateID string    `yaml:"template_id"`
	Payload    yaml.Node `yaml:"payload"`
}

type jsonDocument struct {
	Type       string          `json:"document_type"`
	TemplateID string          `json:"template_id"`
	Payload    json.RawMessage `json:"payload"`
}

// LoadDocument reads a payload file. Use "-" to read from standard input as YAML.
func (l *Loader) LoadDocument(ctx context.Context, filename string) (*Document, error) {
	timer := telemetry.FromContext(ctx).Start("load " + filepath.Base(filename))
	defer timer.End()

	var (
		data []byte
		err  error
	)
	if filename == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(filename)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	return ParseDocument(filename, data)
}

// ParseDocument decodes a payload document. filename selects the format and is used
// in error messages.
func ParseDocument(filename string, data []byte) (*Document, error) {
	if isJSON(filename) {
		var raw jsonDocument
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, &DecodeError{Filename: filename, Err: err}
		}
		return newDocument(filename, raw.Type, raw.TemplateID, func(p contract.Payload) error {
			if len(raw.Payload) == 0 || string(raw.Payload) == "null" {
				return nil
			}
			return json.Unmarshal(raw.Payload, p)
		})
	}

	var raw yamlDocument
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &DecodeError{Filename: filename, Err: err}
	}
	return newDocument(filename, raw.Type, raw.TemplateID, func(p contract.Payload) error {
		if raw.Payload.Kind == 0 {
			return nil
		}
		return raw.Payload.Decode(p)
	})
}

func newDocument(filename, typeName, templateID string, decodePayload func(contract.Payload) error) (*Document, error) {
	docType, err := contract.ParseDocumentType(typeName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	payload, err := contract.NewPayload(docType)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if err := decodePayload(payload); err != nil {
		return nil, &DecodeError{Filename: filename, Err: err}
	}

	return &Document{Type: docType, TemplateID: templateID, Payload: payload}, nil
}

// MarshalDocument encodes doc as a YAML payload document.
func MarshalDocument(doc *Document) ([]byte, error) {
	out := struct {
		Type       string           `yaml:"document_type"`
		TemplateID string           `yaml:"template_id,omitempty"`
		Payload    contract.Payload `yaml:"payload"`
	}{
		Type:       string(doc.Type),
		TemplateID: doc.TemplateID,
		Payload:    doc.Payload,
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
