package loader

import (
	"fmt"

	"github.com/robinvdvleuten/contrato/contract"
)

// DecodeError is returned when a file cannot be decoded.
type DecodeError struct {
	Filename string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s: %v", e.Filename, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) GetFilename() string {
	return e.Filename
}

// UnknownTemplateError is returned when no template matches a lookup.
type UnknownTemplateError struct {
	ID   string
	Type contract.DocumentType
}

func (e *UnknownTemplateError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("unknown template %q", e.ID)
	}
	return fmt.Sprintf("no template for document type %q", string(e.Type))
}

func (e *UnknownTemplateError) GetTemplateID() string {
	return e.ID
}

func (e *UnknownTemplateError) GetType() contract.DocumentType {
	return e.Type
}

// DuplicateTemplateError is returned when two template files share an ID.
type DuplicateTemplateError struct {
	ID       string
	Filename string
}

func (e *DuplicateTemplateError) Error() string {
	return fmt.Sprintf("%s: duplicate template id %q", e.Filename, e.ID)
}

func (e *DuplicateTemplateError) GetTemplateID() string {
	return e.ID
}

func (e *DuplicateTemplateError) GetFilename() string {
	return e.Filename
}

// TemplateTypeError is returned when a template names an unknown document type or
// a template is selected for a document of another type.
type TemplateTypeError struct {
	ID   string
	Got  contract.DocumentType
	Want contract.DocumentType
}

func (e *TemplateTypeError) Error() string {
	if e.Want == "" {
		return fmt.Sprintf("template %q has unknown document type %q", e.ID, string(e.Got))
	}
	return fmt.Sprintf("template %q is for %s documents, not %s", e.ID, e.Got, e.Want)
}

func (e *TemplateTypeError) GetTemplateID() string {
	return e.ID
}

func (e *TemplateTypeError) GetType() contract.DocumentType {
	return e.Got
}
