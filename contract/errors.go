package contract

import "fmt"

// UnknownTypeError is returned when a document type has no strategy.
type UnknownTypeError struct {
	Type DocumentType
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown document type %q", string(e.Type))
}

func (e *UnknownTypeError) GetType() DocumentType {
	return e.Type
}

// PayloadMismatchError is returned when a payload does not belong to the document type
// it is prepared for.
type PayloadMismatchError struct {
	Type DocumentType
	Got  string
	Want string
}

func (e *PayloadMismatchError) Error() string {
	return fmt.Sprintf("%s expects a %s payload, got %s", e.Type, e.Want, e.Got)
}

func (e *PayloadMismatchError) GetType() DocumentType {
	return e.Type
}
