package load

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrUnknownFormat indicates a file extension with no known decoder.
	ErrUnknownFormat = errors.New("unknown document format")
	// ErrUnknownReference indicates a type reference to an undefined definition.
	ErrUnknownReference = errors.New("unknown reference")
	// ErrUnknownNamespace indicates a definition in an undeclared namespace.
	ErrUnknownNamespace = errors.New("undeclared namespace")
	// ErrDuplicateDefinition indicates two definitions with the same qualified name.
	ErrDuplicateDefinition = errors.New("duplicate definition")
	// ErrInvalidType indicates a type the IR cannot express, e.g. a vector of vectors.
	ErrInvalidType = errors.New("invalid type")
)

// Error is returned for documents that cannot be decoded or resolved.
type Error struct {
	Path       string // source file, empty for in-memory documents
	Definition string // qualified definition name (if applicable)
	Field      string // field name (if applicable)
	Err        error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("load")
	if e.Path != "" {
		b.WriteString(": ")
		b.WriteString(e.Path)
	}
	if e.Definition != "" {
		b.WriteString(": ")
		b.WriteString(e.Definition)
		if e.Field != "" {
			b.WriteString(".")
			b.WriteString(e.Field)
		}
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsLoadError reports whether the error is a load Error.
func IsLoadError(err error) bool {
	var le *Error
	return errors.As(err, &le)
}
