// Package validate checks produced documents against the target envelope
// schema before they reach any sink.
package validate

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/agentic-research/grimoire/api"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed document.schema.json
var documentSchema []byte

const schemaURL = "https://grimoire.invalid/document.schema.json"

// Violation is one schema failure at a JSON pointer inside the document.
type Violation struct {
	Path    string
	Message string
}

// Error lists every violation found in one document.
type Error struct {
	Violations []Violation
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Path+": "+v.Message)
	}
	return "document failed validation: " + strings.Join(parts, "; ")
}

// Validator holds the compiled document schema. It is safe for concurrent use.
type Validator struct {
	schema *jsonschema.Schema
}

// New compiles the embedded document schema.
func New() (*Validator, error) {
	var schemaDoc any
	if err := json.Unmarshal(documentSchema, &schemaDoc); err != nil {
		return nil, fmt.Errorf("document schema is invalid JSON: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, schemaDoc); err != nil {
		return nil, fmt.Errorf("failed to add document schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile document schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// Validate checks an encoded document.
func (v *Validator) Validate(data []byte) error {
	var inst any
	if err := json.Unmarshal(data, &inst); err != nil {
		return fmt.Errorf("document is not valid JSON: %w", err)
	}
	if err := v.schema.Validate(inst); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return &Error{Violations: leaves(verr, nil)}
		}
		return err
	}
	return nil
}

// Document encodes and validates doc, returning the encoded form for the
// sinks.
func (v *Validator) Document(doc *api.Document) ([]byte, error) {
	data, err := api.Encode(doc)
	if err != nil {
		return nil, err
	}
	if err := v.Validate(data); err != nil {
		return nil, err
	}
	return data, nil
}

var printer = message.NewPrinter(language.English)

// leaves flattens the cause tree to its most specific failures.
func leaves(verr *jsonschema.ValidationError, out []Violation) []Violation {
	if len(verr.Causes) == 0 {
		return append(out, Violation{
			Path:    "/" + strings.Join(verr.InstanceLocation, "/"),
			Message: verr.ErrorKind.LocalizedString(printer),
		})
	}
	for _, c := range verr.Causes {
		out = leaves(c, out)
	}
	return out
}
