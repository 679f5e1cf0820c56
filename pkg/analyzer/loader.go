package analyzer

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadError is returned by Load when a document cannot be turned into a
// usable tree. Kind distinguishes empty input, malformed YAML and valid
// YAML with the wrong top-level shape.
type LoadError struct {
	Kind    FailureKind
	Message string
	Err     error
}

func (e *LoadError) Error() string { return e.Message }

func (e *LoadError) Unwrap() error { return e.Err }

// Load parses raw pipeline text into a generic document tree. The parser
// is yaml.v3, which never executes document content. A valid document must
// have a mapping at the top level; anything else is rejected here rather
// than surfacing as confusing zero-fact results downstream.
func Load(raw string) (Document, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, &LoadError{Kind: FailureEmptyInput, Message: "Empty YAML content"}
	}

	var root interface{}
	if err := yaml.Unmarshal([]byte(trimmed), &root); err != nil {
		return nil, &LoadError{
			Kind:    FailureInvalidSyntax,
			Message: fmt.Sprintf("Invalid YAML: %v", err),
			Err:     err,
		}
	}

	doc, ok := root.(map[string]interface{})
	if !ok || len(doc) == 0 {
		return nil, &LoadError{Kind: FailureInvalidStructure, Message: "Invalid YAML structure"}
	}

	return doc, nil
}
