package tools

import (
	"encoding/json"
	"fmt"

	invopopSchema "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v5"

	domainerrors "github.com/listenupapp/audiobook-mcp/internal/errors"
)

// reflector generates input schemas from argument structs. Extra properties
// stay allowed so clients sending unknown keys are not rejected.
var reflector = invopopSchema.Reflector{
	AllowAdditionalProperties: true,
	DoNotReference:            true,
	Anonymous:                 true,
}

// inputSchema is a tool's published schema and its compiled validator.
type inputSchema struct {
	raw      json.RawMessage
	compiled *jsonschema.Schema
}

// buildSchema reflects args into a JSON schema and compiles it.
func buildSchema(name string, args any) (inputSchema, error) {
	raw, err := json.Marshal(reflector.Reflect(args))
	if err != nil {
		return inputSchema{}, fmt.Errorf("marshal %s schema: %w", name, err)
	}

	compiled, err := jsonschema.CompileString(name+".json", string(raw))
	if err != nil {
		return inputSchema{}, fmt.Errorf("compile %s schema: %w", name, err)
	}

	return inputSchema{raw: raw, compiled: compiled}, nil
}

// validate checks raw arguments against the compiled schema.
func (s inputSchema) validate(raw json.RawMessage) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domainerrors.Validationf("invalid JSON arguments: %v", err)
	}
	if err := s.compiled.Validate(doc); err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeValidation, "arguments do not match schema")
	}
	return nil
}
