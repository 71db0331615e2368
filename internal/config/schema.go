package config

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// GenerateSchema produces a JSON schema document for the configuration,
// suitable for editor validation of .optdoc.yaml files.
func GenerateSchema() ([]byte, error) {
	r := new(jsonschema.Reflector)
	schema := r.Reflect(&Config{})

	schema.ID = "https://github.com/optdoc/optdoc/config.schema.json"
	schema.Title = "optdoc Configuration"
	schema.Description = "Configuration schema for optdoc, a documentation generator for module options"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	return data, nil
}
