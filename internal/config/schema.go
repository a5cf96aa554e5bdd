package config

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"
)

// Schema returns the JSON Schema describing flappy.yaml, for editors that
// validate YAML against JSON Schema.
func Schema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}

	schema := reflector.ReflectFromType(reflect.TypeOf(FlappyConfig{}))
	if schema == nil {
		return nil, fmt.Errorf("config: failed to reflect schema")
	}
	schema.Title = "Flappy Bird configuration"
	schema.Description = "Viewport, bird, physics and pipe parameters. Distances are world units."

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("config: marshal schema: %w", err)
	}
	return append(data, '\n'), nil
}
