package cli

import (
	"reflect"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/haivivi/pcbuf/pkg/jsontime"
	"github.com/haivivi/pcbuf/pkg/orchestrator"
)

// RunFileSchema returns the JSON Schema of a run file as read by
// LoadRequest: every key is optional, unknown keys are not allowed and
// durations are strings such as "150ms".
func RunFileSchema() (*jsonschema.Schema, error) {
	s, err := jsonschema.For[orchestrator.Config](&jsonschema.ForOptions{
		TypeSchemas: map[reflect.Type]*jsonschema.Schema{
			reflect.TypeFor[jsontime.Duration](): {
				Type:        "string",
				Description: `duration such as "150ms" or "1.5s"`,
			},
		},
	})
	if err != nil {
		return nil, err
	}
	s.Title = "pcbuf run file"
	s.Required = nil
	s.AdditionalProperties = &jsonschema.Schema{Not: &jsonschema.Schema{}} // false schema
	return s, nil
}
