package jsonfile

import (
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const taskSchemaURL = "tasks.schema.json"

// taskDocumentSchema describes the persisted document: an array of tasks.
const taskDocumentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "description", "done", "priority"],
    "properties": {
      "id": {"type": "integer", "minimum": 1},
      "description": {"type": "string"},
      "done": {"type": "boolean"},
      "priority": {"type": "integer", "minimum": 0, "maximum": 255}
    }
  }
}`

func compileTaskSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7

	if err := compiler.AddResource(taskSchemaURL, strings.NewReader(taskDocumentSchema)); err != nil {
		return nil, fmt.Errorf("add task schema: %w", err)
	}

	schema, err := compiler.Compile(taskSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile task schema: %w", err)
	}
	return schema, nil
}

// schemaViolations flattens a validation error into leaf messages keyed by
// instance location, e.g. "/0/priority: must be <= 255".
func schemaViolations(err error) []string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{err.Error()}
	}

	var out []string
	collectViolations(ve, &out)
	return out
}

func collectViolations(err *jsonschema.ValidationError, out *[]string) {
	if len(err.Causes) == 0 {
		loc := err.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*out = append(*out, fmt.Sprintf("%s: %s", loc, err.Message))
		return
	}
	for _, cause := range err.Causes {
		collectViolations(cause, out)
	}
}
