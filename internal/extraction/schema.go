package extraction

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// responseSchema accepts a flat object or a list of flat objects whose values are scalars.
const responseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "definitions": {
    "record": {
      "type": "object",
      "additionalProperties": {"type": ["string", "number", "boolean", "null"]}
    }
  },
  "oneOf": [
    {"$ref": "#/definitions/record"},
    {"type": "array", "items": {"$ref": "#/definitions/record"}}
  ]
}`

func compileResponseSchema() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(responseSchema))
}

// validateShape checks raw model output against the response schema.
func validateShape(schema *gojsonschema.Schema, raw string) error {
	result, err := schema.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return &Error{Kind: KindParse, Message: "response is not valid JSON", Cause: err}
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		problems = append(problems, e.String())
	}
	return &Error{
		Kind:    KindSchema,
		Message: fmt.Sprintf("response is not a list of flat records: %s", strings.Join(problems, "; ")),
	}
}
