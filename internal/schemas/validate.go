// Package schemas provides JSON Schema validation for admin-supplied payloads.
package schemas

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// careerTemplateSchema validates template upserts before they reach the
// template store. The roadmap property is an ordered object of stage label
// to action items.
const careerTemplateSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "CareerTemplate",
  "type": "object",
  "required": ["career", "required_skills", "roadmap", "default_actions"],
  "properties": {
    "career": {"type": "string", "minLength": 1},
    "summary": {"type": "string"},
    "required_skills": {
      "type": "array",
      "items": {"type": "string", "minLength": 1},
      "minItems": 1
    },
    "roadmap": {
      "type": "object",
      "minProperties": 1,
      "additionalProperties": {
        "type": "array",
        "items": {"type": "string"}
      }
    },
    "default_actions": {
      "type": "array",
      "items": {"type": "string"}
    },
    "prompts": {
      "type": "object",
      "additionalProperties": {"type": "string"}
    }
  },
  "additionalProperties": false
}`

// ValidationError represents a schema validation failure with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ValidateCareerTemplate validates raw template JSON against the template
// schema. Returns a *ValidationError listing every violation.
func ValidateCareerTemplate(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(careerTemplateSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to validate template JSON: %w", err)
	}

	if result.Valid() {
		return nil
	}

	ve := &ValidationError{}
	for _, resultErr := range result.Errors() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   resultErr.Field(),
			Message: resultErr.Description(),
		})
	}
	return ve
}
