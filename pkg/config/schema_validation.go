package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/getmockd/querygen/pkg/querygen"
	"github.com/getmockd/querygen/pkg/template"
)

// fileSchema is the JSON schema of querygen.yaml / querygen.json.
const fileSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["schema"],
  "additionalProperties": false,
  "properties": {
    "schema": {
      "oneOf": [
        {"type": "string", "minLength": 1},
        {"type": "array", "minItems": 1, "items": {"type": "string", "minLength": 1}}
      ]
    },
    "queryType": {"type": "string"},
    "queryName": {"type": "string"},
    "maxDepth": {"type": "integer", "minimum": 0},
    "nullGenerationStrategy": {"type": "string"},
    "seed": {"type": "integer", "minimum": 0},
    "factories": {
      "type": "object",
      "propertyNames": {"minLength": 1},
      "additionalProperties": {
        "type": "object",
        "additionalProperties": false,
        "minProperties": 1,
        "maxProperties": 1,
        "properties": {
          "value": true,
          "template": {"type": "string", "minLength": 1},
          "expr": {"type": "string", "minLength": 1}
        }
      }
    }
  }
}`

var (
	fileSchemaOnce     sync.Once
	fileSchemaCompiled *jsonschema.Schema
	fileSchemaErr      error
)

func compiledFileSchema() (*jsonschema.Schema, error) {
	fileSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("querygen.schema.json", strings.NewReader(fileSchema)); err != nil {
			fileSchemaErr = fmt.Errorf("failed to add schema resource: %w", err)
			return
		}
		fileSchemaCompiled, fileSchemaErr = compiler.Compile("querygen.schema.json")
	})
	return fileSchemaCompiled, fileSchemaErr
}

// ValidationError represents a single config validation error.
type ValidationError struct {
	Path    string // Config path, e.g., "factories.DateTime.expr"
	Message string
}

func (e ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// ValidationResult contains all validation errors for a config.
type ValidationResult struct {
	Errors []ValidationError
}

// IsValid returns true if there are no validation errors.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// Error returns a combined error message.
func (r *ValidationResult) Error() string {
	if r.IsValid() {
		return ""
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "\n")
}

// AddError adds a validation error.
func (r *ValidationResult) AddError(path, message string) {
	r.Errors = append(r.Errors, ValidationError{Path: path, Message: message})
}

func (r *ValidationResult) err() error {
	if r.IsValid() {
		return nil
	}
	return r
}

// validateDocument checks a decoded config document against the JSON schema.
func validateDocument(doc any) error {
	schema, err := compiledFileSchema()
	if err != nil {
		return err
	}
	err = schema.Validate(doc)
	if err == nil {
		return nil
	}

	result := &ValidationResult{}
	var verr *jsonschema.ValidationError
	if errors.As(err, &verr) {
		collectSchemaErrors(verr, result)
	} else {
		result.AddError("", err.Error())
	}
	return result.err()
}

// collectSchemaErrors extracts the leaf errors of a schema validation failure.
func collectSchemaErrors(err *jsonschema.ValidationError, result *ValidationResult) {
	if len(err.Causes) == 0 {
		result.AddError(pointerToPath(err.InstanceLocation), err.Message)
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(cause, result)
	}
}

// pointerToPath converts a JSON Pointer to dot notation.
func pointerToPath(pointer string) string {
	if pointer == "" || pointer == "/" {
		return ""
	}
	path := strings.TrimPrefix(pointer, "/")
	path = strings.ReplaceAll(path, "/", ".")
	path = strings.ReplaceAll(path, "~1", "/")
	return strings.ReplaceAll(path, "~0", "~")
}

// Validate checks the semantic rules the JSON schema cannot express: enum
// spellings and compilable templates and expressions.
func (f *File) Validate() error {
	result := &ValidationResult{}

	if len(f.Schema) == 0 {
		result.AddError("schema", "required")
	}
	if _, err := querygen.ParseQueryType(f.QueryType); err != nil {
		result.AddError("queryType", err.Error())
	}
	if _, err := querygen.ParseNullGenerationStrategy(f.NullGenerationStrategy); err != nil {
		result.AddError("nullGenerationStrategy", err.Error())
	}
	if f.MaxDepth < 0 {
		result.AddError("maxDepth", "must not be negative")
	}

	engine := template.New()
	patterns := make([]string, 0, len(f.Factories))
	for pattern := range f.Factories {
		patterns = append(patterns, pattern)
	}
	sort.Strings(patterns)
	for _, pattern := range patterns {
		spec := f.Factories[pattern]
		path := "factories." + pattern
		if pattern == "" {
			result.AddError("factories", "empty type pattern")
		}
		if spec.Template != "" && spec.Expr != "" {
			result.AddError(path, "template and expr are mutually exclusive")
			continue
		}
		switch spec.Kind() {
		case "template":
			if _, err := engine.Compile(spec.Template); err != nil {
				result.AddError(path+".template", err.Error())
			}
		case "expr":
			if _, err := compileExpr(spec.Expr); err != nil {
				result.AddError(path+".expr", err.Error())
			}
		}
	}

	return result.err()
}
