package resume

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

const schemaURL = "record.schema.json"

// recordSchema describes a saved record. Unknown keys are allowed.
const recordSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "name": {"type": ["string", "null"]},
    "summary": {"type": "string"},
    "skills": {"type": ["array", "null"], "items": {"type": "string"}},
    "experiences": {"type": ["array", "null"], "items": {"type": "string"}}
  }
}`

//nolint:gochecknoglobals // compiled once
var (
	compiledSchema *jsonschema.Schema
	schemaErr      error
	schemaOnce     sync.Once
)

func loadSchema() (schema *jsonschema.Schema, err error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		schemaErr = compiler.AddResource(schemaURL, strings.NewReader(recordSchema))
		if schemaErr != nil {
			schemaErr = errors.Wrap(schemaErr, "add record schema")
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
		if schemaErr != nil {
			schemaErr = errors.Wrap(schemaErr, "compile record schema")
		}
	})
	schema = compiledSchema
	err = schemaErr
	return schema, err
}

// Validate checks that data is a well-formed record document in format.
// An empty YAML document counts as an empty record.
func Validate(data []byte, format Format) (err error) {
	var doc interface{}
	doc, err = genericDocument(data, format)
	if err != nil {
		return err
	}

	var schema *jsonschema.Schema
	schema, err = loadSchema()
	if err != nil {
		return err
	}

	err = schema.Validate(doc)
	if err != nil {
		err = errors.Wrap(err, "record does not match schema")
		return err
	}
	return err
}

// genericDocument decodes data into the plain JSON value model the schema
// validator expects.
func genericDocument(data []byte, format Format) (doc interface{}, err error) {
	if format != FormatYAML {
		err = json.Unmarshal(data, &doc)
		if err != nil {
			err = errors.Wrap(err, "invalid JSON")
		}
		return doc, err
	}

	var raw interface{}
	err = yaml.Unmarshal(data, &raw)
	if err != nil {
		err = errors.Wrap(err, "invalid YAML")
		return doc, err
	}
	if raw == nil {
		doc = map[string]interface{}{}
		return doc, err
	}

	// Round trip through JSON so numbers and maps take their JSON shapes.
	var encoded []byte
	encoded, err = json.Marshal(raw)
	if err != nil {
		err = errors.Wrap(err, "invalid YAML document")
		return doc, err
	}
	err = json.Unmarshal(encoded, &doc)
	return doc, err
}
