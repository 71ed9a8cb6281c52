package config

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/hyperoop/internal/errors"
)

const schemaURL = "https://hyperoop.dev/schemas/config.schema.json"

// configSchema describes hyperoop.json. Value rules that depend on more than
// one field stay in Validate.
const configSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "name": {"type": "string"},
    "preview": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "port": {"type": "integer", "minimum": 0, "maximum": 65535},
        "host": {"type": "string"},
        "app": {"type": "string"}
      }
    },
    "history": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "depth": {"type": "integer"}
      }
    },
    "snapshot": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "dir": {"type": "string"},
        "db": {"type": "string"},
        "redis": {"type": "string"},
        "bucket": {"type": "string"},
        "prefix": {"type": "string"},
        "region": {"type": "string"}
      }
    },
    "metrics": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "enabled": {"type": "boolean"},
        "namespace": {"type": "string", "pattern": "^[a-zA-Z_][a-zA-Z0-9_]*$"},
        "path": {"type": "string"}
      }
    },
    "log": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "level": {"type": "string"},
        "format": {"type": "string"}
      }
    }
  }
}`

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(schemaURL, strings.NewReader(configSchema)); err != nil {
		return nil, err
	}
	return c.Compile(schemaURL)
})

// isYAML reports whether path names a YAML config file.
func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// normalize converts a YAML document to JSON. JSON input is returned as is.
func normalize(path string, data []byte) ([]byte, error) {
	if !isYAML(path) {
		return data, nil
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that " + filepath.Base(path) + " is valid YAML")
	}
	if doc == nil {
		doc = map[string]any{}
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to convert " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Use string keys only")
	}
	return out, nil
}

// toYAML re-encodes a JSON document as YAML.
func toYAML(data []byte) ([]byte, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}

// checkSchema validates a JSON document against the config schema.
func checkSchema(path string, data []byte) error {
	schema, err := compileSchema()
	if err != nil {
		return errors.New("E121").WithDetail("schema: " + err.Error())
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return errors.New("E120").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that " + filepath.Base(path) + " is valid JSON")
	}
	if err := schema.Validate(doc); err != nil {
		return errors.New("E121").
			WithDetail(filepath.Base(path) + ": " + err.Error())
	}
	return nil
}
