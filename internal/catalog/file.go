package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// catalogSchema validates external catalog files before they are
// trusted. A malformed catalog is a startup error, unlike a missing
// combination lookup which is a normal "no result".
const catalogSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["species"],
  "properties": {
    "species": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "name", "rarity", "line", "level"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "name": {"type": "string"},
          "rarity": {"enum": ["common", "rare", "super_rare", "ultra_rare"]},
          "line": {"type": "string", "minLength": 1},
          "level": {"type": "integer", "minimum": 1},
          "service_bonus": {"type": "number", "minimum": 0},
          "attraction_bonus": {"type": "number", "minimum": 0},
          "parent_lines": {
            "type": "array",
            "items": {"type": "string"},
            "minItems": 2,
            "maxItems": 2
          }
        }
      }
    }
  }
}`

var compiledSchema = jsonschema.MustCompileString("catalog.schema.json", catalogSchema)

type fileDoc struct {
	Species []Species `json:"species"`
}

// LoadFile reads and validates a JSON catalog file. An empty path
// returns the built-in default catalog.
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}

	var generic any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	if err := compiledSchema.Validate(generic); err != nil {
		return nil, fmt.Errorf("catalog %s: schema: %w", path, err)
	}

	var doc fileDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return New(doc.Species)
}
