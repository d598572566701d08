package model

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// sessionSchema describes the persisted session record. Records loaded from
// the store are validated before use so a corrupted or hand-edited file is
// reported instead of silently producing a broken session.
const sessionSchema = `{
  "type": "object",
  "required": ["id", "messages", "latex", "checkpoints"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "latex": {"type": "string"},
    "messages": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["role", "content"],
        "properties": {
          "role": {"type": "string", "enum": ["user", "assistant"]},
          "content": {"type": "string"}
        }
      }
    },
    "checkpoints": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["label", "latex"],
        "properties": {
          "label": {"type": "string"},
          "latex": {"type": "string"}
        }
      }
    }
  }
}`

// ValidateSessionJSON checks a raw persisted record against the session
// schema.
func ValidateSessionJSON(raw []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(sessionSchema)
	docLoader := gojsonschema.NewBytesLoader(raw)

	res, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	msgs := ""
	for _, e := range res.Errors() {
		msgs += fmt.Sprintf("%s; ", e.String())
	}
	return fmt.Errorf("session schema validation failed: %s", msgs)
}
