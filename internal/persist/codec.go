// Package persist keeps the durable store in sync with the task collection.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/runoshun/tasklist/internal/domain"
)

// ErrInvalidSyntax is returned when a stored value is not valid JSON.
var ErrInvalidSyntax = errors.New("stored value is not valid JSON")

// collectionSchema describes the persisted layout: an array of task records.
const collectionSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "text", "completed"],
    "properties": {
      "id": {"type": "string"},
      "text": {"type": "string"},
      "completed": {"type": "boolean"}
    }
  }
}`

var schema = jsonschema.MustCompileString("tasks.schema.json", collectionSchema)

// record is the persisted form of a task.
type record struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Encode serializes tasks as a JSON array of records.
func Encode(tasks domain.Tasks) ([]byte, error) {
	records := make([]record, 0, tasks.Len())
	for _, t := range tasks.All() {
		records = append(records, record(t))
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("marshal tasks: %w", err)
	}
	return data, nil
}

// Decode parses a stored value.
//
// Invalid JSON returns ErrInvalidSyntax and no tasks. A document that does not
// match the persisted layout returns the salvageable tasks (none unless it is
// an array) together with an error wrapping domain.ErrMalformedState.
func Decode(data []byte) (domain.Tasks, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.Tasks{}, fmt.Errorf("%w: %v", ErrInvalidSyntax, err)
	}

	verr := schema.Validate(doc)
	tasks, wellFormed := domain.CoerceTasks(doc)
	if verr == nil && wellFormed {
		return tasks, nil
	}
	return tasks, fmt.Errorf("%w: %s", domain.ErrMalformedState, describe(verr))
}

// describe returns the first leaf schema violation as "path: message".
func describe(err error) string {
	if err == nil {
		return "unexpected record shape"
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	loc := ve.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return strings.TrimSpace(loc + ": " + ve.Message)
}
