package quizgen

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const questionSchemaURL = "hotsquiz://question.json"

// questionSchemaJSON is the object shape the prompt asks for. It only
// feeds drift reports; objects that fail it are still normalized.
const questionSchemaJSON = `{
  "type": "object",
  "required": ["type", "question", "answer"],
  "additionalProperties": false,
  "properties": {
    "id": {"type": "integer", "minimum": 1},
    "type": {"enum": ["multiple_choice", "matching"]},
    "question": {"type": "string", "minLength": 1},
    "options": {
      "oneOf": [
        {"type": "array", "items": {"type": "string"}, "minItems": 4, "maxItems": 4},
        {"type": "object", "additionalProperties": {"type": "string"}}
      ]
    },
    "answer": {
      "oneOf": [
        {"enum": ["A", "B", "C", "D"]},
        {"type": "array", "items": {"type": "integer", "minimum": 0}}
      ]
    },
    "correct_order": {"type": "array", "items": {"type": "integer", "minimum": 0}},
    "pairs": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["left", "right"],
        "properties": {"left": {"type": "string"}, "right": {"type": "string"}}
      }
    },
    "rationale": {"type": "string"},
    "cognitive_level": {"type": "string"},
    "hots": {"type": "string"}
  }
}`

var questionSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(questionSchemaJSON))
	if err != nil {
		return nil, err
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(questionSchemaURL, doc); err != nil {
		return nil, err
	}
	return c.Compile(questionSchemaURL)
})

// checkQuestionShape reports how raw departs from the expected question
// object. A nil error means the model followed the prompt exactly.
func checkQuestionShape(raw json.RawMessage) error {
	sch, err := questionSchema()
	if err != nil {
		return fmt.Errorf("compile question schema: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(string(raw)))
	if err != nil {
		return fmt.Errorf("not JSON: %w", err)
	}
	return sch.Validate(doc)
}
