package usecase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const quizSchemaURL = "schema://generated-quiz.json"

var quizSchemaDefinition = map[string]any{
	"type":     "object",
	"required": []any{"questions"},
	"properties": map[string]any{
		"questions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"question", "options", "correctAnswer", "explanation"},
				"properties": map[string]any{
					"question": map[string]any{"type": "string", "minLength": 1},
					"options": map[string]any{
						"type":     "array",
						"minItems": 4,
						"maxItems": 4,
						"items":    map[string]any{"type": "string"},
					},
					"correctAnswer": map[string]any{"type": "string", "minLength": 1},
					"explanation":   map[string]any{"type": "string"},
				},
			},
		},
	},
}

var (
	quizSchema     *jsonschema.Schema
	quizSchemaErr  error
	quizSchemaOnce sync.Once
)

func compiledQuizSchema() (*jsonschema.Schema, error) {
	quizSchemaOnce.Do(func() {
		raw, err := json.Marshal(quizSchemaDefinition)
		if err != nil {
			quizSchemaErr = fmt.Errorf("marshal quiz schema: %w", err)
			return
		}
		// The compiler wants a decoded JSON document, not Go literals.
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			quizSchemaErr = fmt.Errorf("parse quiz schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(quizSchemaURL, doc); err != nil {
			quizSchemaErr = fmt.Errorf("add quiz schema: %w", err)
			return
		}
		quizSchema, quizSchemaErr = c.Compile(quizSchemaURL)
	})
	return quizSchema, quizSchemaErr
}
