package lessons

import "github.com/abhisek/mathwheel/internal/llm"

// StorySchema is the JSON shape of a buddy story.
var StorySchema = &llm.Schema{
	Name:        "buddy-story",
	Description: "A very short story in which an animal buddy walks a child through one arithmetic question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Playful title, 2-6 words",
			},
			"story": map[string]any{
				"type":        "string",
				"description": "2-4 short sentences that act out the question with everyday objects",
			},
			"steps": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    1,
				"maxItems":    4,
				"description": "Numbered working steps ending in the correct answer",
			},
		},
		"required":             []string{"title", "story", "steps"},
		"additionalProperties": false,
	},
}
