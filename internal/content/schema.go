package content

// catalogSchema is the JSON schema a catalog document must satisfy before it
// is decoded. Cross-reference checks (unknown zones, duplicate ids) happen
// after decoding in validate.
var catalogSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"zones": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":   map[string]any{"type": "string", "minLength": 1},
					"name": map[string]any{"type": "string", "minLength": 1},
				},
				"required": []any{"id", "name"},
			},
		},
		"questions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":         map[string]any{"type": "string", "minLength": 1},
					"zone":       map[string]any{"type": "string"},
					"difficulty": map[string]any{"type": "string", "enum": []any{"basic", "core", "challenge"}},
					"question":   map[string]any{"type": "string", "minLength": 1},
					"options": map[string]any{
						"type":     "array",
						"minItems": 2,
						"items":    map[string]any{"type": "string"},
					},
					"correctIndex": map[string]any{"type": "integer", "minimum": 0},
					"explanation":  map[string]any{"type": "string"},
					"xp":           map[string]any{"type": "integer", "minimum": 1},
				},
				"required":             []any{"id", "difficulty", "question", "options", "correctIndex", "xp"},
				"additionalProperties": false,
			},
		},
		"nodes": map[string]any{
			"type":     "array",
			"minItems": NodeCount,
			"maxItems": NodeCount,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name": map[string]any{"type": "string", "minLength": 1},
					"zone": map[string]any{"type": "string", "minLength": 1},
				},
				"required": []any{"name", "zone"},
			},
		},
		"achievements": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":          map[string]any{"type": "string", "minLength": 1},
					"name":        map[string]any{"type": "string"},
					"description": map[string]any{"type": "string"},
					"rule": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"kind": map[string]any{"type": "string", "enum": []any{
								"total_tiles", "zone_tiles", "streak", "level",
								"total_xp", "nodes_completed", "map_cleared", "boss_cleared",
							}},
							"zone":  map[string]any{"type": "string"},
							"count": map[string]any{"type": "integer", "minimum": 0},
						},
						"required": []any{"kind"},
					},
				},
				"required": []any{"id", "name", "rule"},
			},
		},
	},
	"required": []any{"zones", "questions", "nodes", "achievements"},
}
