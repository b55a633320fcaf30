package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaCache caches compiled record schemas by key.
var schemaCache sync.Map // map[string]*jsonschema.Schema

var (
	timestamp = map[string]any{"type": "string", "format": "date-time"}
	count     = map[string]any{"type": "integer", "minimum": 0}
	tableNum  = map[string]any{"type": "integer", "minimum": 1, "maximum": 12}
)

// recordSchemas describes the accepted shape of each persisted record.
var recordSchemas = map[string]map[string]any{
	KeyProfile: {
		"type":     "object",
		"required": []any{"name", "loginDate", "lastPlayDate"},
		"properties": map[string]any{
			"name":          map[string]any{"type": "string", "minLength": 1},
			"loginDate":     timestamp,
			"lastPlayDate":  timestamp,
			"totalPlayTime": count,
		},
	},
	KeyStats: {
		"type":     "object",
		"required": []any{"correct", "incorrect", "streak", "bestStreak", "totalBricks"},
		"properties": map[string]any{
			"correct":         count,
			"incorrect":       count,
			"streak":          count,
			"bestStreak":      count,
			"totalBricks":     count,
			"sessionsPlayed":  count,
			"perfectRounds":   count,
			"tablesCompleted": map[string]any{"type": []any{"array", "null"}, "items": tableNum},
		},
	},
	KeyBricks: {
		"type": "array",
		"items": map[string]any{
			"type":     "object",
			"required": []any{"id", "size", "timestamp"},
			"properties": map[string]any{
				"id":        map[string]any{"type": "string", "minLength": 1},
				"color":     map[string]any{"type": "string"},
				"size":      map[string]any{"enum": []any{"small", "normal", "large"}},
				"earnedFor": map[string]any{"type": "string"},
				"timestamp": timestamp,
			},
		},
	},
	KeyAchievements: {
		"type": "array",
		"items": map[string]any{
			"type":     "object",
			"required": []any{"id", "unlocked", "progress"},
			"properties": map[string]any{
				"id":           map[string]any{"type": "string", "minLength": 1},
				"unlocked":     map[string]any{"type": "boolean"},
				"progress":     count,
				"maxProgress":  count,
				"bricksEarned": count,
				"unlockedAt":   timestamp,
			},
		},
	},
	KeyBuilds: {
		"type": "array",
		"items": map[string]any{
			"type":     "object",
			"required": []any{"id", "modelId", "completedAt", "bricksUsed"},
			"properties": map[string]any{
				"id":          map[string]any{"type": "string", "minLength": 1},
				"modelId":     map[string]any{"type": "string", "minLength": 1},
				"completedAt": timestamp,
				"bricksUsed":  count,
			},
		},
	},
	KeySelectedTables: {
		"type":  "array",
		"items": tableNum,
	},
}

// decodeRecord validates raw against the schema registered for key and
// decodes it into dst.
func decodeRecord(key string, raw []byte, dst any) error {
	compiled, err := compiledSchema(key)
	if err != nil {
		return err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := compiled.Validate(inst); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// compiledSchema returns a cached compiled schema or compiles and caches it.
func compiledSchema(key string) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(key); ok {
		return cached.(*jsonschema.Schema), nil
	}

	def, ok := recordSchemas[key]
	if !ok {
		return nil, fmt.Errorf("no schema for record %q", key)
	}

	// The compiler wants a parsed JSON value, not Go literals.
	defBytes, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema %s: %w", key, err)
	}
	defParsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(defBytes))
	if err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", key, err)
	}

	c := jsonschema.NewCompiler()
	c.AssertFormat()
	schemaURL := fmt.Sprintf("schema://brickmath/%s.json", key)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", key, err)
	}

	schemaCache.Store(key, compiled)
	return compiled, nil
}
