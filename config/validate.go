package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/rickchristie/listen"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.uber.org/multierr"
)

var documentSchema = map[string]any{
	"type":                 "object",
	"additionalProperties": false,
	"properties": map[string]any{
		"log_level": map[string]any{"type": "string"},
		"listeners": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"required":             []any{"source"},
				"properties": map[string]any{
					"source": map[string]any{"type": "string", "minLength": 1},
					"args":   map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				},
			},
		},
		"lua": map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"properties": map[string]any{
				"timeout": map[string]any{"type": "string"},
			},
		},
		"metrics": map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"properties": map[string]any{
				"enabled":   map[string]any{"type": "boolean"},
				"namespace": map[string]any{"type": "string", "pattern": "^[a-zA-Z_][a-zA-Z0-9_]*$"},
			},
		},
		"console": map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"properties": map[string]any{
				"level":    map[string]any{"type": "string"},
				"no_color": map[string]any{"type": "boolean"},
			},
		},
	},
}

var compiledSchema = mustCompile(documentSchema)

// ValidationError wraps a schema validation failure.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks cfg against the configuration schema and checks that the
// levels and the Lua timeout are valid. All problems are reported together.
func Validate(cfg Config) error {
	var err error
	if doc, derr := toDocument(cfg); derr != nil {
		err = multierr.Append(err, derr)
	} else if verr := compiledSchema.Validate(doc); verr != nil {
		err = multierr.Append(err, &ValidationError{Err: verr})
	}
	if cfg.LogLevel != "" {
		if _, lerr := listen.NewLevelFilter(cfg.LogLevel); lerr != nil {
			err = multierr.Append(err, lerr)
		}
	}
	if cfg.Console.Level != "" {
		if _, lerr := zerolog.ParseLevel(cfg.Console.Level); lerr != nil {
			err = multierr.Append(err, fmt.Errorf("invalid console level %q", cfg.Console.Level))
		}
	}
	if _, terr := cfg.LuaTimeout(); terr != nil {
		err = multierr.Append(err, terr)
	}
	return err
}

func toDocument(cfg Config) (any, error) {
	b, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(b))
}

func mustCompile(raw map[string]any) *jsonschema.Schema {
	b, err := json.Marshal(raw)
	if err != nil {
		panic(fmt.Errorf("failed to marshal schema: %w", err))
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		panic(fmt.Errorf("failed to parse schema: %w", err))
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("config.json", doc); err != nil {
		panic(fmt.Errorf("failed to add schema resource: %w", err))
	}
	compiled, err := c.Compile("config.json")
	if err != nil {
		panic(fmt.Errorf("failed to compile schema: %w", err))
	}
	return compiled
}
