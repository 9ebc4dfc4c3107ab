package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Executor handles tool dispatch with argument decoding and validation.
// Every failure becomes a result string the LLM can read and react to;
// nothing raises past this boundary.
type Executor struct {
	registry *Registry
	logger   *zap.Logger
}

// NewExecutor creates a new tool executor.
func NewExecutor(registry *Registry, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{registry: registry, logger: logger}
}

// Execute runs a tool by name with JSON-encoded arguments and returns its
// display string. Unknown tools and malformed arguments produce an error
// string rather than a dispatch failure.
func (e *Executor) Execute(ctx context.Context, toolName, rawArgs string) string {
	start := time.Now()

	tool, exists := e.registry.Get(toolName)
	if !exists {
		e.logger.Warn("unknown tool requested", zap.String("tool", toolName))
		return fmt.Sprintf("Error: unknown tool %q. Available tools: %s",
			toolName, strings.Join(e.registry.List(), ", "))
	}

	args := make(map[string]any)
	if strings.TrimSpace(rawArgs) != "" {
		if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
			return fmt.Sprintf("Error: invalid arguments for %s: %v", toolName, err)
		}
	}

	if err := validateArgs(tool, args); err != nil {
		return fmt.Sprintf("Error: invalid arguments for %s: %v", toolName, err)
	}
	args = applyDefaults(tool, args)

	output := tool.Execute(ctx, args)

	e.logger.Debug("tool executed",
		zap.String("tool", toolName),
		zap.Duration("duration", time.Since(start)))

	return output
}

// validateArgs checks required parameters, primitive types, and enum values
// before dispatch.
func validateArgs(tool Tool, args map[string]any) error {
	for _, def := range tool.Parameters() {
		value, exists := args[def.Name]

		if def.Required && !exists {
			return fmt.Errorf("missing required parameter: %s", def.Name)
		}
		if !exists {
			continue
		}

		if err := checkType(value, def.Type); err != nil {
			return fmt.Errorf("parameter %s: %w", def.Name, err)
		}

		if len(def.Enum) > 0 {
			s, _ := value.(string)
			valid := false
			for _, allowed := range def.Enum {
				if s == allowed {
					valid = true
					break
				}
			}
			if !valid {
				return fmt.Errorf("invalid value for %s: must be one of %v", def.Name, def.Enum)
			}
		}
	}
	return nil
}

func checkType(value any, expected string) error {
	switch expected {
	case "string":
		if _, ok := value.(string); ok {
			return nil
		}
	case "number":
		if _, ok := value.(float64); ok {
			return nil
		}
	case "boolean":
		if _, ok := value.(bool); ok {
			return nil
		}
	default:
		return fmt.Errorf("unsupported schema type %q", expected)
	}
	return fmt.Errorf("expected %s but got %T", expected, value)
}

// applyDefaults fills in default values for missing optional parameters.
func applyDefaults(tool Tool, args map[string]any) map[string]any {
	out := make(map[string]any, len(args))
	for k, v := range args {
		out[k] = v
	}
	for _, def := range tool.Parameters() {
		if _, exists := out[def.Name]; !exists && def.Default != "" {
			out[def.Name] = def.Default
		}
	}
	return out
}
