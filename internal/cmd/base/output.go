package base

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Render formats v for display.
func Render(format string, v any) (string, error) {
	switch format {
	case FormatYAML:
		b, err := yaml.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("error rendering YAML: %w", err)
		}
		return string(b), nil
	default:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", fmt.Errorf("error rendering JSON: %w", err)
		}
		return string(b), nil
	}
}
