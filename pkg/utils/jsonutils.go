package utils

import (
	"encoding/json"
	"fmt"
)

// FormatJSON formats a value as JSON with 2-space indentation
func FormatJSON(data interface{}) (string, error) {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error formatting JSON: %w", err)
	}
	return string(bytes), nil
}
