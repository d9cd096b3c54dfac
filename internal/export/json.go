package export

import (
	"encoding/json"
	"fmt"
	"os"
)

// WriteJSON marshals v with indentation and writes it to path. All
// JSON exports (rankings, SERP analyses, audit reports) go through
// here.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
