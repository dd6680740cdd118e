package store

import (
	"encoding/json"
	"os"

	"seqclean/internal/clean"
)

// WriteJSON writes rows as an indented JSON array.
func WriteJSON(path string, rows []clean.Row) error {
	if rows == nil {
		rows = []clean.Row{}
	}
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadJSON reads rows written by WriteJSON.
func ReadJSON(path string) ([]clean.Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rows []clean.Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
