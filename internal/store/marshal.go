package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/roach88/spanmerge/internal/canon"
)

// marshalRuleNames converts rule names to canonical JSON TEXT for storage.
func marshalRuleNames(names []string) (string, error) {
	if names == nil {
		names = []string{}
	}
	data, err := canon.Marshal(names)
	if err != nil {
		return "", fmt.Errorf("marshal rule names: %w", err)
	}
	return string(data), nil
}

// marshalCaptures stores named captures as canonical JSON, NULL when the
// rule has no named groups.
func marshalCaptures(groups map[string]string) (sql.NullString, error) {
	if groups == nil {
		return sql.NullString{}, nil
	}
	data, err := canon.Marshal(groups)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshal captures: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func unmarshalRuleNames(data string) ([]string, error) {
	names := []string{}
	if err := json.Unmarshal([]byte(data), &names); err != nil {
		return nil, fmt.Errorf("unmarshal rule names: %w", err)
	}
	return names, nil
}

func unmarshalCaptures(data sql.NullString) (map[string]string, error) {
	if !data.Valid {
		return nil, nil
	}
	groups := map[string]string{}
	if err := json.Unmarshal([]byte(data.String), &groups); err != nil {
		return nil, fmt.Errorf("unmarshal captures: %w", err)
	}
	return groups, nil
}
