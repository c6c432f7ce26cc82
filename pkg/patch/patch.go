// Package patch inspects partial-update bodies for fields that were sent
// with an explicit JSON null.
package patch

import (
	"bytes"
	"encoding/json"
	"sort"
)

var null = []byte("null")

// NullFields returns the fields of the JSON object in data whose value is
// null, restricted to the given names and sorted.
func NullFields(data []byte, fields ...string) ([]string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	var nulls []string
	for _, field := range fields {
		value, ok := raw[field]
		if ok && bytes.Equal(bytes.TrimSpace(value), null) {
			nulls = append(nulls, field)
		}
	}
	sort.Strings(nulls)

	return nulls, nil
}
