package format

import (
	"encoding/json"
	"fmt"
)

// ConvertToPlainObject deep-copies v through a JSON round trip, leaving only
// what survives serialization.
func ConvertToPlainObject[T any](v T) (T, error) {
	var out T

	b, err := json.Marshal(v)
	if err != nil {
		return out, fmt.Errorf("json.Marshal: %w", err)
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, fmt.Errorf("json.Unmarshal: %w", err)
	}

	return out, nil
}
