package bounded

import (
	"encoding/json"
	"fmt"
	"math"
)

// jsonFloat encodes a finite float as a bare JSON number.
func jsonFloat(v float64) ([]byte, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("cannot encode non-finite value %v", v)
	}
	return json.Marshal(v)
}

// unquote decodes a JSON string token.
func unquote(data []byte) (string, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", err
	}
	return s, nil
}

// parseJSONFloat decodes a bare JSON number, rejecting non-finite values.
func parseJSONFloat(data []byte) (float64, error) {
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return 0, fmt.Errorf("decoding number: %w", err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %v: %w", v, ErrOutOfRange)
	}
	return v, nil
}
