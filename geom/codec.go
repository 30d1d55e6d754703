package geom

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrOutOfRange is returned when a decoded coordinate falls outside the
// signed unit square.
var ErrOutOfRange = errors.New("component outside [-1, 1]")

// Points and complex values serialize as human-editable "(x, y)" strings
// rather than structured objects, so saved artefacts stay diffable and
// hand-tweakable.

var pairRE = regexp.MustCompile(`\(\s*(-?[\d\.]+)\s*,\s*(-?[\d\.]+)\s*\)`)

func marshalPair(s string) ([]byte, error) {
	return json.Marshal(s)
}

func unmarshalString(data []byte, s *string) error {
	return json.Unmarshal(data, s)
}

func unmarshalPair(data []byte, kind string) (x, y float64, err error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return 0, 0, fmt.Errorf("decoding %s: %w", kind, err)
	}

	caps := pairRE.FindStringSubmatch(s)
	if caps == nil {
		return 0, 0, fmt.Errorf("invalid %s %q: want a pair like \"(0.0, 0.0)\"", kind, s)
	}

	x, err = strconv.ParseFloat(caps[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid %s x component %q: %w", kind, caps[1], err)
	}
	y, err = strconv.ParseFloat(caps[2], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid %s y component %q: %w", kind, caps[2], err)
	}

	if x < -1.0 || x > 1.0 || y < -1.0 || y > 1.0 {
		return 0, 0, fmt.Errorf("%s %q: %w", kind, s, ErrOutOfRange)
	}
	return x, y, nil
}
