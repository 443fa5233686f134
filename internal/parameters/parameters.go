// Package parameters handles the generic configuration Params the user can
// pass to AI players as a "key=value,..." string, e.g.
// "threat,ab,max_depth=12".
package parameters

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Params represent generic configuration parameters.
type Params map[string]string

// NewFromConfigString creates Params from the user's comma-separated
// configuration string. A part without "=" maps to the empty value, which
// bool parameters interpret as true. See GetParamOr and PopParamOr to read
// values back.
func NewFromConfigString(config string) Params {
	params := make(Params)
	if config == "" {
		return params
	}
	for _, part := range strings.Split(config, ",") {
		key, value, _ := strings.Cut(part, "=")
		params[key] = value
	}
	return params
}

// GetParamOr parses the parameter under key to the given type, or returns
// defaultValue if the key is absent. For bool types a key present without a
// value counts as true.
func GetParamOr[T interface {
	bool | int | float32 | string
}](params Params, key string, defaultValue T) (T, error) {
	value, exists := params[key]
	if !exists {
		return defaultValue, nil
	}
	var parsed any
	switch any(defaultValue).(type) {
	case string:
		parsed = value
	case int:
		if value == "" {
			return defaultValue, nil
		}
		v, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue, errors.Wrapf(err, "failed to parse configuration %s=%q to int", key, value)
		}
		parsed = v
	case float32:
		if value == "" {
			return defaultValue, nil
		}
		v, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return defaultValue, errors.Wrapf(err, "failed to parse configuration %s=%q to float", key, value)
		}
		parsed = float32(v)
	case bool:
		switch strings.ToLower(value) {
		case "", "true", "1":
			parsed = true
		case "false", "0":
			parsed = false
		default:
			return defaultValue, errors.Errorf("failed to parse configuration %s=%q to bool", key, value)
		}
	}
	return parsed.(T), nil
}

// PopParamOr is like GetParamOr, but also deletes the retrieved parameter
// from the map. It allows callers to check for leftover (unknown)
// parameters at the end of parsing.
func PopParamOr[T interface {
	bool | int | float32 | string
}](params Params, key string, defaultValue T) (T, error) {
	value, err := GetParamOr(params, key, defaultValue)
	if err != nil {
		return value, err
	}
	delete(params, key)
	return value, nil
}
