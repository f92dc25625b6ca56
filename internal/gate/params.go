package gate

import (
	"encoding/json"
	"math"
)

// Params is a decoded inbound request body.
type Params map[string]any

// Truthy reports whether v counts as present: nil, "", 0, NaN and false do not.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case bool:
		return x
	case float64:
		return x != 0 && !math.IsNaN(x)
	case float32:
		return x != 0 && !math.IsNaN(float64(x))
	case int:
		return x != 0
	case int64:
		return x != 0
	case int32:
		return x != 0
	case json.Number:
		f, err := x.Float64()

		return err != nil || f != 0
	default:
		return true
	}
}

// MissingFields returns the required keys whose values are absent or falsy,
// in the order they were required.
func MissingFields(params map[string]any, required []string) []string {
	var missing []string

	for _, field := range required {
		if !Truthy(params[field]) {
			missing = append(missing, field)
		}
	}

	return missing
}

// Or returns the value for key when truthy, otherwise def.
func (p Params) Or(key string, def any) any {
	if v := p[key]; Truthy(v) {
		return v
	}

	return def
}

// StringField returns the value for key when it is a string.
func (p Params) StringField(key string) (string, bool) {
	s, ok := p[key].(string)

	return s, ok
}

// copyTruthy copies the truthy values of keys from p into dst.
func (p Params) copyTruthy(dst map[string]any, keys ...string) {
	for _, key := range keys {
		if v := p[key]; Truthy(v) {
			dst[key] = v
		}
	}
}
