package gdata

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

func decodeJSON[T any](member string, value json.RawMessage, out *T) error {
	if err := json.Unmarshal(value, out); err != nil {
		return InvalidJSON(member, err.Error())
	}
	return nil
}

func isJSONNull(value json.RawMessage) bool {
	return strings.TrimSpace(string(value)) == "null"
}

// StringFromJSON stores a string member in out when name equals member.
func StringFromJSON(name string, value json.RawMessage, member string, opts ParseOption, out *string) (bool, error) {
	if name != member {
		return false, nil
	}
	if isJSONNull(value) {
		if opts&OptRequired != 0 {
			return true, RequiredJSONContentMissing(member)
		}
		*out = ""
		return true, nil
	}
	var s string
	if err := decodeJSON(member, value, &s); err != nil {
		return true, err
	}
	if opts&OptNonEmpty != 0 && s == "" {
		return true, RequiredJSONContentMissing(member)
	}
	*out = s
	return true, nil
}

// IntFromJSON stores an integer member in out when name equals member.
func IntFromJSON(name string, value json.RawMessage, member string, out *int64) (bool, error) {
	if name != member {
		return false, nil
	}
	var n int64
	if err := decodeJSON(member, value, &n); err != nil {
		return true, err
	}
	*out = n
	return true, nil
}

// Int64TimeFromJSON stores an ISO 8601 string member as Unix seconds.
func Int64TimeFromJSON(name string, value json.RawMessage, member string, opts ParseOption, out *int64) (bool, error) {
	if name != member {
		return false, nil
	}
	var s string
	if !isJSONNull(value) {
		if err := decodeJSON(member, value, &s); err != nil {
			return true, err
		}
	}
	if opts&OptRequired != 0 && s == "" {
		return true, RequiredJSONContentMissing(member)
	}
	t, ok := ParseISO8601(s)
	if !ok {
		return true, NotISO8601JSON(member, s)
	}
	*out = t
	return true, nil
}

// BooleanFromJSON stores a boolean member in out when name equals member.
func BooleanFromJSON(name string, value json.RawMessage, member string, out *bool) (bool, error) {
	if name != member {
		return false, nil
	}
	var b bool
	if err := decodeJSON(member, value, &b); err != nil {
		return true, err
	}
	*out = b
	return true, nil
}

// StrvFromJSON stores an array-of-strings member in out.
func StrvFromJSON(name string, value json.RawMessage, member string, out *[]string) (bool, error) {
	if name != member {
		return false, nil
	}
	var v []string
	if err := decodeJSON(member, value, &v); err != nil {
		return true, err
	}
	*out = v
	return true, nil
}

// Color is an RGB colour.
type Color struct {
	Red, Green, Blue uint8
}

// ParseColor reads "#RRGGBB" or "RRGGBB".
func ParseColor(s string) (Color, bool) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return Color{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, false
	}
	return Color{Red: uint8(v >> 16), Green: uint8(v >> 8), Blue: uint8(v)}, true
}

// Hex renders the colour as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.Red, c.Green, c.Blue)
}

// ColorFromJSON stores a hexadecimal RGB string member in out.
func ColorFromJSON(name string, value json.RawMessage, member string, opts ParseOption, out *Color) (bool, error) {
	if name != member {
		return false, nil
	}
	var s string
	if !isJSONNull(value) {
		if err := decodeJSON(member, value, &s); err != nil {
			return true, err
		}
	}
	if opts&OptRequired != 0 && s == "" {
		return true, RequiredJSONContentMissing(member)
	}
	c, ok := ParseColor(s)
	if !ok {
		return true, newParseError(ErrMalformedValue, member, "", s,
			"The content of a %s element (‘%s’) was not in hexadecimal RGB format.", member, s)
	}
	*out = c
	return true, nil
}
