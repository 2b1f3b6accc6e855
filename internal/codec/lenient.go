// Package codec implements lenient JSON decoding for values that Uptime
// Kuma's Socket.IO API sometimes emits as JSON-encoded strings instead of
// native types (numbers, booleans, arrays, objects), while always encoding
// back to the canonical native form.
package codec

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Int decodes either a JSON number or a string containing a number, and
// always marshals back to a plain JSON number.
type Int int64

func (i Int) MarshalJSON() ([]byte, error) {
	return json.Marshal(int64(i))
}

func (i *Int) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*i = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			f, ferr := strconv.ParseFloat(s, 64)
			if ferr != nil {
				return err
			}
			v = int64(f)
		}
		*i = Int(v)
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		var f float64
		if ferr := json.Unmarshal(data, &f); ferr != nil {
			return err
		}
		v = int64(f)
	}
	*i = Int(v)
	return nil
}

// Float decodes either a JSON number or a numeric string.
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(f))
}

func (f *Float) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*f = Float(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

// Bool decodes a JSON bool, a numeric 0/1, or a "true"/"false" string.
type Bool bool

func (b Bool) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(b))
}

func (b *Bool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || string(data) == "null":
		*b = false
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*b = Bool(strings.EqualFold(s, "true") || s == "1")
	default:
		var v bool
		if err := json.Unmarshal(data, &v); err == nil {
			*b = Bool(v)
			return nil
		}
		var n int
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*b = n != 0
	}
	return nil
}

// StringSlice decodes either a native JSON array of strings or a string
// holding a JSON-encoded array (as Kuma's frontend sometimes serializes
// comma-joined fields). Always marshals back to a native array.
type StringSlice []string

func (s StringSlice) MarshalJSON() ([]byte, error) {
	if s == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal([]string(s))
}

func (s *StringSlice) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*s = nil
		return nil
	}
	if data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return err
		}
		if inner == "" {
			*s = nil
			return nil
		}
		var v []string
		if err := json.Unmarshal([]byte(inner), &v); err != nil {
			return err
		}
		*s = v
		return nil
	}
	var v []string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = v
	return nil
}

// StringMap decodes either a native JSON object or a string holding a
// JSON-encoded object, always marshaling back to a native object.
type StringMap map[string]string

func (m StringMap) MarshalJSON() ([]byte, error) {
	if m == nil {
		return json.Marshal(map[string]string{})
	}
	return json.Marshal(map[string]string(m))
}

func (m *StringMap) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*m = nil
		return nil
	}
	if data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return err
		}
		if inner == "" {
			*m = nil
			return nil
		}
		data = []byte(inner)
	}
	var v map[string]string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = v
	return nil
}
