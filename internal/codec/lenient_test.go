package codec

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntUnmarshalLenient(t *testing.T) {
	cases := []struct {
		name string
		data string
		want Int
	}{
		{"native number", `42`, 42},
		{"string number", `"42"`, 42},
		{"string float", `"42.5"`, 42},
		{"null", `null`, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var i Int
			require.NoError(t, json.Unmarshal([]byte(c.data), &i))
			require.Equal(t, c.want, i)
		})
	}
}

func TestIntMarshalsCanonical(t *testing.T) {
	b, err := json.Marshal(Int(7))
	require.NoError(t, err)
	require.Equal(t, "7", string(b))
}

func TestBoolUnmarshalLenient(t *testing.T) {
	cases := []struct {
		name string
		data string
		want Bool
	}{
		{"native true", `true`, true},
		{"string true", `"true"`, true},
		{"numeric one", `1`, true},
		{"numeric zero", `0`, false},
		{"string one", `"1"`, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var b Bool
			require.NoError(t, json.Unmarshal([]byte(c.data), &b))
			require.Equal(t, c.want, b)
		})
	}
}

func TestStringSliceUnmarshalLenient(t *testing.T) {
	var s StringSlice
	require.NoError(t, json.Unmarshal([]byte(`["a","b"]`), &s))
	require.Equal(t, StringSlice{"a", "b"}, s)

	var s2 StringSlice
	require.NoError(t, json.Unmarshal([]byte(`"[\"a\",\"b\"]"`), &s2))
	require.Equal(t, StringSlice{"a", "b"}, s2)
}

func TestStringMapUnmarshalLenient(t *testing.T) {
	var m StringMap
	require.NoError(t, json.Unmarshal([]byte(`{"a":"1"}`), &m))
	require.Equal(t, StringMap{"a": "1"}, m)

	var m2 StringMap
	require.NoError(t, json.Unmarshal([]byte(`"{\"a\":\"1\"}"`), &m2))
	require.Equal(t, StringMap{"a": "1"}, m2)
}
