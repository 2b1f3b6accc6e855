package kuma

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractResponse(t *testing.T) {
	payload := map[string]any{
		"ok": true,
		"monitor": map[string]any{
			"id":   float64(5),
			"tags": []any{map[string]any{"name": "env"}},
		},
	}

	v, err := extractResponse(payload, "/monitor/id")
	require.NoError(t, err)
	require.Equal(t, float64(5), v)

	v, err = extractResponse(payload, "/monitor/tags/0/name")
	require.NoError(t, err)
	require.Equal(t, "env", v)

	_, err = extractResponse(payload, "/missing/key")
	require.Error(t, err)
}

func TestExtractResponseRootPointer(t *testing.T) {
	payload := map[string]any{"a": 1}
	v, err := extractResponse(payload, "/")
	require.NoError(t, err)
	require.Equal(t, payload, v)
}
