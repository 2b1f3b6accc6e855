package kuma

import (
	"testing"

	"github.com/autokuma-go/autokuma/internal/model"
	"github.com/stretchr/testify/require"
)

func tptr(s string) *string { return &s }

func TestDiffTagsAddsAndRemoves(t *testing.T) {
	current := []model.MonitorTag{
		{Name: tptr("AutoKuma"), Value: tptr("site")},
		{Name: tptr("env"), Value: tptr("staging")},
	}
	desired := []model.MonitorTag{
		{Name: tptr("AutoKuma"), Value: tptr("site")},
		{Name: tptr("env"), Value: tptr("prod")},
	}

	d := diffTags(current, desired)
	require.Len(t, d.Add, 1)
	require.Equal(t, "prod", *d.Add[0].Value)
	require.Len(t, d.Remove, 1)
	require.Equal(t, "staging", *d.Remove[0].Value)
}

func TestDiffTagsNoChange(t *testing.T) {
	tags := []model.MonitorTag{{Name: tptr("AutoKuma"), Value: tptr("site")}}
	d := diffTags(tags, tags)
	require.Empty(t, d.Add)
	require.Empty(t, d.Remove)
}
