package reconcile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildPlanPartitions(t *testing.T) {
	desired := map[string]string{
		"a": "desired-a",
		"b": "desired-b",
	}
	stored := map[string]int64{
		"b": 2,
		"c": 3,
	}

	p := buildPlan(desired, stored)

	require.Len(t, p.Create, 1)
	require.Equal(t, "a", p.Create[0].Name)

	require.Len(t, p.Update, 1)
	require.Equal(t, "b", p.Update[0].Name)
	require.Equal(t, int64(2), p.Update[0].RemoteID)

	require.Equal(t, []string{"c"}, p.Delete)
}

func TestBuildPlanEmpty(t *testing.T) {
	p := buildPlan(map[string]string{}, map[string]int64{})
	require.Empty(t, p.Create)
	require.Empty(t, p.Update)
	require.Empty(t, p.Delete)
}
