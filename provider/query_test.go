package provider

import (
	"context"
	"testing"

	"github.com/gammadia/mithril/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryInstancesMapsStatuses(t *testing.T) {
	client := newFakeClient()
	client.instances = []api.Instance{
		{ID: "i-1", Name: "demo-head", Status: api.StatusRunning},
		{ID: "i-2", Name: "demo-worker1", Status: api.StatusPaused},
		{ID: "i-3", Name: "demo-worker2", Status: api.StatusTerminated},
	}
	p := newTestProvider(client)

	statuses, err := p.QueryInstances(context.Background(), "demo", true)
	require.NoError(t, err)

	assert.Equal(t, map[string]ClusterStatus{
		"i-1": StatusUp,
		"i-2": StatusStopped,
	}, statuses)
}

func TestQueryInstancesUnrestrictedKeepsTerminated(t *testing.T) {
	client := newFakeClient()
	client.instances = []api.Instance{
		{ID: "i-1", Name: "demo-head", Status: api.StatusRunning},
		{ID: "i-2", Name: "demo-worker1", Status: api.StatusTerminated},
	}
	p := newTestProvider(client)

	statuses, err := p.QueryInstances(context.Background(), "demo", false)
	require.NoError(t, err)

	// Terminated instances appear with an empty canonical status, so the
	// caller can tell "terminated" apart from "not present".
	require.Len(t, statuses, 2)
	assert.Equal(t, StatusUp, statuses["i-1"])
	assert.Equal(t, ClusterStatus(""), statuses["i-2"])
}

func TestQueryInstancesSurfacesUnknownStatus(t *testing.T) {
	client := newFakeClient()
	client.instances = []api.Instance{
		{ID: "i-1", Name: "demo-head", Status: "STATUS_GLITCHED"},
	}
	p := newTestProvider(client)

	_, err := p.QueryInstances(context.Background(), "demo", true)
	require.Error(t, err)
	assert.ErrorContains(t, err, "i-1")
	assert.ErrorContains(t, err, "STATUS_GLITCHED")
}

func TestQueryInstancesEmptyCluster(t *testing.T) {
	client := newFakeClient()
	p := newTestProvider(client)

	statuses, err := p.QueryInstances(context.Background(), "demo", true)
	require.NoError(t, err)
	assert.Empty(t, statuses)
}
