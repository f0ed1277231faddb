package provider

import (
	"context"
	"testing"

	"github.com/gammadia/mithril/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClusterInfoBuildsEndpoints(t *testing.T) {
	client := newFakeClient()
	client.instances = []api.Instance{
		{
			ID: "i-1", Name: "demo-head", Status: api.StatusRunning,
			PrivateIP: "10.0.0.1", SSHDestination: "198.51.100.1", SSHPort: 2222,
		},
		{
			ID: "i-2", Name: "demo-worker1", Status: api.StatusProvisioning,
			PrivateIP: "10.0.0.2", SSHDestination: "198.51.100.2",
		},
	}
	p := newTestProvider(client)

	info, err := p.ClusterInfo(context.Background(), "demo")
	require.NoError(t, err)

	assert.Equal(t, "i-1", info.HeadInstanceID)
	assert.Equal(t, DefaultSSHUser, info.SSHUser)
	require.Len(t, info.Instances, 2)

	assert.Equal(t, InstanceInfo{
		InstanceID: "i-1", InternalIP: "10.0.0.1", ExternalIP: "198.51.100.1", SSHPort: 2222,
	}, info.Instances["i-1"])

	// A provisioning instance with an address is already included: the
	// downstream connectivity check decides when it is truly reachable.
	assert.Equal(t, DefaultSSHPort, info.Instances["i-2"].SSHPort)
}

func TestClusterInfoSkipsUnreachableInstances(t *testing.T) {
	client := newFakeClient()
	client.instances = []api.Instance{
		pendingInstance("i-1", "demo"),
		readyInstance("i-2", "demo"),
		{ID: "i-3", Name: "demo-worker2", Status: api.StatusTerminated, SSHDestination: "198.51.100.3"},
	}
	p := newTestProvider(client)

	info, err := p.ClusterInfo(context.Background(), "demo")
	require.NoError(t, err)

	// The pending instance is skipped but does not abort the build; the
	// terminated one is filtered out entirely.
	require.Len(t, info.Instances, 1)
	assert.Equal(t, "i-2", info.HeadInstanceID)
}

func TestClusterInfoEmptyCluster(t *testing.T) {
	client := newFakeClient()
	p := newTestProvider(client)

	info, err := p.ClusterInfo(context.Background(), "demo")
	require.NoError(t, err)

	assert.Empty(t, info.Instances)
	assert.Empty(t, info.HeadInstanceID)
	assert.Equal(t, DefaultSSHUser, info.SSHUser)
}
