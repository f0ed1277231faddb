package provider

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/gammadia/mithril/api"
)

// --- Fake market client ---

// fakeClient is a scripted market: bids and instances are plain fields, and
// every call is recorded for assertions.
type fakeClient struct {
	mu           sync.Mutex
	instances    []api.Instance
	bids         map[string]*api.Bid
	destinations map[string]string // granted on WaitForSSHDestination

	calls    []string
	launches []api.LaunchRequest

	launchErr error
}

var _ api.Client = (*fakeClient)(nil)

func newFakeClient() *fakeClient {
	return &fakeClient{
		bids:         map[string]*api.Bid{},
		destinations: map[string]string{},
	}
}

func (f *fakeClient) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeClient) ListInstances(ctx context.Context) ([]api.Instance, error) {
	f.record("list-instances")
	return f.instances, nil
}

func (f *fakeClient) GetBid(ctx context.Context, clusterName string) (*api.Bid, error) {
	f.record("get-bid:" + clusterName)
	return f.bids[clusterName], nil
}

func (f *fakeClient) UpdateBid(ctx context.Context, bidID string, paused bool) error {
	f.record(fmt.Sprintf("update-bid:%s:paused=%t", bidID, paused))
	for _, bid := range f.bids {
		if bid.ID == bidID {
			if paused {
				bid.Status = api.BidPaused
			} else {
				bid.Status = api.BidActive
			}
		}
	}
	return nil
}

func (f *fakeClient) CancelBid(ctx context.Context, bidID string) error {
	f.record("cancel-bid:" + bidID)
	for name, bid := range f.bids {
		if bid.ID == bidID {
			delete(f.bids, name)
		}
	}
	return nil
}

func (f *fakeClient) LaunchInstances(ctx context.Context, req api.LaunchRequest) (string, []string, error) {
	f.record("launch:" + req.ClusterName)
	f.mu.Lock()
	f.launches = append(f.launches, req)
	f.mu.Unlock()

	if f.launchErr != nil {
		return "", nil, f.launchErr
	}
	ids := make([]string, req.Count)
	for i := range ids {
		ids[i] = fmt.Sprintf("created-%d", i+1)
	}
	return "bid-new", ids, nil
}

func (f *fakeClient) WaitForSSHDestination(ctx context.Context, instanceID string) (string, error) {
	f.record("wait-ssh:" + instanceID)
	if destination, ok := f.destinations[instanceID]; ok {
		return destination, nil
	}
	return "", fmt.Errorf("instance %s: %w", instanceID, api.ErrWaitTimeout)
}

func (f *fakeClient) hasCall(prefix string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, call := range f.calls {
		if strings.HasPrefix(call, prefix) {
			return true
		}
	}
	return false
}

// --- Helpers ---

func newTestProvider(client api.Client) *Provider {
	return New(client, nil)
}

func readyInstance(id, cluster string) api.Instance {
	return api.Instance{
		ID:             id,
		Name:           fmt.Sprintf("%s-%s", cluster, id),
		Status:         api.StatusRunning,
		PrivateIP:      "10.0.0.1",
		SSHDestination: "198.51.100.1",
		SSHPort:        22,
	}
}

func pendingInstance(id, cluster string) api.Instance {
	return api.Instance{
		ID:     id,
		Name:   fmt.Sprintf("%s-%s", cluster, id),
		Status: api.StatusProvisioning,
	}
}
