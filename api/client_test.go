package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*HTTPClient, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewHTTPClient(server.URL, "test-key", "proj-1")
	client.waitAttempts = 3
	client.waitInterval = time.Millisecond
	return client, server
}

func TestListInstancesSendsAuthAndProject(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/instances", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "proj-1", r.URL.Query().Get("project"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"instances": []Instance{
				{ID: "i-1", Name: "demo-head", Status: StatusRunning, SSHDestination: "1.2.3.4"},
			},
		})
	})
	defer server.Close()

	instances, err := client.ListInstances(context.Background())
	require.NoError(t, err)
	require.Len(t, instances, 1)
	assert.Equal(t, "i-1", instances[0].ID)
	assert.True(t, instances[0].Ready())
}

func TestGetBidReturnsNilWhenAbsent(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "demo", r.URL.Query().Get("name"))
		_ = json.NewEncoder(w).Encode(map[string]any{"bids": []Bid{}})
	})
	defer server.Close()

	bid, err := client.GetBid(context.Background(), "demo")
	require.NoError(t, err)
	assert.Nil(t, bid)
}

func TestCancelBidAbsorbsNotFound(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		http.Error(w, `{"message":"no such bid"}`, http.StatusNotFound)
	})
	defer server.Close()

	assert.NoError(t, client.CancelBid(context.Background(), "bid-1"))
}

func TestLaunchInstancesPostsRequest(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/spot/bids", r.URL.Path)

		var req LaunchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, LaunchRequest{
			InstanceType: "a100.8x",
			ClusterName:  "demo",
			Region:       "eu-central",
			SSHKeyIDs:    []string{"key-1"},
			Count:        3,
		}, req)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"fid":       "bid-1",
			"instances": []string{"i-1", "i-2", "i-3"},
		})
	})
	defer server.Close()

	bidID, instanceIDs, err := client.LaunchInstances(context.Background(), LaunchRequest{
		InstanceType: "a100.8x",
		ClusterName:  "demo",
		Region:       "eu-central",
		SSHKeyIDs:    []string{"key-1"},
		Count:        3,
	})
	require.NoError(t, err)
	assert.Equal(t, "bid-1", bidID)
	assert.Equal(t, []string{"i-1", "i-2", "i-3"}, instanceIDs)
}

func TestWaitForSSHDestinationPollsUntilAssigned(t *testing.T) {
	calls := 0
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/instances/i-1", r.URL.Path)
		calls++
		instance := Instance{ID: "i-1", Status: StatusProvisioning}
		if calls >= 2 {
			instance.SSHDestination = "5.6.7.8"
		}
		_ = json.NewEncoder(w).Encode(instance)
	})
	defer server.Close()

	destination, err := client.WaitForSSHDestination(context.Background(), "i-1")
	require.NoError(t, err)
	assert.Equal(t, "5.6.7.8", destination)
	assert.Equal(t, 2, calls)
}

func TestWaitForSSHDestinationTimesOut(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Instance{ID: "i-1", Status: StatusProvisioning})
	})
	defer server.Close()

	_, err := client.WaitForSSHDestination(context.Background(), "i-1")
	assert.ErrorIs(t, err, ErrWaitTimeout)
	assert.ErrorContains(t, err, "i-1")
}

func TestRemoteErrorCarriesStatusAndMessage(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "invalid api key"})
	})
	defer server.Close()

	_, err := client.ListInstances(context.Background())
	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusForbidden, remoteErr.StatusCode)
	assert.Equal(t, "invalid api key", remoteErr.Message)
}
