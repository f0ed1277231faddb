package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gammadia/mithril/internal"
	"github.com/google/uuid"
)

// Client is the narrow surface of the Mithril control plane consumed by the
// provider. All calls are synchronous request/response against the remote
// account, which is authoritative: nothing is cached across calls.
type Client interface {
	// ListInstances returns the full account-wide instance snapshot, in the
	// order the API reports it. There is no incremental protocol.
	ListInstances(ctx context.Context) ([]Instance, error)
	// GetBid returns the bid owning clusterName, or nil when none exists.
	GetBid(ctx context.Context, clusterName string) (*Bid, error)
	// UpdateBid sets or clears the paused flag on the whole bid.
	UpdateBid(ctx context.Context, bidID string, paused bool) error
	// CancelBid terminates the bid and every member instance. Cancelling a
	// bid that is already gone is not an error.
	CancelBid(ctx context.Context, bidID string) error
	// LaunchInstances submits a new bid and returns its ID along with the
	// IDs of the created instances.
	LaunchInstances(ctx context.Context, req LaunchRequest) (bidID string, instanceIDs []string, err error)
	// WaitForSSHDestination blocks until the instance exposes an SSH
	// destination, returning it. Once the poll budget is spent it fails
	// with an error wrapping ErrWaitTimeout.
	WaitForSSHDestination(ctx context.Context, instanceID string) (string, error)
}

// ErrWaitTimeout reports that an instance did not obtain an SSH destination
// within the wait budget.
var ErrWaitTimeout = errors.New("timed out waiting for SSH destination")

// RemoteError is a non-2xx response from the market API.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("mithril API error (HTTP %d)", e.StatusCode)
	}
	return fmt.Sprintf("mithril API error (HTTP %d): %s", e.StatusCode, e.Message)
}

// HTTPClient talks JSON over HTTPS to the Mithril market API.
type HTTPClient struct {
	baseURL string
	apiKey  string
	project string
	http    *http.Client

	// SSH destination poll budget, overridable in tests.
	waitAttempts int
	waitInterval time.Duration
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL, apiKey, project string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		project: project,
		http:    &http.Client{Timeout: 30 * time.Second},

		waitAttempts: 60,
		waitInterval: 5 * time.Second,
	}
}

func (c *HTTPClient) ListInstances(ctx context.Context) ([]Instance, error) {
	var out struct {
		Instances []Instance `json:"instances"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/instances", nil, &out); err != nil {
		return nil, err
	}
	return out.Instances, nil
}

func (c *HTTPClient) GetBid(ctx context.Context, clusterName string) (*Bid, error) {
	var out struct {
		Bids []Bid `json:"bids"`
	}
	path := "/v1/spot/bids?name=" + url.QueryEscape(clusterName)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if len(out.Bids) == 0 {
		return nil, nil
	}
	return &out.Bids[0], nil
}

func (c *HTTPClient) UpdateBid(ctx context.Context, bidID string, paused bool) error {
	body := map[string]bool{"paused": paused}
	return c.do(ctx, http.MethodPatch, "/v1/spot/bids/"+url.PathEscape(bidID), body, nil)
}

func (c *HTTPClient) CancelBid(ctx context.Context, bidID string) error {
	err := c.do(ctx, http.MethodDelete, "/v1/spot/bids/"+url.PathEscape(bidID), nil, nil)

	// A vanished bid is already cancelled.
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) && remoteErr.StatusCode == http.StatusNotFound {
		return nil
	}
	return err
}

func (c *HTTPClient) LaunchInstances(ctx context.Context, req LaunchRequest) (string, []string, error) {
	var out struct {
		BidID       string   `json:"fid"`
		InstanceIDs []string `json:"instances"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/spot/bids", req, &out); err != nil {
		return "", nil, err
	}
	return out.BidID, out.InstanceIDs, nil
}

func (c *HTTPClient) WaitForSSHDestination(ctx context.Context, instanceID string) (string, error) {
	var destination string
	done, err := internal.Poll(ctx, c.waitAttempts, c.waitInterval, func() (bool, error) {
		instance, err := c.getInstance(ctx, instanceID)
		if err != nil {
			return false, err
		}
		destination = instance.SSHDestination
		return destination != "", nil
	})
	if err != nil {
		return "", fmt.Errorf("failed while waiting for instance %s: %w", instanceID, err)
	}
	if !done {
		return "", fmt.Errorf("instance %s: %w", instanceID, ErrWaitTimeout)
	}
	return destination, nil
}

func (c *HTTPClient) getInstance(ctx context.Context, instanceID string) (Instance, error) {
	var out Instance
	err := c.do(ctx, http.MethodGet, "/v1/instances/"+url.PathEscape(instanceID), nil, &out)
	return out, err
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	// Request IDs let operators correlate failures with the market's logs.
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.project != "" {
		query := req.URL.Query()
		query.Set("project", c.project)
		req.URL.RawQuery = query.Encode()
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var remote struct {
			Message string `json:"message"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		_ = json.Unmarshal(raw, &remote)
		return fmt.Errorf("%s %s: %w", method, path, &RemoteError{
			StatusCode: resp.StatusCode,
			Message:    remote.Message,
		})
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s %s: failed to decode response: %w", method, path, err)
		}
	}
	return nil
}
