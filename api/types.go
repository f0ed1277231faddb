package api

// Raw instance statuses reported by the Mithril API. The set is closed:
// the provider rejects anything outside it rather than guessing.
const (
	StatusPending      = "STATUS_PENDING"
	StatusProvisioning = "STATUS_PROVISIONING"
	StatusRunning      = "STATUS_RUNNING"
	StatusPausing      = "STATUS_PAUSING"
	StatusPaused       = "STATUS_PAUSED"
	StatusTerminating  = "STATUS_TERMINATING"
	StatusTerminated   = "STATUS_TERMINATED"
)

type BidStatus string

const (
	BidActive     BidStatus = "Active"
	BidPaused     BidStatus = "Paused"
	BidTerminated BidStatus = "Terminated"
)

// Bid is an all-or-nothing batch reservation on the spot market. Pause,
// resume and cancel always apply to the entire instance group; there is no
// partial-bid operation. Terminated is absorbing.
type Bid struct {
	ID          string    `json:"fid"`
	ClusterName string    `json:"name"`
	Status      BidStatus `json:"status"`
	InstanceIDs []string  `json:"instances"`
}

// Instance is a compute node belonging to exactly one bid. Its name carries
// the owning cluster name as a prefix, which is how clusters are discovered
// in the account-wide listing.
type Instance struct {
	ID             string `json:"fid"`
	Name           string `json:"name"`
	Status         string `json:"status"`
	PrivateIP      string `json:"private_ip"`
	SSHDestination string `json:"ssh_destination"`
	SSHPort        int    `json:"ssh_port"`
}

// Ready reports whether the instance has been assigned a reachable SSH
// destination. Readiness, not raw status, gates cluster membership.
func (i Instance) Ready() bool {
	return i.SSHDestination != ""
}

// LaunchRequest describes a new bid covering exactly Count instances.
type LaunchRequest struct {
	InstanceType string   `json:"instance_type"`
	ClusterName  string   `json:"name"`
	Region       string   `json:"region"`
	SSHKeyIDs    []string `json:"ssh_key_ids"`
	Count        int      `json:"instance_quantity"`
}
