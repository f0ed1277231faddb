package provider

import "fmt"

// ConfigurationError reports a missing launch prerequisite. It is
// caller-fixable and always raised before any remote call.
type ConfigurationError struct {
	Field string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("no %s is set; Mithril requires one to launch instances", e.Field)
}

// BidTerminatedError reports a resume attempt on a terminated bid. The
// condition is permanent: the cluster name can never be resumed and the
// caller must pick a different one.
type BidTerminatedError struct {
	ClusterName string
}

func (e *BidTerminatedError) Error() string {
	return fmt.Sprintf("the spot bid for cluster '%s' has been terminated on Mithril and cannot be resumed; use a different cluster name", e.ClusterName)
}

// SizeMismatchError reports a partial cluster that cannot be grown: bids are
// all-or-nothing, so adding instances to an existing cluster is unsupported.
type SizeMismatchError struct {
	ClusterName string
	Ready       int
	Desired     int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("cluster '%s' has %d instances but %d were requested; adding instances to an existing cluster is not supported", e.ClusterName, e.Ready, e.Desired)
}

// ReadinessTimeoutError reports an instance that never obtained an SSH
// destination within the wait budget. Callers may retry the whole
// reconciliation; nothing is retried internally beyond the bound.
type ReadinessTimeoutError struct {
	ClusterName string
	InstanceID  string
	Err         error
}

func (e *ReadinessTimeoutError) Error() string {
	return fmt.Sprintf("instance %s of cluster '%s' failed to get an SSH destination: %v", e.InstanceID, e.ClusterName, e.Err)
}

func (e *ReadinessTimeoutError) Unwrap() error {
	return e.Err
}

// UnsupportedOperationError reports an operation the Mithril allocator can
// never perform, as opposed to one that did nothing because it was already
// satisfied.
type UnsupportedOperationError struct {
	Operation string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("%s is not supported on Mithril", e.Operation)
}
