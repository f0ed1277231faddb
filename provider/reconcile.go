package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/gammadia/mithril/api"
)

// ProvisionSpec is the desired state for one reconciliation request. It is
// supplied per call and never persisted by this package.
type ProvisionSpec struct {
	ClusterName   string
	Region        string
	Count         int
	InstanceType  string
	SSHKeyID      string
	ResumeStopped bool
}

// ProvisionRecord is the outcome of a successful reconciliation. Exactly one
// head instance is chosen per reconciliation: the first ready instance in
// listing order, or the first created one.
type ProvisionRecord struct {
	ProviderName       string
	ClusterName        string
	Region             string
	HeadInstanceID     string
	ResumedInstanceIDs []string
	CreatedInstanceIDs []string
}

// RunInstances reconciles the desired cluster size against the market state:
//
//  1. When resume is allowed, check for a paused bid and unpause it. A
//     terminated bid fails here, before any instance listing.
//  2. Observe existing non-terminated instances and split them into ready
//     (has an SSH destination) and pending.
//  3. Wait for each pending instance to obtain an SSH destination, within
//     the client's bounded poll budget.
//  4. Enough ready instances satisfy the request as-is; a partial cluster
//     fails (bids cannot be grown); none at all launches one fresh bid of
//     exactly spec.Count instances.
//
// The steps run strictly in sequence with no internal parallelism.
// Concurrent calls for the same cluster name are not linearized here: two
// racing calls can both launch. Callers serialize per cluster name.
func (p *Provider) RunInstances(ctx context.Context, spec ProvisionSpec) (*ProvisionRecord, error) {
	if spec.InstanceType == "" {
		return nil, &ConfigurationError{Field: "instance type"}
	}
	if spec.SSHKeyID == "" {
		return nil, &ConfigurationError{Field: "ssh key"}
	}

	log := p.log.With("cluster", spec.ClusterName)
	log.Debug("Reconciling cluster", "desired", spec.Count, "region", spec.Region)

	var resumedInstanceIDs []string
	if spec.ResumeStopped {
		ids, err := p.Resume(ctx, spec.ClusterName)
		if err != nil {
			return nil, err
		}
		resumedInstanceIDs = ids
	}

	allInstances, err := p.filterInstances(ctx, spec.ClusterName, nil, terminalStatuses)
	if err != nil {
		return nil, err
	}

	var ready, pending []api.Instance
	for _, instance := range allInstances {
		if instance.Ready() {
			ready = append(ready, instance)
		} else {
			pending = append(pending, instance)
		}
	}
	log.Debug("Observed instances", "ready", len(ready), "pending", len(pending))

	for _, instance := range pending {
		log.Debug("Waiting for SSH destination", "instance", instance.ID)
		if _, err := p.client.WaitForSSHDestination(ctx, instance.ID); err != nil {
			if errors.Is(err, api.ErrWaitTimeout) {
				return nil, &ReadinessTimeoutError{
					ClusterName: spec.ClusterName,
					InstanceID:  instance.ID,
					Err:         err,
				}
			}
			return nil, fmt.Errorf("failed while waiting for instance %s of cluster '%s': %w", instance.ID, spec.ClusterName, err)
		}
		ready = append(ready, instance)
	}

	if len(ready) >= spec.Count {
		// Surplus instances are left running on purpose: bids are
		// all-or-nothing, so there is no partial termination to shrink with.
		// The surplus stays observable through the cluster view.
		log.Debug("Cluster already satisfied", "instances", len(ready))
		return &ProvisionRecord{
			ProviderName:       ProviderName,
			ClusterName:        spec.ClusterName,
			Region:             spec.Region,
			HeadInstanceID:     ready[0].ID,
			ResumedInstanceIDs: resumedInstanceIDs,
		}, nil
	}

	if len(ready) > 0 {
		return nil, &SizeMismatchError{
			ClusterName: spec.ClusterName,
			Ready:       len(ready),
			Desired:     spec.Count,
		}
	}

	log.Info("Launching instances", "count", spec.Count, "type", spec.InstanceType, "region", spec.Region)
	bidID, createdInstanceIDs, err := p.client.LaunchInstances(ctx, api.LaunchRequest{
		InstanceType: spec.InstanceType,
		ClusterName:  spec.ClusterName,
		Region:       spec.Region,
		SSHKeyIDs:    []string{spec.SSHKeyID},
		Count:        spec.Count,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to launch instances for cluster '%s': %w", spec.ClusterName, err)
	}
	if len(createdInstanceIDs) == 0 {
		return nil, fmt.Errorf("bid %s for cluster '%s' reported no instances", bidID, spec.ClusterName)
	}
	log.Info("Submitted bid", "bid", bidID, "instances", len(createdInstanceIDs))

	return &ProvisionRecord{
		ProviderName:       ProviderName,
		ClusterName:        spec.ClusterName,
		Region:             spec.Region,
		HeadInstanceID:     createdInstanceIDs[0],
		ResumedInstanceIDs: resumedInstanceIDs,
		CreatedInstanceIDs: createdInstanceIDs,
	}, nil
}
