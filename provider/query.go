package provider

import (
	"context"
	"fmt"
)

// QueryInstances returns the canonical status of every instance of the
// cluster. When nonTerminatedOnly is set, instances with no canonical status
// (terminated or terminating) are omitted rather than returned empty;
// callers that must tell "terminated" apart from "not present" use the
// unrestricted form, where such instances appear with an empty status.
func (p *Provider) QueryInstances(ctx context.Context, clusterName string, nonTerminatedOnly bool) (map[string]ClusterStatus, error) {
	instances, err := p.filterInstances(ctx, clusterName, nil, nil)
	if err != nil {
		return nil, err
	}

	statuses := make(map[string]ClusterStatus, len(instances))
	for _, instance := range instances {
		status, ok, err := MapStatus(instance.Status)
		if err != nil {
			return nil, fmt.Errorf("instance %s of cluster '%s': %w", instance.ID, clusterName, err)
		}
		if !ok && nonTerminatedOnly {
			continue
		}
		statuses[instance.ID] = status
	}
	return statuses, nil
}
