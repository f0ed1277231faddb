package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/gammadia/mithril/api"
	"github.com/samber/lo"
)

// terminalStatuses covers instances on their way out of the account.
var terminalStatuses = []string{api.StatusTerminating, api.StatusTerminated}

// filterInstances pulls the full account listing and narrows it to instances
// whose name carries the cluster-name prefix, optionally restricted by raw
// status. When both predicates are supplied an instance must satisfy both.
// Listing order is preserved so that head selection stays deterministic.
// The filter is pure: no side effects, no caching.
func (p *Provider) filterInstances(ctx context.Context, clusterName string, statusIn, statusNotIn []string) ([]api.Instance, error) {
	instances, err := p.client.ListInstances(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list instances: %w", err)
	}

	filtered := lo.Filter(instances, func(instance api.Instance, _ int) bool {
		if !strings.HasPrefix(instance.Name, clusterName) {
			return false
		}
		if statusIn != nil && !lo.Contains(statusIn, instance.Status) {
			return false
		}
		if statusNotIn != nil && lo.Contains(statusNotIn, instance.Status) {
			return false
		}
		return true
	})

	p.log.Debug("Filtered instances",
		"cluster", clusterName, "total", len(instances), "matching", len(filtered))
	return filtered, nil
}
