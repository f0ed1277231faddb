package provider

import (
	"context"
)

// InstanceInfo is the connection endpoint of a single reachable instance.
type InstanceInfo struct {
	InstanceID string
	InternalIP string
	ExternalIP string
	SSHPort    int
}

// ClusterInfo is the read model consumed by the upstream orchestrator. It is
// rebuilt fresh on every query: the market is authoritative and may change
// out-of-band.
type ClusterInfo struct {
	Instances      map[string]InstanceInfo
	HeadInstanceID string
	SSHUser        string
}

// ClusterInfo projects the cluster's reachable instances into endpoints. It
// considers every non-terminated instance, not just running ones, so a
// downstream connectivity check can reach an instance as soon as it obtains
// an address. Instances without an SSH destination are skipped but do not
// abort the build; the head is the first reachable instance in listing
// order.
func (p *Provider) ClusterInfo(ctx context.Context, clusterName string) (*ClusterInfo, error) {
	allInstances, err := p.filterInstances(ctx, clusterName, nil, terminalStatuses)
	if err != nil {
		return nil, err
	}

	info := &ClusterInfo{
		Instances: make(map[string]InstanceInfo),
		SSHUser:   DefaultSSHUser,
	}
	for _, instance := range allInstances {
		if !instance.Ready() {
			p.log.Debug("Skipping instance without SSH destination",
				"cluster", clusterName, "instance", instance.ID)
			continue
		}

		port := instance.SSHPort
		if port == 0 {
			port = DefaultSSHPort
		}
		info.Instances[instance.ID] = InstanceInfo{
			InstanceID: instance.ID,
			InternalIP: instance.PrivateIP,
			ExternalIP: instance.SSHDestination,
			SSHPort:    port,
		}
		if info.HeadInstanceID == "" {
			info.HeadInstanceID = instance.ID
		}
	}
	return info, nil
}
