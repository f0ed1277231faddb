package provider

import "context"

// Capability is a provider feature an upstream caller may probe for before
// relying on it.
type Capability string

const (
	CapabilityOpenPorts         Capability = "open-ports"
	CapabilityCustomNetworkTier Capability = "custom-network-tier"
	CapabilityCustomDiskTier    Capability = "custom-disk-tier"
	CapabilityMultiNetwork      Capability = "multi-network"
	CapabilityImageID           Capability = "image-id"
	CapabilityCloneDisk         Capability = "clone-disk"
	CapabilityLocalDisk         Capability = "local-disk"
	CapabilityHAControllers     Capability = "ha-controllers"
)

// UnsupportedCapabilities returns the features Mithril does not offer, keyed
// to the reason reported to callers. The set is static: it depends on the
// provider alone, never on runtime state.
func UnsupportedCapabilities() map[Capability]string {
	return map[Capability]string{
		CapabilityOpenPorts:         "opening ports is not supported on Mithril",
		CapabilityCustomNetworkTier: "custom network tiers are not supported on Mithril",
		CapabilityCustomDiskTier:    "custom disk tiers are not supported on Mithril",
		CapabilityMultiNetwork:      "multiple network interfaces are not supported on Mithril",
		CapabilityImageID:           "custom image IDs are not supported on Mithril",
		CapabilityCloneDisk:         "disk cloning is not supported on Mithril",
		CapabilityLocalDisk:         "local disks are not supported on Mithril",
		CapabilityHAControllers:     "high availability controllers are not supported on Mithril",
	}
}

// Supports reports whether the capability is available on Mithril.
func Supports(capability Capability) bool {
	_, unsupported := UnsupportedCapabilities()[capability]
	return !unsupported
}

// OpenPorts always fails: Mithril has no port management. The explicit error
// lets callers tell "cannot do this at all" from "did nothing because
// already satisfied".
func (p *Provider) OpenPorts(ctx context.Context, clusterName string, ports []string) error {
	return &UnsupportedOperationError{Operation: "opening ports"}
}

// CleanupPorts always fails, like OpenPorts.
func (p *Provider) CleanupPorts(ctx context.Context, clusterName string, ports []string) error {
	return &UnsupportedOperationError{Operation: "port cleanup"}
}

// CleanupCustomMultiNetwork always fails: Mithril instances have a single
// network interface.
func (p *Provider) CleanupCustomMultiNetwork(ctx context.Context, clusterName string) error {
	return &UnsupportedOperationError{Operation: "multi-network cleanup"}
}
