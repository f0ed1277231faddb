package provider

// ProvisionZones returns the zone sequence to iterate while provisioning in
// a region. Mithril has no zone concept, so the sequence holds exactly one
// empty zone: a single region-wide pass.
func ProvisionZones(region string) []string {
	return []string{""}
}
