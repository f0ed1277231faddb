package provider

import (
	"fmt"

	"github.com/gammadia/mithril/api"
)

// ClusterStatus is the canonical instance status exposed to the upstream
// orchestrator.
type ClusterStatus string

const (
	StatusInit    ClusterStatus = "INIT"
	StatusUp      ClusterStatus = "UP"
	StatusStopped ClusterStatus = "STOPPED"
)

// MapStatus translates a raw Mithril instance status into its canonical
// form. ok is false for terminating and terminated instances, which have no
// canonical status and are excluded from non-terminated views. The mapping
// is total over the documented status set: an unrecognized raw value is an
// error, never swallowed, since it could mask true cluster state.
func MapStatus(raw string) (status ClusterStatus, ok bool, err error) {
	switch raw {
	case api.StatusPending, api.StatusProvisioning:
		return StatusInit, true, nil
	case api.StatusRunning:
		return StatusUp, true, nil
	case api.StatusPausing, api.StatusPaused:
		return StatusStopped, true, nil
	case api.StatusTerminating, api.StatusTerminated:
		return "", false, nil
	default:
		return "", false, fmt.Errorf("unknown instance status '%s'", raw)
	}
}
