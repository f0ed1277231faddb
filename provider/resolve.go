package provider

import (
	"log/slog"

	"github.com/gammadia/mithril/api"
	"github.com/gammadia/mithril/config"
)

// NewForCluster builds a provider from the profile metadata stored on a
// cluster at launch time. Status and termination calls made long after
// launch then target the same account and endpoint the cluster was created
// under, regardless of the operator's current profile. A nil stored profile
// resolves the current configuration instead.
func NewForCluster(stored *config.StoredProfile, log *slog.Logger) (*Provider, error) {
	cfg, err := config.ResolveStored(stored)
	if err != nil {
		return nil, err
	}
	return New(api.NewHTTPClient(cfg.APIURL, cfg.APIKey, cfg.Project), log), nil
}
