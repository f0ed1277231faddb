// Package provider reconciles the desired size of a compute cluster against
// the observed state of the Mithril spot market. Bids there are
// all-or-nothing batch reservations: pause, resume and cancel apply to a
// whole instance group, and a cluster can never be grown or shrunk in place.
package provider

import (
	"io"
	"log/slog"

	"github.com/gammadia/mithril/api"
)

// ProviderName identifies this provider in provisioning records.
const ProviderName = "mithril"

// DefaultSSHUser is the login user baked into Mithril VM images.
const DefaultSSHUser = "ubuntu"

// DefaultSSHPort is assumed when the API does not report one.
const DefaultSSHPort = 22

// Provider drives provisioning for one account. It holds no mutable state:
// every operation re-derives truth from the remote listing, since bids can
// change out-of-band (manual pause, market-side termination).
type Provider struct {
	client api.Client
	log    *slog.Logger
}

func New(client api.Client, log *slog.Logger) *Provider {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Provider{
		client: client,
		log:    log.With("provider", ProviderName),
	}
}
