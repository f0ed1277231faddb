package provider

import (
	"context"
	"fmt"

	"github.com/gammadia/mithril/api"
)

// Resume clears the paused flag on the bid owning clusterName, making its
// whole instance group eligible again, and returns the member instance IDs.
// It is a no-op when no bid exists or the bid is not paused, and a hard,
// non-retryable error when the bid is terminated.
func (p *Provider) Resume(ctx context.Context, clusterName string) ([]string, error) {
	bid, err := p.lookupBid(ctx, clusterName)
	if err != nil || bid == nil {
		return nil, err
	}

	switch bid.Status {
	case api.BidTerminated:
		return nil, &BidTerminatedError{ClusterName: clusterName}
	case api.BidPaused:
		if err := p.client.UpdateBid(ctx, bid.ID, false); err != nil {
			return nil, fmt.Errorf("failed to resume bid %s for cluster '%s': %w", bid.ID, clusterName, err)
		}
		p.log.Info("Resumed bid", "cluster", clusterName, "bid", bid.ID, "instances", len(bid.InstanceIDs))
		return bid.InstanceIDs, nil
	default:
		return nil, nil
	}
}

// Stop pauses the bid owning clusterName, halting billing and activity for
// the whole group. Individual instances cannot be stopped: the bid is
// all-or-nothing. No-op when no bid exists.
func (p *Provider) Stop(ctx context.Context, clusterName string) error {
	bid, err := p.lookupBid(ctx, clusterName)
	if err != nil || bid == nil {
		return err
	}

	if err := p.client.UpdateBid(ctx, bid.ID, true); err != nil {
		return fmt.Errorf("failed to pause bid %s for cluster '%s': %w", bid.ID, clusterName, err)
	}
	p.log.Info("Paused bid", "cluster", clusterName, "bid", bid.ID)
	return nil
}

// Terminate cancels the bid owning clusterName, which immediately terminates
// every member instance. Absorbing: a second call finds no bid and does
// nothing.
func (p *Provider) Terminate(ctx context.Context, clusterName string) error {
	bid, err := p.lookupBid(ctx, clusterName)
	if err != nil || bid == nil {
		return err
	}

	if err := p.client.CancelBid(ctx, bid.ID); err != nil {
		return fmt.Errorf("failed to cancel bid %s for cluster '%s': %w", bid.ID, clusterName, err)
	}
	p.log.Info("Cancelled bid", "cluster", clusterName, "bid", bid.ID)
	return nil
}

func (p *Provider) lookupBid(ctx context.Context, clusterName string) (*api.Bid, error) {
	bid, err := p.client.GetBid(ctx, clusterName)
	if err != nil {
		return nil, fmt.Errorf("failed to look up bid for cluster '%s': %w", clusterName, err)
	}
	if bid == nil {
		p.log.Debug("No bid found", "cluster", clusterName)
	}
	return bid, nil
}
