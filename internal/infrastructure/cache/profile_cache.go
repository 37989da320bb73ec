// Package cache implements the risk profile cache: a TTL-bounded in-memory
// store guarded by singleflight so that concurrent assessments of the same
// customer collapse into one computation, with an optional remote store
// shared across instances.
package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/turtacn/pulse/internal/domain/models"
	"github.com/turtacn/pulse/internal/domain/service"
	"github.com/turtacn/pulse/pkg/errors"
	"github.com/turtacn/pulse/pkg/logger"
)

// Entry is a cached assessment together with the fingerprint of the metrics
// it was computed from.
type Entry struct {
	Profile     *models.RiskProfile `json:"profile"`
	Fingerprint string              `json:"fingerprint"`
}

// RemoteStore is an optional second-level store (e.g. Redis) shared across
// service instances. All methods are best-effort from the cache's point of
// view: remote failures degrade to recomputation, never to request failure.
type RemoteStore interface {
	GetEntry(ctx context.Context, customerID string) (*Entry, error)
	SetEntry(ctx context.Context, customerID string, entry *Entry, ttl time.Duration) error
	DeleteEntry(ctx context.Context, customerID string) error
}

// ProfileCache implements service.ProfileCache. Entries move through
// absent -> computing -> fresh, returning to absent on TTL expiry, explicit
// invalidation, or compute failure. The computing state is shared by all
// concurrent waiters on the same customer.
type ProfileCache struct {
	local  *gocache.Cache
	remote RemoteStore
	group  singleflight.Group
	ttl    time.Duration
	log    logger.Logger
}

var _ service.ProfileCache = (*ProfileCache)(nil)

// NewProfileCache constructs a ProfileCache. remote may be nil for
// single-instance deployments.
func NewProfileCache(ttl, cleanupInterval time.Duration, remote RemoteStore, log logger.Logger) *ProfileCache {
	return &ProfileCache{
		local:  gocache.New(ttl, cleanupInterval),
		remote: remote,
		ttl:    ttl,
		log:    log.WithComponent("ProfileCache"),
	}
}

// GetOrCompute returns the cached profile for customerID when fresh and
// matching the fingerprint, otherwise computes it. At most one computation
// runs per customer at a time; late arrivals wait for the in-flight result.
// A waiter whose own context is cancelled stops waiting without cancelling
// the shared computation, since other waiters may still need the result.
func (c *ProfileCache) GetOrCompute(ctx context.Context, customerID, fingerprint string, compute service.ComputeFunc) (*models.RiskProfile, error) {
	if entry, ok := c.lookup(ctx, customerID, fingerprint); ok {
		return entry.Profile, nil
	}

	ch := c.group.DoChan(customerID, func() (interface{}, error) {
		// Another waiter may have populated the entry between the miss and
		// this flight starting.
		if entry, ok := c.lookup(ctx, customerID, fingerprint); ok {
			return entry.Profile, nil
		}

		// The computation is shared; detach it from the initiating caller's
		// cancellation.
		profile, err := compute(context.WithoutCancel(ctx))
		if err != nil {
			// Propagate to every waiter; nothing is cached.
			return nil, err
		}

		entry := &Entry{Profile: profile, Fingerprint: fingerprint}
		c.local.Set(customerID, entry, c.ttl)
		if c.remote != nil {
			if rerr := c.remote.SetEntry(context.WithoutCancel(ctx), customerID, entry, c.ttl); rerr != nil {
				c.log.Warn(ctx, "failed to write profile to remote cache", logger.Fields{
					"customer_id": customerID, "error": rerr.Error(),
				})
			}
		}
		return profile, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			if _, ok := errors.AsAppError(res.Err); ok {
				return nil, res.Err
			}
			return nil, errors.ErrComputation(customerID, res.Err)
		}
		return res.Val.(*models.RiskProfile), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Invalidate evicts the customer's entry from both cache levels and forgets
// any in-flight computation so the next caller starts fresh.
func (c *ProfileCache) Invalidate(ctx context.Context, customerID string) {
	c.local.Delete(customerID)
	c.group.Forget(customerID)
	if c.remote != nil {
		if err := c.remote.DeleteEntry(ctx, customerID); err != nil {
			c.log.Warn(ctx, "failed to delete profile from remote cache", logger.Fields{
				"customer_id": customerID, "error": err.Error(),
			})
		}
	}
	c.log.Debug(ctx, "profile cache invalidated", logger.Fields{"customer_id": customerID})
}

// lookup consults L1 then the remote store. A fingerprint mismatch means the
// metrics changed inside the TTL window; the entry is treated as stale. An
// empty requested fingerprint matches any entry.
func (c *ProfileCache) lookup(ctx context.Context, customerID, fingerprint string) (*Entry, bool) {
	if v, ok := c.local.Get(customerID); ok {
		entry := v.(*Entry)
		if fingerprint == "" || entry.Fingerprint == fingerprint {
			return entry, true
		}
		c.local.Delete(customerID)
	}

	if c.remote != nil {
		entry, err := c.remote.GetEntry(ctx, customerID)
		if err != nil {
			if !errors.IsNotFound(err) {
				c.log.Warn(ctx, "remote cache lookup failed", logger.Fields{
					"customer_id": customerID, "error": err.Error(),
				})
			}
			return nil, false
		}
		if entry != nil && (fingerprint == "" || entry.Fingerprint == fingerprint) {
			c.local.Set(customerID, entry, c.ttl)
			return entry, true
		}
	}
	return nil, false
}
