package availability

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

// Checker answers a single availability question against the server.
// *api.Client satisfies it.
type Checker interface {
	CheckAvailability(ctx context.Context, staffID, day, timeSlot string) (bool, error)
}

// State is the three-valued answer a non-blocking lookup can give.
type State int

const (
	// StateUnknown means no cached entry yet; callers treat it as "assume ok"
	// while the background check is in flight.
	StateUnknown State = iota
	StateAvailable
	StateUnavailable
)

func (s State) String() string {
	switch s {
	case StateAvailable:
		return "available"
	case StateUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Policy decides what a failed check counts as. Availability lookups in the
// editor run FailOpen so a flaky endpoint never blocks assignment; save and
// publish style operations are fail-closed by construction (their errors
// surface to the caller instead of passing through here).
type Policy int

const (
	FailOpen Policy = iota
	FailClosed
)

// OnError returns the availability a failed check is recorded as.
func (p Policy) OnError() bool {
	return p == FailOpen
}

func (p Policy) String() string {
	if p == FailClosed {
		return "fail-closed"
	}
	return "fail-open"
}

const warmTimeout = 5 * time.Second

// Cache memoizes (staff, day, time-slot) availability for the lifetime of an
// editor session. Entries are never invalidated unless a TTL is configured or
// Flush is called. Concurrent misses for one key may each hit the server;
// the last write wins, which is fine because the answers agree.
type Cache struct {
	checker Checker
	store   *gocache.Cache
	policy  Policy
	log     *logrus.Logger
}

// New builds a cache. ttl == 0 keeps entries for the whole session.
func New(checker Checker, policy Policy, ttl time.Duration, log *logrus.Logger) *Cache {
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.PanicLevel)
	}
	store := gocache.New(gocache.NoExpiration, 0)
	if ttl > 0 {
		store = gocache.New(ttl, 2*ttl)
	}
	return &Cache{checker: checker, store: store, policy: policy, log: log}
}

func key(staffID, day, timeSlot string) string {
	return staffID + "|" + day + "|" + timeSlot
}

// Check answers from the cache, or asks the server and records the result.
// A failed request is recorded as policy.OnError() for the rest of the
// session and logged; it never returns an error.
func (c *Cache) Check(ctx context.Context, staffID, day, timeSlot string) bool {
	k := key(staffID, day, timeSlot)
	if v, ok := c.store.Get(k); ok {
		return v.(bool)
	}
	ok, err := c.checker.CheckAvailability(ctx, staffID, day, timeSlot)
	if err != nil {
		assumed := c.policy.OnError()
		c.store.Set(k, assumed, gocache.DefaultExpiration)
		c.log.WithFields(logrus.Fields{
			"staff_id": staffID,
			"day":      day,
			"time":     timeSlot,
			"policy":   c.policy.String(),
			"assumed":  assumed,
		}).WithError(err).Warn("availability check failed")
		return assumed
	}
	c.store.Set(k, ok, gocache.DefaultExpiration)
	return ok
}

// Peek returns the cached state without blocking. On a miss it warms the
// cache in the background and reports StateUnknown; repeated peeks before the
// warm resolves will each start a request, mirroring the editor's rapid
// hover behavior.
func (c *Cache) Peek(staffID, day, timeSlot string) State {
	if v, ok := c.store.Get(key(staffID, day, timeSlot)); ok {
		if v.(bool) {
			return StateAvailable
		}
		return StateUnavailable
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), warmTimeout)
		defer cancel()
		c.Check(ctx, staffID, day, timeSlot)
	}()
	return StateUnknown
}

// Put records an authoritative answer, e.g. from a drop's awaited re-check.
func (c *Cache) Put(staffID, day, timeSlot string, available bool) {
	c.store.Set(key(staffID, day, timeSlot), available, gocache.DefaultExpiration)
}

// Flush drops every entry. Called when a schedule is reloaded.
func (c *Cache) Flush() {
	c.store.Flush()
}
