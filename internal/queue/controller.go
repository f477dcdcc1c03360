// Package queue owns the content-queue lifecycle: initial load with tiered
// fallback, background refill, manual refresh, advance, and user submissions.
package queue

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/deepanshuvermaa/dripfeed/internal/logging"
	"github.com/deepanshuvermaa/dripfeed/internal/model"
)

// Batch sizing and refill policy.
const (
	InitialCount = 4
	RefillCount  = 3
	LowWaterMark = 3
)

// SettleDelay is how long an advance transition runs before the head pop is
// applied. Two advances inside the window must collapse to one pop, so the
// delay is a correctness contract, not just animation timing.
const SettleDelay = 300 * time.Millisecond

// RefreshSettleDelay holds the refresh indicator briefly after a manual
// refresh completes.
const RefreshSettleDelay = 500 * time.Millisecond

// Warning messages for the degraded content tiers.
const (
	WarnFallback = "Couldn't fetch new content. Showing older drips."
	WarnSamples  = "Couldn't connect. Showing some of our favorite drips."
	ErrNoContent = "The AI couldn't generate content and no fallback is available. Please check your connection."
)

// Generator produces one drip per call. genai.Source satisfies this.
type Generator interface {
	Generate(ctx context.Context, prefs []string, region string) (model.Drip, error)
}

// DripCache is the durable last-known-good storage the controller mirrors
// successful fetches into. *store.Store satisfies this.
type DripCache interface {
	FallbackDrips() []model.Drip
	SaveFallbackDrips([]model.Drip) error
}

// fallbackTier is one entry in the ordered fallback chain tried when live
// generation yields nothing. A tier that returns a non-empty list stops the
// cascade. Adding or reordering tiers is a data change.
type fallbackTier struct {
	name    string
	warning string
	load    func() []model.Drip
}

// LoadOutcome describes where loadInitial landed.
type LoadOutcome struct {
	Mode    model.Mode
	Warning string // soft warning for degraded tiers, empty on live content
	Err     string // hard failure message when Mode == ModeError
	Stale   bool   // result discarded because a newer load superseded it
}

// Controller owns the in-memory content queue. All methods are safe for
// concurrent use; blocking operations are expected to run inside background
// commands while the presentation layer reads queue snapshots.
type Controller struct {
	gen   Generator
	cache DripCache
	tiers []fallbackTier

	inFlight atomic.Bool // at most one batch outstanding system-wide

	mu            sync.Mutex
	queue         []model.Drip
	transitioning bool
	loadGen       uint64 // bumped per load; stale results are discarded
}

// New creates a controller. samples is the bundled tier shown when both live
// generation and the fallback cache come up empty.
func New(gen Generator, cache DripCache, samples []model.Drip) *Controller {
	c := &Controller{gen: gen, cache: cache}
	c.tiers = []fallbackTier{
		{name: "cached", warning: WarnFallback, load: cache.FallbackDrips},
		{name: "samples", warning: WarnSamples, load: func() []model.Drip { return samples }},
	}
	return c
}

// Queue returns a snapshot copy of the current queue, front first.
func (c *Controller) Queue() []model.Drip {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Drip, len(c.queue))
	copy(out, c.queue)
	return out
}

// Len returns the current queue length.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// Head returns the currently displayed drip, if any.
func (c *Controller) Head() (model.Drip, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.queue) == 0 {
		return model.Drip{}, false
	}
	return c.queue[0], true
}

// FetchInFlight reports whether a batch request is outstanding.
func (c *Controller) FetchInFlight() bool {
	return c.inFlight.Load()
}

// RequestBatch issues count independent generation requests in parallel and
// waits for all of them to settle regardless of individual failure. Fulfilled
// results are returned in slot order; rejected ones are dropped silently. If
// every request fails, a single aggregated error is returned.
//
// The in-flight guard rejects overlapping calls immediately with an empty,
// error-free result - requests are never queued behind each other. The guard
// is cleared on every exit path.
func (c *Controller) RequestBatch(ctx context.Context, prefs []string, count int, region string) ([]model.Drip, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		logging.Debug("batch rejected, fetch already in flight")
		return nil, nil
	}
	defer c.inFlight.Store(false)

	results := make([]*model.Drip, count)
	errs := make([]error, count)

	var g errgroup.Group
	for i := 0; i < count; i++ {
		g.Go(func() error {
			d, err := c.gen.Generate(ctx, prefs, region)
			if err != nil {
				errs[i] = err
				return nil // never fail the group - the batch settles as a whole
			}
			results[i] = &d
			return nil
		})
	}
	_ = g.Wait()

	var drips []model.Drip
	for _, d := range results {
		if d != nil {
			drips = append(drips, *d)
		}
	}

	if len(drips) == 0 {
		for _, err := range errs {
			if err != nil {
				logging.Warn("batch generation failed", "count", count, "error", err)
				return nil, fmt.Errorf("generate batch: %w", err)
			}
		}
		return nil, fmt.Errorf("generate batch: no content produced")
	}

	// Mirror successes into the fallback cache, best effort.
	if err := c.cache.SaveFallbackDrips(drips); err != nil {
		logging.Warn("fallback cache write failed", "error", err)
	}

	logging.Debug("batch complete", "requested", count, "fulfilled", len(drips))
	return drips, nil
}

// beginLoad invalidates any load still in progress and returns the token the
// new load must present when committing its result.
func (c *Controller) beginLoad() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadGen++
	c.queue = nil
	return c.loadGen
}

// commitLoad installs a load result unless a newer load has started since the
// token was issued. Stale results are discarded rather than overwriting newer
// state.
func (c *Controller) commitLoad(token uint64, drips []model.Drip) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loadGen != token {
		return false
	}
	c.queue = model.DedupByID(drips)
	return true
}

// LoadInitial runs the three-tier load: live generation, then the fallback
// cache, then the bundled samples, each tier stopping the cascade when it
// yields content. With empty preferences no fetch is attempted and the
// outcome directs the caller to the preferences screen.
func (c *Controller) LoadInitial(ctx context.Context, prefs []string, region string) LoadOutcome {
	if len(prefs) == 0 {
		return LoadOutcome{Mode: model.ModePreferences}
	}

	token := c.beginLoad()

	drips, err := c.RequestBatch(ctx, prefs, InitialCount, region)
	if err != nil {
		logging.Warn("initial fetch failed, trying fallback tiers", "error", err)
	}
	if len(drips) > 0 {
		if !c.commitLoad(token, drips) {
			return LoadOutcome{Stale: true}
		}
		return LoadOutcome{Mode: model.ModeContent}
	}

	for _, tier := range c.tiers {
		cached := tier.load()
		if len(cached) == 0 {
			continue
		}
		if !c.commitLoad(token, cached) {
			return LoadOutcome{Stale: true}
		}
		logging.Info("serving degraded tier", "tier", tier.name, "items", len(cached))
		return LoadOutcome{Mode: model.ModeContent, Warning: tier.warning}
	}

	return LoadOutcome{Mode: model.ModeError, Err: ErrNoContent}
}

// Advance begins consuming the current head. Rejected when the queue holds at
// most one item (manual advance never empties the queue) or while a previous
// advance is still settling. The pop itself happens in CompleteAdvance after
// the settle delay; overlapping advances inside the window collapse to one.
func (c *Controller) Advance() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.transitioning || len(c.queue) <= 1 {
		return false
	}
	c.transitioning = true
	return true
}

// CompleteAdvance applies a previously begun advance: pops the front item and
// clears the transition flag. Returns the popped drip. The caller fires the
// viewed-counter increment exactly once per true return.
func (c *Controller) CompleteAdvance() (model.Drip, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.transitioning || len(c.queue) == 0 {
		c.transitioning = false
		return model.Drip{}, false
	}
	head := c.queue[0]
	c.queue = c.queue[1:]
	c.transitioning = false
	return head, true
}

// Transitioning reports whether an advance is currently settling.
func (c *Controller) Transitioning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transitioning
}

// NeedsRefill reports whether the queue has shrunk below the low-water mark
// and no fetch is outstanding. Callers check this whenever the queue shrinks
// while content is showing.
func (c *Controller) NeedsRefill() bool {
	if c.inFlight.Load() {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue) < LowWaterMark
}

// Refill tops the queue back up: a small batch appended to the back, never
// disturbing the head or existing order. Failures are silent - the user is
// still viewing content from an earlier tier, and the next queue shrink
// re-evaluates naturally. Returns the number of drips appended.
func (c *Controller) Refill(ctx context.Context, prefs []string, region string) int {
	drips, err := c.RequestBatch(ctx, prefs, RefillCount, region)
	if err != nil || len(drips) == 0 {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.queue = model.DedupByID(append(c.queue, drips...))
	return len(drips)
}

// RefreshAll is the manual full refresh: a full-size fetch regardless of the
// current queue length, replacing the entire queue on success. On failure the
// queue is left untouched - a manual refresh never regresses to fallback
// tiers. Returns true when the queue was replaced.
func (c *Controller) RefreshAll(ctx context.Context, prefs []string, region string) bool {
	drips, err := c.RequestBatch(ctx, prefs, InitialCount, region)
	if err != nil || len(drips) == 0 {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.queue = model.DedupByID(drips)
	return true
}

// maxUploadBytes caps inline media payloads on user submissions.
const maxUploadBytes = 10 * 1024 * 1024

// SubmitUserItem validates and prepends a user-created drip. No network is
// involved. On validation failure nothing is mutated. The returned drip
// carries the assigned ID and author.
func (c *Controller) SubmitUserItem(fact, caption, mediaURL string, kind model.MediaKind, author string) (model.Drip, error) {
	if fact == "" || caption == "" || mediaURL == "" {
		return model.Drip{}, fmt.Errorf("fact, caption, and media are all required")
	}
	if len(mediaURL) > maxUploadBytes {
		return model.Drip{}, fmt.Errorf("media is too large, max 10MB")
	}
	if kind != model.MediaImage && kind != model.MediaVideo {
		kind = model.MediaImage
	}

	d := model.Drip{
		ID:              model.NewUserDripID(),
		Fact:            fact,
		FunnyCaption:    caption,
		MediaURL:        mediaURL,
		MediaKind:       kind,
		IsUserGenerated: true,
		Author:          author,
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.queue = append([]model.Drip{d}, c.queue...)
	return d, nil
}
