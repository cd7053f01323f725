package services

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
	"github.com/BASILR00T/kawnhub-sub000/internal/core/ports/driven"
	"github.com/BASILR00T/kawnhub-sub000/internal/core/ports/driving"
	"github.com/BASILR00T/kawnhub-sub000/internal/logger"
)

// Ensure CorpusCache implements the interface.
var _ driving.CorpusService = (*CorpusCache)(nil)

// DefaultRetryBackoff is how long a last good snapshot is served after a
// failed fetch before the store is tried again.
const DefaultRetryBackoff = 10 * time.Second

// snapshot is an immutable corpus plus the invalidation epoch it was fetched in.
type snapshot struct {
	corpus domain.Corpus
	epoch  uint64
}

// CorpusCache is a lazily populated, time-bounded copy of every topic in the store.
//
// Readers always see a complete snapshot: refreshes build a new snapshot and
// swap it in atomically. Concurrent refreshes within one invalidation epoch
// share a store fetch; a caller arriving after Invalidate never joins a fetch
// that started before it.
type CorpusCache struct {
	store        driven.TopicStore
	ttl          time.Duration
	fetchTimeout time.Duration
	retryBackoff time.Duration
	now          func() time.Time
	metrics      *Metrics

	snap  atomic.Pointer[snapshot]
	epoch atomic.Uint64 // bumped by Invalidate only
	group singleflight.Group

	mu      sync.Mutex
	lastErr error
	// failedAt is zero unless the latest fetch failed. failedEpoch is the
	// epoch that fetch ran in.
	failedAt    time.Time
	failedEpoch uint64
}

// CorpusOption configures a CorpusCache.
type CorpusOption func(*CorpusCache)

// WithTTL sets how long a snapshot stays fresh.
func WithTTL(ttl time.Duration) CorpusOption {
	return func(c *CorpusCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithFetchTimeout bounds a single store fetch.
func WithFetchTimeout(d time.Duration) CorpusOption {
	return func(c *CorpusCache) {
		if d > 0 {
			c.fetchTimeout = d
		}
	}
}

// WithRetryBackoff sets how long a failed fetch holds off the next one while
// a last good snapshot exists. Zero retries on every access.
func WithRetryBackoff(d time.Duration) CorpusOption {
	return func(c *CorpusCache) {
		if d >= 0 {
			c.retryBackoff = d
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) CorpusOption {
	return func(c *CorpusCache) {
		if now != nil {
			c.now = now
		}
	}
}

// WithCorpusMetrics records cache activity.
func WithCorpusMetrics(m *Metrics) CorpusOption {
	return func(c *CorpusCache) {
		c.metrics = m
	}
}

// NewCorpusCache creates a cache over store. Nothing is fetched until first use.
func NewCorpusCache(store driven.TopicStore, opts ...CorpusOption) *CorpusCache {
	c := &CorpusCache{
		store:        store,
		ttl:          domain.DefaultCacheTTL,
		fetchTimeout: domain.DefaultFetchTimeout,
		retryBackoff: DefaultRetryBackoff,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Corpus returns the current snapshot, refreshing it first when stale.
// A failed refresh is logged and the last good snapshot (or an empty corpus)
// is returned. After a failure the last good snapshot is served without
// touching the store until the retry backoff passes or Invalidate is called.
func (c *CorpusCache) Corpus(ctx context.Context) domain.Corpus {
	if s := c.snap.Load(); s != nil {
		if c.fresh(s) {
			c.metrics.cacheHit()
			return s.corpus
		}
		if c.backingOff() {
			logger.Debug("corpus store failing, serving last good snapshot")
			return s.corpus
		}
	}

	corpus, _ := c.refresh(ctx)
	return corpus
}

// Invalidate marks the snapshot stale regardless of its age.
func (c *CorpusCache) Invalidate() {
	c.epoch.Add(1)
	c.metrics.invalidated()
	logger.Debug("corpus invalidated")
}

// Refresh forces a store fetch and reports its error.
func (c *CorpusCache) Refresh(ctx context.Context) error {
	_, err := c.refresh(ctx)
	return err
}

// Stats describes the cache state.
func (c *CorpusCache) Stats() domain.CorpusStats {
	stats := domain.CorpusStats{TTL: c.ttl, Stale: true}
	if s := c.snap.Load(); s != nil {
		stats.TopicCount = s.corpus.Len()
		stats.FetchedAt = s.corpus.FetchedAt
		stats.Generation = s.corpus.Generation
		stats.Invalidated = s.epoch < c.epoch.Load()
		stats.Stale = !c.fresh(s)
	}

	c.mu.Lock()
	if c.lastErr != nil {
		stats.LastError = c.lastErr.Error()
	}
	c.mu.Unlock()

	return stats
}

// fresh reports whether s may be served without a fetch: it was fetched in
// the current epoch, is younger than the TTL, and no fetch has failed since.
func (c *CorpusCache) fresh(s *snapshot) bool {
	if s.epoch != c.epoch.Load() || c.now().Sub(s.corpus.FetchedAt) >= c.ttl {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failedAt.IsZero()
}

// backingOff reports whether a recent failure in the current epoch should
// hold off the next fetch.
func (c *CorpusCache) backingOff() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failedAt.IsZero() || c.failedEpoch != c.epoch.Load() {
		return false
	}
	return c.now().Sub(c.failedAt) < c.retryBackoff
}

// refresh fetches a new snapshot. Callers in the same invalidation epoch
// share one fetch.
func (c *CorpusCache) refresh(ctx context.Context) (domain.Corpus, error) {
	epoch := c.epoch.Load()
	v, err, shared := c.group.Do(strconv.FormatUint(epoch, 10), func() (any, error) {
		return c.fetch(ctx, epoch)
	})
	if shared {
		logger.Debug("corpus refresh shared with concurrent caller")
	}
	return v.(domain.Corpus), err
}

type listResult struct {
	topics []domain.Topic
	err    error
}

// fetch loads every topic under a timeout detached from the caller's
// cancellation and tags the result with epoch. It always returns a usable
// corpus.
func (c *CorpusCache) fetch(ctx context.Context, epoch uint64) (domain.Corpus, error) {
	logger.Section("Corpus Refresh")

	fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.fetchTimeout)
	defer cancel()

	ch := make(chan listResult, 1)
	go func() {
		topics, err := c.store.List(fctx)
		ch <- listResult{topics: topics, err: err}
	}()

	var res listResult
	select {
	case res = <-ch:
	case <-fctx.Done():
		res.err = fctx.Err()
	}

	if res.err != nil {
		err := fmt.Errorf("%w: %w", domain.ErrCorpusFetch, res.err)
		c.recordFailure(err, epoch)
		c.metrics.refreshed(false, 0)
		logger.Error("corpus refresh failed: %v", err)

		if prev := c.snap.Load(); prev != nil {
			logger.Warn("serving last good corpus (%d topics, generation %d)", prev.corpus.Len(), prev.corpus.Generation)
			return prev.corpus, err
		}
		return domain.Corpus{Topics: []domain.Topic{}}, err
	}

	topics := dedupeTopics(res.topics)
	for {
		prev := c.snap.Load()
		if prev != nil && prev.epoch > epoch {
			// A fetch started after a later Invalidate has already landed.
			logger.Debug("discarding corpus fetched in superseded epoch %d", epoch)
			return prev.corpus, nil
		}

		var generation uint64 = 1
		if prev != nil {
			generation = prev.corpus.Generation + 1
		}
		next := &snapshot{
			corpus: domain.Corpus{
				Topics:     topics,
				FetchedAt:  c.now(),
				Generation: generation,
			},
			epoch: epoch,
		}
		if c.snap.CompareAndSwap(prev, next) {
			c.recordSuccess()
			c.metrics.refreshed(true, next.corpus.Len())
			logger.Debug("corpus loaded: %d topics, generation %d", next.corpus.Len(), generation)
			return next.corpus, nil
		}
	}
}

func (c *CorpusCache) recordFailure(err error, epoch uint64) {
	if s := c.snap.Load(); s != nil && s.epoch > epoch {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = err
	c.failedAt = c.now()
	c.failedEpoch = epoch
}

func (c *CorpusCache) recordSuccess() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = nil
	c.failedAt = time.Time{}
}

// dedupeTopics keeps the first occurrence of each topic ID.
func dedupeTopics(topics []domain.Topic) []domain.Topic {
	out := make([]domain.Topic, 0, len(topics))
	seen := make(map[string]struct{}, len(topics))
	for _, t := range topics {
		if _, dup := seen[t.ID]; dup {
			logger.Warn("duplicate topic id %q in corpus fetch, keeping first", t.ID)
			continue
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	return out
}
