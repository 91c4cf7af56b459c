package refcache

import (
	"container/list"
	"errors"
	"fmt"
	"strings"
	"sync"
)

const (
	// DefaultCapacity is the maximum number of token mappings kept live.
	DefaultCapacity = 500

	// maxSuffix bounds the collision disambiguation probe. A 4-char digest
	// would need 100 distinct colliding references to exhaust it.
	maxSuffix = 99

	// URLTokenPrefix tags tokens that were minted for shortened URLs, as
	// they appear inside [url:TOKEN] placeholders. Resolve accepts tokens
	// with or without the prefix.
	URLTokenPrefix = "url:"
)

// ErrTokenSpaceExhausted is returned by Assign when more than maxSuffix
// distinct references share one base token. Callers should fall back to the
// full native reference rather than fail the request.
var ErrTokenSpaceExhausted = errors.New("token space exhausted")

// MetricsRecorder receives cache events for observability. Implementations
// must be safe for concurrent use; all methods are called with the cache
// lock held and must not call back into the cache.
type MetricsRecorder interface {
	RecordAssignment(collision bool)
	RecordEviction(evicted int)
	RecordResolve(hit bool)
}

type entry struct {
	token string
	ref   string
}

// Cache is a bounded, recency-ordered mapping from short tokens to native
// references. All operations are atomic with respect to each other; a single
// mutex guards the table and the recency list.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*list.Element
	order    *list.List // front = least recently used, back = most recent
	metrics  MetricsRecorder
}

// New creates an empty cache with the default capacity.
func New() *Cache {
	return NewWithCapacity(DefaultCapacity)
}

// NewWithCapacity creates an empty cache holding at most capacity entries.
// Non-positive capacities fall back to the default.
func NewWithCapacity(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
	}
}

// SetMetrics installs a metrics recorder. Pass nil to disable recording.
func (c *Cache) SetMetrics(m MetricsRecorder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.metrics = m
}

// Assign returns the short token for a native reference, minting and caching
// one if needed. Re-assigning a reference that is still cached returns the
// token it already holds and refreshes its recency.
//
// If the base token is taken by a different reference, suffixed candidates
// base1..base99 are probed for the first slot that is free or already owned
// by this reference. Inserting a genuinely new token into a full cache first
// evicts the least recently used half of all entries.
func (c *Cache) Assign(ref string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	base := Hash(ref)
	token := base
	collision := false

	if el, ok := c.entries[token]; ok && el.Value.(*entry).ref != ref {
		collision = true
		token = ""
		for suffix := 1; suffix <= maxSuffix; suffix++ {
			candidate := fmt.Sprintf("%s%d", base, suffix)
			el, ok := c.entries[candidate]
			if !ok || el.Value.(*entry).ref == ref {
				token = candidate
				break
			}
		}
		if token == "" {
			return "", fmt.Errorf("%w: %d distinct references share token %q", ErrTokenSpaceExhausted, maxSuffix+1, base)
		}
	}

	if _, ok := c.entries[token]; !ok && len(c.entries) >= c.capacity {
		c.evictOldestHalf()
	}

	if el, ok := c.entries[token]; ok {
		el.Value.(*entry).ref = ref
		c.order.MoveToBack(el)
	} else {
		c.entries[token] = c.order.PushBack(&entry{token: token, ref: ref})
	}

	if c.metrics != nil {
		c.metrics.RecordAssignment(collision)
	}
	return token, nil
}

// Resolve maps a short token back to its native reference. A url: prefix is
// stripped before lookup so [url:TOKEN] placeholders resolve like plain
// tokens. A hit refreshes the entry's recency. A miss returns the input
// unchanged: the caller may already hold a full native reference, and the
// store lookup that follows will surface any real error.
func (c *Cache) Resolve(token string) string {
	key := strings.TrimPrefix(token, URLTokenPrefix)

	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if c.metrics != nil {
		c.metrics.RecordResolve(ok)
	}
	if !ok {
		return token
	}
	c.order.MoveToBack(el)
	return el.Value.(*entry).ref
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictOldestHalf drops the least recently used half of all entries in one
// sweep. Bulk eviction keeps insertion cost amortized instead of paying a
// removal on every insert once the cache fills. Caller must hold c.mu.
func (c *Cache) evictOldestHalf() {
	evict := len(c.entries) / 2
	for i := 0; i < evict; i++ {
		el := c.order.Front()
		if el == nil {
			break
		}
		c.order.Remove(el)
		delete(c.entries, el.Value.(*entry).token)
	}
	if c.metrics != nil && evict > 0 {
		c.metrics.RecordEviction(evict)
	}
}
