package artwork

import (
	"container/heap"
	"context"
	"errors"
	"sync"
	"time"
)

var ErrNotFound = errors.New("item not found")

type cacheItem struct {
	val []byte
	ttl time.Duration

	// unix millis
	expiresAt    int64
	lastAccessed int64
}

// Cache holds encoded artwork keyed by its source URL, so that a
// fast poll loop does not re-read or re-download the same image.
// Eviction strategy:
//  1. If there are fewer than MinSize items in the cache, none will be evicted
//  2. If a new addition would make the cache exceed MaxSize, an item will be immediately evicted
//     2a. in this case, evict the LRU expired item or if none expired, the LRU item
//  3. Between MinSize and MaxSize, expired items are periodically evicted, LRU first
type Cache struct {
	MinSize    int
	MaxSize    int
	DefaultTTL time.Duration

	mu    sync.Mutex
	cache map[string]*cacheItem
}

func (c *Cache) Init(ctx context.Context, evictionInterval time.Duration) {
	c.mu.Lock()
	c.cache = make(map[string]*cacheItem)
	c.mu.Unlock()
	if evictionInterval > 0 {
		go c.periodicallyEvict(ctx, evictionInterval)
	}
}

func (c *Cache) Set(key string, val []byte) {
	c.SetWithTTL(key, val, c.DefaultTTL)
}

// holds the lock for O(MaxSize) worst case
func (c *Cache) SetWithTTL(key string, val []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cache == nil {
		c.cache = make(map[string]*cacheItem)
	}

	now := time.Now()
	if v, ok := c.cache[key]; ok {
		v.val = val
		v.ttl = ttl
		v.expiresAt = now.Add(ttl).UnixMilli()
		v.lastAccessed = now.UnixMilli()
		return
	}
	if c.MaxSize > 0 && len(c.cache) >= c.MaxSize {
		c.evictOne()
	}
	c.cache[key] = &cacheItem{
		val:          val,
		ttl:          ttl,
		expiresAt:    now.Add(ttl).UnixMilli(),
		lastAccessed: now.UnixMilli(),
	}
}

func (c *Cache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.cache[key]
	return ok
}

// Get returns the item and extends its expiry to now + its TTL.
func (c *Cache) Get(key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.cache[key]; ok {
		now := time.Now()
		v.lastAccessed = now.UnixMilli()
		v.expiresAt = now.Add(v.ttl).UnixMilli()
		return v.val, nil
	}
	return nil, ErrNotFound
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}

// must be called with the lock held
func (c *Cache) evictOne() {
	now := time.Now().UnixMilli()
	var lruKey, lruExpiredKey string
	lruTime, lruExpiredTime := now+1, now+1
	for k, v := range c.cache {
		if v.expiresAt < now && v.lastAccessed < lruExpiredTime {
			lruExpiredTime = v.lastAccessed
			lruExpiredKey = k
		}
		if v.lastAccessed < lruTime {
			lruTime = v.lastAccessed
			lruKey = k
		}
	}
	if lruExpiredKey != "" {
		delete(c.cache, lruExpiredKey)
	} else {
		delete(c.cache, lruKey)
	}
}

func (c *Cache) periodicallyEvict(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	for {
		select {
		case <-ctx.Done():
			t.Stop()
			return
		case <-t.C:
			c.EvictExpired()
		}
	}
}

type expiredItem struct {
	key          string
	lastAccessed int64
}

type expiredHeap []expiredItem

func (h expiredHeap) Len() int           { return len(h) }
func (h expiredHeap) Less(i, j int) bool { return h[i].lastAccessed < h[j].lastAccessed }
func (h expiredHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *expiredHeap) Push(x any) { *h = append(*h, x.(expiredItem)) }

func (h *expiredHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// EvictExpired evicts least recently used expired items until there are
// none left or the cache is down to MinSize.
func (c *Cache) EvictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := len(c.cache)
	if count <= c.MinSize {
		return
	}
	now := time.Now().UnixMilli()
	expired := make(expiredHeap, 0, count-c.MinSize)
	for k, v := range c.cache {
		if v.expiresAt < now {
			expired = append(expired, expiredItem{key: k, lastAccessed: v.lastAccessed})
		}
	}
	heap.Init(&expired)
	for count > c.MinSize && expired.Len() > 0 {
		delete(c.cache, heap.Pop(&expired).(expiredItem).key)
		count--
	}
}
