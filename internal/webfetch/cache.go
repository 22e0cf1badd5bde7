// File path: internal/webfetch/cache.go
package webfetch

import (
	"container/list"
	"context"
	"strings"
	"sync"
	"time"

	"github.com/outreachready/backend/internal/common"
)

type pageEntry struct {
	url     string
	content string
	fetched time.Time
}

type pageCache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	items    map[string]*list.Element
	ll       *list.List
}

func newPageCache(size int, ttl time.Duration) *pageCache {
	if size <= 0 {
		size = 64
	}
	return &pageCache{
		capacity: size,
		ttl:      ttl,
		items:    make(map[string]*list.Element, size),
		ll:       list.New(),
	}
}

func (c *pageCache) get(url string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	elem, ok := c.items[url]
	if !ok {
		return "", false
	}
	entry := elem.Value.(pageEntry)
	if c.ttl > 0 && time.Since(entry.fetched) > c.ttl {
		c.ll.Remove(elem)
		delete(c.items, url)
		return "", false
	}
	c.ll.MoveToFront(elem)
	return entry.content, true
}

func (c *pageCache) set(url, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.items[url]; ok {
		elem.Value = pageEntry{url: url, content: content, fetched: time.Now()}
		c.ll.MoveToFront(elem)
		return
	}
	elem := c.ll.PushFront(pageEntry{url: url, content: content, fetched: time.Now()})
	c.items[url] = elem
	if c.ll.Len() > c.capacity {
		tail := c.ll.Back()
		if tail != nil {
			c.ll.Remove(tail)
			delete(c.items, tail.Value.(pageEntry).url)
		}
	}
}

// CachedFetcher wraps a Fetcher with an in-process LRU so repeated requests
// against the same contact or seller site do not re-crawl within the TTL.
// Errors are never cached.
type CachedFetcher struct {
	inner Fetcher
	cache *pageCache
}

func NewCachedFetcher(inner Fetcher, size int, ttl time.Duration) *CachedFetcher {
	return &CachedFetcher{inner: inner, cache: newPageCache(size, ttl)}
}

func (f *CachedFetcher) Fetch(ctx context.Context, url string) (string, error) {
	key := strings.TrimSpace(url)
	if content, ok := f.cache.get(key); ok {
		common.Logger().Debug("webfetch: cache hit", "url", key)
		return content, nil
	}
	content, err := f.inner.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	f.cache.set(key, content)
	return content, nil
}
