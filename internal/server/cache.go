package server

import (
	"sync"

	"github.com/ChicagoDave/skyline/pkg/skyline"
)

const maxCacheEntries = 64

type cacheKey struct {
	width, height float64
	seed          uint64
	clamp         bool
}

// sceneCache memoizes seeded generations. Unseeded requests are never
// cached since each one should get a fresh skyline.
type sceneCache struct {
	mu      sync.Mutex
	entries map[cacheKey][]skyline.Building
}

func newSceneCache() *sceneCache {
	return &sceneCache{entries: make(map[cacheKey][]skyline.Building)}
}

func (c *sceneCache) buildings(k cacheKey) ([]skyline.Building, error) {
	opts := skyline.Options{ClampPerspective: k.clamp}
	if k.seed == 0 {
		return opts.Generate(k.width, k.height, skyline.DefaultSource())
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if bs, ok := c.entries[k]; ok {
		return bs, nil
	}
	bs, err := opts.Generate(k.width, k.height, skyline.NewSource(k.seed))
	if err != nil {
		return nil, err
	}
	if len(c.entries) >= maxCacheEntries {
		clear(c.entries)
	}
	c.entries[k] = bs
	return bs, nil
}

func (c *sceneCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
