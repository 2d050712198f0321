// Package cache holds immutable objects that are expensive or pointless to
// rebuild for every session: letter distributions parsed from disk, named
// board layouts and so on. Autoplay threads and the HTTP host share them.
package cache

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/domino14/lineword/config"
)

type LoadFunc func(cfg *config.Config, key string) (any, error)

type cache struct {
	sync.Mutex
	objects map[string]any
}

// GlobalObjectCache is the process-wide cache.
var (
	GlobalObjectCache *cache
	createOnce        sync.Once
)

func (c *cache) get(cfg *config.Config, key string, loadFunc LoadFunc) (any, error) {
	c.Lock()
	defer c.Unlock()
	if obj, ok := c.objects[key]; ok {
		log.Debug().Str("key", key).Msg("getting obj from cache")
		return obj, nil
	}
	log.Debug().Str("key", key).Msg("loading into cache")
	obj, err := loadFunc(cfg, key)
	if err != nil {
		return nil, err
	}
	c.objects[key] = obj
	return obj, nil
}

func (c *cache) reset() {
	c.Lock()
	defer c.Unlock()
	c.objects = make(map[string]any)
}

func CreateGlobalObjectCache() {
	createOnce.Do(func() {
		GlobalObjectCache = &cache{objects: make(map[string]any)}
	})
}

// Load returns the object stored under key, calling loadFunc to build it
// the first time. Failed loads are not cached.
func Load(cfg *config.Config, key string, loadFunc LoadFunc) (any, error) {
	CreateGlobalObjectCache()
	return GlobalObjectCache.get(cfg, key, loadFunc)
}

// Reset drops everything so the next Load of any key rebuilds it.
func Reset() {
	CreateGlobalObjectCache()
	GlobalObjectCache.reset()
}
