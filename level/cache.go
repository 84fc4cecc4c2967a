package level

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// The cache keeps parsed levels keyed by file path, so a host that
// re-enters the same level (shell `load`, a restart command) does not
// re-read and re-validate the file each time.

type cache struct {
	sync.Mutex
	levels map[string]*Level
}

var globalCache = &cache{levels: make(map[string]*Level)}

func (c *cache) get(path string) (*Level, error) {
	c.Lock()
	defer c.Unlock()
	if lvl, ok := c.levels[path]; ok {
		log.Debug().Str("path", path).Msg("level from cache")
		return lvl, nil
	}
	lvl, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("path", path).Msg("loaded level into cache")
	c.levels[path] = lvl
	return lvl, nil
}

// Cached loads the level at path through the package cache. Cached levels
// are shared; callers must treat them as read-only.
func Cached(path string) (*Level, error) {
	return globalCache.get(path)
}
