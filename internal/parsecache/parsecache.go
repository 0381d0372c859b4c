package parsecache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/saltoio/salto-core/internal/parser"
)

// Key identifies a cached parse result: the buffer's filename and the
// modification time it was parsed at. A newer modification time is always
// a miss, forcing a reparse.
type Key struct {
	Filename     string
	LastModified time.Time
}

// Cache is the consumed parse-cache interface.
type Cache interface {
	Get(key Key) (parser.Result, bool)
	Put(key Key, value parser.Result)
}

// LRU is an in-memory, bounded Cache backed by golang-lru.
type LRU struct {
	cache *lru.Cache[Key, parser.Result]
}

// New returns an LRU cache holding at most size entries.
func New(size int) (*LRU, error) {
	c, err := lru.New[Key, parser.Result](size)
	if err != nil {
		return nil, err
	}
	return &LRU{cache: c}, nil
}

func (l *LRU) Get(key Key) (parser.Result, bool) {
	return l.cache.Get(key)
}

func (l *LRU) Put(key Key, value parser.Result) {
	l.cache.Add(key, value)
}
