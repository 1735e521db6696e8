// Package converter rewrites American-English vocabulary in plain text to its
// British-English equivalent using a compiled rule list.
package converter

import (
	"sync"

	"github.com/golang/groupcache/lru"

	"github.com/tesh254/ukify/internal/dictionary"
)

// Converter applies an immutable rule list to text. It is safe for
// concurrent use.
type Converter struct {
	rules dictionary.Rules

	mu     sync.Mutex
	cache  *lru.Cache
	hits   uint64
	misses uint64
}

// Option configures a Converter.
type Option func(*Converter)

// WithCache memoizes up to size conversions keyed by input text.
// A size of zero or less disables the cache.
func WithCache(size int) Option {
	return func(c *Converter) {
		if size > 0 {
			c.cache = lru.New(size)
		}
	}
}

// New creates a converter for rules. The slice is copied so later changes
// by the caller do not affect conversions.
func New(rules dictionary.Rules, opts ...Option) *Converter {
	c := &Converter{rules: append(dictionary.Rules(nil), rules...)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Len returns the number of rules.
func (c *Converter) Len() int { return len(c.rules) }

// ConvertText applies every rule in order and returns the result.
func (c *Converter) ConvertText(text string) string {
	if c.cache == nil {
		return c.apply(text)
	}

	c.mu.Lock()
	if v, ok := c.cache.Get(text); ok {
		c.hits++
		c.mu.Unlock()
		return v.(string)
	}
	c.misses++
	c.mu.Unlock()

	out := c.apply(text)

	c.mu.Lock()
	c.cache.Add(text, out)
	c.mu.Unlock()
	return out
}

func (c *Converter) apply(text string) string {
	for _, r := range c.rules {
		text = r.Apply(text)
	}
	return text
}

// Stats holds cache counters.
type Stats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

// Stats returns the cache counters. They are all zero when caching is off.
func (c *Converter) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cache == nil {
		return Stats{}
	}
	return Stats{Hits: c.hits, Misses: c.misses, Entries: c.cache.Len()}
}
