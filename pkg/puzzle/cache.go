package puzzle

import (
	"sync"

	"github.com/praetorian-inc/almanac/pkg/types"
)

// cacheKey identifies one solve: same puzzle, part and input bytes.
type cacheKey struct {
	puzzle string
	part   Part
	input  types.InputID
}

// ResultCache caches answers by (puzzle, part, input hash).
type ResultCache struct {
	answers map[cacheKey]string
	mu      sync.RWMutex
}

// NewResultCache creates an empty cache.
func NewResultCache() *ResultCache {
	return &ResultCache{
		answers: make(map[cacheKey]string),
	}
}

// Get returns the cached answer, if any.
func (c *ResultCache) Get(puzzle string, part Part, input types.InputID) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	answer, ok := c.answers[cacheKey{puzzle, part, input}]
	return answer, ok
}

// Set stores an answer.
func (c *ResultCache) Set(puzzle string, part Part, input types.InputID, answer string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.answers[cacheKey{puzzle, part, input}] = answer
}

// Len returns the number of cached answers.
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.answers)
}
