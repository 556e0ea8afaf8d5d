package summary

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const DefaultCacheSize = 1024

var cacheLookups = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "summary_cache_lookups_total",
		Help: "Summary cache lookups by result",
	},
	[]string{"result"},
)

// Cache memoizes summaries by content string across requests.
// Safe for concurrent use.
type Cache struct {
	next    Extractor
	entries *lru.Cache[string, Summary]
}

var _ Extractor = (*Cache)(nil)

// NewCache wraps next with a bounded LRU cache holding up to size summaries.
func NewCache(next Extractor, size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}

	entries, err := lru.New[string, Summary](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create summary cache: %w", err)
	}

	return &Cache{next: next, entries: entries}, nil
}

func (c *Cache) Extract(content string) Summary {
	if s, ok := c.entries.Get(content); ok {
		cacheLookups.WithLabelValues("hit").Inc()
		return s
	}

	cacheLookups.WithLabelValues("miss").Inc()
	s := c.next.Extract(content)
	c.entries.Add(content, s)
	return s
}

func (c *Cache) Len() int {
	return c.entries.Len()
}

// Memo holds the summary of the last content string it saw.
// It backs a single card and is not safe for concurrent use.
type Memo struct {
	extractor Extractor
	content   string
	summary   Summary
	valid     bool
}

func NewMemo(extractor Extractor) *Memo {
	return &Memo{extractor: extractor}
}

// Get returns the summary for content, recomputing only when content changes.
func (m *Memo) Get(content string) Summary {
	if m.valid && m.content == content {
		return m.summary
	}

	m.summary = m.extractor.Extract(content)
	m.content = content
	m.valid = true
	return m.summary
}
