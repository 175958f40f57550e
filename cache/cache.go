package cache

// Descriptions is the session cache of book descriptions, keyed by book key.
// Entries are never overwritten or evicted; it lives only as long as the
// process. It is not safe for concurrent use: the owner serialises access.
type Descriptions struct {
	entries map[string]string
	bytes   int64
	hits    int
	misses  int
}

// NewDescriptions creates an empty description cache
func NewDescriptions() *Descriptions {
	return &Descriptions{entries: make(map[string]string)}
}

// Get retrieves the cached description for a book key
func (c *Descriptions) Get(key string) (string, bool) {
	desc, ok := c.entries[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return desc, ok
}

// Peek is Get without touching the hit/miss counters
func (c *Descriptions) Peek(key string) (string, bool) {
	desc, ok := c.entries[key]
	return desc, ok
}

// Set stores a description. It returns false and leaves the cache unchanged
// when the key already has an entry.
func (c *Descriptions) Set(key, desc string) bool {
	if _, exists := c.entries[key]; exists {
		return false
	}
	c.entries[key] = desc
	c.bytes += int64(len(desc))
	return true
}

// Len returns the number of cached descriptions
func (c *Descriptions) Len() int {
	return len(c.entries)
}

// Stats returns a snapshot of cache statistics
func (c *Descriptions) Stats() Stats {
	return Stats{
		Entries: len(c.entries),
		Bytes:   c.bytes,
		Hits:    c.hits,
		Misses:  c.misses,
	}
}
