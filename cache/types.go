package cache

// Stats contains statistics about the description cache
type Stats struct {
	Entries int   `json:"entries"`
	Bytes   int64 `json:"bytes"`
	Hits    int   `json:"hits"`
	Misses  int   `json:"misses"`
}
