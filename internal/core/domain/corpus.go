package domain

import "time"

// Corpus is an immutable snapshot of all topics available to search.
type Corpus struct {
	// Topics in store order.
	Topics []Topic

	// FetchedAt is when the snapshot was loaded. Zero for an empty corpus
	// that has never been fetched.
	FetchedAt time.Time

	// Generation increments on every successful refresh.
	Generation uint64
}

// Len returns the number of topics.
func (c Corpus) Len() int {
	return len(c.Topics)
}

// IsEmpty returns true if the corpus holds no topics.
func (c Corpus) IsEmpty() bool {
	return len(c.Topics) == 0
}

// Find returns the topic with the given ID.
func (c Corpus) Find(id string) (Topic, bool) {
	for _, t := range c.Topics {
		if t.ID == id {
			return t, true
		}
	}
	return Topic{}, false
}

// CorpusStats describes the state of the corpus cache.
type CorpusStats struct {
	TopicCount  int           `json:"topicCount"`
	FetchedAt   time.Time     `json:"fetchedAt"`
	Generation  uint64        `json:"generation"`
	Stale       bool          `json:"stale"`
	Invalidated bool          `json:"invalidated"`
	LastError   string        `json:"lastError,omitempty"`
	TTL         time.Duration `json:"ttl"`
}
