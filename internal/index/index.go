// Package index holds the cross-reference index used to resolve the
// linked-event ids that flares, CMEs and storms declare against each other.
package index

import "github.com/heliotrack/heliotrack/internal/event"

// Index maps activity ids to events across all three event types for a
// single fetch batch. It is read-only after Build.
type Index struct {
	m map[string]event.Event
}

// Build merges the given event lists into one keyspace in argument order.
// Upstream treats ids as globally unique across types; if an id still
// collides, the later insertion wins.
func Build(lists ...[]event.Event) *Index {
	n := 0
	for _, l := range lists {
		n += len(l)
	}
	ix := &Index{m: make(map[string]event.Event, n)}
	for _, l := range lists {
		for _, e := range l {
			ix.m[e.ID] = e
		}
	}
	return ix
}

// Lookup returns the event registered under id.
func (ix *Index) Lookup(id string) (event.Event, bool) {
	e, ok := ix.m[id]
	return e, ok
}

// Len returns the number of distinct ids in the index.
func (ix *Index) Len() int { return len(ix.m) }
