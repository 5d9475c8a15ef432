// Package distancecache implements the per-track memoizing distance cache.
// One Cache is created empty at the start of each track and discarded at
// its end — it is never shared across tracks. It is consulted
// both by the oracle, to short-circuit Dijkstra, and by the stitcher, to
// recover the vertex/road segments of an already-matched sequence without
// recomputation.
package distancecache

import (
	"fmt"

	"github.com/azybler/mapmatch/pkg/model"
)

// Key is an ordered pair of projection ids: a query from src to dst.
type Key struct {
	Src, Dst model.ProjectionID
}

// Entry is a memoized shortest-path result. VertexPath and RoadPath are nil
// when Distance is the unreachable sentinel.
type Entry struct {
	Distance   float64
	VertexPath []model.VertexID
	RoadPath   []model.RoadID
}

// Cache memoizes oracle queries for the duration of one track.
type Cache struct {
	entries map[Key]Entry
}

// New creates an empty Cache.
func New() *Cache {
	return &Cache{entries: make(map[Key]Entry)}
}

// Get returns the memoized entry for (src, dst), if present.
func (c *Cache) Get(src, dst model.ProjectionID) (Entry, bool) {
	e, ok := c.entries[Key{src, dst}]
	return e, ok
}

// Put stores (distance, vertexPath, roadPath) for (src, dst). If the key was
// already present, the new distance must equal the old one — a disagreement
// panics rather than silently overwriting, since it means the oracle
// computed two different answers for the same projection pair within one
// track.
func (c *Cache) Put(src, dst model.ProjectionID, distance float64, vertexPath []model.VertexID, roadPath []model.RoadID) {
	key := Key{src, dst}
	if existing, ok := c.entries[key]; ok {
		if existing.Distance != distance {
			panic(fmt.Sprintf("distancecache: disagreement for %+v: had %v, got %v", key, existing.Distance, distance))
		}
		return
	}
	c.entries[key] = Entry{Distance: distance, VertexPath: vertexPath, RoadPath: roadPath}
}

// Clear drops all entries. Track boundary lifecycle: the caller of
// match.Match supplies the Cache for a track (and later hands the same
// Cache to stitch.Stitch); Clear lets that caller reuse a Cache's backing
// map across tracks instead of constructing a fresh one.
func (c *Cache) Clear() {
	clear(c.entries)
}

// Len reports the number of memoized entries. Diagnostic only.
func (c *Cache) Len() int {
	return len(c.entries)
}
