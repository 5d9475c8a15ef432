// Package stitch implements the path stitcher: walk the matched candidate
// sequence pairwise, pull each pair's already-cached shortest path out of
// the distance cache, gate on overspeed, and concatenate into one
// connected vertex/road path with consecutive duplicates suppressed.
package stitch

import (
	"errors"
	"fmt"

	"github.com/azybler/mapmatch/pkg/distancecache"
	"github.com/azybler/mapmatch/pkg/model"
)

// ErrOverspeed is returned when a stitched segment implies a speed above
// cfg.MaxV.
var ErrOverspeed = errors.New("stitch: segment requires overspeed travel")

// Stitch converts the matched candidate sequence into one connected vertex
// path and road path. cache must already contain an entry for every
// consecutive pair in matched — the oracle queries made during matching are
// expected to have populated it; a missing entry panics rather than
// recomputing, since recomputation risks silently diverging from the
// decoder's view of the same transition.
func Stitch(cache *distancecache.Cache, cfg model.Config, matched []model.Candidate) ([]model.VertexID, []model.RoadID, error) {
	var vertices []model.VertexID
	var roads []model.RoadID

	for i := 1; i < len(matched); i++ {
		a, b := matched[i-1], matched[i]
		srcID := a.Projection(cfg)
		dstID := b.Projection(cfg)

		entry, ok := cache.Get(srcID, dstID)
		if !ok {
			panic(fmt.Sprintf("stitch: no cached distance for pair %d->%d", i-1, i))
		}

		dt := b.Time - a.Time
		if dt*cfg.MaxV < entry.Distance {
			return nil, nil, ErrOverspeed
		}

		for _, v := range entry.VertexPath {
			if v == model.SRC || v == model.DST {
				continue
			}
			if len(vertices) == 0 || vertices[len(vertices)-1] != v {
				vertices = append(vertices, v)
			}
		}
		for _, r := range entry.RoadPath {
			if len(roads) == 0 || roads[len(roads)-1] != r {
				roads = append(roads, r)
			}
		}
	}

	return vertices, roads, nil
}
