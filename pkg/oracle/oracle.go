// Package oracle implements the edge-constrained shortest-path oracle:
// given two candidate projections on (possibly different) road edges, it
// returns the shortest driving distance between them along with the
// vertex and road sequences that realize it.
//
// It runs a single bounded Dijkstra per query against a graph it mutates
// for the duration of the call, rather than a precomputed bidirectional
// contraction-hierarchy search over a static graph, because contraction
// hierarchies and per-query splicing are fundamentally incompatible: any
// precomputed shortcut can be invalidated by the very virtual node the
// query needs to insert.
package oracle

import (
	"github.com/azybler/mapmatch/pkg/distancecache"
	"github.com/azybler/mapmatch/pkg/model"
	"github.com/azybler/mapmatch/pkg/roadgraph"
)

// endpoint is either a real graph vertex (when a candidate sits exactly at
// an edge's source or target) or a freshly spliced virtual vertex (when it
// sits strictly inside an edge). sentinel is the token substituted for this
// endpoint's vertex id in a recovered path, when it is virtual.
type endpoint struct {
	id          model.VertexID
	virtual     bool
	source, tgt model.VertexID
	sentinel    model.VertexID
}

func spliceEndpoint(g *roadgraph.RoadGraph, c model.Candidate, sentinel model.VertexID) endpoint {
	if c.Fraction == 0 {
		return endpoint{id: c.Source}
	}
	if c.Fraction == 1 {
		return endpoint{id: c.Target}
	}
	v := g.NewVirtual()
	g.Splice(c.Source, v, c.Fraction*c.EdgeWeight, c.RoadID)
	g.Splice(v, c.Target, (1-c.Fraction)*c.EdgeWeight, c.RoadID)
	return endpoint{id: v, virtual: true, source: c.Source, tgt: c.Target, sentinel: sentinel}
}

func (e endpoint) unsplice(g *roadgraph.RoadGraph) {
	if !e.virtual {
		return
	}
	g.Unsplice(e.source, e.id)
	g.Unsplice(e.id, e.tgt)
}

// Query returns the shortest driving distance from candidate a's projection
// to candidate b's projection, along with the vertex and road sequences
// realizing it. cutoff, clamped to cfg.MaxDis, bounds the cross-edge search;
// the same-edge case returns the on-edge distance without comparing it to
// cutoff. Results are
// memoized in cache keyed by the candidates' quantized projection ids;
// repeat queries for the same projection pair return the memoized result
// without touching the graph.
func Query(g *roadgraph.RoadGraph, cache *distancecache.Cache, cfg model.Config, a, b model.Candidate, cutoff float64) distancecache.Entry {
	// Structural invariant: candidate edge weights must match the graph.
	g.EdgeWeight(a.Source, a.Target, a.EdgeWeight)
	g.EdgeWeight(b.Source, b.Target, b.EdgeWeight)

	srcID := a.Projection(cfg)
	dstID := b.Projection(cfg)

	if entry, ok := cache.Get(srcID, dstID); ok {
		return entry
	}

	if cutoff > cfg.MaxDis {
		cutoff = cfg.MaxDis
	}

	var entry distancecache.Entry
	if a.RoadID == b.RoadID {
		entry = sameEdge(cfg, a, b)
	} else {
		entry = crossEdge(g, cfg, a, b, cutoff)
	}

	cache.Put(srcID, dstID, entry.Distance, entry.VertexPath, entry.RoadPath)
	return entry
}

// sameEdge handles the same-edge case: a forward move along one directed
// edge, or MAX_DIS if that would require traveling backward.
func sameEdge(cfg model.Config, a, b model.Candidate) distancecache.Entry {
	if b.Fraction <= a.Fraction {
		return distancecache.Entry{Distance: cfg.MaxDis}
	}
	dist := (b.Fraction - a.Fraction) * a.EdgeWeight
	return distancecache.Entry{
		Distance:   dist,
		VertexPath: []model.VertexID{model.SRC, model.DST},
		RoadPath:   []model.RoadID{a.RoadID},
	}
}

// crossEdge handles the cross-edge case: splice in virtual endpoints as
// needed, run a bounded Dijkstra, and always unsplice before returning.
func crossEdge(g *roadgraph.RoadGraph, cfg model.Config, a, b model.Candidate, cutoff float64) distancecache.Entry {
	aEnd := spliceEndpoint(g, a, model.SRC)
	bEnd := spliceEndpoint(g, b, model.DST)
	defer aEnd.unsplice(g)
	defer bEnd.unsplice(g)

	dist, predVertex, predRoad, found := dijkstra(g, aEnd.id, bEnd.id, cutoff)
	if !found {
		return distancecache.Entry{Distance: cfg.MaxDis}
	}

	vertices, roads := reconstructPath(aEnd.id, bEnd.id, predVertex, predRoad)
	vertices = substituteSentinels(vertices, aEnd, bEnd)

	return distancecache.Entry{Distance: dist, VertexPath: vertices, RoadPath: roads}
}

func substituteSentinels(vertices []model.VertexID, aEnd, bEnd endpoint) []model.VertexID {
	out := make([]model.VertexID, len(vertices))
	for i, v := range vertices {
		switch {
		case aEnd.virtual && v == aEnd.id:
			out[i] = aEnd.sentinel
		case bEnd.virtual && v == bEnd.id:
			out[i] = bEnd.sentinel
		default:
			out[i] = v
		}
	}
	return out
}

// dijkstra runs a single-source Dijkstra from source, bounded by cutoff,
// stopping as soon as target is settled. Returns found=false if target is
// not reachable within cutoff.
func dijkstra(g *roadgraph.RoadGraph, source, target model.VertexID, cutoff float64) (dist float64, predVertex map[model.VertexID]model.VertexID, predRoad map[model.VertexID]model.RoadID, found bool) {
	best := map[model.VertexID]float64{source: 0}
	predVertex = make(map[model.VertexID]model.VertexID)
	predRoad = make(map[model.VertexID]model.RoadID)
	settled := make(map[model.VertexID]bool)

	h := &minHeap{}
	h.Push(source, 0)

	for h.Len() > 0 {
		item := h.Pop()
		if settled[item.node] {
			continue // stale lazy-decrease-key entry
		}
		cur, ok := best[item.node]
		if ok && item.dist > cur {
			continue
		}
		settled[item.node] = true

		if item.node == target {
			return item.dist, predVertex, predRoad, true
		}
		if item.dist > cutoff {
			break
		}

		for _, e := range g.EdgesFrom(item.node) {
			nd := item.dist + e.Weight
			if nd > cutoff {
				continue
			}
			if cur, ok := best[e.To]; !ok || nd < cur {
				best[e.To] = nd
				predVertex[e.To] = item.node
				predRoad[e.To] = e.RoadID
				h.Push(e.To, nd)
			}
		}
	}

	return 0, nil, nil, false
}

// reconstructPath walks predVertex back from target to source, returning
// the vertex sequence in source->target order and the collapsed road
// sequence (consecutive duplicate road ids merged).
func reconstructPath(source, target model.VertexID, predVertex map[model.VertexID]model.VertexID, predRoad map[model.VertexID]model.RoadID) ([]model.VertexID, []model.RoadID) {
	var vertices []model.VertexID
	var hops []model.RoadID

	v := target
	for {
		vertices = append(vertices, v)
		if v == source {
			break
		}
		hops = append(hops, predRoad[v])
		v = predVertex[v]
	}

	for i, j := 0, len(vertices)-1; i < j; i, j = i+1, j-1 {
		vertices[i], vertices[j] = vertices[j], vertices[i]
	}
	for i, j := 0, len(hops)-1; i < j; i, j = i+1, j-1 {
		hops[i], hops[j] = hops[j], hops[i]
	}

	var roads []model.RoadID
	for _, r := range hops {
		if len(roads) == 0 || roads[len(roads)-1] != r {
			roads = append(roads, r)
		}
	}

	return vertices, roads
}
