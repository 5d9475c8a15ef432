// Package roadgraph implements the directed, weighted road graph the
// map-matching core runs shortest-path queries over.
//
// The graph is logically immutable: it is built once from an external
// loader and read-only for the lifetime of a track. The single exception is
// the splice/unsplice discipline — the oracle temporarily inserts virtual
// nodes to represent mid-edge projections, then removes them again before
// returning, on every exit path. RoadGraph.NewVirtual/Splice/Unsplice below
// is that discipline's implementation; apart from AddEdge, which the loader
// uses while building the graph, every other method only reads.
//
// A fixed-size CSR representation is wrong here: it is append-only and
// cannot support transient node insertion and removal once per query. An
// adjacency-list representation keeps the same "edge = (to, weight, road
// id)" shape but supports splice as an append and unsplice as a scan of one
// vertex's out-edges.
package roadgraph

import (
	"fmt"

	"github.com/azybler/mapmatch/pkg/model"
)

// Edge is one directed road edge out of some vertex.
type Edge struct {
	To     model.VertexID
	Weight float64
	RoadID model.RoadID
}

// RoadGraph is a directed graph keyed by adjacency list.
type RoadGraph struct {
	adj map[model.VertexID][]Edge

	// nextVirtual allocates ids for transient splice vertices. These are
	// always negative and distinct from model.SRC/model.DST, which are
	// output-only display tokens never inserted into adj.
	nextVirtual model.VertexID
}

// New creates an empty RoadGraph.
func New() *RoadGraph {
	return &RoadGraph{
		adj:         make(map[model.VertexID][]Edge),
		nextVirtual: -1000,
	}
}

// AddEdge inserts a permanent directed edge into the graph. Intended for use
// by the external loader while building the graph, before it is handed to
// the matching core.
func (g *RoadGraph) AddEdge(from, to model.VertexID, weight float64, roadID model.RoadID) {
	if weight <= 0 {
		panic(fmt.Sprintf("roadgraph: non-positive edge weight %v for road %v", weight, roadID))
	}
	g.adj[from] = append(g.adj[from], Edge{To: to, Weight: weight, RoadID: roadID})
}

// EdgesFrom returns the directed edges leaving v. The returned slice must
// not be mutated by the caller.
func (g *RoadGraph) EdgesFrom(v model.VertexID) []Edge {
	return g.adj[v]
}

// EdgeWeight returns the weight of the edge source->target, asserting it
// equals expected. Panics if the edge is missing or its weight disagrees —
// both are fatal to the track.
func (g *RoadGraph) EdgeWeight(source, target model.VertexID, expected float64) float64 {
	for _, e := range g.adj[source] {
		if e.To == target {
			if e.Weight != expected {
				panic(fmt.Sprintf("roadgraph: edge %v->%v weight %v != candidate edge_weight %v", source, target, e.Weight, expected))
			}
			return e.Weight
		}
	}
	panic(fmt.Sprintf("roadgraph: no edge %v->%v in road graph", source, target))
}

// NewVirtual allocates a fresh virtual vertex id for use in one Splice call.
func (g *RoadGraph) NewVirtual() model.VertexID {
	g.nextVirtual--
	return g.nextVirtual
}

// Splice records one transient edge. It appends the edge as AddEdge does,
// without AddEdge's positive-weight check, and exists to make call sites
// self-documenting: every Splice must be paired
// with an Unsplice of the same (from, to) before the oracle call returns.
func (g *RoadGraph) Splice(from, to model.VertexID, weight float64, roadID model.RoadID) {
	g.adj[from] = append(g.adj[from], Edge{To: to, Weight: weight, RoadID: roadID})
}

// Unsplice removes the single edge from->to inserted by a prior Splice call.
// It is a no-op if no such edge exists, so callers may call it unconditionally
// on every exit path (including early-return/panic-recovery paths) without
// tracking whether the splice actually happened.
func (g *RoadGraph) Unsplice(from, to model.VertexID) {
	edges := g.adj[from]
	for i, e := range edges {
		if e.To == to {
			edges[i] = edges[len(edges)-1]
			g.adj[from] = edges[:len(edges)-1]
			break
		}
	}
	if len(g.adj[from]) == 0 {
		delete(g.adj, from)
	}
}

// NumVertices returns the number of vertices with at least one outgoing
// edge. Exposed for diagnostics and tests, not used by the hot path.
func (g *RoadGraph) NumVertices() int {
	return len(g.adj)
}
