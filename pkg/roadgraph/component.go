package roadgraph

import "github.com/azybler/mapmatch/pkg/model"

// UnionFind implements a disjoint-set data structure with path compression
// and union by rank. Vertex ids are an arbitrary sparse model.VertexID
// space rather than a dense range, so the backing store is a map rather
// than a slice.
type UnionFind struct {
	parent map[model.VertexID]model.VertexID
	rank   map[model.VertexID]byte
	size   map[model.VertexID]uint32
}

// NewUnionFind creates an empty UnionFind; sets are created lazily on first
// use via find.
func NewUnionFind() *UnionFind {
	return &UnionFind{
		parent: make(map[model.VertexID]model.VertexID),
		rank:   make(map[model.VertexID]byte),
		size:   make(map[model.VertexID]uint32),
	}
}

func (uf *UnionFind) ensure(x model.VertexID) {
	if _, ok := uf.parent[x]; !ok {
		uf.parent[x] = x
		uf.size[x] = 1
	}
}

// Find returns the representative of the set containing x, with path halving.
func (uf *UnionFind) Find(x model.VertexID) model.VertexID {
	uf.ensure(x)
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]] // path halving
		x = uf.parent[x]
	}
	return x
}

// Union merges the sets containing x and y. Returns false if already the same set.
func (uf *UnionFind) Union(x, y model.VertexID) bool {
	rx := uf.Find(x)
	ry := uf.Find(y)
	if rx == ry {
		return false
	}

	if uf.rank[rx] < uf.rank[ry] {
		rx, ry = ry, rx
	}
	uf.parent[ry] = rx
	uf.size[rx] += uf.size[ry]
	if uf.rank[rx] == uf.rank[ry] {
		uf.rank[rx]++
	}
	return true
}

// LargestComponent returns the vertices belonging to the largest weakly
// connected component of g (treating directed edges as undirected). Exposed
// as a diagnostic for loaders/tests to confirm a road graph fixture is
// connected enough for the oracle's assumptions; not on the matching hot
// path.
func LargestComponent(g *RoadGraph) []model.VertexID {
	uf := NewUnionFind()

	for u, edges := range g.adj {
		for _, e := range edges {
			uf.Union(u, e.To)
		}
	}

	sizeOf := func(root model.VertexID) uint32 { return uf.size[root] }

	var bestRoot model.VertexID
	var bestSize uint32
	seen := make(map[model.VertexID]bool)
	for u := range g.adj {
		seen[u] = true
		root := uf.Find(u)
		if sizeOf(root) > bestSize {
			bestRoot = root
			bestSize = sizeOf(root)
		}
	}
	for u, edges := range g.adj {
		_ = u
		for _, e := range edges {
			if !seen[e.To] {
				seen[e.To] = true
				root := uf.Find(e.To)
				if sizeOf(root) > bestSize {
					bestRoot = root
					bestSize = sizeOf(root)
				}
			}
		}
	}

	var nodes []model.VertexID
	for v := range seen {
		if uf.Find(v) == bestRoot {
			nodes = append(nodes, v)
		}
	}
	return nodes
}
