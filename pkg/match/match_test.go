package match

import (
	"testing"

	"github.com/paulmach/orb"

	"github.com/azybler/mapmatch/pkg/distancecache"
	"github.com/azybler/mapmatch/pkg/model"
	"github.com/azybler/mapmatch/pkg/roadgraph"
)

// fixedProvider returns a fixed candidate slice per observation ID,
// regardless of retries.
type fixedProvider struct {
	byObs map[model.ObservationID][]model.Candidate
}

func (p fixedProvider) Candidates(obs model.ObservationID) ([]model.Candidate, error) {
	return p.byObs[obs], nil
}

func straightRoadGraph() *roadgraph.RoadGraph {
	g := roadgraph.New()
	g.AddEdge(100, 101, 100, 1)
	g.AddEdge(101, 102, 100, 2)
	g.AddEdge(102, 103, 100, 3)
	g.AddEdge(103, 104, 100, 4)
	g.AddEdge(104, 105, 100, 5)
	return g
}

func onTrackCandidate(obs model.ObservationID, road model.RoadID, src, tgt model.VertexID, x, t float64) model.Candidate {
	return model.Candidate{
		ObservationID: obs, RoadID: road, Source: src, Target: tgt, EdgeWeight: 100,
		Fraction: 0, Log: orb.Point{x, 0}, Proj: orb.Point{x, 0}, Time: t,
	}
}

func TestMatchReturnsConnectedPath(t *testing.T) {
	cfg := model.DefaultConfig()
	g := straightRoadGraph()
	cache := distancecache.New()

	track := []model.ObservationID{"o0", "o1", "o2", "o3"}
	provider := fixedProvider{byObs: map[model.ObservationID][]model.Candidate{
		"o0": {onTrackCandidate("o0", 1, 100, 101, 0, 0)},
		"o1": {onTrackCandidate("o1", 2, 101, 102, 100, 10)},
		"o2": {onTrackCandidate("o2", 3, 102, 103, 200, 20)},
		"o3": {onTrackCandidate("o3", 4, 103, 104, 300, 30)},
	}}

	path, err := Match(g, cache, cfg, track, provider)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if len(path) != 4 {
		t.Fatalf("path has %d candidates, want 4", len(path))
	}
}

func TestMatchPrunesBrokenObservationAndRetries(t *testing.T) {
	cfg := model.DefaultConfig()
	g := straightRoadGraph()
	cache := distancecache.New()

	track := []model.ObservationID{"o0", "o1", "bad", "o2", "o3", "o4"}
	provider := fixedProvider{byObs: map[model.ObservationID][]model.Candidate{
		"o0":  {onTrackCandidate("o0", 1, 100, 101, 0, 0)},
		"o1":  {onTrackCandidate("o1", 2, 101, 102, 100, 10)},
		"bad": {onTrackCandidate("bad", 99, 900, 901, 10000, 20)},
		"o2":  {onTrackCandidate("o2", 3, 102, 103, 200, 30)},
		"o3":  {onTrackCandidate("o3", 4, 103, 104, 300, 40)},
		"o4":  {onTrackCandidate("o4", 5, 104, 105, 400, 50)},
	}}
	g.AddEdge(900, 901, 100, 99)

	path, err := Match(g, cache, cfg, track, provider)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if len(path) != 4 {
		t.Fatalf("path has %d candidates after pruning, want 4 (o1 and bad dropped as the break bracket)", len(path))
	}
	for _, c := range path {
		if c.ObservationID == "bad" || c.ObservationID == "o1" {
			t.Errorf("observation %s bracketing the break should have been pruned", c.ObservationID)
		}
	}
}

func TestMatchAcceptsConnectedTrackBelowMinLength(t *testing.T) {
	// The minimum-length check only gates retries after a prune, so a track
	// that decodes as connected on its very first pass is returned even if
	// it starts out shorter than MinTrackLength.
	cfg := model.DefaultConfig()
	g := straightRoadGraph()
	cache := distancecache.New()

	track := []model.ObservationID{"o0", "o1"}
	provider := fixedProvider{byObs: map[model.ObservationID][]model.Candidate{
		"o0": {onTrackCandidate("o0", 1, 100, 101, 0, 0)},
		"o1": {onTrackCandidate("o1", 2, 101, 102, 100, 10)},
	}}

	path, err := Match(g, cache, cfg, track, provider)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if len(path) != 2 {
		t.Fatalf("path has %d candidates, want 2", len(path))
	}
}

func TestMatchNoMatchAfterPruningBelowMinLength(t *testing.T) {
	cfg := model.DefaultConfig()
	g := straightRoadGraph()
	cache := distancecache.New()
	g.AddEdge(900, 901, 50, 99)

	track := []model.ObservationID{"o0", "bad", "o2", "o3"}
	provider := fixedProvider{byObs: map[model.ObservationID][]model.Candidate{
		"o0":  {onTrackCandidate("o0", 1, 100, 101, 0, 0)},
		"bad": {onTrackCandidate("bad", 99, 900, 901, 10000, 10)},
		"o2":  {onTrackCandidate("o2", 3, 102, 103, 200, 20)},
		"o3":  {onTrackCandidate("o3", 4, 103, 104, 300, 30)},
	}}

	_, err := Match(g, cache, cfg, track, provider)
	if err != ErrNoMatch {
		t.Errorf("err = %v, want ErrNoMatch", err)
	}
}
