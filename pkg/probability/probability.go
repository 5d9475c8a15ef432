// Package probability implements the observation and transition likelihood
// functions.
//
// Distances between planar points go through github.com/paulmach/orb's
// planar package rather than a hand-rolled math.Hypot: observation and
// candidate coordinates are already-projected planar coordinates, which is
// exactly what orb/planar.Distance assumes (unlike orb/geo, which treats
// points as lon/lat on a sphere). The observation likelihood's Normal PDF
// goes through gonum.org/v1/gonum/stat/distuv.Normal.Prob rather than a
// hand-rolled formula.
package probability

import (
	"github.com/paulmach/orb/planar"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/azybler/mapmatch/pkg/distancecache"
	"github.com/azybler/mapmatch/pkg/model"
	"github.com/azybler/mapmatch/pkg/oracle"
	"github.com/azybler/mapmatch/pkg/roadgraph"
)

// Observation returns p_obs(c): the likelihood of candidate c given its
// perpendicular projection distance from the observed fix, under a
// zero-mean Normal noise model with standard deviation cfg.ObservationSigma.
func Observation(cfg model.Config, c model.Candidate) float64 {
	dist := planar.Distance(c.Log, c.Proj)
	noise := distuv.Normal{Mu: 0, Sigma: cfg.ObservationSigma}
	return noise.Prob(dist)
}

// Transition returns the transition likelihood between consecutive
// candidates a (earlier) and b (later): it queries the oracle for the
// driving distance under a speed-derived cutoff, then classifies the ratio
// of Euclidean to driving distance.
func Transition(g *roadgraph.RoadGraph, cache *distancecache.Cache, cfg model.Config, a, b model.Candidate) float64 {
	euclidean := planar.Distance(a.Log, b.Log)

	dt := b.Time - a.Time
	cutoff := dt * cfg.MaxV
	if cutoff > cfg.MaxDis {
		cutoff = cfg.MaxDis
	}

	entry := oracle.Query(g, cache, cfg, a, b, cutoff)
	driving := entry.Distance

	switch {
	case driving == cfg.MaxDis:
		return cfg.SmallProbability
	case driving > euclidean+cfg.DetourMargin:
		return cfg.SmallProbability
	case driving == 0:
		return cfg.BigProbability
	}

	p := euclidean / driving
	if p > cfg.BigProbability {
		p = cfg.BigProbability
	}
	if p < cfg.SmallProbability {
		p = cfg.SmallProbability
	}
	return p
}
