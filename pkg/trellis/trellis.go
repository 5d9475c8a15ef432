// Package trellis builds the per-track HMM trellis and runs Viterbi
// decoding. Layers are plain candidate slices indexed by position, and the
// trellis edges (transition likelihoods) are computed on demand during the
// DP sweep instead of being materialized as a separate graph object first.
package trellis

import (
	"errors"
	"math"

	"github.com/azybler/mapmatch/pkg/distancecache"
	"github.com/azybler/mapmatch/pkg/model"
	"github.com/azybler/mapmatch/pkg/probability"
	"github.com/azybler/mapmatch/pkg/roadgraph"
)

// ErrEmptyCandidateSet is returned when some observation in the track has no
// candidates at all; such an observation aborts the whole track.
var ErrEmptyCandidateSet = errors.New("trellis: observation has no candidates")

// Result is the outcome of one Decode call.
type Result struct {
	// Connected is false if the Viterbi path contains a transition whose
	// likelihood is exactly cfg.SmallProbability.
	Connected bool
	// Path is the matched candidate sequence, one per observation.
	Path []model.Candidate
	// BreakIndex is the position of the first broken transition within
	// Path (Path[BreakIndex-1] -> Path[BreakIndex]), or -1 if Connected.
	BreakIndex int
}

// Decode builds one trellis layer per observation (in observations order),
// runs the score recurrence f[v] = max over predecessors u of
// f[u] + transition(u,v)*observation(v) — a deliberate hybrid of
// addition-across-layers and multiplication-within-a-step, not a pure
// log-sum — and backtracks the best path, then scans it for a break.
func Decode(g *roadgraph.RoadGraph, cache *distancecache.Cache, cfg model.Config, observations []model.ObservationID, candidatesByObs map[model.ObservationID][]model.Candidate) (Result, error) {
	layers := make([][]model.Candidate, len(observations))
	for i, obsID := range observations {
		cands := candidatesByObs[obsID]
		if len(cands) == 0 {
			return Result{}, ErrEmptyCandidateSet
		}
		layers[i] = cands
	}

	// f[j] is the best score of any path ending at layers[i][j].
	// pred[i][j] is the index into layers[i-1] of that path's predecessor.
	f := make([]float64, len(layers[0]))
	for j, c := range layers[0] {
		f[j] = probability.Observation(cfg, c)
	}
	pred := make([][]int, len(layers))

	for i := 1; i < len(layers); i++ {
		now := layers[i]
		pre := layers[i-1]
		newF := make([]float64, len(now))
		predLayer := make([]int, len(now))

		for j, nowCand := range now {
			obsWeight := probability.Observation(cfg, nowCand)
			best := math.Inf(-1)
			bestPred := -1
			for k, preCand := range pre {
				transWeight := probability.Transition(g, cache, cfg, preCand, nowCand)
				score := f[k] + transWeight*obsWeight
				// Strict '>' so the first-seen predecessor wins ties,
				// preserving input order rather than reshuffling on ==.
				if score > best {
					best = score
					bestPred = k
				}
			}
			newF[j] = best
			predLayer[j] = bestPred
		}

		f = newF
		pred[i] = predLayer
	}

	lastIdx := 0
	best := math.Inf(-1)
	for j, score := range f {
		if score > best {
			best = score
			lastIdx = j
		}
	}

	path := make([]model.Candidate, len(layers))
	idx := lastIdx
	for i := len(layers) - 1; i >= 0; i-- {
		path[i] = layers[i][idx]
		if i > 0 {
			idx = pred[i][idx]
		}
	}

	breakIdx := -1
	for i := 1; i < len(path); i++ {
		w := probability.Transition(g, cache, cfg, path[i-1], path[i])
		if w == cfg.SmallProbability {
			breakIdx = i
			break
		}
	}

	return Result{Connected: breakIdx == -1, Path: path, BreakIndex: breakIdx}, nil
}
