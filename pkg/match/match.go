// Package match implements the iterative match controller: build the
// trellis, decode it, and if disconnected, prune the two observations
// bracketing the break and retry — bounded by a minimum surviving track
// length and a retry cap.
package match

import (
	"errors"

	"github.com/azybler/mapmatch/pkg/distancecache"
	"github.com/azybler/mapmatch/pkg/model"
	"github.com/azybler/mapmatch/pkg/roadgraph"
	"github.com/azybler/mapmatch/pkg/trellis"
)

// ErrNoMatch is returned when a track cannot be repaired within the
// minimum-length and retry bounds.
var ErrNoMatch = errors.New("match: no match for track")

// CandidateProvider supplies the candidate projections for one observation.
// It is the external "spatial prefilter + projection" collaborator — an
// R-tree/shapefile concern out of scope for this module, so it is only an
// interface here.
type CandidateProvider interface {
	Candidates(obs model.ObservationID) ([]model.Candidate, error)
}

// Match runs the controller loop to completion: it repeatedly builds a
// trellis over the current working observation list and decodes it,
// pruning at the break point on disconnection, until it finds a connected
// match or gives up. cache is owned by the caller and must be fresh for
// this track (the distance cache is never shared across tracks); Match
// reuses it across retry iterations within the track, since the cache
// stays valid for any pair of candidates that survive pruning.
func Match(g *roadgraph.RoadGraph, cache *distancecache.Cache, cfg model.Config, track []model.ObservationID, provider CandidateProvider) ([]model.Candidate, error) {
	working := append([]model.ObservationID(nil), track...)
	retries := 0

	for {
		candidatesByObs := make(map[model.ObservationID][]model.Candidate, len(working))
		for _, obsID := range working {
			cands, err := provider.Candidates(obsID)
			if err != nil {
				return nil, err
			}
			candidatesByObs[obsID] = cands
		}

		result, err := trellis.Decode(g, cache, cfg, working, candidatesByObs)
		if err != nil {
			return nil, err
		}

		if result.Connected {
			return result.Path, nil
		}

		// Drop both the upstream and downstream endpoints of the broken
		// transition.
		breakIdx := result.BreakIndex
		working = append(working[:breakIdx-1], working[breakIdx+1:]...)
		retries++

		if len(working) < cfg.MinTrackLength {
			return nil, ErrNoMatch
		}
		if retries > cfg.MaxRetries {
			return nil, ErrNoMatch
		}
	}
}
