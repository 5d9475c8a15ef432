// Package model holds the data types shared across the map-matching core:
// observations and candidates, the road-graph vertex and road identifiers
// they reference, and the constants fixed at the package boundary.
package model

import "github.com/paulmach/orb"

// VertexID identifies a vertex in a RoadGraph. Real vertex ids come from the
// external road-graph loader; the oracle allocates additional negative ids
// for transient virtual splice vertices, so loaders must hand out
// non-negative ids.
type VertexID int64

// RoadID identifies a directed road edge in a RoadGraph.
type RoadID int64

// ObservationID identifies one GPS fix within a track. Stable and used as
// the trellis layer label.
type ObservationID string

// Observation is one timestamped GPS fix, produced by the external track
// ingestor.
type Observation struct {
	ID ObservationID
	// Log is the observed planar coordinate (log_x, log_y).
	Log orb.Point
	// Time is the fix timestamp; monotone non-decreasing within a track.
	Time float64 // seconds since an arbitrary track-local epoch
}

// Candidate is the projection of one observation onto one directed road
// edge.
type Candidate struct {
	ObservationID ObservationID

	RoadID RoadID
	Source VertexID
	Target VertexID

	// EdgeWeight is the geometric length of the edge, in meters. Must equal
	// the corresponding RoadGraph edge weight.
	EdgeWeight float64

	// Fraction is the candidate's position along the edge, in [0,1].
	Fraction float64

	// Proj is the projected planar coordinate (p_x, p_y).
	Proj orb.Point

	// Log and Time are copied from the parent observation so a Candidate is
	// self-contained.
	Log  orb.Point
	Time float64
}

// ProjectionID uniquely identifies a candidate's intra-edge position for
// caching purposes: two candidates with the same (RoadID, quantized
// fraction) are the same projection regardless of which observation
// produced them.
type ProjectionID struct {
	RoadID RoadID
	Quant  int64
}

// Projection returns c's ProjectionID, quantizing Fraction per
// Config.ProjectionQuantization.
func (c Candidate) Projection(cfg Config) ProjectionID {
	return ProjectionID{
		RoadID: c.RoadID,
		Quant:  int64(c.Fraction * float64(cfg.ProjectionQuantization)),
	}
}

// Config bundles the tunable constants exposed at the module boundary.
type Config struct {
	// MaxDis is the sentinel distance (meters) meaning "unreachable within
	// cutoff"; also the hard cap on any cutoff passed to the oracle.
	MaxDis float64
	// MaxV is the assumed upper-bound vehicle speed, in m/s, used both to
	// derive Dijkstra cutoffs and to gate overspeed segments in the
	// stitcher.
	MaxV float64
	// SmallProbability is the floor transition likelihood (effectively
	// "disconnected").
	SmallProbability float64
	// BigProbability is the ceiling transition/observation-adjacent
	// likelihood.
	BigProbability float64
	// ObservationSigma is the standard deviation (meters) of the Normal
	// observation-noise model.
	ObservationSigma float64
	// DetourMargin is the maximum meters by which the driving distance may
	// exceed the Euclidean distance before the transition is judged
	// implausible.
	DetourMargin float64
	// MinTrackLength is the minimum number of surviving observations before
	// the controller gives up on a track.
	MinTrackLength int
	// MaxRetries bounds the controller's prune-and-retry loop.
	MaxRetries int
	// ProjectionQuantization scales Fraction before truncation to build a
	// ProjectionID.
	ProjectionQuantization int64
}

// DefaultConfig returns the tuned constants used in production.
func DefaultConfig() Config {
	return Config{
		MaxDis:                 5000,
		MaxV:                   33,
		SmallProbability:       1e-8,
		BigProbability:         1 - 1e-8,
		ObservationSigma:       30,
		DetourMargin:           2000,
		MinTrackLength:         4,
		MaxRetries:             10,
		ProjectionQuantization: 10_000_000,
	}
}

// SRC and DST are the sentinel vertex tokens marking spliced virtual
// endpoints in a recovered vertex path. Real vertex ids from a loader are
// expected to be non-negative, so these reserved negative values can never
// collide with one.
const (
	SRC VertexID = -1
	DST VertexID = -2
)
