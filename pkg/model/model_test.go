package model

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.MaxDis != 5000 {
		t.Errorf("MaxDis = %v, want 5000", cfg.MaxDis)
	}
	if cfg.MaxV != 33 {
		t.Errorf("MaxV = %v, want 33", cfg.MaxV)
	}
	if cfg.SmallProbability != 1e-8 {
		t.Errorf("SmallProbability = %v, want 1e-8", cfg.SmallProbability)
	}
	if cfg.BigProbability != 1-1e-8 {
		t.Errorf("BigProbability = %v, want %v", cfg.BigProbability, 1-1e-8)
	}
	if cfg.ObservationSigma != 30 {
		t.Errorf("ObservationSigma = %v, want 30", cfg.ObservationSigma)
	}
	if cfg.MinTrackLength != 4 {
		t.Errorf("MinTrackLength = %v, want 4", cfg.MinTrackLength)
	}
	if cfg.MaxRetries != 10 {
		t.Errorf("MaxRetries = %v, want 10", cfg.MaxRetries)
	}
}

func TestCandidateProjection(t *testing.T) {
	cfg := DefaultConfig()

	a := Candidate{RoadID: 42, Fraction: 0.5}
	b := Candidate{RoadID: 42, Fraction: 0.50000001}
	c := Candidate{RoadID: 42, Fraction: 0.51}

	pa := a.Projection(cfg)
	pb := b.Projection(cfg)
	pc := c.Projection(cfg)

	if pa != pb {
		t.Errorf("projections of nearly-identical fractions should collide after quantization: %+v != %+v", pa, pb)
	}
	if pa == pc {
		t.Errorf("projections of distinct fractions should not collide: %+v == %+v", pa, pc)
	}
	if pa.RoadID != 42 {
		t.Errorf("RoadID = %v, want 42", pa.RoadID)
	}
}
