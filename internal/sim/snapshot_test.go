package sim

import (
	"testing"

	"github.com/vovakirdan/paddle-arena/internal/core"
)

func TestSnapshotHashChanges(t *testing.T) {
	base := Snapshot{
		Tick:           10,
		PaddlePosition: core.V(-430, 0),
		PaddleSize:     core.V(20, 120),
		BallPosition:   core.V(0, -50),
		BallVelocity:   core.V(-300, 0),
		BallRadius:     5,
		BallInPlay:     true,
	}

	tests := []struct {
		name   string
		mutate func(*Snapshot)
	}{
		{"tick", func(s *Snapshot) { s.Tick++ }},
		{"paddle y", func(s *Snapshot) { s.PaddlePosition.Y = 1 }},
		{"ball x", func(s *Snapshot) { s.BallPosition.X = 0.5 }},
		{"ball velocity", func(s *Snapshot) { s.BallVelocity.Y = 1 }},
		{"in play", func(s *Snapshot) { s.BallInPlay = false }},
		{"paddle hits", func(s *Snapshot) { s.Counters.PaddleHits = 1 }},
		{"misses", func(s *Snapshot) { s.Counters.Misses = 1 }},
	}

	h := base.Hash()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := base
			tc.mutate(&s)
			if s.Hash() == h {
				t.Errorf("Hash() unchanged after changing %s", tc.name)
			}
		})
	}

	same := base
	if same.Hash() != h {
		t.Error("Hash() should be stable for equal snapshots")
	}
}

func TestSnapshotPaddleRect(t *testing.T) {
	s := Snapshot{PaddlePosition: core.V(-430, 10), PaddleSize: core.V(20, 120)}
	r := s.PaddleRect()
	if r.Min != core.V(-440, -50) || r.Max != core.V(-420, 70) {
		t.Errorf("PaddleRect() = %+v, expected (-440,-50)-(-420,70)", r)
	}
}
