package metrics

import (
	"sync"
	"time"
)

// Stage names recorded by the pipeline.
const (
	StageParse     = "parse"
	StageTransform = "transform"
	StagePublish   = "publish"
	StageTotal     = "total"
)

// Stages holds one LatencyStats per named stage, created on first use.
type Stages struct {
	mu     sync.Mutex
	window time.Duration
	byName map[string]*LatencyStats
}

func NewStages(window time.Duration) *Stages {
	return &Stages{window: window, byName: make(map[string]*LatencyStats)}
}

// Stage returns the stats for name.
func (s *Stages) Stage(name string) *LatencyStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.byName[name]
	if !ok {
		st = NewLatencyStats(s.window)
		s.byName[name] = st
	}
	return st
}

// Snapshot returns a snapshot of every stage seen so far.
func (s *Stages) Snapshot() map[string]Snapshot {
	s.mu.Lock()
	stages := make(map[string]*LatencyStats, len(s.byName))
	for name, st := range s.byName {
		stages[name] = st
	}
	s.mu.Unlock()

	out := make(map[string]Snapshot, len(stages))
	for name, st := range stages {
		out[name] = st.Snapshot()
	}
	return out
}
