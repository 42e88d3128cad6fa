package metrics

import (
	"testing"
	"time"
)

func TestLatencyStatsSnapshotPercentiles(t *testing.T) {
	stats := NewLatencyStats(time.Hour)
	for _, ms := range []int{300, 100, 500, 200, 400} {
		stats.Record(time.Duration(ms) * time.Millisecond)
	}

	snap := stats.Snapshot()
	if snap.Count != 5 {
		t.Fatalf("expected count=5, got %d", snap.Count)
	}
	if snap.MinMs != 100 {
		t.Fatalf("expected min=100, got %f", snap.MinMs)
	}
	if snap.MaxMs != 500 {
		t.Fatalf("expected max=500, got %f", snap.MaxMs)
	}
	if snap.AvgMs != 300 {
		t.Fatalf("expected avg=300, got %f", snap.AvgMs)
	}
	if snap.P50Ms != 300 {
		t.Fatalf("expected p50=300, got %f", snap.P50Ms)
	}
	if snap.P95Ms != 480 {
		t.Fatalf("expected p95=480, got %f", snap.P95Ms)
	}
	if snap.P99Ms != 496 {
		t.Fatalf("expected p99=496, got %f", snap.P99Ms)
	}
}

func TestLatencyStatsPrunesExpiredSamples(t *testing.T) {
	now := time.Unix(1000, 0)
	stats := NewLatencyStats(10 * time.Second)
	stats.now = func() time.Time { return now }

	stats.Record(100 * time.Millisecond)
	now = now.Add(25 * time.Second)

	if snap := stats.Snapshot(); snap.Count != 0 {
		t.Fatalf("expected count=0 after prune, got %d", snap.Count)
	}

	stats.Record(200 * time.Millisecond)
	snap := stats.Snapshot()
	if snap.Count != 1 {
		t.Fatalf("expected count=1 for fresh sample, got %d", snap.Count)
	}
	if snap.MinMs != 200 || snap.MaxMs != 200 {
		t.Fatalf("expected min=max=200, got min=%f max=%f", snap.MinMs, snap.MaxMs)
	}
}

func TestLatencyStatsRecordClampsNegativeDuration(t *testing.T) {
	stats := NewLatencyStats(time.Hour)
	stats.Record(-10 * time.Millisecond)
	snap := stats.Snapshot()
	if snap.Count != 1 {
		t.Fatalf("expected count=1, got %d", snap.Count)
	}
	if snap.MinMs != 0 || snap.MaxMs != 0 {
		t.Fatalf("expected clamped duration=0, got min=%f max=%f", snap.MinMs, snap.MaxMs)
	}
}

func TestStagesSnapshot(t *testing.T) {
	stages := NewStages(time.Hour)
	stages.Stage(StageParse).Record(10 * time.Millisecond)
	stages.Stage(StageParse).Record(30 * time.Millisecond)
	stages.Stage(StageTransform).Record(5 * time.Millisecond)

	if stages.Stage(StageParse) != stages.Stage(StageParse) {
		t.Fatal("expected the same stats for repeated lookups")
	}

	snap := stages.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("expected 2 stages, got %d", len(snap))
	}
	if snap[StageParse].AvgMs != 20 {
		t.Errorf("expected parse avg=20, got %f", snap[StageParse].AvgMs)
	}
	if _, ok := snap[StagePublish]; ok {
		t.Error("expected unused stage to be absent")
	}
}
