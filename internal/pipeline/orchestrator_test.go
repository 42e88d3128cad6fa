package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/dgallion1/tocgraft/internal/config"
	"github.com/dgallion1/tocgraft/internal/metrics"
	"github.com/dgallion1/tocgraft/internal/toc"
)

func testConfig() config.Config {
	return config.Config{WorkerCount: 2, MaxQueueSize: 4, JobTTL: time.Hour}
}

func waitDone(t *testing.T, job *Job) JobSnapshot {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		snap := job.Snapshot()
		if snap.Status.Done() {
			return snap
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("job %s did not finish", job.ID)
	return JobSnapshot{}
}

func TestOrchestrator_ProcessesSubmittedJobs(t *testing.T) {
	stats := metrics.NewStages(time.Hour)
	o := NewOrchestrator(testConfig(), nil, toc.Config{}, stats, testLogger())
	o.Start(context.Background())
	defer o.Stop()

	jobs := []*Job{
		NewJob("a.html", "", "", []byte(navDoc), navOptions()),
		NewJob("b.md", "", "", []byte("# T\n\n## A\n"), toc.Config{After: "h1"}),
	}
	for _, job := range jobs {
		if err := o.Submit(job); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	for _, job := range jobs {
		snap := waitDone(t, job)
		if snap.Status != StatusCompleted {
			t.Errorf("job %s: expected completed, got %q (%v)", job.Filename, snap.Status, snap.Progress.Errors)
		}
		if o.GetJob(job.ID) != job {
			t.Errorf("job %s: not found by id", job.Filename)
		}
	}
	if got := stats.Snapshot()[metrics.StageTransform].Count; got != 2 {
		t.Errorf("expected 2 transform samples, got %d", got)
	}
}

func TestOrchestrator_QueueFull(t *testing.T) {
	cfg := testConfig()
	cfg.MaxQueueSize = 1
	// Not started, so nothing drains the queue.
	o := NewOrchestrator(cfg, nil, toc.Config{}, metrics.NewStages(time.Hour), testLogger())

	first := NewJob("a.html", "", "", []byte(navDoc), navOptions())
	if err := o.Submit(first); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if o.QueueDepth() != 1 {
		t.Errorf("expected queue depth 1, got %d", o.QueueDepth())
	}

	second := NewJob("b.html", "", "", []byte(navDoc), navOptions())
	if err := o.Submit(second); err == nil {
		t.Fatal("expected queue full error")
	}
	if snap := second.Snapshot(); snap.Status != StatusFailed || snap.Phase != "queue_full" {
		t.Errorf("expected failed/queue_full, got %q/%q", snap.Status, snap.Phase)
	}
}
