package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/tocgraft/internal/doctree"
	"github.com/dgallion1/tocgraft/internal/metrics"
	"github.com/dgallion1/tocgraft/internal/outline"
	"github.com/dgallion1/tocgraft/internal/parser"
	"github.com/dgallion1/tocgraft/internal/pathstore"
	"github.com/dgallion1/tocgraft/internal/toc"
)

// Publisher is the part of the pathstore client the worker writes through.
type Publisher interface {
	PutNode(ctx context.Context, key string, req pathstore.NodeRequest) error
	ListChildren(ctx context.Context, key string, limit int) ([]pathstore.ListChildrenResponse, error)
}

// ParseError reports an upload that could not be read as a document.
type ParseError struct {
	Filename string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Filename, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Output is a grafted document.
type Output struct {
	HTML     string
	Outline  []*outline.Node
	Inserted bool
}

// Worker processes a single document job.
type Worker struct {
	publisher  Publisher
	log        *slog.Logger
	stats      *metrics.Stages
	parserOpts parser.Options
	defaults   toc.Config
	backoff    func(attempt int) time.Duration
}

// NewWorker returns a worker. A nil publisher disables publishing; defaults
// are merged under every job's options.
func NewWorker(pub Publisher, log *slog.Logger, stats *metrics.Stages, parserOpts parser.Options, defaults toc.Config) *Worker {
	return &Worker{
		publisher:  pub,
		log:        log,
		stats:      stats,
		parserOpts: parserOpts,
		defaults:   defaults,
		backoff:    Backoff,
	}
}

// Validate checks opts merged over the worker defaults without running
// anything.
func (w *Worker) Validate(opts toc.Config) error {
	_, err := toc.New(w.defaults.Merge(opts))
	return err
}

// Parse converts uploaded bytes into a document tree.
func (w *Worker) Parse(filename string, data []byte) (*doctree.Node, error) {
	p, err := parser.ForFile(filename, w.parserOpts)
	if err != nil {
		return nil, &ParseError{Filename: filename, Err: err}
	}

	start := time.Now()
	doc, err := p.Parse(bytes.NewReader(data), filename)
	w.stats.Stage(metrics.StageParse).Since(start)
	if err != nil {
		return nil, &ParseError{Filename: filename, Err: err}
	}
	return doc, nil
}

// Graft parses data, grafts the table of contents with opts merged over the
// worker defaults, and serializes the result. toc errors are returned
// unwrapped so callers can classify them.
func (w *Worker) Graft(filename string, data []byte, opts toc.Config) (*Output, error) {
	tr, err := toc.New(w.defaults.Merge(opts))
	if err != nil {
		return nil, err
	}

	doc, err := w.Parse(filename, data)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := tr.Transform(doc)
	w.stats.Stage(metrics.StageTransform).Since(start)
	if err != nil {
		return nil, err
	}

	html, err := doctree.RenderString(res.Document)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return &Output{HTML: html, Outline: res.Outline, Inserted: res.Inserted}, nil
}

// Outline parses data and returns its heading outline.
func (w *Worker) Outline(filename string, data []byte) ([]*outline.Node, error) {
	doc, err := w.Parse(filename, data)
	if err != nil {
		return nil, err
	}
	return toc.Headings(doc), nil
}

// Process runs the full graft pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID)
	start := time.Now()
	defer func() { w.stats.Stage(metrics.StageTotal).Since(start) }()

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	data := job.FileData()
	job.SetContentHash(ContentHashHex(data))

	tr, err := toc.New(w.defaults.Merge(job.Options()))
	if err != nil {
		w.fail(log, job, "options", err)
		return
	}
	doc, err := w.Parse(job.Filename, data)
	if err != nil {
		w.fail(log, job, "parsing", err)
		return
	}

	// Phase 2: Graft
	job.SetStatus(StatusGrafting, "grafting")
	transformStart := time.Now()
	res, err := tr.Transform(doc)
	w.stats.Stage(metrics.StageTransform).Since(transformStart)
	if err != nil {
		w.fail(log, job, "grafting", err)
		return
	}

	html, err := doctree.RenderString(res.Document)
	if err != nil {
		w.fail(log, job, "grafting", fmt.Errorf("render: %w", err))
		return
	}
	entries := outline.Entries(res.Outline)
	job.SetOutline(outline.Count(res.Outline), outline.Depth(res.Outline), res.Inserted)
	job.SetResult(&Result{HTML: html, Outline: entries})
	log.Info("grafted document", "headings", outline.Count(res.Outline), "inserted", res.Inserted)

	if w.publisher == nil {
		job.SetStatus(StatusCompleted, "done")
		return
	}

	// Phase 3: Dedup check
	job.SetStatus(StatusPublishing, "dedup")
	exists, existingDocID, err := w.checkDuplicate(ctx, job.Snapshot().ContentHash)
	if err != nil {
		log.Warn("dedup check failed, proceeding", "error", err)
	} else if exists {
		log.Info("duplicate document, skipping publish", "existing_doc_id", existingDocID)
		job.SetStatus(StatusDupSkipped, "dedup")
		return
	}

	// Phase 4: Publish
	job.SetStatus(StatusPublishing, "publishing")
	publishStart := time.Now()
	err = w.publish(ctx, log, job, entries)
	w.stats.Stage(metrics.StagePublish).Since(publishStart)
	if err != nil {
		w.fail(log, job, "publishing", err)
		return
	}
	job.SetPublished()
	job.SetStatus(StatusCompleted, "done")
	log.Info("published outline")
}

func (w *Worker) fail(log *slog.Logger, job *Job, phase string, err error) {
	log.Error(phase+" failed", "error", err)
	job.AddError(fmt.Sprintf("%s: %s", phase, err))
	job.SetStatus(StatusFailed, phase)
}

// publish writes the outline, the document metadata and the hash index, in
// that order, so a hash entry only exists for a complete document.
func (w *Worker) publish(ctx context.Context, log *slog.Logger, job *Job, entries []outline.Entry) error {
	snap := job.Snapshot()
	source := "tocgraft:" + snap.DocID

	writes := []struct {
		key string
		req pathstore.NodeRequest
	}{
		{
			key: pathstore.OutlineKey(snap.DocID),
			req: pathstore.NodeRequest{
				Value:      map[string]any{"entries": entries},
				MemoryType: "semantic",
				Salience:   0.5,
				Source:     source,
			},
		},
		{
			key: pathstore.MetaKey(snap.DocID),
			req: pathstore.NodeRequest{
				Value: map[string]any{
					"filename":     snap.Filename,
					"title":        snap.Title,
					"content_hash": snap.ContentHash,
					"headings":     snap.Progress.Headings,
					"depth":        snap.Progress.Depth,
					"created_at":   snap.CreatedAt.Format(time.RFC3339),
				},
				MemoryType: "metacognitive",
				Salience:   0.5,
				Source:     source,
			},
		},
		{
			key: pathstore.HashKey(snap.ContentHash, snap.DocID),
			req: pathstore.NodeRequest{
				Value: map[string]any{
					"filename":   snap.Filename,
					"created_at": snap.CreatedAt.Format(time.RFC3339),
				},
				MemoryType: "metacognitive",
				Salience:   0.1,
				Source:     source,
			},
		},
	}

	for _, wr := range writes {
		err := retry(ctx, log, wr.key, w.backoff, func() error {
			return w.publisher.PutNode(ctx, wr.key, wr.req)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// checkDuplicate checks if this content hash was already published.
func (w *Worker) checkDuplicate(ctx context.Context, hash string) (bool, string, error) {
	children, err := w.publisher.ListChildren(ctx, pathstore.HashPrefix(hash), 1)
	if err != nil {
		return false, "", err
	}
	if len(children) > 0 {
		return true, pathstore.LastSegment(children[0].Key), nil
	}
	return false, "", nil
}
