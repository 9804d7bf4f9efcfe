// Package pipeline fans fragment fetches out over a bounded worker pool
// and folds the results back into the table-of-contents tree in place.
package pipeline

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/hansard"
	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/metrics"
	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/normalize"
	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/progress"
)

// FragmentFetcher is the one fragment operation the pipeline needs.
type FragmentFetcher interface {
	FetchHTML(ctx context.Context, docID string) (string, error)
}

// DayWriter persists one augmented sitting day and returns the path.
type DayWriter interface {
	WriteDay(root *hansard.Root) (string, error)
}

// Options tune one augmentation run.
type Options struct {
	// Workers bounds concurrent fragment fetches. Values below 1 are
	// raised to 1.
	Workers int
	// Engine selects the normalization implementation. Empty selects the
	// default.
	Engine normalize.Engine
}

// Stats summarizes one augmentation run. Total counts fetchable topics,
// and Fetched+Skipped always equals Total: topics left undispatched by a
// canceled context count as skipped.
type Stats struct {
	Total   int
	Fetched int
	Skipped int
}

// Orchestrator drives fetch, normalize and attach for every topic of a
// sitting day.
type Orchestrator struct {
	fragments FragmentFetcher
	tracker   progress.Tracker
	logger    *zap.Logger
}

// New constructs an Orchestrator. A nil tracker disables progress.
func New(fragments FragmentFetcher, tracker progress.Tracker, logger *zap.Logger) *Orchestrator {
	if tracker == nil {
		tracker = progress.Nop{}
	}
	return &Orchestrator{
		fragments: fragments,
		tracker:   tracker,
		logger:    logger,
	}
}

// task pairs a topic with its owning proceeding for failure reporting.
type task struct {
	proceeding *hansard.Proceeding
	topic      *hansard.Topic
}

// Augment fetches the fragment for every topic under root that carries a
// docid, normalizes it, and attaches the result to that topic. Topics
// whose fetch or parse fails keep nil Data and are logged, never fatal.
// Each topic node is owned by exactly one worker, so the tree needs no
// locking.
func (o *Orchestrator) Augment(ctx context.Context, root *hansard.Root, opts Options) Stats {
	var tasks []task
	for proc, topic := range root.Topics() {
		if topic.DocID == "" {
			continue
		}
		tasks = append(tasks, task{proceeding: proc, topic: topic})
	}

	stats := Stats{Total: len(tasks)}
	if len(tasks) == 0 {
		return stats
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(tasks) {
		workers = len(tasks)
	}

	o.logger.Info("augmenting topics",
		zap.String("pdfid", root.PdfID),
		zap.Int("topics", len(tasks)),
		zap.Int("workers", workers))

	o.tracker.Start("Fetching topics for "+root.PdfID, len(tasks))
	defer o.tracker.Finish()

	queue := make(chan task)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for tk := range queue {
				fetched := o.processTopic(ctx, tk, opts.Engine)
				if fetched {
					mu.Lock()
					stats.Fetched++
					mu.Unlock()
				}
				o.tracker.Increment()
			}
		}()
	}

dispatch:
	for _, tk := range tasks {
		select {
		case queue <- tk:
		case <-ctx.Done():
			o.logger.Warn("augmentation interrupted",
				zap.String("pdfid", root.PdfID),
				zap.Error(ctx.Err()))
			break dispatch
		}
	}
	close(queue)
	wg.Wait()

	stats.Skipped = stats.Total - stats.Fetched
	return stats
}

// Run augments root and writes the sitting-day artifact. A canceled
// context skips the write: artifacts on disk always describe runs that
// were allowed to finish.
func (o *Orchestrator) Run(ctx context.Context, root *hansard.Root, writer DayWriter, opts Options) (string, Stats, error) {
	stats := o.Augment(ctx, root, opts)
	if err := ctx.Err(); err != nil {
		return "", stats, err
	}
	path, err := writer.WriteDay(root)
	if err != nil {
		return "", stats, err
	}
	return path, stats, nil
}

func (o *Orchestrator) processTopic(ctx context.Context, tk task, engine normalize.Engine) bool {
	html, err := o.fragments.FetchHTML(ctx, tk.topic.DocID)
	if err != nil {
		o.warnSkip(tk, err)
		metrics.ObserveTopic(metrics.TopicSkipped)
		return false
	}
	parsed, err := normalize.Parse(html, engine)
	if err != nil {
		o.warnSkip(tk, err)
		metrics.ObserveTopic(metrics.TopicSkipped)
		return false
	}

	tk.topic.Data = &hansard.TopicData{RawHTML: html, Parsed: parsed}
	metrics.ObserveTopic(metrics.TopicFetched)
	return true
}

func (o *Orchestrator) warnSkip(tk task, err error) {
	name := strings.TrimSpace(tk.topic.Name)
	if name == "" {
		name = "<unknown topic>"
	}
	o.logger.Warn("topic failed, skipping",
		zap.String("topic", name),
		zap.String("docid", tk.topic.DocID),
		zap.String("proceeding", tk.proceeding.Name),
		zap.Error(err))
}
