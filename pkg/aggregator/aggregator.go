package aggregator

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"devscout/pkg/logger"
	"devscout/pkg/models"
	"devscout/pkg/retry"
)

var (
	ErrNotRunning    = errors.New("aggregator is not running")
	ErrAlreadyActive = errors.New("aggregator already started")
)

// Source is one fetchable unit of an aggregation run. A non-nil error means
// the source failed entirely; an empty result with a nil error means it had
// nothing relevant.
type Source[T models.Record] interface {
	Label() string
	Fetch(ctx context.Context) ([]T, error)
}

// State is the lifecycle state of a run
type State int

const (
	Idle State = iota
	Running
	Paused
	Completed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Outcome describes one finished source fetch
type Outcome struct {
	Index    int
	Label    string
	Fetched  int
	Added    int
	Err      error
	Duration time.Duration
}

// Result is what a run hands back to its caller
type Result[T models.Record] struct {
	Records []T
	State   State
	// Cursor is the index of the next source to run
	Cursor int
	Total  int
	Failed int
}

type settings struct {
	name       string
	delay      time.Duration
	onProgress func(current, total int, label string)
	onOutcome  func(Outcome)
	logger     logger.Logger
	sleep      func(ctx context.Context, d time.Duration)
}

// Option configures an Aggregator
type Option func(*settings)

// WithName names the run in logs
func WithName(name string) Option {
	return func(s *settings) { s.name = name }
}

// WithDelay sets the pause between two sources
func WithDelay(d time.Duration) Option {
	return func(s *settings) { s.delay = d }
}

// WithProgress registers a callback fired before each source with its
// 1-based position
func WithProgress(fn func(current, total int, label string)) Option {
	return func(s *settings) { s.onProgress = fn }
}

// WithOutcome registers a callback fired after each source
func WithOutcome(fn func(Outcome)) Option {
	return func(s *settings) { s.onOutcome = fn }
}

// WithLogger sets the logger
func WithLogger(l logger.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithSleep replaces the inter-source sleep
func WithSleep(fn func(ctx context.Context, d time.Duration)) Option {
	return func(s *settings) { s.sleep = fn }
}

func defaultSleep(ctx context.Context, d time.Duration) {
	_ = retry.Wait(ctx, d)
}

// Aggregator steps through an ordered list of sources one at a time,
// merging their records by id (first seen wins) and keeping them ranked by
// score.
//
// An Aggregator is not safe for concurrent use.
type Aggregator[T models.Record] struct {
	settings
	sources   []Source[T]
	onPartial func(records []T, nextCursor int)

	state   State
	cursor  int
	failed  int
	records []T
	seen    map[string]struct{}
}

// New creates an idle aggregator over sources
func New[T models.Record](sources []Source[T], opts ...Option) *Aggregator[T] {
	a := &Aggregator[T]{
		settings: settings{
			name:   "aggregation",
			logger: logger.GetLogger(),
			sleep:  defaultSleep,
		},
		sources: sources,
		seen:    make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(&a.settings)
	}
	return a
}

// OnPartial registers a callback receiving the ranked accumulator and the
// cursor to resume from after every source
func (a *Aggregator[T]) OnPartial(fn func(records []T, nextCursor int)) {
	a.onPartial = fn
}

// Seed preloads records accumulated by an earlier run. Only valid before
// Start.
func (a *Aggregator[T]) Seed(records []T) error {
	if a.state != Idle {
		return ErrAlreadyActive
	}
	a.merge(records)
	return nil
}

// Start moves the run to Running at cursor, which must be within
// [0, total]. A paused run may be restarted from any cursor.
func (a *Aggregator[T]) Start(cursor int) error {
	if a.state == Running || a.state == Completed {
		return ErrAlreadyActive
	}
	if cursor < 0 || cursor > len(a.sources) {
		return fmt.Errorf("cursor %d out of range [0, %d]", cursor, len(a.sources))
	}
	a.cursor = cursor
	a.state = Running
	logger.LogComponentStart(a.logger, a.name, map[string]interface{}{
		"cursor":  cursor,
		"sources": len(a.sources),
	})
	return nil
}

// Step runs exactly one source and reports whether the run is complete.
// A started fetch is never cancelled; ctx is only checked before the fetch
// and during the delay. Seeing ctx done moves the run to Paused.
func (a *Aggregator[T]) Step(ctx context.Context) (bool, error) {
	if a.state != Running {
		return a.state == Completed, ErrNotRunning
	}
	if a.cursor >= len(a.sources) {
		a.complete()
		return true, nil
	}
	if err := ctx.Err(); err != nil {
		a.state = Paused
		logger.LogComponentStop(a.logger, a.name, "paused")
		return false, err
	}

	total := len(a.sources)
	src := a.sources[a.cursor]
	if a.onProgress != nil {
		a.onProgress(a.cursor+1, total, src.Label())
	}

	start := time.Now()
	records, err := src.Fetch(context.WithoutCancel(ctx))
	added := 0
	if err != nil {
		a.failed++
	} else {
		added = a.merge(records)
	}

	logger.LogSourceResult(a.logger, src.Label(), len(records), added, err)
	if a.onOutcome != nil {
		a.onOutcome(Outcome{
			Index:    a.cursor,
			Label:    src.Label(),
			Fetched:  len(records),
			Added:    added,
			Err:      err,
			Duration: time.Since(start),
		})
	}

	a.cursor++
	if a.onPartial != nil {
		a.onPartial(a.Records(), a.cursor)
	}

	if a.cursor >= total {
		a.complete()
		return true, nil
	}
	logger.LogRunProgress(a.logger, a.name, a.cursor, total, len(a.records))
	a.sleep(ctx, a.delay)
	return false, nil
}

// Run starts at cursor and steps until the run completes or ctx is done
func (a *Aggregator[T]) Run(ctx context.Context, cursor int) (Result[T], error) {
	if err := a.Start(cursor); err != nil {
		return Result[T]{}, err
	}
	for {
		done, err := a.Step(ctx)
		if done || err != nil {
			break
		}
	}
	return a.Result(), nil
}

// Result snapshots the current state of the run
func (a *Aggregator[T]) Result() Result[T] {
	return Result[T]{
		Records: a.Records(),
		State:   a.state,
		Cursor:  a.cursor,
		Total:   len(a.sources),
		Failed:  a.failed,
	}
}

// Records returns the accumulator ranked by score, highest first. Ties keep
// insertion order.
func (a *Aggregator[T]) Records() []T {
	return Rank(a.records)
}

func (a *Aggregator[T]) State() State { return a.state }
func (a *Aggregator[T]) Cursor() int  { return a.cursor }
func (a *Aggregator[T]) Total() int   { return len(a.sources) }

func (a *Aggregator[T]) complete() {
	a.state = Completed
	logger.LogComponentStop(a.logger, a.name, "completed")
}

// merge appends records whose id has not been seen and returns how many
// were added
func (a *Aggregator[T]) merge(records []T) int {
	added := 0
	for _, r := range records {
		id := r.RecordID()
		if _, ok := a.seen[id]; ok {
			continue
		}
		a.seen[id] = struct{}{}
		a.records = append(a.records, r)
		added++
	}
	return added
}

// Rank returns a copy of records sorted by descending score. The sort is
// stable.
func Rank[T models.Record](records []T) []T {
	ranked := slices.Clone(records)
	slices.SortStableFunc(ranked, func(x, y T) int {
		return cmp.Compare(y.RecordScore(), x.RecordScore())
	})
	return ranked
}
