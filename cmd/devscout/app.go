package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devscout/pkg/aggregator"
	"devscout/pkg/backend"
	"devscout/pkg/checkpoint"
	"devscout/pkg/config"
	"devscout/pkg/httpclient"
	"devscout/pkg/logger"
	"devscout/pkg/metrics"
	"devscout/pkg/models"
	"devscout/pkg/ratelimit"
	"devscout/pkg/sources"
	"devscout/pkg/storage"
	"devscout/pkg/ui"

	"github.com/prometheus/client_golang/prometheus"
)

// app holds what one command invocation needs
type app struct {
	cfg      *config.Config
	log      logger.Logger
	registry *prometheus.Registry
	metrics  *metrics.Collector
	http     *httpclient.Client
	notifier *ui.Notifier
	now      func() time.Time
}

func newApp(cfg *config.Config) *app {
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)
	log := logger.GetLogger()

	return &app{
		cfg:      cfg,
		log:      log,
		registry: registry,
		metrics:  collector,
		http: httpclient.New(cfg.HTTP,
			httpclient.WithLogger(log),
			httpclient.WithObserver(collector),
		),
		notifier: ui.NewNotifier(notifications),
		now:      time.Now,
	}
}

// sourceBase is shared by every adapter of a run
func (a *app) sourceBase() sources.Base {
	return sources.NewBase(a.http, a.cfg.Scan, a.log)
}

// backend returns a client for the REST backend. Backend calls skip the
// outbound rate limiter; they are retried instead.
func (a *app) backend() *backend.Client {
	hc := httpclient.New(config.HTTPConfig{
		Timeout:   a.cfg.Backend.Timeout,
		UserAgent: "devscout/" + version,
	},
		httpclient.WithLimiter(ratelimit.Unlimited{}),
		httpclient.WithLogger(a.log),
		httpclient.WithObserver(a.metrics),
	)
	return backend.NewClient(a.cfg.Backend, hc, backend.WithLogger(a.log))
}

// flushMetrics writes the metrics textfile when one is configured
func (a *app) flushMetrics() {
	if err := metrics.WriteTextfile(a.cfg.Metrics.Textfile, a.registry); err != nil {
		a.log.WithError(err).Warn("Could not write metrics")
	}
}

// signalContext is cancelled on Ctrl-C or SIGTERM so that a run pauses at
// the next source boundary
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

type runOptions struct {
	kind  string
	delay time.Duration
	// checkpointed runs save progress after every source and can resume
	checkpointed bool
	resume       bool
	forceRestart bool
}

// runAggregation drives one aggregation run with progress output,
// checkpointing, metrics and a JSON export of the final collection
func runAggregation[T models.Record](ctx context.Context, a *app, srcs []aggregator.Source[T], opts runOptions) (aggregator.Result[T], error) {
	progress := ui.NewRunProgress(opts.kind)
	observe := a.metrics.SourceObserver(opts.kind)

	agg := aggregator.New(srcs,
		aggregator.WithName(opts.kind),
		aggregator.WithDelay(opts.delay),
		aggregator.WithProgress(progress.OnProgress),
		aggregator.WithOutcome(func(o aggregator.Outcome) {
			progress.OnOutcome(o)
			observe(o)
		}),
		aggregator.WithLogger(a.log),
	)

	cursor := 0
	var (
		ckm *checkpoint.Manager[T]
		cp  *checkpoint.Checkpoint[T]
	)
	if opts.checkpointed {
		var err error
		if ckm, err = checkpoint.NewManager[T](opts.kind); err != nil {
			return aggregator.Result[T]{}, err
		}
		if cp, cursor, err = prepareCheckpoint(ckm, len(srcs), opts, a.log); err != nil {
			return aggregator.Result[T]{}, err
		}
		if cursor > 0 {
			if err := agg.Seed(cp.Records); err != nil {
				return aggregator.Result[T]{}, err
			}
		}
		agg.OnPartial(func(records []T, next int) {
			if err := ckm.UpdateProgress(cp, records, next); err != nil {
				a.log.WithError(err).Warn("Failed to save checkpoint")
			}
		})
	}

	res, err := agg.Run(ctx, cursor)
	if err != nil {
		return res, err
	}
	progress.Finish(len(res.Records), res.State, res.Cursor, res.Total)

	if res.State != aggregator.Completed {
		return res, nil
	}

	finished := a.now()
	a.metrics.RecordRun(opts.kind, len(res.Records), finished)
	a.notifier.RunComplete(opts.kind, len(res.Records), res.Failed)

	if ckm != nil {
		if err := ckm.Delete(); err != nil {
			a.log.WithError(err).Warn("Failed to remove checkpoint")
		}
	}

	store, err := storage.NewManager(a.cfg.Output.Directory)
	if err != nil {
		return res, err
	}
	path, err := store.ExportJSON(opts.kind, res.Records, finished)
	if err != nil {
		return res, err
	}
	ui.PrintInfo("Saved", path)

	logger.LogMetrics(a.log, opts.kind, map[string]interface{}{
		"records": len(res.Records),
		"sources": res.Total,
		"failed":  res.Failed,
		"exports": store.ExportCount(opts.kind),
	})
	return res, nil
}

// prepareCheckpoint decides where a run starts. A resumable checkpoint is
// used with --resume; otherwise any old checkpoint is replaced.
func prepareCheckpoint[T models.Record](ckm *checkpoint.Manager[T], total int, opts runOptions, log logger.Logger) (*checkpoint.Checkpoint[T], int, error) {
	if opts.forceRestart {
		logDiscarded(ckm, log)
		if err := ckm.Backup(); err != nil {
			return nil, 0, err
		}
		if err := ckm.Delete(); err != nil {
			return nil, 0, err
		}
	} else {
		existing, err := ckm.Load()
		if err != nil {
			return nil, 0, err
		}
		switch {
		case opts.resume && existing.Resumable(total):
			ui.PrintInfo("Resuming", fmt.Sprintf("source %d/%d with %d records", existing.NextCursor+1, total, len(existing.Records)))
			return existing, existing.NextCursor, nil
		case opts.resume:
			ui.PrintWarning("No resumable checkpoint found, starting from the beginning")
		case existing != nil:
			logDiscarded(ckm, log)
			ui.PrintWarning(fmt.Sprintf("Replacing unfinished %s run from %s (use --resume to continue it)",
				existing.Kind, existing.UpdatedAt.Format("2006-01-02 15:04")))
		}
	}

	cp, err := ckm.Create(total)
	if err != nil {
		return nil, 0, err
	}
	return cp, 0, nil
}

// logDiscarded records what an abandoned checkpoint held
func logDiscarded[T models.Record](ckm *checkpoint.Manager[T], log logger.Logger) {
	info, err := ckm.Info()
	if err != nil || info == nil {
		return
	}
	log.InfoWithFields("Discarding checkpoint", info)
}

// limit returns at most n items; n <= 0 means all
func limit[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}
