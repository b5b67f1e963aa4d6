package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/genc-murat/collectionmem/internal/config"
	"github.com/genc-murat/collectionmem/internal/core/models"
	"github.com/genc-murat/collectionmem/internal/core/ports"
	"github.com/genc-murat/collectionmem/internal/memmodel"
	"github.com/genc-murat/collectionmem/internal/metrics"
)

// Estimator wraps the memory model with logging, metrics and an optional
// report sink. It implements ports.Estimator.
type Estimator struct {
	cfg     *config.Config
	metrics *metrics.Metrics
	logger  *log.Logger
	sink    ports.ReportSink
}

var _ ports.Estimator = (*Estimator)(nil)

type Option func(*Estimator)

// WithLogger sets the logger; nil keeps the discarding default.
func WithLogger(logger *log.Logger) Option {
	return func(e *Estimator) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func WithSink(sink ports.ReportSink) Option {
	return func(e *Estimator) {
		e.sink = sink
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Estimator) {
		e.metrics = m
	}
}

func NewEstimator(cfg *config.Config, opts ...Option) *Estimator {
	if cfg == nil {
		cfg = config.Default()
	}

	e := &Estimator{
		cfg:     cfg,
		metrics: metrics.NewMetrics(),
		logger:  log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Estimator) Metrics() *metrics.Metrics {
	return e.metrics
}

// Estimate, Compare and Report each count as one call against the snapshot's
// kind in the metrics.
func (e *Estimator) Estimate(s models.ContainerSnapshot) (models.MemoryBreakdown, error) {
	start := time.Now()
	b, err := memmodel.Estimate(s)
	if err != nil {
		e.metrics.IncrErrorCount()
		return models.MemoryBreakdown{}, err
	}
	e.metrics.AddEstimate(s.Kind.String(), time.Since(start))
	return b, nil
}

func (e *Estimator) Compare(kind models.Kind, size int) ([]models.ComparisonRow, error) {
	start := time.Now()
	rows, err := memmodel.Compare(kind, size)
	if err != nil {
		e.metrics.IncrErrorCount()
		return nil, err
	}
	e.metrics.AddEstimate(kind.String(), time.Since(start))
	return rows, nil
}

// Report builds the full report for s and hands it to the sink, if any.
// On error nothing is returned and nothing is written.
func (e *Estimator) Report(s models.ContainerSnapshot) (*models.Report, error) {
	start := time.Now()

	r, err := memmodel.BuildReport(s)
	if err != nil {
		e.metrics.IncrErrorCount()
		e.logger.Printf("Error building report for %s: %v", s.Kind, err)
		return nil, err
	}

	if e.sink != nil {
		if err := e.sink.Write(r); err != nil {
			e.metrics.IncrErrorCount()
			return nil, fmt.Errorf("error storing report: %w", err)
		}
	}

	e.metrics.AddEstimate(s.Kind.String(), time.Since(start))
	if e.cfg.Logging.Debug {
		e.logger.Printf("Report %s size=%d capacity=%d total=%d", s.Kind, s.Size, s.Capacity, r.Breakdown.Total)
	}

	return r, nil
}

// History replays the reports held by sink in write order. A positive limit
// keeps only the most recent limit reports.
func History(sink ports.ReportSink, limit int) ([]models.Report, error) {
	var reports []models.Report
	if err := sink.Read(func(r models.Report) {
		reports = append(reports, r)
	}); err != nil {
		return nil, fmt.Errorf("error reading reports: %w", err)
	}
	if limit > 0 && len(reports) > limit {
		reports = reports[len(reports)-limit:]
	}
	return reports, nil
}

// BatchResult pairs one input snapshot with its report or error.
type BatchResult struct {
	Snapshot models.ContainerSnapshot `json:"snapshot"`
	Report   *models.Report           `json:"report,omitempty"`
	Err      error                    `json:"-"`
	Error    string                   `json:"error,omitempty"`
}

// Batch builds reports for every snapshot using at most cfg.Batch.Workers
// goroutines. Results keep input order. Per-item failures land in the
// result; only context cancellation aborts the batch.
func (e *Estimator) Batch(ctx context.Context, snaps []models.ContainerSnapshot) ([]BatchResult, error) {
	results := make([]BatchResult, len(snaps))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Batch.Workers)

	for i, s := range snaps {
		results[i].Snapshot = s
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := e.Report(s)
			results[i].Report = r
			results[i].Err = err
			if err != nil {
				results[i].Error = err.Error()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.logger.Printf("Batch processed %d snapshots", len(snaps))
	return results, nil
}

// batchEntry keeps Kind as a pointer so a missing kind is told apart from
// an explicit "deque".
type batchEntry struct {
	Kind     *models.Kind `yaml:"kind"`
	Size     int          `yaml:"size"`
	Capacity int          `yaml:"capacity"`
	Extra    int          `yaml:"extra"`
}

type batchFile struct {
	Snapshots []batchEntry `yaml:"snapshots"`
}

// LoadBatch reads a YAML file with a top-level "snapshots" list. Every entry
// must name its kind.
func LoadBatch(path string) ([]models.ContainerSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading batch file: %w", err)
	}

	var file batchFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error parsing batch file: %w", err)
	}

	snaps := make([]models.ContainerSnapshot, 0, len(file.Snapshots))
	for i, entry := range file.Snapshots {
		if entry.Kind == nil {
			return nil, fmt.Errorf("%w: snapshot %d has no kind", models.ErrInvalidSnapshot, i)
		}
		snaps = append(snaps, models.ContainerSnapshot{
			Kind:     *entry.Kind,
			Size:     entry.Size,
			Capacity: entry.Capacity,
			Extra:    entry.Extra,
		})
	}
	return snaps, nil
}
