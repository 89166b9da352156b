// internal/export/exporter.go
package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"mcp-diet-registry/internal/catalog"
	"mcp-diet-registry/internal/logger"
	"mcp-diet-registry/internal/models"
)

// ErrNoData means there was nothing to export: the source returned no
// registries, or none of their foods matched the catalog.
var ErrNoData = errors.New("no data to export")

// FetchError wraps a data source failure.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return "failed to fetch registries: " + e.Err.Error() }
func (e *FetchError) Unwrap() error { return e.Err }

// BuildError wraps any failure while folding or materializing.
type BuildError struct {
	Err error
}

func (e *BuildError) Error() string { return "failed to build export: " + e.Err.Error() }
func (e *BuildError) Unwrap() error { return e.Err }

// Source provides the registry entries of one export run.
type Source interface {
	FetchRegistries(ctx context.Context) ([]models.RegistryEntry, error)
}

type Options struct {
	// DateLayout formats the registry date column (Go layout).
	DateLayout string
	Location   *time.Location
}

const DefaultDateLayout = "02/01/2006"

type Exporter struct {
	source  Source
	catalog *catalog.Catalog
	date    DateFormatter
	logger  *logger.Logger
}

func NewExporter(source Source, cat *catalog.Catalog, opts Options, log *logger.Logger) *Exporter {
	layout := opts.DateLayout
	if layout == "" {
		layout = DefaultDateLayout
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Exporter{
		source:  source,
		catalog: cat,
		date:    LayoutFormatter(layout, opts.Location),
		logger:  log,
	}
}

type Result struct {
	RunID      string
	Dimension  catalog.Dimension
	Table      Table
	Registries int
	Events     int
	Aggregates int
	StartedAt  time.Time
	FinishedAt time.Time
}

// Run fetches every registry and builds the export table for dimension.
// The whole data set is fetched before any grouping starts. Cancelling ctx
// abandons the run without a result.
func (e *Exporter) Run(ctx context.Context, dimension catalog.Dimension) (*Result, error) {
	if !e.catalog.Has(dimension) {
		return nil, fmt.Errorf("%w: %s", catalog.ErrUnknownDimension, dimension)
	}

	res := &Result{
		RunID:     uuid.NewString(),
		Dimension: dimension,
		StartedAt: time.Now(),
	}
	log := e.logger.With("run_id", res.RunID, "dimension", dimension)

	log.Info("Fetching export data")
	entries, err := e.source.FetchRegistries(ctx)
	if err != nil {
		log.Error("Failed to fetch export data", "error", err)
		return nil, &FetchError{Err: err}
	}
	if len(entries) == 0 {
		log.Info("No registries to export")
		return nil, ErrNoData
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Info("Building export data", "registries", len(entries))
	if err := e.build(ctx, res, entries); err != nil {
		if errors.Is(err, ErrNoData) {
			log.Info("No foods matched the catalog")
		} else {
			log.Error("Failed to build export data", "error", err)
		}
		return nil, err
	}

	res.FinishedAt = time.Now()
	log.Info("Export built",
		"rows", len(res.Table.Rows),
		"blocks", res.Table.Blocks,
		"duration", res.FinishedAt.Sub(res.StartedAt))
	return res, nil
}

func (e *Exporter) build(ctx context.Context, res *Result, entries []models.RegistryEntry) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &BuildError{Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	events := Flatten(entries)
	buckets := Bucketize(e.catalog.Groups(res.Dimension), res.Dimension, events)
	if err := ctx.Err(); err != nil {
		return err
	}

	aggs := Aggregate(buckets, e.date)
	if len(aggs) == 0 {
		return ErrNoData
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	res.Registries = len(entries)
	res.Events = len(events)
	res.Aggregates = len(aggs)
	res.Table = Materialize(aggs, BaseColumns(), CharacteristicBlock())
	return nil
}
