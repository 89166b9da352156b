// internal/export/service.go
package export

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"mcp-diet-registry/internal/catalog"
	"mcp-diet-registry/internal/logger"
	"mcp-diet-registry/internal/models"
)

// User-facing notices for the outcome of an export.
const (
	NoticeNoData      = "No hay datos para exportar"
	NoticeFetchFailed = "Error al obtener los datos"
	NoticeBuildFailed = "Ocurrió un error al armar los datos para exportar"
)

// RunStore keeps the history of export runs.
type RunStore interface {
	SaveRun(ctx context.Context, run *models.ExportRun) error
}

// Recorder observes finished runs.
type Recorder interface {
	ObserveRun(dimension, status string, duration time.Duration, rows int)
}

// Service runs exports end to end: build, serialize, record. Every failure
// is turned into a run status and a notice; nothing is retried.
type Service struct {
	exporter *Exporter
	store    RunStore
	recorder Recorder
	logger   *logger.Logger
}

func NewService(exporter *Exporter, store RunStore, recorder Recorder, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{exporter: exporter, store: store, recorder: recorder, logger: log}
}

// Execute runs one export. The returned run is nil only when ctx was
// cancelled, in which case nothing is recorded. For a failed run the error
// is returned alongside it.
func (s *Service) Execute(ctx context.Context, dimension catalog.Dimension, format Format) (*models.ExportRun, error) {
	started := time.Now()
	run := &models.ExportRun{
		Dimension: string(dimension),
		Format:    string(format),
		StartedAt: started,
	}

	res, err := s.exporter.Run(ctx, dimension)
	if err == nil {
		run.ID = res.RunID
		var buf bytes.Buffer
		if werr := Write(&buf, res.Table, format); werr != nil {
			err = &BuildError{Err: werr}
		} else {
			run.Status = models.RunSucceeded
			run.Rows = len(res.Table.Rows)
			run.Columns = len(res.Table.Columns)
			run.Artifact = buf.Bytes()
		}
	}
	if ctx.Err() != nil {
		s.logger.Warn("Export abandoned", "dimension", dimension, "error", ctx.Err())
		return nil, ctx.Err()
	}

	var fetchErr *FetchError
	switch {
	case err == nil:
	case errors.Is(err, ErrNoData):
		run.Status = models.RunNoData
		run.Message = NoticeNoData
		err = nil
	case errors.As(err, &fetchErr):
		run.Status = models.RunFailed
		run.Message = NoticeFetchFailed
	default:
		run.Status = models.RunFailed
		run.Message = NoticeBuildFailed
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	run.FinishedAt = time.Now()

	if s.recorder != nil {
		s.recorder.ObserveRun(run.Dimension, string(run.Status), run.FinishedAt.Sub(started), run.Rows)
	}
	if s.store != nil {
		if serr := s.store.SaveRun(ctx, run); serr != nil {
			// The export itself is still usable.
			s.logger.Warn("Failed to record export run", "run_id", run.ID, "error", serr)
		}
	}
	return run, err
}
