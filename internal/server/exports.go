// internal/server/exports.go
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"mcp-diet-registry/internal/api"
	"mcp-diet-registry/internal/catalog"
	"mcp-diet-registry/internal/export"
	"mcp-diet-registry/internal/models"
	"mcp-diet-registry/internal/storage"
)

var errInvalidParams = errors.New("invalid parameters")

// ExportResponse describes a finished export to the caller.
type ExportResponse struct {
	Run      *models.ExportRun `json:"run"`
	Notice   string            `json:"notice,omitempty"`
	Download string            `json:"download,omitempty"`
}

func newExportResponse(run *models.ExportRun) *ExportResponse {
	resp := &ExportResponse{Run: run, Notice: run.Message}
	if run.Status == models.RunSucceeded {
		resp.Download = "/exports/" + run.ID + "/file"
	}
	return resp
}

// runExport runs one export. Concurrent requests for the same dimension
// and format share a single run.
func (s *RegistryServer) runExport(ctx context.Context, dimension, format string) (*ExportResponse, error) {
	dim, err := catalog.ParseDimension(dimension)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidParams, err)
	}
	f := s.deps.DefaultFormat
	if format != "" {
		if f, err = export.ParseFormat(format); err != nil {
			return nil, fmt.Errorf("%w: %v", errInvalidParams, err)
		}
	}

	// The shared run belongs to the server, not to whichever request
	// started it; each caller stops waiting when its own ctx ends.
	ch := s.exports.DoChan(string(dim)+"/"+string(f), func() (interface{}, error) {
		run, err := s.deps.Exports.Execute(s.ctx, dim, f)
		if run == nil {
			return nil, err
		}
		if err != nil {
			s.logger.Error("Export failed", "run_id", run.ID, "dimension", dim, "error", err)
		}
		return run, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		run := res.Val.(*models.ExportRun)
		if res.Shared {
			s.logger.Debug("Export shared between requests", "run_id", run.ID)
		}
		return newExportResponse(run), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type createExportRequest struct {
	Dimension string `json:"dimension"`
	Format    string `json:"format"`
}

func (s *RegistryServer) handleCreateExport(w http.ResponseWriter, r *http.Request) {
	req := createExportRequest{
		Dimension: r.URL.Query().Get("dimension"),
		Format:    r.URL.Query().Get("format"),
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, fmt.Sprintf("Invalid JSON: %v", err), http.StatusBadRequest)
			return
		}
	}

	resp, err := s.runExport(r.Context(), req.Dimension, req.Format)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *RegistryServer) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	runs, err := s.deps.Runs.ListRuns(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if runs == nil {
		runs = []*models.ExportRun{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *RegistryServer) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.deps.Runs.GetRun(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *RegistryServer) handleDownload(w http.ResponseWriter, r *http.Request) {
	run, err := s.deps.Runs.GetRun(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	if run.Status != models.RunSucceeded || len(run.Artifact) == 0 {
		http.Error(w, "export has no file", http.StatusNotFound)
		return
	}

	format := export.Format(run.Format)
	filename := fmt.Sprintf("%s-%s%s", run.Dimension, run.StartedAt.Format("02-01-2006"), format.Extension())
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(run.Artifact)))
	_, _ = w.Write(run.Artifact)
}

func writeError(w http.ResponseWriter, err error) {
	var statusErr *api.StatusError
	switch {
	case errors.Is(err, errInvalidParams),
		errors.Is(err, api.ErrUnknownEditOption),
		errors.Is(err, api.ErrInvalidLevel):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, storage.ErrRunNotFound), errors.Is(err, api.ErrNotConfigured):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &statusErr):
		http.Error(w, err.Error(), http.StatusBadGateway)
	case errors.Is(err, context.Canceled):
		http.Error(w, "request cancelled", http.StatusServiceUnavailable)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
