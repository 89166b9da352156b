// internal/server/server.go
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"github.com/ThinkInAIXYZ/go-mcp/server"
	"github.com/ThinkInAIXYZ/go-mcp/transport"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"golang.org/x/sync/singleflight"

	"mcp-diet-registry/internal/api"
	"mcp-diet-registry/internal/catalog"
	"mcp-diet-registry/internal/config"
	"mcp-diet-registry/internal/export"
	"mcp-diet-registry/internal/logger"
	"mcp-diet-registry/internal/metrics"
	"mcp-diet-registry/internal/models"
	"mcp-diet-registry/internal/storage"
)

// AdminAPI is the admin-panel surface of the remote registry backend.
type AdminAPI interface {
	GetEditOptions(ctx context.Context) (*models.EditOptions, error)
	SetEditOption(ctx context.Context, field string, value bool) error
	GetFreeRegistry(ctx context.Context) (bool, error)
	ToggleFreeRegistry(ctx context.Context) (bool, error)
	ListPyramidLevels(ctx context.Context) ([]models.PyramidLevel, error)
	UpsertPyramidLevel(ctx context.Context, level int, url string) (bool, error)
}

// RunReader reads the export-run history.
type RunReader interface {
	GetRun(ctx context.Context, id string) (*models.ExportRun, error)
	ListRuns(ctx context.Context, limit int) ([]*models.ExportRun, error)
}

type Deps struct {
	Exports       *export.Service
	Runs          RunReader
	Admin         AdminAPI
	Metrics       *metrics.Metrics
	Logger        *logger.Logger
	DefaultFormat export.Format
	// MessageURL is announced to MCP clients on /sse; it defaults to
	// http://<addr>/message.
	MessageURL string
}

type RegistryServer struct {
	server     *server.Server
	sse        *transport.SSEHandler
	httpServer *http.Server
	router     *mux.Router
	deps       Deps
	tools      map[string]toolHandler
	exports    singleflight.Group
	closer     func() error
	logger     *logger.Logger

	// ctx scopes work that outlives a single request: shared export runs
	// and tool calls arriving over the MCP session.
	ctx      context.Context
	cancel   context.CancelFunc
	stopOnce sync.Once
	stopErr  error
}

// NewRegistryServer wires storage, the API client and the exporter from cfg.
func NewRegistryServer(cfg *config.Config, log *logger.Logger) (*RegistryServer, error) {
	stor, err := storage.NewSQLiteStorage(cfg.Storage.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	cat := catalog.Default()
	if cfg.Export.CatalogFile != "" {
		if cat, err = catalog.LoadFile(cfg.Export.CatalogFile); err != nil {
			stor.Close()
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
	}

	format, err := export.ParseFormat(cfg.Export.Format)
	if err != nil {
		stor.Close()
		return nil, err
	}

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Token, cfg.API.Timeout, api.WithLogger(log))
	m := metrics.NewMetrics()
	exporter := export.NewExporter(client, cat, export.Options{
		DateLayout: cfg.Export.DateLayout,
		Location:   cfg.Location(),
	}, log)

	s, err := New(fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port), Deps{
		Exports:       export.NewService(exporter, stor, m, log),
		Runs:          stor,
		Admin:         client,
		Metrics:       m,
		Logger:        log,
		DefaultFormat: format,
		MessageURL:    cfg.MessageURL(),
	})
	if err != nil {
		stor.Close()
		return nil, err
	}
	s.closer = stor.Close
	return s, nil
}

// New builds the server around already constructed dependencies.
func New(addr string, deps Deps) (*RegistryServer, error) {
	if deps.Logger == nil {
		deps.Logger = logger.NewNop()
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.NewMetrics()
	}
	if deps.DefaultFormat == "" {
		deps.DefaultFormat = export.FormatCSV
	}

	if deps.MessageURL == "" {
		deps.MessageURL = "http://" + addr + "/message"
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &RegistryServer{deps: deps, logger: deps.Logger, ctx: ctx, cancel: cancel}

	// The SSE transport is mounted on our own router instead of running
	// its own listener.
	mcpTransport, sse, err := transport.NewSSEServerTransportAndHandler(
		deps.MessageURL,
		transport.WithSSEServerTransportAndHandlerOptionLogger(deps.Logger),
	)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create MCP transport: %w", err)
	}

	mcpServer, err := server.NewServer(
		mcpTransport,
		server.WithServerInfo(protocol.Implementation{
			Name:    "diet-registry",
			Version: "1.0.0",
		}),
		server.WithLogger(deps.Logger),
	)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create MCP server: %w", err)
	}
	s.server = mcpServer
	s.sse = sse

	s.registerTools()

	s.router = s.routes()
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           handlers.CustomLoggingHandler(io.Discard, cors(s.router), s.logAccess),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

func (s *RegistryServer) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.instrument)

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", s.deps.Metrics.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/mcp", s.handleMCP).Methods(http.MethodPost)
	r.HandleFunc("/", s.handleMCP).Methods(http.MethodPost)
	r.Handle("/sse", s.sse.HandleSSE()).Methods(http.MethodGet)
	r.Handle("/message", s.sse.HandleMessage()).Methods(http.MethodPost)

	r.HandleFunc("/exports", s.handleListRuns).Methods(http.MethodGet)
	r.HandleFunc("/exports", s.handleCreateExport).Methods(http.MethodPost)
	r.HandleFunc("/exports/{id}", s.handleGetRun).Methods(http.MethodGet)
	r.HandleFunc("/exports/{id}/file", s.handleDownload).Methods(http.MethodGet)
	return r
}

// Handler returns the routed handler without the access log.
func (s *RegistryServer) Handler() http.Handler {
	return s.router
}

func (s *RegistryServer) Start(ctx context.Context) error {
	s.logger.Info("Starting diet registry server", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop cancels shared work, closes MCP sessions, then drains HTTP
// connections and closes storage. Only the first call does anything.
func (s *RegistryServer) Stop() error {
	s.stopOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.cancel()

		var errs []error
		// Open SSE streams only end once their sessions are closed.
		if err := s.server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shut down MCP server: %w", err))
		}
		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(ctx); err != nil {
				errs = append(errs, err)
			}
		}
		if s.closer != nil {
			if err := s.closer(); err != nil {
				errs = append(errs, err)
			}
		}
		s.stopErr = errors.Join(errs...)
	})
	return s.stopErr
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush keeps SSE streaming working through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (s *RegistryServer) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tmpl, err := cur.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}
		s.deps.Metrics.ObserveHTTP(route, rec.status, time.Since(start))
	})
}

// logAccess writes the access log through zap instead of the handler's writer.
func (s *RegistryServer) logAccess(_ io.Writer, p handlers.LogFormatterParams) {
	s.logger.Info("HTTP request",
		"method", p.Request.Method,
		"path", p.URL.Path,
		"status", p.StatusCode,
		"size", p.Size,
		"remote_addr", p.Request.RemoteAddr,
		"duration", time.Since(p.TimeStamp),
	)
}

func (s *RegistryServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *RegistryServer) createJSONResponse(data interface{}) (*protocol.CallToolResult, error) {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}

	return &protocol.CallToolResult{
		Content: []protocol.Content{
			protocol.TextContent{
				Type: "text",
				Text: string(jsonBytes),
			},
		},
	}, nil
}
