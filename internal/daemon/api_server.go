package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"log/slog"

	"brronson/internal/api"
	"brronson/internal/config"
	"brronson/internal/logging"
	"brronson/internal/ops"
	"brronson/internal/preflight"
	"brronson/internal/queue"
)

type apiServer struct {
	bind   string
	logger *slog.Logger
	daemon *Daemon

	listener net.Listener
	server   *http.Server
}

func newAPIServer(cfg *config.Config, d *Daemon, logger *slog.Logger) *apiServer {
	srv := &apiServer{
		bind:   strings.TrimSpace(cfg.Paths.APIBind),
		logger: logger,
		daemon: d,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", srv.methodGet(srv.handleHealth))
	mux.HandleFunc("/version", srv.methodGet(srv.handleVersion))
	mux.HandleFunc("/api/v1/cleanup/scan", srv.methodGet(srv.handleCleanupScan))
	mux.HandleFunc("/api/v1/cleanup/files", srv.methodPost(srv.runSync(ops.OpCleanUnwanted)))
	mux.HandleFunc("/api/v1/cleanup/empty-folders", srv.methodPost(srv.runSync(ops.OpPruneEmpty)))
	mux.HandleFunc("/api/v1/compare/directories", srv.methodGet(srv.handleCompare))
	mux.HandleFunc("/api/v1/move/non-duplicates", srv.methodPost(srv.runSync(ops.OpRelocateNonDuplicates)))
	mux.HandleFunc("/api/v1/migrate/non-movie-folders", srv.methodPost(srv.runSync(ops.OpMigrateNonMovie)))
	mux.HandleFunc("/api/v1/salvage/subtitle-folders", srv.methodPost(srv.runSync(ops.OpSalvageSubtitles)))
	mux.HandleFunc("/api/v1/sync/subtitles-to-target", srv.methodPost(srv.runSync(ops.OpSyncSubtitles)))
	mux.HandleFunc("/api/v1/jobs", srv.handleJobs)
	mux.HandleFunc("/api/v1/jobs/", srv.methodGet(srv.handleJob))
	mux.HandleFunc("/api/v1/metrics", srv.methodGet(srv.handleMetrics))

	srv.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv
}

func (s *apiServer) start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log().Error("api server error", logging.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.log().Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

func (s *apiServer) stop() {
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

func (s *apiServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	checks := preflight.RunAll(s.daemon.cfg)
	resp := api.HealthResponse{Status: "ok", Checks: make([]api.PreflightCheck, 0, len(checks))}
	status := http.StatusOK
	for _, check := range checks {
		resp.Checks = append(resp.Checks, api.PreflightCheck{
			Name:   check.Name,
			Passed: check.Passed,
			Detail: check.Detail,
		})
	}
	if !preflight.Passed(checks) {
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}
	s.writeJSON(w, status, resp)
}

func (s *apiServer) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, api.VersionResponse{Name: "brronson", Version: Version})
}

// runSync executes one operation inline and returns its report. The request
// body is the operation's request JSON; an empty body means all defaults.
func (s *apiServer) runSync(operation string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
		if err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Sprintf("read body: %v", err))
			return
		}
		report, err := s.daemon.engine.Run(r.Context(), operation, params)
		if err != nil {
			s.writeOpError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, report)
	}
}

func (s *apiServer) handleCleanupScan(w http.ResponseWriter, r *http.Request) {
	req := ops.ScanUnwantedRequest{Root: r.URL.Query().Get("root")}
	report, err := s.daemon.engine.ScanUnwanted(r.Context(), req)
	if err != nil {
		s.writeOpError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

func (s *apiServer) handleCompare(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := ops.CompareRequest{
		Source:  query.Get("source"),
		Target:  query.Get("target"),
		Verbose: query.Get("verbose") == "1" || strings.EqualFold(query.Get("verbose"), "true"),
	}
	report, err := s.daemon.engine.CompareDirectories(r.Context(), req)
	if err != nil {
		s.writeOpError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

func (s *apiServer) handleJobs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleJobList(w, r)
	case http.MethodPost:
		s.handleJobEnqueue(w, r)
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *apiServer) handleJobEnqueue(w http.ResponseWriter, r *http.Request) {
	var req api.EnqueueRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("decode request: %v", err))
		return
	}
	operation := strings.TrimSpace(req.Operation)
	if !knownOperation(operation) {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown operation %q", operation))
		return
	}
	job, err := s.daemon.store.Enqueue(r.Context(), operation, req.Params)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusAccepted, api.JobResponse{Job: api.FromJob(job)})
}

func (s *apiServer) handleJobList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	status := queue.Status(strings.TrimSpace(query.Get("status")))
	if status != "" && !status.Valid() {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown status %q", status))
		return
	}
	limit, _ := strconv.Atoi(query.Get("limit"))

	jobs, err := s.daemon.store.List(r.Context(), status, limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	stats, err := s.daemon.store.Stats(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := api.JobListResponse{Jobs: api.FromJobs(jobs), Stats: make(map[string]int, len(stats))}
	for status, count := range stats {
		resp.Stats[string(status)] = count
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *apiServer) handleJob(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/v1/jobs/")
	if id == "" || strings.Contains(id, "/") {
		s.writeError(w, http.StatusNotFound, "job not found")
		return
	}
	job, err := s.daemon.store.GetByID(r.Context(), id)
	if errors.Is(err, queue.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "job not found")
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, api.JobResponse{Job: api.FromJob(job)})
}

func (s *apiServer) handleMetrics(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.daemon.recorder.Snapshot())
}

func knownOperation(name string) bool {
	for _, known := range ops.OperationNames() {
		if name == known {
			return true
		}
	}
	return false
}

func (s *apiServer) methodGet(next http.HandlerFunc) http.HandlerFunc {
	return s.method(http.MethodGet, next)
}

func (s *apiServer) methodPost(next http.HandlerFunc) http.HandlerFunc {
	return s.method(http.MethodPost, next)
}

func (s *apiServer) method(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		next(w, r)
	}
}

// writeOpError maps the operation error taxonomy onto HTTP status codes.
func (s *apiServer) writeOpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ops.ErrNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ops.ErrProtected), errors.Is(err, ops.ErrValidation):
		s.writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *apiServer) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log().Error("failed to encode response", logging.Error(err))
	}
}

func (s *apiServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, api.ErrorResponse{Error: message})
}

func (s *apiServer) log() *slog.Logger {
	if s.logger != nil {
		return s.logger.With(logging.String("component", "api-server"))
	}
	return logging.NewNop()
}
