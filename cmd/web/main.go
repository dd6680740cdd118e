package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"seqclean/internal/clean"
	"seqclean/internal/logging"
	"seqclean/internal/report"
	"seqclean/internal/store"
)

// statusResponseWriter captures status and bytes written for logging
type statusResponseWriter struct {
	http.ResponseWriter
	status  int
	written int64
}

func (w *statusResponseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusResponseWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.written += int64(n)
	return n, err
}

// loggingMiddleware logs each request with method, path, status, size and duration
func loggingMiddleware(logger *log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusResponseWriter{ResponseWriter: w}
		next.ServeHTTP(srw, r)
		if srw.status == 0 {
			srw.status = http.StatusOK
		}
		logger.Info("request", "remote", r.RemoteAddr, "method", r.Method, "uri", r.URL.RequestURI(),
			"status", srw.status, "bytes", srw.written, "duration", time.Since(start), "ua", r.UserAgent())
	})
}

type server struct {
	store  *store.Store
	logger *log.Logger
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(v)
}

// runID returns the run named by the "run" query parameter, or the latest.
func (s *server) runID(r *http.Request) (string, error) {
	if id := strings.TrimSpace(r.URL.Query().Get("run")); id != "" {
		run, err := s.store.Run(r.Context(), id)
		if err != nil {
			return "", err
		}
		return run.ID, nil
	}
	run, err := s.store.LatestRun(r.Context())
	if err != nil {
		return "", err
	}
	return run.ID, nil
}

func (s *server) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNoRuns):
		http.Error(w, "no runs stored", http.StatusNotFound)
		return
	case errors.Is(err, store.ErrRunNotFound):
		http.Error(w, "no such run", http.StatusNotFound)
		return
	}
	s.logger.Error("request failed", "err", err)
	http.Error(w, "failed to read database", http.StatusInternalServerError)
}

func (s *server) handleRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.store.Runs(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	if runs == nil {
		runs = []store.Run{}
	}
	writeJSON(w, runs)
}

// filterRows keeps rows whose name or category contains q (case
// insensitive) and orders them by sortMode: name, length, gc or file order.
func filterRows(rows []clean.Row, q, sortMode string) []clean.Row {
	q = strings.ToLower(strings.TrimSpace(q))
	filtered := make([]clean.Row, 0, len(rows))
	for _, row := range rows {
		if q == "" || strings.Contains(strings.ToLower(row.Name), q) || strings.Contains(strings.ToLower(string(row.Category)), q) {
			filtered = append(filtered, row)
		}
	}
	switch sortMode {
	case "name":
		sort.SliceStable(filtered, func(i, j int) bool { return strings.ToLower(filtered[i].Name) < strings.ToLower(filtered[j].Name) })
	case "length":
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Length > filtered[j].Length })
	case "gc":
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].GCContent > filtered[j].GCContent })
	}
	return filtered
}

func (s *server) rows(r *http.Request) ([]clean.Row, error) {
	id, err := s.runID(r)
	if err != nil {
		return nil, err
	}
	return s.store.Rows(r.Context(), id)
}

func (s *server) handleRows(w http.ResponseWriter, r *http.Request) {
	rows, err := s.rows(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, filterRows(rows, r.URL.Query().Get("q"), r.URL.Query().Get("sort")))
}

func (s *server) handleRow(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	rows, err := s.rows(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	for _, row := range rows {
		if row.Name == name {
			writeJSON(w, row)
			return
		}
	}
	http.Error(w, "sequence not found", http.StatusNotFound)
}

type summary struct {
	Run        store.Run      `json:"run"`
	Categories map[string]int `json:"categories"`
}

func (s *server) handleSummary(w http.ResponseWriter, r *http.Request) {
	run, err := s.store.LatestRun(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	rows, err := s.store.Rows(r.Context(), run.ID)
	if err != nil {
		s.fail(w, err)
		return
	}
	cats := map[string]int{}
	for c, n := range report.CategoryCounts(rows) {
		cats[string(c)] = n
	}
	writeJSON(w, summary{Run: run, Categories: cats})
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/runs", s.handleRuns)
	mux.HandleFunc("GET /api/rows", s.handleRows)
	mux.HandleFunc("GET /api/row/{name}", s.handleRow)
	mux.HandleFunc("GET /api/summary", s.handleSummary)
	return loggingMiddleware(s.logger, mux)
}

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	dbPath := flag.String("db", "seqclean.db", "sqlite database written by seqclean run --db")
	logFile := flag.String("log", "", "path to append access logs to (optional)")
	verbose := flag.Bool("verbose", false, "enable verbose (debug) logging")
	flag.Parse()

	logger, closer := logging.New(logging.Options{LogFile: *logFile, Verbose: *verbose, Prefix: "web"})
	defer closer.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	st, err := store.Open(ctx, *dbPath)
	cancel()
	if err != nil {
		logger.Error("failed to open database", "path", *dbPath, "err", err)
		os.Exit(1)
	}
	defer st.Close()

	s := &server{store: st, logger: logger}
	srv := &http.Server{Addr: *addr, Handler: s.routes(), ReadTimeout: 5 * time.Second, WriteTimeout: 10 * time.Second}
	logger.Info("serving JSON API", "addr", *addr, "db", *dbPath)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
