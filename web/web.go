// Package web provides the local preview server for contract documents.
//
// The server exposes a JSON API over the template library, the variable catalog and
// the client registry, renders previews of payload documents and keeps free-form
// drafts in memory. Connected browsers are told to reload through server-sent
// events whenever the registry or a template file changes on disk.
//
// SECURITY WARNING: This server has no authentication and should only be
// bound to localhost (127.0.0.1). Do not expose it to untrusted networks.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/robinvdvleuten/contrato/catalog"
	"github.com/robinvdvleuten/contrato/contract"
	"github.com/robinvdvleuten/contrato/loader"
	"github.com/robinvdvleuten/contrato/record"
	"github.com/robinvdvleuten/contrato/telemetry"
)

type Server struct {
	Port         int
	Host         string
	Version      string
	CommitSHA    string
	ReadOnly     bool
	WatchEnabled bool

	// RegistryFile is the client registry served by the API. Its includes are
	// followed and watched.
	RegistryFile string

	// TemplatesDir holds editable templates. When empty the built-in templates are
	// served read-only.
	TemplatesDir string

	logger *slog.Logger
	now    func() time.Time
	engine *contract.Engine
	guard  *catalog.Guard
	drafts *draftStore

	mu            sync.RWMutex
	registry      *record.Registry
	registryFiles []string
	library       *loader.Library

	// SSE clients for broadcasting reload events
	sseClients map[chan string]struct{}
	sseMu      sync.Mutex
}

// Option configures a Server.
type Option func(*Server)

// WithAddr sets the listen address.
func WithAddr(host string, port int) Option {
	return func(s *Server) {
		s.Host = host
		s.Port = port
	}
}

// WithTemplatesDir serves and edits the templates in dir.
func WithTemplatesDir(dir string) Option {
	return func(s *Server) {
		s.TemplatesDir = dir
	}
}

// WithWatch reloads the registry and templates when their files change.
func WithWatch() Option {
	return func(s *Server) {
		s.WatchEnabled = true
	}
}

// WithReadOnly rejects template edits.
func WithReadOnly() Option {
	return func(s *Server) {
		s.ReadOnly = true
	}
}

// WithVersion sets the version reported by the API.
func WithVersion(version, commitSHA string) Option {
	return func(s *Server) {
		s.Version = version
		s.CommitSHA = commitSHA
	}
}

// WithNoticeTTL sets how long insertion notices stay visible.
func WithNoticeTTL(ttl time.Duration) Option {
	return func(s *Server) {
		s.guard = catalog.NewGuard(catalog.WithNoticeTTL(ttl), catalog.WithClock(s.clock))
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithClock sets the clock used for notices and document dates.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// New creates a server for the given registry file.
func New(registryFile string, opts ...Option) *Server {
	s := &Server{
		Port:         8080,
		Host:         "127.0.0.1",
		RegistryFile: registryFile,
		now:          time.Now,
		drafts:       newDraftStore(),
		sseClients:   make(map[chan string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.guard == nil {
		s.guard = catalog.NewGuard(catalog.WithClock(s.clock))
	}
	s.engine = contract.NewEngine(contract.WithClock(s.clock), contract.WithLogger(s.logger))
	return s
}

// clock defers to s.now so options may replace it in any order.
func (s *Server) clock() time.Time {
	return s.now()
}

// Start loads the registry and templates and serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	timer := telemetry.FromContext(ctx).Start(fmt.Sprintf("web.start %s:%d", s.Host, s.Port))

	if err := s.Load(ctx); err != nil {
		timer.End()
		return err
	}

	if s.WatchEnabled {
		if err := s.startWatcher(ctx); err != nil {
			timer.End()
			return fmt.Errorf("failed to start file watcher: %w", err)
		}
	}

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.Host, s.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	timer.End()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("listening", "addr", server.Addr, "registry", s.RegistryFile, "templates", s.TemplatesDir)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Load reads the registry and the template library.
func (s *Server) Load(ctx context.Context) error {
	timer := telemetry.FromContext(ctx).Start("web.load")
	defer timer.End()

	if err := s.reloadRegistry(ctx); err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	if err := s.reloadTemplates(ctx); err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}
	return nil
}

// Handler returns the HTTP handler serving the API and the editor page.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/version", s.handleVersion)
	mux.HandleFunc("GET /api/templates", s.handleListTemplates)
	mux.HandleFunc("GET /api/templates/{id}", s.handleGetTemplate)
	mux.HandleFunc("PUT /api/templates/{id}", s.requireWritable(s.handlePutTemplate))
	mux.HandleFunc("GET /api/catalog", s.handleCatalog)
	mux.HandleFunc("GET /api/registry", s.handleRegistry)
	mux.HandleFunc("POST /api/preview", s.handlePreview)
	mux.HandleFunc("POST /api/drafts", s.handleCreateDraft)
	mux.HandleFunc("GET /api/drafts/{id}", s.handleGetDraft)
	mux.HandleFunc("PUT /api/drafts/{id}", s.handlePutDraft)
	mux.HandleFunc("DELETE /api/drafts/{id}", s.handleDeleteDraft)
	mux.HandleFunc("POST /api/drafts/{id}/insert", s.handleInsert)
	mux.HandleFunc("GET /api/events", s.handleSSE)

	// Editor page (prod: embedded, dev: read from web/static)
	s.mountAssets(mux)

	return s.logRequests(mux)
}

// requireWritable is middleware that rejects template edits in read-only mode or
// when templates are built in.
func (s *Server) requireWritable(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.ReadOnly || s.TemplatesDir == "" {
			http.Error(w, "Templates are read-only", http.StatusForbidden)
			return
		}
		next(w, r)
	}
}

// reloadRegistry loads or reloads the registry from disk.
// Caller must NOT hold the mutex - this method acquires it internally.
func (s *Server) reloadRegistry(ctx context.Context) error {
	if s.RegistryFile == "" {
		s.mu.Lock()
		s.registry = &record.Registry{}
		s.registryFiles = nil
		s.mu.Unlock()
		return nil
	}

	result, err := loader.New(loader.WithFollowIncludes()).LoadRegistry(ctx, s.RegistryFile)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.registry = result.Registry
	s.registryFiles = result.Files()
	s.mu.Unlock()

	return nil
}

// reloadTemplates loads or reloads the template library.
func (s *Server) reloadTemplates(ctx context.Context) error {
	lib, err := loader.New(loader.WithTemplatesDir(s.TemplatesDir)).LoadTemplates(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.library = lib
	s.mu.Unlock()

	return nil
}

// snapshot returns the current registry and library.
func (s *Server) snapshot() (*record.Registry, *loader.Library) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry, s.library
}

// watchList returns every file and directory the watcher should follow.
func (s *Server) watchList() []string {
	s.mu.RLock()
	files := append([]string(nil), s.registryFiles...)
	s.mu.RUnlock()

	if s.TemplatesDir != "" {
		if dir, err := filepath.Abs(s.TemplatesDir); err == nil {
			files = append(files, dir)
		}
	}
	return files
}

// startWatcher watches the registry files and the templates directory.
func (s *Server) startWatcher(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	for _, file := range s.watchList() {
		if err := watcher.Add(file); err != nil {
			s.logger.Warn("failed to watch file", "file", file, "error", err)
		}
	}

	go s.runWatcher(ctx, watcher)

	return nil
}

// runWatcher processes file system events with debouncing.
func (s *Server) runWatcher(ctx context.Context, watcher *fsnotify.Watcher) {
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		_ = watcher.Close()
	}()

	// Editors often write files in multiple steps
	const debounceDelay = 100 * time.Millisecond

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			// Remove and Rename are common in atomic saves
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}

			debounceTimer = time.AfterFunc(debounceDelay, func() {
				s.handleFileChange(ctx, watcher)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Error("file watcher error", "error", err)
		}
	}
}

// handleFileChange reloads everything, updates the watch list and tells clients
// to reload.
func (s *Server) handleFileChange(ctx context.Context, watcher *fsnotify.Watcher) {
	old := make(map[string]bool)
	for _, f := range s.watchList() {
		old[f] = true
	}

	if err := s.reloadRegistry(ctx); err != nil {
		s.logger.Error("failed to reload registry", "error", err)
		return
	}
	if err := s.reloadTemplates(ctx); err != nil {
		s.logger.Error("failed to reload templates", "error", err)
		return
	}

	current := make(map[string]bool)
	for _, f := range s.watchList() {
		current[f] = true
	}

	for file := range old {
		if !current[file] {
			_ = watcher.Remove(file)
		}
	}
	// Re-add everything to catch re-created files
	for file := range current {
		if err := watcher.Add(file); err != nil {
			s.logger.Warn("failed to watch file", "file", file, "error", err)
		}
	}

	s.logger.Info("reloaded", "files", len(current))
	s.broadcast("reload")
}

// handleSSE handles Server-Sent Events connections for real-time updates.
func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	clientChan := make(chan string, 10)

	s.sseMu.Lock()
	s.sseClients[clientChan] = struct{}{}
	s.sseMu.Unlock()

	defer func() {
		s.sseMu.Lock()
		delete(s.sseClients, clientChan)
		s.sseMu.Unlock()
	}()

	_, _ = fmt.Fprintf(w, "data: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event := <-clientChan:
			_, _ = fmt.Fprintf(w, "data: %s\n\n", event)
			flusher.Flush()
		}
	}
}

// broadcast sends an event to all connected SSE clients.
func (s *Server) broadcast(event string) {
	s.sseMu.Lock()
	defer s.sseMu.Unlock()

	for clientChan := range s.sseClients {
		select {
		case clientChan <- event:
		default:
			// Client buffer full, skip
		}
	}
}

type VersionResponse struct {
	Version   string `json:"version"`
	CommitSHA string `json:"commit_sha"`
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, &VersionResponse{Version: s.Version, CommitSHA: s.CommitSHA})
}
