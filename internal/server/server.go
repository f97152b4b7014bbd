// Package server exposes the study tracker over HTTP for the web
// dashboard.
package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"gatedesk/internal/ai"
	"gatedesk/internal/config"
	"gatedesk/internal/playlist"
)

type Server struct {
	dbh    *sql.DB
	cfg    config.Config
	loc    *time.Location
	logger *slog.Logger

	aic       *ai.Client
	playlists *playlist.Client

	now func() time.Time
}

func New(dbh *sql.DB, cfg config.Config, logger *slog.Logger) *Server {
	return &Server{
		dbh:       dbh,
		cfg:       cfg,
		loc:       cfg.Location(),
		logger:    logger,
		aic:       ai.NewClient(cfg.AI.APIKey, cfg.AI.Model),
		playlists: playlist.NewClient(cfg.YouTube.APIKey),
		now:       time.Now,
	}
}

// Handler builds the full route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// sessions
	mux.HandleFunc("POST /sessions", s.handleCreateSession)
	mux.HandleFunc("DELETE /sessions/{id}", s.handleDeleteSession)
	mux.HandleFunc("GET /sessions/analysis", s.handleAnalysis)
	mux.HandleFunc("GET /sessions/history", s.handleHistory)
	mux.HandleFunc("GET /sessions/chart", s.handleChart)
	mux.HandleFunc("GET /sessions/stats", s.handleStats)

	// todos
	mux.HandleFunc("GET /todos", s.handleListTodos)
	mux.HandleFunc("POST /todos", s.handleCreateTodo)
	mux.HandleFunc("PUT /todos/{id}", s.handleUpdateTodo)
	mux.HandleFunc("DELETE /todos/{id}", s.handleDeleteTodo)

	// progress toggles
	mux.HandleFunc("GET /syllabus/progress", s.handleSyllabusProgress)
	mux.HandleFunc("POST /syllabus/toggle", s.handleSyllabusToggle)
	mux.HandleFunc("GET /pyq/progress", s.handlePYQProgress)
	mux.HandleFunc("POST /pyq/toggle", s.handlePYQToggle)
	mux.HandleFunc("GET /papers/progress", s.handlePaperProgress)
	mux.HandleFunc("POST /papers/toggle", s.handlePaperToggle)

	// local library
	mux.HandleFunc("GET /library/roots", s.handleLibraryRoots)
	mux.HandleFunc("POST /library/roots", s.handleAddLibraryRoot)
	mux.HandleFunc("GET /library/list", s.handleLibraryList)
	mux.HandleFunc("GET /library/open", s.handleLibraryOpen)

	// playlists
	mux.HandleFunc("GET /playlists", s.handleListPlaylists)
	mux.HandleFunc("POST /playlists", s.handleImportPlaylist)
	mux.HandleFunc("GET /playlists/{id}", s.handleGetPlaylist)
	mux.HandleFunc("DELETE /playlists/{id}", s.handleDeletePlaylist)
	mux.HandleFunc("POST /playlists/video/toggle", s.handleToggleVideo)

	// collaborators
	mux.HandleFunc("POST /chat", s.handleChat)
	mux.HandleFunc("GET /dashboard/data", s.handleDashboard)

	return s.withMiddleware(mux)
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondSuccess(w http.ResponseWriter, extra map[string]any) {
	body := map[string]any{"success": true}
	for k, v := range extra {
		body[k] = v
	}
	respondJSON(w, http.StatusOK, body)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
