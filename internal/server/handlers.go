package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gatedesk/internal/db"
	"gatedesk/internal/library"
)

// --- todos ---

func (s *Server) handleListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := db.ListTodos(s.dbh)
	if err != nil {
		s.logger.Error("list todos", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load todos")
		return
	}
	if todos == nil {
		todos = []db.Todo{}
	}
	respondJSON(w, http.StatusOK, todos)
}

func (s *Server) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Text == "" {
		respondError(w, http.StatusBadRequest, "text is required")
		return
	}
	todo, err := db.AddTodo(s.dbh, req.Text)
	if err != nil {
		s.logger.Error("add todo", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to add todo")
		return
	}
	respondJSON(w, http.StatusOK, todo)
}

func (s *Server) handleUpdateTodo(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid todo id")
		return
	}
	var req struct {
		IsDone bool `json:"is_done"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := db.SetTodoDone(s.dbh, id, req.IsDone); err != nil {
		s.logger.Error("update todo", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to update todo")
		return
	}
	respondSuccess(w, nil)
}

func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid todo id")
		return
	}
	if err := db.DeleteTodo(s.dbh, id); err != nil {
		s.logger.Error("delete todo", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to delete todo")
		return
	}
	respondSuccess(w, nil)
}

// --- syllabus / pyq / paper progress ---

func (s *Server) handleSyllabusProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := db.SyllabusProgress(s.dbh)
	if err != nil {
		s.logger.Error("syllabus progress", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load progress")
		return
	}
	respondJSON(w, http.StatusOK, progress)
}

func (s *Server) handleSyllabusToggle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TopicID string `json:"topic_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.TopicID == "" {
		respondError(w, http.StatusBadRequest, "topic_id is required")
		return
	}
	state, err := db.ToggleSyllabusTopic(s.dbh, req.TopicID)
	if err != nil {
		s.logger.Error("syllabus toggle", "topic_id", req.TopicID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to toggle topic")
		return
	}
	respondSuccess(w, map[string]any{"is_completed": state})
}

func (s *Server) handlePYQProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := db.ListPYQProgress(s.dbh)
	if err != nil {
		s.logger.Error("pyq progress", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load progress")
		return
	}
	if progress == nil {
		progress = []db.PYQProgress{}
	}
	respondJSON(w, http.StatusOK, progress)
}

func (s *Server) handlePYQToggle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TopicName string `json:"topic_name"`
		Year      string `json:"year"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.TopicName == "" || req.Year == "" {
		respondError(w, http.StatusBadRequest, "topic_name and year are required")
		return
	}
	state, err := db.TogglePYQ(s.dbh, req.TopicName, req.Year)
	if err != nil {
		s.logger.Error("pyq toggle", "topic", req.TopicName, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to toggle pyq")
		return
	}
	respondSuccess(w, map[string]any{"is_solved": state})
}

func (s *Server) handlePaperProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := db.ListPaperProgress(s.dbh)
	if err != nil {
		s.logger.Error("paper progress", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load progress")
		return
	}
	if progress == nil {
		progress = []db.PaperProgress{}
	}
	respondJSON(w, http.StatusOK, progress)
}

func (s *Server) handlePaperToggle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Year   int    `json:"year"`
		Stream string `json:"stream"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Year == 0 || req.Stream == "" {
		respondError(w, http.StatusBadRequest, "year and stream are required")
		return
	}
	state, err := db.TogglePaper(s.dbh, req.Year, req.Stream)
	if err != nil {
		s.logger.Error("paper toggle", "year", req.Year, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to toggle paper")
		return
	}
	respondSuccess(w, map[string]any{"is_solved": state})
}

// --- local library ---

func (s *Server) handleLibraryRoots(w http.ResponseWriter, r *http.Request) {
	roots, err := db.ListLibraryRoots(s.dbh)
	if err != nil {
		s.logger.Error("library roots", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load library roots")
		return
	}
	if roots == nil {
		roots = []db.LibraryRoot{}
	}
	respondJSON(w, http.StatusOK, roots)
}

func (s *Server) handleAddLibraryRoot(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Path     string `json:"path"`
		Type     string `json:"type"`
		Category string `json:"category"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" || req.Path == "" {
		respondError(w, http.StatusBadRequest, "name and path are required")
		return
	}
	root, err := db.AddLibraryRoot(s.dbh, req.Name, req.Path, req.Type, req.Category)
	if err != nil {
		s.logger.Error("add library root", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to add library root")
		return
	}
	respondJSON(w, http.StatusOK, root)
}

func (s *Server) handleLibraryList(w http.ResponseWriter, r *http.Request) {
	dir := r.URL.Query().Get("path")
	if dir == "" {
		respondError(w, http.StatusBadRequest, "path required")
		return
	}
	items, err := library.List(dir)
	if err != nil {
		if os.IsNotExist(err) {
			respondError(w, http.StatusNotFound, "path not found")
			return
		}
		s.logger.Error("library list", "path", dir, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list directory")
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleLibraryOpen(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		respondError(w, http.StatusBadRequest, "path required")
		return
	}
	roots, err := db.ListLibraryRoots(s.dbh)
	if err != nil {
		s.logger.Error("library open", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load library roots")
		return
	}
	if !underLibraryRoot(roots, path) {
		respondError(w, http.StatusForbidden, "path outside library roots")
		return
	}
	if _, err := os.Stat(path); err != nil {
		respondError(w, http.StatusNotFound, "file not found")
		return
	}
	http.ServeFile(w, r, path)
}

// underLibraryRoot reports whether path equals a registered root or
// sits inside one. Only registered material may be served.
func underLibraryRoot(roots []db.LibraryRoot, path string) bool {
	path = filepath.Clean(path)
	for _, r := range roots {
		root := filepath.Clean(r.Path)
		if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// --- dashboard ---

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	playlists, err := db.ListPlaylists(s.dbh)
	if err != nil {
		s.logger.Error("dashboard playlists", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}
	pyq, err := db.ListPYQProgress(s.dbh)
	if err != nil {
		s.logger.Error("dashboard pyq", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}
	papers, err := db.ListPaperProgress(s.dbh)
	if err != nil {
		s.logger.Error("dashboard papers", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}

	solvedTopics := make([]db.PYQProgress, 0)
	for _, p := range pyq {
		if p.IsSolved {
			solvedTopics = append(solvedTopics, p)
		}
	}
	solvedPapers := make([]db.PaperProgress, 0)
	for _, p := range papers {
		if p.IsSolved {
			solvedPapers = append(solvedPapers, p)
		}
	}
	if playlists == nil {
		playlists = []db.Playlist{}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"playlists":    playlists,
		"solvedTopics": solvedTopics,
		"solvedPapers": solvedPapers,
	})
}
