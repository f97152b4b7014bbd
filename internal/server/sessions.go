package server

import (
	"errors"
	"net/http"
	"strconv"

	"gatedesk/internal/db"
)

type createSessionRequest struct {
	Duration     int    `json:"duration"` // seconds
	Mode         string `json:"mode"`
	Notes        string `json:"notes"`
	SessionLabel string `json:"session_label"`
	Date         string `json:"date"` // optional YYYY-MM-DD backfill
}

// handleCreateSession persists one study session. Validation problems
// are the caller's fault; store failures propagate as 5xx so the
// client can retry instead of silently losing the session.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	_, err := db.RecordSession(s.dbh, s.loc, s.now(), db.NewSession{
		Duration: req.Duration,
		Mode:     req.Mode,
		Label:    req.SessionLabel,
		Notes:    req.Notes,
		Date:     req.Date,
	})
	if err != nil {
		var verr *db.ValidationError
		if errors.As(err, &verr) {
			respondError(w, http.StatusBadRequest, verr.Reason)
			return
		}
		s.logger.Error("record session", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to save session")
		return
	}
	respondSuccess(w, nil)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid session id")
		return
	}
	if err := db.DeleteSession(s.dbh, id); err != nil {
		s.logger.Error("delete session", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to delete session")
		return
	}
	respondSuccess(w, nil)
}

// handleAnalysis returns the rolling totals. Analytics are
// best-effort: a store failure degrades to an all-zero summary
// instead of breaking the dashboard.
func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	summary, err := db.Summarize(s.dbh, s.loc, s.now())
	if err != nil {
		s.logger.Error("summarize", "error", err)
		summary = db.Summary{}
	}
	respondJSON(w, http.StatusOK, summary)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	sessions, err := db.RecentSessions(s.dbh, 10)
	if err != nil {
		s.logger.Error("history", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	if sessions == nil {
		sessions = []db.Session{}
	}
	respondJSON(w, http.StatusOK, sessions)
}

// handleChart returns the bucketed series for one view. Like
// analysis, store failures degrade to an empty series.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	view := r.URL.Query().Get("view")
	if view == "" {
		view = "daily"
	}
	if !db.ChartViews[view] {
		respondError(w, http.StatusBadRequest, "view must be daily, weekly or monthly")
		return
	}

	buckets, err := db.Chart(s.dbh, s.loc, view, s.now())
	if err != nil {
		s.logger.Error("chart", "view", view, "error", err)
		buckets = []db.ChartBucket{}
	}
	respondJSON(w, http.StatusOK, buckets)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := db.ModeStats(s.dbh)
	if err != nil {
		s.logger.Error("stats", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load stats")
		return
	}
	if stats == nil {
		stats = []db.ModeStat{}
	}
	respondJSON(w, http.StatusOK, stats)
}
