package server

import (
	"database/sql"
	"errors"
	"net/http"

	"gatedesk/internal/db"
	"gatedesk/internal/playlist"
)

func (s *Server) handleImportPlaylist(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL       string `json:"url"`
		SubjectID string `json:"subject_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.URL == "" {
		respondError(w, http.StatusBadRequest, "invalid playlist URL")
		return
	}

	id := playlist.ExtractID(req.URL)
	p, err := s.playlists.Fetch(r.Context(), id)
	if err != nil {
		if errors.Is(err, playlist.ErrEmpty) {
			respondError(w, http.StatusNotFound, "playlist not found or empty")
			return
		}
		s.logger.Error("fetch playlist", "id", id, "error", err)
		respondError(w, http.StatusBadGateway, "failed to load playlist")
		return
	}

	if err := db.UpsertPlaylist(s.dbh, db.Playlist{
		ID:        p.ID,
		Title:     p.Title,
		URL:       req.URL,
		Thumbnail: p.Thumbnail,
		SubjectID: req.SubjectID,
	}); err != nil {
		s.logger.Error("save playlist", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to save playlist")
		return
	}

	videos := make([]db.PlaylistVideo, 0, len(p.Videos))
	for _, v := range p.Videos {
		videos = append(videos, db.PlaylistVideo{ID: v.ID, Title: v.Title, Thumbnail: v.Thumbnail})
	}
	if err := db.InsertPlaylistVideos(s.dbh, p.ID, videos); err != nil {
		s.logger.Error("save playlist videos", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to save playlist videos")
		return
	}

	respondSuccess(w, map[string]any{"playlistId": p.ID, "title": p.Title})
}

func (s *Server) handleListPlaylists(w http.ResponseWriter, r *http.Request) {
	playlists, err := db.ListPlaylists(s.dbh)
	if err != nil {
		s.logger.Error("list playlists", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load playlists")
		return
	}
	if playlists == nil {
		playlists = []db.Playlist{}
	}
	respondJSON(w, http.StatusOK, playlists)
}

func (s *Server) handleGetPlaylist(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	p, videos, err := db.GetPlaylist(s.dbh, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "playlist not found")
			return
		}
		s.logger.Error("get playlist", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load playlist")
		return
	}
	if videos == nil {
		videos = []db.PlaylistVideo{}
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"id":         p.ID,
		"title":      p.Title,
		"url":        p.URL,
		"thumbnail":  p.Thumbnail,
		"subject_id": p.SubjectID,
		"created_at": p.CreatedAt,
		"videos":     videos,
	})
}

func (s *Server) handleDeletePlaylist(w http.ResponseWriter, r *http.Request) {
	if err := db.DeletePlaylist(s.dbh, r.PathValue("id")); err != nil {
		s.logger.Error("delete playlist", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to delete playlist")
		return
	}
	respondSuccess(w, nil)
}

func (s *Server) handleToggleVideo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VideoID string `json:"video_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	state, err := db.ToggleVideo(s.dbh, req.VideoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "video not found")
			return
		}
		s.logger.Error("toggle video", "video_id", req.VideoID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to toggle video")
		return
	}
	respondSuccess(w, map[string]any{"is_completed": state})
}
