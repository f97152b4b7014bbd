package db

import (
	"database/sql"
	"fmt"
	"time"
)

type Playlist struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	URL             string    `json:"url"`
	Thumbnail       string    `json:"thumbnail"`
	SubjectID       string    `json:"subject_id"`
	CreatedAt       time.Time `json:"created_at"`
	TotalVideos     int       `json:"total_videos"`
	CompletedVideos int       `json:"completed_videos"`
}

type PlaylistVideo struct {
	ID          string `json:"id"`
	PlaylistID  string `json:"playlist_id"`
	Title       string `json:"title"`
	Thumbnail   string `json:"thumbnail"`
	IsCompleted bool   `json:"is_completed"`
	Position    int    `json:"position"`
}

// UpsertPlaylist saves playlist metadata and replaces nothing on
// conflict except title and thumbnail, matching re-imports.
func UpsertPlaylist(dbh *sql.DB, p Playlist) error {
	_, err := dbh.Exec(`
		INSERT INTO playlists (id, title, url, thumbnail, subject_id)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET title = excluded.title, thumbnail = excluded.thumbnail
	`, p.ID, p.Title, p.URL, p.Thumbnail, p.SubjectID)
	return err
}

// InsertPlaylistVideos bulk-inserts videos inside one transaction,
// keeping completion state of videos already present.
func InsertPlaylistVideos(dbh *sql.DB, playlistID string, videos []PlaylistVideo) error {
	tx, err := dbh.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
		INSERT INTO playlist_videos (id, playlist_id, title, thumbnail, position)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, v := range videos {
		if _, err := stmt.Exec(v.ID, playlistID, v.Title, v.Thumbnail, i); err != nil {
			return fmt.Errorf("insert video %s: %w", v.ID, err)
		}
	}
	return tx.Commit()
}

func DeletePlaylist(dbh *sql.DB, id string) error {
	_, err := dbh.Exec(`DELETE FROM playlists WHERE id = ?`, id)
	return err
}

// ListPlaylists returns all playlists with per-playlist video counts.
func ListPlaylists(dbh *sql.DB) ([]Playlist, error) {
	rows, err := dbh.Query(`
		SELECT p.id, p.title, p.url, p.thumbnail, p.subject_id, p.created_at,
		       COUNT(pv.id),
		       COALESCE(SUM(CASE WHEN pv.is_completed = 1 THEN 1 ELSE 0 END), 0)
		FROM playlists p
		LEFT JOIN playlist_videos pv ON p.id = pv.playlist_id
		GROUP BY p.id
		ORDER BY p.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Playlist
	for rows.Next() {
		var p Playlist
		var created string
		if err := rows.Scan(&p.ID, &p.Title, &p.URL, &p.Thumbnail, &p.SubjectID, &created, &p.TotalVideos, &p.CompletedVideos); err != nil {
			return nil, err
		}
		if ts, err := time.Parse(time.RFC3339, created); err == nil {
			p.CreatedAt = ts
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetPlaylist returns one playlist and its videos in position order.
func GetPlaylist(dbh *sql.DB, id string) (Playlist, []PlaylistVideo, error) {
	var p Playlist
	var created string
	err := dbh.QueryRow(
		`SELECT id, title, url, thumbnail, subject_id, created_at FROM playlists WHERE id = ?`, id,
	).Scan(&p.ID, &p.Title, &p.URL, &p.Thumbnail, &p.SubjectID, &created)
	if err != nil {
		return Playlist{}, nil, err
	}
	if ts, err := time.Parse(time.RFC3339, created); err == nil {
		p.CreatedAt = ts
	}

	rows, err := dbh.Query(`
		SELECT id, playlist_id, title, thumbnail, is_completed, position
		FROM playlist_videos
		WHERE playlist_id = ?
		ORDER BY position ASC
	`, id)
	if err != nil {
		return Playlist{}, nil, err
	}
	defer rows.Close()

	var videos []PlaylistVideo
	for rows.Next() {
		var v PlaylistVideo
		if err := rows.Scan(&v.ID, &v.PlaylistID, &v.Title, &v.Thumbnail, &v.IsCompleted, &v.Position); err != nil {
			return Playlist{}, nil, err
		}
		videos = append(videos, v)
	}
	return p, videos, rows.Err()
}

// ToggleVideo flips a video's watched flag. Returns sql.ErrNoRows for
// unknown ids so the handler can 404.
func ToggleVideo(dbh *sql.DB, videoID string) (bool, error) {
	var done bool
	if err := dbh.QueryRow(`SELECT is_completed FROM playlist_videos WHERE id = ?`, videoID).Scan(&done); err != nil {
		return false, err
	}
	_, err := dbh.Exec(`UPDATE playlist_videos SET is_completed = ? WHERE id = ?`, !done, videoID)
	return !done, err
}
