package db

import (
	"database/sql"
	"time"
)

// Session is one recorded study interval. Rows are immutable once
// written; the only mutation is deletion.
type Session struct {
	ID           int64     `json:"id"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Duration     int       `json:"duration"` // seconds
	Mode         string    `json:"mode"`     // focus|short|long|manual
	SessionLabel string    `json:"session_label"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewSession is the write request for RecordSession.
type NewSession struct {
	Duration int    // seconds
	Mode     string
	Label    string
	Notes    string
	Date     string // optional "2006-01-02" for manual backfill
}

// ValidationError marks input rejected before it reaches the store.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// RecordSession validates and inserts one session row. End time is
// now, or local noon of the backfill date when one is given; noon
// keeps a date-only entry inside its calendar day in any timezone.
func RecordSession(dbh *sql.DB, loc *time.Location, now time.Time, req NewSession) (Session, error) {
	if req.Duration <= 0 {
		return Session{}, &ValidationError{Reason: "duration must be positive"}
	}

	end := now.In(loc)
	if req.Date != "" {
		d, err := time.ParseInLocation("2006-01-02", req.Date, loc)
		if err != nil {
			return Session{}, &ValidationError{Reason: "invalid date, expected YYYY-MM-DD"}
		}
		end = time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, loc)
	}
	start := end.Add(-time.Duration(req.Duration) * time.Second)

	mode := req.Mode
	if mode == "stopwatch" {
		mode = "focus"
	}

	res, err := dbh.Exec(`
		INSERT INTO study_sessions (start_time, end_time, duration, mode, session_label, notes)
		VALUES (?, ?, ?, ?, ?, ?)
	`, start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339), req.Duration, mode, req.Label, req.Notes)
	if err != nil {
		return Session{}, err
	}

	id, _ := res.LastInsertId()
	return Session{
		ID:           id,
		StartTime:    start,
		EndTime:      end,
		Duration:     req.Duration,
		Mode:         mode,
		SessionLabel: req.Label,
		Notes:        req.Notes,
	}, nil
}

// DeleteSession removes a session by id. Deleting an id that does not
// exist is not an error.
func DeleteSession(dbh *sql.DB, id int64) error {
	_, err := dbh.Exec(`DELETE FROM study_sessions WHERE id = ?`, id)
	return err
}

// RecentSessions returns up to limit sessions, newest first.
func RecentSessions(dbh *sql.DB, limit int) ([]Session, error) {
	rows, err := dbh.Query(`
		SELECT id, start_time, end_time, duration, mode,
		       COALESCE(session_label,''), COALESCE(notes,''), created_at
		FROM study_sessions
		ORDER BY start_time DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var s Session
		var start, end, created string
		if err := rows.Scan(&s.ID, &start, &end, &s.Duration, &s.Mode, &s.SessionLabel, &s.Notes, &created); err != nil {
			return nil, err
		}
		if s.StartTime, err = time.Parse(time.RFC3339, start); err != nil {
			return nil, err
		}
		if s.EndTime, err = time.Parse(time.RFC3339, end); err != nil {
			return nil, err
		}
		// created_at may come from the SQLite default, which has no offset
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			s.CreatedAt = t
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ModeStat is a per-mode rollup for the stats endpoint.
type ModeStat struct {
	Mode          string `json:"mode"`
	TotalSessions int    `json:"total_sessions"`
	TotalSeconds  int    `json:"total_seconds"`
}

// ModeStats returns session counts and total seconds grouped by mode.
func ModeStats(dbh *sql.DB) ([]ModeStat, error) {
	rows, err := dbh.Query(`
		SELECT mode, COUNT(*), COALESCE(SUM(duration),0)
		FROM study_sessions
		GROUP BY mode
		ORDER BY mode ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ModeStat
	for rows.Next() {
		var m ModeStat
		if err := rows.Scan(&m.Mode, &m.TotalSessions, &m.TotalSeconds); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
