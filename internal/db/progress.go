package db

import (
	"database/sql"
	"errors"
)

// SyllabusProgress returns the completion map keyed by topic id.
func SyllabusProgress(dbh *sql.DB) (map[string]bool, error) {
	rows, err := dbh.Query(`SELECT topic_id, is_completed FROM syllabus_progress`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var id string
		var done bool
		if err := rows.Scan(&id, &done); err != nil {
			return nil, err
		}
		out[id] = done
	}
	return out, rows.Err()
}

// ToggleSyllabusTopic flips a topic's completion, creating the row as
// completed on first touch. Returns the new state.
func ToggleSyllabusTopic(dbh *sql.DB, topicID string) (bool, error) {
	var done bool
	err := dbh.QueryRow(`SELECT is_completed FROM syllabus_progress WHERE topic_id = ?`, topicID).Scan(&done)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = dbh.Exec(`INSERT INTO syllabus_progress (topic_id, is_completed) VALUES (?, 1)`, topicID)
		return true, err
	case err != nil:
		return false, err
	}
	_, err = dbh.Exec(`
		UPDATE syllabus_progress
		SET is_completed = ?, updated_at = strftime('%Y-%m-%dT%H:%M:%SZ','now')
		WHERE topic_id = ?
	`, !done, topicID)
	return !done, err
}

type PYQProgress struct {
	ID        int64  `json:"id"`
	TopicName string `json:"topic_name"`
	Year      string `json:"year"`
	IsSolved  bool   `json:"is_solved"`
}

func ListPYQProgress(dbh *sql.DB) ([]PYQProgress, error) {
	rows, err := dbh.Query(`SELECT id, topic_name, year, is_solved FROM topic_pyq_progress`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PYQProgress
	for rows.Next() {
		var p PYQProgress
		if err := rows.Scan(&p.ID, &p.TopicName, &p.Year, &p.IsSolved); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// TogglePYQ flips the solved flag for one topic/year pair.
func TogglePYQ(dbh *sql.DB, topicName, year string) (bool, error) {
	var id int64
	var solved bool
	err := dbh.QueryRow(
		`SELECT id, is_solved FROM topic_pyq_progress WHERE topic_name = ? AND year = ?`,
		topicName, year,
	).Scan(&id, &solved)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = dbh.Exec(`INSERT INTO topic_pyq_progress (topic_name, year, is_solved) VALUES (?, ?, 1)`, topicName, year)
		return true, err
	case err != nil:
		return false, err
	}
	_, err = dbh.Exec(`
		UPDATE topic_pyq_progress
		SET is_solved = ?, updated_at = strftime('%Y-%m-%dT%H:%M:%SZ','now')
		WHERE id = ?
	`, !solved, id)
	return !solved, err
}

type PaperProgress struct {
	ID       int64  `json:"id"`
	Year     int    `json:"year"`
	Stream   string `json:"stream"`
	IsSolved bool   `json:"is_solved"`
}

func ListPaperProgress(dbh *sql.DB) ([]PaperProgress, error) {
	rows, err := dbh.Query(`SELECT id, year, stream, is_solved FROM paper_progress ORDER BY year DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PaperProgress
	for rows.Next() {
		var p PaperProgress
		if err := rows.Scan(&p.ID, &p.Year, &p.Stream, &p.IsSolved); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// TogglePaper flips the solved flag for one year/stream paper.
func TogglePaper(dbh *sql.DB, year int, stream string) (bool, error) {
	var id int64
	var solved bool
	err := dbh.QueryRow(
		`SELECT id, is_solved FROM paper_progress WHERE year = ? AND stream = ?`,
		year, stream,
	).Scan(&id, &solved)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = dbh.Exec(`INSERT INTO paper_progress (year, stream, is_solved) VALUES (?, ?, 1)`, year, stream)
		return true, err
	case err != nil:
		return false, err
	}
	_, err = dbh.Exec(`UPDATE paper_progress SET is_solved = ? WHERE id = ?`, !solved, id)
	return !solved, err
}
