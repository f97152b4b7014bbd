package db

import (
	"database/sql"
	"time"
)

// LibraryRoot is a saved local directory or file the library browser
// may serve from.
type LibraryRoot struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Type      string    `json:"type"` // FOLDER or FILE
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

func ListLibraryRoots(dbh *sql.DB) ([]LibraryRoot, error) {
	rows, err := dbh.Query(`SELECT id, name, path, type, category, created_at FROM library_paths`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LibraryRoot
	for rows.Next() {
		var r LibraryRoot
		var created string
		if err := rows.Scan(&r.ID, &r.Name, &r.Path, &r.Type, &r.Category, &created); err != nil {
			return nil, err
		}
		if ts, err := time.Parse(time.RFC3339, created); err == nil {
			r.CreatedAt = ts
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func AddLibraryRoot(dbh *sql.DB, name, path, typ, category string) (LibraryRoot, error) {
	res, err := dbh.Exec(
		`INSERT INTO library_paths (name, path, type, category) VALUES (?, ?, ?, ?)`,
		name, path, typ, category,
	)
	if err != nil {
		return LibraryRoot{}, err
	}
	id, _ := res.LastInsertId()
	return LibraryRoot{ID: id, Name: name, Path: path, Type: typ, Category: category, CreatedAt: time.Now()}, nil
}
