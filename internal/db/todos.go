package db

import (
	"database/sql"
	"time"
)

type Todo struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	IsDone    bool      `json:"is_done"`
	CreatedAt time.Time `json:"created_at"`
}

func ListTodos(dbh *sql.DB) ([]Todo, error) {
	rows, err := dbh.Query(`
		SELECT id, text, is_done, created_at
		FROM todos
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Todo
	for rows.Next() {
		var t Todo
		var created string
		if err := rows.Scan(&t.ID, &t.Text, &t.IsDone, &created); err != nil {
			return nil, err
		}
		if ts, err := time.Parse(time.RFC3339, created); err == nil {
			t.CreatedAt = ts
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func AddTodo(dbh *sql.DB, text string) (Todo, error) {
	res, err := dbh.Exec(`INSERT INTO todos (text) VALUES (?)`, text)
	if err != nil {
		return Todo{}, err
	}
	id, _ := res.LastInsertId()
	return Todo{ID: id, Text: text, IsDone: false, CreatedAt: time.Now()}, nil
}

func SetTodoDone(dbh *sql.DB, id int64, done bool) error {
	_, err := dbh.Exec(`UPDATE todos SET is_done = ? WHERE id = ?`, done, id)
	return err
}

func DeleteTodo(dbh *sql.DB, id int64) error {
	_, err := dbh.Exec(`DELETE FROM todos WHERE id = ?`, id)
	return err
}
