package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver cho database/sql

	"github.com/frontlab/todo-api/models"
	"github.com/frontlab/todo-api/utils"
)

// PostgresStore is the optional persistent backend. A pos sequence column
// preserves insertion order so GetAll matches the in-memory contract.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore kết nối PostgreSQL và tạo bảng nếu chưa tồn tại.
func NewPostgresStore(uri string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", uri)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("cannot connect to PostgreSQL: %w", err)
	}

	query := `
	CREATE TABLE IF NOT EXISTS todos (
		pos BIGSERIAL,
		id VARCHAR(50) PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		date TIMESTAMPTZ NOT NULL,
		priority VARCHAR(10) NOT NULL DEFAULT ''
	)`
	if _, err := db.Exec(query); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// Close đóng kết nối với PostgreSQL.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) Add(todo models.Todo) (models.Todo, error) {
	id, err := utils.GenerateRandomID()
	if err != nil {
		return models.Todo{}, err
	}
	todo.ID = id
	if todo.Date.IsZero() {
		todo.Date = time.Now().UTC()
	}

	_, err = s.db.Exec(
		"INSERT INTO todos (id, title, completed, date, priority) VALUES ($1, $2, $3, $4, $5)",
		todo.ID, todo.Title, todo.Completed, todo.Date, string(todo.Priority),
	)
	if err != nil {
		return models.Todo{}, err
	}
	return todo, nil
}

func (s *PostgresStore) Get(id string) (models.Todo, error) {
	var t models.Todo
	var priority string
	err := s.db.QueryRow(
		"SELECT id, title, completed, date, priority FROM todos WHERE id = $1", id,
	).Scan(&t.ID, &t.Title, &t.Completed, &t.Date, &priority)
	if err == sql.ErrNoRows {
		return models.Todo{}, ErrNotFound
	} else if err != nil {
		return models.Todo{}, err
	}
	t.Priority = models.Priority(priority)
	return t, nil
}

func (s *PostgresStore) GetAll() ([]models.Todo, error) {
	rows, err := s.db.Query("SELECT id, title, completed, date, priority FROM todos ORDER BY pos")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := []models.Todo{}
	for rows.Next() {
		var t models.Todo
		var priority string
		if err := rows.Scan(&t.ID, &t.Title, &t.Completed, &t.Date, &priority); err != nil {
			return nil, err
		}
		t.Priority = models.Priority(priority)
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func (s *PostgresStore) Set(id string, todo models.Todo) error {
	_, err := s.db.Exec(
		"UPDATE todos SET title=$1, completed=$2, date=$3, priority=$4 WHERE id=$5",
		todo.Title, todo.Completed, todo.Date, string(todo.Priority), id,
	)
	return err
}

func (s *PostgresStore) Delete(id string) error {
	_, err := s.db.Exec("DELETE FROM todos WHERE id = $1", id)
	return err
}
