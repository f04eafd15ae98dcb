// Package store holds the todo records. The default backend is an
// in-memory list scoped to the process; a PostgreSQL backend can be
// selected through configuration.
package store

import (
	"errors"

	"github.com/frontlab/todo-api/models"
)

// ErrNotFound is returned by Get when no record has the requested id.
var ErrNotFound = errors.New("todo not found")

// TodoStore is the storage contract shared by all backends. GetAll returns
// records in insertion order. Delete is idempotent.
type TodoStore interface {
	Add(todo models.Todo) (models.Todo, error)
	Get(id string) (models.Todo, error)
	GetAll() ([]models.Todo, error)
	Set(id string, todo models.Todo) error
	Delete(id string) error
}
