package store

import (
	"sync"
	"time"

	"github.com/frontlab/todo-api/models"
	"github.com/frontlab/todo-api/utils"
)

// MemoryStore giữ todos trong một slice, bảo vệ bằng mutex vì Fiber chạy
// handler song song.
type MemoryStore struct {
	mu    sync.Mutex
	todos []models.Todo
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Add assigns a fresh id, stamps the creation date when none was supplied,
// and appends the record.
func (s *MemoryStore) Add(todo models.Todo) (models.Todo, error) {
	id, err := utils.GenerateRandomID()
	if err != nil {
		return models.Todo{}, err
	}
	todo.ID = id
	if todo.Date.IsZero() {
		todo.Date = time.Now().UTC()
	}

	s.mu.Lock()
	s.todos = append(s.todos, todo)
	s.mu.Unlock()

	return todo, nil
}

func (s *MemoryStore) Get(id string) (models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.todos {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Todo{}, ErrNotFound
}

// GetAll returns a copy of the records in insertion order.
func (s *MemoryStore) GetAll() ([]models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Todo, len(s.todos))
	copy(out, s.todos)
	return out, nil
}

// Set replaces the record at id in place. Replacing an absent id is a
// no-op; the update handler pre-checks existence.
func (s *MemoryStore) Set(id string, todo models.Todo) error {
	todo.ID = id

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.todos {
		if t.ID == id {
			s.todos[i] = todo
			break
		}
	}
	return nil
}

// Delete removes the record with id. Absent ids are not an error.
func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.todos {
		if t.ID == id {
			s.todos = append(s.todos[:i], s.todos[i+1:]...)
			break
		}
	}
	return nil
}
