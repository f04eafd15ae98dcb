package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/frontlab/todo-api/models"
	"github.com/frontlab/todo-api/query"
	"github.com/frontlab/todo-api/store"
)

const defaultLimit = 10

// TodoHandler serves the todo CRUD and listing routes against an injected
// store.
type TodoHandler struct {
	store  store.TodoStore
	events *Broker
}

func NewTodoHandler(s store.TodoStore, events *Broker) *TodoHandler {
	return &TodoHandler{store: s, events: events}
}

// parseFilter reads the shared filter params. Unknown or unparseable values
// mean "no filter", never an error.
func parseFilter(c *fiber.Ctx) query.Filter {
	var f query.Filter
	switch c.Query("completed") {
	case "true":
		v := true
		f.Completed = &v
	case "false":
		v := false
		f.Completed = &v
	}
	if p := models.Priority(c.Query("priority")); p.Valid() {
		f.Priority = p
	}
	if raw := c.Query("dateGte"); raw != "" {
		if t, err := models.ParseDate(raw); err == nil {
			f.DateGte = &t
		}
	}
	if raw := c.Query("dateLte"); raw != "" {
		if t, err := models.ParseDate(raw); err == nil {
			f.DateLte = &t
		}
	}
	return f
}

func parseSort(c *fiber.Ctx) query.Sort {
	return query.Sort{
		Field: query.ParseSortField(c.Query("sort")),
		Order: query.ParseOrder(c.Query("order")),
	}
}

// intQuery parses a numeric query param, falling back to def on anything
// non-numeric.
func intQuery(c *fiber.Ctx, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// HandleGetTodos godoc
// @Summary List todos with filtering, sorting and page-number pagination
// @Tags Todos
// @Produce json
// @Param completed query string false "Filter by completion status (true/false)"
// @Param priority query string false "Filter by priority" Enums(LOW, MEDIUM, HIGH)
// @Param dateGte query string false "Inclusive lower date bound (RFC3339)"
// @Param dateLte query string false "Inclusive upper date bound (RFC3339)"
// @Param page query int false "1-based page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param sort query string false "Sort field" Enums(id, title, completed, date, priority)
// @Param order query string false "Sort order" Enums(asc, desc)
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /todos [get]
func (h *TodoHandler) HandleGetTodos(c *fiber.Ctx) error {
	todos, err := h.store.GetAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Server error"})
	}

	filtered := query.Apply(todos, parseFilter(c), parseSort(c))
	res := query.Paginate(filtered, query.Page{
		Number: intQuery(c, "page", 1),
		Limit:  intQuery(c, "limit", defaultLimit),
	})

	return c.Status(200).JSON(fiber.Map{
		"todos":       res.Todos,
		"totalTodos":  res.Total,
		"hasNextPage": res.HasNextPage,
		"nextPage":    res.NextPage,
	})
}

// HandleScrollTodos godoc
// @Summary List todos with cursor pagination for infinite scroll
// @Tags Todos
// @Produce json
// @Param completed query string false "Filter by completion status (true/false)"
// @Param sort query string false "Sort field" Enums(id, title, completed, date, priority)
// @Param order query string false "Sort order" Enums(asc, desc)
// @Param nextCursor query int false "Offset cursor" default(0)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} models.APIResponse
// @Failure 401 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /todos/scroll [get]
func (h *TodoHandler) HandleScrollTodos(c *fiber.Ctx) error {
	todos, err := h.store.GetAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Server error"})
	}

	filtered := query.Apply(todos, parseFilter(c), parseSort(c))
	res := query.Scroll(filtered, query.Cursor{
		Offset: intQuery(c, "nextCursor", 0),
		Limit:  intQuery(c, "limit", defaultLimit),
	})

	return c.Status(200).JSON(models.APIResponse{
		Success: true,
		Message: "Todos retrieved successfully",
		Data: fiber.Map{
			"todos":       res.Todos,
			"nextCursor":  res.NextCursor,
			"hasNextPage": res.HasNextPage,
		},
	})
}

// HandleGetOneTodo godoc
// @Summary Get a todo by ID
// @Tags Todos
// @Produce json
// @Param id path string true "Todo ID"
// @Success 200 {object} models.Todo
// @Failure 404 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /todos/{id} [get]
func (h *TodoHandler) HandleGetOneTodo(c *fiber.Ctx) error {
	todo, err := h.store.Get(c.Params("id"))
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "Todo not found"})
	} else if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Server error"})
	}
	return c.Status(200).JSON(todo)
}

// HandleCreateTodo godoc
// @Summary Create a new todo
// @Tags Todos
// @Accept json
// @Produce json
// @Param body body models.NewTodoRequest true "New todo"
// @Success 200 {object} models.APIResponse
// @Failure 400 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /todos [post]
func (h *TodoHandler) HandleCreateTodo(c *fiber.Ctx) error {
	req := new(models.NewTodoRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	if issues := req.Validate(); len(issues) > 0 {
		return validationError(c, issues)
	}

	inserted, err := h.store.Add(models.Todo{
		Title:     *req.Title,
		Completed: *req.Completed,
		Priority:  req.Priority,
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create todo"})
	}
	h.events.Publish("todo-created", inserted)

	return c.Status(200).JSON(models.APIResponse{
		Success: true,
		Message: "Todo created successfully",
		Data:    inserted,
	})
}

// HandleUpdateTodo godoc
// @Summary Update a todo by ID
// @Tags Todos
// @Accept json
// @Produce json
// @Param id path string true "Todo ID"
// @Param body body models.UpdateTodoRequest true "Replacement record"
// @Success 200 {object} models.Todo
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /todos/{id} [put]
func (h *TodoHandler) HandleUpdateTodo(c *fiber.Ctx) error {
	id := c.Params("id")

	req := new(models.UpdateTodoRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	if issues := req.Validate(); len(issues) > 0 {
		return validationError(c, issues)
	}

	// Kiểm tra tồn tại trước khi thay thế.
	if _, err := h.store.Get(id); errors.Is(err, store.ErrNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "Todo not found"})
	} else if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Server error"})
	}

	date, _ := models.ParseDate(req.Date)
	updated := models.Todo{
		ID:        id,
		Title:     *req.Title,
		Completed: *req.Completed,
		Date:      date,
		Priority:  req.Priority,
	}
	if err := h.store.Set(id, updated); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update todo"})
	}
	h.events.Publish("todo-updated", updated)

	return c.Status(200).JSON(updated)
}

// HandleDeleteTodo godoc
// @Summary Delete a todo by ID
// @Tags Todos
// @Produce json
// @Param id path string true "Todo ID"
// @Success 200 {object} models.Todo
// @Failure 404 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /todos/{id} [delete]
func (h *TodoHandler) HandleDeleteTodo(c *fiber.Ctx) error {
	id := c.Params("id")

	deleted, err := h.store.Get(id)
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "Todo not found"})
	} else if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Server error"})
	}

	if err := h.store.Delete(id); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete todo"})
	}
	h.events.Publish("todo-deleted", deleted)

	return c.Status(200).JSON(deleted)
}
