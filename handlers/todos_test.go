package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/frontlab/todo-api/app"
	"github.com/frontlab/todo-api/config"
	"github.com/frontlab/todo-api/models"
	"github.com/frontlab/todo-api/store"
	"github.com/frontlab/todo-api/utils"
)

var testSecret = []byte("test-secret")

func testConfig(mode string) *config.Config {
	return &config.Config{
		AuthMode:      mode,
		PrivateAPIKey: "test-api-key-for-testing",
		JWTSecret:     testSecret,
		JWTExpiresIn:  time.Hour,
	}
}

func newTestApp() *fiber.App {
	return app.New(testConfig(config.AuthModeBearer), store.NewMemoryStore())
}

func testToken(t *testing.T) string {
	t.Helper()
	user := models.User{ID: "test-user-id-123", Email: "test@example.com", Name: "Test User"}
	token, err := utils.GenerateToken(user, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return token
}

func doJSON(t *testing.T, a *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.Test(req, 5000)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("%s %s: decode body: %v", method, path, err)
	}
	resp.Body.Close()
	return resp, decoded
}

func createTodo(t *testing.T, a *fiber.App, token, title string, completed bool) map[string]any {
	t.Helper()
	resp, body := doJSON(t, a, "POST", "/todos", token, fiber.Map{"title": title, "completed": completed})
	if resp.StatusCode != 200 {
		t.Fatalf("create %q: status %d, body %v", title, resp.StatusCode, body)
	}
	return body["data"].(map[string]any)
}

func listedIDs(body map[string]any) []string {
	var out []string
	for _, raw := range body["todos"].([]any) {
		out = append(out, raw.(map[string]any)["id"].(string))
	}
	return out
}

func TestCreateListDeleteRoundTrip(t *testing.T) {
	a := newTestApp()
	token := testToken(t)

	created := createTodo(t, a, token, "X", false)
	id, _ := created["id"].(string)
	if id == "" {
		t.Fatal("created todo has no id")
	}
	if created["date"] == "" || created["date"] == nil {
		t.Fatal("created todo has no date")
	}

	_, list := doJSON(t, a, "GET", "/todos", token, nil)
	found := false
	for _, got := range listedIDs(list) {
		if got == id {
			found = true
		}
	}
	if !found {
		t.Fatalf("created todo %s missing from listing", id)
	}

	resp, deleted := doJSON(t, a, "DELETE", "/todos/"+id, token, nil)
	if resp.StatusCode != 200 {
		t.Fatalf("delete: status %d", resp.StatusCode)
	}
	if deleted["id"] != id {
		t.Fatalf("delete should return the removed todo, got %v", deleted)
	}

	_, list = doJSON(t, a, "GET", "/todos", token, nil)
	for _, got := range listedIDs(list) {
		if got == id {
			t.Fatalf("todo %s still listed after delete", id)
		}
	}
}

func TestCreateValidation(t *testing.T) {
	a := newTestApp()
	token := testToken(t)

	resp, body := doJSON(t, a, "POST", "/todos", token, fiber.Map{"completed": true})
	if resp.StatusCode != 400 {
		t.Fatalf("missing title accepted with %d", resp.StatusCode)
	}
	if body["error"] != "Validation failed" {
		t.Fatalf("unexpected error body: %v", body)
	}
	detail := body["detail"].([]any)
	if len(detail) != 1 || detail[0].(map[string]any)["path"] != "title" {
		t.Fatalf("expected a single title issue, got %v", detail)
	}

	resp, _ = doJSON(t, a, "POST", "/todos", token, fiber.Map{"title": "no completed flag"})
	if resp.StatusCode != 400 {
		t.Fatalf("missing completed accepted with %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, a, "POST", "/todos", token, fiber.Map{"title": "x", "completed": false, "priority": "URGENT"})
	if resp.StatusCode != 400 {
		t.Fatalf("unknown priority accepted with %d", resp.StatusCode)
	}
}

func TestListPaginationMetadata(t *testing.T) {
	a := newTestApp()
	token := testToken(t)
	for i := 0; i < 15; i++ {
		createTodo(t, a, token, fmt.Sprintf("todo %02d", i), false)
	}

	_, first := doJSON(t, a, "GET", "/todos?page=1&limit=10", token, nil)
	if n := len(first["todos"].([]any)); n != 10 {
		t.Fatalf("page 1: got %d todos", n)
	}
	if first["totalTodos"].(float64) != 15 || first["hasNextPage"] != true || first["nextPage"].(float64) != 2 {
		t.Fatalf("page 1 metadata wrong: %v", first)
	}

	_, last := doJSON(t, a, "GET", "/todos?page=2&limit=10", token, nil)
	if n := len(last["todos"].([]any)); n != 5 {
		t.Fatalf("page 2: got %d todos", n)
	}
	if last["hasNextPage"] != false || last["nextPage"] != nil {
		t.Fatalf("final page metadata wrong: %v", last)
	}

	_, beyond := doJSON(t, a, "GET", "/todos?page=9&limit=10", token, nil)
	if n := len(beyond["todos"].([]any)); n != 0 {
		t.Fatalf("page beyond total: got %d todos", n)
	}
	if beyond["hasNextPage"] != false || beyond["nextPage"] != nil {
		t.Fatalf("beyond-total metadata wrong: %v", beyond)
	}

	// Non-numeric paging input falls back to defaults.
	_, fallback := doJSON(t, a, "GET", "/todos?page=abc&limit=xyz", token, nil)
	if n := len(fallback["todos"].([]any)); n != 10 {
		t.Fatalf("non-numeric params: got %d todos, want default limit 10", n)
	}

	_, zero := doJSON(t, a, "GET", "/todos?limit=0", token, nil)
	if n := len(zero["todos"].([]any)); n != 0 || zero["hasNextPage"] != false {
		t.Fatalf("limit=0 must yield empty page without next: %v", zero)
	}
}

func TestListFilterAndSort(t *testing.T) {
	a := newTestApp()
	token := testToken(t)
	createTodo(t, a, token, "banana", true)
	createTodo(t, a, token, "apple", false)
	createTodo(t, a, token, "cherry", true)

	_, done := doJSON(t, a, "GET", "/todos?completed=true", token, nil)
	if n := len(done["todos"].([]any)); n != 2 {
		t.Fatalf("completed=true: got %d todos", n)
	}
	for _, raw := range done["todos"].([]any) {
		if raw.(map[string]any)["completed"] != true {
			t.Fatalf("uncompleted todo leaked through filter")
		}
	}

	_, sorted := doJSON(t, a, "GET", "/todos?sort=title&order=desc", token, nil)
	titles := []string{}
	for _, raw := range sorted["todos"].([]any) {
		titles = append(titles, raw.(map[string]any)["title"].(string))
	}
	want := []string{"cherry", "banana", "apple"}
	for i := range want {
		if titles[i] != want[i] {
			t.Fatalf("sort=title desc: got %v", titles)
		}
	}
}

func TestScrollFollowsCursorsToTheEnd(t *testing.T) {
	a := newTestApp()
	token := testToken(t)
	for i := 0; i < 7; i++ {
		createTodo(t, a, token, fmt.Sprintf("todo %d", i), false)
	}

	var collected []string
	cursor := 0
	for {
		path := fmt.Sprintf("/todos/scroll?limit=3&nextCursor=%d", cursor)
		resp, body := doJSON(t, a, "GET", path, token, nil)
		if resp.StatusCode != 200 {
			t.Fatalf("scroll: status %d", resp.StatusCode)
		}
		if body["success"] != true || body["message"] != "Todos retrieved successfully" {
			t.Fatalf("scroll envelope wrong: %v", body)
		}
		data := body["data"].(map[string]any)
		for _, raw := range data["todos"].([]any) {
			collected = append(collected, raw.(map[string]any)["id"].(string))
		}
		if data["nextCursor"] == nil {
			if data["hasNextPage"] != false {
				t.Fatalf("null cursor with hasNextPage=true")
			}
			break
		}
		cursor = int(data["nextCursor"].(float64))
	}

	if len(collected) != 7 {
		t.Fatalf("scroll collected %d todos, want 7", len(collected))
	}
	seen := map[string]bool{}
	for _, id := range collected {
		if seen[id] {
			t.Fatalf("duplicate todo %s across scroll pages", id)
		}
		seen[id] = true
	}
}

func TestScrollEdgeCases(t *testing.T) {
	a := newTestApp()
	token := testToken(t)
	createTodo(t, a, token, "only one", false)

	_, body := doJSON(t, a, "GET", "/todos/scroll?nextCursor=999999", token, nil)
	data := body["data"].(map[string]any)
	if n := len(data["todos"].([]any)); n != 0 || data["hasNextPage"] != false || data["nextCursor"] != nil {
		t.Fatalf("cursor beyond total: %v", data)
	}

	_, body = doJSON(t, a, "GET", "/todos/scroll?limit=0", token, nil)
	data = body["data"].(map[string]any)
	if n := len(data["todos"].([]any)); n != 0 || data["hasNextPage"] != false {
		t.Fatalf("limit=0: %v", data)
	}
}

func TestGetOneTodo(t *testing.T) {
	a := newTestApp()
	token := testToken(t)
	created := createTodo(t, a, token, "look me up", false)
	id := created["id"].(string)

	resp, body := doJSON(t, a, "GET", "/todos/"+id, token, nil)
	if resp.StatusCode != 200 || body["title"] != "look me up" {
		t.Fatalf("get one: %d %v", resp.StatusCode, body)
	}

	resp, body = doJSON(t, a, "GET", "/todos/does-not-exist", token, nil)
	if resp.StatusCode != 404 || body["error"] != "Todo not found" {
		t.Fatalf("get missing: %d %v", resp.StatusCode, body)
	}
}

func TestUpdateTodo(t *testing.T) {
	a := newTestApp()
	token := testToken(t)
	created := createTodo(t, a, token, "old title", false)
	id := created["id"].(string)

	update := fiber.Map{
		"title":     "new title",
		"completed": true,
		"date":      "2026-02-01T00:00:00Z",
		"priority":  "HIGH",
	}
	resp, body := doJSON(t, a, "PUT", "/todos/"+id, token, update)
	if resp.StatusCode != 200 {
		t.Fatalf("update: status %d, body %v", resp.StatusCode, body)
	}
	if body["id"] != id || body["title"] != "new title" || body["completed"] != true || body["priority"] != "HIGH" {
		t.Fatalf("update response wrong: %v", body)
	}

	resp, body = doJSON(t, a, "PUT", "/todos/unknown-id", token, update)
	if resp.StatusCode != 404 || body["error"] != "Todo not found" {
		t.Fatalf("update missing: %d %v", resp.StatusCode, body)
	}

	bad := fiber.Map{"title": "x", "completed": true, "date": "not a date"}
	resp, _ = doJSON(t, a, "PUT", "/todos/"+id, token, bad)
	if resp.StatusCode != 400 {
		t.Fatalf("invalid date accepted with %d", resp.StatusCode)
	}
}

func TestDeleteMissingTodoIs404(t *testing.T) {
	a := newTestApp()
	token := testToken(t)

	resp, body := doJSON(t, a, "DELETE", "/todos/never-existed", token, nil)
	if resp.StatusCode != 404 || body["error"] != "Todo not found" {
		t.Fatalf("delete missing: %d %v", resp.StatusCode, body)
	}
}

func TestTodosRequireAuth(t *testing.T) {
	a := newTestApp()

	resp, _ := doJSON(t, a, "GET", "/todos", "", nil)
	if resp.StatusCode != 401 {
		t.Fatalf("unauthenticated list: status %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, a, "GET", "/todos/scroll", "", nil)
	if resp.StatusCode != 401 {
		t.Fatalf("unauthenticated scroll: status %d", resp.StatusCode)
	}
}

func TestAPIKeyDeployment(t *testing.T) {
	cfg := testConfig(config.AuthModeAPIKey)
	a := app.New(cfg, store.NewMemoryStore())

	req := httptest.NewRequest("GET", "/todos", nil)
	resp, err := a.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != 401 {
		t.Fatalf("missing api-key: status %d", resp.StatusCode)
	}

	req = httptest.NewRequest("GET", "/todos", nil)
	req.Header.Set("api-key", cfg.PrivateAPIKey)
	resp, err = a.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatalf("valid api-key rejected: status %d", resp.StatusCode)
	}
}
