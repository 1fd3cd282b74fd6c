package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func createTask(t *testing.T, ts *testServer, cookie string, body map[string]any) map[string]any {
	t.Helper()

	w := ts.do(t, http.MethodPost, "/api/tasks", cookie, body)
	require.Equal(t, http.StatusCreated, w.Code, "create task failed: %s", w.Body.String())

	var payload struct {
		Task map[string]any `json:"task"`
	}
	decode(t, w, &payload)
	return payload.Task
}

func TestCreateTaskValidation(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.register(t, "alice@example.com")

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing title", map[string]any{}},
		{"whitespace title", map[string]any{"title": "   "}},
		{"bad status", map[string]any{"title": "x", "status": "archived"}},
		{"bad priority", map[string]any{"title": "x", "priority": "urgent"}},
		{"bad due date", map[string]any{"title": "x", "dueDate": "next tuesday"}},
		{"foreign project", map[string]any{"title": "x", "projectId": "11111111-1111-1111-1111-111111111111"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(t, http.MethodPost, "/api/tasks", cookie, tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestTaskDueDateRoundTrip(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.register(t, "alice@example.com")

	task := createTask(t, ts, cookie, map[string]any{"title": "ship it", "dueDate": "2025-03-01"})

	w := ts.do(t, http.MethodGet, "/api/tasks/"+task["id"].(string), cookie, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Task struct {
			DueDate string `json:"dueDate"`
		} `json:"task"`
	}
	decode(t, w, &payload)
	require.Equal(t, "2025-03-01T00:00:00Z", payload.Task.DueDate)
}

func TestTaskOwnershipHiddenAs404(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.register(t, "alice@example.com")
	bob := ts.register(t, "bob@example.com")

	task := createTask(t, ts, alice, map[string]any{"title": "secret"})
	id := task["id"].(string)

	for _, method := range []string{http.MethodGet, http.MethodPatch, http.MethodDelete} {
		var body map[string]any
		if method == http.MethodPatch {
			body = map[string]any{"title": "stolen"}
		}
		w := ts.do(t, method, "/api/tasks/"+id, bob, body)
		require.Equal(t, http.StatusNotFound, w.Code, "%s must 404, not 403", method)
	}
}

func TestTaskListFilters(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.register(t, "alice@example.com")
	bob := ts.register(t, "bob@example.com")

	createTask(t, ts, alice, map[string]any{"title": "a1", "status": "done", "priority": "high"})
	createTask(t, ts, alice, map[string]any{"title": "a2", "status": "done", "priority": "low"})
	createTask(t, ts, alice, map[string]any{"title": "a3", "status": "todo", "priority": "high"})
	createTask(t, ts, bob, map[string]any{"title": "b1", "status": "done", "priority": "high"})

	w := ts.do(t, http.MethodGet, "/api/tasks?status=done&priority=high", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Tasks []struct {
			Title string `json:"title"`
		} `json:"tasks"`
	}
	decode(t, w, &payload)
	require.Len(t, payload.Tasks, 1)
	require.Equal(t, "a1", payload.Tasks[0].Title)
}

func TestTaskListRejectsBadFilters(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.register(t, "alice@example.com")

	for _, path := range []string{
		"/api/tasks?status=archived",
		"/api/tasks?priority=urgent",
		"/api/tasks?sortBy=password_hash",
		"/api/tasks?sortDir=sideways",
	} {
		w := ts.do(t, http.MethodGet, path, cookie, nil)
		require.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestTaskPatchSemantics(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.register(t, "alice@example.com")

	task := createTask(t, ts, cookie, map[string]any{
		"title": "original", "priority": "high", "dueDate": "2025-03-01",
	})
	id := task["id"].(string)

	// Only the status changes; other fields stay put.
	w := ts.do(t, http.MethodPatch, "/api/tasks/"+id, cookie, map[string]any{"status": "in_progress"})
	require.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Task struct {
			Title    string  `json:"title"`
			Status   string  `json:"status"`
			Priority *string `json:"priority"`
			DueDate  *string `json:"dueDate"`
		} `json:"task"`
	}
	decode(t, w, &payload)
	require.Equal(t, "original", payload.Task.Title)
	require.Equal(t, "in_progress", payload.Task.Status)
	require.NotNil(t, payload.Task.Priority)

	// An explicit null clears a nullable field.
	w = ts.do(t, http.MethodPatch, "/api/tasks/"+id, cookie, map[string]any{"priority": nil, "dueDate": nil})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &payload)
	require.Nil(t, payload.Task.Priority)
	require.Nil(t, payload.Task.DueDate)

	// Patch re-validates with the create rules.
	w = ts.do(t, http.MethodPatch, "/api/tasks/"+id, cookie, map[string]any{"title": "  "})
	require.Equal(t, http.StatusBadRequest, w.Code)
	w = ts.do(t, http.MethodPatch, "/api/tasks/"+id, cookie, map[string]any{"status": "archived"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaskAttachToProject(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.register(t, "alice@example.com")

	w := ts.do(t, http.MethodPost, "/api/projects", cookie, map[string]any{"name": "launch"})
	require.Equal(t, http.StatusCreated, w.Code)
	var projPayload struct {
		Project struct {
			ID string `json:"id"`
		} `json:"project"`
	}
	decode(t, w, &projPayload)

	task := createTask(t, ts, cookie, map[string]any{"title": "prep", "projectId": projPayload.Project.ID})
	require.Equal(t, projPayload.Project.ID, task["projectId"].(string))

	// Detach with an explicit null.
	w = ts.do(t, http.MethodPatch, "/api/tasks/"+task["id"].(string), cookie, map[string]any{"projectId": nil})
	require.Equal(t, http.StatusOK, w.Code)
	var payload struct {
		Task struct {
			ProjectID *string `json:"projectId"`
		} `json:"task"`
	}
	decode(t, w, &payload)
	require.Nil(t, payload.Task.ProjectID)
}

func TestTaskDelete(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.register(t, "alice@example.com")

	task := createTask(t, ts, cookie, map[string]any{"title": "temp"})
	id := task["id"].(string)

	w := ts.do(t, http.MethodDelete, "/api/tasks/"+id, cookie, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodGet, "/api/tasks/"+id, cookie, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
