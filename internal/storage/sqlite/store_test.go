package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"taskdeck/internal/models"
)

// newTestStore creates an in-memory store with all migrations applied and
// closes it when the test completes.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(":memory:", nil)
	require.NoError(t, err, "creating test store")
	t.Cleanup(func() {
		require.NoError(t, s.Close(), "closing test store")
	})
	return s
}

func newTestUser(t *testing.T, s *Store, email string) models.User {
	t.Helper()

	u, err := s.CreateUser(context.Background(), models.User{
		Email:        email,
		PasswordHash: "x",
		Name:         "Test User",
	})
	require.NoError(t, err)
	return u
}

func strptr(s string) *string { return &s }

func TestTaskOwnerScoping(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := newTestUser(t, s, "alice@example.com")
	bob := newTestUser(t, s, "bob@example.com")

	task, err := s.CreateTask(ctx, models.Task{Title: "write report", Status: models.StatusTodo, OwnerID: alice.ID})
	require.NoError(t, err)

	_, err = s.GetTask(ctx, task.ID, bob.ID)
	require.ErrorIs(t, err, ErrNotFound, "foreign-owned task must read as not found")

	_, err = s.UpdateTask(ctx, models.Task{ID: task.ID, Title: "stolen", Status: models.StatusDone, OwnerID: bob.ID})
	require.ErrorIs(t, err, ErrNotFound)

	err = s.DeleteTask(ctx, task.ID, bob.ID)
	require.ErrorIs(t, err, ErrNotFound)

	got, err := s.GetTask(ctx, task.ID, alice.ID)
	require.NoError(t, err)
	require.Equal(t, "write report", got.Title)
}

func TestListTasksFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := newTestUser(t, s, "alice@example.com")
	bob := newTestUser(t, s, "bob@example.com")

	mk := func(owner, title, status string, priority *string) {
		_, err := s.CreateTask(ctx, models.Task{Title: title, Status: status, Priority: priority, OwnerID: owner})
		require.NoError(t, err)
	}
	mk(alice.ID, "a1", models.StatusDone, strptr(models.PriorityHigh))
	mk(alice.ID, "a2", models.StatusDone, strptr(models.PriorityLow))
	mk(alice.ID, "a3", models.StatusTodo, strptr(models.PriorityHigh))
	mk(bob.ID, "b1", models.StatusDone, strptr(models.PriorityHigh))

	tasks, err := s.ListTasks(ctx, TaskFilter{
		OwnerID:  alice.ID,
		Status:   strptr(models.StatusDone),
		Priority: strptr(models.PriorityHigh),
	})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, "a1", tasks[0].Title)
}

func TestListTasksSort(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := newTestUser(t, s, "alice@example.com")

	for _, title := range []string{"charlie", "alpha", "bravo"} {
		_, err := s.CreateTask(ctx, models.Task{Title: title, Status: models.StatusTodo, OwnerID: alice.ID})
		require.NoError(t, err)
	}

	tasks, err := s.ListTasks(ctx, TaskFilter{
		OwnerID: alice.ID,
		Sort:    SortSpec{Column: "title"},
	})
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	require.Equal(t, "alpha", tasks[0].Title)
	require.Equal(t, "charlie", tasks[2].Title)
}

func TestTaskDueDateRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := newTestUser(t, s, "alice@example.com")

	due, err := models.ParseDate("2025-03-01")
	require.NoError(t, err)

	task, err := s.CreateTask(ctx, models.Task{Title: "ship", Status: models.StatusTodo, DueDate: &due, OwnerID: alice.ID})
	require.NoError(t, err)

	got, err := s.GetTask(ctx, task.ID, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, got.DueDate)
	require.True(t, got.DueDate.Equal(due), "due date must survive the round trip, got %v", got.DueDate)
}

func TestProjectDeleteDetachesTasks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := newTestUser(t, s, "alice@example.com")

	project, err := s.CreateProject(ctx, models.Project{
		Name: "launch", Status: models.StatusTodo, Priority: models.PriorityMedium, OwnerID: alice.ID,
	})
	require.NoError(t, err)

	task, err := s.CreateTask(ctx, models.Task{
		Title: "prep", Status: models.StatusTodo, ProjectID: &project.ID, OwnerID: alice.ID,
	})
	require.NoError(t, err)

	require.NoError(t, s.DeleteProject(ctx, project.ID, alice.ID))

	got, err := s.GetTask(ctx, task.ID, alice.ID)
	require.NoError(t, err)
	require.Nil(t, got.ProjectID, "delete must clear project_id, not cascade to tasks")
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := newTestUser(t, s, "alice@example.com")

	sess, err := s.CreateSession(ctx, alice.ID, time.Hour)
	require.NoError(t, err)
	require.Len(t, sess.Token, 64)

	got, err := s.GetSession(ctx, sess.Token)
	require.NoError(t, err)
	require.Equal(t, alice.ID, got.UserID)

	require.NoError(t, s.DeleteSession(ctx, sess.Token))
	_, err = s.GetSession(ctx, sess.Token)
	require.ErrorIs(t, err, ErrNotFound)

	// Deleting again must stay idempotent.
	require.NoError(t, s.DeleteSession(ctx, sess.Token))
}

func TestSessionExpiry(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := newTestUser(t, s, "alice@example.com")

	sess, err := s.CreateSession(ctx, alice.ID, -time.Minute)
	require.NoError(t, err)

	_, err = s.GetSession(ctx, sess.Token)
	require.ErrorIs(t, err, ErrNotFound, "expired session must read as not found")
}

func TestUserEmailLowercased(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u, err := s.CreateUser(ctx, models.User{Email: " Alice@Example.COM ", PasswordHash: "x", Name: "Alice"})
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", u.Email)

	got, err := s.GetUserByEmail(ctx, "ALICE@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
}

func TestClientCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := newTestUser(t, s, "alice@example.com")

	start, _ := models.ParseDate("2025-01-01")
	end, _ := models.ParseDate("2025-06-30")

	client, err := s.CreateClient(ctx, models.Client{
		Name: "Acme", Type: models.ClientCompany, Value: 250000,
		StartDate: start, EndDate: &end, OwnerID: alice.ID,
	})
	require.NoError(t, err)

	client.Value = 300000
	client.EndDate = nil
	client, err = s.UpdateClient(ctx, client)
	require.NoError(t, err)

	got, err := s.GetClient(ctx, client.ID, alice.ID)
	require.NoError(t, err)
	require.EqualValues(t, 300000, got.Value)
	require.Nil(t, got.EndDate)

	require.NoError(t, s.DeleteClient(ctx, client.ID, alice.ID))
	_, err = s.GetClient(ctx, client.ID, alice.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
