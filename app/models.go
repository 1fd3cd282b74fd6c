package main

// Task mirrors the API payload for a board card.
type Task struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"dueDate"`
	ProjectID   *string `json:"projectId"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// User mirrors the API payload for the authenticated account.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Board columns in display order.
var boardColumns = []struct {
	Status string
	Label  string
}{
	{"todo", "To do"},
	{"in_progress", "In progress"},
	{"done", "Done"},
}
