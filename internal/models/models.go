package models

import "time"

// User is an account that owns projects, tasks, clients and files.
// The password hash never leaves the server.
type User struct {
	ID              string     `json:"id" db:"id"`
	Email           string     `json:"email" db:"email"`
	PasswordHash    string     `json:"-" db:"password_hash"`
	Name            string     `json:"name" db:"name"`
	EmailVerified   bool       `json:"emailVerified" db:"email_verified"`
	EmailVerifiedAt *time.Time `json:"emailVerifiedAt" db:"email_verified_at"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at"`
}

// Session is a server-side login session referenced by an opaque cookie token.
type Session struct {
	Token     string    `db:"token"`
	UserID    string    `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}

// Project groups tasks and files and carries its own board status.
type Project struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description" db:"description"`
	Status      string    `json:"status" db:"status"`
	Priority    string    `json:"priority" db:"priority"`
	OwnerID     string    `json:"ownerId" db:"owner_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// Task is a single card on the Kanban board, optionally attached to a project.
type Task struct {
	ID          string     `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description *string    `json:"description" db:"description"`
	Status      string     `json:"status" db:"status"`
	Priority    *string    `json:"priority" db:"priority"`
	DueDate     *time.Time `json:"dueDate" db:"due_date"`
	OwnerID     string     `json:"ownerId" db:"owner_id"`
	ProjectID   *string    `json:"projectId" db:"project_id"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// Client is a person or company engagement with a monetary value in cents.
// EndDate, when set, must be strictly after StartDate.
type Client struct {
	ID        string     `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	Type      string     `json:"type" db:"type"`
	Value     int64      `json:"value" db:"value"`
	StartDate time.Time  `json:"startDate" db:"start_date"`
	EndDate   *time.Time `json:"endDate" db:"end_date"`
	OwnerID   string     `json:"ownerId" db:"owner_id"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
}

// StoredFile is the metadata row for an uploaded blob. Filename is the display
// name; StoredFilename is the object-store key.
type StoredFile struct {
	ID             string    `json:"id" db:"id"`
	Filename       string    `json:"filename" db:"filename"`
	StoredFilename string    `json:"storedFilename" db:"stored_filename"`
	MimeType       string    `json:"mimeType" db:"mime_type"`
	Size           int64     `json:"size" db:"size"`
	Description    *string   `json:"description" db:"description"`
	OwnerID        string    `json:"ownerId" db:"owner_id"`
	ProjectID      *string   `json:"projectId" db:"project_id"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

// Board statuses shared by projects and tasks.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

const (
	ClientPerson  = "person"
	ClientCompany = "company"
)

// ValidStatuses enumerates the statuses supported by the board columns.
var ValidStatuses = map[string]struct{}{
	StatusTodo:       {},
	StatusInProgress: {},
	StatusDone:       {},
}

// ValidPriorities enumerates the accepted priority values.
var ValidPriorities = map[string]struct{}{
	PriorityLow:    {},
	PriorityMedium: {},
	PriorityHigh:   {},
}

// ValidClientTypes enumerates the accepted client kinds.
var ValidClientTypes = map[string]struct{}{
	ClientPerson:  {},
	ClientCompany: {},
}
