package sqlite

// SortSpec is a validated sort column/direction pair. Columns are mapped from
// their JSON names to SQL columns by the per-resource allow-lists below;
// callers never pass raw SQL.
type SortSpec struct {
	Column string
	Desc   bool
}

// ProjectFilter narrows project listings. OwnerID is always required.
type ProjectFilter struct {
	OwnerID  string
	Status   *string
	Priority *string
	Sort     SortSpec
}

// TaskFilter narrows task listings. OwnerID is always required.
type TaskFilter struct {
	OwnerID   string
	Status    *string
	Priority  *string
	ProjectID *string
	Sort      SortSpec
}

// ClientFilter narrows client listings.
type ClientFilter struct {
	OwnerID string
	Type    *string
	Sort    SortSpec
}

// FileFilter narrows file listings.
type FileFilter struct {
	OwnerID   string
	ProjectID *string
	MimeType  *string
	Sort      SortSpec
}

// Sortable column maps, JSON name to SQL column, per resource.
var (
	ProjectSortColumns = map[string]string{
		"name":      "name",
		"status":    "status",
		"priority":  "priority",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	}
	TaskSortColumns = map[string]string{
		"title":     "title",
		"status":    "status",
		"priority":  "priority",
		"dueDate":   "due_date",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	}
	ClientSortColumns = map[string]string{
		"name":      "name",
		"type":      "type",
		"value":     "value",
		"startDate": "start_date",
		"createdAt": "created_at",
	}
	FileSortColumns = map[string]string{
		"filename":  "filename",
		"size":      "size",
		"mimeType":  "mime_type",
		"createdAt": "created_at",
	}
)

// orderClause renders the ORDER BY fragment for a validated sort, falling
// back to newest-first when no column was chosen.
func orderClause(s SortSpec) string {
	col := s.Column
	if col == "" {
		col = "created_at"
		s.Desc = true
	}
	dir := "ASC"
	if s.Desc {
		dir = "DESC"
	}
	return " ORDER BY " + col + " " + dir
}
