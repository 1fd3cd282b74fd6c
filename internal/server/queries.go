package server

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"taskdeck/internal/storage/sqlite"
)

// parseSort reads sortBy/sortDir from the query string and validates them
// against the resource's allow-listed columns. Default is createdAt desc.
func parseSort(c *gin.Context, allowed map[string]string) (sqlite.SortSpec, error) {
	spec := sqlite.SortSpec{Column: "created_at", Desc: true}

	if by := c.Query("sortBy"); by != "" {
		col, ok := allowed[by]
		if !ok {
			return sqlite.SortSpec{}, fmt.Errorf("cannot sort by %q", by)
		}
		spec.Column = col
		spec.Desc = false
	}
	switch dir := c.Query("sortDir"); dir {
	case "":
	case "asc":
		spec.Desc = false
	case "desc":
		spec.Desc = true
	default:
		return sqlite.SortSpec{}, fmt.Errorf("sortDir must be asc or desc")
	}
	return spec, nil
}

// enumQuery reads an optional query filter and checks enum membership.
func enumQuery(c *gin.Context, name string, valid map[string]struct{}) (*string, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	if _, ok := valid[v]; !ok {
		return nil, fmt.Errorf("invalid %s %q", name, v)
	}
	return &v, nil
}

// optionalQuery reads an optional free-form query filter.
func optionalQuery(c *gin.Context, name string) *string {
	v := c.Query(name)
	if v == "" {
		return nil
	}
	return &v
}
