package sqlite

import (
	"fmt"
	"strings"
	"time"
)

// parseTime reads a fetched_at style column written with time.RFC3339.
func parseTime(value, column string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad %s %q: %w", column, value, err)
	}
	return t, nil
}

// appendPagination adds LIMIT/OFFSET for positive values. SQLite rejects
// OFFSET without LIMIT, so an offset alone is paired with LIMIT -1.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit <= 0 && offset <= 0 {
		return
	}
	if limit <= 0 {
		limit = -1
	}
	query.WriteString(" LIMIT ?")
	*args = append(*args, limit)
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
