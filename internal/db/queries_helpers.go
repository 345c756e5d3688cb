package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// deadlineLayout is fixed width so stored deadlines sort chronologically as text.
const deadlineLayout = "2006-01-02T15:04:05.000000000Z07:00"

var allowedColumns = map[string]map[string]bool{
	"jobs":      {"name": true, "deadline": true, "status": true},
	"approvals": {"person": true, "request": true, "status": true, "job_id": true},
}

// updateRow is a generic helper for updating a row's fields.
func (d *DB) updateRow(table, id string, fields map[string]any) error {
	allowed, ok := allowedColumns[table]
	if !ok {
		return fmt.Errorf("unknown table: %s", table)
	}
	var setClauses []string
	var args []any
	for col, val := range fields {
		if !allowed[col] {
			return fmt.Errorf("disallowed column %q for table %s", col, table)
		}
		setClauses = append(setClauses, col+" = ?")
		args = append(args, val)
	}
	setClauses = append(setClauses, "updated_at = datetime('now')")
	args = append(args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", table, strings.Join(setClauses, ", "))
	res, err := d.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("updating %s %s: %w", table, id, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("%s %s: %w", table, id, ErrNotFound)
	}
	return nil
}

func prefixedID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

func formatDeadline(t time.Time) string {
	return t.UTC().Format(deadlineLayout)
}

func parseDeadline(s string) (time.Time, error) {
	t, err := time.Parse(deadlineLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing stored deadline %q: %w", s, err)
	}
	return t, nil
}

func nullStr(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
