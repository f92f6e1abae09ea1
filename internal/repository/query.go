package repository

import (
	"strings"
	"todoApp/internal/models/todo"
)

const TodoColumns = `id,
				COALESCE(todo, '') AS todo,
				COALESCE(priority, '') AS priority,
				COALESCE(status, '') AS status,
				COALESCE(category, '') AS category,
				COALESCE(due_date, '') AS due_date`

// BuildListQuery renders the selection as a SELECT with '?' placeholders.
// Column names come from todo.Selection and are never taken from the request.
func BuildListQuery(sel todo.Selection) (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT " + TodoColumns + "\n\t\t\t\tFROM todo\n\t\t\t\tWHERE todo LIKE ?")

	args := []any{"%" + sel.Search + "%"}
	for _, c := range sel.Conditions {
		sb.WriteString(" AND " + c.Column + " = ?")
		args = append(args, c.Value)
	}
	sb.WriteString(" ORDER BY id")

	return sb.String(), args
}
