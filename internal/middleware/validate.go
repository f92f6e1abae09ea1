package middleware

import (
	"encoding/json"
	"net/http"
	"todoApp/internal/logger"
	"todoApp/internal/models/todo"

	"go.uber.org/zap"
)

type queryCheck struct {
	param   string
	valid   func(string) bool
	message string
}

// порядок проверок определяет, какая ошибка вернётся первой
var todoQueryChecks = []queryCheck{
	{"priority", func(v string) bool { return todo.Priority(v).Valid() }, todo.MsgInvalidPriority},
	{"status", func(v string) bool { return todo.Status(v).Valid() }, todo.MsgInvalidStatus},
	{"category", func(v string) bool { return todo.Category(v).Valid() }, todo.MsgInvalidCategory},
	{"date", func(v string) bool {
		_, err := todo.ParseDueDate(v)
		return err == nil
	}, todo.MsgInvalidDueDate},
}

// ValidateTodoQuery отклоняет запрос с 400, если присутствующий параметр фильтра недопустим
func ValidateTodoQuery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		for _, check := range todoQueryChecks {
			if !q.Has(check.param) || check.valid(q.Get(check.param)) {
				continue
			}

			logger.Warn("HTTP: Неверный параметр запроса",
				zap.String("param", check.param),
				zap.String("value", q.Get(check.param)),
				zap.String("request_id", GetRequestID(r.Context())))

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": check.message})
			return
		}

		next.ServeHTTP(w, r)
	})
}
