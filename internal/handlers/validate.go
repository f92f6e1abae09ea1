package handlers

import (
	"mime"
	"net/http"
	"strconv"
	"todoApp/internal/models/todo"

	"github.com/go-chi/chi/v5"
)

// пустой Content-Type допускается, тело тогда читается как JSON
func checkContentType(r *http.Request, target string) bool {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return true
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return mediaType == target
}

func todoIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "todoId"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func filterFromQuery(r *http.Request) todo.Filter {
	q := r.URL.Query()
	filter := todo.Filter{Search: q.Get("search_q")}

	if q.Has("priority") {
		p := todo.Priority(q.Get("priority"))
		filter.Priority = &p
	}
	if q.Has("status") {
		s := todo.Status(q.Get("status"))
		filter.Status = &s
	}
	if q.Has("category") {
		c := todo.Category(q.Get("category"))
		filter.Category = &c
	}
	return filter
}
