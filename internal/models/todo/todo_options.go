package todo

type TodoOption func(*Todo)

// Patch is a partial update: nil fields keep the previous value.
type Patch struct {
	Todo     *string
	Priority *Priority
	Status   *Status
	Category *Category
	DueDate  *string
}

func WithTodo(text *string) TodoOption {
	if text == nil {
		return nil
	}
	return func(t *Todo) {
		t.Todo = *text
	}
}

func WithPriority(priority *Priority) TodoOption {
	if priority == nil {
		return nil
	}
	return func(t *Todo) {
		t.Priority = *priority
	}
}

func WithStatus(status *Status) TodoOption {
	if status == nil {
		return nil
	}
	return func(t *Todo) {
		t.Status = *status
	}
}

func WithCategory(category *Category) TodoOption {
	if category == nil {
		return nil
	}
	return func(t *Todo) {
		t.Category = *category
	}
}

func WithDueDate(dueDate *string) TodoOption {
	if dueDate == nil {
		return nil
	}
	return func(t *Todo) {
		t.DueDate = *dueDate
	}
}

func (p Patch) Options() []TodoOption {
	return []TodoOption{
		WithTodo(p.Todo),
		WithPriority(p.Priority),
		WithStatus(p.Status),
		WithCategory(p.Category),
		WithDueDate(p.DueDate),
	}
}

// Validate checks only the fields present in the patch. A valid due date is normalized in place.
func (p *Patch) Validate() error {
	if p.Priority != nil && !p.Priority.Valid() {
		return invalid("priority", MsgInvalidPriority)
	}
	if p.Status != nil && !p.Status.Valid() {
		return invalid("status", MsgInvalidStatus)
	}
	if p.Category != nil && !p.Category.Valid() {
		return invalid("category", MsgInvalidCategory)
	}
	if p.DueDate != nil {
		dueDate, err := ParseDueDate(*p.DueDate)
		if err != nil {
			return invalid("dueDate", MsgInvalidDueDate)
		}
		p.DueDate = &dueDate
	}
	return nil
}

const (
	FieldTodo     = "Todo"
	FieldPriority = "Priority"
	FieldStatus   = "Status"
	FieldCategory = "Category"
	FieldDueDate  = "Due Date"
)

// Diff returns the name of the first field that differs between prev and next,
// checked in the order todo, priority, status, category, due date.
func Diff(prev, next *Todo) string {
	switch {
	case prev.Todo != next.Todo:
		return FieldTodo
	case prev.Priority != next.Priority:
		return FieldPriority
	case prev.Status != next.Status:
		return FieldStatus
	case prev.Category != next.Category:
		return FieldCategory
	case prev.DueDate != next.DueDate:
		return FieldDueDate
	}
	return ""
}
