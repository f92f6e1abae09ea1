package todo

import (
	"fmt"
	"time"
)

type Todo struct {
	ID       int64    `db:"id"`
	Todo     string   `db:"todo"`
	Priority Priority `db:"priority"`
	Status   Status   `db:"status"`
	Category Category `db:"category"`
	DueDate  string   `db:"due_date"`
}

type Priority string
type Status string
type Category string

const PriorityHigh Priority = "HIGH"
const PriorityMedium Priority = "MEDIUM"
const PriorityLow Priority = "LOW"

const StatusToDo Status = "TO DO"
const StatusInProgress Status = "IN PROGRESS"
const StatusDone Status = "DONE"

const CategoryWork Category = "WORK"
const CategoryHome Category = "HOME"
const CategoryLearning Category = "LEARNING"

const DueDateLayout = "2006-01-02"

// формат, который принимается на вход: допускает месяц и день без ведущего нуля
const dueDateInputLayout = "2006-1-2"

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

func (s Status) Valid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

func (c Category) Valid() bool {
	switch c {
	case CategoryWork, CategoryHome, CategoryLearning:
		return true
	}
	return false
}

// ParseDueDate checks that s is a real calendar date and returns it as yyyy-MM-dd.
// Out-of-range months and days are rejected rather than rolled over.
func ParseDueDate(s string) (string, error) {
	d, err := time.Parse(dueDateInputLayout, s)
	if err != nil {
		return "", fmt.Errorf("разбор даты %q: %w", s, err)
	}
	return d.Format(DueDateLayout), nil
}

const (
	MsgInvalidID       = "Invalid Todo Id"
	MsgInvalidPriority = "Invalid Todo Priority"
	MsgInvalidStatus   = "Invalid Todo Status"
	MsgInvalidCategory = "Invalid Todo Category"
	MsgInvalidDueDate  = "Invalid Due Date"
)

type InvalidFieldError struct {
	Field   string
	Message string
}

func (e *InvalidFieldError) Error() string {
	return e.Message
}

func invalid(field, message string) *InvalidFieldError {
	return &InvalidFieldError{Field: field, Message: message}
}

// Validate reports the first invalid field in the order id, priority, status, category, dueDate.
// A valid due date is normalized in place.
func (t *Todo) Validate() error {
	if t.ID == 0 {
		return invalid("id", MsgInvalidID)
	}
	if !t.Priority.Valid() {
		return invalid("priority", MsgInvalidPriority)
	}
	if !t.Status.Valid() {
		return invalid("status", MsgInvalidStatus)
	}
	if !t.Category.Valid() {
		return invalid("category", MsgInvalidCategory)
	}
	dueDate, err := ParseDueDate(t.DueDate)
	if err != nil {
		return invalid("dueDate", MsgInvalidDueDate)
	}
	t.DueDate = dueDate
	return nil
}
