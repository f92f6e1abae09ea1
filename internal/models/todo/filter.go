package todo

import "strings"

// Filter holds the list query parameters. A nil pointer means the parameter was
// not sent at all; an empty value still counts as present.
type Filter struct {
	Search   string
	Priority *Priority
	Status   *Status
	Category *Category
}

type Condition struct {
	Column string
	Value  string
}

type Selection struct {
	Name       string
	Search     string
	Conditions []Condition
}

type combination struct {
	name  string
	match func(Filter) bool
	build func(Filter) []Condition
}

func statusCond(f Filter) Condition   { return Condition{Column: "status", Value: string(*f.Status)} }
func priorityCond(f Filter) Condition { return Condition{Column: "priority", Value: string(*f.Priority)} }
func categoryCond(f Filter) Condition { return Condition{Column: "category", Value: string(*f.Category)} }

// порядок важен: применяется первая подходящая комбинация.
// category+status и category+priority недостижимы, но оставлены ради того же приоритета проверок.
var combinations = []combination{
	{
		name:  "priority_status",
		match: func(f Filter) bool { return f.Priority != nil && f.Status != nil },
		build: func(f Filter) []Condition { return []Condition{statusCond(f), priorityCond(f)} },
	},
	{
		name:  "priority",
		match: func(f Filter) bool { return f.Priority != nil },
		build: func(f Filter) []Condition { return []Condition{priorityCond(f)} },
	},
	{
		name:  "status",
		match: func(f Filter) bool { return f.Status != nil },
		build: func(f Filter) []Condition { return []Condition{statusCond(f)} },
	},
	{
		name:  "category_status",
		match: func(f Filter) bool { return f.Category != nil && f.Status != nil },
		build: func(f Filter) []Condition { return []Condition{statusCond(f), categoryCond(f)} },
	},
	{
		name:  "category",
		match: func(f Filter) bool { return f.Category != nil },
		build: func(f Filter) []Condition { return []Condition{categoryCond(f)} },
	},
	{
		name:  "category_priority",
		match: func(f Filter) bool { return f.Category != nil && f.Priority != nil },
		build: func(f Filter) []Condition { return []Condition{priorityCond(f), categoryCond(f)} },
	},
}

// Select picks the first filter combination that matches f.
func (f Filter) Select() Selection {
	for _, c := range combinations {
		if c.match(f) {
			return Selection{Name: c.name, Search: f.Search, Conditions: c.build(f)}
		}
	}
	return Selection{Name: "search", Search: f.Search}
}

// Matches applies the selection to a single todo the way the SQL stores do,
// except that the search is a plain substring match.
func (s Selection) Matches(t *Todo) bool {
	if !strings.Contains(t.Todo, s.Search) {
		return false
	}
	for _, c := range s.Conditions {
		if t.column(c.Column) != c.Value {
			return false
		}
	}
	return true
}

func (t *Todo) column(name string) string {
	switch name {
	case "priority":
		return string(t.Priority)
	case "status":
		return string(t.Status)
	case "category":
		return string(t.Category)
	}
	return ""
}
