package task

import (
	"slices"
	"strings"
)

// Map indexes tasks by ID.
type Map map[string]*Task

// NewMap builds a Map from a slice of tasks. Nil entries are skipped.
func NewMap(tasks []*Task) Map {
	m := make(Map, len(tasks))
	for _, t := range tasks {
		if t != nil {
			m[t.ID] = t
		}
	}
	return m
}

// Get returns the task with the given ID.
func (m Map) Get(id string) (*Task, bool) {
	t, ok := m[id]
	return t, ok && t != nil
}

// Children returns the direct children of a summary, ordered by start date.
func (m Map) Children(parentID string) []*Task {
	var children []*Task
	for _, t := range m {
		if t.ParentID == parentID {
			children = append(children, t)
		}
	}
	SortBySchedule(children)
	return children
}

// Successors returns the tasks that depend on id.
func (m Map) Successors(id string) []*Task {
	var result []*Task
	for _, t := range m {
		if t.DependsOn(id) {
			result = append(result, t)
		}
	}
	SortBySchedule(result)
	return result
}

// Descendants returns every task below id in the parent tree, breadth first.
func (m Map) Descendants(id string) []string {
	var ids []string
	seen := map[string]bool{id: true}
	queue := []string{id}
	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]
		for _, c := range m.Children(parent) {
			if seen[c.ID] {
				continue
			}
			seen[c.ID] = true
			ids = append(ids, c.ID)
			queue = append(queue, c.ID)
		}
	}
	return ids
}

// WithDescendants returns ids followed by the descendants of every summary
// among them, without duplicates. Unknown ids are dropped.
func (m Map) WithDescendants(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	var out []string
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, id := range ids {
		t, ok := m.Get(id)
		if !ok {
			continue
		}
		add(id)
		if t.IsSummary() {
			for _, d := range m.Descendants(id) {
				add(d)
			}
		}
	}
	return out
}

// SortBySchedule orders tasks by start date, then end date, then name.
func SortBySchedule(tasks []*Task) {
	slices.SortFunc(tasks, func(a, b *Task) int {
		if c := a.StartDate.Compare(b.StartDate); c != 0 {
			return c
		}
		if c := a.EndDate.Compare(b.EndDate); c != 0 {
			return c
		}
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

// Outline orders tasks the way a chart lists them: top-level tasks by
// schedule, each summary immediately followed by its descendants.
// Depth is returned per task ID for indentation.
func Outline(tasks []*Task) ([]*Task, map[string]int) {
	m := NewMap(tasks)
	ordered := make([]*Task, 0, len(tasks))
	depth := make(map[string]int, len(tasks))
	seen := make(map[string]bool, len(tasks))

	var walk func(parentID string, level int)
	walk = func(parentID string, level int) {
		for _, t := range m.Children(parentID) {
			if seen[t.ID] {
				continue
			}
			seen[t.ID] = true
			ordered = append(ordered, t)
			depth[t.ID] = level
			walk(t.ID, level+1)
		}
	}

	var roots []*Task
	for _, t := range m {
		if _, ok := m[t.ParentID]; t.ParentID == "" || !ok {
			roots = append(roots, t)
		}
	}
	SortBySchedule(roots)
	for _, r := range roots {
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		ordered = append(ordered, r)
		depth[r.ID] = 0
		walk(r.ID, 1)
	}

	// Parent cycles have no root; list them flat at the end.
	if len(ordered) < len(m) {
		var rest []*Task
		for _, t := range m {
			if !seen[t.ID] {
				rest = append(rest, t)
			}
		}
		SortBySchedule(rest)
		for _, t := range rest {
			ordered = append(ordered, t)
			depth[t.ID] = 0
		}
	}

	return ordered, depth
}
