// Package filter narrows entity collections by the dashboard's selection panel.
package filter

import (
	"slices"
	"strconv"
	"strings"
)

// Selection is the user's current choice of employees, departments and statuses.
// The zero value selects everything.
type Selection struct {
	EmployeeIDs   []int64  `json:"employee_ids,omitempty"`
	DepartmentIDs []int64  `json:"department_ids,omitempty"`
	Statuses      []string `json:"statuses,omitempty"`
}

// IsEmpty reports whether no dimension is selected.
func (s Selection) IsEmpty() bool {
	return len(s.EmployeeIDs) == 0 && len(s.DepartmentIDs) == 0 && len(s.Statuses) == 0
}

// Keys tells Apply how to read each dimension from T. A nil func means T has no such
// dimension and the selection for it does not apply. The bool result is false when the
// entity has no value for the dimension (e.g. an employee without a department).
type Keys[T any] struct {
	Employee   func(T) (int64, bool)
	Department func(T) (int64, bool)
	Status     func(T) string
}

// Apply returns the entities matching every non-empty, applicable dimension. With nothing
// applicable selected it returns items itself.
func Apply[T any](items []T, sel Selection, keys Keys[T]) []T {
	byEmployee := len(sel.EmployeeIDs) > 0 && keys.Employee != nil
	byDepartment := len(sel.DepartmentIDs) > 0 && keys.Department != nil
	byStatus := len(sel.Statuses) > 0 && keys.Status != nil
	if !byEmployee && !byDepartment && !byStatus {
		return items
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		if byEmployee && !matchID(keys.Employee, item, sel.EmployeeIDs) {
			continue
		}
		if byDepartment && !matchID(keys.Department, item, sel.DepartmentIDs) {
			continue
		}
		if byStatus && !slices.Contains(sel.Statuses, keys.Status(item)) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchID[T any](key func(T) (int64, bool), item T, selected []int64) bool {
	id, ok := key(item)
	return ok && slices.Contains(selected, id)
}

// ParseIDs reads a comma separated ID list such as "1,2,3". Blank entries are skipped.
func ParseIDs(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ParseList reads a comma separated string list.
func ParseList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
