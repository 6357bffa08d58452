package department

type Department struct {
	ID             int64   `json:"departmentId"`
	DepartmentName string  `json:"departmentName"`
	Description    *string `json:"description,omitempty"`
	ManagerID      *int64  `json:"managerId"`
}

// DepartmentWithManager carries the full name of the department head.
type DepartmentWithManager struct {
	ID              int64   `json:"departmentId"`
	DepartmentName  string  `json:"departmentName"`
	ManagerID       *int64  `json:"managerId"`
	ManagerFullName *string `json:"managerFullName"`
}
