package department

type CreateDepartmentRequest struct {
	Name      string `json:"name" binding:"required"`
	ManagerID *int   `json:"manager_id" binding:"omitempty,gte=0"`
}

type UpdateDepartmentRequest struct {
	Name      string `json:"name" binding:"required"`
	ManagerID *int   `json:"manager_id" binding:"omitempty,gte=0"`
}

type DepartmentResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ManagerID *int   `json:"managerId,omitempty"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// EmployeeCount pairs a department with how many employees it has.
type EmployeeCount struct {
	DepartmentID   int64  `json:"departmentId"`
	DepartmentName string `json:"departmentName"`
	Employees      int64  `json:"employees"`
}

// YearlyHireStat is one (department, year) hire count row.
type YearlyHireStat struct {
	DepartmentID   int64  `json:"departmentId"`
	DepartmentName string `json:"departmentName"`
	Year           int    `json:"year"`
	Hires          int64  `json:"hires"`
}

func mapToResponse(dept Department) DepartmentResponse {
	return DepartmentResponse{
		ID:        dept.ID,
		Name:      dept.Name,
		ManagerID: dept.ManagerID,
		CreatedAt: dept.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: dept.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

func mapToListResponse(depts []Department) []DepartmentResponse {
	res := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		res[i] = mapToResponse(d)
	}
	return res
}
