package employee

import "time"

const dateLayout = "2006-01-02"

type CreateEmployeeRequest struct {
	FirstName     string   `json:"first_name" binding:"required"`
	LastName      string   `json:"last_name"`
	Phone         string   `json:"phone"`
	Gender        string   `json:"gender"`
	BirthDate     string   `json:"birth_date" binding:"required"`
	HireDate      string   `json:"hire_date"`
	Position      string   `json:"position"`
	DepartmentID  int64    `json:"department_id" binding:"required"`
	ImagePath     string   `json:"image_path"`
	Status        string   `json:"status"`
	InitialSalary *float64 `json:"initial_salary"`
	Currency      string   `json:"currency"`
}

type UpdateEmployeeRequest struct {
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone"`
	Gender       string `json:"gender"`
	BirthDate    string `json:"birth_date" binding:"required"`
	HireDate     string `json:"hire_date"`
	Position     string `json:"position"`
	DepartmentID int64  `json:"department_id" binding:"required"`
	ImagePath    string `json:"image_path"`
	Status       string `json:"status"`
}

// EmployeeResponse is the flat projection returned to callers.
type EmployeeResponse struct {
	ID             int64  `json:"id"`
	FullName       string `json:"fullName"`
	Phone          string `json:"phone"`
	Gender         string `json:"gender"`
	BirthDate      string `json:"birthDate"`
	HireDate       string `json:"hireDate"`
	Position       string `json:"position"`
	DepartmentName string `json:"departmentName"`
	Status         string `json:"status"`
	ImagePath      string `json:"imagePath"`
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func mapToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:             e.ID,
		FullName:       e.FullName(),
		Phone:          e.Phone,
		Gender:         string(e.Gender),
		BirthDate:      formatDate(e.BirthDate),
		HireDate:       formatDate(e.HireDate),
		Position:       e.Position,
		DepartmentName: e.DepartmentName(),
		Status:         string(e.Status),
		ImagePath:      e.ImagePath,
	}
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		res[i] = mapToResponse(e)
	}
	return res
}
