package user

const timestampLayout = "2006-01-02 15:04:05"

type CreateUserRequest struct {
	Username   string `json:"username" binding:"required,min=3,max=50"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	Role       string `json:"role" binding:"required"`
	EmployeeID *int64 `json:"employee_id"`
	Status     string `json:"status"`
}

// UpdateUserRequest leaves the stored password untouched when the
// password field is blank.
type UpdateUserRequest struct {
	Username   string `json:"username" binding:"required,min=3,max=50"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"omitempty,min=6"`
	Role       string `json:"role" binding:"required"`
	EmployeeID *int64 `json:"employee_id"`
	Status     string `json:"status"`
}

type UserResponse struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	EmployeeID *int64 `json:"employeeId,omitempty"`
	Status     string `json:"status"`
	CreatedAt  string `json:"createdAt"`
}

func mapToResponse(u User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		Role:       u.RoleName(),
		EmployeeID: u.EmployeeID,
		Status:     string(u.Status),
		CreatedAt:  u.CreatedAt.Format(timestampLayout),
	}
}

func mapToListResponse(users []User) []UserResponse {
	res := make([]UserResponse, len(users))
	for i, u := range users {
		res[i] = mapToResponse(u)
	}
	return res
}
