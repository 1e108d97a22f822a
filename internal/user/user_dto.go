package user

type CreateEmployeeRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	Name       string `json:"name" binding:"required,max=255"`
	EmployeeID string `json:"employee_id" binding:"omitempty,max=64"`
	Department string `json:"department" binding:"max=120"`
	Position   string `json:"position" binding:"max=120"`
	Role       string `json:"role" binding:"omitempty,oneof=employee admin"`
}

type UpdateEmployeeRequest struct {
	Name       string `json:"name" binding:"required,max=255"`
	EmployeeID string `json:"employee_id" binding:"required,max=64"`
	Department string `json:"department" binding:"max=120"`
	Position   string `json:"position" binding:"max=120"`
	Role       string `json:"role" binding:"omitempty,oneof=employee admin"`
}

type UserResponse struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	EmployeeID string `json:"employee_id"`
	Department string `json:"department"`
	Position   string `json:"position"`
	Role       string `json:"role"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}
