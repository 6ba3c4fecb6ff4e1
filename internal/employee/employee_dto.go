package employee

type CreateEmployeeRequest struct {
	// EmployeeNumber is generated when empty.
	EmployeeNumber string `json:"employee_number"`
	FullName       string `json:"full_name" binding:"required"`
	Gender         string `json:"gender" binding:"required,oneof=Male Female"`
	Department     string `json:"department" binding:"required"`
	Designation    string `json:"designation" binding:"required"`
	JoinDate       string `json:"join_date" binding:"required"`
}

type UpdateEmployeeRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	Department  string `json:"department" binding:"required"`
	Designation string `json:"designation" binding:"required"`
	Status      string `json:"status" binding:"required,oneof=Active Inactive 'On Leave'"`
}

type EmployeeResponse struct {
	ID             string `json:"id"`
	EmployeeNumber string `json:"employee_number"`
	FullName       string `json:"full_name"`
	Gender         string `json:"gender"`
	Department     string `json:"department"`
	Designation    string `json:"designation"`
	JoinDate       string `json:"join_date"`
	Status         string `json:"status"`
}
