package leave

type CreateLeaveRequest struct {
	// EmployeeID is optional: HR/admin may submit on behalf of an employee.
	EmployeeID string `json:"employee_id" binding:"omitempty,uuid"`
	Category   string `json:"category" binding:"required,oneof=annual sick emergency familyCare parental"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	Reason     string `json:"reason"`
}

type UpdateStatusRequest struct {
	Status          string  `json:"status" binding:"required,oneof=approved rejected cancelled"`
	RejectionReason *string `json:"rejection_reason"`
}

type LeaveResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	Category        string  `json:"category"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	Duration        int     `json:"duration"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	CreatedBy       string  `json:"created_by"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}
