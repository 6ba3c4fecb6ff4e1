package ledger

type BalanceResponse struct {
	EmployeeID string `json:"employee_id"`
	Category   string `json:"category"`
	Accrued    int    `json:"accrued"`
	Used       int    `json:"used"`
	Remaining  int    `json:"remaining"`
}

func mapToResponse(b Balance) BalanceResponse {
	return BalanceResponse{
		EmployeeID: b.EmployeeID.String(),
		Category:   b.Category,
		Accrued:    b.Accrued,
		Used:       b.Used,
		Remaining:  b.Remaining(),
	}
}

func mapToListResponse(balances []Balance) []BalanceResponse {
	resp := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = mapToResponse(b)
	}
	return resp
}
