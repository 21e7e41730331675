package salary

const dateLayout = "2006-01-02"

type CreateSalaryRequest struct {
	EmployeeID  int64    `json:"employee_id" binding:"required"`
	Amount      float64  `json:"amount" binding:"required"`
	Currency    string   `json:"currency" binding:"required"`
	PaymentDate string   `json:"payment_date" binding:"required"`
	Bonus       *float64 `json:"bonus"`
}

type UpdateSalaryRequest struct {
	Amount      float64  `json:"amount" binding:"required"`
	Currency    string   `json:"currency" binding:"required"`
	PaymentDate string   `json:"payment_date" binding:"required"`
	Bonus       *float64 `json:"bonus"`
}

type SalaryResponse struct {
	ID           int64    `json:"id"`
	EmployeeID   int64    `json:"employeeId"`
	EmployeeName string   `json:"employeeName"`
	Amount       float64  `json:"amount"`
	Currency     string   `json:"currency"`
	PaymentDate  string   `json:"paymentDate"`
	Bonus        *float64 `json:"bonus,omitempty"`
	Total        float64  `json:"total"`
}

// MonthlyStat is one month's aggregate for the yearly stats report.
type MonthlyStat struct {
	Month   int     `json:"month"`
	Count   int64   `json:"count"`
	Total   float64 `json:"total"`
	Average float64 `json:"average"`
}

func mapToResponse(s Salary) SalaryResponse {
	return SalaryResponse{
		ID:           s.ID,
		EmployeeID:   s.EmployeeID,
		EmployeeName: s.EmployeeName(),
		Amount:       s.Amount,
		Currency:     s.Currency,
		PaymentDate:  s.PaymentDate.Format(dateLayout),
		Bonus:        s.Bonus,
		Total:        s.Total(),
	}
}

func mapToListResponse(salaries []Salary) []SalaryResponse {
	res := make([]SalaryResponse, len(salaries))
	for i, s := range salaries {
		res[i] = mapToResponse(s)
	}
	return res
}
