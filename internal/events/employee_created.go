package events

import "time"

const EmployeeCreatedTopic = "hr.employee.lifecycle.v1"

// EmployeeCreatedEvent announces a new employee record. InitialSalary is
// zero when the create request carried no starting salary; consumers must
// treat that as "nothing to record".
type EmployeeCreatedEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id,omitempty"`
	EmployeeID    int64     `json:"employee_id"`
	FullName      string    `json:"full_name"`
	InitialSalary float64   `json:"initial_salary,omitempty"`
	Currency      string    `json:"currency,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
