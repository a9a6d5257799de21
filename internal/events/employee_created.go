package events

import "time"

const EmployeeCreatedTopic = "dayflow.employee.lifecycle.v1"

type EmployeeCreatedEvent struct {
	EventType  string    `json:"event_type"`
	EmployeeID string    `json:"employee_id"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	OccurredAt time.Time `json:"occurred_at"`
}
