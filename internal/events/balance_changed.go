package events

import "time"

const BalanceChangedTopic = "hr.leave.balance.v1"

// BalanceChangedEvent is published on every committed approval so dashboards
// can track live balances. NewBalance is the remaining days after the commit.
type BalanceChangedEvent struct {
	EventType  string    `json:"event_type"`
	EmployeeID string    `json:"employee_id"`
	Category   string    `json:"category"`
	NewBalance int       `json:"new_balance"`
	OccurredAt time.Time `json:"occurred_at"`
}
