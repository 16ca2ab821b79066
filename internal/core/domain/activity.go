package domain

import "time"

// ActivityLog records one change applied to a task, as reported by the
// external API's audit trail. Admin-only on the navigation side.
type ActivityLog struct {
	ID               int64      `json:"id"`
	Task             *Task      `json:"task,omitempty"`
	PreviousAssignee *User      `json:"previous_assignee,omitempty"`
	PreviousStatus   TaskStatus `json:"previous_status,omitempty"`
	PreviousDueDate  *time.Time `json:"previous_due_date,omitempty"`
	UpdatedAt        time.Time  `json:"updated_at"`
	UpdatedBy        *User      `json:"updated_by,omitempty"`
}
