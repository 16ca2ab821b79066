package domain

// NotificationKind selects the toast style a notification is rendered with.
type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
)

// Notification is one user-facing toast message. Exactly one is emitted
// per failed upstream call; screens add their own success notifications.
type Notification struct {
	Kind    NotificationKind `json:"kind"`
	Message string           `json:"message"`
}
