package domain

import "time"

// Project is a display record owned by the external API.
type Project struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Owner       *User     `json:"owner,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	TasksCount  int       `json:"tasks_count"`
}

// ProjectInput is the payload for creating or updating a project.
type ProjectInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
