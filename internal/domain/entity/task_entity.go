package entity

import "time"

// DefaultTaskStatus is set on creation; afterwards status is free-form.
const DefaultTaskStatus = "pending"

// Task is owned by exactly one user. OwnerID never changes after creation.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserSummary is the public projection of a user: no credentials.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

type TaskWithOwner struct {
	Task
	Owner UserSummary `json:"owner"`
}
