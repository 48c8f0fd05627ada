package model

import "time"

// Task represents a to-do item owned by exactly one user.
type Task struct {
	ID        string
	OwnerID   string
	Text      string
	Completed bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TaskPatch carries the fields of a partial update. Nil means "keep the stored value".
type TaskPatch struct {
	Text      *string
	Completed *bool
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return p.Text == nil && p.Completed == nil
}

// CreateTaskRequest represents a POST /api/tasks body.
type CreateTaskRequest struct {
	Text string `json:"text"`
}

// UpdateTaskRequest represents a PUT /api/tasks/{id} body.
// Pointers distinguish an omitted field from an explicit zero value.
type UpdateTaskRequest struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

// TaskResponse is the stable JSON shape of a task.
type TaskResponse struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DeleteCompletedResponse reports how many completed tasks were removed.
type DeleteCompletedResponse struct {
	Count int64 `json:"count"`
}

// ToResponse converts a stored task to its API shape.
func (t *Task) ToResponse() TaskResponse {
	return TaskResponse{
		ID:        t.ID,
		Text:      t.Text,
		Completed: t.Completed,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
