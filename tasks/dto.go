package tasks

// CreateTaskRequest is the payload for creating a task. The owner is never
// part of the payload; it always comes from the authenticated request.
type CreateTaskRequest struct {
	Title       string   `json:"title" example:"Ship the quarterly report"`
	Description string   `json:"description" example:"Numbers from finance, narrative from me"`
	Remarks     string   `json:"remarks" example:"Blocked on the Q3 figures"`
	Priority    Priority `json:"priority" example:"High"`
}

// UpdateTaskRequest is a partial task: only the fields present in the JSON
// body are applied. Pointer fields distinguish "absent" from "zero value".
type UpdateTaskRequest struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Remarks     *string   `json:"remarks,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	Completed   *bool     `json:"completed,omitempty"`
}

// isEmpty reports whether the patch carries no fields at all.
func (r *UpdateTaskRequest) isEmpty() bool {
	return r.Title == nil && r.Description == nil && r.Remarks == nil &&
		r.Priority == nil && r.Completed == nil
}

// DeleteResponse acknowledges a delete. It is returned whether or not a
// matching task existed, making delete idempotent for the caller.
type DeleteResponse struct {
	Success bool `json:"success" example:"true"`
}
