package tasks

import (
	"context"

	"github.com/google/uuid"

	"github.com/user/auratask-go/apperror"
	"github.com/user/auratask-go/suggest"
)

// Service implements the task business rules on top of the store.
type Service struct {
	repo Repository
}

// NewService creates a new task Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the owner's tasks, most recent first.
func (s *Service) List(ctx context.Context, ownerID string) ([]Task, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Create validates the request and inserts a new task. The owner is always
// the authenticated requester; a task can never be created on someone
// else's behalf.
func (s *Service) Create(ctx context.Context, ownerID string, req CreateTaskRequest) (*Task, error) {
	if req.Title == "" {
		return nil, apperror.NewValidationError("title is required", nil)
	}

	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.Valid() {
		return nil, apperror.NewValidationError("priority must be one of Low, Medium, High", nil)
	}

	task := &Task{
		ID:          uuid.NewString(),
		UserID:      ownerID,
		Title:       req.Title,
		Description: req.Description,
		Remarks:     req.Remarks,
		Priority:    priority,
		Completed:   false,
	}
	return s.repo.Create(ctx, task)
}

// Update applies a partial patch to the task matching both id and owner.
// A task owned by someone else is indistinguishable from one that does not
// exist: both yield NotFound.
func (s *Service) Update(ctx context.Context, id, ownerID string, req UpdateTaskRequest) (*Task, error) {
	if req.isEmpty() {
		return nil, apperror.NewValidationError("no fields provided for update", nil)
	}
	if req.Title != nil && *req.Title == "" {
		return nil, apperror.NewValidationError("title cannot be empty", nil)
	}
	if req.Priority != nil && !req.Priority.Valid() {
		return nil, apperror.NewValidationError("priority must be one of Low, Medium, High", nil)
	}
	return s.repo.Update(ctx, id, ownerID, req)
}

// Delete removes the owner's task with the given id. It succeeds whether
// or not such a task existed.
func (s *Service) Delete(ctx context.Context, id, ownerID string) error {
	return s.repo.Delete(ctx, id, ownerID)
}

// Insights runs the suggestion heuristic over the owner's current task
// list. The heuristic itself is pure; this is just List plus a projection.
func (s *Service) Insights(ctx context.Context, ownerID string) (*suggest.Insight, error) {
	tasks, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	views := make([]suggest.TaskView, len(tasks))
	for i, t := range tasks {
		views[i] = suggest.TaskView{
			ID:        t.ID,
			Title:     t.Title,
			Priority:  string(t.Priority),
			Completed: t.Completed,
		}
	}
	insight := suggest.Analyze(views)
	return &insight, nil
}
