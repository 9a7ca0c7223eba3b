package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/auratask-go/apperror"
)

// Repository is the task store. Every mutation is scoped by both the task
// id and the owner id in a single statement, so ownership enforcement and
// the existence check are one atomic lookup; there is no separate
// permission check to race against.
type Repository interface {
	// ListByOwner returns the owner's tasks ordered by creation time,
	// most recent first.
	ListByOwner(ctx context.Context, ownerID string) ([]Task, error)
	// Create inserts a new task and fills in its CreatedAt.
	Create(ctx context.Context, task *Task) (*Task, error)
	// Update applies a partial patch to the task matching both id and
	// owner. When no row matches, a NotFound error is returned whether the
	// task is absent or owned by someone else.
	Update(ctx context.Context, id, ownerID string, patch UpdateTaskRequest) (*Task, error)
	// Delete removes the task matching both id and owner. Deleting a task
	// that does not match is not an error.
	Delete(ctx context.Context, id, ownerID string) error
}

// PostgresRepository implements Repository on a pgx pool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a PostgresRepository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const taskColumns = "id, user_id, title, description, remarks, priority, completed, created_at"

func scanTask(row pgx.Row, t *Task) error {
	return row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Remarks, &t.Priority, &t.Completed, &t.CreatedAt)
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]Task, error) {
	query := `SELECT ` + taskColumns + `
	          FROM tasks
	          WHERE user_id = $1
	          ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list tasks", err)
	}
	defer rows.Close()

	tasks := []Task{}
	for rows.Next() {
		var t Task
		if err := scanTask(rows, &t); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan task", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to read tasks", err)
	}
	return tasks, nil
}

func (r *PostgresRepository) Create(ctx context.Context, task *Task) (*Task, error) {
	query := `INSERT INTO tasks (id, user_id, title, description, remarks, priority, completed)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING created_at`
	err := r.db.QueryRow(ctx, query,
		task.ID, task.UserID, task.Title, task.Description, task.Remarks, task.Priority, task.Completed,
	).Scan(&task.CreatedAt)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to create task", err)
	}
	return task, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id, ownerID string, patch UpdateTaskRequest) (*Task, error) {
	var setClauses []string
	var args []interface{}
	argID := 1

	addClause := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	if patch.Title != nil {
		addClause("title", *patch.Title)
	}
	if patch.Description != nil {
		addClause("description", *patch.Description)
	}
	if patch.Remarks != nil {
		addClause("remarks", *patch.Remarks)
	}
	if patch.Priority != nil {
		addClause("priority", *patch.Priority)
	}
	if patch.Completed != nil {
		addClause("completed", *patch.Completed)
	}

	if len(setClauses) == 0 {
		// Nothing to change; an ownership-scoped read keeps the not-found
		// semantics identical to a real update.
		return r.getByIDAndOwner(ctx, id, ownerID)
	}

	args = append(args, id, ownerID)
	query := fmt.Sprintf(`UPDATE tasks
	          SET %s
	          WHERE id = $%d AND user_id = $%d
	          RETURNING `+taskColumns,
		strings.Join(setClauses, ", "), argID, argID+1)

	var task Task
	if err := scanTask(r.db.QueryRow(ctx, query, args...), &task); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("task not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to update task", err)
	}
	return &task, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, ownerID string) error {
	query := `DELETE FROM tasks WHERE id = $1 AND user_id = $2`
	if _, err := r.db.Exec(ctx, query, id, ownerID); err != nil {
		return apperror.NewDatabaseError("failed to delete task", err)
	}
	return nil
}

func (r *PostgresRepository) getByIDAndOwner(ctx context.Context, id, ownerID string) (*Task, error) {
	query := `SELECT ` + taskColumns + `
	          FROM tasks
	          WHERE id = $1 AND user_id = $2`
	var task Task
	if err := scanTask(r.db.QueryRow(ctx, query, id, ownerID), &task); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("task not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get task", err)
	}
	return &task, nil
}
