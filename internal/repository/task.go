package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Navneet-kaur7/todo-app/internal/model"
)

var ErrTaskNotFound = errors.New("task not found")

const taskColumns = `id, user_id, text, completed, created_at, updated_at`

// TaskRepository handles task persistence. Every method is scoped by owner ID;
// a task that exists but belongs to someone else is reported as ErrTaskNotFound.
type TaskRepository struct {
	db *DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts a new task.
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	query := r.db.dialect.Rebind(`INSERT INTO tasks (` + taskColumns + `) VALUES (?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.OwnerID, task.Text, task.Completed, task.CreatedAt, task.UpdatedAt,
	)
	return err
}

// ListByOwner retrieves all tasks of a user, newest created first.
func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Task, error) {
	query := r.db.dialect.Rebind(`SELECT ` + taskColumns + `
		FROM tasks WHERE user_id = ? ORDER BY created_at DESC, id DESC`)

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var t model.Task
		if err := scanTask(rows, &t); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

// GetByID retrieves a single task of a user.
func (r *TaskRepository) GetByID(ctx context.Context, ownerID, taskID string) (*model.Task, error) {
	return getTask(ctx, r.db.DB, r.db.dialect, ownerID, taskID)
}

// Update applies patch to the task identified by taskID and owned by ownerID and
// returns the updated row. The update and the read back share one transaction.
func (r *TaskRepository) Update(ctx context.Context, ownerID, taskID string, patch model.TaskPatch, at time.Time) (*model.Task, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := r.db.dialect.Rebind(`UPDATE tasks
		SET text = COALESCE(?, text), completed = COALESCE(?, completed), updated_at = ?
		WHERE id = ? AND user_id = ?`)

	var (
		text      sql.NullString
		completed sql.NullBool
	)
	if patch.Text != nil {
		text = sql.NullString{String: *patch.Text, Valid: true}
	}
	if patch.Completed != nil {
		completed = sql.NullBool{Bool: *patch.Completed, Valid: true}
	}

	result, err := tx.ExecContext(ctx, query, text, completed, at, taskID, ownerID)
	if err != nil {
		return nil, err
	}
	if err := expectOneRow(result, ErrTaskNotFound); err != nil {
		return nil, err
	}

	task, err := getTask(ctx, tx, r.db.dialect, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return task, nil
}

// Delete removes a single task of a user.
func (r *TaskRepository) Delete(ctx context.Context, ownerID, taskID string) error {
	query := r.db.dialect.Rebind(`DELETE FROM tasks WHERE id = ? AND user_id = ?`)

	result, err := r.db.ExecContext(ctx, query, taskID, ownerID)
	if err != nil {
		return err
	}

	return expectOneRow(result, ErrTaskNotFound)
}

// DeleteCompleted removes every completed task of a user and returns how many were removed.
func (r *TaskRepository) DeleteCompleted(ctx context.Context, ownerID string) (int64, error) {
	query := r.db.dialect.Rebind(`DELETE FROM tasks WHERE user_id = ? AND completed = ?`)

	result, err := r.db.ExecContext(ctx, query, ownerID, true)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

// queryRower is satisfied by both *sql.DB and *sql.Tx.
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

func getTask(ctx context.Context, q queryRower, dialect Dialect, ownerID, taskID string) (*model.Task, error) {
	query := dialect.Rebind(`SELECT ` + taskColumns + ` FROM tasks WHERE id = ? AND user_id = ?`)

	task := &model.Task{}
	if err := scanTask(q.QueryRowContext(ctx, query, taskID, ownerID), task); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	return task, nil
}

func scanTask(s scanner, t *model.Task) error {
	if err := s.Scan(&t.ID, &t.OwnerID, &t.Text, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return err
	}
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	return nil
}
