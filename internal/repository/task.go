package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taskboard/taskboard-go/internal/model"
)

var ErrTaskNotFound = errors.New("task not found")

const taskColumns = `id, project_id, title, description, status, priority, created_at, updated_at`

// TaskRepository handles task persistence. Queries are scoped to a project;
// project ownership is checked by the caller.
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func taskFilter(projectID int64, f model.TaskFilter) (string, []any) {
	where := []string{"project_id = ?"}
	args := []any{projectID}

	if f.Search != "" {
		where = append(where, `(LOWER(title) LIKE ? ESCAPE '!' OR LOWER(COALESCE(description, '')) LIKE ? ESCAPE '!')`)
		term := likePattern(f.Search)
		args = append(args, term, term)
	}
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(f.Status))
	}
	if f.Priority != "" {
		where = append(where, "priority = ?")
		args = append(args, string(f.Priority))
	}

	return strings.Join(where, " AND "), args
}

// List returns every task of a project matching f, newest first.
func (r *TaskRepository) List(ctx context.Context, projectID int64, f model.TaskFilter) ([]model.Task, error) {
	where, args := taskFilter(projectID, f)
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE ` + where + ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}

	return tasks, rows.Err()
}

// Get retrieves a task by ID if it belongs to projectID.
func (r *TaskRepository) Get(ctx context.Context, projectID, id int64) (*model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ? AND project_id = ?`

	t, err := scanTask(r.db.QueryRowContext(ctx, query, id, projectID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return t, nil
}

// Create inserts a task and sets its generated ID.
func (r *TaskRepository) Create(ctx context.Context, t *model.Task) error {
	query := `INSERT INTO tasks (project_id, title, description, status, priority, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		t.ProjectID, t.Title, nullable(t.Description), string(t.Status), string(t.Priority), t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = id
	return nil
}

// Update writes the supplied fields of u plus updated_at.
func (r *TaskRepository) Update(ctx context.Context, projectID, id int64, u model.TaskUpdate, now time.Time) error {
	var sets []string
	var args []any

	if u.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *u.Title)
	}
	if u.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, nullable(u.Description))
	}
	if u.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*u.Status))
	}
	if u.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, string(*u.Priority))
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, now, id, projectID)

	query := `UPDATE tasks SET ` + strings.Join(sets, ", ") + ` WHERE id = ? AND project_id = ?`
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return nil
}

// Delete removes a task from a project.
func (r *TaskRepository) Delete(ctx context.Context, projectID, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ? AND project_id = ?`, id, projectID)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func scanTask(row rowScanner) (*model.Task, error) {
	t := &model.Task{}
	var status, priority string
	if err := row.Scan(
		&t.ID, &t.ProjectID, &t.Title, nullString(&t.Description), &status, &priority,
		timestamp{&t.CreatedAt}, timestamp{&t.UpdatedAt},
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	t.Status = model.TaskStatus(status)
	t.Priority = model.TaskPriority(priority)
	return t, nil
}
