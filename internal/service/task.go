package service

import (
	"context"
	"errors"

	"github.com/taskboard/taskboard-go/internal/clock"
	"github.com/taskboard/taskboard-go/internal/model"
	"github.com/taskboard/taskboard-go/internal/repository"
)

// ErrTaskNotFound is returned for missing tasks and for tasks addressed
// through a project they do not belong to.
var ErrTaskNotFound = errors.New("task not found")

// TaskService handles task business logic. Every operation first checks
// that the project in the path belongs to the caller.
type TaskService struct {
	projects ProjectStore
	tasks    TaskStore
	clock    clock.Clock
}

// NewTaskService creates a new TaskService.
func NewTaskService(projects ProjectStore, tasks TaskStore, clk clock.Clock) *TaskService {
	return &TaskService{projects: projects, tasks: tasks, clock: clk}
}

// List returns every task of the project matching the query, newest first.
func (s *TaskService) List(ctx context.Context, ownerID, projectID int64, q model.ListTasksQuery) (model.TaskList, error) {
	if err := s.requireProject(ctx, ownerID, projectID); err != nil {
		return model.TaskList{}, err
	}

	tasks, err := s.tasks.List(ctx, projectID, q.Filter())
	if err != nil {
		return model.TaskList{}, err
	}
	return model.TaskList{Data: tasks}, nil
}

// Get returns one task of the caller's project.
func (s *TaskService) Get(ctx context.Context, ownerID, projectID, taskID int64) (*model.Task, error) {
	if err := s.requireProject(ctx, ownerID, projectID); err != nil {
		return nil, err
	}
	return s.get(ctx, projectID, taskID)
}

// Create adds a task to the caller's project and returns the stored row.
func (s *TaskService) Create(ctx context.Context, ownerID, projectID int64, req model.CreateTaskRequest) (*model.Task, error) {
	if err := s.requireProject(ctx, ownerID, projectID); err != nil {
		return nil, err
	}

	status, priority := model.TaskPending, model.PriorityMedium
	if req.Status != nil {
		status = model.TaskStatus(*req.Status)
	}
	if req.Priority != nil {
		priority = model.TaskPriority(*req.Priority)
	}

	now := storeTime(s.clock.Now())
	t := &model.Task{
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}

	return s.get(ctx, projectID, t.ID)
}

// Update applies a partial update. With no fields supplied the task is
// returned unchanged.
func (s *TaskService) Update(ctx context.Context, ownerID, projectID, taskID int64, req model.UpdateTaskRequest) (*model.Task, error) {
	if err := s.requireProject(ctx, ownerID, projectID); err != nil {
		return nil, err
	}

	existing, err := s.get(ctx, projectID, taskID)
	if err != nil {
		return nil, err
	}

	update := req.Update()
	if update.Empty() {
		return existing, nil
	}

	if err := s.tasks.Update(ctx, projectID, taskID, update, storeTime(s.clock.Now())); err != nil {
		return nil, err
	}

	return s.get(ctx, projectID, taskID)
}

// Delete removes one task of the caller's project.
func (s *TaskService) Delete(ctx context.Context, ownerID, projectID, taskID int64) error {
	if err := s.requireProject(ctx, ownerID, projectID); err != nil {
		return err
	}

	err := s.tasks.Delete(ctx, projectID, taskID)
	if errors.Is(err, repository.ErrTaskNotFound) {
		return ErrTaskNotFound
	}
	return err
}

func (s *TaskService) requireProject(ctx context.Context, ownerID, projectID int64) error {
	ok, err := s.projects.Exists(ctx, projectID, ownerID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrProjectNotFound
	}
	return nil
}

func (s *TaskService) get(ctx context.Context, projectID, taskID int64) (*model.Task, error) {
	t, err := s.tasks.Get(ctx, projectID, taskID)
	if errors.Is(err, repository.ErrTaskNotFound) {
		return nil, ErrTaskNotFound
	}
	return t, err
}
