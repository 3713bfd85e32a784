package handler

import (
	"net/http"

	"github.com/taskboard/taskboard-go/internal/model"
	"github.com/taskboard/taskboard-go/internal/service"
)

// TaskHandler handles HTTP requests for tasks nested under a project.
type TaskHandler struct {
	service *service.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{service: svc}
}

// List handles GET /projects/{projectID}/tasks requests.
func (h *TaskHandler) List(r *http.Request) (int, any, error) {
	id, projectID, err := taskProject(r)
	if err != nil {
		return 0, nil, err
	}

	tasks, err := h.service.List(r.Context(), id.ID, projectID, *bound[model.ListTasksQuery](r))
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, tasks, nil
}

// Get handles GET /projects/{projectID}/tasks/{id} requests.
func (h *TaskHandler) Get(r *http.Request) (int, any, error) {
	t, err := taskTarget(r)
	if err != nil {
		return 0, nil, err
	}

	task, err := h.service.Get(r.Context(), t.owner, t.projectID, t.taskID)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, task, nil
}

// Create handles POST /projects/{projectID}/tasks requests.
func (h *TaskHandler) Create(r *http.Request) (int, any, error) {
	id, projectID, err := taskProject(r)
	if err != nil {
		return 0, nil, err
	}

	task, err := h.service.Create(r.Context(), id.ID, projectID, *bound[model.CreateTaskRequest](r))
	if err != nil {
		return 0, nil, err
	}
	return http.StatusCreated, task, nil
}

// Update handles PUT /projects/{projectID}/tasks/{id} requests.
func (h *TaskHandler) Update(r *http.Request) (int, any, error) {
	t, err := taskTarget(r)
	if err != nil {
		return 0, nil, err
	}

	task, err := h.service.Update(r.Context(), t.owner, t.projectID, t.taskID, *bound[model.UpdateTaskRequest](r))
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, task, nil
}

// Delete handles DELETE /projects/{projectID}/tasks/{id} requests.
func (h *TaskHandler) Delete(r *http.Request) (int, any, error) {
	t, err := taskTarget(r)
	if err != nil {
		return 0, nil, err
	}

	if err := h.service.Delete(r.Context(), t.owner, t.projectID, t.taskID); err != nil {
		return 0, nil, err
	}
	return http.StatusNoContent, nil, nil
}

func taskProject(r *http.Request) (model.Identity, int64, error) {
	id, err := caller(r)
	if err != nil {
		return model.Identity{}, 0, err
	}
	projectID, err := pathID(r, "projectID", service.ErrProjectNotFound)
	return id, projectID, err
}

type taskRef struct {
	owner     int64
	projectID int64
	taskID    int64
}

// taskTarget resolves the path ids. An unparsable task id becomes 0, which
// matches no row, so the service still reports a foreign project first.
func taskTarget(r *http.Request) (taskRef, error) {
	id, projectID, err := taskProject(r)
	if err != nil {
		return taskRef{}, err
	}
	taskID, _ := pathID(r, "taskID", service.ErrTaskNotFound)
	return taskRef{owner: id.ID, projectID: projectID, taskID: taskID}, nil
}
