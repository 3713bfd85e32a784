package handler

import (
	"net/http"

	"github.com/taskboard/taskboard-go/internal/model"
	"github.com/taskboard/taskboard-go/internal/service"
)

// ProjectHandler handles HTTP requests for the caller's projects.
type ProjectHandler struct {
	service *service.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(svc *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: svc}
}

// List handles GET /projects requests.
func (h *ProjectHandler) List(r *http.Request) (int, any, error) {
	id, err := caller(r)
	if err != nil {
		return 0, nil, err
	}

	page, err := h.service.List(r.Context(), id.ID, *bound[model.ListProjectsQuery](r))
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, page, nil
}

// Get handles GET /projects/{id} requests.
func (h *ProjectHandler) Get(r *http.Request) (int, any, error) {
	id, projectID, err := projectTarget(r)
	if err != nil {
		return 0, nil, err
	}

	p, err := h.service.Get(r.Context(), projectID, id.ID)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, p, nil
}

// Create handles POST /projects requests.
func (h *ProjectHandler) Create(r *http.Request) (int, any, error) {
	id, err := caller(r)
	if err != nil {
		return 0, nil, err
	}

	p, err := h.service.Create(r.Context(), id.ID, *bound[model.CreateProjectRequest](r))
	if err != nil {
		return 0, nil, err
	}
	return http.StatusCreated, p, nil
}

// Update handles PUT /projects/{id} requests.
func (h *ProjectHandler) Update(r *http.Request) (int, any, error) {
	id, projectID, err := projectTarget(r)
	if err != nil {
		return 0, nil, err
	}

	p, err := h.service.Update(r.Context(), projectID, id.ID, *bound[model.UpdateProjectRequest](r))
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, p, nil
}

// Delete handles DELETE /projects/{id} requests.
func (h *ProjectHandler) Delete(r *http.Request) (int, any, error) {
	id, projectID, err := projectTarget(r)
	if err != nil {
		return 0, nil, err
	}

	if err := h.service.Delete(r.Context(), projectID, id.ID); err != nil {
		return 0, nil, err
	}
	return http.StatusNoContent, nil, nil
}

func projectTarget(r *http.Request) (model.Identity, int64, error) {
	id, err := caller(r)
	if err != nil {
		return model.Identity{}, 0, err
	}
	projectID, err := pathID(r, "projectID", service.ErrProjectNotFound)
	return id, projectID, err
}
