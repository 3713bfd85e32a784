package service

import (
	"context"
	"errors"

	"github.com/taskboard/taskboard-go/internal/clock"
	"github.com/taskboard/taskboard-go/internal/model"
	"github.com/taskboard/taskboard-go/internal/repository"
)

// ErrProjectNotFound is returned both for missing projects and for projects
// owned by someone else.
var ErrProjectNotFound = errors.New("project not found")

// ProjectService handles project business logic.
type ProjectService struct {
	repo  ProjectStore
	clock clock.Clock
}

// NewProjectService creates a new ProjectService.
func NewProjectService(repo ProjectStore, clk clock.Clock) *ProjectService {
	return &ProjectService{repo: repo, clock: clk}
}

// List returns one page of the owner's projects. The total is counted with
// the same filter as the page.
func (s *ProjectService) List(ctx context.Context, ownerID int64, q model.ListProjectsQuery) (model.ProjectPage, error) {
	filter, page := q.Filter(), q.PageRequest()

	total, err := s.repo.Count(ctx, ownerID, filter)
	if err != nil {
		return model.ProjectPage{}, err
	}

	projects, err := s.repo.List(ctx, ownerID, filter, page)
	if err != nil {
		return model.ProjectPage{}, err
	}

	return model.ProjectPage{
		Data:       projects,
		Pagination: model.NewPagination(page, total),
	}, nil
}

// Get returns a project owned by ownerID.
func (s *ProjectService) Get(ctx context.Context, id, ownerID int64) (*model.Project, error) {
	p, err := s.repo.Get(ctx, id, ownerID)
	if errors.Is(err, repository.ErrProjectNotFound) {
		return nil, ErrProjectNotFound
	}
	return p, err
}

// Create adds a project for ownerID and returns the stored row.
func (s *ProjectService) Create(ctx context.Context, ownerID int64, req model.CreateProjectRequest) (*model.Project, error) {
	status := model.ProjectActive
	if req.Status != nil {
		status = model.ProjectStatus(*req.Status)
	}

	now := storeTime(s.clock.Now())
	p := &model.Project{
		UserID:      ownerID,
		Name:        req.Name,
		Description: req.Description,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	return s.Get(ctx, p.ID, ownerID)
}

// Update applies a partial update. With no fields supplied the project is
// returned unchanged.
func (s *ProjectService) Update(ctx context.Context, id, ownerID int64, req model.UpdateProjectRequest) (*model.Project, error) {
	existing, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	update := req.Update()
	if update.Empty() {
		return existing, nil
	}

	if err := s.repo.Update(ctx, id, ownerID, update, storeTime(s.clock.Now())); err != nil {
		return nil, err
	}

	return s.Get(ctx, id, ownerID)
}

// Delete removes a project and its tasks.
func (s *ProjectService) Delete(ctx context.Context, id, ownerID int64) error {
	err := s.repo.Delete(ctx, id, ownerID)
	if errors.Is(err, repository.ErrProjectNotFound) {
		return ErrProjectNotFound
	}
	return err
}
