// Package seed recreates the demo account and its sample projects.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taskboard/taskboard-go/internal/model"
	"github.com/taskboard/taskboard-go/internal/repository"
	"github.com/taskboard/taskboard-go/internal/service"
)

const (
	DemoEmail    = "demo@example.com"
	DemoPassword = "password123"
	DemoName     = "Demo User"
)

type demoTask struct {
	title, description, status, priority string
}

type demoProject struct {
	name, description, status string
	tasks                     []demoTask
}

var demoProjects = []demoProject{
	{
		name: "Website Redesign", description: "Rebuild company website with modern stack", status: "active",
		tasks: []demoTask{
			{"Design mockups", "Figma wireframes", "in_progress", "high"},
			{"Setup repo", "Git and CI", "completed", "medium"},
			{"Content audit", "List all pages", "pending", "low"},
		},
	},
	{
		name: "API v2", description: "REST API with OpenAPI docs", status: "active",
		tasks: []demoTask{
			{"Define endpoints", "OpenAPI spec", "completed", "high"},
			{"Auth middleware", "JWT validation", "in_progress", "high"},
			{"Pagination", "List endpoints", "pending", "medium"},
		},
	},
	{
		name: "Mobile App", description: "React Native app for customers", status: "archived",
		tasks: []demoTask{
			{"Navigation", "Bottom tabs", "pending", "medium"},
			{"Login screen", "Auth flow", "pending", "high"},
		},
	},
}

// Seeder writes the demo data through the regular services.
type Seeder struct {
	users    service.UserStore
	auth     *service.AuthService
	projects *service.ProjectService
	tasks    *service.TaskService
	log      *slog.Logger
}

// New creates a Seeder. users is used to find an existing demo account
// without knowing its current password.
func New(users service.UserStore, auth *service.AuthService, projects *service.ProjectService, tasks *service.TaskService, log *slog.Logger) *Seeder {
	return &Seeder{users: users, auth: auth, projects: projects, tasks: tasks, log: log}
}

// Run ensures the demo user exists, deletes its projects and recreates the
// sample set. It returns the demo user's id.
func (s *Seeder) Run(ctx context.Context) (int64, error) {
	userID, err := s.demoUser(ctx)
	if err != nil {
		return 0, err
	}

	removed, err := s.clearProjects(ctx, userID)
	if err != nil {
		return 0, err
	}

	for _, dp := range demoProjects {
		p, err := s.projects.Create(ctx, userID, model.CreateProjectRequest{
			Name:        dp.name,
			Description: &dp.description,
			Status:      &dp.status,
		})
		if err != nil {
			return 0, fmt.Errorf("creating project %q: %w", dp.name, err)
		}

		for _, dt := range dp.tasks {
			if _, err := s.tasks.Create(ctx, userID, p.ID, model.CreateTaskRequest{
				Title:       dt.title,
				Description: &dt.description,
				Status:      &dt.status,
				Priority:    &dt.priority,
			}); err != nil {
				return 0, fmt.Errorf("creating task %q: %w", dt.title, err)
			}
		}
	}

	s.log.Info("seed complete", "email", DemoEmail, "removed_projects", removed, "projects", len(demoProjects))
	return userID, nil
}

func (s *Seeder) demoUser(ctx context.Context) (int64, error) {
	user, err := s.users.GetByEmail(ctx, DemoEmail)
	if err == nil {
		return user.ID, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return 0, fmt.Errorf("looking up demo user: %w", err)
	}

	resp, err := s.auth.Register(ctx, model.RegisterRequest{Email: DemoEmail, Password: DemoPassword, Name: DemoName})
	if err != nil {
		return 0, fmt.Errorf("creating demo user: %w", err)
	}
	return resp.User.ID, nil
}

func (s *Seeder) clearProjects(ctx context.Context, userID int64) (int, error) {
	removed := 0
	for {
		page, err := s.projects.List(ctx, userID, model.ListProjectsQuery{Page: 1, Limit: model.MaxLimit})
		if err != nil {
			return removed, fmt.Errorf("listing demo projects: %w", err)
		}
		if len(page.Data) == 0 {
			return removed, nil
		}
		for _, p := range page.Data {
			if err := s.projects.Delete(ctx, p.ID, userID); err != nil {
				return removed, fmt.Errorf("deleting project %d: %w", p.ID, err)
			}
			removed++
		}
	}
}
