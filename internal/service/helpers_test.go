package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/taskboard/taskboard-go/internal/clock"
	"github.com/taskboard/taskboard-go/internal/crypto"
	"github.com/taskboard/taskboard-go/internal/model"
	"github.com/taskboard/taskboard-go/internal/repository"
)

var baseTime = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	clock    *clock.FakeClock
	tokens   *crypto.TokenIssuer
	auth     *AuthService
	projects *ProjectService
	tasks    *TaskService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctx := context.Background()
	db, err := repository.NewDB(ctx, repository.DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDB() unexpected error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := repository.Migrate(ctx, db, repository.DriverSQLite); err != nil {
		t.Fatalf("Migrate() unexpected error: %v", err)
	}

	clk := clock.Fake(baseTime)
	tokens := crypto.NewTokenIssuer("test-secret", time.Hour, clk)
	projectRepo := repository.NewProjectRepository(db)

	return &testEnv{
		clock:    clk,
		tokens:   tokens,
		auth:     NewAuthService(repository.NewUserRepository(db), tokens, clk),
		projects: NewProjectService(projectRepo, clk),
		tasks:    NewTaskService(projectRepo, repository.NewTaskRepository(db), clk),
	}
}

func (e *testEnv) register(t *testing.T, email string) model.UserResponse {
	t.Helper()

	resp, err := e.auth.Register(context.Background(), model.RegisterRequest{
		Email:    email,
		Password: "password123",
		Name:     "Test User",
	})
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}
	return resp.User
}

func (e *testEnv) createProject(t *testing.T, ownerID int64, name string) *model.Project {
	t.Helper()

	p, err := e.projects.Create(context.Background(), ownerID, model.CreateProjectRequest{Name: name})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	return p
}

func (e *testEnv) createTask(t *testing.T, ownerID, projectID int64, title string) *model.Task {
	t.Helper()

	task, err := e.tasks.Create(context.Background(), ownerID, projectID, model.CreateTaskRequest{Title: title})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	return task
}

func strPtr(s string) *string { return &s }
