package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/taskboard/taskboard-go/internal/model"
)

var baseTime = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	ctx := context.Background()
	db, err := NewDB(ctx, DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDB() unexpected error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := Migrate(ctx, db, DriverSQLite); err != nil {
		t.Fatalf("Migrate() unexpected error: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *sql.DB, email string) *model.User {
	t.Helper()

	user := &model.User{Email: email, PasswordHash: "hash", Name: "Test", CreatedAt: baseTime}
	if err := NewUserRepository(db).Create(context.Background(), user); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	return user
}

func createTestProject(t *testing.T, db *sql.DB, ownerID int64, name string, at time.Time) *model.Project {
	t.Helper()

	p := &model.Project{UserID: ownerID, Name: name, Status: model.ProjectActive, CreatedAt: at, UpdatedAt: at}
	if err := NewProjectRepository(db).Create(context.Background(), p); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	return p
}

func strPtr(s string) *string { return &s }
