package service

import (
	"context"
	"time"

	"github.com/taskboard/taskboard-go/internal/model"
)

// UserStore persists user accounts.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// ProjectStore persists projects scoped to their owner.
type ProjectStore interface {
	Count(ctx context.Context, ownerID int64, f model.ProjectFilter) (int, error)
	List(ctx context.Context, ownerID int64, f model.ProjectFilter, page model.PageRequest) ([]model.Project, error)
	Get(ctx context.Context, id, ownerID int64) (*model.Project, error)
	Exists(ctx context.Context, id, ownerID int64) (bool, error)
	Create(ctx context.Context, p *model.Project) error
	Update(ctx context.Context, id, ownerID int64, u model.ProjectUpdate, now time.Time) error
	Delete(ctx context.Context, id, ownerID int64) error
}

// TaskStore persists tasks scoped to their project.
type TaskStore interface {
	List(ctx context.Context, projectID int64, f model.TaskFilter) ([]model.Task, error)
	Get(ctx context.Context, projectID, id int64) (*model.Task, error)
	Create(ctx context.Context, t *model.Task) error
	Update(ctx context.Context, projectID, id int64, u model.TaskUpdate, now time.Time) error
	Delete(ctx context.Context, projectID, id int64) error
}

// TokenIssuer issues bearer tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID int64, email string) (string, error)
}

// storeTime truncates to the second precision every supported store keeps.
func storeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}
