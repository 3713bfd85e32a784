package model

import "time"

// ProjectStatus is the lifecycle state of a project. Any status may be
// changed to any other.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectArchived  ProjectStatus = "archived"
	ProjectCompleted ProjectStatus = "completed"
)

// ProjectStatuses lists every valid project status.
var ProjectStatuses = []string{
	string(ProjectActive),
	string(ProjectArchived),
	string(ProjectCompleted),
}

// Valid reports whether s is a known project status.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectActive, ProjectArchived, ProjectCompleted:
		return true
	}
	return false
}

// Project is a project owned by a single user.
type Project struct {
	ID          int64         `json:"id"`
	UserID      int64         `json:"user_id"`
	Name        string        `json:"name"`
	Description *string       `json:"description"`
	Status      ProjectStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// ProjectFilter narrows a project listing. Zero values mean "no filter".
type ProjectFilter struct {
	Search string
	Status ProjectStatus
}

// ProjectUpdate carries the fields supplied to a partial update.
// Nil fields are left untouched.
type ProjectUpdate struct {
	Name        *string
	Description *string
	Status      *ProjectStatus
}

// Empty reports whether no field was supplied.
func (u ProjectUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.Status == nil
}
