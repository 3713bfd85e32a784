package model

import "time"

// TaskStatus is the progress state of a task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

// TaskStatuses lists every valid task status.
var TaskStatuses = []string{
	string(TaskPending),
	string(TaskInProgress),
	string(TaskCompleted),
}

// Valid reports whether s is a known task status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted:
		return true
	}
	return false
}

// TaskPriority ranks a task within its project.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// TaskPriorities lists every valid task priority.
var TaskPriorities = []string{
	string(PriorityLow),
	string(PriorityMedium),
	string(PriorityHigh),
}

// Valid reports whether p is a known task priority.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task belongs to a project and is owned through it.
type Task struct {
	ID          int64        `json:"id"`
	ProjectID   int64        `json:"project_id"`
	Title       string       `json:"title"`
	Description *string      `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// TaskFilter narrows a task listing. Zero values mean "no filter".
type TaskFilter struct {
	Search   string
	Status   TaskStatus
	Priority TaskPriority
}

// TaskUpdate carries the fields supplied to a partial update.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *TaskStatus
	Priority    *TaskPriority
}

// Empty reports whether no field was supplied.
func (u TaskUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Status == nil && u.Priority == nil
}

// TaskList is the response body for a task listing.
type TaskList struct {
	Data []Task `json:"data"`
}
