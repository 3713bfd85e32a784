package model

import (
	"net/url"

	"github.com/taskboard/taskboard-go/internal/validate"
)

const maxTitleLength = 255

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (r *RegisterRequest) Rules() validate.Rules {
	return validate.Rules{
		validate.String("email", &r.Email).Email("Valid email required").NormalizeEmail(),
		validate.String("password", &r.Password).MinLen(6, "Password must be at least 6 characters"),
		validate.String("name", &r.Name).Trim().NotEmpty("Name is required").MaxLen(maxTitleLength, "Name is too long"),
	}
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Rules() validate.Rules {
	return validate.Rules{
		validate.String("email", &r.Email).Email("Valid email required").NormalizeEmail(),
		validate.String("password", &r.Password).NotEmpty("Password is required"),
	}
}

// CreateProjectRequest is the body of POST /projects.
type CreateProjectRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

func (r *CreateProjectRequest) Rules() validate.Rules {
	return validate.Rules{
		validate.String("name", &r.Name).Trim().NotEmpty("Name is required").MaxLen(maxTitleLength, "Name is too long"),
		validate.Optional("description", &r.Description).Trim(),
		validate.Optional("status", &r.Status).OneOf(ProjectStatuses, "Invalid status"),
	}
}

// UpdateProjectRequest is the body of PUT /projects/{id}. Omitted fields are
// left unchanged; a null description clears it.
type UpdateProjectRequest struct {
	Name        *string        `json:"name"`
	Description NullableString `json:"description"`
	Status      *string        `json:"status"`
}

func (r *UpdateProjectRequest) Rules() validate.Rules {
	return validate.Rules{
		validate.Optional("name", &r.Name).Trim().NotEmpty("Name cannot be empty").MaxLen(maxTitleLength, "Name is too long"),
		validate.Optional("description", &r.Description.Value).Trim(),
		validate.Optional("status", &r.Status).OneOf(ProjectStatuses, "Invalid status"),
	}
}

// Update converts the request into a repository update.
func (r *UpdateProjectRequest) Update() ProjectUpdate {
	u := ProjectUpdate{Name: r.Name, Description: r.Description.clearable()}
	if r.Status != nil {
		s := ProjectStatus(*r.Status)
		u.Status = &s
	}
	return u
}

// ListProjectsQuery is the query string of GET /projects.
type ListProjectsQuery struct {
	Page   int
	Limit  int
	Search string
	Status string
}

func (q *ListProjectsQuery) Rules(values url.Values) validate.Rules {
	q.Page, q.Limit = DefaultPage, DefaultLimit
	q.Search, q.Status = values.Get("search"), values.Get("status")

	rules := validate.Rules{
		validate.Int("page", values.Get("page"), &q.Page, "page must be a positive integer").Min(1),
		validate.Int("limit", values.Get("limit"), &q.Limit, "limit must be between 1 and 100").Min(1).Max(MaxLimit),
		validate.String("search", &q.Search).Trim(),
	}
	if q.Status != "" {
		rules = append(rules, validate.String("status", &q.Status).OneOf(ProjectStatuses, "Invalid status"))
	}
	return rules
}

// Filter returns the listing filter selected by the query.
func (q *ListProjectsQuery) Filter() ProjectFilter {
	return ProjectFilter{Search: q.Search, Status: ProjectStatus(q.Status)}
}

// PageRequest returns the page selected by the query.
func (q *ListProjectsQuery) PageRequest() PageRequest {
	return PageRequest{Page: q.Page, Limit: q.Limit}
}

// CreateTaskRequest is the body of POST /projects/{projectID}/tasks.
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
}

func (r *CreateTaskRequest) Rules() validate.Rules {
	return validate.Rules{
		validate.String("title", &r.Title).Trim().NotEmpty("Title is required").MaxLen(maxTitleLength, "Title is too long"),
		validate.Optional("description", &r.Description).Trim(),
		validate.Optional("status", &r.Status).OneOf(TaskStatuses, "Invalid status"),
		validate.Optional("priority", &r.Priority).OneOf(TaskPriorities, "Invalid priority"),
	}
}

// UpdateTaskRequest is the body of PUT /projects/{projectID}/tasks/{id}.
type UpdateTaskRequest struct {
	Title       *string        `json:"title"`
	Description NullableString `json:"description"`
	Status      *string        `json:"status"`
	Priority    *string        `json:"priority"`
}

func (r *UpdateTaskRequest) Rules() validate.Rules {
	return validate.Rules{
		validate.Optional("title", &r.Title).Trim().NotEmpty("Title cannot be empty").MaxLen(maxTitleLength, "Title is too long"),
		validate.Optional("description", &r.Description.Value).Trim(),
		validate.Optional("status", &r.Status).OneOf(TaskStatuses, "Invalid status"),
		validate.Optional("priority", &r.Priority).OneOf(TaskPriorities, "Invalid priority"),
	}
}

// Update converts the request into a repository update.
func (r *UpdateTaskRequest) Update() TaskUpdate {
	u := TaskUpdate{Title: r.Title, Description: r.Description.clearable()}
	if r.Status != nil {
		s := TaskStatus(*r.Status)
		u.Status = &s
	}
	if r.Priority != nil {
		p := TaskPriority(*r.Priority)
		u.Priority = &p
	}
	return u
}

// ListTasksQuery is the query string of GET /projects/{projectID}/tasks.
type ListTasksQuery struct {
	Search   string
	Status   string
	Priority string
}

func (q *ListTasksQuery) Rules(values url.Values) validate.Rules {
	q.Search, q.Status, q.Priority = values.Get("search"), values.Get("status"), values.Get("priority")

	rules := validate.Rules{validate.String("search", &q.Search).Trim()}
	if q.Status != "" {
		rules = append(rules, validate.String("status", &q.Status).OneOf(TaskStatuses, "Invalid status"))
	}
	if q.Priority != "" {
		rules = append(rules, validate.String("priority", &q.Priority).OneOf(TaskPriorities, "Invalid priority"))
	}
	return rules
}

// Filter returns the listing filter selected by the query.
func (q *ListTasksQuery) Filter() TaskFilter {
	return TaskFilter{
		Search:   q.Search,
		Status:   TaskStatus(q.Status),
		Priority: TaskPriority(q.Priority),
	}
}
