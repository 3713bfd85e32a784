package model

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageRequest selects one page of a listing. Page is 1-based.
type PageRequest struct {
	Page  int
	Limit int
}

// Offset returns the number of rows skipped before this page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pagination describes where a page sits in the full result set.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPagination computes the page metadata for total matching rows.
func NewPagination(req PageRequest, total int) Pagination {
	totalPages := 0
	if req.Limit > 0 {
		totalPages = (total + req.Limit - 1) / req.Limit
	}
	return Pagination{
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// ProjectPage is the response body for a project listing.
type ProjectPage struct {
	Data       []Project  `json:"data"`
	Pagination Pagination `json:"pagination"`
}
