package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taskboard/taskboard-go/internal/model"
)

var ErrProjectNotFound = errors.New("project not found")

const projectColumns = `id, user_id, name, description, status, created_at, updated_at`

// ProjectRepository handles project persistence. Every query is scoped to
// the owning user.
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// projectFilter builds the WHERE clause shared by List and Count so that a
// page and its total always agree.
func projectFilter(ownerID int64, f model.ProjectFilter) (string, []any) {
	where := []string{"user_id = ?"}
	args := []any{ownerID}

	if f.Search != "" {
		where = append(where, `(LOWER(name) LIKE ? ESCAPE '!' OR LOWER(COALESCE(description, '')) LIKE ? ESCAPE '!')`)
		term := likePattern(f.Search)
		args = append(args, term, term)
	}
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(f.Status))
	}

	return strings.Join(where, " AND "), args
}

// Count returns how many of the owner's projects match f.
func (r *ProjectRepository) Count(ctx context.Context, ownerID int64, f model.ProjectFilter) (int, error) {
	where, args := projectFilter(ownerID, f)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects WHERE `+where, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("counting projects: %w", err)
	}
	return total, nil
}

// List returns one page of the owner's projects matching f, most recently
// updated first.
func (r *ProjectRepository) List(ctx context.Context, ownerID int64, f model.ProjectFilter, page model.PageRequest) ([]model.Project, error) {
	where, args := projectFilter(ownerID, f)
	query := `SELECT ` + projectColumns + ` FROM projects WHERE ` + where +
		` ORDER BY updated_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, page.Limit, page.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}

	return projects, rows.Err()
}

// Get retrieves a project by ID if it belongs to ownerID.
func (r *ProjectRepository) Get(ctx context.Context, id, ownerID int64) (*model.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ? AND user_id = ?`

	p, err := scanProject(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return p, nil
}

// Exists reports whether project id belongs to ownerID.
func (r *ProjectRepository) Exists(ctx context.Context, id, ownerID int64) (bool, error) {
	var found int64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM projects WHERE id = ? AND user_id = ?`, id, ownerID).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking project: %w", err)
	}
	return true, nil
}

// Create inserts a project and sets its generated ID.
func (r *ProjectRepository) Create(ctx context.Context, p *model.Project) error {
	query := `INSERT INTO projects (user_id, name, description, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		p.UserID, p.Name, nullable(p.Description), string(p.Status), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

// Update writes the supplied fields of u plus updated_at. Rows not owned by
// ownerID are left alone; callers check ownership first.
func (r *ProjectRepository) Update(ctx context.Context, id, ownerID int64, u model.ProjectUpdate, now time.Time) error {
	var sets []string
	var args []any

	if u.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *u.Name)
	}
	if u.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, nullable(u.Description))
	}
	if u.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*u.Status))
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, now, id, ownerID)

	query := `UPDATE projects SET ` + strings.Join(sets, ", ") + ` WHERE id = ? AND user_id = ?`
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return nil
}

// Delete removes a project and all of its tasks in one transaction.
func (r *ProjectRepository) Delete(ctx context.Context, id, ownerID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM tasks WHERE project_id IN (SELECT id FROM projects WHERE id = ? AND user_id = ?)`,
		id, ownerID,
	); err != nil {
		return fmt.Errorf("deleting project tasks: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrProjectNotFound
	}

	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*model.Project, error) {
	p := &model.Project{}
	var status string
	if err := row.Scan(
		&p.ID, &p.UserID, &p.Name, nullString(&p.Description), &status,
		timestamp{&p.CreatedAt}, timestamp{&p.UpdatedAt},
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	p.Status = model.ProjectStatus(status)
	return p, nil
}
