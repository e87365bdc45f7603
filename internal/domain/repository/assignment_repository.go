package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"nextrack/internal/common"
	"nextrack/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type AssignmentRepository interface {
	// CreateWithRoster inserts the assignment and its full roster in one
	// transaction. Either both land or neither does.
	CreateWithRoster(ctx context.Context, assignment *model.Assignment, studentIDs []string) error
	FindByID(ctx context.Context, id string) (*model.Assignment, error)
	List(ctx context.Context) ([]model.Assignment, error)
	ListForStudent(ctx context.Context, studentID string) ([]model.Assignment, error)
	Roster(ctx context.Context, assignmentID string) ([]model.StudentSummary, error)
	IsAssigned(ctx context.Context, assignmentID, studentID string) (bool, error)
}

type pgAssignmentRepository struct {
	db *sql.DB
}

func NewPgAssignmentRepository(db *sql.DB) AssignmentRepository {
	return &pgAssignmentRepository{db: db}
}

func (r *pgAssignmentRepository) CreateWithRoster(ctx context.Context, a *model.Assignment, studentIDs []string) error {
	links, err := json.Marshal(a.Links)
	if err != nil {
		return fmt.Errorf("pgAssignmentRepository.CreateWithRoster marshal links: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("pgAssignmentRepository.CreateWithRoster begin: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO assignments (id, name, slug, description, deadline, difficulty, links, created_by)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := tx.ExecContext(ctx, query, a.ID, a.Name, a.Slug, a.Description, a.Deadline, a.Difficulty, links, a.CreatedByID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint for slug
			return fmt.Errorf("assignment with this slug already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgAssignmentRepository.CreateWithRoster: %w", err)
	}

	if len(studentIDs) > 0 {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO assignment_students (assignment_id, student_id)
		                                     VALUES ($1, $2) ON CONFLICT DO NOTHING`)
		if err != nil {
			return fmt.Errorf("pgAssignmentRepository.CreateWithRoster prepare roster: %w", err)
		}
		defer stmt.Close()

		for _, sid := range studentIDs {
			if _, err := stmt.ExecContext(ctx, a.ID, sid); err != nil {
				return fmt.Errorf("pgAssignmentRepository.CreateWithRoster roster exec for student %s: %w", sid, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("pgAssignmentRepository.CreateWithRoster commit: %w", err)
	}
	return nil
}

const assignmentColumns = `a.id, a.name, a.slug, a.description, a.deadline, a.difficulty, a.links, a.created_by, a.created_at`

func scanAssignment(scan func(dest ...interface{}) error) (*model.Assignment, error) {
	a := &model.Assignment{}
	var links []byte
	if err := scan(&a.ID, &a.Name, &a.Slug, &a.Description, &a.Deadline, &a.Difficulty, &links, &a.CreatedByID, &a.CreatedAt); err != nil {
		return nil, err
	}
	if err := unmarshalLinks(links, &a.Links); err != nil {
		return nil, err
	}
	return a, nil
}

func unmarshalLinks(raw []byte, dest *[]string) error {
	if len(raw) == 0 {
		*dest = []string{}
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("unmarshal assignment links: %w", err)
	}
	return nil
}

func (r *pgAssignmentRepository) FindByID(ctx context.Context, id string) (*model.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments a WHERE a.id = $1`
	row := r.db.QueryRowContext(ctx, query, id)
	a, err := scanAssignment(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgAssignmentRepository.FindByID: %w", err)
	}
	return a, nil
}

func (r *pgAssignmentRepository) List(ctx context.Context) ([]model.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments a ORDER BY a.deadline DESC`
	return r.queryAssignments(ctx, "List", query)
}

func (r *pgAssignmentRepository) ListForStudent(ctx context.Context, studentID string) ([]model.Assignment, error) {
	query := `SELECT ` + assignmentColumns + `
	          FROM assignments a
	          JOIN assignment_students ast ON ast.assignment_id = a.id
	          WHERE ast.student_id = $1
	          ORDER BY a.created_at DESC`
	return r.queryAssignments(ctx, "ListForStudent", query, studentID)
}

func (r *pgAssignmentRepository) queryAssignments(ctx context.Context, method, query string, args ...interface{}) ([]model.Assignment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgAssignmentRepository.%s query: %w", method, err)
	}
	defer rows.Close()

	assignments := []model.Assignment{}
	for rows.Next() {
		a, err := scanAssignment(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("pgAssignmentRepository.%s scan: %w", method, err)
		}
		assignments = append(assignments, *a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgAssignmentRepository.%s rows.Err: %w", method, err)
	}
	return assignments, nil
}

func (r *pgAssignmentRepository) Roster(ctx context.Context, assignmentID string) ([]model.StudentSummary, error) {
	query := `SELECT s.id, s.name, s.email
	          FROM assignment_students ast
	          JOIN students s ON s.id = ast.student_id
	          WHERE ast.assignment_id = $1
	          ORDER BY s.name ASC`
	rows, err := r.db.QueryContext(ctx, query, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("pgAssignmentRepository.Roster query: %w", err)
	}
	defer rows.Close()

	roster := []model.StudentSummary{}
	for rows.Next() {
		var s model.StudentSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Email); err != nil {
			return nil, fmt.Errorf("pgAssignmentRepository.Roster scan: %w", err)
		}
		roster = append(roster, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgAssignmentRepository.Roster rows.Err: %w", err)
	}
	return roster, nil
}

func (r *pgAssignmentRepository) IsAssigned(ctx context.Context, assignmentID, studentID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM assignment_students WHERE assignment_id = $1 AND student_id = $2)`
	if err := r.db.QueryRowContext(ctx, query, assignmentID, studentID).Scan(&exists); err != nil {
		return false, fmt.Errorf("pgAssignmentRepository.IsAssigned: %w", err)
	}
	return exists, nil
}
