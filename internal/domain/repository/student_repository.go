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

type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	FindByEmail(ctx context.Context, email string) (*model.Student, error)
	FindByID(ctx context.Context, id string) (*model.Student, error)
	List(ctx context.Context) ([]model.Student, error)
	ListIDs(ctx context.Context) ([]string, error)
	UpdateProfile(ctx context.Context, student *model.Student) error
	UpdateRankings(ctx context.Context, id string, rankings json.RawMessage) error
}

type pgStudentRepository struct {
	db *sql.DB
}

func NewPgStudentRepository(db *sql.DB) StudentRepository {
	return &pgStudentRepository{db: db}
}

const studentColumns = `id, name, email, hashed_password, phone,
	leetcode_username, codechef_username, github_username, linkedin_url,
	rankings, created_at, updated_at`

func (r *pgStudentRepository) Create(ctx context.Context, s *model.Student) error {
	query := `INSERT INTO students (id, name, email, hashed_password, phone,
	            leetcode_username, codechef_username, github_username, linkedin_url)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query, s.ID, s.Name, s.Email, s.HashedPassword, s.Phone,
		s.LeetcodeUsername, s.CodechefUsername, s.GithubUsername, s.LinkedinURL)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint violation
			return fmt.Errorf("user with given email already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgStudentRepository.Create: %w", err)
	}
	return nil
}

func (r *pgStudentRepository) FindByEmail(ctx context.Context, email string) (*model.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE email = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email), "FindByEmail")
}

func (r *pgStudentRepository) FindByID(ctx context.Context, id string) (*model.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id), "FindByID")
}

func (r *pgStudentRepository) scanOne(row *sql.Row, method string) (*model.Student, error) {
	s := &model.Student{}
	var rankings []byte
	err := row.Scan(
		&s.ID, &s.Name, &s.Email, &s.HashedPassword, &s.Phone,
		&s.LeetcodeUsername, &s.CodechefUsername, &s.GithubUsername, &s.LinkedinURL,
		&rankings, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgStudentRepository.%s: %w", method, err)
	}
	s.Rankings = rankings
	return s, nil
}

func (r *pgStudentRepository) List(ctx context.Context) ([]model.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgStudentRepository.List query: %w", err)
	}
	defer rows.Close()

	students := []model.Student{}
	for rows.Next() {
		var s model.Student
		var rankings []byte
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Email, &s.HashedPassword, &s.Phone,
			&s.LeetcodeUsername, &s.CodechefUsername, &s.GithubUsername, &s.LinkedinURL,
			&rankings, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgStudentRepository.List scan: %w", err)
		}
		s.Rankings = rankings
		students = append(students, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgStudentRepository.List rows.Err: %w", err)
	}
	return students, nil
}

func (r *pgStudentRepository) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM students`)
	if err != nil {
		return nil, fmt.Errorf("pgStudentRepository.ListIDs query: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("pgStudentRepository.ListIDs scan: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgStudentRepository.ListIDs rows.Err: %w", err)
	}
	return ids, nil
}

func (r *pgStudentRepository) UpdateProfile(ctx context.Context, s *model.Student) error {
	query := `UPDATE students SET
	            name = $1, phone = $2, leetcode_username = $3, codechef_username = $4,
	            github_username = $5, linkedin_url = $6, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $7`
	res, err := r.db.ExecContext(ctx, query, s.Name, s.Phone, s.LeetcodeUsername,
		s.CodechefUsername, s.GithubUsername, s.LinkedinURL, s.ID)
	if err != nil {
		return fmt.Errorf("pgStudentRepository.UpdateProfile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgStudentRepository) UpdateRankings(ctx context.Context, id string, rankings json.RawMessage) error {
	query := `UPDATE students SET rankings = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, []byte(rankings), id)
	if err != nil {
		return fmt.Errorf("pgStudentRepository.UpdateRankings: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}
