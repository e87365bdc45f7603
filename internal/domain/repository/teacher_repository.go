package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"nextrack/internal/common"
	"nextrack/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type TeacherRepository interface {
	Create(ctx context.Context, teacher *model.Teacher) error
	FindByEmail(ctx context.Context, email string) (*model.Teacher, error)
	FindByID(ctx context.Context, id string) (*model.Teacher, error)
}

type pgTeacherRepository struct {
	db *sql.DB
}

func NewPgTeacherRepository(db *sql.DB) TeacherRepository {
	return &pgTeacherRepository{db: db}
}

func (r *pgTeacherRepository) Create(ctx context.Context, t *model.Teacher) error {
	query := `INSERT INTO teachers (id, name, email, hashed_password, phone)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, t.ID, t.Name, t.Email, t.HashedPassword, t.Phone)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint violation
			return fmt.Errorf("user with given email already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgTeacherRepository.Create: %w", err)
	}
	return nil
}

func (r *pgTeacherRepository) FindByEmail(ctx context.Context, email string) (*model.Teacher, error) {
	query := `SELECT id, name, email, hashed_password, phone, created_at, updated_at
	          FROM teachers WHERE email = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email), "FindByEmail")
}

func (r *pgTeacherRepository) FindByID(ctx context.Context, id string) (*model.Teacher, error) {
	query := `SELECT id, name, email, hashed_password, phone, created_at, updated_at
	          FROM teachers WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id), "FindByID")
}

func (r *pgTeacherRepository) scanOne(row *sql.Row, method string) (*model.Teacher, error) {
	t := &model.Teacher{}
	err := row.Scan(&t.ID, &t.Name, &t.Email, &t.HashedPassword, &t.Phone, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgTeacherRepository.%s: %w", method, err)
	}
	return t, nil
}
