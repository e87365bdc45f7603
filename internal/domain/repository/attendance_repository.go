package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"nextrack/internal/domain/model"

	"github.com/google/uuid"
)

type AttendanceRepository interface {
	// Upsert writes one (student, day) fact. An existing row gets its
	// present flag overwritten; concurrent writers race benignly because the
	// conflict target is the (student_id, date) uniqueness constraint.
	Upsert(ctx context.Context, record *model.AttendanceRecord) error
	// InsertAbsentIfMissing backfills present=false without touching
	// existing rows, making the sweep safe to re-run.
	InsertAbsentIfMissing(ctx context.Context, studentID string, day time.Time, markedBy string) error
	WindowForStudent(ctx context.Context, studentID string, from, to time.Time) ([]model.AttendanceRecord, error)
	Window(ctx context.Context, from, to time.Time) ([]model.AttendanceRecord, error)
}

type pgAttendanceRepository struct {
	db *sql.DB
}

func NewPgAttendanceRepository(db *sql.DB) AttendanceRepository {
	return &pgAttendanceRepository{db: db}
}

func (r *pgAttendanceRepository) Upsert(ctx context.Context, rec *model.AttendanceRecord) error {
	query := `INSERT INTO attendance (id, student_id, date, present, marked_by)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (student_id, date)
	          DO UPDATE SET present = EXCLUDED.present, updated_at = CURRENT_TIMESTAMP`
	_, err := r.db.ExecContext(ctx, query, rec.ID, rec.StudentID, rec.Date, rec.Present, rec.MarkedByID)
	if err != nil {
		return fmt.Errorf("pgAttendanceRepository.Upsert: %w", err)
	}
	return nil
}

func (r *pgAttendanceRepository) InsertAbsentIfMissing(ctx context.Context, studentID string, day time.Time, markedBy string) error {
	query := `INSERT INTO attendance (id, student_id, date, present, marked_by)
	          VALUES ($1, $2, $3, FALSE, $4)
	          ON CONFLICT (student_id, date) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, uuid.NewString(), studentID, day, markedBy)
	if err != nil {
		return fmt.Errorf("pgAttendanceRepository.InsertAbsentIfMissing: %w", err)
	}
	return nil
}

func (r *pgAttendanceRepository) WindowForStudent(ctx context.Context, studentID string, from, to time.Time) ([]model.AttendanceRecord, error) {
	query := `SELECT id, student_id, date, present, marked_by, created_at, updated_at
	          FROM attendance
	          WHERE student_id = $1 AND date >= $2 AND date <= $3
	          ORDER BY date ASC`
	return r.queryRecords(ctx, "WindowForStudent", query, studentID, from, to)
}

func (r *pgAttendanceRepository) Window(ctx context.Context, from, to time.Time) ([]model.AttendanceRecord, error) {
	query := `SELECT id, student_id, date, present, marked_by, created_at, updated_at
	          FROM attendance
	          WHERE date >= $1 AND date <= $2
	          ORDER BY student_id, date ASC`
	return r.queryRecords(ctx, "Window", query, from, to)
}

func (r *pgAttendanceRepository) queryRecords(ctx context.Context, method, query string, args ...interface{}) ([]model.AttendanceRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgAttendanceRepository.%s query: %w", method, err)
	}
	defer rows.Close()

	records := []model.AttendanceRecord{}
	for rows.Next() {
		var rec model.AttendanceRecord
		if err := rows.Scan(&rec.ID, &rec.StudentID, &rec.Date, &rec.Present, &rec.MarkedByID, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("pgAttendanceRepository.%s scan: %w", method, err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgAttendanceRepository.%s rows.Err: %w", method, err)
	}
	return records, nil
}
