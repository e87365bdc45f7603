package repository

import (
	"context"
	"database/sql"
	"fmt"

	"nextrack/internal/domain/model"
)

type SubmissionRepository interface {
	// Upsert writes the graded state for one (student, assignment) pair.
	Upsert(ctx context.Context, submission *model.Submission) error
	ListByAssignment(ctx context.Context, assignmentID string) ([]model.Submission, error)
	// ListCompleted returns the canonical "done" facts used by the
	// reconciliation job.
	ListCompleted(ctx context.Context) ([]model.Submission, error)
}

type pgSubmissionRepository struct {
	db *sql.DB
}

func NewPgSubmissionRepository(db *sql.DB) SubmissionRepository {
	return &pgSubmissionRepository{db: db}
}

func (r *pgSubmissionRepository) Upsert(ctx context.Context, s *model.Submission) error {
	query := `INSERT INTO submissions (id, student_id, assignment_id, status, score, feedback, submitted_at, completed_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          ON CONFLICT (student_id, assignment_id)
	          DO UPDATE SET status = EXCLUDED.status, score = EXCLUDED.score,
	                        feedback = EXCLUDED.feedback, completed_at = EXCLUDED.completed_at,
	                        updated_at = CURRENT_TIMESTAMP`
	_, err := r.db.ExecContext(ctx, query, s.ID, s.StudentID, s.AssignmentID, s.Status,
		s.Score, s.Feedback, s.SubmittedAt, s.CompletedAt)
	if err != nil {
		return fmt.Errorf("pgSubmissionRepository.Upsert: %w", err)
	}
	return nil
}

func (r *pgSubmissionRepository) ListByAssignment(ctx context.Context, assignmentID string) ([]model.Submission, error) {
	query := `SELECT id, student_id, assignment_id, status, score, feedback, submitted_at, completed_at, updated_at
	          FROM submissions WHERE assignment_id = $1 ORDER BY submitted_at DESC`
	return r.querySubmissions(ctx, "ListByAssignment", query, assignmentID)
}

func (r *pgSubmissionRepository) ListCompleted(ctx context.Context) ([]model.Submission, error) {
	query := `SELECT id, student_id, assignment_id, status, score, feedback, submitted_at, completed_at, updated_at
	          FROM submissions WHERE status = $1`
	return r.querySubmissions(ctx, "ListCompleted", query, model.SubmissionCompleted)
}

func (r *pgSubmissionRepository) querySubmissions(ctx context.Context, method, query string, args ...interface{}) ([]model.Submission, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.%s query: %w", method, err)
	}
	defer rows.Close()

	submissions := []model.Submission{}
	for rows.Next() {
		var s model.Submission
		if err := rows.Scan(&s.ID, &s.StudentID, &s.AssignmentID, &s.Status, &s.Score,
			&s.Feedback, &s.SubmittedAt, &s.CompletedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("pgSubmissionRepository.%s scan: %w", method, err)
		}
		submissions = append(submissions, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.%s rows.Err: %w", method, err)
	}
	return submissions, nil
}
