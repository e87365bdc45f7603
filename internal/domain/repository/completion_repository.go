package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"nextrack/internal/domain/model"
)

// CompletionRepository stores completion facts once, in a single ledger
// table keyed by (assignment, student). The student-side and
// assignment-side views are computed from it.
type CompletionRepository interface {
	// MarkComplete inserts the fact if absent. The first completed_at wins;
	// re-marking is a no-op.
	MarkComplete(ctx context.Context, assignmentID, studentID string, completedAt time.Time) error
	// MarkIncomplete removes the fact. Removing an absent fact is a no-op.
	MarkIncomplete(ctx context.Context, assignmentID, studentID string) error
	ListForStudent(ctx context.Context, studentID string) ([]model.CompletedAssignment, error)
	MapForAssignment(ctx context.Context, assignmentID string) (map[string]time.Time, error)
	CountsByStudent(ctx context.Context) (map[string]model.DifficultyCounts, error)
}

type pgCompletionRepository struct {
	db *sql.DB
}

func NewPgCompletionRepository(db *sql.DB) CompletionRepository {
	return &pgCompletionRepository{db: db}
}

func (r *pgCompletionRepository) MarkComplete(ctx context.Context, assignmentID, studentID string, completedAt time.Time) error {
	query := `INSERT INTO assignment_completions (assignment_id, student_id, completed_at)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (assignment_id, student_id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, assignmentID, studentID, completedAt); err != nil {
		return fmt.Errorf("pgCompletionRepository.MarkComplete: %w", err)
	}
	return nil
}

func (r *pgCompletionRepository) MarkIncomplete(ctx context.Context, assignmentID, studentID string) error {
	query := `DELETE FROM assignment_completions WHERE assignment_id = $1 AND student_id = $2`
	if _, err := r.db.ExecContext(ctx, query, assignmentID, studentID); err != nil {
		return fmt.Errorf("pgCompletionRepository.MarkIncomplete: %w", err)
	}
	return nil
}

func (r *pgCompletionRepository) ListForStudent(ctx context.Context, studentID string) ([]model.CompletedAssignment, error) {
	query := `SELECT ` + assignmentColumns + `, c.completed_at
	          FROM assignment_completions c
	          JOIN assignments a ON a.id = c.assignment_id
	          WHERE c.student_id = $1
	          ORDER BY c.completed_at DESC`
	rows, err := r.db.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("pgCompletionRepository.ListForStudent query: %w", err)
	}
	defer rows.Close()

	completed := []model.CompletedAssignment{}
	for rows.Next() {
		var ca model.CompletedAssignment
		a := &ca.Assignment
		var links []byte
		if err := rows.Scan(&a.ID, &a.Name, &a.Slug, &a.Description, &a.Deadline, &a.Difficulty,
			&links, &a.CreatedByID, &a.CreatedAt, &ca.CompletedAt); err != nil {
			return nil, fmt.Errorf("pgCompletionRepository.ListForStudent scan: %w", err)
		}
		if err := unmarshalLinks(links, &a.Links); err != nil {
			return nil, fmt.Errorf("pgCompletionRepository.ListForStudent: %w", err)
		}
		completed = append(completed, ca)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgCompletionRepository.ListForStudent rows.Err: %w", err)
	}
	return completed, nil
}

func (r *pgCompletionRepository) MapForAssignment(ctx context.Context, assignmentID string) (map[string]time.Time, error) {
	query := `SELECT student_id, completed_at FROM assignment_completions WHERE assignment_id = $1`
	rows, err := r.db.QueryContext(ctx, query, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("pgCompletionRepository.MapForAssignment query: %w", err)
	}
	defer rows.Close()

	byStudent := map[string]time.Time{}
	for rows.Next() {
		var studentID string
		var completedAt time.Time
		if err := rows.Scan(&studentID, &completedAt); err != nil {
			return nil, fmt.Errorf("pgCompletionRepository.MapForAssignment scan: %w", err)
		}
		byStudent[studentID] = completedAt
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgCompletionRepository.MapForAssignment rows.Err: %w", err)
	}
	return byStudent, nil
}

func (r *pgCompletionRepository) CountsByStudent(ctx context.Context) (map[string]model.DifficultyCounts, error) {
	query := `SELECT c.student_id, a.difficulty, COUNT(*)
	          FROM assignment_completions c
	          JOIN assignments a ON a.id = c.assignment_id
	          GROUP BY c.student_id, a.difficulty`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgCompletionRepository.CountsByStudent query: %w", err)
	}
	defer rows.Close()

	counts := map[string]model.DifficultyCounts{}
	for rows.Next() {
		var studentID string
		var difficulty model.AssignmentDifficulty
		var n int
		if err := rows.Scan(&studentID, &difficulty, &n); err != nil {
			return nil, fmt.Errorf("pgCompletionRepository.CountsByStudent scan: %w", err)
		}
		c := counts[studentID]
		switch difficulty {
		case model.DifficultyEasy:
			c.Easy += n
		case model.DifficultyMedium:
			c.Medium += n
		case model.DifficultyHard:
			c.Hard += n
		}
		counts[studentID] = c
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgCompletionRepository.CountsByStudent rows.Err: %w", err)
	}
	return counts, nil
}
