package repository

import (
	"context"
	"database/sql"
	"fmt"

	"nextrack/internal/domain/model"
)

type TestResultRepository interface {
	InsertMany(ctx context.Context, results []model.TestResult) error
	ListTests(ctx context.Context) ([]model.TestSummary, error)
	ResultsForTest(ctx context.Context, testName string) ([]model.TestResult, error)
}

type pgTestResultRepository struct {
	db *sql.DB
}

func NewPgTestResultRepository(db *sql.DB) TestResultRepository {
	return &pgTestResultRepository{db: db}
}

func (r *pgTestResultRepository) InsertMany(ctx context.Context, results []model.TestResult) error {
	if len(results) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("pgTestResultRepository.InsertMany begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO test_results (id, student_name, student_email, test_name, test_date, marks)
	                                     VALUES ($1, $2, $3, $4, $5, $6)`)
	if err != nil {
		return fmt.Errorf("pgTestResultRepository.InsertMany prepare: %w", err)
	}
	defer stmt.Close()

	for _, res := range results {
		if _, err := stmt.ExecContext(ctx, res.ID, res.StudentName, res.StudentEmail, res.TestName, res.TestDate, res.Marks); err != nil {
			return fmt.Errorf("pgTestResultRepository.InsertMany exec for %s/%s: %w", res.StudentEmail, res.TestName, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("pgTestResultRepository.InsertMany commit: %w", err)
	}
	return nil
}

func (r *pgTestResultRepository) ListTests(ctx context.Context) ([]model.TestSummary, error) {
	query := `SELECT test_name, MIN(test_date) AS test_date, COUNT(*) AS total_students, AVG(marks) AS average_score
	          FROM test_results
	          GROUP BY test_name
	          ORDER BY test_date DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgTestResultRepository.ListTests query: %w", err)
	}
	defer rows.Close()

	tests := []model.TestSummary{}
	for rows.Next() {
		var t model.TestSummary
		if err := rows.Scan(&t.TestName, &t.TestDate, &t.TotalStudents, &t.AverageScore); err != nil {
			return nil, fmt.Errorf("pgTestResultRepository.ListTests scan: %w", err)
		}
		tests = append(tests, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgTestResultRepository.ListTests rows.Err: %w", err)
	}
	return tests, nil
}

func (r *pgTestResultRepository) ResultsForTest(ctx context.Context, testName string) ([]model.TestResult, error) {
	query := `SELECT id, student_name, student_email, test_name, test_date, marks, created_at
	          FROM test_results WHERE test_name = $1 ORDER BY student_name ASC`
	rows, err := r.db.QueryContext(ctx, query, testName)
	if err != nil {
		return nil, fmt.Errorf("pgTestResultRepository.ResultsForTest query: %w", err)
	}
	defer rows.Close()

	results := []model.TestResult{}
	for rows.Next() {
		var res model.TestResult
		if err := rows.Scan(&res.ID, &res.StudentName, &res.StudentEmail, &res.TestName, &res.TestDate, &res.Marks, &res.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgTestResultRepository.ResultsForTest scan: %w", err)
		}
		results = append(results, res)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgTestResultRepository.ResultsForTest rows.Err: %w", err)
	}
	return results, nil
}
