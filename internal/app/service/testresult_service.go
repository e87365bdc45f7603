package service

import (
	"context"
	"fmt"
	"time"

	"nextrack/internal/common"
	"nextrack/internal/domain/model"
	"nextrack/internal/domain/repository"

	"github.com/google/uuid"
)

type TestResultService struct {
	testResultRepo repository.TestResultRepository
}

func NewTestResultService(testResultRepo repository.TestResultRepository) *TestResultService {
	return &TestResultService{testResultRepo: testResultRepo}
}

type TestResultRow struct {
	StudentName  string  `json:"student_name" validate:"required"`
	StudentEmail string  `json:"student_email" validate:"required,email"`
	TestName     string  `json:"test_name" validate:"required"`
	TestDate     string  `json:"test_date" validate:"required"` // YYYY-MM-DD
	Marks        float64 `json:"marks" validate:"min=0,max=100"`
}

type UploadTestResultsRequest struct {
	Results []TestResultRow `json:"results" validate:"required,min=1,dive"`
}

// Upload bulk-inserts already-parsed result rows.
func (s *TestResultService) Upload(ctx context.Context, req UploadTestResultsRequest) (int, error) {
	if err := common.ValidateStruct(req); err != nil {
		return 0, err
	}

	results := make([]model.TestResult, 0, len(req.Results))
	for i, row := range req.Results {
		testDate, err := time.Parse(model.DayFormat, row.TestDate)
		if err != nil {
			return 0, fmt.Errorf("row %d: test_date must be YYYY-MM-DD: %w", i+1, common.ErrValidation)
		}
		results = append(results, model.TestResult{
			ID:           uuid.NewString(),
			StudentName:  row.StudentName,
			StudentEmail: row.StudentEmail,
			TestName:     row.TestName,
			TestDate:     testDate,
			Marks:        row.Marks,
		})
	}

	if err := s.testResultRepo.InsertMany(ctx, results); err != nil {
		return 0, err
	}
	return len(results), nil
}

func (s *TestResultService) ListTests(ctx context.Context) ([]model.TestSummary, error) {
	return s.testResultRepo.ListTests(ctx)
}

// TestDetail is the per-test drill-down view.
type TestDetail struct {
	TestName     string             `json:"test_name"`
	TestDate     time.Time          `json:"test_date"`
	AverageScore float64            `json:"average_score"`
	Results      []model.TestResult `json:"results"`
}

func (s *TestResultService) Results(ctx context.Context, testName string) (*TestDetail, error) {
	results, err := s.testResultRepo.ResultsForTest(ctx, testName)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("test %q: %w", testName, common.ErrNotFound)
	}

	total := 0.0
	for _, res := range results {
		total += res.Marks
	}
	return &TestDetail{
		TestName:     testName,
		TestDate:     results[0].TestDate,
		AverageScore: total / float64(len(results)),
		Results:      results,
	}, nil
}
