package service

import (
	"context"
	"encoding/json"

	"nextrack/internal/domain/model"
	"nextrack/internal/domain/repository"
)

// ReportService composes the ledgers with cached platform snapshots into
// read-only per-class views.
type ReportService struct {
	studentRepo    repository.StudentRepository
	completionRepo repository.CompletionRepository
}

func NewReportService(studentRepo repository.StudentRepository, completionRepo repository.CompletionRepository) *ReportService {
	return &ReportService{studentRepo: studentRepo, completionRepo: completionRepo}
}

// StudentPerformance is one row of the class performance report.
type StudentPerformance struct {
	model.StudentSummary
	CompletedAssignments model.DifficultyCounts `json:"completed_assignments"`
	Rankings             json.RawMessage        `json:"rankings,omitempty"` // Last cached snapshot, may be absent
}

// Performance returns completed-assignment counts by difficulty per student
// alongside the last cached ranking snapshot. A student with no cached
// snapshot just omits the rankings section; the report never fails on one
// student's account.
func (s *ReportService) Performance(ctx context.Context) ([]StudentPerformance, error) {
	students, err := s.studentRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.completionRepo.CountsByStudent(ctx)
	if err != nil {
		return nil, err
	}

	report := make([]StudentPerformance, 0, len(students))
	for _, student := range students {
		report = append(report, StudentPerformance{
			StudentSummary:       student.Summary(),
			CompletedAssignments: counts[student.ID],
			Rankings:             student.Rankings,
		})
	}
	return report, nil
}

// Students lists the roster without credentials.
func (s *ReportService) Students(ctx context.Context) ([]model.StudentSummary, error) {
	students, err := s.studentRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]model.StudentSummary, 0, len(students))
	for _, student := range students {
		summaries = append(summaries, student.Summary())
	}
	return summaries, nil
}
