package service

import (
	"context"
	"fmt"
	"time"

	"nextrack/internal/common"
	"nextrack/internal/domain/model"
	"nextrack/internal/domain/repository"
)

// CompletionService owns the completion ledger: the fact-set of which
// students have completed which assignments. Facts are stored once, so the
// student view and the assignment view are always consistent.
type CompletionService struct {
	completionRepo repository.CompletionRepository
	assignmentRepo repository.AssignmentRepository
	studentRepo    repository.StudentRepository
	now            func() time.Time
}

func NewCompletionService(
	completionRepo repository.CompletionRepository,
	assignmentRepo repository.AssignmentRepository,
	studentRepo repository.StudentRepository,
	now func() time.Time,
) *CompletionService {
	if now == nil {
		now = time.Now
	}
	return &CompletionService{
		completionRepo: completionRepo,
		assignmentRepo: assignmentRepo,
		studentRepo:    studentRepo,
		now:            now,
	}
}

// Complete marks the assignment done for the student. Idempotent: marking
// twice has the same effect as once, and the first completed_at wins.
func (s *CompletionService) Complete(ctx context.Context, studentID, assignmentID string) error {
	if err := s.checkPair(ctx, studentID, assignmentID); err != nil {
		return err
	}
	assigned, err := s.assignmentRepo.IsAssigned(ctx, assignmentID, studentID)
	if err != nil {
		return err
	}
	if !assigned {
		return fmt.Errorf("assignment is not on the student's roster: %w", common.ErrNotFound)
	}
	return s.completionRepo.MarkComplete(ctx, assignmentID, studentID, s.now().UTC())
}

// Uncomplete removes the fact. Removing an absent fact is a no-op success.
func (s *CompletionService) Uncomplete(ctx context.Context, studentID, assignmentID string) error {
	if err := s.checkPair(ctx, studentID, assignmentID); err != nil {
		return err
	}
	return s.completionRepo.MarkIncomplete(ctx, assignmentID, studentID)
}

func (s *CompletionService) checkPair(ctx context.Context, studentID, assignmentID string) error {
	if _, err := s.studentRepo.FindByID(ctx, studentID); err != nil {
		return fmt.Errorf("student not found: %w", err)
	}
	if _, err := s.assignmentRepo.FindByID(ctx, assignmentID); err != nil {
		return fmt.Errorf("assignment not found: %w", err)
	}
	return nil
}

// CompletedForStudent returns the student's completed items joined with
// assignment metadata.
func (s *CompletionService) CompletedForStudent(ctx context.Context, studentID string) ([]model.CompletedAssignment, error) {
	if _, err := s.studentRepo.FindByID(ctx, studentID); err != nil {
		return nil, err
	}
	return s.completionRepo.ListForStudent(ctx, studentID)
}

// Status partitions the assignment's roster into completed / not completed.
func (s *CompletionService) Status(ctx context.Context, assignmentID string) (*model.AssignmentStatus, error) {
	if _, err := s.assignmentRepo.FindByID(ctx, assignmentID); err != nil {
		return nil, err
	}
	roster, err := s.assignmentRepo.Roster(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	completedAt, err := s.completionRepo.MapForAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	status := &model.AssignmentStatus{
		Completed:    []model.CompletedStudent{},
		NotCompleted: []model.StudentSummary{},
	}
	for _, student := range roster {
		if at, ok := completedAt[student.ID]; ok {
			status.Completed = append(status.Completed, model.CompletedStudent{StudentSummary: student, CompletedAt: at})
		} else {
			status.NotCompleted = append(status.NotCompleted, student)
		}
	}
	return status, nil
}
