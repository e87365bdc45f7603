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

// SubmissionService manages the graded submission records that run parallel
// to the completion ledger.
type SubmissionService struct {
	submissionRepo repository.SubmissionRepository
	studentRepo    repository.StudentRepository
	assignmentRepo repository.AssignmentRepository
}

func NewSubmissionService(
	submissionRepo repository.SubmissionRepository,
	studentRepo repository.StudentRepository,
	assignmentRepo repository.AssignmentRepository,
) *SubmissionService {
	return &SubmissionService{
		submissionRepo: submissionRepo,
		studentRepo:    studentRepo,
		assignmentRepo: assignmentRepo,
	}
}

type UpsertSubmissionRequest struct {
	StudentID    string  `json:"student_id" validate:"required"`
	AssignmentID string  `json:"assignment_id" validate:"required"`
	Status       string  `json:"status" validate:"required,oneof=pending completed failed"`
	Score        *int    `json:"score" validate:"omitempty,min=0,max=100"`
	Feedback     *string `json:"feedback"`
}

func (s *SubmissionService) Upsert(ctx context.Context, req UpsertSubmissionRequest) (*model.Submission, error) {
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}
	if _, err := s.studentRepo.FindByID(ctx, req.StudentID); err != nil {
		return nil, fmt.Errorf("student not found: %w", err)
	}
	if _, err := s.assignmentRepo.FindByID(ctx, req.AssignmentID); err != nil {
		return nil, fmt.Errorf("assignment not found: %w", err)
	}

	now := time.Now().UTC()
	submission := &model.Submission{
		ID:           uuid.NewString(),
		StudentID:    req.StudentID,
		AssignmentID: req.AssignmentID,
		Status:       model.SubmissionStatus(req.Status),
		Score:        req.Score,
		Feedback:     req.Feedback,
		SubmittedAt:  now,
	}
	if submission.Status == model.SubmissionCompleted {
		submission.CompletedAt = &now
	}

	if err := s.submissionRepo.Upsert(ctx, submission); err != nil {
		return nil, err
	}
	return submission, nil
}

func (s *SubmissionService) ListByAssignment(ctx context.Context, assignmentID string) ([]model.Submission, error) {
	if _, err := s.assignmentRepo.FindByID(ctx, assignmentID); err != nil {
		return nil, err
	}
	return s.submissionRepo.ListByAssignment(ctx, assignmentID)
}
