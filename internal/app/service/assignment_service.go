package service

import (
	"context"
	"fmt"
	"time"

	"nextrack/internal/common"
	"nextrack/internal/domain/model"
	"nextrack/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type AssignmentService struct {
	assignmentRepo repository.AssignmentRepository
	studentRepo    repository.StudentRepository
}

func NewAssignmentService(assignmentRepo repository.AssignmentRepository, studentRepo repository.StudentRepository) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		studentRepo:    studentRepo,
	}
}

type CreateAssignmentRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Deadline    string   `json:"deadline" validate:"required"` // RFC 3339
	Difficulty  string   `json:"difficulty" validate:"required,oneof=easy medium hard"`
	Links       []string `json:"links" validate:"required,min=1,dive,required"`
}

// Create inserts the assignment and puts every current student on its
// roster in one transaction. The roster-at-creation policy is what makes
// "completedBy is a subset of assignedTo" enforceable later.
func (s *AssignmentService) Create(ctx context.Context, teacherID string, req CreateAssignmentRequest) (*model.Assignment, error) {
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}
	deadline, err := time.Parse(time.RFC3339, req.Deadline)
	if err != nil {
		return nil, fmt.Errorf("deadline must be RFC 3339: %w", common.ErrValidation)
	}

	assignment := &model.Assignment{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Slug:        slug.Make(req.Name),
		Description: req.Description,
		Deadline:    deadline,
		Difficulty:  model.AssignmentDifficulty(req.Difficulty),
		Links:       req.Links,
		CreatedByID: teacherID,
	}

	studentIDs, err := s.studentRepo.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list students for roster: %w", err)
	}

	if err := s.assignmentRepo.CreateWithRoster(ctx, assignment, studentIDs); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}
	return assignment, nil
}

func (s *AssignmentService) Get(ctx context.Context, id string) (*model.Assignment, error) {
	return s.assignmentRepo.FindByID(ctx, id)
}

func (s *AssignmentService) List(ctx context.Context) ([]model.Assignment, error) {
	return s.assignmentRepo.List(ctx)
}

func (s *AssignmentService) ListForStudent(ctx context.Context, studentID string) ([]model.Assignment, error) {
	if _, err := s.studentRepo.FindByID(ctx, studentID); err != nil {
		return nil, err
	}
	return s.assignmentRepo.ListForStudent(ctx, studentID)
}
