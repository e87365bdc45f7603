package service

import (
	"context"

	"nextrack/internal/common"
	"nextrack/internal/domain/model"
	"nextrack/internal/domain/repository"
)

type ProfileService struct {
	studentRepo repository.StudentRepository
}

func NewProfileService(studentRepo repository.StudentRepository) *ProfileService {
	return &ProfileService{studentRepo: studentRepo}
}

type UpdateProfileRequest struct {
	Name             string `json:"name" validate:"required"`
	Phone            string `json:"phone" validate:"required"`
	LeetcodeUsername string `json:"leetcode_username" validate:"required"`
	CodechefUsername string `json:"codechef_username" validate:"required"`
	GithubUsername   string `json:"github_username" validate:"required"`
	LinkedinURL      string `json:"linkedin_url"`
}

func (s *ProfileService) Get(ctx context.Context, studentID string) (*model.Student, error) {
	return s.studentRepo.FindByID(ctx, studentID)
}

// Update replaces the mutable profile fields. Email is immutable.
func (s *ProfileService) Update(ctx context.Context, studentID string, req UpdateProfileRequest) (*model.Student, error) {
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}

	student, err := s.studentRepo.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	student.Name = req.Name
	student.Phone = req.Phone
	student.LeetcodeUsername = req.LeetcodeUsername
	student.CodechefUsername = req.CodechefUsername
	student.GithubUsername = req.GithubUsername
	student.LinkedinURL = req.LinkedinURL

	if err := s.studentRepo.UpdateProfile(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}
