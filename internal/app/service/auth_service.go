package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nextrack/internal/common"
	"nextrack/internal/common/security"
	"nextrack/internal/domain/model"
	"nextrack/internal/domain/repository"

	"github.com/google/uuid"
)

type AuthService struct {
	studentRepo        repository.StudentRepository
	teacherRepo        repository.TeacherRepository
	teacherEmailDomain string
}

func NewAuthService(studentRepo repository.StudentRepository, teacherRepo repository.TeacherRepository, teacherEmailDomain string) *AuthService {
	return &AuthService{
		studentRepo:        studentRepo,
		teacherRepo:        teacherRepo,
		teacherEmailDomain: teacherEmailDomain,
	}
}

type RegisterRequest struct {
	Role     string `json:"role" validate:"required,oneof=student teacher"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"required"`

	// Student-only fields, checked in Register when role is student.
	LeetcodeUsername string `json:"leetcode_username"`
	CodechefUsername string `json:"codechef_username"`
	GithubUsername   string `json:"github_username"`
	LinkedinURL      string `json:"linkedin_url"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthUser is the identity payload returned by register/login/verify.
type AuthUser struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Role             string `json:"role"`
	LeetcodeUsername string `json:"leetcode_username,omitempty"`
	CodechefUsername string `json:"codechef_username,omitempty"`
	GithubUsername   string `json:"github_username,omitempty"`
}

type AuthResponse struct {
	User  AuthUser `json:"user"`
	Token string   `json:"token"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}

	switch req.Role {
	case model.RoleStudent:
		return s.registerStudent(ctx, req)
	case model.RoleTeacher:
		return s.registerTeacher(ctx, req)
	default:
		return nil, fmt.Errorf("unknown role %q: %w", req.Role, common.ErrValidation)
	}
}

func (s *AuthService) registerStudent(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if req.LeetcodeUsername == "" || req.CodechefUsername == "" || req.GithubUsername == "" {
		return nil, fmt.Errorf("leetcode, codechef and github usernames are required for students: %w", common.ErrValidation)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	student := &model.Student{
		ID:               uuid.NewString(),
		Name:             req.Name,
		Email:            strings.ToLower(req.Email),
		HashedPassword:   hashedPassword,
		Phone:            req.Phone,
		LeetcodeUsername: req.LeetcodeUsername,
		CodechefUsername: req.CodechefUsername,
		GithubUsername:   req.GithubUsername,
		LinkedinURL:      req.LinkedinURL,
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	return s.respond(studentAuthUser(student))
}

func (s *AuthService) registerTeacher(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(req.Email)
	if !strings.HasSuffix(email, "@"+s.teacherEmailDomain) {
		return nil, fmt.Errorf("teacher email must belong to %s: %w", s.teacherEmailDomain, common.ErrValidation)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	teacher := &model.Teacher{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Email:          email,
		HashedPassword: hashedPassword,
		Phone:          req.Phone,
	}
	if err := s.teacherRepo.Create(ctx, teacher); err != nil {
		return nil, fmt.Errorf("failed to create teacher: %w", err)
	}

	return s.respond(teacherAuthUser(teacher))
}

// Login checks the student table first, then teachers, and keeps the error
// generic so the response does not leak which lookup failed.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}
	email := strings.ToLower(req.Email)

	student, err := s.studentRepo.FindByEmail(ctx, email)
	if err == nil {
		if !security.CheckPasswordHash(req.Password, student.HashedPassword) {
			return nil, common.ErrUnauthorized
		}
		return s.respond(studentAuthUser(student))
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	teacher, err := s.teacherRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if !security.CheckPasswordHash(req.Password, teacher.HashedPassword) {
		return nil, common.ErrUnauthorized
	}
	return s.respond(teacherAuthUser(teacher))
}

// Verify resolves the identity behind a validated token.
func (s *AuthService) Verify(ctx context.Context, userID, role string) (*AuthUser, error) {
	switch role {
	case model.RoleStudent:
		student, err := s.studentRepo.FindByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		u := studentAuthUser(student)
		return &u, nil
	case model.RoleTeacher:
		teacher, err := s.teacherRepo.FindByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		u := teacherAuthUser(teacher)
		return &u, nil
	default:
		return nil, common.ErrUnauthorized
	}
}

func (s *AuthService) respond(user AuthUser) (*AuthResponse, error) {
	token, err := security.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResponse{User: user, Token: token}, nil
}

func studentAuthUser(s *model.Student) AuthUser {
	return AuthUser{
		ID:               s.ID,
		Name:             s.Name,
		Email:            s.Email,
		Role:             model.RoleStudent,
		LeetcodeUsername: s.LeetcodeUsername,
		CodechefUsername: s.CodechefUsername,
		GithubUsername:   s.GithubUsername,
	}
}

func teacherAuthUser(t *model.Teacher) AuthUser {
	return AuthUser{ID: t.ID, Name: t.Name, Email: t.Email, Role: model.RoleTeacher}
}
