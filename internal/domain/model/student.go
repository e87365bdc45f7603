package model

import (
	"encoding/json"
	"time"
)

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

type Student struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Email            string          `json:"email"`
	HashedPassword   string          `json:"-"` // Not exposed
	Phone            string          `json:"phone"`
	LeetcodeUsername string          `json:"leetcode_username"`
	CodechefUsername string          `json:"codechef_username"`
	GithubUsername   string          `json:"github_username"`
	LinkedinURL      string          `json:"linkedin_url"`
	Rankings         json.RawMessage `json:"rankings,omitempty"` // Last-fetched platform snapshot
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// StudentSummary is the roster view exposed to teachers and in
// assignment-status partitions.
type StudentSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s *Student) Summary() StudentSummary {
	return StudentSummary{ID: s.ID, Name: s.Name, Email: s.Email}
}
