package model

import "time"

// Completion is the single stored fact "student X completed assignment Y at
// time T". The per-student and per-assignment views are projections of this
// table, so the two sides can never disagree.
type Completion struct {
	AssignmentID string    `json:"assignment_id"`
	StudentID    string    `json:"student_id"`
	CompletedAt  time.Time `json:"completed_at"`
}

// CompletedAssignment joins a completion with its assignment metadata for
// the student's completed-items view and difficulty reporting.
type CompletedAssignment struct {
	Assignment  Assignment `json:"assignment"`
	CompletedAt time.Time  `json:"completed_at"`
}

// CompletedStudent is one entry in the "completed" half of an
// assignment-status partition.
type CompletedStudent struct {
	StudentSummary
	CompletedAt time.Time `json:"completed_at"`
}

// AssignmentStatus partitions an assignment's roster by completion.
type AssignmentStatus struct {
	Completed    []CompletedStudent `json:"completed"`
	NotCompleted []StudentSummary   `json:"not_completed"`
}

// DifficultyCounts buckets completed assignments per difficulty tier.
type DifficultyCounts struct {
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

func (c *DifficultyCounts) Add(d AssignmentDifficulty) {
	switch d {
	case DifficultyEasy:
		c.Easy++
	case DifficultyMedium:
		c.Medium++
	case DifficultyHard:
		c.Hard++
	}
	// Unknown difficulty contributes nothing.
}
