package model

import "time"

type TestResult struct {
	ID           string    `json:"id"`
	StudentName  string    `json:"student_name"`
	StudentEmail string    `json:"student_email"`
	TestName     string    `json:"test_name"`
	TestDate     time.Time `json:"test_date"`
	Marks        float64   `json:"marks"`
	CreatedAt    time.Time `json:"created_at"`
}

// TestSummary is the per-test aggregate row for the tests listing.
type TestSummary struct {
	TestName      string    `json:"test_name"`
	TestDate      time.Time `json:"test_date"`
	TotalStudents int       `json:"total_students"`
	AverageScore  float64   `json:"average_score"`
}
