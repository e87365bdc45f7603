package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"nextrack/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerformanceCountsByDifficulty(t *testing.T) {
	students := newFakeStudentRepo()
	assignments := newFakeAssignmentRepo(students)
	completions := newFakeCompletionRepo(assignments)
	svc := NewReportService(students, completions)
	ctx := context.Background()

	alice := newTestStudent(t, students, "Alice", "alice@example.com")
	bob := newTestStudent(t, students, "Bob", "bob@example.com")

	easy1 := newTestAssignment(t, assignments, "Two Sum", model.DifficultyEasy, alice.ID, bob.ID)
	easy2 := newTestAssignment(t, assignments, "Valid Parentheses", model.DifficultyEasy, alice.ID, bob.ID)
	hard := newTestAssignment(t, assignments, "Median of Arrays", model.DifficultyHard, alice.ID, bob.ID)

	now := time.Now().UTC()
	require.NoError(t, completions.MarkComplete(ctx, easy1.ID, alice.ID, now))
	require.NoError(t, completions.MarkComplete(ctx, easy2.ID, alice.ID, now))
	require.NoError(t, completions.MarkComplete(ctx, hard.ID, alice.ID, now))
	require.NoError(t, completions.MarkComplete(ctx, easy1.ID, bob.ID, now))

	report, err := svc.Performance(ctx)
	require.NoError(t, err)
	require.Len(t, report, 2)

	byName := map[string]StudentPerformance{}
	for _, row := range report {
		byName[row.Name] = row
	}
	assert.Equal(t, model.DifficultyCounts{Easy: 2, Hard: 1}, byName["Alice"].CompletedAssignments)
	assert.Equal(t, model.DifficultyCounts{Easy: 1}, byName["Bob"].CompletedAssignments)
}

func TestPerformanceIncludesCachedRankings(t *testing.T) {
	students := newFakeStudentRepo()
	assignments := newFakeAssignmentRepo(students)
	completions := newFakeCompletionRepo(assignments)
	svc := NewReportService(students, completions)
	ctx := context.Background()

	alice := newTestStudent(t, students, "Alice", "alice@example.com")
	newTestStudent(t, students, "Bob", "bob@example.com")

	cached := json.RawMessage(`{"leetcode":{"available":true}}`)
	require.NoError(t, students.UpdateRankings(ctx, alice.ID, cached))

	report, err := svc.Performance(ctx)
	require.NoError(t, err)
	require.Len(t, report, 2)

	// Sorted by name: Alice first. A student without a cached snapshot just
	// omits the section.
	assert.JSONEq(t, string(cached), string(report[0].Rankings))
	assert.Empty(t, report[1].Rankings)
}

func TestStudentsOmitsCredentials(t *testing.T) {
	students := newFakeStudentRepo()
	svc := NewReportService(students, newFakeCompletionRepo(newFakeAssignmentRepo(students)))

	alice := newTestStudent(t, students, "Alice", "alice@example.com")

	summaries, err := svc.Students(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, model.StudentSummary{ID: alice.ID, Name: "Alice", Email: "alice@example.com"}, summaries[0])
}
