package service

import (
	"context"
	"testing"

	"nextrack/internal/common"
	"nextrack/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSubmissionFixture(t *testing.T) (*SubmissionService, *fakeStudentRepo, *fakeAssignmentRepo, *fakeSubmissionRepo) {
	t.Helper()
	students := newFakeStudentRepo()
	assignments := newFakeAssignmentRepo(students)
	submissions := newFakeSubmissionRepo()
	return NewSubmissionService(submissions, students, assignments), students, assignments, submissions
}

func TestUpsertSubmission(t *testing.T) {
	svc, students, assignments, _ := newSubmissionFixture(t)
	ctx := context.Background()

	alice := newTestStudent(t, students, "Alice", "alice@example.com")
	twoSum := newTestAssignment(t, assignments, "Two Sum", model.DifficultyEasy, alice.ID)

	score := 85
	sub, err := svc.Upsert(ctx, UpsertSubmissionRequest{
		StudentID:    alice.ID,
		AssignmentID: twoSum.ID,
		Status:       "completed",
		Score:        &score,
	})
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionCompleted, sub.Status)
	require.NotNil(t, sub.CompletedAt)
	require.NotNil(t, sub.Score)
	assert.Equal(t, 85, *sub.Score)
}

func TestUpsertSubmissionReplacesPrevious(t *testing.T) {
	svc, students, assignments, submissions := newSubmissionFixture(t)
	ctx := context.Background()

	alice := newTestStudent(t, students, "Alice", "alice@example.com")
	twoSum := newTestAssignment(t, assignments, "Two Sum", model.DifficultyEasy, alice.ID)

	_, err := svc.Upsert(ctx, UpsertSubmissionRequest{StudentID: alice.ID, AssignmentID: twoSum.ID, Status: "pending"})
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, UpsertSubmissionRequest{StudentID: alice.ID, AssignmentID: twoSum.ID, Status: "failed"})
	require.NoError(t, err)

	// One row per (student, assignment) pair.
	listed, err := svc.ListByAssignment(ctx, twoSum.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, model.SubmissionFailed, listed[0].Status)
	assert.Nil(t, listed[0].CompletedAt)
	assert.Len(t, submissions.submissions, 1)
}

func TestUpsertSubmissionValidation(t *testing.T) {
	svc, students, assignments, _ := newSubmissionFixture(t)
	ctx := context.Background()

	alice := newTestStudent(t, students, "Alice", "alice@example.com")
	twoSum := newTestAssignment(t, assignments, "Two Sum", model.DifficultyEasy, alice.ID)

	_, err := svc.Upsert(ctx, UpsertSubmissionRequest{StudentID: alice.ID, AssignmentID: twoSum.ID, Status: "graded"})
	assert.ErrorIs(t, err, common.ErrValidation)

	badScore := 150
	_, err = svc.Upsert(ctx, UpsertSubmissionRequest{StudentID: alice.ID, AssignmentID: twoSum.ID, Status: "completed", Score: &badScore})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.Upsert(ctx, UpsertSubmissionRequest{StudentID: "missing", AssignmentID: twoSum.ID, Status: "pending"})
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = svc.Upsert(ctx, UpsertSubmissionRequest{StudentID: alice.ID, AssignmentID: "missing", Status: "pending"})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestListByAssignmentUnknownAssignment(t *testing.T) {
	svc, _, _, _ := newSubmissionFixture(t)

	_, err := svc.ListByAssignment(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
