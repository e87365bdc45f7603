package service

import (
	"context"
	"log"

	"nextrack/internal/domain/repository"
)

// ReconcileService repairs the completion ledger from the canonical "done"
// facts in the submissions table. It is an idempotent, restartable batch
// job, never run inline in the request path.
type ReconcileService struct {
	submissionRepo repository.SubmissionRepository
	completionRepo repository.CompletionRepository
}

func NewReconcileService(submissionRepo repository.SubmissionRepository, completionRepo repository.CompletionRepository) *ReconcileService {
	return &ReconcileService{submissionRepo: submissionRepo, completionRepo: completionRepo}
}

// Run scans completed submissions and inserts any missing ledger facts.
// Existing facts keep their original completed_at (the ledger insert is
// first-write-wins), so re-running is harmless.
func (s *ReconcileService) Run(ctx context.Context) (int, error) {
	submissions, err := s.submissionRepo.ListCompleted(ctx)
	if err != nil {
		return 0, err
	}

	synced := 0
	for _, sub := range submissions {
		completedAt := sub.SubmittedAt
		if sub.CompletedAt != nil {
			completedAt = *sub.CompletedAt
		}
		if err := s.completionRepo.MarkComplete(ctx, sub.AssignmentID, sub.StudentID, completedAt); err != nil {
			// Keep going; a single bad pair must not abort the sweep.
			log.Printf("reconcile: student %s assignment %s: %v", sub.StudentID, sub.AssignmentID, err)
			continue
		}
		synced++
	}
	return synced, nil
}
