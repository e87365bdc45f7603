package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"nextrack/internal/app/service"
	"nextrack/internal/domain/repository"
	"nextrack/internal/platform/config"
	"nextrack/internal/platform/database"
)

// Reconciliation sweep: imports completed submissions into the completion
// ledger. Safe to re-run at any time; existing ledger facts are untouched.
func main() {
	config.Load()
	fmt.Println("Configuration loaded.")

	database.Connect()
	defer database.Close()
	fmt.Println("Database connected.")

	submissionRepo := repository.NewPgSubmissionRepository(database.DB)
	completionRepo := repository.NewPgCompletionRepository(database.DB)
	reconciler := service.NewReconcileService(submissionRepo, completionRepo)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	synced, err := reconciler.Run(ctx)
	if err != nil {
		log.Fatalf("Reconciliation failed: %v", err)
	}
	log.Printf("Reconciliation complete: %d completed submissions synced to the ledger.", synced)
}
