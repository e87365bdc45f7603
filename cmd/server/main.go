package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nextrack/internal/api"
	"nextrack/internal/app/service"
	"nextrack/internal/common/security"
	"nextrack/internal/domain/model"
	"nextrack/internal/domain/repository"
	"nextrack/internal/platform/cache"
	"nextrack/internal/platform/config"
	"nextrack/internal/platform/database"
	"nextrack/internal/platform/platforms"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()
	fmt.Println("Database connected.")

	// 4. Initialize Redis
	cache.ConnectRedis()
	defer cache.CloseRedis()
	fmt.Println("Redis connected.")

	// 5. Initialize Repositories
	studentRepo := repository.NewPgStudentRepository(database.DB)
	teacherRepo := repository.NewPgTeacherRepository(database.DB)
	assignmentRepo := repository.NewPgAssignmentRepository(database.DB)
	completionRepo := repository.NewPgCompletionRepository(database.DB)
	attendanceRepo := repository.NewPgAttendanceRepository(database.DB)
	submissionRepo := repository.NewPgSubmissionRepository(database.DB)
	testResultRepo := repository.NewPgTestResultRepository(database.DB)

	// 6. Initialize Services
	today := func() time.Time { return model.NormalizeDay(config.AppConfig.Today()) }
	platformClient := platforms.NewClient(
		config.AppConfig.LeetcodeAPIBaseURL,
		config.AppConfig.CodechefAPIBaseURL,
		config.AppConfig.GithubAPIBaseURL,
		time.Duration(config.AppConfig.PlatformFetchTimeoutSeconds)*time.Second,
	)

	authService := service.NewAuthService(studentRepo, teacherRepo, config.AppConfig.TeacherEmailDomain)
	profileService := service.NewProfileService(studentRepo)
	assignmentService := service.NewAssignmentService(assignmentRepo, studentRepo)
	completionService := service.NewCompletionService(completionRepo, assignmentRepo, studentRepo, time.Now)
	attendanceService := service.NewAttendanceService(attendanceRepo, studentRepo, config.AppConfig.AttendanceWindowDays, today)
	rankingService := service.NewRankingService(studentRepo, platformClient, cache.RDB,
		time.Duration(config.AppConfig.RankingsCacheTTLMinutes)*time.Minute)
	reportService := service.NewReportService(studentRepo, completionRepo)
	testResultService := service.NewTestResultService(testResultRepo)
	submissionService := service.NewSubmissionService(submissionRepo, studentRepo, assignmentRepo)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(
		authService,
		profileService,
		assignmentService,
		completionService,
		attendanceService,
		rankingService,
		reportService,
		testResultService,
		submissionService,
	)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
