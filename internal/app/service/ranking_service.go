package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"nextrack/internal/domain/model"
	"nextrack/internal/domain/repository"
	"nextrack/internal/platform/platforms"

	"github.com/redis/go-redis/v9"
)

// RankingService merges the three external platform profiles into one
// snapshot per student. Fetches fan out concurrently; a failed platform
// leaves its section unavailable instead of failing the snapshot.
type RankingService struct {
	studentRepo repository.StudentRepository
	platforms   *platforms.Client
	rdb         *redis.Client
	cacheTTL    time.Duration
}

func NewRankingService(studentRepo repository.StudentRepository, client *platforms.Client, rdb *redis.Client, cacheTTL time.Duration) *RankingService {
	return &RankingService{
		studentRepo: studentRepo,
		platforms:   client,
		rdb:         rdb,
		cacheTTL:    cacheTTL,
	}
}

func rankingsCacheKey(studentID string) string {
	return "rankings:" + studentID
}

// Snapshot returns the ranking snapshot for a student, from cache when
// fresh, otherwise fetched live, persisted to the student row and cached.
func (s *RankingService) Snapshot(ctx context.Context, studentID string) (*model.RankingSnapshot, error) {
	student, err := s.studentRepo.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if cached := s.fromCache(ctx, studentID); cached != nil {
		return cached, nil
	}

	snapshot := s.fetch(ctx, student)

	raw, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("marshal ranking snapshot: %w", err)
	}
	if err := s.studentRepo.UpdateRankings(ctx, studentID, raw); err != nil {
		return nil, fmt.Errorf("persist ranking snapshot: %w", err)
	}
	s.toCache(ctx, studentID, raw)

	return snapshot, nil
}

func (s *RankingService) fetch(ctx context.Context, student *model.Student) *model.RankingSnapshot {
	snapshot := &model.RankingSnapshot{FetchedAt: time.Now().UTC()}

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		stats, err := s.platforms.FetchLeetcode(ctx, student.LeetcodeUsername)
		if err != nil {
			snapshot.Leetcode = model.UnavailableStats(err)
			return
		}
		raw, err := json.Marshal(stats)
		if err != nil {
			snapshot.Leetcode = model.UnavailableStats(err)
			return
		}
		snapshot.Leetcode = model.AvailableStats(raw)
	}()
	go func() {
		defer wg.Done()
		raw, err := s.platforms.FetchCodechef(ctx, student.CodechefUsername)
		if err != nil {
			snapshot.Codechef = model.UnavailableStats(err)
			return
		}
		snapshot.Codechef = model.AvailableStats(raw)
	}()
	go func() {
		defer wg.Done()
		raw, err := s.platforms.FetchGithub(ctx, student.GithubUsername)
		if err != nil {
			snapshot.Github = model.UnavailableStats(err)
			return
		}
		snapshot.Github = model.AvailableStats(raw)
	}()
	wg.Wait()

	return snapshot
}

func (s *RankingService) fromCache(ctx context.Context, studentID string) *model.RankingSnapshot {
	if s.rdb == nil {
		return nil
	}
	raw, err := s.rdb.Get(ctx, rankingsCacheKey(studentID)).Bytes()
	if err != nil {
		return nil // Cache miss or Redis hiccup; fetch live either way.
	}
	var snapshot model.RankingSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil
	}
	return &snapshot
}

func (s *RankingService) toCache(ctx context.Context, studentID string, raw []byte) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Set(ctx, rankingsCacheKey(studentID), raw, s.cacheTTL).Err(); err != nil {
		log.Printf("Failed to cache rankings for student %s: %v", studentID, err)
	}
}
