package model

import (
	"encoding/json"
	"time"
)

// PlatformStats is one platform's section of a ranking snapshot. A failed
// fetch leaves the section present but unavailable instead of failing the
// whole snapshot.
type PlatformStats struct {
	Available bool            `json:"available"`
	Data      json.RawMessage `json:"data,omitempty"`
	Error     string          `json:"error,omitempty"`
}

func AvailableStats(data json.RawMessage) PlatformStats {
	return PlatformStats{Available: true, Data: data}
}

func UnavailableStats(err error) PlatformStats {
	return PlatformStats{Available: false, Error: err.Error()}
}

// RankingSnapshot is the cached merge of the three external platform
// profiles for one student.
type RankingSnapshot struct {
	Leetcode  PlatformStats `json:"leetcode"`
	Codechef  PlatformStats `json:"codechef"`
	Github    PlatformStats `json:"github"`
	FetchedAt time.Time     `json:"fetched_at"`
}

// LeetcodeStats is the chart-ready shape derived from the raw LeetCode API
// response.
type LeetcodeStats struct {
	Easy       SolvedBucket `json:"easy"`
	Medium     SolvedBucket `json:"medium"`
	Hard       SolvedBucket `json:"hard"`
	Total      SolvedBucket `json:"total"`
	Ranking    int          `json:"ranking"`
	ProfileURL string       `json:"profile_url"`
}

type SolvedBucket struct {
	Count       int `json:"count"`
	Submissions int `json:"submissions"`
}
