package platforms

import (
	"context"
	"encoding/json"
	"fmt"

	"nextrack/internal/domain/model"
)

type leetcodeResponse struct {
	TotalSolved       int `json:"totalSolved"`
	TotalSubmissions  int `json:"totalSubmissions"`
	EasySolved        int `json:"easySolved"`
	EasySubmissions   int `json:"easySubmissions"`
	MediumSolved      int `json:"mediumSolved"`
	MediumSubmissions int `json:"mediumSubmissions"`
	HardSolved        int `json:"hardSolved"`
	HardSubmissions   int `json:"hardSubmissions"`
	Ranking           int `json:"ranking"`
}

// FetchLeetcode fetches a public LeetCode profile and reshapes it into the
// chart-ready difficulty buckets.
func (c *Client) FetchLeetcode(ctx context.Context, username string) (*model.LeetcodeStats, error) {
	raw, err := c.getJSON(ctx, fmt.Sprintf("%s/%s", c.leetcodeBaseURL, username))
	if err != nil {
		return nil, err
	}

	var resp leetcodeResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("platforms: decode leetcode response for %s: %w", username, err)
	}

	return &model.LeetcodeStats{
		Easy:       model.SolvedBucket{Count: resp.EasySolved, Submissions: resp.EasySubmissions},
		Medium:     model.SolvedBucket{Count: resp.MediumSolved, Submissions: resp.MediumSubmissions},
		Hard:       model.SolvedBucket{Count: resp.HardSolved, Submissions: resp.HardSubmissions},
		Total:      model.SolvedBucket{Count: resp.TotalSolved, Submissions: resp.TotalSubmissions},
		Ranking:    resp.Ranking,
		ProfileURL: "https://leetcode.com/" + username,
	}, nil
}
