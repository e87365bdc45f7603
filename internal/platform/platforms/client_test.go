package platforms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nextrack/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchLeetcodeReshapesProfile(t *testing.T) {
	var requestedPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"totalSolved": 10, "totalSubmissions": 25,
			"easySolved": 6, "easySubmissions": 12,
			"mediumSolved": 3, "mediumSubmissions": 9,
			"hardSolved": 1, "hardSubmissions": 4,
			"ranking": 98765
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.URL, srv.URL, time.Second)
	stats, err := client.FetchLeetcode(context.Background(), "alice_lc")
	require.NoError(t, err)

	assert.Equal(t, "/alice_lc", requestedPath)
	assert.Equal(t, 6, stats.Easy.Count)
	assert.Equal(t, 12, stats.Easy.Submissions)
	assert.Equal(t, 3, stats.Medium.Count)
	assert.Equal(t, 1, stats.Hard.Count)
	assert.Equal(t, 10, stats.Total.Count)
	assert.Equal(t, 98765, stats.Ranking)
	assert.Equal(t, "https://leetcode.com/alice_lc", stats.ProfileURL)
}

func TestFetchNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.URL, srv.URL, time.Second)

	_, err := client.FetchLeetcode(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrServiceUnavailable)

	_, err = client.FetchCodechef(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrServiceUnavailable)

	_, err = client.FetchGithub(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrServiceUnavailable)
}

func TestFetchInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>maintenance</html>"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.URL, srv.URL, time.Second)
	_, err := client.FetchCodechef(context.Background(), "alice_cc")
	assert.ErrorIs(t, err, common.ErrServiceUnavailable)
}

func TestFetchUnreachableHost(t *testing.T) {
	// Closed server gives a connection error, surfaced as unavailability.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL, srv.URL, srv.URL, time.Second)
	_, err := client.FetchGithub(context.Background(), "alice_gh")
	assert.ErrorIs(t, err, common.ErrServiceUnavailable)
}
