package espn

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propbook/domain/entities"
)

const scoreboardFixture = `{
	"events": [
		{
			"id": "401547999",
			"name": "Buffalo Bills at Miami Dolphins",
			"date": "2025-11-02T18:00Z",
			"competitions": [{
				"competitors": [
					{"homeAway": "home", "team": {"displayName": "Miami Dolphins"}},
					{"homeAway": "away", "team": {"displayName": "Buffalo Bills"}}
				]
			}]
		}
	]
}`

func TestClient_FindGameID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/scoreboard", r.URL.Path)
		w.Write([]byte(scoreboardFixture))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	commence := time.Date(2025, 11, 2, 18, 0, 0, 0, time.UTC)

	id, err := client.FindGameID(context.Background(), "Miami Dolphins", "Buffalo Bills", commence)
	require.NoError(t, err)
	assert.Equal(t, "401547999", id)
}

func TestClient_FindGameID_NoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(scoreboardFixture))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	t.Run("wrong teams", func(t *testing.T) {
		_, err := client.FindGameID(context.Background(), "Dallas Cowboys", "Philadelphia Eagles",
			time.Date(2025, 11, 2, 18, 0, 0, 0, time.UTC))
		assert.ErrorIs(t, err, entities.ErrStatsUnavailable)
	})

	t.Run("outside 24h window", func(t *testing.T) {
		_, err := client.FindGameID(context.Background(), "Miami Dolphins", "Buffalo Bills",
			time.Date(2025, 11, 5, 18, 0, 0, 0, time.UTC))
		assert.ErrorIs(t, err, entities.ErrStatsUnavailable)
	})
}

func TestClient_FetchGameStats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/summary", r.URL.Path)
		assert.Equal(t, "401547999", r.URL.Query().Get("event"))
		w.Write([]byte(`{
			"header": {"competitions": [{
				"status": {"type": {"completed": true, "description": "Final"}},
				"competitors": [
					{"homeAway": "home", "score": "31", "team": {"displayName": "Miami Dolphins"}},
					{"homeAway": "away", "score": "24", "team": {"displayName": "Buffalo Bills"}}
				]
			}]},
			"boxscore": ` + boxscoreFixture + `
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	result, err := client.FetchGameStats(context.Background(), "401547999")
	require.NoError(t, err)

	assert.True(t, result.Completed)
	assert.Equal(t, 31, result.HomeScore)
	assert.Equal(t, 24, result.AwayScore)
	assert.Len(t, result.PlayerStats, 3)
}

func TestClient_FetchGameStats_NotFinal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"header": {"competitions": [{
				"status": {"type": {"completed": false, "description": "In Progress"}},
				"competitors": []
			}]}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.FetchGameStats(context.Background(), "401547999")
	assert.ErrorIs(t, err, entities.ErrStatsUnavailable)
}

func TestClient_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("upstream down"))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.FetchAllTeams(context.Background())
	require.Error(t, err)

	var upstreamErr *entities.UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, http.StatusServiceUnavailable, upstreamErr.StatusCode)
}
