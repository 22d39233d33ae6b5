package draftkings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func subcategoryFrom(r *http.Request) string {
	// templateVars is "<leagueId>,<subcategoryId>"
	parts := strings.SplitN(r.URL.Query().Get("templateVars"), ",", 2)
	return parts[1]
}

func TestClient_FetchProps_SelectorLimitsFetch(t *testing.T) {
	var requested []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = append(requested, subcategoryFrom(r))
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "88808", 5*time.Second)
	_, err := client.FetchProps(context.Background(), "rushing")
	require.NoError(t, err)
	assert.Equal(t, []string{SubcategoryRushingYards}, requested)
}

func TestClient_FetchProps_EmptySelectorFetchesAll(t *testing.T) {
	var requested []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = append(requested, subcategoryFrom(r))
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "88808", 5*time.Second)
	_, err := client.FetchProps(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{
		SubcategoryRushingYards,
		SubcategoryReceivingYards,
		SubcategoryPassingYards,
		SubcategoryTdScorers,
	}, requested)
}

func TestClient_FetchProps_UnknownSelector(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "88808", 5*time.Second)
	_, err := client.FetchProps(context.Background(), "kicking")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kicking")
	assert.Zero(t, requests)
}
