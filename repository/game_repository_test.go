package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propbook/domain/entities"
	"propbook/domain/interfaces"
	"propbook/repository/testutil"
)

func TestGameRepository_Upsert_FuzzyDedup(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	teams := NewTeamRepository(testDB.DB)
	games := NewGameRepository(testDB.DB)

	home, err := teams.GetOrCreate(ctx, "Miami Dolphins", "MIA")
	require.NoError(t, err)
	away, err := teams.GetOrCreate(ctx, "Buffalo Bills", "BUF")
	require.NoError(t, err)

	kickoff := testutil.Kickoff()

	first, err := games.Upsert(ctx, interfaces.UpsertGameParams{
		HomeTeamID:   home.ID,
		AwayTeamID:   away.ID,
		CommenceTime: kickoff,
		ExternalID:   "odds-evt-1",
		Source:       entities.SourceOddsAPI,
	})
	require.NoError(t, err)

	t.Run("same matchup 30 minutes off resolves to one row", func(t *testing.T) {
		second, err := games.Upsert(ctx, interfaces.UpsertGameParams{
			HomeTeamID:   home.ID,
			AwayTeamID:   away.ID,
			CommenceTime: kickoff.Add(30 * time.Minute),
			ExternalID:   "dk-evt-9",
			Source:       entities.SourceDraftKings,
		})
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		require.NotNil(t, second.ExternalID)
		require.NotNil(t, second.BookExternalID)
		assert.Equal(t, "odds-evt-1", *second.ExternalID)
		assert.Equal(t, "dk-evt-9", *second.BookExternalID)
		// The earliest-seen kickoff is kept
		assert.True(t, second.CommenceTime.Equal(kickoff))
	})

	t.Run("existing external id is never overwritten", func(t *testing.T) {
		again, err := games.Upsert(ctx, interfaces.UpsertGameParams{
			HomeTeamID:   home.ID,
			AwayTeamID:   away.ID,
			CommenceTime: kickoff,
			ExternalID:   "odds-evt-other",
			Source:       entities.SourceOddsAPI,
		})
		require.NoError(t, err)

		assert.Equal(t, first.ID, again.ID)
		assert.Equal(t, "odds-evt-1", *again.ExternalID)
	})

	t.Run("same matchup two hours off is a different game", func(t *testing.T) {
		other, err := games.Upsert(ctx, interfaces.UpsertGameParams{
			HomeTeamID:   home.ID,
			AwayTeamID:   away.ID,
			CommenceTime: kickoff.Add(2 * time.Hour),
			ExternalID:   "odds-evt-2",
			Source:       entities.SourceOddsAPI,
		})
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, other.ID)
	})

	t.Run("reversed home and away is a different game", func(t *testing.T) {
		reversed, err := games.Upsert(ctx, interfaces.UpsertGameParams{
			HomeTeamID:   away.ID,
			AwayTeamID:   home.ID,
			CommenceTime: kickoff,
			ExternalID:   "odds-evt-3",
			Source:       entities.SourceOddsAPI,
		})
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, reversed.ID)
	})
}

func TestGameRepository_ClaimCompleted(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	s := seedGameWithProp(t, testDB, testutil.Kickoff())
	games := NewGameRepository(testDB.DB)

	claimed, err := games.ClaimCompleted(ctx, s.Game.ID, 31, 24, "espn-401")
	require.NoError(t, err)
	assert.True(t, claimed)

	game, err := games.GetByID(ctx, s.Game.ID)
	require.NoError(t, err)
	assert.True(t, game.Completed)
	require.NotNil(t, game.HomeScore)
	assert.Equal(t, 31, *game.HomeScore)
	assert.Equal(t, 24, *game.AwayScore)
	require.NotNil(t, game.ResultsExternalID)
	assert.Equal(t, "espn-401", *game.ResultsExternalID)

	// A second claim loses the race and must not re-settle
	claimed, err = games.ClaimCompleted(ctx, s.Game.ID, 31, 24, "espn-401")
	require.NoError(t, err)
	assert.False(t, claimed)
}

func TestGameRepository_GetPendingOlderThan(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	s := seedGameWithProp(t, testDB, testutil.Kickoff())
	games := NewGameRepository(testDB.DB)

	t.Run("game before cutoff is returned with team rows", func(t *testing.T) {
		pending, err := games.GetPendingOlderThan(ctx, testutil.Kickoff().Add(5*time.Hour))
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, s.Game.ID, pending[0].ID)
		assert.Equal(t, "Miami Dolphins", pending[0].HomeTeam.Name)
		assert.Equal(t, "Buffalo Bills", pending[0].AwayTeam.Name)
	})

	t.Run("game after cutoff is excluded", func(t *testing.T) {
		pending, err := games.GetPendingOlderThan(ctx, testutil.Kickoff().Add(-time.Hour))
		require.NoError(t, err)
		assert.Empty(t, pending)
	})

	t.Run("completed game is excluded", func(t *testing.T) {
		_, err := games.ClaimCompleted(ctx, s.Game.ID, 31, 24, "espn-401")
		require.NoError(t, err)

		pending, err := games.GetPendingOlderThan(ctx, testutil.Kickoff().Add(5*time.Hour))
		require.NoError(t, err)
		assert.Empty(t, pending)
	})
}

func TestGameRepository_FindDuplicatesAndMerge(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	s := seedGameWithProp(t, testDB, testutil.Kickoff())
	games := NewGameRepository(testDB.DB)
	props := NewPropRepository(testDB.DB)

	// Force a duplicate row the fuzzy upsert would normally prevent, the
	// way drifted kickoff times can produce one
	var dupID int64
	err := testDB.DB.QueryRow(ctx, `
		INSERT INTO games (home_team_id, away_team_id, commence_time, book_external_id)
		VALUES ($1, $2, $3, 'dk-dup')
		RETURNING id
	`, s.HomeTeam.ID, s.AwayTeam.ID, testutil.Kickoff().Add(45*time.Minute)).Scan(&dupID)
	require.NoError(t, err)

	// A prop on the duplicate that collides with the seeded one, plus a
	// distinct prop that must move over intact
	line := 75.5
	colliding, err := props.Upsert(ctx, dupID, s.Player.ID, entities.PropRushYds, &line, entities.SourceOddsAPI)
	require.NoError(t, err)
	require.NoError(t, props.AppendOdds(ctx, testutil.CreateTestOdds(colliding.ID, s.Book.ID, -110, -110)))

	tdLine := 0.5
	distinct, err := props.Upsert(ctx, dupID, s.Player.ID, entities.PropRushTds, &tdLine, entities.SourceOddsAPI)
	require.NoError(t, err)

	pairs, err := games.FindDuplicates(ctx)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, s.Game.ID, pairs[0][0].ID)
	assert.Equal(t, dupID, pairs[0][1].ID)

	require.NoError(t, games.Merge(ctx, s.Game.ID, dupID))

	removed, err := games.GetByID(ctx, dupID)
	require.NoError(t, err)
	assert.Nil(t, removed)

	kept, err := games.GetByID(ctx, s.Game.ID)
	require.NoError(t, err)
	require.NotNil(t, kept.BookExternalID)
	assert.Equal(t, "dk-dup", *kept.BookExternalID)

	// Colliding prop folded into the survivor, odds snapshot repointed
	count, err := props.CountOdds(ctx, s.Prop.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	merged, err := props.GetByGame(ctx, s.Game.ID)
	require.NoError(t, err)
	require.Len(t, merged, 2)

	moved, err := props.GetByID(ctx, distinct.ID)
	require.NoError(t, err)
	assert.Equal(t, s.Game.ID, moved.GameID)
}
