package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"propbook/domain/entities"
	"propbook/domain/interfaces"
	"propbook/repository/testutil"
)

// seed holds the rows most integration tests start from
type seed struct {
	HomeTeam *entities.Team
	AwayTeam *entities.Team
	Game     *entities.Game
	Player   *entities.Player
	Prop     *entities.PlayerProp
	Book     *entities.Sportsbook
	User     *entities.User
}

// seedGameWithProp creates a full game / player / prop / sportsbook chain
// plus a funded user
func seedGameWithProp(t *testing.T, testDB *testutil.TestDatabase, commenceTime time.Time) *seed {
	t.Helper()
	ctx := context.Background()

	home, err := NewTeamRepository(testDB.DB).GetOrCreate(ctx, "Miami Dolphins", "MIA")
	require.NoError(t, err)
	away, err := NewTeamRepository(testDB.DB).GetOrCreate(ctx, "Buffalo Bills", "BUF")
	require.NoError(t, err)

	game, err := NewGameRepository(testDB.DB).Upsert(ctx, interfaces.UpsertGameParams{
		HomeTeamID:   home.ID,
		AwayTeamID:   away.ID,
		CommenceTime: commenceTime,
		ExternalID:   "evt-seed-1",
		Source:       entities.SourceOddsAPI,
	})
	require.NoError(t, err)

	player, err := NewPlayerRepository(testDB.DB).Upsert(ctx, "Raheem Mostert", "RB", home.ID)
	require.NoError(t, err)

	line := 75.5
	prop, err := NewPropRepository(testDB.DB).Upsert(ctx, game.ID, player.ID, entities.PropRushYds, &line, entities.SourceOddsAPI)
	require.NoError(t, err)

	book, err := NewSportsbookRepository(testDB.DB).GetOrCreate(ctx, "DraftKings")
	require.NoError(t, err)

	user, err := NewUserRepository(testDB.DB).Create(ctx, "bettor", "bettor@example.com", "hash", 1000)
	require.NoError(t, err)

	return &seed{
		HomeTeam: home,
		AwayTeam: away,
		Game:     game,
		Player:   player,
		Prop:     prop,
		Book:     book,
		User:     user,
	}
}
