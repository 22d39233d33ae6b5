package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"propbook/database"
	"propbook/domain/entities"
	"propbook/domain/interfaces"
)

// GameRepository implements game data access
type GameRepository struct {
	q queryable
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *database.DB) *GameRepository {
	return &GameRepository{q: db.Pool}
}

// newGameRepositoryWithTx creates a new game repository with a transaction
func newGameRepositoryWithTx(tx queryable) *GameRepository {
	return &GameRepository{q: tx}
}

const gameColumns = `id, external_id, book_external_id, results_external_id,
	home_team_id, away_team_id, commence_time, completed, home_score, away_score, created_at`

// externalIDColumn maps a prop source to the game column holding that
// provider's event identifier
func externalIDColumn(source string) (string, error) {
	switch source {
	case entities.SourceOddsAPI:
		return "external_id", nil
	case entities.SourceDraftKings:
		return "book_external_id", nil
	}
	return "", fmt.Errorf("unknown prop source %q", source)
}

// Upsert resolves a game by matchup identity rather than provider identifier:
// the same (home, away) pair within an hour of the stored kickoff is the same
// game no matter which provider reported it. The matched row keeps its
// earliest-seen commence time and gains the new provider's external id when
// it lacks one.
func (r *GameRepository) Upsert(ctx context.Context, params interfaces.UpsertGameParams) (*entities.Game, error) {
	column, err := externalIDColumn(params.Source)
	if err != nil {
		return nil, err
	}

	findQuery := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE home_team_id = $1
		  AND away_team_id = $2
		  AND commence_time BETWEEN $3::timestamptz - INTERVAL '1 hour'
		                        AND $3::timestamptz + INTERVAL '1 hour'
		ORDER BY created_at
		LIMIT 1
	`

	game, err := scanGame(r.q.QueryRow(ctx, findQuery, params.HomeTeamID, params.AwayTeamID, params.CommenceTime))
	if err == nil {
		updateQuery := fmt.Sprintf(`
			UPDATE games
			SET %s = COALESCE(%s, $2)
			WHERE id = $1
			RETURNING `+gameColumns, column, column)
		game, err = scanGame(r.q.QueryRow(ctx, updateQuery, game.ID, params.ExternalID))
		if err != nil {
			return nil, fmt.Errorf("failed to refresh game external id: %w", err)
		}
		return game, nil
	}
	if err != pgx.ErrNoRows {
		return nil, fmt.Errorf("failed to find game: %w", err)
	}

	insertQuery := fmt.Sprintf(`
		INSERT INTO games (home_team_id, away_team_id, commence_time, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING `+gameColumns, column)

	game, err = scanGame(r.q.QueryRow(ctx, insertQuery,
		params.HomeTeamID, params.AwayTeamID, params.CommenceTime, params.ExternalID))
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return game, nil
}

// GetByID retrieves a game by its ID
func (r *GameRepository) GetByID(ctx context.Context, id int64) (*entities.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE id = $1`

	game, err := scanGame(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game %d: %w", id, err)
	}

	return game, nil
}

// GetPendingOlderThan returns incomplete games that commenced before the
// cutoff, joined with both team rows
func (r *GameRepository) GetPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*entities.GameDetail, error) {
	query := `
		SELECT g.id, g.external_id, g.book_external_id, g.results_external_id,
			g.home_team_id, g.away_team_id, g.commence_time, g.completed,
			g.home_score, g.away_score, g.created_at,
			ht.id, ht.name, ht.abbreviation, ht.created_at,
			aw.id, aw.name, aw.abbreviation, aw.created_at
		FROM games g
		JOIN teams ht ON ht.id = g.home_team_id
		JOIN teams aw ON aw.id = g.away_team_id
		WHERE NOT g.completed
		  AND g.commence_time < $1
		ORDER BY g.commence_time
	`

	rows, err := r.q.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending games: %w", err)
	}
	defer rows.Close()

	var games []*entities.GameDetail
	for rows.Next() {
		var detail entities.GameDetail
		var home, away entities.Team
		err := rows.Scan(
			&detail.ID,
			&detail.ExternalID,
			&detail.BookExternalID,
			&detail.ResultsExternalID,
			&detail.HomeTeamID,
			&detail.AwayTeamID,
			&detail.CommenceTime,
			&detail.Completed,
			&detail.HomeScore,
			&detail.AwayScore,
			&detail.CreatedAt,
			&home.ID, &home.Name, &home.Abbreviation, &home.CreatedAt,
			&away.ID, &away.Name, &away.Abbreviation, &away.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pending game: %w", err)
		}
		detail.HomeTeam = &home
		detail.AwayTeam = &away
		games = append(games, &detail)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pending games: %w", err)
	}

	return games, nil
}

// ClaimCompleted conditionally marks a game completed with its final score.
// The NOT completed guard makes concurrent settlement runs race safely: only
// one run observes a row transition and proceeds to settle wagers.
func (r *GameRepository) ClaimCompleted(ctx context.Context, gameID int64, homeScore, awayScore int, resultsExternalID string) (bool, error) {
	query := `
		UPDATE games
		SET completed = TRUE,
			home_score = $2,
			away_score = $3,
			results_external_id = COALESCE(results_external_id, $4)
		WHERE id = $1 AND NOT completed
	`

	result, err := r.q.Exec(ctx, query, gameID, homeScore, awayScore, resultsExternalID)
	if err != nil {
		return false, fmt.Errorf("failed to claim game %d: %w", gameID, err)
	}

	return result.RowsAffected() == 1, nil
}

// FindDuplicates returns pairs of game rows describing the same matchup
// within the fuzzy time window. The first element of each pair is the older
// row, the one Merge keeps.
func (r *GameRepository) FindDuplicates(ctx context.Context) ([][2]*entities.Game, error) {
	query := `
		SELECT g1.id, g1.external_id, g1.book_external_id, g1.results_external_id,
			g1.home_team_id, g1.away_team_id, g1.commence_time, g1.completed,
			g1.home_score, g1.away_score, g1.created_at,
			g2.id, g2.external_id, g2.book_external_id, g2.results_external_id,
			g2.home_team_id, g2.away_team_id, g2.commence_time, g2.completed,
			g2.home_score, g2.away_score, g2.created_at
		FROM games g1
		JOIN games g2 ON g2.home_team_id = g1.home_team_id
			AND g2.away_team_id = g1.away_team_id
			AND g2.id > g1.id
			AND g2.commence_time BETWEEN g1.commence_time - INTERVAL '1 hour'
			                         AND g1.commence_time + INTERVAL '1 hour'
		ORDER BY g1.id
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to find duplicate games: %w", err)
	}
	defer rows.Close()

	var pairs [][2]*entities.Game
	for rows.Next() {
		var keep, dup entities.Game
		err := rows.Scan(
			&keep.ID, &keep.ExternalID, &keep.BookExternalID, &keep.ResultsExternalID,
			&keep.HomeTeamID, &keep.AwayTeamID, &keep.CommenceTime, &keep.Completed,
			&keep.HomeScore, &keep.AwayScore, &keep.CreatedAt,
			&dup.ID, &dup.ExternalID, &dup.BookExternalID, &dup.ResultsExternalID,
			&dup.HomeTeamID, &dup.AwayTeamID, &dup.CommenceTime, &dup.Completed,
			&dup.HomeScore, &dup.AwayScore, &dup.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan duplicate pair: %w", err)
		}
		pairs = append(pairs, [2]*entities.Game{&keep, &dup})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate duplicate pairs: %w", err)
	}

	return pairs, nil
}

// Merge folds the removed game's props into the kept game and deletes the
// row. Props that would collide with an existing tuple on the kept game have
// their odds snapshots, wagers and parlay legs repointed at the surviving
// prop first, then the duplicate prop rows are dropped.
func (r *GameRepository) Merge(ctx context.Context, keepID, removeID int64) error {
	statements := []string{
		`UPDATE prop_odds o
		 SET prop_id = kept.id
		 FROM player_props dup
		 JOIN player_props kept ON kept.game_id = $1
			AND kept.player_id = dup.player_id
			AND kept.prop_type = dup.prop_type
			AND kept.line IS NOT DISTINCT FROM dup.line
			AND kept.source = dup.source
		 WHERE o.prop_id = dup.id AND dup.game_id = $2`,

		`UPDATE wagers w
		 SET prop_id = kept.id
		 FROM player_props dup
		 JOIN player_props kept ON kept.game_id = $1
			AND kept.player_id = dup.player_id
			AND kept.prop_type = dup.prop_type
			AND kept.line IS NOT DISTINCT FROM dup.line
			AND kept.source = dup.source
		 WHERE w.prop_id = dup.id AND dup.game_id = $2`,

		`UPDATE parlay_legs l
		 SET prop_id = kept.id
		 FROM player_props dup
		 JOIN player_props kept ON kept.game_id = $1
			AND kept.player_id = dup.player_id
			AND kept.prop_type = dup.prop_type
			AND kept.line IS NOT DISTINCT FROM dup.line
			AND kept.source = dup.source
		 WHERE l.prop_id = dup.id AND dup.game_id = $2`,

		`DELETE FROM player_props dup
		 USING player_props kept
		 WHERE dup.game_id = $2
		   AND kept.game_id = $1
		   AND kept.player_id = dup.player_id
		   AND kept.prop_type = dup.prop_type
		   AND kept.line IS NOT DISTINCT FROM dup.line
		   AND kept.source = dup.source`,

		`UPDATE player_props SET game_id = $1 WHERE game_id = $2`,

		`UPDATE games keep
		 SET external_id = COALESCE(keep.external_id, dup.external_id),
			book_external_id = COALESCE(keep.book_external_id, dup.book_external_id),
			results_external_id = COALESCE(keep.results_external_id, dup.results_external_id)
		 FROM games dup
		 WHERE keep.id = $1 AND dup.id = $2`,

		`DELETE FROM games WHERE id = $2`,
	}

	for _, stmt := range statements {
		if _, err := r.q.Exec(ctx, stmt, keepID, removeID); err != nil {
			return fmt.Errorf("failed to merge game %d into %d: %w", removeID, keepID, err)
		}
	}

	return nil
}

func scanGame(row pgx.Row) (*entities.Game, error) {
	var game entities.Game
	err := row.Scan(
		&game.ID,
		&game.ExternalID,
		&game.BookExternalID,
		&game.ResultsExternalID,
		&game.HomeTeamID,
		&game.AwayTeamID,
		&game.CommenceTime,
		&game.Completed,
		&game.HomeScore,
		&game.AwayScore,
		&game.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &game, nil
}
