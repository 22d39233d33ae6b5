package services

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"propbook/domain/entities"
	"propbook/domain/interfaces"
)

// ResolvedPlayer is the outcome of a successful identity lookup
type ResolvedPlayer struct {
	TeamName string
	Position string
}

// IdentityResolver resolves a provider-supplied player name to the team and
// position recorded in the standing roster table
type IdentityResolver struct {
	mappings interfaces.PlayerTeamMappingRepository
}

// NewIdentityResolver creates a new IdentityResolver
func NewIdentityResolver(mappings interfaces.PlayerTeamMappingRepository) *IdentityResolver {
	return &IdentityResolver{mappings: mappings}
}

// ResolvePlayer looks up a player by exact name, then by normalized name,
// then verifies the player belongs to one of the game's two teams. A player
// resolved to a third team is not on this game's roster and must be dropped
// rather than attached to the wrong game.
func (r *IdentityResolver) ResolvePlayer(ctx context.Context, name, homeTeam, awayTeam string) (*ResolvedPlayer, error) {
	mapping, err := r.mappings.GetActiveByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if mapping == nil {
		mapping, err = r.fuzzyLookup(ctx, name)
		if err != nil {
			return nil, err
		}
	}

	if mapping == nil {
		return nil, entities.ErrPlayerNotFound
	}

	if mapping.TeamName != homeTeam && mapping.TeamName != awayTeam {
		log.WithFields(log.Fields{
			"player":     name,
			"mappedTeam": mapping.TeamName,
			"homeTeam":   homeTeam,
			"awayTeam":   awayTeam,
		}).Debug("Player mapped to a team outside this matchup")
		return nil, entities.ErrPlayerNotInGame
	}

	return &ResolvedPlayer{
		TeamName: mapping.TeamName,
		Position: mapping.Position,
	}, nil
}

func (r *IdentityResolver) fuzzyLookup(ctx context.Context, name string) (*entities.PlayerTeamMapping, error) {
	active, err := r.mappings.GetAllActive(ctx)
	if err != nil {
		return nil, err
	}

	target := NormalizePlayerName(name)
	for _, m := range active {
		if NormalizePlayerName(m.PlayerName) == target {
			return m, nil
		}
	}
	return nil, nil
}

// NormalizePlayerName lowercases, strips apostrophes, hyphens and periods,
// and collapses interior whitespace so provider spelling variations compare
// equal ("De'Von Achane" vs "DeVon Achane", "A.J. Brown" vs "AJ Brown")
func NormalizePlayerName(name string) string {
	s := strings.ToLower(name)
	replacer := strings.NewReplacer("'", "", "’", "", "-", "", ".", "")
	s = replacer.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
