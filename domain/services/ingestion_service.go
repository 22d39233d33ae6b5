package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"propbook/domain/entities"
	"propbook/domain/interfaces"
)

// IngestionService persists normalized provider output. Each game is
// processed to completion before the next; a bad prop is logged and skipped
// so one malformed record never blocks the rest of a batch.
type IngestionService struct {
	uowFactory interfaces.UnitOfWorkFactory
	now        func() time.Time
}

// NewIngestionService creates a new IngestionService
func NewIngestionService(uowFactory interfaces.UnitOfWorkFactory) *IngestionService {
	return &IngestionService{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// IngestFromAggregator fetches every upcoming game from the multi-book
// aggregator and persists its props
func (s *IngestionService) IngestFromAggregator(ctx context.Context, provider interfaces.AggregatorProvider, markets []string) (*entities.IngestReport, error) {
	games, err := provider.FetchAllUpcoming(ctx, markets)
	if err != nil {
		return nil, fmt.Errorf("aggregator fetch failed: %w", err)
	}
	return s.ingest(ctx, games, provider.Source())
}

// IngestFromBook fetches prop categories from the single-book feed and
// persists them. An empty selector ingests every supported category.
func (s *IngestionService) IngestFromBook(ctx context.Context, provider interfaces.BookProvider, selector string) (*entities.IngestReport, error) {
	games, err := provider.FetchProps(ctx, selector)
	if err != nil {
		return nil, fmt.Errorf("book fetch failed: %w", err)
	}
	return s.ingest(ctx, games, provider.Source())
}

func (s *IngestionService) ingest(ctx context.Context, games []*entities.NormalizedGame, source string) (*entities.IngestReport, error) {
	report := &entities.IngestReport{
		RunID:      uuid.New().String(),
		Source:     source,
		GamesTotal: len(games),
		StartedAt:  s.now(),
	}

	log.WithFields(log.Fields{
		"runId":  report.RunID,
		"source": source,
		"games":  len(games),
	}).Info("Starting ingestion batch")

	for _, game := range games {
		if err := s.ingestGame(ctx, game, source, report); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("game %s: %v", game.ExternalID, err))
			log.WithError(err).WithFields(log.Fields{
				"externalId": game.ExternalID,
				"homeTeam":   game.HomeTeam,
				"awayTeam":   game.AwayTeam,
			}).Error("Failed to ingest game")
			continue
		}
		report.GamesIngested++
	}

	report.FinishedAt = s.now()
	log.WithFields(log.Fields{
		"runId":   report.RunID,
		"games":   report.GamesIngested,
		"props":   report.PropsSaved,
		"skipped": report.PropsSkipped,
		"errors":  len(report.Errors),
	}).Info("Ingestion batch complete")
	return report, nil
}

func (s *IngestionService) ingestGame(ctx context.Context, game *entities.NormalizedGame, source string, report *entities.IngestReport) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	homeTeam, err := uow.TeamRepository().GetOrCreate(ctx, game.HomeTeam, "")
	if err != nil {
		return fmt.Errorf("failed to upsert home team: %w", err)
	}
	awayTeam, err := uow.TeamRepository().GetOrCreate(ctx, game.AwayTeam, "")
	if err != nil {
		return fmt.Errorf("failed to upsert away team: %w", err)
	}

	gameRow, err := uow.GameRepository().Upsert(ctx, interfaces.UpsertGameParams{
		HomeTeamID:   homeTeam.ID,
		AwayTeamID:   awayTeam.ID,
		CommenceTime: game.CommenceTime,
		ExternalID:   game.ExternalID,
		Source:       source,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert game: %w", err)
	}

	resolver := NewIdentityResolver(uow.PlayerTeamMappingRepository())
	for _, prop := range game.Props {
		if err := s.ingestProp(ctx, uow, resolver, gameRow, homeTeam, awayTeam, prop, source); err != nil {
			report.PropsSkipped++
			log.WithError(err).WithFields(log.Fields{
				"player":   prop.PlayerName,
				"propType": prop.PropType,
			}).Debug("Skipping prop")
			continue
		}
		report.PropsSaved++
	}

	return uow.Commit()
}

func (s *IngestionService) ingestProp(ctx context.Context, uow interfaces.UnitOfWork, resolver *IdentityResolver, game *entities.Game, homeTeam, awayTeam *entities.Team, prop entities.NormalizedProp, source string) error {
	if prop.Line == nil && !entities.CategoricalPropType(prop.PropType) && prop.PropType != entities.PropAnytimeTd {
		return errors.New("missing line on a numeric prop type")
	}

	resolved, err := resolver.ResolvePlayer(ctx, prop.PlayerName, homeTeam.Name, awayTeam.Name)
	if err != nil {
		return err
	}

	teamID := homeTeam.ID
	if resolved.TeamName == awayTeam.Name {
		teamID = awayTeam.ID
	}

	player, err := uow.PlayerRepository().Upsert(ctx, prop.PlayerName, resolved.Position, teamID)
	if err != nil {
		return fmt.Errorf("failed to upsert player: %w", err)
	}

	propRow, err := uow.PropRepository().Upsert(ctx, game.ID, player.ID, prop.PropType, prop.Line, source)
	if err != nil {
		return fmt.Errorf("failed to upsert prop: %w", err)
	}

	fetchedAt := s.now()
	for _, quote := range prop.AllOdds {
		book, err := uow.SportsbookRepository().GetOrCreate(ctx, quote.Sportsbook)
		if err != nil {
			log.WithError(err).WithField("sportsbook", quote.Sportsbook).Warn("Failed to upsert sportsbook, dropping quote")
			continue
		}
		odds := &entities.PropOdds{
			PropID:       propRow.ID,
			SportsbookID: book.ID,
			Source:       source,
			OverOdds:     quote.OverOdds,
			UnderOdds:    quote.UnderOdds,
			OutcomeType:  quote.OutcomeType,
			SingleOdds:   quote.SingleOdds,
			FetchedAt:    fetchedAt,
		}
		if err := uow.PropRepository().AppendOdds(ctx, odds); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"propId":     propRow.ID,
				"sportsbook": quote.Sportsbook,
			}).Warn("Failed to append odds snapshot")
		}
	}

	return nil
}
