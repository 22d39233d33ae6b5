package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"propbook/domain/entities"
	"propbook/domain/interfaces"
)

// rosterTeamDelay spaces roster requests out so the results feed is never
// hit in a burst
const rosterTeamDelay = time.Second

// RosterSyncService refreshes the standing player-team mapping table from the
// results provider's rosters. A full refresh flips a team's previous mappings
// inactive before marking current ones active, so a traded player resolves
// only via the new team.
type RosterSyncService struct {
	uowFactory interfaces.UnitOfWorkFactory
	results    interfaces.ResultsProvider
	sleep      func(ctx context.Context, d time.Duration) error
}

// NewRosterSyncService creates a new RosterSyncService
func NewRosterSyncService(uowFactory interfaces.UnitOfWorkFactory, results interfaces.ResultsProvider) *RosterSyncService {
	return &RosterSyncService{
		uowFactory: uowFactory,
		results:    results,
		sleep:      sleepCtx,
	}
}

// SyncAllRosters refreshes every team's roster sequentially. One team's
// failure is recorded and skipped without aborting the run.
func (s *RosterSyncService) SyncAllRosters(ctx context.Context) (*entities.RosterSyncReport, error) {
	report := &entities.RosterSyncReport{RunID: uuid.New().String()}

	teams, err := s.results.FetchAllTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	log.WithFields(log.Fields{
		"runId": report.RunID,
		"teams": len(teams),
	}).Info("Starting roster sync")

	for i, team := range teams {
		if i > 0 {
			if err := s.sleep(ctx, rosterTeamDelay); err != nil {
				return report, err
			}
		}
		if err := s.syncTeam(ctx, team, report); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("team %s: %v", team.DisplayName, err))
			log.WithError(err).WithField("team", team.DisplayName).Error("Failed to sync roster")
			continue
		}
		report.TeamsProcessed++
	}

	log.WithFields(log.Fields{
		"runId":   report.RunID,
		"teams":   report.TeamsProcessed,
		"added":   report.PlayersAdded,
		"updated": report.PlayersUpdated,
		"errors":  len(report.Errors),
	}).Info("Roster sync complete")
	return report, nil
}

func (s *RosterSyncService) syncTeam(ctx context.Context, team *entities.RosterTeam, report *entities.RosterSyncReport) error {
	athletes, err := s.results.FetchTeamRoster(ctx, team.ID)
	if err != nil {
		return err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	teamRow, err := uow.TeamRepository().GetOrCreate(ctx, team.DisplayName, team.Abbreviation)
	if err != nil {
		return fmt.Errorf("failed to upsert team: %w", err)
	}

	// A player is only "previously active" if the active mapping is on this
	// team; a traded player is counted as an addition on the new team.
	previouslyActive := make(map[string]bool, len(athletes))
	for _, athlete := range athletes {
		existing, err := uow.PlayerTeamMappingRepository().GetActiveByName(ctx, athlete.FullName)
		if err != nil {
			return err
		}
		if existing != nil && existing.TeamName == team.DisplayName {
			previouslyActive[athlete.FullName] = true
		}
	}

	if err := uow.PlayerTeamMappingRepository().DeactivateTeam(ctx, team.DisplayName); err != nil {
		return fmt.Errorf("failed to deactivate previous mappings: %w", err)
	}

	names := make([]string, 0, len(athletes))
	for _, athlete := range athletes {
		names = append(names, athlete.FullName)

		mapping := &entities.PlayerTeamMapping{
			PlayerName: athlete.FullName,
			TeamName:   team.DisplayName,
			Position:   athlete.Position,
			Active:     true,
		}
		if athlete.Jersey != "" {
			jersey := athlete.Jersey
			mapping.JerseyNumber = &jersey
		}
		if err := uow.PlayerTeamMappingRepository().Upsert(ctx, mapping); err != nil {
			return fmt.Errorf("failed to upsert mapping for %s: %w", athlete.FullName, err)
		}

		if _, err := uow.PlayerRepository().Upsert(ctx, athlete.FullName, athlete.Position, teamRow.ID); err != nil {
			return fmt.Errorf("failed to upsert player %s: %w", athlete.FullName, err)
		}

		if previouslyActive[athlete.FullName] {
			report.PlayersUpdated++
		} else {
			report.PlayersAdded++
		}
	}

	if err := uow.PlayerRepository().DeactivateMissing(ctx, teamRow.ID, names); err != nil {
		return fmt.Errorf("failed to deactivate departed players: %w", err)
	}

	return uow.Commit()
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
