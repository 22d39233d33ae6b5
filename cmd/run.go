package cmd

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"propbook/config"
	"propbook/database"
	"propbook/domain/services"
	"propbook/providers/draftkings"
	"propbook/providers/espn"
	"propbook/providers/oddsapi"
	"propbook/repository"
)

// Run executes one batch operation and exits. Operations are designed to be
// driven by an external scheduler; each one is independently safe to re-run.
// The ingest-draftkings operation accepts an optional prop category selector
// (rushing, receiving, passing, touchdown); with no argument it ingests all
// supported categories.
func Run(ctx context.Context, operation string, args ...string) error {
	cfg := config.Get()

	log.WithField("operation", operation).Info("Connecting to database")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	uowFactory := repository.NewUnitOfWorkFactory(db)

	switch operation {
	case "ingest-odds":
		client := oddsapi.NewClient(cfg.OddsAPIKey, cfg.OddsAPIBaseURL, cfg.RequestTimeout)
		svc := services.NewIngestionService(uowFactory)
		report, err := svc.IngestFromAggregator(ctx, client, oddsapi.DefaultMarkets)
		if err != nil {
			return err
		}
		logIngestReport(report.Source, report.GamesIngested, report.GamesTotal, report.PropsSaved, report.Errors)
		return nil

	case "ingest-draftkings":
		var selector string
		if len(args) > 0 {
			selector = args[0]
		}
		client := draftkings.NewClient(cfg.DraftKingsBaseURL, cfg.DraftKingsLeague, cfg.RequestTimeout)
		svc := services.NewIngestionService(uowFactory)
		report, err := svc.IngestFromBook(ctx, client, selector)
		if err != nil {
			return err
		}
		logIngestReport(report.Source, report.GamesIngested, report.GamesTotal, report.PropsSaved, report.Errors)
		return nil

	case "sync-rosters":
		results := espn.NewClient(cfg.ESPNBaseURL, cfg.RequestTimeout)
		svc := services.NewRosterSyncService(uowFactory, results)
		report, err := svc.SyncAllRosters(ctx)
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{
			"runId":   report.RunID,
			"teams":   report.TeamsProcessed,
			"added":   report.PlayersAdded,
			"updated": report.PlayersUpdated,
			"errors":  len(report.Errors),
		}).Info("Roster sync finished")
		return nil

	case "settle":
		results := espn.NewClient(cfg.ESPNBaseURL, cfg.RequestTimeout)
		engine := services.NewSettlementEngine(uowFactory, results)
		report, err := engine.SettlePendingGames(ctx)
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{
			"runId":  report.RunID,
			"games":  report.GamesSettled,
			"wagers": report.WagersSettled,
			"errors": len(report.Errors),
		}).Info("Settlement pass finished")
		return nil
	}

	return fmt.Errorf("unknown operation: %s", operation)
}

func logIngestReport(source string, ingested, total, props int, errs []string) {
	log.WithFields(log.Fields{
		"source": source,
		"games":  fmt.Sprintf("%d/%d", ingested, total),
		"props":  props,
		"errors": len(errs),
	}).Info("Ingestion finished")
	for _, e := range errs {
		log.WithField("source", source).Warn(e)
	}
}
