package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"propbook/database"
	"propbook/domain/interfaces"
)

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db  *database.DB
	tx  pgx.Tx
	ctx context.Context

	teamRepo       interfaces.TeamRepository
	playerRepo     interfaces.PlayerRepository
	mappingRepo    interfaces.PlayerTeamMappingRepository
	gameRepo       interfaces.GameRepository
	propRepo       interfaces.PropRepository
	sportsbookRepo interfaces.SportsbookRepository
	userRepo       interfaces.UserRepository
	wagerRepo      interfaces.WagerRepository
	parlayRepo     interfaces.ParlayRepository
}

type unitOfWorkFactory struct {
	db *database.DB
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB) interfaces.UnitOfWorkFactory {
	return &unitOfWorkFactory{db: db}
}

func (f *unitOfWorkFactory) Create() interfaces.UnitOfWork {
	return &unitOfWork{db: f.db}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	u.teamRepo = newTeamRepositoryWithTx(tx)
	u.playerRepo = newPlayerRepositoryWithTx(tx)
	u.mappingRepo = newPlayerTeamMappingRepositoryWithTx(tx)
	u.gameRepo = newGameRepositoryWithTx(tx)
	u.propRepo = newPropRepositoryWithTx(tx)
	u.sportsbookRepo = newSportsbookRepositoryWithTx(tx)
	u.userRepo = newUserRepositoryWithTx(tx)
	u.wagerRepo = newWagerRepositoryWithTx(tx)
	u.parlayRepo = newParlayRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil
	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	if err := u.tx.Rollback(u.ctx); err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil
	return nil
}

// TeamRepository returns the team repository for this unit of work
func (u *unitOfWork) TeamRepository() interfaces.TeamRepository {
	if u.teamRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.teamRepo
}

// PlayerRepository returns the player repository for this unit of work
func (u *unitOfWork) PlayerRepository() interfaces.PlayerRepository {
	if u.playerRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.playerRepo
}

// PlayerTeamMappingRepository returns the mapping repository for this unit of work
func (u *unitOfWork) PlayerTeamMappingRepository() interfaces.PlayerTeamMappingRepository {
	if u.mappingRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.mappingRepo
}

// GameRepository returns the game repository for this unit of work
func (u *unitOfWork) GameRepository() interfaces.GameRepository {
	if u.gameRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.gameRepo
}

// PropRepository returns the prop repository for this unit of work
func (u *unitOfWork) PropRepository() interfaces.PropRepository {
	if u.propRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.propRepo
}

// SportsbookRepository returns the sportsbook repository for this unit of work
func (u *unitOfWork) SportsbookRepository() interfaces.SportsbookRepository {
	if u.sportsbookRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.sportsbookRepo
}

// UserRepository returns the user repository for this unit of work
func (u *unitOfWork) UserRepository() interfaces.UserRepository {
	if u.userRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.userRepo
}

// WagerRepository returns the wager repository for this unit of work
func (u *unitOfWork) WagerRepository() interfaces.WagerRepository {
	if u.wagerRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.wagerRepo
}

// ParlayRepository returns the parlay repository for this unit of work
func (u *unitOfWork) ParlayRepository() interfaces.ParlayRepository {
	if u.parlayRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.parlayRepo
}
