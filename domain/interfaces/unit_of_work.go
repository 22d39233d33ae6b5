package interfaces

import "context"

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	TeamRepository() TeamRepository
	PlayerRepository() PlayerRepository
	PlayerTeamMappingRepository() PlayerTeamMappingRepository
	GameRepository() GameRepository
	PropRepository() PropRepository
	SportsbookRepository() SportsbookRepository
	UserRepository() UserRepository
	WagerRepository() WagerRepository
	ParlayRepository() ParlayRepository
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// Create creates a new UnitOfWork instance
	Create() UnitOfWork
}
