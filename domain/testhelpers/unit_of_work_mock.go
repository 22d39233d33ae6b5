package testhelpers

import (
	"context"

	"propbook/domain/interfaces"
)

// MockUnitOfWork bundles repository mocks behind the UnitOfWork interface.
// Begin, Commit and Rollback are no-ops that record call counts.
type MockUnitOfWork struct {
	TeamRepo       *MockTeamRepository
	PlayerRepo     *MockPlayerRepository
	MappingRepo    *MockPlayerTeamMappingRepository
	GameRepo       *MockGameRepository
	PropRepo       *MockPropRepository
	SportsbookRepo *MockSportsbookRepository
	UserRepo       *MockUserRepository
	WagerRepo      *MockWagerRepository
	ParlayRepo     *MockParlayRepository

	BeginCalls    int
	CommitCalls   int
	RollbackCalls int
}

// NewMockUnitOfWork creates a MockUnitOfWork with fresh repository mocks
func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		TeamRepo:       &MockTeamRepository{},
		PlayerRepo:     &MockPlayerRepository{},
		MappingRepo:    &MockPlayerTeamMappingRepository{},
		GameRepo:       &MockGameRepository{},
		PropRepo:       &MockPropRepository{},
		SportsbookRepo: &MockSportsbookRepository{},
		UserRepo:       &MockUserRepository{},
		WagerRepo:      &MockWagerRepository{},
		ParlayRepo:     &MockParlayRepository{},
	}
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	m.BeginCalls++
	return nil
}

func (m *MockUnitOfWork) Commit() error {
	m.CommitCalls++
	return nil
}

func (m *MockUnitOfWork) Rollback() error {
	m.RollbackCalls++
	return nil
}

func (m *MockUnitOfWork) TeamRepository() interfaces.TeamRepository { return m.TeamRepo }
func (m *MockUnitOfWork) PlayerRepository() interfaces.PlayerRepository {
	return m.PlayerRepo
}
func (m *MockUnitOfWork) PlayerTeamMappingRepository() interfaces.PlayerTeamMappingRepository {
	return m.MappingRepo
}
func (m *MockUnitOfWork) GameRepository() interfaces.GameRepository { return m.GameRepo }
func (m *MockUnitOfWork) PropRepository() interfaces.PropRepository { return m.PropRepo }
func (m *MockUnitOfWork) SportsbookRepository() interfaces.SportsbookRepository {
	return m.SportsbookRepo
}
func (m *MockUnitOfWork) UserRepository() interfaces.UserRepository    { return m.UserRepo }
func (m *MockUnitOfWork) WagerRepository() interfaces.WagerRepository  { return m.WagerRepo }
func (m *MockUnitOfWork) ParlayRepository() interfaces.ParlayRepository {
	return m.ParlayRepo
}

// MockUnitOfWorkFactory returns the same MockUnitOfWork from every Create call
type MockUnitOfWorkFactory struct {
	UnitOfWork *MockUnitOfWork
}

// NewMockUnitOfWorkFactory creates a factory around a fresh MockUnitOfWork
func NewMockUnitOfWorkFactory() *MockUnitOfWorkFactory {
	return &MockUnitOfWorkFactory{UnitOfWork: NewMockUnitOfWork()}
}

func (f *MockUnitOfWorkFactory) Create() interfaces.UnitOfWork {
	return f.UnitOfWork
}
