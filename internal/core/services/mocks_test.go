package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/zhurnal-erp/zhurnal_backend/internal/core/domain"
	portsrepo "github.com/zhurnal-erp/zhurnal_backend/internal/core/ports/repositories"
	portssvc "github.com/zhurnal-erp/zhurnal_backend/internal/core/ports/services"
)

// --- Mock CompanyAuthorizer ---

type MockCompanyAuthorizer struct {
	mock.Mock
}

var _ portssvc.CompanyAuthorizerSvc = (*MockCompanyAuthorizer)(nil)

func (m *MockCompanyAuthorizer) AuthorizeUserAction(ctx context.Context, userID, companyID string, requiredRole domain.UserCompanyRole) error {
	args := m.Called(ctx, userID, companyID, requiredRole)
	return args.Error(0)
}

// --- Mock JournalRepository ---

type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, companyID, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, companyID, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindJournalsByIDs(ctx context.Context, companyID string, journalIDs []string) (map[string]domain.Journal, error) {
	args := m.Called(ctx, companyID, journalIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindChildJournals(ctx context.Context, companyID, journalID string) ([]domain.Journal, error) {
	args := m.Called(ctx, companyID, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindJournalsByCompany(ctx context.Context, companyID string) ([]domain.Journal, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) CountChildJournals(ctx context.Context, companyID, journalID string) (int, error) {
	args := m.Called(ctx, companyID, journalID)
	return args.Int(0), args.Error(1)
}

func (m *MockJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal) error {
	args := m.Called(ctx, journal)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateJournal(ctx context.Context, journal domain.Journal) error {
	args := m.Called(ctx, journal)
	return args.Error(0)
}

func (m *MockJournalRepository) DeleteJournal(ctx context.Context, companyID, journalID string) error {
	args := m.Called(ctx, companyID, journalID)
	return args.Error(0)
}

// --- Mock LinkRepository ---

type MockLinkRepository struct {
	mock.Mock
}

var _ portsrepo.LinkRepositoryFacade = (*MockLinkRepository)(nil)

func (m *MockLinkRepository) FindPartnerLinkByID(ctx context.Context, companyID, linkID string) (*domain.JournalPartnerLink, error) {
	args := m.Called(ctx, companyID, linkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalPartnerLink), args.Error(1)
}

func (m *MockLinkRepository) FindGoodLinkByID(ctx context.Context, companyID, linkID string) (*domain.JournalGoodLink, error) {
	args := m.Called(ctx, companyID, linkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalGoodLink), args.Error(1)
}

func (m *MockLinkRepository) FindPartnerGoodLinkByID(ctx context.Context, companyID, linkID string) (*domain.JournalPartnerGoodLink, error) {
	args := m.Called(ctx, companyID, linkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalPartnerGoodLink), args.Error(1)
}

func (m *MockLinkRepository) ListPartnerLinksByJournals(ctx context.Context, companyID string, journalIDs []string, limit, offset int) ([]domain.JournalPartnerLink, error) {
	args := m.Called(ctx, companyID, journalIDs, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalPartnerLink), args.Error(1)
}

func (m *MockLinkRepository) ListGoodLinksByJournals(ctx context.Context, companyID string, journalIDs []string, limit, offset int) ([]domain.JournalGoodLink, error) {
	args := m.Called(ctx, companyID, journalIDs, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalGoodLink), args.Error(1)
}

func (m *MockLinkRepository) ListPartnerGoodLinksByJournals(ctx context.Context, companyID string, journalIDs []string, limit, offset int) ([]domain.JournalPartnerGoodLink, error) {
	args := m.Called(ctx, companyID, journalIDs, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalPartnerGoodLink), args.Error(1)
}

func (m *MockLinkRepository) CountLinksByJournal(ctx context.Context, companyID, journalID string) (int, error) {
	args := m.Called(ctx, companyID, journalID)
	return args.Int(0), args.Error(1)
}

func (m *MockLinkRepository) CreatePartnerLink(ctx context.Context, link domain.JournalPartnerLink, requireParentJournalID *string) error {
	args := m.Called(ctx, link, requireParentJournalID)
	return args.Error(0)
}

func (m *MockLinkRepository) CreateGoodLink(ctx context.Context, link domain.JournalGoodLink, requireParentJournalID *string) error {
	args := m.Called(ctx, link, requireParentJournalID)
	return args.Error(0)
}

func (m *MockLinkRepository) CreatePartnerGoodLink(ctx context.Context, link domain.JournalPartnerGoodLink, requireParentJournalID *string) error {
	args := m.Called(ctx, link, requireParentJournalID)
	return args.Error(0)
}

func (m *MockLinkRepository) DeletePartnerLink(ctx context.Context, companyID, linkID string) error {
	args := m.Called(ctx, companyID, linkID)
	return args.Error(0)
}

func (m *MockLinkRepository) DeleteGoodLink(ctx context.Context, companyID, linkID string) error {
	args := m.Called(ctx, companyID, linkID)
	return args.Error(0)
}

func (m *MockLinkRepository) DeletePartnerGoodLink(ctx context.Context, companyID, linkID string) error {
	args := m.Called(ctx, companyID, linkID)
	return args.Error(0)
}

// --- Mock ApprovalRepository ---

type MockApprovalRepository struct {
	mock.Mock
}

var _ portsrepo.ApprovalRepository = (*MockApprovalRepository)(nil)

func (m *MockApprovalRepository) FindApprovable(ctx context.Context, companyID string, entityType domain.ApprovableType, entityID string) (*domain.ApprovableItem, error) {
	args := m.Called(ctx, companyID, entityType, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovableItem), args.Error(1)
}

func (m *MockApprovalRepository) TransitionApproval(ctx context.Context, companyID string, entityType domain.ApprovableType, entityID string, expectedLevel int, newStatus domain.ApprovalStatus, newLevel int, actedBy string, at time.Time) (bool, error) {
	args := m.Called(ctx, companyID, entityType, entityID, expectedLevel, newStatus, newLevel, actedBy, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockApprovalRepository) ListInProcess(ctx context.Context, companyID string, filter portsrepo.InProcessFilter) ([]domain.ApprovableItem, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApprovableItem), args.Error(1)
}

// --- Mock LoopRepository ---

type MockLoopRepository struct {
	mock.Mock
}

var _ portsrepo.LoopRepositoryFacade = (*MockLoopRepository)(nil)

func (m *MockLoopRepository) FindLoopByID(ctx context.Context, companyID, loopID string) (*domain.Loop, []domain.LoopConnection, error) {
	args := m.Called(ctx, companyID, loopID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var connections []domain.LoopConnection
	if args.Get(1) != nil {
		connections = args.Get(1).([]domain.LoopConnection)
	}
	return args.Get(0).(*domain.Loop), connections, args.Error(2)
}

func (m *MockLoopRepository) FindActiveConnection(ctx context.Context, companyID, fromJournalID, toJournalID string) (*domain.LoopConnection, error) {
	args := m.Called(ctx, companyID, fromJournalID, toJournalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoopConnection), args.Error(1)
}

func (m *MockLoopRepository) ListLoops(ctx context.Context, companyID string, limit, offset int) ([]domain.Loop, error) {
	args := m.Called(ctx, companyID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loop), args.Error(1)
}

func (m *MockLoopRepository) SaveLoop(ctx context.Context, loop domain.Loop, connections []domain.LoopConnection) error {
	args := m.Called(ctx, loop, connections)
	return args.Error(0)
}

func (m *MockLoopRepository) ReplaceConnection(ctx context.Context, companyID, loopID, removeConnectionID string, inserted []domain.LoopConnection, updatedBy string, at time.Time) error {
	args := m.Called(ctx, companyID, loopID, removeConnectionID, inserted, updatedBy, at)
	return args.Error(0)
}

func (m *MockLoopRepository) UpdateLoopStatus(ctx context.Context, companyID, loopID string, status domain.LoopStatus, updatedBy string, at time.Time) error {
	args := m.Called(ctx, companyID, loopID, status, updatedBy, at)
	return args.Error(0)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedBy string, at time.Time) error {
	args := m.Called(ctx, userID, deletedBy, at)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, tokenHash *string, expiresAt *time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

// --- Mock PartnerRepository ---

type MockPartnerRepository struct {
	mock.Mock
}

var _ portsrepo.PartnerRepositoryFacade = (*MockPartnerRepository)(nil)

func (m *MockPartnerRepository) SavePartner(ctx context.Context, partner domain.Partner) error {
	args := m.Called(ctx, partner)
	return args.Error(0)
}

func (m *MockPartnerRepository) FindPartnerByID(ctx context.Context, companyID, partnerID string) (*domain.Partner, error) {
	args := m.Called(ctx, companyID, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Partner), args.Error(1)
}

func (m *MockPartnerRepository) UpdatePartner(ctx context.Context, partner domain.Partner) error {
	args := m.Called(ctx, partner)
	return args.Error(0)
}

func (m *MockPartnerRepository) ListPartnersByJournals(ctx context.Context, companyID string, journalIDs []string, limit, offset int) ([]domain.Partner, error) {
	args := m.Called(ctx, companyID, journalIDs, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Partner), args.Error(1)
}

// --- Mock GoodRepository ---

type MockGoodRepository struct {
	mock.Mock
}

var _ portsrepo.GoodRepositoryFacade = (*MockGoodRepository)(nil)

func (m *MockGoodRepository) SaveGood(ctx context.Context, good domain.Good) error {
	args := m.Called(ctx, good)
	return args.Error(0)
}

func (m *MockGoodRepository) FindGoodByID(ctx context.Context, companyID, goodID string) (*domain.Good, error) {
	args := m.Called(ctx, companyID, goodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Good), args.Error(1)
}

func (m *MockGoodRepository) UpdateGood(ctx context.Context, good domain.Good) error {
	args := m.Called(ctx, good)
	return args.Error(0)
}

func (m *MockGoodRepository) ListGoodsByJournals(ctx context.Context, companyID string, journalIDs []string, limit, offset int) ([]domain.Good, error) {
	args := m.Called(ctx, companyID, journalIDs, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Good), args.Error(1)
}
