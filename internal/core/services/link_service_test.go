package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/zhurnal-erp/zhurnal_backend/internal/apperrors"
	"github.com/zhurnal-erp/zhurnal_backend/internal/core/domain"
	portssvc "github.com/zhurnal-erp/zhurnal_backend/internal/core/ports/services"
	"github.com/zhurnal-erp/zhurnal_backend/internal/core/services"
	"github.com/zhurnal-erp/zhurnal_backend/internal/dto"
)

type LinkServiceTestSuite struct {
	suite.Suite
	mockLinkRepo    *MockLinkRepository
	mockJournalRepo *MockJournalRepository
	mockPartnerRepo *MockPartnerRepository
	mockGoodRepo    *MockGoodRepository
	mockAuthorizer  *MockCompanyAuthorizer
	service         portssvc.LinkSvcFacade

	companyID string
	userID    string

	root    domain.Journal
	child   domain.Journal
	partner domain.Partner
	good    domain.Good
}

func (suite *LinkServiceTestSuite) SetupTest() {
	suite.mockLinkRepo = new(MockLinkRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockPartnerRepo = new(MockPartnerRepository)
	suite.mockGoodRepo = new(MockGoodRepository)
	suite.mockAuthorizer = new(MockCompanyAuthorizer)
	suite.service = services.NewLinkService(suite.mockLinkRepo, suite.mockJournalRepo, suite.mockPartnerRepo, suite.mockGoodRepo, suite.mockAuthorizer)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.root = domain.Journal{JournalID: uuid.NewString(), CompanyID: suite.companyID, Name: "HQ"}
	suite.child = domain.Journal{JournalID: uuid.NewString(), CompanyID: suite.companyID, Name: "Branch", ParentJournalID: &suite.root.JournalID}
	suite.partner = domain.Partner{PartnerID: uuid.NewString(), CompanyID: suite.companyID, Name: "Acme"}
	suite.good = domain.Good{GoodID: uuid.NewString(), CompanyID: suite.companyID, Name: "Widget"}
}

func (suite *LinkServiceTestSuite) forest() []domain.Journal {
	return []domain.Journal{suite.root, suite.child}
}

func (suite *LinkServiceTestSuite) expectAuth(role domain.UserCompanyRole) {
	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.companyID, role).Return(nil)
}

func (suite *LinkServiceTestSuite) TestCreatePartnerLinkOnRootJournal() {
	suite.expectAuth(domain.RoleMember)
	suite.mockJournalRepo.On("FindJournalByID", mock.Anything, suite.companyID, suite.root.JournalID).Return(&suite.root, nil)
	suite.mockJournalRepo.On("FindJournalsByCompany", mock.Anything, suite.companyID).Return(suite.forest(), nil)
	suite.mockPartnerRepo.On("FindPartnerByID", mock.Anything, suite.companyID, suite.partner.PartnerID).Return(&suite.partner, nil)
	suite.mockLinkRepo.On("CreatePartnerLink", mock.Anything, mock.AnythingOfType("domain.JournalPartnerLink"), (*string)(nil)).Return(nil)

	req := dto.CreatePartnerLinkRequest{JournalID: suite.root.JournalID, PartnerID: suite.partner.PartnerID, PartnershipType: "SUPPLIER"}
	link, err := suite.service.CreatePartnerLink(context.Background(), suite.companyID, req, suite.userID)

	suite.NoError(err)
	suite.Equal(domain.ApprovalPending, link.ApprovalStatus)
	suite.Equal(0, link.CreationLevel)
	suite.Equal(0, link.CurrentPendingLevel)
	suite.mockLinkRepo.AssertExpectations(suite.T())
}

func (suite *LinkServiceTestSuite) TestCreatePartnerLinkOnChildRequiresParentLink() {
	suite.expectAuth(domain.RoleMember)
	suite.mockJournalRepo.On("FindJournalByID", mock.Anything, suite.companyID, suite.child.JournalID).Return(&suite.child, nil)
	suite.mockJournalRepo.On("FindJournalsByCompany", mock.Anything, suite.companyID).Return(suite.forest(), nil)
	suite.mockPartnerRepo.On("FindPartnerByID", mock.Anything, suite.companyID, suite.partner.PartnerID).Return(&suite.partner, nil)
	suite.mockLinkRepo.On("CreatePartnerLink", mock.Anything, mock.AnythingOfType("domain.JournalPartnerLink"), &suite.root.JournalID).Return(nil)

	req := dto.CreatePartnerLinkRequest{JournalID: suite.child.JournalID, PartnerID: suite.partner.PartnerID}
	link, err := suite.service.CreatePartnerLink(context.Background(), suite.companyID, req, suite.userID)

	suite.NoError(err)
	suite.Equal(1, link.CreationLevel)
	suite.Equal(1, link.CurrentPendingLevel)
	suite.mockLinkRepo.AssertExpectations(suite.T())
}

func (suite *LinkServiceTestSuite) TestCreatePartnerLinkHierarchyViolation() {
	suite.expectAuth(domain.RoleMember)
	suite.mockJournalRepo.On("FindJournalByID", mock.Anything, suite.companyID, suite.child.JournalID).Return(&suite.child, nil)
	suite.mockJournalRepo.On("FindJournalsByCompany", mock.Anything, suite.companyID).Return(suite.forest(), nil)
	suite.mockPartnerRepo.On("FindPartnerByID", mock.Anything, suite.companyID, suite.partner.PartnerID).Return(&suite.partner, nil)
	suite.mockLinkRepo.On("CreatePartnerLink", mock.Anything, mock.AnythingOfType("domain.JournalPartnerLink"), &suite.root.JournalID).Return(apperrors.ErrHierarchyViolation)

	req := dto.CreatePartnerLinkRequest{JournalID: suite.child.JournalID, PartnerID: suite.partner.PartnerID}
	_, err := suite.service.CreatePartnerLink(context.Background(), suite.companyID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrHierarchyViolation)
	// The error names the parent journal that lacks the equivalent link.
	suite.Contains(err.Error(), suite.root.JournalID)
}

func (suite *LinkServiceTestSuite) TestCreatePartnerLinkUnknownPartner() {
	suite.expectAuth(domain.RoleMember)
	missingID := uuid.NewString()
	suite.mockJournalRepo.On("FindJournalByID", mock.Anything, suite.companyID, suite.root.JournalID).Return(&suite.root, nil)
	suite.mockJournalRepo.On("FindJournalsByCompany", mock.Anything, suite.companyID).Return(suite.forest(), nil)
	suite.mockPartnerRepo.On("FindPartnerByID", mock.Anything, suite.companyID, missingID).Return(nil, apperrors.ErrNotFound)

	req := dto.CreatePartnerLinkRequest{JournalID: suite.root.JournalID, PartnerID: missingID}
	_, err := suite.service.CreatePartnerLink(context.Background(), suite.companyID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockLinkRepo.AssertNotCalled(suite.T(), "CreatePartnerLink", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LinkServiceTestSuite) TestCreateGoodLinkOnChild() {
	suite.expectAuth(domain.RoleMember)
	suite.mockJournalRepo.On("FindJournalByID", mock.Anything, suite.companyID, suite.child.JournalID).Return(&suite.child, nil)
	suite.mockJournalRepo.On("FindJournalsByCompany", mock.Anything, suite.companyID).Return(suite.forest(), nil)
	suite.mockGoodRepo.On("FindGoodByID", mock.Anything, suite.companyID, suite.good.GoodID).Return(&suite.good, nil)
	suite.mockLinkRepo.On("CreateGoodLink", mock.Anything, mock.AnythingOfType("domain.JournalGoodLink"), &suite.root.JournalID).Return(nil)

	req := dto.CreateGoodLinkRequest{JournalID: suite.child.JournalID, GoodID: suite.good.GoodID}
	link, err := suite.service.CreateGoodLink(context.Background(), suite.companyID, req, suite.userID)

	suite.NoError(err)
	suite.Equal(1, link.CurrentPendingLevel)
	suite.mockLinkRepo.AssertExpectations(suite.T())
}

func (suite *LinkServiceTestSuite) TestCreatePartnerGoodLinkChecksBothEntities() {
	suite.expectAuth(domain.RoleMember)
	suite.mockJournalRepo.On("FindJournalByID", mock.Anything, suite.companyID, suite.root.JournalID).Return(&suite.root, nil)
	suite.mockJournalRepo.On("FindJournalsByCompany", mock.Anything, suite.companyID).Return(suite.forest(), nil)
	suite.mockPartnerRepo.On("FindPartnerByID", mock.Anything, suite.companyID, suite.partner.PartnerID).Return(&suite.partner, nil)
	suite.mockGoodRepo.On("FindGoodByID", mock.Anything, suite.companyID, suite.good.GoodID).Return(&suite.good, nil)
	suite.mockLinkRepo.On("CreatePartnerGoodLink", mock.Anything, mock.AnythingOfType("domain.JournalPartnerGoodLink"), (*string)(nil)).Return(nil)

	req := dto.CreatePartnerGoodLinkRequest{JournalID: suite.root.JournalID, PartnerID: suite.partner.PartnerID, GoodID: suite.good.GoodID}
	link, err := suite.service.CreatePartnerGoodLink(context.Background(), suite.companyID, req, suite.userID)

	suite.NoError(err)
	suite.Equal(suite.partner.PartnerID, link.PartnerID)
	suite.Equal(suite.good.GoodID, link.GoodID)
}

func (suite *LinkServiceTestSuite) TestDeletePartnerLinkSkipsDescendantRevalidation() {
	suite.expectAuth(domain.RoleMember)
	linkID := uuid.NewString()
	existing := domain.JournalPartnerLink{LinkID: linkID, CompanyID: suite.companyID, JournalID: suite.root.JournalID, PartnerID: suite.partner.PartnerID}
	suite.mockLinkRepo.On("FindPartnerLinkByID", mock.Anything, suite.companyID, linkID).Return(&existing, nil)
	suite.mockLinkRepo.On("DeletePartnerLink", mock.Anything, suite.companyID, linkID).Return(nil)

	err := suite.service.DeletePartnerLink(context.Background(), suite.companyID, linkID, suite.userID)

	suite.NoError(err)
	// Deletion consults no hierarchy state at all.
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "FindJournalsByCompany", mock.Anything, mock.Anything)
}

func (suite *LinkServiceTestSuite) TestListPartnerLinksExpandsSubtree() {
	suite.expectAuth(domain.RoleReadOnly)
	suite.mockJournalRepo.On("FindJournalsByCompany", mock.Anything, suite.companyID).Return(suite.forest(), nil)
	suite.mockLinkRepo.On("ListPartnerLinksByJournals", mock.Anything, suite.companyID, mock.MatchedBy(func(ids []string) bool {
		return len(ids) == 2
	}), 50, 0).Return([]domain.JournalPartnerLink{}, nil)

	params := dto.ListLinksParams{JournalID: &suite.root.JournalID, IncludeDescendants: true}
	_, err := suite.service.ListPartnerLinks(context.Background(), suite.companyID, params, suite.userID)

	suite.NoError(err)
	suite.mockLinkRepo.AssertExpectations(suite.T())
}

func (suite *LinkServiceTestSuite) TestListPartnerLinksSingleJournalScope() {
	suite.expectAuth(domain.RoleReadOnly)
	suite.mockJournalRepo.On("FindJournalsByCompany", mock.Anything, suite.companyID).Return(suite.forest(), nil)
	suite.mockLinkRepo.On("ListPartnerLinksByJournals", mock.Anything, suite.companyID, []string{suite.child.JournalID}, 50, 0).Return([]domain.JournalPartnerLink{}, nil)

	params := dto.ListLinksParams{JournalID: &suite.child.JournalID}
	_, err := suite.service.ListPartnerLinks(context.Background(), suite.companyID, params, suite.userID)

	suite.NoError(err)
	suite.mockLinkRepo.AssertExpectations(suite.T())
}

func TestLinkServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LinkServiceTestSuite))
}
