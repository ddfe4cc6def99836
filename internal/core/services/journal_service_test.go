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

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockLinkRepo    *MockLinkRepository
	mockAuthorizer  *MockCompanyAuthorizer
	service         portssvc.JournalSvcFacade

	companyID string
	userID    string

	root       domain.Journal
	child      domain.Journal
	grandchild domain.Journal
	terminal   domain.Journal
	other      domain.Journal
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockLinkRepo = new(MockLinkRepository)
	suite.mockAuthorizer = new(MockCompanyAuthorizer)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockLinkRepo, suite.mockAuthorizer)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.root = domain.Journal{JournalID: uuid.NewString(), CompanyID: suite.companyID, Name: "HQ"}
	suite.child = domain.Journal{JournalID: uuid.NewString(), CompanyID: suite.companyID, Name: "Region", ParentJournalID: &suite.root.JournalID}
	suite.grandchild = domain.Journal{JournalID: uuid.NewString(), CompanyID: suite.companyID, Name: "Branch", ParentJournalID: &suite.child.JournalID}
	suite.terminal = domain.Journal{JournalID: uuid.NewString(), CompanyID: suite.companyID, Name: "Till", ParentJournalID: &suite.child.JournalID, IsTerminal: true}
	suite.other = domain.Journal{JournalID: uuid.NewString(), CompanyID: suite.companyID, Name: "Warehouse"}
}

func (suite *JournalServiceTestSuite) forest() []domain.Journal {
	return []domain.Journal{suite.root, suite.child, suite.grandchild, suite.terminal, suite.other}
}

func (suite *JournalServiceTestSuite) expectAuth(role domain.UserCompanyRole) {
	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.companyID, role).Return(nil)
}

func (suite *JournalServiceTestSuite) TestCreateJournalUnderParent() {
	suite.expectAuth(domain.RoleMember)
	suite.mockJournalRepo.On("FindJournalByID", mock.Anything, suite.companyID, suite.root.JournalID).Return(&suite.root, nil)
	suite.mockJournalRepo.On("SaveJournal", mock.Anything, mock.AnythingOfType("domain.Journal")).Return(nil)

	req := dto.CreateJournalRequest{Name: "New Region", ParentJournalID: &suite.root.JournalID}
	journal, err := suite.service.CreateJournal(context.Background(), suite.companyID, req, suite.userID)

	suite.NoError(err)
	suite.Equal("New Region", journal.Name)
	suite.Equal(&suite.root.JournalID, journal.ParentJournalID)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournalRejectsTerminalParent() {
	suite.expectAuth(domain.RoleMember)
	suite.mockJournalRepo.On("FindJournalByID", mock.Anything, suite.companyID, suite.terminal.JournalID).Return(&suite.terminal, nil)

	req := dto.CreateJournalRequest{Name: "Impossible", ParentJournalID: &suite.terminal.JournalID}
	_, err := suite.service.CreateJournal(context.Background(), suite.companyID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournalUnknownParent() {
	suite.expectAuth(domain.RoleMember)
	missingID := uuid.NewString()
	suite.mockJournalRepo.On("FindJournalByID", mock.Anything, suite.companyID, missingID).Return(nil, apperrors.ErrNotFound)

	req := dto.CreateJournalRequest{Name: "Orphan", ParentJournalID: &missingID}
	_, err := suite.service.CreateJournal(context.Background(), suite.companyID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestDeleteJournalRefusedWhileChildrenExist() {
	suite.expectAuth(domain.RoleAdmin)
	suite.mockJournalRepo.On("FindJournalByID", mock.Anything, suite.companyID, suite.child.JournalID).Return(&suite.child, nil)
	suite.mockJournalRepo.On("CountChildJournals", mock.Anything, suite.companyID, suite.child.JournalID).Return(2, nil)

	err := suite.service.DeleteJournal(context.Background(), suite.companyID, suite.child.JournalID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockLinkRepo.AssertNotCalled(suite.T(), "CountLinksByJournal", mock.Anything, mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "DeleteJournal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestDeleteJournalRefusedWhileLinksExist() {
	suite.expectAuth(domain.RoleAdmin)
	suite.mockJournalRepo.On("FindJournalByID", mock.Anything, suite.companyID, suite.grandchild.JournalID).Return(&suite.grandchild, nil)
	suite.mockJournalRepo.On("CountChildJournals", mock.Anything, suite.companyID, suite.grandchild.JournalID).Return(0, nil)
	suite.mockLinkRepo.On("CountLinksByJournal", mock.Anything, suite.companyID, suite.grandchild.JournalID).Return(3, nil)

	err := suite.service.DeleteJournal(context.Background(), suite.companyID, suite.grandchild.JournalID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "DeleteJournal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestDeleteJournalSucceedsOnBareLeaf() {
	suite.expectAuth(domain.RoleAdmin)
	suite.mockJournalRepo.On("FindJournalByID", mock.Anything, suite.companyID, suite.grandchild.JournalID).Return(&suite.grandchild, nil)
	suite.mockJournalRepo.On("CountChildJournals", mock.Anything, suite.companyID, suite.grandchild.JournalID).Return(0, nil)
	suite.mockLinkRepo.On("CountLinksByJournal", mock.Anything, suite.companyID, suite.grandchild.JournalID).Return(0, nil)
	suite.mockJournalRepo.On("DeleteJournal", mock.Anything, suite.companyID, suite.grandchild.JournalID).Return(nil)

	err := suite.service.DeleteJournal(context.Background(), suite.companyID, suite.grandchild.JournalID, suite.userID)

	suite.NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestUpdateJournalRefusesTerminalFlipWithChildren() {
	suite.expectAuth(domain.RoleMember)
	suite.mockJournalRepo.On("FindJournalByID", mock.Anything, suite.companyID, suite.child.JournalID).Return(&suite.child, nil)
	suite.mockJournalRepo.On("CountChildJournals", mock.Anything, suite.companyID, suite.child.JournalID).Return(2, nil)

	makeTerminal := true
	_, err := suite.service.UpdateJournal(context.Background(), suite.companyID, suite.child.JournalID, dto.UpdateJournalRequest{IsTerminal: &makeTerminal}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "UpdateJournal", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestUpdateJournalReparentsUnderNewParent() {
	suite.expectAuth(domain.RoleMember)
	suite.mockJournalRepo.On("FindJournalByID", mock.Anything, suite.companyID, suite.grandchild.JournalID).Return(&suite.grandchild, nil)
	suite.mockJournalRepo.On("FindJournalByID", mock.Anything, suite.companyID, suite.other.JournalID).Return(&suite.other, nil)
	suite.mockJournalRepo.On("FindJournalsByCompany", mock.Anything, suite.companyID).Return(suite.forest(), nil)
	suite.mockJournalRepo.On("UpdateJournal", mock.Anything, mock.MatchedBy(func(j domain.Journal) bool {
		return j.JournalID == suite.grandchild.JournalID &&
			j.ParentJournalID != nil && *j.ParentJournalID == suite.other.JournalID
	})).Return(nil)

	req := dto.UpdateJournalRequest{ParentJournalID: &suite.other.JournalID}
	journal, err := suite.service.UpdateJournal(context.Background(), suite.companyID, suite.grandchild.JournalID, req, suite.userID)

	suite.NoError(err)
	suite.Equal(&suite.other.JournalID, journal.ParentJournalID)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestUpdateJournalRefusesMoveIntoOwnSubtree() {
	suite.expectAuth(domain.RoleMember)
	suite.mockJournalRepo.On("FindJournalByID", mock.Anything, suite.companyID, suite.child.JournalID).Return(&suite.child, nil)
	suite.mockJournalRepo.On("FindJournalByID", mock.Anything, suite.companyID, suite.grandchild.JournalID).Return(&suite.grandchild, nil)
	suite.mockJournalRepo.On("FindJournalsByCompany", mock.Anything, suite.companyID).Return(suite.forest(), nil)

	// grandchild sits below child; moving child under it closes a cycle.
	req := dto.UpdateJournalRequest{ParentJournalID: &suite.grandchild.JournalID}
	_, err := suite.service.UpdateJournal(context.Background(), suite.companyID, suite.child.JournalID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "UpdateJournal", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestUpdateJournalRefusesSelfParent() {
	suite.expectAuth(domain.RoleMember)
	suite.mockJournalRepo.On("FindJournalByID", mock.Anything, suite.companyID, suite.child.JournalID).Return(&suite.child, nil)
	suite.mockJournalRepo.On("FindJournalsByCompany", mock.Anything, suite.companyID).Return(suite.forest(), nil)

	req := dto.UpdateJournalRequest{ParentJournalID: &suite.child.JournalID}
	_, err := suite.service.UpdateJournal(context.Background(), suite.companyID, suite.child.JournalID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "UpdateJournal", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestUpdateJournalRefusesTerminalNewParent() {
	suite.expectAuth(domain.RoleMember)
	suite.mockJournalRepo.On("FindJournalByID", mock.Anything, suite.companyID, suite.grandchild.JournalID).Return(&suite.grandchild, nil)
	suite.mockJournalRepo.On("FindJournalByID", mock.Anything, suite.companyID, suite.terminal.JournalID).Return(&suite.terminal, nil)

	req := dto.UpdateJournalRequest{ParentJournalID: &suite.terminal.JournalID}
	_, err := suite.service.UpdateJournal(context.Background(), suite.companyID, suite.grandchild.JournalID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "UpdateJournal", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestGetDescendantJournalIDsClosure() {
	suite.expectAuth(domain.RoleReadOnly)
	suite.mockJournalRepo.On("FindJournalsByCompany", mock.Anything, suite.companyID).Return(suite.forest(), nil)

	ids, err := suite.service.GetDescendantJournalIDs(context.Background(), suite.companyID, []string{suite.root.JournalID}, true, suite.userID)

	suite.NoError(err)
	suite.ElementsMatch([]string{suite.root.JournalID, suite.child.JournalID, suite.grandchild.JournalID, suite.terminal.JournalID}, ids)
	suite.NotContains(ids, suite.other.JournalID)
}

func (suite *JournalServiceTestSuite) TestGetDescendantJournalIDsIgnoresUnknownRoots() {
	suite.expectAuth(domain.RoleReadOnly)
	suite.mockJournalRepo.On("FindJournalsByCompany", mock.Anything, suite.companyID).Return(suite.forest(), nil)

	ids, err := suite.service.GetDescendantJournalIDs(context.Background(), suite.companyID, []string{uuid.NewString(), suite.child.JournalID}, true, suite.userID)

	suite.NoError(err)
	suite.ElementsMatch([]string{suite.child.JournalID, suite.grandchild.JournalID, suite.terminal.JournalID}, ids)
}

func (suite *JournalServiceTestSuite) TestGetJournalDepth() {
	suite.mockJournalRepo.On("FindJournalsByCompany", mock.Anything, suite.companyID).Return(suite.forest(), nil)

	depth, err := suite.service.GetJournalDepth(context.Background(), suite.companyID, suite.grandchild.JournalID)

	suite.NoError(err)
	suite.Equal(2, depth)
}

func (suite *JournalServiceTestSuite) TestGetJournalDepthUnknownJournal() {
	suite.mockJournalRepo.On("FindJournalsByCompany", mock.Anything, suite.companyID).Return(suite.forest(), nil)

	_, err := suite.service.GetJournalDepth(context.Background(), suite.companyID, uuid.NewString())

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestIsJournalDescendant() {
	suite.mockJournalRepo.On("FindJournalsByCompany", mock.Anything, suite.companyID).Return(suite.forest(), nil)

	isDesc, err := suite.service.IsJournalDescendant(context.Background(), suite.companyID, suite.grandchild.JournalID, suite.root.JournalID)
	suite.NoError(err)
	suite.True(isDesc)

	isSelf, err := suite.service.IsJournalDescendant(context.Background(), suite.companyID, suite.root.JournalID, suite.root.JournalID)
	suite.NoError(err)
	suite.False(isSelf)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
