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

type LoopServiceTestSuite struct {
	suite.Suite
	mockLoopRepo    *MockLoopRepository
	mockJournalRepo *MockJournalRepository
	mockAuthorizer  *MockCompanyAuthorizer
	service         portssvc.LoopSvcFacade

	companyID string
	userID    string

	journalA domain.Journal
	journalB domain.Journal
	journalC domain.Journal
	journalX domain.Journal
}

func (suite *LoopServiceTestSuite) SetupTest() {
	suite.mockLoopRepo = new(MockLoopRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAuthorizer = new(MockCompanyAuthorizer)
	suite.service = services.NewLoopService(suite.mockLoopRepo, suite.mockJournalRepo, suite.mockAuthorizer)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.journalA = domain.Journal{JournalID: uuid.NewString(), CompanyID: suite.companyID, Name: "A"}
	suite.journalB = domain.Journal{JournalID: uuid.NewString(), CompanyID: suite.companyID, Name: "B"}
	suite.journalC = domain.Journal{JournalID: uuid.NewString(), CompanyID: suite.companyID, Name: "C"}
	suite.journalX = domain.Journal{JournalID: uuid.NewString(), CompanyID: suite.companyID, Name: "X"}

	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.companyID, mock.Anything).Return(nil)
}

func (suite *LoopServiceTestSuite) journalsByIDs(journals ...domain.Journal) map[string]domain.Journal {
	result := make(map[string]domain.Journal, len(journals))
	for _, j := range journals {
		result[j.JournalID] = j
	}
	return result
}

// activeLoop returns an ACTIVE loop with the cycle A -> B -> C -> A.
func (suite *LoopServiceTestSuite) activeLoop() (*domain.Loop, []domain.LoopConnection) {
	loop := &domain.Loop{LoopID: uuid.NewString(), CompanyID: suite.companyID, Name: "Cycle", Status: domain.LoopActive}
	connections := []domain.LoopConnection{
		{ConnectionID: uuid.NewString(), LoopID: loop.LoopID, FromJournalID: suite.journalA.JournalID, ToJournalID: suite.journalB.JournalID, Position: 0},
		{ConnectionID: uuid.NewString(), LoopID: loop.LoopID, FromJournalID: suite.journalB.JournalID, ToJournalID: suite.journalC.JournalID, Position: 1},
		{ConnectionID: uuid.NewString(), LoopID: loop.LoopID, FromJournalID: suite.journalC.JournalID, ToJournalID: suite.journalA.JournalID, Position: 2},
	}
	return loop, connections
}

func (suite *LoopServiceTestSuite) TestCreateLoopBuildsClosedCycle() {
	ids := []string{suite.journalA.JournalID, suite.journalB.JournalID, suite.journalC.JournalID}
	suite.mockJournalRepo.On("FindJournalsByIDs", mock.Anything, suite.companyID, ids).
		Return(suite.journalsByIDs(suite.journalA, suite.journalB, suite.journalC), nil)
	suite.mockLoopRepo.On("SaveLoop", mock.Anything, mock.AnythingOfType("domain.Loop"), mock.AnythingOfType("[]domain.LoopConnection")).Return(nil)

	req := dto.CreateLoopRequest{Name: "Cycle", JournalIDs: ids}
	loop, connections, err := suite.service.CreateLoop(context.Background(), suite.companyID, req, suite.userID)

	suite.NoError(err)
	suite.Equal(domain.LoopActive, loop.Status)
	suite.Len(connections, 3)

	// Every journal has exactly one outgoing and one incoming edge.
	outgoing := map[string]string{}
	incoming := map[string]int{}
	for _, conn := range connections {
		outgoing[conn.FromJournalID] = conn.ToJournalID
		incoming[conn.ToJournalID]++
	}
	suite.Equal(suite.journalB.JournalID, outgoing[suite.journalA.JournalID])
	suite.Equal(suite.journalC.JournalID, outgoing[suite.journalB.JournalID])
	suite.Equal(suite.journalA.JournalID, outgoing[suite.journalC.JournalID])
	for _, id := range ids {
		suite.Equal(1, incoming[id])
	}

	// Positions are contiguous from zero.
	for i, conn := range connections {
		suite.Equal(i, conn.Position)
	}
}

func (suite *LoopServiceTestSuite) TestCreateLoopRejectsTooFewJournals() {
	req := dto.CreateLoopRequest{Name: "Pair", JournalIDs: []string{suite.journalA.JournalID, suite.journalB.JournalID}}
	_, _, err := suite.service.CreateLoop(context.Background(), suite.companyID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLoopRepo.AssertNotCalled(suite.T(), "SaveLoop", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LoopServiceTestSuite) TestCreateLoopRejectsDuplicateJournals() {
	ids := []string{suite.journalA.JournalID, suite.journalB.JournalID, suite.journalA.JournalID}
	req := dto.CreateLoopRequest{Name: "Dup", JournalIDs: ids}
	_, _, err := suite.service.CreateLoop(context.Background(), suite.companyID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LoopServiceTestSuite) TestCreateLoopRejectsUnknownJournal() {
	ghost := uuid.NewString()
	ids := []string{suite.journalA.JournalID, suite.journalB.JournalID, ghost}
	suite.mockJournalRepo.On("FindJournalsByIDs", mock.Anything, suite.companyID, ids).
		Return(suite.journalsByIDs(suite.journalA, suite.journalB), nil)

	req := dto.CreateLoopRequest{Name: "Ghost", JournalIDs: ids}
	_, _, err := suite.service.CreateLoop(context.Background(), suite.companyID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLoopRepo.AssertNotCalled(suite.T(), "SaveLoop", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LoopServiceTestSuite) TestDetectConnectionDirectEdge() {
	loop, connections := suite.activeLoop()
	suite.mockLoopRepo.On("FindActiveConnection", mock.Anything, suite.companyID, suite.journalA.JournalID, suite.journalB.JournalID).
		Return(&connections[0], nil)

	result, err := suite.service.DetectConnection(context.Background(), suite.companyID, suite.journalA.JournalID, suite.journalB.JournalID, suite.userID)

	suite.NoError(err)
	suite.True(result.Connected)
	suite.Equal(loop.LoopID, *result.LoopID)
}

func (suite *LoopServiceTestSuite) TestDetectConnectionIgnoresTransitiveReachability() {
	// A reaches C through B, but there is no direct edge A -> C.
	suite.mockLoopRepo.On("FindActiveConnection", mock.Anything, suite.companyID, suite.journalA.JournalID, suite.journalC.JournalID).
		Return(nil, apperrors.ErrNotFound)

	result, err := suite.service.DetectConnection(context.Background(), suite.companyID, suite.journalA.JournalID, suite.journalC.JournalID, suite.userID)

	suite.NoError(err)
	suite.False(result.Connected)
	suite.Nil(result.LoopID)
}

func (suite *LoopServiceTestSuite) TestInsertChainSplicesEdge() {
	loop, connections := suite.activeLoop()
	suite.mockLoopRepo.On("FindLoopByID", mock.Anything, suite.companyID, loop.LoopID).Return(loop, connections, nil)
	suite.mockJournalRepo.On("FindJournalsByIDs", mock.Anything, suite.companyID, []string{suite.journalX.JournalID}).
		Return(suite.journalsByIDs(suite.journalX), nil)
	suite.mockLoopRepo.On("ReplaceConnection", mock.Anything, suite.companyID, loop.LoopID, connections[0].ConnectionID,
		mock.MatchedBy(func(inserted []domain.LoopConnection) bool {
			// Chain of one journal replaces one edge with two.
			return len(inserted) == 2 &&
				inserted[0].FromJournalID == suite.journalA.JournalID &&
				inserted[0].ToJournalID == suite.journalX.JournalID &&
				inserted[1].FromJournalID == suite.journalX.JournalID &&
				inserted[1].ToJournalID == suite.journalB.JournalID
		}), suite.userID, mock.AnythingOfType("time.Time")).Return(nil)

	req := dto.InsertChainRequest{
		InsertAfterJournalID:  suite.journalA.JournalID,
		InsertBeforeJournalID: suite.journalB.JournalID,
		JournalChain:          []string{suite.journalX.JournalID},
	}
	_, _, err := suite.service.InsertChain(context.Background(), suite.companyID, loop.LoopID, req, suite.userID)

	suite.NoError(err)
	suite.mockLoopRepo.AssertExpectations(suite.T())
}

func (suite *LoopServiceTestSuite) TestInsertChainMissingEdge() {
	loop, connections := suite.activeLoop()
	suite.mockLoopRepo.On("FindLoopByID", mock.Anything, suite.companyID, loop.LoopID).Return(loop, connections, nil)

	// No direct edge A -> C in the loop.
	req := dto.InsertChainRequest{
		InsertAfterJournalID:  suite.journalA.JournalID,
		InsertBeforeJournalID: suite.journalC.JournalID,
		JournalChain:          []string{suite.journalX.JournalID},
	}
	_, _, err := suite.service.InsertChain(context.Background(), suite.companyID, loop.LoopID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrInvalidInsertion)
	suite.mockLoopRepo.AssertNotCalled(suite.T(), "ReplaceConnection",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LoopServiceTestSuite) TestInsertChainRejectsEmptyChain() {
	loop, _ := suite.activeLoop()

	// An empty chain would re-insert the removed edge as a length-1 path.
	req := dto.InsertChainRequest{
		InsertAfterJournalID:  suite.journalA.JournalID,
		InsertBeforeJournalID: suite.journalB.JournalID,
		JournalChain:          []string{},
	}
	_, _, err := suite.service.InsertChain(context.Background(), suite.companyID, loop.LoopID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrInvalidInsertion)
	suite.mockLoopRepo.AssertNotCalled(suite.T(), "FindLoopByID", mock.Anything, mock.Anything, mock.Anything)
	suite.mockLoopRepo.AssertNotCalled(suite.T(), "ReplaceConnection",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LoopServiceTestSuite) TestInsertChainRejectsExistingMember() {
	loop, connections := suite.activeLoop()
	suite.mockLoopRepo.On("FindLoopByID", mock.Anything, suite.companyID, loop.LoopID).Return(loop, connections, nil)
	suite.mockJournalRepo.On("FindJournalsByIDs", mock.Anything, suite.companyID, []string{suite.journalC.JournalID}).
		Return(suite.journalsByIDs(suite.journalC), nil)

	req := dto.InsertChainRequest{
		InsertAfterJournalID:  suite.journalA.JournalID,
		InsertBeforeJournalID: suite.journalB.JournalID,
		JournalChain:          []string{suite.journalC.JournalID},
	}
	_, _, err := suite.service.InsertChain(context.Background(), suite.companyID, loop.LoopID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrInvalidInsertion)
}

func (suite *LoopServiceTestSuite) TestInsertChainRefusedOnInactiveLoop() {
	loop, connections := suite.activeLoop()
	loop.Status = domain.LoopInactive
	suite.mockLoopRepo.On("FindLoopByID", mock.Anything, suite.companyID, loop.LoopID).Return(loop, connections, nil)

	req := dto.InsertChainRequest{
		InsertAfterJournalID:  suite.journalA.JournalID,
		InsertBeforeJournalID: suite.journalB.JournalID,
		JournalChain:          []string{suite.journalX.JournalID},
	}
	_, _, err := suite.service.InsertChain(context.Background(), suite.companyID, loop.LoopID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *LoopServiceTestSuite) TestDeactivateLoop() {
	loop, connections := suite.activeLoop()
	suite.mockLoopRepo.On("FindLoopByID", mock.Anything, suite.companyID, loop.LoopID).Return(loop, connections, nil)
	suite.mockLoopRepo.On("UpdateLoopStatus", mock.Anything, suite.companyID, loop.LoopID, domain.LoopInactive, suite.userID, mock.AnythingOfType("time.Time")).Return(nil)

	err := suite.service.DeactivateLoop(context.Background(), suite.companyID, loop.LoopID, suite.userID)

	suite.NoError(err)
	suite.mockLoopRepo.AssertExpectations(suite.T())
}

func (suite *LoopServiceTestSuite) TestDeactivateLoopAlreadyInactive() {
	loop, connections := suite.activeLoop()
	loop.Status = domain.LoopInactive
	suite.mockLoopRepo.On("FindLoopByID", mock.Anything, suite.companyID, loop.LoopID).Return(loop, connections, nil)

	err := suite.service.DeactivateLoop(context.Background(), suite.companyID, loop.LoopID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockLoopRepo.AssertNotCalled(suite.T(), "UpdateLoopStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLoopServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LoopServiceTestSuite))
}
