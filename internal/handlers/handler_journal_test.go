package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/zhurnal-erp/zhurnal_backend/internal/apperrors"
	"github.com/zhurnal-erp/zhurnal_backend/internal/core/domain"
	portssvc "github.com/zhurnal-erp/zhurnal_backend/internal/core/ports/services"
	"github.com/zhurnal-erp/zhurnal_backend/internal/dto"
	"github.com/zhurnal-erp/zhurnal_backend/internal/handlers"
	"github.com/zhurnal-erp/zhurnal_backend/internal/middleware"
)

// --- Mock JournalService ---

type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) CreateJournal(ctx context.Context, companyID string, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, error) {
	args := m.Called(ctx, companyID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalService) UpdateJournal(ctx context.Context, companyID, journalID string, req dto.UpdateJournalRequest, requestingUserID string) (*domain.Journal, error) {
	args := m.Called(ctx, companyID, journalID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalService) DeleteJournal(ctx context.Context, companyID, journalID string, requestingUserID string) error {
	args := m.Called(ctx, companyID, journalID, requestingUserID)
	return args.Error(0)
}

func (m *MockJournalService) GetJournalByID(ctx context.Context, companyID, journalID string, requestingUserID string) (*domain.Journal, error) {
	args := m.Called(ctx, companyID, journalID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalService) ListChildJournals(ctx context.Context, companyID, journalID string, requestingUserID string) ([]domain.Journal, error) {
	args := m.Called(ctx, companyID, journalID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Journal), args.Error(1)
}

func (m *MockJournalService) GetDescendantJournalIDs(ctx context.Context, companyID string, rootIDs []string, includeRoots bool, requestingUserID string) ([]string, error) {
	args := m.Called(ctx, companyID, rootIDs, includeRoots, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockJournalService) IsJournalDescendant(ctx context.Context, companyID, candidateID, ancestorID string) (bool, error) {
	args := m.Called(ctx, companyID, candidateID, ancestorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockJournalService) GetJournalDepth(ctx context.Context, companyID, journalID string) (int, error) {
	args := m.Called(ctx, companyID, journalID)
	return args.Int(0), args.Error(1)
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Test Suite ---

type JournalHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockJournalService *MockJournalService
	jwtSecret          string
}

func (suite *JournalHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockJournalService = new(MockJournalService)

	// Mimic the /api/v1/companies/:companyID nesting used in production.
	group := suite.router.Group("/api/v1/companies/:companyID")
	handlers.RegisterJournalRoutes(group, suite.mockJournalService)
}

func (suite *JournalHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	suite.Require().NoError(err)
	return signed
}

func (suite *JournalHandlerTestSuite) doRequest(method, url string, body any, userID string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, url, reqBody)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *JournalHandlerTestSuite) TestCreateJournal_Success() {
	companyID := uuid.NewString()
	userID := uuid.NewString()
	parentID := uuid.NewString()

	created := &domain.Journal{
		JournalID:       uuid.NewString(),
		CompanyID:       companyID,
		Name:            "Sales",
		ParentJournalID: &parentID,
	}

	suite.mockJournalService.On("CreateJournal",
		mock.Anything,
		companyID,
		mock.MatchedBy(func(req dto.CreateJournalRequest) bool {
			return req.Name == "Sales" && req.ParentJournalID != nil && *req.ParentJournalID == parentID
		}),
		userID,
	).Return(created, nil).Once()

	body := dto.CreateJournalRequest{Name: "Sales", ParentJournalID: &parentID}
	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/journals", companyID), body, userID)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.JournalResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.JournalID, resp.JournalID)
	suite.Equal("Sales", resp.Name)

	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestCreateJournal_TerminalParentRejected() {
	companyID := uuid.NewString()
	userID := uuid.NewString()
	parentID := uuid.NewString()

	suite.mockJournalService.On("CreateJournal", mock.Anything, companyID, mock.Anything, userID).
		Return(nil, fmt.Errorf("%w: parent journal %s is terminal", apperrors.ErrValidation, parentID)).Once()

	body := dto.CreateJournalRequest{Name: "Sub", ParentJournalID: &parentID}
	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/journals", companyID), body, userID)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *JournalHandlerTestSuite) TestGetJournal_NotFound() {
	companyID := uuid.NewString()
	userID := uuid.NewString()
	journalID := uuid.NewString()

	suite.mockJournalService.On("GetJournalByID", mock.Anything, companyID, journalID, userID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, fmt.Sprintf("/api/v1/companies/%s/journals/%s", companyID, journalID), nil, userID)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *JournalHandlerTestSuite) TestDeleteJournal_ConflictWhileChildrenExist() {
	companyID := uuid.NewString()
	userID := uuid.NewString()
	journalID := uuid.NewString()

	suite.mockJournalService.On("DeleteJournal", mock.Anything, companyID, journalID, userID).
		Return(fmt.Errorf("%w: journal has child journals", apperrors.ErrConflict)).Once()

	w := suite.doRequest(http.MethodDelete, fmt.Sprintf("/api/v1/companies/%s/journals/%s", companyID, journalID), nil, userID)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *JournalHandlerTestSuite) TestGetDescendants_Success() {
	companyID := uuid.NewString()
	userID := uuid.NewString()
	rootID := uuid.NewString()
	childID := uuid.NewString()

	suite.mockJournalService.On("GetDescendantJournalIDs",
		mock.Anything, companyID, []string{rootID}, true, userID,
	).Return([]string{rootID, childID}, nil).Once()

	body := dto.DescendantsRequest{JournalIDs: []string{rootID}, IncludeRoots: true}
	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/journals/descendants", companyID), body, userID)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.DescendantsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.ElementsMatch([]string{rootID, childID}, resp.JournalIDs)
}

func (suite *JournalHandlerTestSuite) TestRequest_WithoutToken_Unauthorized() {
	companyID := uuid.NewString()

	req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/companies/%s/journals/%s", companyID, uuid.NewString()), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockJournalService.AssertNotCalled(suite.T(), "GetJournalByID")
}

func TestJournalHandler(t *testing.T) {
	suite.Run(t, new(JournalHandlerTestSuite))
}
