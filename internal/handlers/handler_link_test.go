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

// --- Mock LinkService ---

type MockLinkService struct {
	mock.Mock
}

func (m *MockLinkService) CreatePartnerLink(ctx context.Context, companyID string, req dto.CreatePartnerLinkRequest, creatorUserID string) (*domain.JournalPartnerLink, error) {
	args := m.Called(ctx, companyID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalPartnerLink), args.Error(1)
}

func (m *MockLinkService) CreateGoodLink(ctx context.Context, companyID string, req dto.CreateGoodLinkRequest, creatorUserID string) (*domain.JournalGoodLink, error) {
	args := m.Called(ctx, companyID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalGoodLink), args.Error(1)
}

func (m *MockLinkService) CreatePartnerGoodLink(ctx context.Context, companyID string, req dto.CreatePartnerGoodLinkRequest, creatorUserID string) (*domain.JournalPartnerGoodLink, error) {
	args := m.Called(ctx, companyID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalPartnerGoodLink), args.Error(1)
}

func (m *MockLinkService) DeletePartnerLink(ctx context.Context, companyID, linkID string, requestingUserID string) error {
	args := m.Called(ctx, companyID, linkID, requestingUserID)
	return args.Error(0)
}

func (m *MockLinkService) DeleteGoodLink(ctx context.Context, companyID, linkID string, requestingUserID string) error {
	args := m.Called(ctx, companyID, linkID, requestingUserID)
	return args.Error(0)
}

func (m *MockLinkService) DeletePartnerGoodLink(ctx context.Context, companyID, linkID string, requestingUserID string) error {
	args := m.Called(ctx, companyID, linkID, requestingUserID)
	return args.Error(0)
}

func (m *MockLinkService) ListPartnerLinks(ctx context.Context, companyID string, params dto.ListLinksParams, requestingUserID string) ([]domain.JournalPartnerLink, error) {
	args := m.Called(ctx, companyID, params, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalPartnerLink), args.Error(1)
}

func (m *MockLinkService) ListGoodLinks(ctx context.Context, companyID string, params dto.ListLinksParams, requestingUserID string) ([]domain.JournalGoodLink, error) {
	args := m.Called(ctx, companyID, params, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalGoodLink), args.Error(1)
}

func (m *MockLinkService) ListPartnerGoodLinks(ctx context.Context, companyID string, params dto.ListLinksParams, requestingUserID string) ([]domain.JournalPartnerGoodLink, error) {
	args := m.Called(ctx, companyID, params, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalPartnerGoodLink), args.Error(1)
}

var _ portssvc.LinkSvcFacade = (*MockLinkService)(nil)

// --- Test Suite ---

type LinkHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockLinkService *MockLinkService
	jwtSecret       string
}

func (suite *LinkHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockLinkService = new(MockLinkService)

	group := suite.router.Group("/api/v1/companies/:companyID")
	handlers.RegisterLinkRoutes(group, suite.mockLinkService)
}

func (suite *LinkHandlerTestSuite) generateTestToken(userID string) string {
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

func (suite *LinkHandlerTestSuite) doRequest(method, url string, body any, userID string) *httptest.ResponseRecorder {
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

func (suite *LinkHandlerTestSuite) TestCreatePartnerLink_Success() {
	companyID := uuid.NewString()
	userID := uuid.NewString()
	journalID := uuid.NewString()
	partnerID := uuid.NewString()

	created := &domain.JournalPartnerLink{
		LinkID:    uuid.NewString(),
		CompanyID: companyID,
		JournalID: journalID,
		PartnerID: partnerID,
		Approval:  domain.NewPendingApproval(1),
	}

	suite.mockLinkService.On("CreatePartnerLink",
		mock.Anything,
		companyID,
		mock.MatchedBy(func(req dto.CreatePartnerLinkRequest) bool {
			return req.JournalID == journalID && req.PartnerID == partnerID
		}),
		userID,
	).Return(created, nil).Once()

	body := dto.CreatePartnerLinkRequest{JournalID: journalID, PartnerID: partnerID}
	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/partner-links", companyID), body, userID)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.PartnerLinkResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.LinkID, resp.LinkID)
	suite.Equal(journalID, resp.JournalID)

	suite.mockLinkService.AssertExpectations(suite.T())
}

func (suite *LinkHandlerTestSuite) TestCreatePartnerLink_HierarchyViolation() {
	companyID := uuid.NewString()
	userID := uuid.NewString()
	journalID := uuid.NewString()
	partnerID := uuid.NewString()

	suite.mockLinkService.On("CreatePartnerLink", mock.Anything, companyID, mock.Anything, userID).
		Return(nil, fmt.Errorf("%w: parent journal has no link for partner %s", apperrors.ErrHierarchyViolation, partnerID)).Once()

	body := dto.CreatePartnerLinkRequest{JournalID: journalID, PartnerID: partnerID}
	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/partner-links", companyID), body, userID)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)

	var resp map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Contains(resp["error"], "parent journal has no link")
}

func (suite *LinkHandlerTestSuite) TestCreateGoodLink_DuplicateConflict() {
	companyID := uuid.NewString()
	userID := uuid.NewString()
	journalID := uuid.NewString()
	goodID := uuid.NewString()

	suite.mockLinkService.On("CreateGoodLink", mock.Anything, companyID, mock.Anything, userID).
		Return(nil, fmt.Errorf("%w: good link already exists", apperrors.ErrDuplicate)).Once()

	body := dto.CreateGoodLinkRequest{JournalID: journalID, GoodID: goodID}
	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/good-links", companyID), body, userID)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *LinkHandlerTestSuite) TestCreatePartnerLink_MissingJournalID() {
	companyID := uuid.NewString()
	userID := uuid.NewString()

	body := map[string]string{"partnerID": uuid.NewString()}
	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/partner-links", companyID), body, userID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLinkService.AssertNotCalled(suite.T(), "CreatePartnerLink")
}

func (suite *LinkHandlerTestSuite) TestListPartnerLinks_SubtreeScope() {
	companyID := uuid.NewString()
	userID := uuid.NewString()
	journalID := uuid.NewString()

	links := []domain.JournalPartnerLink{
		{LinkID: uuid.NewString(), CompanyID: companyID, JournalID: journalID, PartnerID: uuid.NewString()},
		{LinkID: uuid.NewString(), CompanyID: companyID, JournalID: uuid.NewString(), PartnerID: uuid.NewString()},
	}

	suite.mockLinkService.On("ListPartnerLinks",
		mock.Anything,
		companyID,
		mock.MatchedBy(func(params dto.ListLinksParams) bool {
			return params.JournalID != nil && *params.JournalID == journalID && params.IncludeDescendants
		}),
		userID,
	).Return(links, nil).Once()

	url := fmt.Sprintf("/api/v1/companies/%s/partner-links?journalID=%s&includeDescendants=true", companyID, journalID)
	w := suite.doRequest(http.MethodGet, url, nil, userID)

	suite.Equal(http.StatusOK, w.Code)

	var resp []dto.PartnerLinkResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp, 2)

	suite.mockLinkService.AssertExpectations(suite.T())
}

func (suite *LinkHandlerTestSuite) TestDeletePartnerGoodLink_NotFound() {
	companyID := uuid.NewString()
	userID := uuid.NewString()
	linkID := uuid.NewString()

	suite.mockLinkService.On("DeletePartnerGoodLink", mock.Anything, companyID, linkID, userID).
		Return(apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodDelete, fmt.Sprintf("/api/v1/companies/%s/partner-good-links/%s", companyID, linkID), nil, userID)

	suite.Equal(http.StatusNotFound, w.Code)
}

func TestLinkHandler(t *testing.T) {
	suite.Run(t, new(LinkHandlerTestSuite))
}
