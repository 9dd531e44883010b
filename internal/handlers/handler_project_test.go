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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/apperrors"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
	portssvc "github.com/muhapauka-rgb/CXEMA-V7/internal/core/ports/services"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/dto"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/handlers"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/middleware"
)

// --- Mock ProjectService ---
type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) GetProjectByID(ctx context.Context, projectID int64) (*domain.Project, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectService) ListProjects(ctx context.Context, includeClosed bool) ([]domain.Project, error) {
	args := m.Called(ctx, includeClosed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *MockProjectService) GetProjectFinancials(ctx context.Context, projectID int64) (domain.ProjectFinancials, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(domain.ProjectFinancials), args.Error(1)
}

func (m *MockProjectService) GetEffectiveRows(ctx context.Context, projectID int64) ([]domain.EffectiveRow, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EffectiveRow), args.Error(1)
}

func (m *MockProjectService) CreateProject(ctx context.Context, req dto.CreateProjectRequest) (*domain.Project, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectService) UpdateProject(ctx context.Context, projectID int64, req dto.UpdateProjectRequest) (*domain.Project, error) {
	args := m.Called(ctx, projectID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectService) CloseProject(ctx context.Context, projectID int64, closedAt *time.Time) error {
	args := m.Called(ctx, projectID, closedAt)
	return args.Error(0)
}

func (m *MockProjectService) DeleteProject(ctx context.Context, projectID int64) error {
	args := m.Called(ctx, projectID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.ProjectSvcFacade = (*MockProjectService)(nil)

// --- Test Suite ---
type ProjectHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockProjectService *MockProjectService
	jwtSecret          string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *ProjectHandlerTestSuite) generateTestToken() string {
	claims := jwt.RegisteredClaims{
		Issuer:    "cxema-test",
		Subject:   "operator",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *ProjectHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	// Use the actual AuthMiddleware
	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockProjectService = new(MockProjectService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterProjectRoutes(v1, suite.mockProjectService)
}

func (suite *ProjectHandlerTestSuite) doRequest(method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken())
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *ProjectHandlerTestSuite) TestGetProject_Success() {
	client := "ООО Ромашка"
	project := &domain.Project{
		ID:                      42,
		Title:                   "Дом на Рублёвке",
		ClientName:              &client,
		ProjectPriceTotal:       decimal.NewFromInt(500000),
		ExpectedFromClientTotal: decimal.NewFromInt(500000),
		AgencyFeePercent:        decimal.NewFromInt(20),
		CreatedAt:               time.Now(),
	}
	financials := domain.ProjectFinancials{
		ExpensesTotal: decimal.NewFromInt(300000),
		AgencyFee:     decimal.NewFromInt(100000),
		InPocket:      decimal.NewFromInt(100000),
		Diff:          decimal.NewFromInt(200000),
	}

	suite.mockProjectService.On("GetProjectByID", mock.Anything, int64(42)).Return(project, nil).Once()
	suite.mockProjectService.On("GetProjectFinancials", mock.Anything, int64(42)).Return(financials, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/projects/42", nil)

	suite.Equal(http.StatusOK, w.Code)

	var responseBody dto.ProjectDetailResponse
	err := json.Unmarshal(w.Body.Bytes(), &responseBody)
	suite.NoError(err, "Failed to unmarshal response body")
	suite.Equal(int64(42), responseBody.ID)
	suite.Equal("Дом на Рублёвке", responseBody.Title)
	suite.True(responseBody.Financials.AgencyFee.Equal(decimal.NewFromInt(100000)))
	suite.True(responseBody.Financials.Diff.Equal(decimal.NewFromInt(200000)))

	suite.mockProjectService.AssertExpectations(suite.T())
}

func (suite *ProjectHandlerTestSuite) TestGetProject_NotFound() {
	suite.mockProjectService.On("GetProjectByID", mock.Anything, int64(7)).
		Return(nil, fmt.Errorf("failed to find project: %w", apperrors.ErrNotFound)).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/projects/7", nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockProjectService.AssertExpectations(suite.T())
}

func (suite *ProjectHandlerTestSuite) TestGetProject_InvalidID() {
	w := suite.doRequest(http.MethodGet, "/api/v1/projects/abc", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockProjectService.AssertNotCalled(suite.T(), "GetProjectByID")
}

func (suite *ProjectHandlerTestSuite) TestCreateProject_Success() {
	req := dto.CreateProjectRequest{Title: "Квартира на Арбате"}
	created := &domain.Project{
		ID:               3,
		Title:            "Квартира на Арбате",
		AgencyFeePercent: decimal.NewFromInt(20),
		CreatedAt:        time.Now(),
	}

	suite.mockProjectService.On("CreateProject", mock.Anything, mock.MatchedBy(func(r dto.CreateProjectRequest) bool {
		return r.Title == req.Title
	})).Return(created, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/projects", req)

	suite.Equal(http.StatusCreated, w.Code)

	var responseBody dto.ProjectResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &responseBody))
	suite.Equal(int64(3), responseBody.ID)

	suite.mockProjectService.AssertExpectations(suite.T())
}

func (suite *ProjectHandlerTestSuite) TestCreateProject_ValidationError() {
	suite.mockProjectService.On("CreateProject", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("agency fee percent must be between 0 and 100: %w", apperrors.ErrValidation)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/projects", dto.CreateProjectRequest{Title: "X"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockProjectService.AssertExpectations(suite.T())
}

func (suite *ProjectHandlerTestSuite) TestCloseProject_NoBody() {
	suite.mockProjectService.On("CloseProject", mock.Anything, int64(9), (*time.Time)(nil)).
		Return(nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/projects/9/close", nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockProjectService.AssertExpectations(suite.T())
}

func (suite *ProjectHandlerTestSuite) TestCloseProject_AlreadyClosed() {
	suite.mockProjectService.On("CloseProject", mock.Anything, int64(9), (*time.Time)(nil)).
		Return(fmt.Errorf("project 9 is already closed: %w", apperrors.ErrConflict)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/projects/9/close", nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockProjectService.AssertExpectations(suite.T())
}

func (suite *ProjectHandlerTestSuite) TestListProjects_MissingToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/projects", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockProjectService.AssertNotCalled(suite.T(), "ListProjects")
}

// --- Run Test Suite ---
func TestProjectHandler(t *testing.T) {
	suite.Run(t, new(ProjectHandlerTestSuite))
}
