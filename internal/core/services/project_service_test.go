package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/apperrors"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
	portssvc "github.com/muhapauka-rgb/CXEMA-V7/internal/core/ports/services"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/services"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/dto"
)

type ProjectServiceTestSuite struct {
	suite.Suite
	mockProjectRepo *MockProjectRepository
	mockExpenseRepo *MockExpenseRepository
	service         portssvc.ProjectSvcFacade
}

func (s *ProjectServiceTestSuite) SetupTest() {
	s.mockProjectRepo = new(MockProjectRepository)
	s.mockExpenseRepo = new(MockExpenseRepository)
	s.service = services.NewProjectService(s.mockProjectRepo, s.mockExpenseRepo)
}

func (s *ProjectServiceTestSuite) TestCreateProject_SeedsDefaultGroups() {
	ctx := context.Background()
	price := dec("100000")
	req := dto.CreateProjectRequest{Title: "Квартира на Остоженке", ProjectPriceTotal: &price}

	s.mockProjectRepo.On("SaveProjectWithGroups", ctx, mock.MatchedBy(func(p domain.Project) bool {
		return p.Title == req.Title && p.ProjectPriceTotal.Equal(price)
	}), mock.MatchedBy(func(groups []domain.ExpenseGroup) bool {
		if len(groups) != 3 {
			return false
		}
		names := []string{"Стройка", "Команда", "Дизайн"}
		for i, g := range groups {
			if g.Name != names[i] || g.SortOrder != i {
				return false
			}
		}
		return true
	})).Return(domain.Project{ID: 1, Title: req.Title, ProjectPriceTotal: price}, nil).Once()

	project, err := s.service.CreateProject(ctx, req)

	s.Require().NoError(err)
	s.Equal(int64(1), project.ID)
	s.mockProjectRepo.AssertExpectations(s.T())
}

func (s *ProjectServiceTestSuite) TestCreateProject_SingleAtomicWrite() {
	ctx := context.Background()
	req := dto.CreateProjectRequest{Title: "Дом в Сколково"}

	s.mockProjectRepo.On("SaveProjectWithGroups", ctx, mock.Anything, mock.Anything).
		Return(domain.Project{}, assert.AnError).Once()

	project, err := s.service.CreateProject(ctx, req)

	s.Require().Error(err)
	s.Nil(project)
	// Creation is one repository call; nothing is written outside of it, so
	// a failure cannot leave an orphan project or a partial group set.
	s.mockExpenseRepo.AssertNotCalled(s.T(), "SaveGroup")
}

func (s *ProjectServiceTestSuite) TestCreateProject_FeePercentOutOfRange() {
	ctx := context.Background()
	fee := dec("150")
	req := dto.CreateProjectRequest{Title: "x", AgencyFeePercent: &fee}

	project, err := s.service.CreateProject(ctx, req)

	s.Require().Error(err)
	s.Nil(project)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockProjectRepo.AssertNotCalled(s.T(), "SaveProjectWithGroups")
}

func (s *ProjectServiceTestSuite) TestCloseProject_AlreadyClosed() {
	ctx := context.Background()
	closed := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	s.mockProjectRepo.On("FindProjectByID", ctx, int64(1)).
		Return(&domain.Project{ID: 1, CreatedAt: closed.AddDate(0, -3, 0), ClosedAt: &closed}, nil).Once()

	err := s.service.CloseProject(ctx, 1, nil)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.mockProjectRepo.AssertNotCalled(s.T(), "CloseProject")
}

func (s *ProjectServiceTestSuite) TestCloseProject_BeforeCreationRejected() {
	ctx := context.Background()
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	tooEarly := created.AddDate(0, 0, -10)

	s.mockProjectRepo.On("FindProjectByID", ctx, int64(1)).
		Return(&domain.Project{ID: 1, CreatedAt: created}, nil).Once()

	err := s.service.CloseProject(ctx, 1, &tooEarly)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockProjectRepo.AssertNotCalled(s.T(), "CloseProject")
}

func (s *ProjectServiceTestSuite) TestGetProjectFinancials_AggregatesRows() {
	ctx := context.Background()
	project := &domain.Project{ID: 1, ProjectPriceTotal: dec("100000"), AgencyFeePercent: dec("10")}
	extra := dec("500")

	s.mockProjectRepo.On("FindProjectByID", ctx, int64(1)).Return(project, nil).Once()
	s.mockExpenseRepo.On("ListItemsByProject", ctx, int64(1)).Return([]domain.ExpenseItem{
		{ID: 5, ProjectID: 1, GroupID: 10, Mode: domain.SingleTotal, BaseTotal: dec("40000"), ExtraProfitEnabled: true, ExtraProfitAmount: extra},
	}, nil).Once()
	s.mockExpenseRepo.On("ListAdjustmentsByProject", ctx, int64(1)).Return([]domain.BillingAdjustment{}, nil).Once()

	financials, err := s.service.GetProjectFinancials(ctx, 1)

	s.Require().NoError(err)
	s.True(financials.AgencyFee.Equal(dec("10000")))
	s.True(financials.ExpensesTotal.Equal(dec("40500")))
	s.True(financials.InPocket.Equal(dec("10500")))
	s.True(financials.Diff.Equal(dec("59500")))
}

func TestProjectServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectServiceTestSuite))
}
