package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/apperrors"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
	portssvc "github.com/muhapauka-rgb/CXEMA-V7/internal/core/ports/services"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/services"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/dto"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	mockPaymentRepo *MockPaymentRepository
	mockProjectRepo *MockProjectRepository
	service         portssvc.PaymentSvcFacade
}

func (s *PaymentServiceTestSuite) SetupTest() {
	s.mockPaymentRepo = new(MockPaymentRepository)
	s.mockProjectRepo = new(MockProjectRepository)
	s.service = services.NewPaymentService(s.mockPaymentRepo, s.mockProjectRepo)
}

func day(value string) time.Time {
	t, _ := time.Parse("2006-01-02", value)
	return t
}

func (s *PaymentServiceTestSuite) TestListRealizedPayments_MergesDuePlans() {
	ctx := context.Background()
	asOf := day("2024-03-15")

	s.mockPaymentRepo.On("ListFactsByProject", ctx, int64(1)).Return([]domain.PaymentFact{
		{ID: 11, ProjectID: 1, PayDate: day("2024-03-01"), Amount: dec("1000")},
		{ID: 12, ProjectID: 1, PayDate: day("2024-04-01"), Amount: dec("900")},
	}, nil).Once()
	s.mockPaymentRepo.On("ListPlansByProject", ctx, int64(1)).Return([]domain.PaymentPlan{
		{ID: 21, ProjectID: 1, PayDate: day("2024-03-10"), Amount: dec("500")},
		{ID: 22, ProjectID: 1, PayDate: day("2024-05-01"), Amount: dec("700")},
	}, nil).Once()

	rows, err := s.service.ListRealizedPayments(ctx, 1, asOf)

	s.Require().NoError(err)
	s.Require().Len(rows, 2)
	s.Equal(int64(11), rows[0].ID)
	s.False(rows[0].IsPlan)
	s.Equal(int64(-21), rows[1].ID)
	s.True(rows[1].IsPlan)
	s.mockPaymentRepo.AssertExpectations(s.T())
}

func (s *PaymentServiceTestSuite) TestListPlannedPayments_OnlyFuture() {
	ctx := context.Background()
	asOf := day("2024-03-15")

	s.mockPaymentRepo.On("ListPlansByProject", ctx, int64(1)).Return([]domain.PaymentPlan{
		{ID: 21, ProjectID: 1, PayDate: day("2024-03-15"), Amount: dec("500")},
		{ID: 22, ProjectID: 1, PayDate: day("2024-05-01"), Amount: dec("700")},
	}, nil).Once()

	plans, err := s.service.ListPlannedPayments(ctx, 1, asOf)

	s.Require().NoError(err)
	s.Require().Len(plans, 1)
	s.Equal(int64(22), plans[0].ID)
}

func (s *PaymentServiceTestSuite) TestCreatePlan_AssignsStablePayID() {
	ctx := context.Background()
	amount := dec("2500")
	req := dto.CreatePaymentRequest{PayDate: "2024-04-01", Amount: &amount, Note: "аванс"}

	s.mockProjectRepo.On("FindProjectByID", ctx, int64(1)).
		Return(&domain.Project{ID: 1}, nil).Once()
	s.mockPaymentRepo.On("SavePlan", ctx, mock.MatchedBy(func(p domain.PaymentPlan) bool {
		return p.StablePayID != "" && p.Amount.Equal(amount) && p.Note == "аванс"
	})).Return(domain.PaymentPlan{ID: 30, StablePayID: "pay_abc"}, nil).Once()

	plan, err := s.service.CreatePlan(ctx, 1, req)

	s.Require().NoError(err)
	s.Equal(int64(30), plan.ID)
	s.mockPaymentRepo.AssertExpectations(s.T())
}

func (s *PaymentServiceTestSuite) TestCreateFact_NonPositiveAmountRejected() {
	ctx := context.Background()
	amount := dec("0")
	req := dto.CreatePaymentRequest{PayDate: "2024-04-01", Amount: &amount}

	s.mockProjectRepo.On("FindProjectByID", ctx, int64(1)).
		Return(&domain.Project{ID: 1}, nil).Once()

	fact, err := s.service.CreateFact(ctx, 1, req)

	s.Require().Error(err)
	s.Nil(fact)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockPaymentRepo.AssertNotCalled(s.T(), "SaveFact")
}

func (s *PaymentServiceTestSuite) TestUpdateFact_PartialUpdate() {
	ctx := context.Background()
	newAmount := dec("1200")
	req := dto.UpdatePaymentRequest{Amount: &newAmount}

	s.mockPaymentRepo.On("FindFactByID", ctx, int64(12)).
		Return(&domain.PaymentFact{ID: 12, ProjectID: 1, PayDate: day("2024-04-01"), Amount: dec("900"), Note: "platezh"}, nil).Once()
	s.mockPaymentRepo.On("UpdateFact", ctx, mock.MatchedBy(func(f domain.PaymentFact) bool {
		return f.Amount.Equal(newAmount) && f.Note == "platezh"
	})).Return(nil).Once()

	fact, err := s.service.UpdateFact(ctx, 12, req)

	s.Require().NoError(err)
	s.True(fact.Amount.Equal(newAmount))
	s.mockPaymentRepo.AssertExpectations(s.T())
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
