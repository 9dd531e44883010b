package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/apperrors"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
	portssvc "github.com/muhapauka-rgb/CXEMA-V7/internal/core/ports/services"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/services"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/dto"
)

type ExpenseServiceTestSuite struct {
	suite.Suite
	mockExpenseRepo *MockExpenseRepository
	mockProjectRepo *MockProjectRepository
	service         portssvc.ExpenseSvcFacade
}

func (s *ExpenseServiceTestSuite) SetupTest() {
	s.mockExpenseRepo = new(MockExpenseRepository)
	s.mockProjectRepo = new(MockProjectRepository)
	s.service = services.NewExpenseService(s.mockExpenseRepo, s.mockProjectRepo)
}

func dec(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

func (s *ExpenseServiceTestSuite) TestCreateItem_QtyPriceDerivesBase() {
	ctx := context.Background()
	qty := dec("3")
	unit := dec("1500")
	req := dto.CreateItemRequest{
		GroupID:       10,
		Title:         "Плитка",
		Mode:          "QTY_PRICE",
		Qty:           &qty,
		UnitPriceBase: &unit,
	}

	s.mockExpenseRepo.On("FindGroupByID", ctx, int64(10)).
		Return(&domain.ExpenseGroup{ID: 10, ProjectID: 1}, nil).Once()
	s.mockExpenseRepo.On("SaveItem", ctx, mock.MatchedBy(func(it domain.ExpenseItem) bool {
		return it.BaseTotal.Equal(dec("4500")) && it.Mode == domain.QtyPrice && it.StableItemID != ""
	})).Return(domain.ExpenseItem{ID: 5, BaseTotal: dec("4500")}, nil).Once()

	item, err := s.service.CreateItem(ctx, 1, req)

	s.Require().NoError(err)
	s.Require().NotNil(item)
	s.True(item.BaseTotal.Equal(dec("4500")))
	s.mockExpenseRepo.AssertExpectations(s.T())
}

func (s *ExpenseServiceTestSuite) TestCreateItem_QtyPriceNeedsBothFields() {
	ctx := context.Background()
	qty := dec("3")
	req := dto.CreateItemRequest{
		GroupID: 10,
		Title:   "Плитка",
		Mode:    "QTY_PRICE",
		Qty:     &qty,
	}

	s.mockExpenseRepo.On("FindGroupByID", ctx, int64(10)).
		Return(&domain.ExpenseGroup{ID: 10, ProjectID: 1}, nil).Once()

	item, err := s.service.CreateItem(ctx, 1, req)

	s.Require().Error(err)
	s.Nil(item)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockExpenseRepo.AssertNotCalled(s.T(), "SaveItem")
}

func (s *ExpenseServiceTestSuite) TestCreateItem_GroupOfAnotherProjectRejected() {
	ctx := context.Background()
	base := dec("100")
	req := dto.CreateItemRequest{GroupID: 10, Title: "x", Mode: "SINGLE_TOTAL", BaseTotal: &base}

	s.mockExpenseRepo.On("FindGroupByID", ctx, int64(10)).
		Return(&domain.ExpenseGroup{ID: 10, ProjectID: 99}, nil).Once()

	_, err := s.service.CreateItem(ctx, 1, req)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ExpenseServiceTestSuite) TestCreateItem_ChildDropsOutOfEstimate() {
	ctx := context.Background()
	base := dec("200")
	parentID := int64(7)
	include := true
	req := dto.CreateItemRequest{
		GroupID:           10,
		ParentItemID:      &parentID,
		Title:             "Подпункт",
		Mode:              "SINGLE_TOTAL",
		BaseTotal:         &base,
		IncludeInEstimate: &include,
	}

	s.mockExpenseRepo.On("FindGroupByID", ctx, int64(10)).
		Return(&domain.ExpenseGroup{ID: 10, ProjectID: 1}, nil).Once()
	s.mockExpenseRepo.On("FindItemByID", ctx, parentID).
		Return(&domain.ExpenseItem{ID: parentID, ProjectID: 1, GroupID: 10}, nil).Once()
	s.mockExpenseRepo.On("SaveItem", ctx, mock.MatchedBy(func(it domain.ExpenseItem) bool {
		return !it.IncludeInEstimate && it.ParentItemID != nil && *it.ParentItemID == parentID
	})).Return(domain.ExpenseItem{ID: 8}, nil).Once()

	_, err := s.service.CreateItem(ctx, 1, req)

	s.Require().NoError(err)
	s.mockExpenseRepo.AssertExpectations(s.T())
}

func (s *ExpenseServiceTestSuite) TestCreateItem_ParentMustBeTopLevel() {
	ctx := context.Background()
	base := dec("200")
	parentID := int64(7)
	grandParent := int64(3)
	req := dto.CreateItemRequest{
		GroupID:      10,
		ParentItemID: &parentID,
		Title:        "Слишком глубоко",
		Mode:         "SINGLE_TOTAL",
		BaseTotal:    &base,
	}

	s.mockExpenseRepo.On("FindGroupByID", ctx, int64(10)).
		Return(&domain.ExpenseGroup{ID: 10, ProjectID: 1}, nil).Once()
	s.mockExpenseRepo.On("FindItemByID", ctx, parentID).
		Return(&domain.ExpenseItem{ID: parentID, ProjectID: 1, GroupID: 10, ParentItemID: &grandParent}, nil).Once()

	_, err := s.service.CreateItem(ctx, 1, req)

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrParentNotTopLevel)
	s.mockExpenseRepo.AssertNotCalled(s.T(), "SaveItem")
}

func (s *ExpenseServiceTestSuite) TestUpdateItem_ItemWithChildrenCannotMove() {
	ctx := context.Background()
	newGroup := int64(20)
	req := dto.UpdateItemRequest{GroupID: &newGroup}

	s.mockExpenseRepo.On("FindItemByID", ctx, int64(5)).
		Return(&domain.ExpenseItem{ID: 5, ProjectID: 1, GroupID: 10, Mode: domain.SingleTotal}, nil).Once()
	s.mockExpenseRepo.On("ListChildren", ctx, int64(5)).
		Return([]domain.ExpenseItem{{ID: 6}}, nil).Once()

	_, err := s.service.UpdateItem(ctx, 5, req)

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrHasChildren)
	s.mockExpenseRepo.AssertNotCalled(s.T(), "UpdateItem")
}

func (s *ExpenseServiceTestSuite) TestUpdateItem_ClearPlannedPayDate() {
	ctx := context.Background()
	planned := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	req := dto.UpdateItemRequest{ClearPlannedPayDate: true}

	s.mockExpenseRepo.On("FindItemByID", ctx, int64(5)).
		Return(&domain.ExpenseItem{ID: 5, ProjectID: 1, GroupID: 10, Mode: domain.SingleTotal, PlannedPayDate: &planned}, nil).Once()
	s.mockExpenseRepo.On("ListChildren", ctx, int64(5)).
		Return([]domain.ExpenseItem{}, nil).Once()
	s.mockExpenseRepo.On("UpdateItem", ctx, mock.MatchedBy(func(it domain.ExpenseItem) bool {
		return it.PlannedPayDate == nil
	})).Return(nil).Once()

	item, err := s.service.UpdateItem(ctx, 5, req)

	s.Require().NoError(err)
	s.Nil(item.PlannedPayDate)
	s.mockExpenseRepo.AssertExpectations(s.T())
}

func (s *ExpenseServiceTestSuite) TestUpdateItem_DisablingExtraZeroesAmount() {
	ctx := context.Background()
	disabled := false
	req := dto.UpdateItemRequest{ExtraProfitEnabled: &disabled}

	s.mockExpenseRepo.On("FindItemByID", ctx, int64(5)).
		Return(&domain.ExpenseItem{
			ID: 5, ProjectID: 1, GroupID: 10, Mode: domain.SingleTotal,
			ExtraProfitEnabled: true, ExtraProfitAmount: dec("300"),
		}, nil).Once()
	s.mockExpenseRepo.On("ListChildren", ctx, int64(5)).
		Return([]domain.ExpenseItem{}, nil).Once()
	s.mockExpenseRepo.On("UpdateItem", ctx, mock.MatchedBy(func(it domain.ExpenseItem) bool {
		return !it.ExtraProfitEnabled && it.ExtraProfitAmount.IsZero()
	})).Return(nil).Once()

	_, err := s.service.UpdateItem(ctx, 5, req)

	s.Require().NoError(err)
	s.mockExpenseRepo.AssertExpectations(s.T())
}

func (s *ExpenseServiceTestSuite) TestUpsertAdjustment_NegativeDiscountRejected() {
	ctx := context.Background()
	negative := dec("-50")
	req := dto.UpsertAdjustmentRequest{
		AdjustmentType:  "DISCOUNT",
		DiscountEnabled: true,
		DiscountAmount:  &negative,
	}

	s.mockExpenseRepo.On("FindItemByID", ctx, int64(5)).
		Return(&domain.ExpenseItem{ID: 5, ProjectID: 1}, nil).Once()

	_, err := s.service.UpsertAdjustment(ctx, 5, req)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockExpenseRepo.AssertNotCalled(s.T(), "UpsertAdjustment")
}

func (s *ExpenseServiceTestSuite) TestGetAdjustment_AbsentIsNil() {
	ctx := context.Background()

	s.mockExpenseRepo.On("FindAdjustmentByItem", ctx, int64(5)).
		Return(nil, apperrors.ErrNotFound).Once()

	adj, err := s.service.GetAdjustment(ctx, 5)

	s.Require().NoError(err)
	s.Nil(adj)
}

func TestExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}
