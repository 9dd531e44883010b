package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/adapters/sheets"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/apperrors"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
	portssvc "github.com/muhapauka-rgb/CXEMA-V7/internal/core/ports/services"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/services"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/dto"
)

type SheetsServiceTestSuite struct {
	suite.Suite
	mockLinkRepo    *MockSheetLinkRepository
	mockExpenseRepo *MockExpenseRepository
	mockProjectRepo *MockProjectRepository
	mockPaymentRepo *MockPaymentRepository
	mockSyncer      *MockSyncer
	service         portssvc.SheetsSvc
}

func (s *SheetsServiceTestSuite) SetupTest() {
	s.mockLinkRepo = new(MockSheetLinkRepository)
	s.mockExpenseRepo = new(MockExpenseRepository)
	s.mockProjectRepo = new(MockProjectRepository)
	s.mockPaymentRepo = new(MockPaymentRepository)
	s.mockSyncer = new(MockSyncer)
	estimate := services.NewEstimateService(s.mockProjectRepo, s.mockExpenseRepo, s.mockPaymentRepo)
	s.service = services.NewSheetsService(s.mockLinkRepo, s.mockExpenseRepo, s.mockProjectRepo, estimate, s.mockSyncer)
}

func (s *SheetsServiceTestSuite) TestGetStatus_Unlinked() {
	ctx := context.Background()

	s.mockProjectRepo.On("FindProjectByID", ctx, int64(1)).Return(&domain.Project{ID: 1}, nil).Once()
	s.mockLinkRepo.On("FindLinkByProject", ctx, int64(1)).Return(nil, apperrors.ErrNotFound).Once()

	status, err := s.service.GetStatus(ctx, 1)

	s.Require().NoError(err)
	s.False(status.Linked)
}

func (s *SheetsServiceTestSuite) TestPublish_RequiresLink() {
	ctx := context.Background()

	s.mockLinkRepo.On("FindLinkByProject", ctx, int64(1)).Return(nil, apperrors.ErrNotFound).Once()

	resp, err := s.service.Publish(ctx, 1)

	s.Require().Error(err)
	s.Nil(resp)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.mockSyncer.AssertNotCalled(s.T(), "WriteRows")
}

func (s *SheetsServiceTestSuite) TestPreviewThenApply() {
	ctx := context.Background()
	link := &domain.GoogleSheetLink{ID: 1, ProjectID: 1, SpreadsheetID: "sheet-1", SheetTabName: "Смета"}
	item := domain.ExpenseItem{
		ID: 5, StableItemID: "item_aaaa", ProjectID: 1, GroupID: 10,
		Title: "Плитка", Mode: domain.SingleTotal, BaseTotal: dec("4500"),
	}

	s.mockLinkRepo.On("FindLinkByProject", ctx, int64(1)).Return(link, nil)
	s.mockSyncer.On("ReadRows", ctx, "sheet-1", "Смета").Return([]sheets.Row{
		{StableItemID: "item_aaaa", Title: "Плитка и клей", Amount: dec("5000")},
		{StableItemID: "item_unknown", Title: "Чужая строка", Amount: dec("1")},
	}, nil).Once()
	s.mockExpenseRepo.On("ListItemsByProject", ctx, int64(1)).Return([]domain.ExpenseItem{item}, nil)

	preview, err := s.service.PreviewImport(ctx, 1)

	s.Require().NoError(err)
	s.Require().Len(preview.Changes, 2)
	s.NotEmpty(preview.ConfirmToken)

	// Both changes touch the same item, so the batch carries one item with
	// the title and amount already folded in.
	s.mockExpenseRepo.On("UpdateItems", ctx, mock.MatchedBy(func(items []domain.ExpenseItem) bool {
		return len(items) == 1 && items[0].ID == 5 &&
			items[0].Title == "Плитка и клей" && items[0].BaseTotal.Equal(dec("5000"))
	})).Return(nil).Once()
	s.mockLinkRepo.On("TouchImported", ctx, int64(1), mock.AnythingOfType("time.Time")).Return(nil).Once()

	applied, err := s.service.ApplyImport(ctx, 1, dto.ImportApplyRequest{ConfirmToken: preview.ConfirmToken})

	s.Require().NoError(err)
	s.Equal(2, applied.Applied)
	s.mockExpenseRepo.AssertExpectations(s.T())
}

func (s *SheetsServiceTestSuite) TestApplyImport_BatchFailureWritesNothing() {
	ctx := context.Background()
	link := &domain.GoogleSheetLink{ID: 1, ProjectID: 1, SpreadsheetID: "sheet-1", SheetTabName: "Смета"}
	item := domain.ExpenseItem{
		ID: 5, StableItemID: "item_aaaa", ProjectID: 1, GroupID: 10,
		Title: "Плитка", Mode: domain.SingleTotal, BaseTotal: dec("4500"),
	}

	s.mockLinkRepo.On("FindLinkByProject", ctx, int64(1)).Return(link, nil)
	s.mockSyncer.On("ReadRows", ctx, "sheet-1", "Смета").Return([]sheets.Row{
		{StableItemID: "item_aaaa", Title: "Плитка и клей", Amount: dec("5000")},
	}, nil).Once()
	s.mockExpenseRepo.On("ListItemsByProject", ctx, int64(1)).Return([]domain.ExpenseItem{item}, nil)

	preview, err := s.service.PreviewImport(ctx, 1)
	s.Require().NoError(err)

	s.mockExpenseRepo.On("UpdateItems", ctx, mock.Anything).Return(assert.AnError).Once()

	applied, err := s.service.ApplyImport(ctx, 1, dto.ImportApplyRequest{ConfirmToken: preview.ConfirmToken})

	s.Require().Error(err)
	s.Nil(applied)
	// A failed apply never reaches the link bookkeeping and issues no
	// per-item writes outside the batch.
	s.mockLinkRepo.AssertNotCalled(s.T(), "TouchImported")
	s.mockExpenseRepo.AssertNotCalled(s.T(), "UpdateItem")
}

func (s *SheetsServiceTestSuite) TestApplyImport_TokenIsSingleUse() {
	ctx := context.Background()
	link := &domain.GoogleSheetLink{ID: 1, ProjectID: 1, SpreadsheetID: "sheet-1", SheetTabName: "Смета"}

	s.mockLinkRepo.On("FindLinkByProject", ctx, int64(1)).Return(link, nil)
	s.mockSyncer.On("ReadRows", ctx, "sheet-1", "Смета").Return([]sheets.Row{}, nil).Once()
	s.mockExpenseRepo.On("ListItemsByProject", ctx, int64(1)).Return([]domain.ExpenseItem{}, nil)
	s.mockExpenseRepo.On("UpdateItems", ctx, []domain.ExpenseItem{}).Return(nil).Once()
	s.mockLinkRepo.On("TouchImported", ctx, int64(1), mock.AnythingOfType("time.Time")).Return(nil).Once()

	preview, err := s.service.PreviewImport(ctx, 1)
	s.Require().NoError(err)

	_, err = s.service.ApplyImport(ctx, 1, dto.ImportApplyRequest{ConfirmToken: preview.ConfirmToken})
	s.Require().NoError(err)

	_, err = s.service.ApplyImport(ctx, 1, dto.ImportApplyRequest{ConfirmToken: preview.ConfirmToken})
	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *SheetsServiceTestSuite) TestApplyImport_TokenBoundToProject() {
	ctx := context.Background()
	link := &domain.GoogleSheetLink{ID: 1, ProjectID: 1, SpreadsheetID: "sheet-1", SheetTabName: "Смета"}

	s.mockLinkRepo.On("FindLinkByProject", ctx, int64(1)).Return(link, nil)
	s.mockSyncer.On("ReadRows", ctx, "sheet-1", "Смета").Return([]sheets.Row{}, nil).Once()
	s.mockExpenseRepo.On("ListItemsByProject", ctx, int64(1)).Return([]domain.ExpenseItem{}, nil)

	preview, err := s.service.PreviewImport(ctx, 1)
	s.Require().NoError(err)

	_, err = s.service.ApplyImport(ctx, 99, dto.ImportApplyRequest{ConfirmToken: preview.ConfirmToken})
	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
}

func TestSheetsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SheetsServiceTestSuite))
}
