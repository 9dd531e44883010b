package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/adapters/sheets"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
)

// --- Mock ProjectRepository ---
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) FindProjectByID(ctx context.Context, projectID int64) (*domain.Project, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectRepository) ListProjects(ctx context.Context, includeClosed bool) ([]domain.Project, error) {
	args := m.Called(ctx, includeClosed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *MockProjectRepository) SaveProjectWithGroups(ctx context.Context, project domain.Project, groups []domain.ExpenseGroup) (domain.Project, error) {
	args := m.Called(ctx, project, groups)
	return args.Get(0).(domain.Project), args.Error(1)
}

func (m *MockProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) CloseProject(ctx context.Context, projectID int64, closedAt time.Time) error {
	args := m.Called(ctx, projectID, closedAt)
	return args.Error(0)
}

func (m *MockProjectRepository) DeleteProject(ctx context.Context, projectID int64) error {
	args := m.Called(ctx, projectID)
	return args.Error(0)
}

// --- Mock ExpenseRepository ---
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindGroupByID(ctx context.Context, groupID int64) (*domain.ExpenseGroup, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseGroup), args.Error(1)
}

func (m *MockExpenseRepository) ListGroupsByProject(ctx context.Context, projectID int64) ([]domain.ExpenseGroup, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseGroup), args.Error(1)
}

func (m *MockExpenseRepository) SaveGroup(ctx context.Context, group domain.ExpenseGroup) (domain.ExpenseGroup, error) {
	args := m.Called(ctx, group)
	return args.Get(0).(domain.ExpenseGroup), args.Error(1)
}

func (m *MockExpenseRepository) UpdateGroup(ctx context.Context, group domain.ExpenseGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockExpenseRepository) DeleteGroup(ctx context.Context, groupID int64) error {
	args := m.Called(ctx, groupID)
	return args.Error(0)
}

func (m *MockExpenseRepository) FindItemByID(ctx context.Context, itemID int64) (*domain.ExpenseItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseItem), args.Error(1)
}

func (m *MockExpenseRepository) ListItemsByProject(ctx context.Context, projectID int64) ([]domain.ExpenseItem, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseItem), args.Error(1)
}

func (m *MockExpenseRepository) ListChildren(ctx context.Context, parentItemID int64) ([]domain.ExpenseItem, error) {
	args := m.Called(ctx, parentItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseItem), args.Error(1)
}

func (m *MockExpenseRepository) SaveItem(ctx context.Context, item domain.ExpenseItem) (domain.ExpenseItem, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(domain.ExpenseItem), args.Error(1)
}

func (m *MockExpenseRepository) UpdateItem(ctx context.Context, item domain.ExpenseItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockExpenseRepository) UpdateItems(ctx context.Context, items []domain.ExpenseItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockExpenseRepository) DeleteItemWithChildren(ctx context.Context, itemID int64) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *MockExpenseRepository) FindAdjustmentByItem(ctx context.Context, itemID int64) (*domain.BillingAdjustment, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BillingAdjustment), args.Error(1)
}

func (m *MockExpenseRepository) ListAdjustmentsByProject(ctx context.Context, projectID int64) ([]domain.BillingAdjustment, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BillingAdjustment), args.Error(1)
}

func (m *MockExpenseRepository) UpsertAdjustment(ctx context.Context, adjustment domain.BillingAdjustment) (domain.BillingAdjustment, error) {
	args := m.Called(ctx, adjustment)
	return args.Get(0).(domain.BillingAdjustment), args.Error(1)
}

func (m *MockExpenseRepository) DeleteAdjustment(ctx context.Context, itemID int64) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

// --- Mock PaymentRepository ---
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindPlanByID(ctx context.Context, planID int64) (*domain.PaymentPlan, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentPlan), args.Error(1)
}

func (m *MockPaymentRepository) ListPlansByProject(ctx context.Context, projectID int64) ([]domain.PaymentPlan, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentPlan), args.Error(1)
}

func (m *MockPaymentRepository) SavePlan(ctx context.Context, plan domain.PaymentPlan) (domain.PaymentPlan, error) {
	args := m.Called(ctx, plan)
	return args.Get(0).(domain.PaymentPlan), args.Error(1)
}

func (m *MockPaymentRepository) UpdatePlan(ctx context.Context, plan domain.PaymentPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPaymentRepository) DeletePlan(ctx context.Context, planID int64) error {
	args := m.Called(ctx, planID)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindFactByID(ctx context.Context, factID int64) (*domain.PaymentFact, error) {
	args := m.Called(ctx, factID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentFact), args.Error(1)
}

func (m *MockPaymentRepository) ListFactsByProject(ctx context.Context, projectID int64) ([]domain.PaymentFact, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentFact), args.Error(1)
}

func (m *MockPaymentRepository) SaveFact(ctx context.Context, fact domain.PaymentFact) (domain.PaymentFact, error) {
	args := m.Called(ctx, fact)
	return args.Get(0).(domain.PaymentFact), args.Error(1)
}

func (m *MockPaymentRepository) UpdateFact(ctx context.Context, fact domain.PaymentFact) error {
	args := m.Called(ctx, fact)
	return args.Error(0)
}

func (m *MockPaymentRepository) DeleteFact(ctx context.Context, factID int64) error {
	args := m.Called(ctx, factID)
	return args.Error(0)
}

// --- Mock SettingsRepository ---
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) FindSettings(ctx context.Context) (*domain.AppSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppSettings), args.Error(1)
}

func (m *MockSettingsRepository) SaveSettings(ctx context.Context, settings domain.AppSettings) (domain.AppSettings, error) {
	args := m.Called(ctx, settings)
	return args.Get(0).(domain.AppSettings), args.Error(1)
}

func (m *MockSettingsRepository) UpdateSettings(ctx context.Context, settings domain.AppSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

func (m *MockSettingsRepository) TouchLastBackup(ctx context.Context, at time.Time) error {
	args := m.Called(ctx, at)
	return args.Error(0)
}

// --- Mock SheetLinkRepository ---
type MockSheetLinkRepository struct {
	mock.Mock
}

func (m *MockSheetLinkRepository) FindLinkByProject(ctx context.Context, projectID int64) (*domain.GoogleSheetLink, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoogleSheetLink), args.Error(1)
}

func (m *MockSheetLinkRepository) UpsertLink(ctx context.Context, link domain.GoogleSheetLink) (domain.GoogleSheetLink, error) {
	args := m.Called(ctx, link)
	return args.Get(0).(domain.GoogleSheetLink), args.Error(1)
}

func (m *MockSheetLinkRepository) TouchPublished(ctx context.Context, projectID int64, at time.Time) error {
	args := m.Called(ctx, projectID, at)
	return args.Error(0)
}

func (m *MockSheetLinkRepository) TouchImported(ctx context.Context, projectID int64, at time.Time) error {
	args := m.Called(ctx, projectID, at)
	return args.Error(0)
}

func (m *MockSheetLinkRepository) DeleteLink(ctx context.Context, projectID int64) error {
	args := m.Called(ctx, projectID)
	return args.Error(0)
}

// --- Mock sheet Syncer ---
type MockSyncer struct {
	mock.Mock
}

func (m *MockSyncer) WriteRows(ctx context.Context, spreadsheetID, tabName string, rows []sheets.Row) error {
	args := m.Called(ctx, spreadsheetID, tabName, rows)
	return args.Error(0)
}

func (m *MockSyncer) ReadRows(ctx context.Context, spreadsheetID, tabName string) ([]sheets.Row, error) {
	args := m.Called(ctx, spreadsheetID, tabName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sheets.Row), args.Error(1)
}
