package services

import (
	"github.com/muhapauka-rgb/CXEMA-V7/internal/adapters/sheets"
	portsrepo "github.com/muhapauka-rgb/CXEMA-V7/internal/core/ports/repositories"
	portssvc "github.com/muhapauka-rgb/CXEMA-V7/internal/core/ports/services"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, syncer sheets.Syncer) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Settings = NewSettingsService(repos.SettingsRepo)
	container.Project = NewProjectService(repos.ProjectRepo, repos.ExpenseRepo)
	container.Expense = NewExpenseService(repos.ExpenseRepo, repos.ProjectRepo)
	container.Payment = NewPaymentService(repos.PaymentRepo, repos.ProjectRepo)

	container.Overview = NewOverviewService(repos.ProjectRepo, repos.ExpenseRepo, repos.PaymentRepo, container.Settings)
	container.Life = NewLifeService(repos.ProjectRepo, repos.ExpenseRepo, repos.PaymentRepo)
	container.Discount = NewDiscountService(repos.ProjectRepo, repos.ExpenseRepo)
	container.Estimate = NewEstimateService(repos.ProjectRepo, repos.ExpenseRepo, repos.PaymentRepo)

	container.Backup = NewBackupService(cfg, repos.ProjectRepo, repos.ExpenseRepo, repos.PaymentRepo, repos.SettingsRepo)
	container.Sheets = NewSheetsService(repos.SheetLinkRepo, repos.ExpenseRepo, repos.ProjectRepo, container.Estimate, syncer)
	container.Auth = NewAuthService(cfg)

	return container
}

// Compile-time interface checks for the service implementations.
var (
	_ portssvc.ProjectSvcFacade = (*projectService)(nil)
	_ portssvc.ExpenseSvcFacade = (*expenseService)(nil)
	_ portssvc.PaymentSvcFacade = (*paymentService)(nil)
	_ portssvc.SettingsSvc      = (*settingsService)(nil)
	_ portssvc.SheetsSvc        = (*sheetsService)(nil)
)
