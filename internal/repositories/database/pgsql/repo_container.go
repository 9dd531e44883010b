package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/muhapauka-rgb/CXEMA-V7/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	projectRepo := newPgxProjectRepository(dbPool)
	expenseRepo := newPgxExpenseRepository(dbPool)
	paymentRepo := newPgxPaymentRepository(dbPool)
	settingsRepo := newPgxSettingsRepository(dbPool)
	sheetLinkRepo := newPgxSheetLinkRepository(dbPool)

	return portsrepo.RepositoryProvider{
		ProjectRepo:   projectRepo,
		ExpenseRepo:   expenseRepo,
		PaymentRepo:   paymentRepo,
		SettingsRepo:  settingsRepo,
		SheetLinkRepo: sheetLinkRepo,
	}
}
