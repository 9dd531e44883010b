package services_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/apperrors"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/services"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/platform/config"
)

func backupFixture(t *testing.T) (*config.Config, *MockProjectRepository, *MockExpenseRepository, *MockPaymentRepository, *MockSettingsRepository) {
	t.Helper()
	cfg := &config.Config{
		BackupDir:          t.TempDir(),
		BackupPollInterval: time.Minute,
		BackupRetention:    2880 * time.Hour,
	}
	return cfg, new(MockProjectRepository), new(MockExpenseRepository), new(MockPaymentRepository), new(MockSettingsRepository)
}

func TestRunBackup_WritesFullDump(t *testing.T) {
	ctx := context.Background()
	cfg, projectRepo, expenseRepo, paymentRepo, settingsRepo := backupFixture(t)

	settingsRepo.On("FindSettings", ctx).Return(&domain.AppSettings{ID: 1, UsnMode: domain.UsnOperational, UsnRatePercent: dec("6"), BackupFrequency: domain.BackupWeekly}, nil).Once()
	projectRepo.On("ListProjects", ctx, true).Return([]domain.Project{{ID: 1, Title: "Ремонт"}}, nil).Once()
	expenseRepo.On("ListGroupsByProject", ctx, int64(1)).Return([]domain.ExpenseGroup{{ID: 10, ProjectID: 1, Name: "Стройка"}}, nil).Once()
	expenseRepo.On("ListItemsByProject", ctx, int64(1)).Return([]domain.ExpenseItem{}, nil).Once()
	expenseRepo.On("ListAdjustmentsByProject", ctx, int64(1)).Return([]domain.BillingAdjustment{}, nil).Once()
	paymentRepo.On("ListPlansByProject", ctx, int64(1)).Return([]domain.PaymentPlan{}, nil).Once()
	paymentRepo.On("ListFactsByProject", ctx, int64(1)).Return([]domain.PaymentFact{}, nil).Once()
	settingsRepo.On("TouchLastBackup", ctx, mock.AnythingOfType("time.Time")).Return(nil).Once()

	svc := services.NewBackupService(cfg, projectRepo, expenseRepo, paymentRepo, settingsRepo)
	resp, err := svc.RunBackup(ctx, true)

	require.NoError(t, err)
	assert.Equal(t, "manual", resp.Triggered)
	assert.Zero(t, resp.Pruned)

	data, err := os.ReadFile(filepath.Join(cfg.BackupDir, resp.File))
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.EqualValues(t, 1, doc["version"])
	assert.Len(t, doc["projects"], 1)
	settingsRepo.AssertExpectations(t)
}

func TestRunBackup_PrunesOldDumps(t *testing.T) {
	ctx := context.Background()
	cfg, projectRepo, expenseRepo, paymentRepo, settingsRepo := backupFixture(t)
	cfg.BackupRetention = 24 * time.Hour

	stale := filepath.Join(cfg.BackupDir, "cxema_backup_20200101_000000.json")
	require.NoError(t, os.WriteFile(stale, []byte("{}"), 0o644))

	settingsRepo.On("FindSettings", ctx).Return(nil, apperrors.ErrNotFound).Once()
	projectRepo.On("ListProjects", ctx, true).Return([]domain.Project{}, nil).Once()
	settingsRepo.On("TouchLastBackup", ctx, mock.AnythingOfType("time.Time")).Return(nil).Once()

	svc := services.NewBackupService(cfg, projectRepo, expenseRepo, paymentRepo, settingsRepo)
	resp, err := svc.RunBackup(ctx, false)

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Pruned)
	_, err = os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
}

func TestRunBackup_UnseededSettingsTolerated(t *testing.T) {
	ctx := context.Background()
	cfg, projectRepo, expenseRepo, paymentRepo, settingsRepo := backupFixture(t)

	settingsRepo.On("FindSettings", ctx).Return(nil, apperrors.ErrNotFound).Once()
	projectRepo.On("ListProjects", ctx, true).Return([]domain.Project{}, nil).Once()
	settingsRepo.On("TouchLastBackup", ctx, mock.AnythingOfType("time.Time")).Return(nil).Once()

	svc := services.NewBackupService(cfg, projectRepo, expenseRepo, paymentRepo, settingsRepo)
	resp, err := svc.RunBackup(ctx, true)

	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(cfg.BackupDir, resp.File))
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Nil(t, doc["settings"])
}

func TestRunBackup_SettingsLoadFailureAborts(t *testing.T) {
	ctx := context.Background()
	cfg, projectRepo, expenseRepo, paymentRepo, settingsRepo := backupFixture(t)

	settingsRepo.On("FindSettings", ctx).Return(nil, assert.AnError).Once()

	svc := services.NewBackupService(cfg, projectRepo, expenseRepo, paymentRepo, settingsRepo)
	resp, err := svc.RunBackup(ctx, true)

	require.Error(t, err)
	assert.Nil(t, resp)
	// Nothing may be dumped off a failing settings read.
	entries, readErr := os.ReadDir(cfg.BackupDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
	projectRepo.AssertNotCalled(t, "ListProjects")
}

func TestRunIfDue_FrequencyOff(t *testing.T) {
	ctx := context.Background()
	cfg, projectRepo, expenseRepo, paymentRepo, settingsRepo := backupFixture(t)

	settingsRepo.On("FindSettings", ctx).Return(&domain.AppSettings{ID: 1, BackupFrequency: domain.BackupOff}, nil).Once()

	svc := services.NewBackupService(cfg, projectRepo, expenseRepo, paymentRepo, settingsRepo)
	ran, err := svc.RunIfDue(ctx)

	require.NoError(t, err)
	assert.False(t, ran)
	projectRepo.AssertNotCalled(t, "ListProjects")
}

func TestRunIfDue_NeverRanBefore(t *testing.T) {
	ctx := context.Background()
	cfg, projectRepo, expenseRepo, paymentRepo, settingsRepo := backupFixture(t)

	settings := &domain.AppSettings{ID: 1, UsnMode: domain.UsnOff, UsnRatePercent: dec("0"), BackupFrequency: domain.BackupDaily}
	settingsRepo.On("FindSettings", ctx).Return(settings, nil)
	projectRepo.On("ListProjects", ctx, true).Return([]domain.Project{}, nil).Once()
	settingsRepo.On("TouchLastBackup", ctx, mock.AnythingOfType("time.Time")).Return(nil).Once()

	svc := services.NewBackupService(cfg, projectRepo, expenseRepo, paymentRepo, settingsRepo)
	ran, err := svc.RunIfDue(ctx)

	require.NoError(t, err)
	assert.True(t, ran)
	projectRepo.AssertExpectations(t)
}

func TestRunIfDue_RecentBackupSkips(t *testing.T) {
	ctx := context.Background()
	cfg, projectRepo, expenseRepo, paymentRepo, settingsRepo := backupFixture(t)

	last := time.Now().Add(-time.Hour)
	settings := &domain.AppSettings{ID: 1, BackupFrequency: domain.BackupDaily, LastBackupAt: &last}
	settingsRepo.On("FindSettings", ctx).Return(settings, nil).Once()

	svc := services.NewBackupService(cfg, projectRepo, expenseRepo, paymentRepo, settingsRepo)
	ran, err := svc.RunIfDue(ctx)

	require.NoError(t, err)
	assert.False(t, ran)
	projectRepo.AssertNotCalled(t, "ListProjects")
}
