package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/apperrors"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
	portsrepo "github.com/muhapauka-rgb/CXEMA-V7/internal/core/ports/repositories"
	portssvc "github.com/muhapauka-rgb/CXEMA-V7/internal/core/ports/services"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/dto"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/platform/config"
)

const backupFilePrefix = "cxema_backup_"

// backupProject is one project's full subtree in a dump file.
type backupProject struct {
	Project     domain.Project             `json:"project"`
	Groups      []domain.ExpenseGroup      `json:"groups"`
	Items       []domain.ExpenseItem       `json:"items"`
	Adjustments []domain.BillingAdjustment `json:"adjustments"`
	Plans       []domain.PaymentPlan       `json:"plans"`
	Facts       []domain.PaymentFact       `json:"facts"`
}

// backupDocument is the top-level shape of a dump file.
type backupDocument struct {
	Version   int                 `json:"version"`
	CreatedAt time.Time           `json:"createdAt"`
	Settings  *domain.AppSettings `json:"settings"`
	Projects  []backupProject     `json:"projects"`
}

// backupService dumps the full data set to timestamped JSON files and
// prunes dumps older than the retention window.
type backupService struct {
	BaseService
	cfg          *config.Config
	projectRepo  portsrepo.ProjectReader
	expenseRepo  portsrepo.ExpenseRepositoryFacade
	paymentRepo  portsrepo.PaymentRepositoryFacade
	settingsRepo portsrepo.SettingsRepositoryFacade

	now func() time.Time
}

// NewBackupService creates a new backup service.
func NewBackupService(
	cfg *config.Config,
	projectRepo portsrepo.ProjectReader,
	expenseRepo portsrepo.ExpenseRepositoryFacade,
	paymentRepo portsrepo.PaymentRepositoryFacade,
	settingsRepo portsrepo.SettingsRepositoryFacade,
) portssvc.BackupSvc {
	return &backupService{
		cfg:          cfg,
		projectRepo:  projectRepo,
		expenseRepo:  expenseRepo,
		paymentRepo:  paymentRepo,
		settingsRepo: settingsRepo,
		now:          time.Now,
	}
}

var _ portssvc.BackupSvc = (*backupService)(nil)

func (s *backupService) RunBackup(ctx context.Context, manual bool) (*dto.BackupRunResponse, error) {
	ranAt := s.now()

	doc, err := s.collect(ctx, ranAt)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}

	if err := os.MkdirAll(s.cfg.BackupDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup dir: %w", err)
	}
	name := backupFilePrefix + ranAt.Format("20060102_150405") + ".json"
	path := filepath.Join(s.cfg.BackupDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write backup file: %w", err)
	}

	pruned, err := s.prune(ranAt)
	if err != nil {
		// The dump itself succeeded; report the prune failure and move on.
		s.LogError(ctx, err, "failed to prune old backups")
	}

	if err := s.settingsRepo.TouchLastBackup(ctx, ranAt); err != nil {
		s.LogError(ctx, err, "failed to record backup time")
	}

	trigger := "scheduled"
	if manual {
		trigger = "manual"
	}
	s.LogInfo(ctx, "backup completed",
		slog.String("file", name), slog.Int("pruned", pruned), slog.String("trigger", trigger))
	return &dto.BackupRunResponse{File: name, RanAt: ranAt, Pruned: pruned, Triggered: trigger}, nil
}

func (s *backupService) RunIfDue(ctx context.Context) (bool, error) {
	settings, err := s.settingsRepo.FindSettings(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to load settings: %w", err)
	}
	if !settings.BackupFrequency.NextDue(s.now(), settings.LastBackupAt) {
		return false, nil
	}
	if _, err := s.RunBackup(ctx, false); err != nil {
		return false, err
	}
	return true, nil
}

func (s *backupService) StartScheduler(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.BackupPollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.RunIfDue(ctx); err != nil {
				s.LogError(ctx, err, "scheduled backup failed")
			}
		}
	}
}

func (s *backupService) collect(ctx context.Context, at time.Time) (*backupDocument, error) {
	settings, err := s.settingsRepo.FindSettings(ctx)
	if err != nil {
		// Only a still-unseeded settings row may be skipped; a failing read
		// would otherwise produce a dump silently missing the settings.
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to load settings: %w", err)
		}
		settings = nil
	}
	projects, err := s.projectRepo.ListProjects(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	doc := &backupDocument{Version: 1, CreatedAt: at, Settings: settings, Projects: make([]backupProject, 0, len(projects))}
	for _, project := range projects {
		groups, err := s.expenseRepo.ListGroupsByProject(ctx, project.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list groups for project %d: %w", project.ID, err)
		}
		items, err := s.expenseRepo.ListItemsByProject(ctx, project.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list items for project %d: %w", project.ID, err)
		}
		adjustments, err := s.expenseRepo.ListAdjustmentsByProject(ctx, project.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list adjustments for project %d: %w", project.ID, err)
		}
		plans, err := s.paymentRepo.ListPlansByProject(ctx, project.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list plans for project %d: %w", project.ID, err)
		}
		facts, err := s.paymentRepo.ListFactsByProject(ctx, project.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list facts for project %d: %w", project.ID, err)
		}
		doc.Projects = append(doc.Projects, backupProject{
			Project:     project,
			Groups:      groups,
			Items:       items,
			Adjustments: adjustments,
			Plans:       plans,
			Facts:       facts,
		})
	}
	return doc, nil
}

// prune removes dump files older than the retention window and returns how
// many were deleted.
func (s *backupService) prune(now time.Time) (int, error) {
	entries, err := os.ReadDir(s.cfg.BackupDir)
	if err != nil {
		return 0, fmt.Errorf("failed to read backup dir: %w", err)
	}
	cutoff := now.Add(-s.cfg.BackupRetention)
	pruned := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, backupFilePrefix) || !strings.HasSuffix(name, ".json") {
			continue
		}
		stamp := strings.TrimSuffix(strings.TrimPrefix(name, backupFilePrefix), ".json")
		createdAt, err := time.Parse("20060102_150405", stamp)
		if err != nil {
			continue
		}
		if createdAt.Before(cutoff) {
			if err := os.Remove(filepath.Join(s.cfg.BackupDir, name)); err != nil {
				return pruned, fmt.Errorf("failed to remove %s: %w", name, err)
			}
			pruned++
		}
	}
	return pruned, nil
}
