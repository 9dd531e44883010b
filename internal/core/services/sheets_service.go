package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/adapters/sheets"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/apperrors"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
	portsrepo "github.com/muhapauka-rgb/CXEMA-V7/internal/core/ports/repositories"
	portssvc "github.com/muhapauka-rgb/CXEMA-V7/internal/core/ports/services"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/dto"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/utils/ttlcache"
)

// pendingImport is one previewed diff waiting for confirmation.
type pendingImport struct {
	ProjectID int64
	Changes   []dto.SheetRowChange
}

// sheetsService publishes estimates to a linked spreadsheet tab and imports
// edits back through a preview/confirm handshake. A preview hands out a
// one-time token; applying consumes it.
type sheetsService struct {
	BaseService
	sheetLinkRepo portsrepo.SheetLinkRepositoryFacade
	expenseRepo   portsrepo.ExpenseRepositoryFacade
	projectRepo   portsrepo.ProjectReader
	estimateSvc   portssvc.EstimateSvc
	syncer        sheets.Syncer
	previews      *ttlcache.Cache[pendingImport]
}

// NewSheetsService creates a new sheet sync service.
func NewSheetsService(
	sheetLinkRepo portsrepo.SheetLinkRepositoryFacade,
	expenseRepo portsrepo.ExpenseRepositoryFacade,
	projectRepo portsrepo.ProjectReader,
	estimateSvc portssvc.EstimateSvc,
	syncer sheets.Syncer,
) portssvc.SheetsSvc {
	return &sheetsService{
		sheetLinkRepo: sheetLinkRepo,
		expenseRepo:   expenseRepo,
		projectRepo:   projectRepo,
		estimateSvc:   estimateSvc,
		syncer:        syncer,
		previews:      ttlcache.New[pendingImport](10 * time.Minute),
	}
}

var _ portssvc.SheetsSvc = (*sheetsService)(nil)

func (s *sheetsService) GetStatus(ctx context.Context, projectID int64) (*dto.SheetStatusResponse, error) {
	if _, err := s.projectRepo.FindProjectByID(ctx, projectID); err != nil {
		return nil, fmt.Errorf("failed to get project %d: %w", projectID, err)
	}
	link, err := s.findLink(ctx, projectID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToSheetStatusResponse(link)
	return &resp, nil
}

func (s *sheetsService) LinkSheet(ctx context.Context, projectID int64, req dto.LinkSheetRequest) (*dto.SheetStatusResponse, error) {
	if _, err := s.projectRepo.FindProjectByID(ctx, projectID); err != nil {
		return nil, fmt.Errorf("failed to get project %d: %w", projectID, err)
	}
	link := domain.GoogleSheetLink{
		ProjectID:     projectID,
		SpreadsheetID: req.SpreadsheetID,
		SheetTabName:  req.SheetTabName,
	}
	saved, err := s.sheetLinkRepo.UpsertLink(ctx, link)
	if err != nil {
		return nil, fmt.Errorf("failed to link sheet for project %d: %w", projectID, err)
	}
	resp := dto.ToSheetStatusResponse(&saved)
	return &resp, nil
}

func (s *sheetsService) Publish(ctx context.Context, projectID int64) (*dto.PublishSheetResponse, error) {
	link, err := s.requireLink(ctx, projectID)
	if err != nil {
		return nil, err
	}

	estimate, err := s.estimateSvc.GetEstimate(ctx, projectID)
	if err != nil {
		return nil, err
	}
	rows := make([]sheets.Row, 0, len(estimate.Rows))
	for _, er := range estimate.Rows {
		row := sheets.Row{
			StableItemID: er.StableItemID,
			GroupName:    er.GroupName,
			Title:        er.Title,
			Amount:       er.RowTotal,
		}
		if er.Qty != nil {
			row.Qty = er.Qty.String()
		}
		if er.UnitPrice != nil {
			row.UnitPrice = er.UnitPrice.String()
		}
		rows = append(rows, row)
	}

	if err := s.syncer.WriteRows(ctx, link.SpreadsheetID, link.SheetTabName, rows); err != nil {
		return nil, fmt.Errorf("failed to publish estimate for project %d: %w", projectID, err)
	}

	publishedAt := time.Now()
	if err := s.sheetLinkRepo.TouchPublished(ctx, projectID, publishedAt); err != nil {
		s.LogError(ctx, err, "failed to record publication time", slog.Int64("project_id", projectID))
	}
	s.LogInfo(ctx, "estimate published", slog.Int64("project_id", projectID), slog.Int("rows", len(rows)))
	return &dto.PublishSheetResponse{RowsWritten: len(rows), PublishedAt: publishedAt}, nil
}

func (s *sheetsService) PreviewImport(ctx context.Context, projectID int64) (*dto.ImportPreviewResponse, error) {
	link, err := s.requireLink(ctx, projectID)
	if err != nil {
		return nil, err
	}

	sheetRows, err := s.syncer.ReadRows(ctx, link.SpreadsheetID, link.SheetTabName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet for project %d: %w", projectID, err)
	}
	items, err := s.expenseRepo.ListItemsByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items for project %d: %w", projectID, err)
	}
	byStableID := make(map[string]domain.ExpenseItem, len(items))
	for _, it := range items {
		byStableID[it.StableItemID] = it
	}

	changes := []dto.SheetRowChange{}
	for _, row := range sheetRows {
		item, ok := byStableID[row.StableItemID]
		if !ok {
			// Rows added by hand on the sheet have no stored counterpart
			// and are ignored; items are only born through the app.
			continue
		}
		if row.Title != "" && row.Title != item.Title {
			changes = append(changes, dto.SheetRowChange{
				StableItemID: row.StableItemID,
				Field:        "title",
				OldValue:     item.Title,
				NewValue:     row.Title,
			})
		}
		stored := item.BaseAmount().Add(item.ExtraAmount())
		if !row.Amount.Equal(stored) {
			amount := row.Amount
			changes = append(changes, dto.SheetRowChange{
				StableItemID: row.StableItemID,
				Field:        "amount",
				OldValue:     stored.String(),
				NewValue:     amount.String(),
				NewAmount:    &amount,
			})
		}
	}

	token := uuid.NewString()
	s.previews.Put(token, pendingImport{ProjectID: projectID, Changes: changes})
	return &dto.ImportPreviewResponse{
		ConfirmToken: token,
		ExpiresAt:    time.Now().Add(s.previews.TTL()),
		Changes:      changes,
	}, nil
}

func (s *sheetsService) ApplyImport(ctx context.Context, projectID int64, req dto.ImportApplyRequest) (*dto.ImportApplyResponse, error) {
	pending, ok := s.previews.Take(req.ConfirmToken)
	if !ok || pending.ProjectID != projectID {
		return nil, fmt.Errorf("confirm token is unknown or expired: %w", apperrors.ErrConflict)
	}

	items, err := s.expenseRepo.ListItemsByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items for project %d: %w", projectID, err)
	}
	byStableID := make(map[string]domain.ExpenseItem, len(items))
	for _, it := range items {
		byStableID[it.StableItemID] = it
	}

	applied := 0
	updates := make([]domain.ExpenseItem, 0, len(pending.Changes))
	updateIdx := make(map[string]int, len(pending.Changes))
	for _, change := range pending.Changes {
		item, ok := byStableID[change.StableItemID]
		if !ok {
			continue
		}
		switch change.Field {
		case "title":
			item.Title = change.NewValue
		case "amount":
			if change.NewAmount == nil {
				continue
			}
			applyAmount(&item, *change.NewAmount)
		default:
			continue
		}
		item.UpdatedAt = time.Now()
		byStableID[change.StableItemID] = item
		if pos, seen := updateIdx[change.StableItemID]; seen {
			updates[pos] = item
		} else {
			updateIdx[change.StableItemID] = len(updates)
			updates = append(updates, item)
		}
		applied++
	}

	// The whole confirmed diff lands in one transaction; a failure leaves
	// the stored estimate untouched.
	if err := s.expenseRepo.UpdateItems(ctx, updates); err != nil {
		return nil, fmt.Errorf("failed to apply sheet changes for project %d: %w", projectID, err)
	}

	importedAt := time.Now()
	if err := s.sheetLinkRepo.TouchImported(ctx, projectID, importedAt); err != nil {
		s.LogError(ctx, err, "failed to record import time", slog.Int64("project_id", projectID))
	}
	s.LogInfo(ctx, "sheet import applied", slog.Int64("project_id", projectID), slog.Int("applied", applied))
	return &dto.ImportApplyResponse{Applied: applied, ImportedAt: importedAt}, nil
}

// applyAmount writes a new sheet amount back onto the item respecting its
// mode. The sheet carries base plus extra, so the extra share is peeled off
// before the base fields change.
func applyAmount(item *domain.ExpenseItem, amount decimal.Decimal) {
	base := amount.Sub(item.ExtraAmount())
	if item.Mode == domain.QtyPrice && item.Qty != nil {
		if item.Qty.IsZero() {
			item.UnitPriceBase = &base
		} else {
			unit := base.Div(*item.Qty)
			item.UnitPriceBase = &unit
		}
		item.BaseTotal = item.BaseAmount()
		return
	}
	item.BaseTotal = base
}

func (s *sheetsService) findLink(ctx context.Context, projectID int64) (*domain.GoogleSheetLink, error) {
	link, err := s.sheetLinkRepo.FindLinkByProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get sheet link for project %d: %w", projectID, err)
	}
	return link, nil
}

func (s *sheetsService) requireLink(ctx context.Context, projectID int64) (*domain.GoogleSheetLink, error) {
	link, err := s.findLink(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, fmt.Errorf("project %d is not linked to a sheet: %w", projectID, apperrors.ErrConflict)
	}
	return link, nil
}
