package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
)

// CreateProjectRequest defines the data needed to create a new project.
type CreateProjectRequest struct {
	Title                      string           `json:"title" binding:"required"`
	ClientName                 *string          `json:"clientName"`
	ClientEmail                *string          `json:"clientEmail" binding:"omitempty,email"`
	ClientPhone                *string          `json:"clientPhone"`
	GoogleDriveURL             *string          `json:"googleDriveURL" binding:"omitempty,url"`
	ProjectPriceTotal          *decimal.Decimal `json:"projectPriceTotal" binding:"omitempty,gte=0"`
	ExpectedFromClientTotal    *decimal.Decimal `json:"expectedFromClientTotal" binding:"omitempty,gte=0"`
	AgencyFeePercent           *decimal.Decimal `json:"agencyFeePercent" binding:"omitempty,gte=0,lte=100"`
	AgencyFeeIncludeInEstimate bool             `json:"agencyFeeIncludeInEstimate"`
}

// UpdateProjectRequest defines the partial update payload for a project.
// Nil fields keep their stored values.
type UpdateProjectRequest struct {
	Title                      *string          `json:"title"`
	ClientName                 *string          `json:"clientName"`
	ClientEmail                *string          `json:"clientEmail" binding:"omitempty,email"`
	ClientPhone                *string          `json:"clientPhone"`
	GoogleDriveURL             *string          `json:"googleDriveURL" binding:"omitempty,url"`
	ProjectPriceTotal          *decimal.Decimal `json:"projectPriceTotal" binding:"omitempty,gte=0"`
	ExpectedFromClientTotal    *decimal.Decimal `json:"expectedFromClientTotal" binding:"omitempty,gte=0"`
	AgencyFeePercent           *decimal.Decimal `json:"agencyFeePercent" binding:"omitempty,gte=0,lte=100"`
	AgencyFeeIncludeInEstimate *bool            `json:"agencyFeeIncludeInEstimate"`
}

// CloseProjectRequest defines the payload for closing a project.
type CloseProjectRequest struct {
	ClosedAt string `json:"closedAt" binding:"omitempty,datetime=2006-01-02"`
}

// ProjectResponse defines the data returned for a project.
type ProjectResponse struct {
	ID                         int64           `json:"id"`
	Title                      string          `json:"title"`
	ClientName                 *string         `json:"clientName"`
	ClientEmail                *string         `json:"clientEmail"`
	ClientPhone                *string         `json:"clientPhone"`
	GoogleDriveURL             *string         `json:"googleDriveURL"`
	ProjectPriceTotal          decimal.Decimal `json:"projectPriceTotal"`
	ExpectedFromClientTotal    decimal.Decimal `json:"expectedFromClientTotal"`
	AgencyFeePercent           decimal.Decimal `json:"agencyFeePercent"`
	AgencyFeeIncludeInEstimate bool            `json:"agencyFeeIncludeInEstimate"`
	CreatedAt                  time.Time       `json:"createdAt"`
	ClosedAt                   *string         `json:"closedAt"`
}

// ProjectFinancialsResponse defines the computed lifetime totals of a project.
type ProjectFinancialsResponse struct {
	ExpensesTotal    decimal.Decimal `json:"expensesTotal"`
	AgencyFee        decimal.Decimal `json:"agencyFee"`
	ExtraProfitTotal decimal.Decimal `json:"extraProfitTotal"`
	DiscountTotal    decimal.Decimal `json:"discountTotal"`
	InPocket         decimal.Decimal `json:"inPocket"`
	Diff             decimal.Decimal `json:"diff"`
}

// ProjectDetailResponse combines a project with its computed financials.
type ProjectDetailResponse struct {
	ProjectResponse
	Financials ProjectFinancialsResponse `json:"financials"`
}

// ToProjectResponse converts a domain.Project to ProjectResponse DTO
func ToProjectResponse(p *domain.Project) ProjectResponse {
	resp := ProjectResponse{
		ID:                         p.ID,
		Title:                      p.Title,
		ClientName:                 p.ClientName,
		ClientEmail:                p.ClientEmail,
		ClientPhone:                p.ClientPhone,
		GoogleDriveURL:             p.GoogleDriveURL,
		ProjectPriceTotal:          p.ProjectPriceTotal.Round(2),
		ExpectedFromClientTotal:    p.ExpectedFromClientTotal.Round(2),
		AgencyFeePercent:           p.AgencyFeePercent,
		AgencyFeeIncludeInEstimate: p.AgencyFeeIncludeInEstimate,
		CreatedAt:                  p.CreatedAt,
	}
	if p.ClosedAt != nil {
		closed := p.ClosedAt.Format("2006-01-02")
		resp.ClosedAt = &closed
	}
	return resp
}

// ToListProjectResponse converts a slice of domain.Project to a slice of ProjectResponse DTOs
func ToListProjectResponse(projects []domain.Project) []ProjectResponse {
	res := make([]ProjectResponse, len(projects))
	for i := range projects {
		res[i] = ToProjectResponse(&projects[i])
	}
	return res
}

// ToProjectFinancialsResponse converts domain.ProjectFinancials to its DTO
func ToProjectFinancialsResponse(f domain.ProjectFinancials) ProjectFinancialsResponse {
	return ProjectFinancialsResponse{
		ExpensesTotal:    f.ExpensesTotal.Round(2),
		AgencyFee:        f.AgencyFee.Round(2),
		ExtraProfitTotal: f.ExtraProfitTotal.Round(2),
		DiscountTotal:    f.DiscountTotal.Round(2),
		InPocket:         f.InPocket.Round(2),
		Diff:             f.Diff.Round(2),
	}
}

// ToProjectDetailResponse combines a project and its financials into one DTO
func ToProjectDetailResponse(p *domain.Project, f domain.ProjectFinancials) ProjectDetailResponse {
	return ProjectDetailResponse{
		ProjectResponse: ToProjectResponse(p),
		Financials:      ToProjectFinancialsResponse(f),
	}
}
