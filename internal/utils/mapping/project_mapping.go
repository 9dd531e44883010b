package mapping

import (
	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/models"
)

// ToModelProject converts a domain Project to a model Project
func ToModelProject(d domain.Project) models.Project {
	return models.Project{
		ID:                         d.ID,
		Title:                      d.Title,
		ClientName:                 d.ClientName,
		ClientEmail:                d.ClientEmail,
		ClientPhone:                d.ClientPhone,
		GoogleDriveURL:             d.GoogleDriveURL,
		GoogleDriveFolder:          d.GoogleDriveFolder,
		ProjectPriceTotal:          d.ProjectPriceTotal,
		ExpectedFromClientTotal:    d.ExpectedFromClientTotal,
		AgencyFeePercent:           d.AgencyFeePercent,
		AgencyFeeIncludeInEstimate: d.AgencyFeeIncludeInEstimate,
		CreatedAt:                  d.CreatedAt,
		UpdatedAt:                  d.UpdatedAt,
		ClosedAt:                   d.ClosedAt,
	}
}

// ToDomainProject converts a model Project to a domain Project
func ToDomainProject(m models.Project) domain.Project {
	return domain.Project{
		ID:                         m.ID,
		Title:                      m.Title,
		ClientName:                 m.ClientName,
		ClientEmail:                m.ClientEmail,
		ClientPhone:                m.ClientPhone,
		GoogleDriveURL:             m.GoogleDriveURL,
		GoogleDriveFolder:          m.GoogleDriveFolder,
		ProjectPriceTotal:          m.ProjectPriceTotal,
		ExpectedFromClientTotal:    m.ExpectedFromClientTotal,
		AgencyFeePercent:           m.AgencyFeePercent,
		AgencyFeeIncludeInEstimate: m.AgencyFeeIncludeInEstimate,
		CreatedAt:                  m.CreatedAt,
		UpdatedAt:                  m.UpdatedAt,
		ClosedAt:                   m.ClosedAt,
	}
}

// ToDomainProjectSlice converts a slice of model Projects to domain Projects
func ToDomainProjectSlice(ms []models.Project) []domain.Project {
	ds := make([]domain.Project, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProject(m)
	}
	return ds
}
