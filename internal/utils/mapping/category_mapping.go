package mapping

import (
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/models"
)

// ToModelCategory converts a domain Category; default categories are stored without owner.
func ToModelCategory(d domain.Category) models.Category {
	userID := &d.UserID
	if d.IsDefault {
		userID = nil
	}
	return models.Category{
		CategoryID:   d.CategoryID,
		UserID:       ToNullString(userID),
		Name:         d.Name,
		CategoryType: string(d.Type),
		Color:        d.Color,
		Icon:         d.Icon,
		IsDefault:    d.IsDefault,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID:  m.CategoryID,
		UserID:      m.UserID.String,
		Name:        m.Name,
		Type:        domain.CategoryType(m.CategoryType),
		Color:       m.Color,
		Icon:        m.Icon,
		IsDefault:   m.IsDefault,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainCategorySlice(ms []models.Category) []domain.Category {
	ds := make([]domain.Category, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCategory(m)
	}
	return ds
}
