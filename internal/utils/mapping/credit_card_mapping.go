package mapping

import (
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/models"
)

func ToModelCreditCard(d domain.CreditCard) models.CreditCard {
	return models.CreditCard{
		CreditCardID: d.CreditCardID,
		UserID:       d.UserID,
		Name:         d.Name,
		CreditLimit:  d.CreditLimit,
		DueDay:       d.DueDay,
		CloseDay:     d.CloseDay,
		Color:        d.Color,
		Icon:         d.Icon,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainCreditCard(m models.CreditCard) domain.CreditCard {
	return domain.CreditCard{
		CreditCardID: m.CreditCardID,
		UserID:       m.UserID,
		Name:         m.Name,
		CreditLimit:  m.CreditLimit,
		DueDay:       m.DueDay,
		CloseDay:     m.CloseDay,
		Color:        m.Color,
		Icon:         m.Icon,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainCreditCardSlice(ms []models.CreditCard) []domain.CreditCard {
	ds := make([]domain.CreditCard, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCreditCard(m)
	}
	return ds
}
