package installments

import (
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		n    int
		want time.Time
	}{
		{name: "same day next month", from: day(2024, 1, 15), n: 1, want: day(2024, 2, 15)},
		{name: "two months", from: day(2024, 1, 15), n: 2, want: day(2024, 3, 15)},
		{name: "zero", from: day(2024, 1, 15), n: 0, want: day(2024, 1, 15)},
		{name: "clamps to leap february", from: day(2024, 1, 31), n: 1, want: day(2024, 2, 29)},
		{name: "clamps to february", from: day(2023, 1, 31), n: 1, want: day(2023, 2, 28)},
		{name: "clamps to 30 day month", from: day(2024, 3, 31), n: 1, want: day(2024, 4, 30)},
		{name: "keeps day after short month", from: day(2024, 1, 31), n: 2, want: day(2024, 3, 31)},
		{name: "crosses year", from: day(2024, 11, 30), n: 3, want: day(2025, 2, 28)},
		{name: "long plan", from: day(2024, 1, 10), n: 47, want: day(2027, 12, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddMonths(tt.from, tt.n))
		})
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(1))
	assert.NoError(t, Validate(48))

	for _, n := range []int{0, -1, 49} {
		err := Validate(n)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrValidation))
		var vErr *apperrors.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "installments", vErr.Field)
	}
}

func TestPerInstallmentAmount(t *testing.T) {
	amount := decimal.NewFromInt(100)

	got, err := PerInstallmentAmount(amount, 3, AmountPerInstallment)
	require.NoError(t, err)
	assert.True(t, amount.Equal(got))

	got, err = PerInstallmentAmount(amount, 3, "")
	require.NoError(t, err)
	assert.True(t, amount.Equal(got))

	got, err = PerInstallmentAmount(amount, 3, AmountTotal)
	require.NoError(t, err)
	assert.Equal(t, "33.33", got.StringFixed(2))

	got, err = PerInstallmentAmount(decimal.NewFromInt(200), 3, AmountTotal)
	require.NoError(t, err)
	assert.Equal(t, "66.67", got.StringFixed(2))

	_, err = PerInstallmentAmount(amount, 3, "weird")
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestChildren_ThreeInstallments(t *testing.T) {
	acc := "acc-1"
	parent := Parent(domain.Transaction{
		TransactionID: "parent-1",
		Amount:        decimal.NewFromInt(100),
		Type:          domain.Expense,
		Date:          day(2024, 1, 15),
		Description:   "Laptop",
		AccountID:     &acc,
	}, 3)

	assert.Equal(t, 1, parent.CurrentInstallment)
	assert.Equal(t, 3, parent.Installments)
	assert.Nil(t, parent.ParentTransactionID)

	kids := Children(parent)
	require.Len(t, kids, 2)

	assert.Equal(t, 2, kids[0].CurrentInstallment)
	assert.Equal(t, day(2024, 2, 15), kids[0].Date)
	assert.Equal(t, "Laptop (2/3)", kids[0].Description)
	assert.Equal(t, 3, kids[1].CurrentInstallment)
	assert.Equal(t, day(2024, 3, 15), kids[1].Date)
	assert.Equal(t, "Laptop (3/3)", kids[1].Description)

	for _, k := range kids {
		require.NotNil(t, k.ParentTransactionID)
		assert.Equal(t, "parent-1", *k.ParentTransactionID)
		assert.Empty(t, k.TransactionID)
		assert.True(t, decimal.NewFromInt(100).Equal(k.Amount))
		assert.Equal(t, 3, k.Installments)
	}
	assert.Equal(t, "Laptop", parent.Description, "parent description is not modified")
}

func TestChildren_DatesStrictlyIncrease(t *testing.T) {
	parent := Parent(domain.Transaction{TransactionID: "p", Date: day(2024, 1, 31)}, 48)
	prev := parent.Date
	for _, k := range Children(parent) {
		assert.True(t, k.Date.After(prev), "%s should be after %s", k.Date, prev)
		prev = k.Date
	}
}

func TestChildren_SingleInstallment(t *testing.T) {
	assert.Empty(t, Children(domain.Transaction{Installments: 1}))
}

func TestFindIncomplete(t *testing.T) {
	complete := domain.Transaction{TransactionID: "p1", Installments: 2, CurrentInstallment: 1}
	broken := domain.Transaction{TransactionID: "p2", Installments: 4, CurrentInstallment: 1}
	single := domain.Transaction{TransactionID: "s", Installments: 1, CurrentInstallment: 1}

	p1 := "p1"
	p2 := "p2"
	txns := []domain.Transaction{
		complete, broken, single,
		{TransactionID: "c1", ParentTransactionID: &p1, Installments: 2, CurrentInstallment: 2},
		{TransactionID: "c2", ParentTransactionID: &p2, Installments: 4, CurrentInstallment: 2},
		{TransactionID: "c3", ParentTransactionID: &p2, Installments: 4, CurrentInstallment: 4},
	}

	got := FindIncomplete(txns)
	require.Len(t, got, 1)
	assert.Equal(t, "p2", got[0].Parent.TransactionID)
	assert.Equal(t, 2, got[0].ExistingChildren)
	assert.Equal(t, []int{3}, got[0].MissingInstallments)
}

func TestFindIncomplete_PendingBalance(t *testing.T) {
	pendingSingle := domain.Transaction{TransactionID: "s", Installments: 1, CurrentInstallment: 1, BalancePending: true}
	pendingGroup := domain.Transaction{TransactionID: "p", Installments: 2, CurrentInstallment: 1, BalancePending: true}
	settled := domain.Transaction{TransactionID: "ok", Installments: 1, CurrentInstallment: 1}

	p := "p"
	txns := []domain.Transaction{
		pendingSingle, pendingGroup, settled,
		{TransactionID: "c", ParentTransactionID: &p, Installments: 2, CurrentInstallment: 2},
	}

	got := FindIncomplete(txns)
	require.Len(t, got, 2)
	for _, item := range got {
		assert.True(t, item.BalancePending)
		assert.Empty(t, item.MissingInstallments)
	}
}
