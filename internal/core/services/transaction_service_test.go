package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/core/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const (
	testUserID     = "user-1"
	testAccountID  = "acc-1"
	testCardID     = "card-1"
	testCategoryID = "cat-general"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func strPtr(s string) *string { return &s }

type TransactionServiceTestSuite struct {
	suite.Suite
	ctx         context.Context
	store       *memStore
	sink        *recordingSink
	invalidator *countingInvalidator
	service     portssvc.TransactionSvcFacade
	now         time.Time
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = newMemStore()
	suite.sink = &recordingSink{}
	suite.invalidator = &countingInvalidator{}
	suite.now = time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)

	suite.store.accounts[testAccountID] = domain.Account{AccountID: testAccountID, UserID: testUserID, Name: "Checking", Balance: dec("100")}
	suite.store.cards[testCardID] = domain.CreditCard{CreditCardID: testCardID, UserID: testUserID, Name: "Visa", DueDay: 10, CloseDay: 3}
	suite.store.categories[testCategoryID] = domain.Category{CategoryID: testCategoryID, Name: "General", Type: domain.CategoryTypeBoth, IsDefault: true}
	suite.store.categories["cat-salary"] = domain.Category{CategoryID: "cat-salary", UserID: testUserID, Name: "Salary", Type: domain.CategoryTypeIncome}

	opts := []services.ServiceOption{
		services.WithErrorSink(suite.sink),
		services.WithStateInvalidator(suite.invalidator),
		services.WithClock(func() time.Time { return suite.now }),
	}
	reconciler := services.NewBalanceReconciler(suite.store, opts...)
	suite.service = services.NewTransactionService(suite.store, suite.store, suite.store, suite.store, reconciler, opts...)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}

func (suite *TransactionServiceTestSuite) request(typ domain.TransactionType, amount string) dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		Amount:      dto.NewAmount(dec(amount)),
		Type:        typ,
		CategoryID:  testCategoryID,
		Date:        "2024-01-15",
		Description: "Entry",
		AccountID:   strPtr(testAccountID),
	}
}

func (suite *TransactionServiceTestSuite) create(req dto.CreateTransactionRequest) domain.Transaction {
	created, err := suite.service.CreateTransaction(suite.ctx, testUserID, req)
	suite.Require().NoError(err)
	suite.Require().NotEmpty(created)
	return created[0]
}

func (suite *TransactionServiceTestSuite) assertBalance(want string) {
	suite.True(dec(want).Equal(suite.store.balance(testAccountID)),
		"balance: want %s, got %s", want, suite.store.balance(testAccountID))
}

func (suite *TransactionServiceTestSuite) TestBalanceFollowsCreateDeleteAndEdit() {
	income := suite.create(suite.request(domain.Income, "50"))
	suite.assertBalance("150")

	expense := suite.create(suite.request(domain.Expense, "30"))
	suite.assertBalance("120")

	suite.Require().NoError(suite.service.DeleteTransaction(suite.ctx, testUserID, income.TransactionID))
	suite.assertBalance("70")

	_, err := suite.service.UpdateTransaction(suite.ctx, testUserID, expense.TransactionID, dto.UpdateTransactionRequest{
		Amount:      dto.NewAmount(dec("45")),
		Type:        domain.Expense,
		CategoryID:  testCategoryID,
		Date:        "2024-01-15",
		Description: "Entry",
		AccountID:   strPtr(testAccountID),
	})
	suite.Require().NoError(err)
	suite.assertBalance("55")

	suite.Empty(suite.sink.all())
	suite.Equal(4, suite.invalidator.get(testUserID))
}

func (suite *TransactionServiceTestSuite) TestInstallmentsExpandMonthlyAndOnlyParentMovesBalance() {
	req := suite.request(domain.Expense, "100")
	req.Description = "Laptop"
	req.Installments = 3

	created, err := suite.service.CreateTransaction(suite.ctx, testUserID, req)
	suite.Require().NoError(err)
	suite.Require().Len(created, 3)

	wantDates := []string{"2024-01-15", "2024-02-15", "2024-03-15"}
	wantDescriptions := []string{"Laptop", "Laptop (2/3)", "Laptop (3/3)"}
	parentID := created[0].TransactionID
	for i, txn := range created {
		suite.Equal(wantDates[i], txn.Date.Format(domain.DateLayout))
		suite.Equal(wantDescriptions[i], txn.Description)
		suite.Equal(3, txn.Installments)
		suite.Equal(i+1, txn.CurrentInstallment)
		suite.True(dec("100").Equal(txn.Amount))
		if i == 0 {
			suite.Nil(txn.ParentTransactionID)
		} else {
			suite.Require().NotNil(txn.ParentTransactionID)
			suite.Equal(parentID, *txn.ParentTransactionID)
		}
	}

	suite.assertBalance("0")
	suite.Len(suite.store.adjustments, 1)
}

func (suite *TransactionServiceTestSuite) TestInstallmentsTotalModeSplitsAmount() {
	req := suite.request(domain.Expense, "100")
	req.Installments = 3
	req.AmountMode = "total"

	created, err := suite.service.CreateTransaction(suite.ctx, testUserID, req)
	suite.Require().NoError(err)
	for _, txn := range created {
		suite.True(dec("33.33").Equal(txn.Amount), "got %s", txn.Amount)
	}
	suite.assertBalance("66.67")
}

func (suite *TransactionServiceTestSuite) TestInstallmentCountOutOfRange() {
	for _, n := range []int{-1, 49} {
		req := suite.request(domain.Expense, "10")
		req.Installments = n
		_, err := suite.service.CreateTransaction(suite.ctx, testUserID, req)
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
	suite.Equal(0, suite.store.transactionCount())
	suite.assertBalance("100")
}

func (suite *TransactionServiceTestSuite) TestCreateValidationHasNoSideEffects() {
	cases := map[string]func(*dto.CreateTransactionRequest){
		"zero amount":      func(r *dto.CreateTransactionRequest) { r.Amount = dto.NewAmount(decimal.Zero) },
		"negative amount":  func(r *dto.CreateTransactionRequest) { r.Amount = dto.NewAmount(dec("-5")) },
		"bad date":         func(r *dto.CreateTransactionRequest) { r.Date = "15/01/2024" },
		"blank desc":       func(r *dto.CreateTransactionRequest) { r.Description = "  " },
		"category type":    func(r *dto.CreateTransactionRequest) { r.CategoryID = "cat-salary" },
		"unknown category": func(r *dto.CreateTransactionRequest) { r.CategoryID = "missing" },
		"unknown account":  func(r *dto.CreateTransactionRequest) { r.AccountID = strPtr("missing") },
		"unknown card":     func(r *dto.CreateTransactionRequest) { r.CreditCardID = strPtr("missing") },
	}
	for name, mutate := range cases {
		suite.Run(name, func() {
			req := suite.request(domain.Expense, "10")
			mutate(&req)
			_, err := suite.service.CreateTransaction(suite.ctx, testUserID, req)
			suite.Error(err)
			suite.True(errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrNotFound), "unexpected error %v", err)
		})
	}
	suite.Equal(0, suite.store.transactionCount())
	suite.assertBalance("100")
	suite.Equal(0, suite.invalidator.get(testUserID))
}

func (suite *TransactionServiceTestSuite) TestCardOnlyTransactionLeavesBalance() {
	req := suite.request(domain.Expense, "80")
	req.AccountID = nil
	req.CreditCardID = strPtr(testCardID)
	txn := suite.create(req)
	suite.assertBalance("100")

	suite.Require().NoError(suite.service.DeleteTransaction(suite.ctx, testUserID, txn.TransactionID))
	suite.assertBalance("100")
	suite.Empty(suite.store.adjustments)
}

func (suite *TransactionServiceTestSuite) TestParentFailureAbortsBeforeChildren() {
	suite.store.failSaveTxn = func(call int, _ domain.Transaction) error {
		return errors.New("connection reset")
	}
	req := suite.request(domain.Expense, "10")
	req.Installments = 4

	created, err := suite.service.CreateTransaction(suite.ctx, testUserID, req)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrPersistence)
	suite.NotErrorIs(err, apperrors.ErrPartialFailure)
	suite.Equal(1, suite.store.saveTxnCalls)
	suite.Equal(0, suite.store.transactionCount())
	suite.assertBalance("100")
}

func (suite *TransactionServiceTestSuite) TestChildFailureKeepsCreatedRecords() {
	suite.store.failSaveTxn = func(call int, _ domain.Transaction) error {
		if call == 3 {
			return errors.New("write rejected")
		}
		return nil
	}
	req := suite.request(domain.Expense, "10")
	req.Installments = 4

	created, err := suite.service.CreateTransaction(suite.ctx, testUserID, req)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPartialFailure)

	var partial *apperrors.PartialFailureError
	suite.Require().ErrorAs(err, &partial)
	suite.Equal(created[0].TransactionID, partial.ParentID)
	suite.Equal(4, partial.Expected)
	suite.Len(partial.CreatedIDs, 2)

	suite.Len(created, 2)
	suite.Equal(2, suite.store.transactionCount())
	// Reconciliation only runs once every record is stored.
	suite.assertBalance("100")

	events := suite.sink.all()
	suite.Require().Len(events, 1)
	suite.True(events[0].Partial)
	suite.Equal(string(apperrors.KindPartialFailure), events[0].Kind)
}

func (suite *TransactionServiceTestSuite) TestRepairCompletesInstallmentGroup() {
	suite.store.failSaveTxn = func(call int, _ domain.Transaction) error {
		if call == 2 {
			return errors.New("timeout")
		}
		return nil
	}
	req := suite.request(domain.Expense, "10")
	req.Installments = 3
	created, err := suite.service.CreateTransaction(suite.ctx, testUserID, req)
	suite.Require().ErrorIs(err, apperrors.ErrPartialFailure)
	suite.Require().Len(created, 1)
	suite.store.failSaveTxn = nil

	incomplete, err := suite.service.ListIncompleteInstallments(suite.ctx, testUserID)
	suite.Require().NoError(err)
	suite.Require().Len(incomplete, 1)
	suite.Equal([]int{2, 3}, incomplete[0].MissingInstallments)
	suite.True(incomplete[0].BalancePending)
	suite.assertBalance("100")

	repaired, err := suite.service.RepairInstallments(suite.ctx, testUserID, created[0].TransactionID)
	suite.Require().NoError(err)
	suite.Require().Len(repaired, 2)
	suite.assertBalance("90")
	suite.Equal("2024-02-15", repaired[0].Date.Format(domain.DateLayout))
	suite.Equal("2024-03-15", repaired[1].Date.Format(domain.DateLayout))

	incomplete, err = suite.service.ListIncompleteInstallments(suite.ctx, testUserID)
	suite.Require().NoError(err)
	suite.Empty(incomplete)

	group, err := suite.service.ListInstallmentGroup(suite.ctx, testUserID, repaired[1].TransactionID)
	suite.Require().NoError(err)
	suite.Len(group, 3)
}

func (suite *TransactionServiceTestSuite) TestRepairRejectsNonParent() {
	txn := suite.create(suite.request(domain.Expense, "10"))
	_, err := suite.service.RepairInstallments(suite.ctx, testUserID, txn.TransactionID)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.RepairInstallments(suite.ctx, testUserID, "missing")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestReconcileFailureOnCreateIsPartial() {
	suite.store.failAdjust = func(string, decimal.Decimal) error { return errors.New("connection refused") }

	created, err := suite.service.CreateTransaction(suite.ctx, testUserID, suite.request(domain.Income, "50"))
	suite.Require().ErrorIs(err, apperrors.ErrPartialFailure)
	var partial *apperrors.PartialFailureError
	suite.Require().ErrorAs(err, &partial)
	suite.Equal(created[0].TransactionID, partial.ParentID)
	suite.Len(partial.CreatedIDs, 1)

	suite.Require().Len(created, 1)
	suite.True(created[0].BalancePending)
	suite.assertBalance("100")
	events := suite.sink.all()
	suite.Require().Len(events, 1)
	suite.True(events[0].Partial)
	suite.Equal(string(apperrors.KindPartialFailure), events[0].Kind)

	suite.store.failAdjust = nil
	incomplete, err := suite.service.ListIncompleteInstallments(suite.ctx, testUserID)
	suite.Require().NoError(err)
	suite.Require().Len(incomplete, 1)
	suite.True(incomplete[0].BalancePending)

	_, err = suite.service.RepairInstallments(suite.ctx, testUserID, created[0].TransactionID)
	suite.Require().NoError(err)
	suite.assertBalance("150")

	suite.Require().NoError(suite.service.DeleteTransaction(suite.ctx, testUserID, created[0].TransactionID))
	suite.assertBalance("100")
}

func (suite *TransactionServiceTestSuite) TestPartialInstallmentsNeverReverseUnappliedEffect() {
	failChild := func(call int, _ domain.Transaction) error {
		if call == 3 {
			return errors.New("write rejected")
		}
		return nil
	}
	req := suite.request(domain.Expense, "100")
	req.Installments = 3

	suite.Run("delete before repair", func() {
		suite.SetupTest()
		suite.store.failSaveTxn = failChild
		created, err := suite.service.CreateTransaction(suite.ctx, testUserID, req)
		suite.Require().ErrorIs(err, apperrors.ErrPartialFailure)
		suite.assertBalance("100")

		suite.Require().NoError(suite.service.DeleteTransaction(suite.ctx, testUserID, created[0].TransactionID))
		suite.assertBalance("100")
	})

	suite.Run("repair then delete", func() {
		suite.SetupTest()
		suite.store.failSaveTxn = failChild
		created, err := suite.service.CreateTransaction(suite.ctx, testUserID, req)
		suite.Require().ErrorIs(err, apperrors.ErrPartialFailure)
		suite.store.failSaveTxn = nil

		repaired, err := suite.service.RepairInstallments(suite.ctx, testUserID, created[0].TransactionID)
		suite.Require().NoError(err)
		suite.Len(repaired, 1)
		suite.assertBalance("0")

		stored, err := suite.service.GetTransactionByID(suite.ctx, testUserID, created[0].TransactionID)
		suite.Require().NoError(err)
		suite.False(stored.BalancePending)

		suite.Require().NoError(suite.service.DeleteTransaction(suite.ctx, testUserID, created[0].TransactionID))
		suite.assertBalance("100")
	})
}

func (suite *TransactionServiceTestSuite) TestUpdateApplyFailureIsPartial() {
	txn := suite.create(suite.request(domain.Expense, "30"))
	suite.assertBalance("70")

	calls := 0
	suite.store.failAdjust = func(string, decimal.Decimal) error {
		calls++
		if calls == 2 {
			return errors.New("connection reset")
		}
		return nil
	}
	_, err := suite.service.UpdateTransaction(suite.ctx, testUserID, txn.TransactionID, dto.UpdateTransactionRequest{
		Amount:      dto.NewAmount(dec("45")),
		Type:        domain.Expense,
		CategoryID:  testCategoryID,
		Date:        "2024-01-15",
		Description: "Entry",
		AccountID:   strPtr(testAccountID),
	})
	suite.Require().ErrorIs(err, apperrors.ErrPartialFailure)
	suite.assertBalance("100")

	stored, err := suite.service.GetTransactionByID(suite.ctx, testUserID, txn.TransactionID)
	suite.Require().NoError(err)
	suite.True(dec("45").Equal(stored.Amount))
	suite.True(stored.BalancePending)
	suite.True(suite.sink.all()[0].Partial)

	suite.store.failAdjust = nil
	_, err = suite.service.RepairInstallments(suite.ctx, testUserID, txn.TransactionID)
	suite.Require().NoError(err)
	suite.assertBalance("55")
}

func (suite *TransactionServiceTestSuite) TestDeleteRestoreFailureIsPartial() {
	txn := suite.create(suite.request(domain.Income, "25"))
	suite.assertBalance("125")
	suite.store.failDelete = errors.New("write rejected")
	suite.store.failAdjust = func(_ string, delta decimal.Decimal) error {
		if delta.IsPositive() {
			return errors.New("connection reset")
		}
		return nil
	}

	err := suite.service.DeleteTransaction(suite.ctx, testUserID, txn.TransactionID)
	suite.Require().ErrorIs(err, apperrors.ErrPartialFailure)
	var partial *apperrors.PartialFailureError
	suite.Require().ErrorAs(err, &partial)
	suite.Equal(txn.TransactionID, partial.ParentID)
	suite.assertBalance("100")

	stored, err := suite.service.GetTransactionByID(suite.ctx, testUserID, txn.TransactionID)
	suite.Require().NoError(err)
	suite.True(stored.BalancePending)

	suite.store.failDelete = nil
	suite.store.failAdjust = nil
	suite.Require().NoError(suite.service.DeleteTransaction(suite.ctx, testUserID, txn.TransactionID))
	suite.assertBalance("100")
	suite.Equal(0, suite.store.transactionCount())
}

func (suite *TransactionServiceTestSuite) TestUpdateMovesEffectBetweenAccounts() {
	suite.store.accounts["acc-2"] = domain.Account{AccountID: "acc-2", UserID: testUserID, Name: "Savings", Balance: dec("500")}
	txn := suite.create(suite.request(domain.Expense, "40"))
	suite.assertBalance("60")

	_, err := suite.service.UpdateTransaction(suite.ctx, testUserID, txn.TransactionID, dto.UpdateTransactionRequest{
		Amount:      dto.NewAmount(dec("40")),
		Type:        domain.Expense,
		CategoryID:  testCategoryID,
		Date:        "2024-01-15",
		Description: "Moved",
		AccountID:   strPtr("acc-2"),
	})
	suite.Require().NoError(err)
	suite.assertBalance("100")
	suite.True(dec("460").Equal(suite.store.balance("acc-2")))
}

func (suite *TransactionServiceTestSuite) TestUpdatePersistFailureRestoresBalance() {
	txn := suite.create(suite.request(domain.Expense, "30"))
	suite.assertBalance("70")
	suite.store.failUpdate = errors.New("write rejected")

	_, err := suite.service.UpdateTransaction(suite.ctx, testUserID, txn.TransactionID, dto.UpdateTransactionRequest{
		Amount:      dto.NewAmount(dec("45")),
		Type:        domain.Expense,
		CategoryID:  testCategoryID,
		Date:        "2024-01-15",
		Description: "Entry",
		AccountID:   strPtr(testAccountID),
	})
	suite.ErrorIs(err, apperrors.ErrPersistence)
	suite.assertBalance("70")

	stored, err := suite.service.GetTransactionByID(suite.ctx, testUserID, txn.TransactionID)
	suite.Require().NoError(err)
	suite.True(dec("30").Equal(stored.Amount))
}

func (suite *TransactionServiceTestSuite) TestDeleteFailureRestoresBalance() {
	txn := suite.create(suite.request(domain.Income, "25"))
	suite.assertBalance("125")
	suite.store.failDelete = errors.New("write rejected")

	err := suite.service.DeleteTransaction(suite.ctx, testUserID, txn.TransactionID)
	suite.ErrorIs(err, apperrors.ErrPersistence)
	suite.assertBalance("125")
	suite.Equal(1, suite.store.transactionCount())
}

func (suite *TransactionServiceTestSuite) TestDeleteInstallmentChildLeavesSiblingsAndBalance() {
	req := suite.request(domain.Expense, "10")
	req.Installments = 3
	created, err := suite.service.CreateTransaction(suite.ctx, testUserID, req)
	suite.Require().NoError(err)
	suite.assertBalance("90")

	suite.Require().NoError(suite.service.DeleteTransaction(suite.ctx, testUserID, created[1].TransactionID))
	suite.assertBalance("90")
	suite.Equal(2, suite.store.transactionCount())
}

func (suite *TransactionServiceTestSuite) TestDeleteMissingTransaction() {
	err := suite.service.DeleteTransaction(suite.ctx, testUserID, "missing")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestListTransactionsPaginates() {
	for i := 0; i < 5; i++ {
		req := suite.request(domain.Expense, "1")
		req.Date = time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC).Format(domain.DateLayout)
		suite.create(req)
	}

	params := dto.ListTransactionsParams{Limit: 2}
	params.Period = string(domain.PeriodThisMonth)

	var seen []string
	for page := 0; page < 5; page++ {
		txns, next, err := suite.service.ListTransactions(suite.ctx, testUserID, params)
		suite.Require().NoError(err)
		for _, t := range txns {
			seen = append(seen, t.Date.Format(domain.DateLayout))
		}
		if next == nil {
			break
		}
		params.NextToken = *next
	}
	suite.Equal([]string{"2024-01-05", "2024-01-04", "2024-01-03", "2024-01-02", "2024-01-01"}, seen)
}

func (suite *TransactionServiceTestSuite) TestListTransactionsRejectsBadToken() {
	_, _, err := suite.service.ListTransactions(suite.ctx, testUserID, dto.ListTransactionsParams{NextToken: "%%%"})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func dtoExpense(amount, date string) dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		Amount:      dto.NewAmount(dec(amount)),
		Type:        domain.Expense,
		CategoryID:  testCategoryID,
		Date:        date,
		Description: "Groceries",
		AccountID:   strPtr(testAccountID),
	}
}
