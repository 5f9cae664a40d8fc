package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/aggregation"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/core/installments"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/utils/pagination"
	"github.com/google/uuid"
)

const defaultPageSize = 50

// transactionService implements TransactionSvcFacade. Multi-step mutations run as ordered
// sequential round trips: parent before children, reversal before application.
type transactionService struct {
	BaseService
	txnRepo      portsrepo.TransactionRepositoryFacade
	accountRepo  portsrepo.AccountReader
	cardRepo     portsrepo.CreditCardReader
	categoryRepo portsrepo.CategoryReader
	reconciler   *BalanceReconciler
}

// NewTransactionService creates the transaction service.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	cardRepo portsrepo.CreditCardReader,
	categoryRepo portsrepo.CategoryReader,
	reconciler *BalanceReconciler,
	options ...ServiceOption,
) portssvc.TransactionSvcFacade {
	svc := &transactionService{
		txnRepo:      txnRepo,
		accountRepo:  accountRepo,
		cardRepo:     cardRepo,
		categoryRepo: categoryRepo,
		reconciler:   reconciler,
	}
	svc.apply(options)
	return svc
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func normalizeRef(id *string) *string {
	if id == nil {
		return nil
	}
	v := strings.TrimSpace(*id)
	if v == "" {
		return nil
	}
	return &v
}

// validate checks the request and its references without side effects and returns the
// transaction it describes.
func (s *transactionService) validate(ctx context.Context, userID string, f dto.UpdateTransactionRequest) (domain.Transaction, error) {
	var txn domain.Transaction

	if !f.Amount.IsPositive() {
		return txn, apperrors.NewValidationError("amount", "must be greater than zero")
	}
	if f.Type != domain.Income && f.Type != domain.Expense {
		return txn, apperrors.NewValidationError("type", "must be income or expense")
	}
	if strings.TrimSpace(f.CategoryID) == "" {
		return txn, apperrors.NewValidationError("categoryID", "is required")
	}
	date, err := parseDate("date", f.Date)
	if err != nil {
		return txn, err
	}
	description := strings.TrimSpace(f.Description)
	if description == "" {
		return txn, apperrors.NewValidationError("description", "is required")
	}

	category, err := s.categoryRepo.FindCategoryByID(ctx, userID, f.CategoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return txn, fmt.Errorf("%w: category %s", apperrors.ErrNotFound, f.CategoryID)
		}
		return txn, apperrors.Persistence("find category", err)
	}
	if !category.Accepts(f.Type) {
		return txn, apperrors.NewValidationError("categoryID", "category %q does not accept %s transactions", category.Name, f.Type)
	}

	accountID := normalizeRef(f.AccountID)
	if accountID != nil {
		if _, err := s.accountRepo.FindAccountByID(ctx, userID, *accountID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return txn, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, *accountID)
			}
			return txn, apperrors.Persistence("find account", err)
		}
	}
	cardID := normalizeRef(f.CreditCardID)
	if cardID != nil {
		if _, err := s.cardRepo.FindCreditCardByID(ctx, userID, *cardID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return txn, fmt.Errorf("%w: credit card %s", apperrors.ErrNotFound, *cardID)
			}
			return txn, apperrors.Persistence("find credit card", err)
		}
	}

	return domain.Transaction{
		UserID:       userID,
		Amount:       f.Amount.Decimal,
		Type:         f.Type,
		CategoryID:   f.CategoryID,
		Date:         date,
		Description:  description,
		AccountID:    accountID,
		CreditCardID: cardID,
		Notes:        f.Notes,
	}, nil
}

func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) ([]domain.Transaction, error) {
	n := req.Installments
	if n == 0 {
		n = 1
	}
	if err := installments.Validate(n); err != nil {
		return nil, err
	}
	amount, err := installments.PerInstallmentAmount(req.Amount.Decimal, n, installments.AmountMode(req.AmountMode))
	if err != nil {
		return nil, err
	}

	base, err := s.validate(ctx, userID, dto.UpdateTransactionRequest{
		Amount:       dto.NewAmount(amount),
		Type:         req.Type,
		CategoryID:   req.CategoryID,
		Date:         req.Date,
		Description:  req.Description,
		AccountID:    req.AccountID,
		CreditCardID: req.CreditCardID,
		Notes:        req.Notes,
	})
	if err != nil {
		return nil, err
	}

	now := s.Now()
	base.AuditFields = domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID}

	parent := installments.Parent(base, n)
	parent.TransactionID = uuid.NewString()
	// The parent stays pending until every record is stored and its effect is applied.
	parent.BalancePending = parent.MovesBalance()
	if err := s.txnRepo.SaveTransaction(ctx, parent); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.Int("installments", n))
		err = apperrors.Persistence("save transaction", err)
		s.Report(ctx, "transaction.create", userID, err, nil)
		return nil, err
	}
	created := []domain.Transaction{parent}

	for i := 2; i <= n; i++ {
		child := installments.Child(parent, i)
		child.TransactionID = uuid.NewString()
		child.BalancePending = false
		if err := s.txnRepo.SaveTransaction(ctx, child); err != nil {
			partial := &apperrors.PartialFailureError{
				Operation:  "installment expansion",
				ParentID:   parent.TransactionID,
				CreatedIDs: transactionIDs(created),
				Expected:   n,
				Cause:      err,
			}
			s.LogError(ctx, partial, "Installment expansion stopped after partial persistence",
				slog.String("parent_id", parent.TransactionID),
				slog.Int("failed_installment", i))
			s.Report(ctx, "transaction.create", userID, partial, map[string]any{
				"parent_id":          parent.TransactionID,
				"failed_installment": i,
				"created":            len(created),
				"expected":           n,
			})
			s.Invalidate(userID)
			return created, partial
		}
		created = append(created, child)
	}

	// Only the parent moves the balance; children are scheduled future entries.
	settled, err := s.settle(ctx, userID, parent)
	created[0] = settled
	if err != nil {
		partial := &apperrors.PartialFailureError{
			Operation:  "balance reconciliation",
			ParentID:   parent.TransactionID,
			CreatedIDs: transactionIDs(created),
			Expected:   n,
			Cause:      err,
		}
		s.Report(ctx, "transaction.create.reconcile", userID, partial, map[string]any{
			"transaction_id": parent.TransactionID,
			"records_kept":   len(created),
		})
		s.Invalidate(userID)
		return created, partial
	}

	s.Invalidate(userID)
	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", parent.TransactionID),
		slog.Int("installments", n))
	return created, nil
}

// settle applies a pending record's balance effect, then clears the pending flag. When the
// flag cannot be cleared the effect is reversed again so the stored flag stays truthful.
func (s *transactionService) settle(ctx context.Context, userID string, txn domain.Transaction) (domain.Transaction, error) {
	if !txn.BalancePending {
		return txn, nil
	}
	applied := txn
	applied.BalancePending = false
	if err := s.reconciler.ApplyCreate(ctx, userID, applied); err != nil {
		return txn, err
	}
	if err := s.txnRepo.UpdateTransaction(ctx, applied); err != nil {
		err = apperrors.Persistence("clear balance pending flag", err)
		if rerr := s.reconciler.Reverse(ctx, userID, applied); rerr != nil {
			s.LogError(ctx, rerr, "Balance applied but transaction is still marked pending",
				slog.String("transaction_id", txn.TransactionID))
			return txn, fmt.Errorf("%w; reversal failed: %v", err, rerr)
		}
		return txn, err
	}
	return applied, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return nil, apperrors.Persistence("find transaction", err)
	}
	return txn, nil
}

// UpdateTransaction edits one record: the original effect is reversed, the record is
// saved as pending, then the new effect is applied. Sibling installments are left untouched.
func (s *transactionService) UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	original, err := s.GetTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}
	fields, err := s.validate(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	updated := *original
	updated.Amount = fields.Amount
	updated.Type = fields.Type
	updated.CategoryID = fields.CategoryID
	updated.Date = fields.Date
	updated.Description = fields.Description
	updated.AccountID = fields.AccountID
	updated.CreditCardID = fields.CreditCardID
	updated.Notes = fields.Notes
	updated.LastUpdatedAt = s.Now()
	updated.LastUpdatedBy = userID
	updated.BalancePending = updated.MovesBalance()

	details := map[string]any{"transaction_id": transactionID}

	if err := s.reconciler.Reverse(ctx, userID, *original); err != nil {
		s.Report(ctx, "transaction.update.reverse", userID, err, details)
		return nil, err
	}

	if err := s.txnRepo.UpdateTransaction(ctx, updated); err != nil {
		return nil, s.restore(ctx, userID, *original, "transaction.update", apperrors.Persistence("update transaction", err), details)
	}

	if original.BalancePending {
		// Still waiting on a repair, which applies the effect with the edited amount.
		s.Invalidate(userID)
		return &updated, nil
	}

	settled, err := s.settle(ctx, userID, updated)
	if err != nil {
		partial := &apperrors.PartialFailureError{
			Operation:  "transaction update",
			ParentID:   transactionID,
			CreatedIDs: []string{transactionID},
			Expected:   1,
			Cause:      err,
		}
		s.Report(ctx, "transaction.update.apply", userID, partial, details)
		s.Invalidate(userID)
		return nil, partial
	}

	s.Invalidate(userID)
	return &settled, nil
}

// DeleteTransaction reverses the record's balance effect, then removes it. Siblings of an
// installment purchase are not deleted.
func (s *transactionService) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	txn, err := s.GetTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return err
	}
	details := map[string]any{"transaction_id": transactionID}

	if err := s.reconciler.ApplyDelete(ctx, userID, *txn); err != nil {
		s.Report(ctx, "transaction.delete.reverse", userID, err, details)
		return err
	}
	if err := s.txnRepo.DeleteTransaction(ctx, userID, transactionID); err != nil {
		return s.restore(ctx, userID, *txn, "transaction.delete", apperrors.Persistence("delete transaction", err), details)
	}

	s.Invalidate(userID)
	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

// restore re-applies a reversed effect after the record change it preceded failed and
// returns the error for the caller. When the effect cannot be re-applied the stored record
// is marked pending so a repair applies it later, and a partial failure is returned.
func (s *transactionService) restore(ctx context.Context, userID string, txn domain.Transaction, op string, cause error, details map[string]any) error {
	s.Report(ctx, op, userID, cause, details)
	err := s.reconciler.ApplyCreate(ctx, userID, txn)
	if err == nil {
		return cause
	}

	if txn.AffectsBalance() {
		pending := txn
		pending.BalancePending = true
		if merr := s.txnRepo.UpdateTransaction(ctx, pending); merr != nil {
			s.LogError(ctx, merr, "Failed to mark transaction balance as pending",
				slog.String("transaction_id", txn.TransactionID))
			err = fmt.Errorf("%w; marking pending failed: %v", err, merr)
		}
	}
	partial := &apperrors.PartialFailureError{
		Operation:  op + " balance restore",
		ParentID:   txn.TransactionID,
		CreatedIDs: []string{txn.TransactionID},
		Expected:   1,
		Cause:      errors.Join(cause, err),
	}
	s.Report(ctx, op, userID, partial, details)
	s.Invalidate(userID)
	return partial
}

func (s *transactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error) {
	filter, err := params.ToFilter()
	if err != nil {
		return nil, nil, err
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}

	from, to := aggregation.Window(filter.Period, s.Now())
	repoParams := portsrepo.ListTransactionsParams{
		From:         &from,
		To:           &to,
		OwnerUserID:  filter.UserID,
		AccountID:    filter.AccountID,
		CreditCardID: filter.CreditCardID,
		Limit:        limit + 1,
	}
	if params.NextToken != "" {
		cursor, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("nextToken", "%v", err)
		}
		repoParams.After = &cursor
	}

	txns, err := s.txnRepo.ListTransactionsPage(ctx, userID, repoParams)
	if err != nil {
		return nil, nil, apperrors.Persistence("list transactions", err)
	}

	var next *string
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[len(txns)-1]
		token := pagination.EncodeToken(pagination.Cursor{
			Date:          last.Date,
			CreatedAt:     last.CreatedAt,
			TransactionID: last.TransactionID,
		})
		next = &token
	}
	return txns, next, nil
}

func (s *transactionService) ListInstallmentGroup(ctx context.Context, userID string, transactionID string) ([]domain.Transaction, error) {
	txn, err := s.GetTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Installments <= 1 {
		return []domain.Transaction{*txn}, nil
	}
	parentID := txn.TransactionID
	if txn.ParentTransactionID != nil {
		parentID = *txn.ParentTransactionID
	}
	group, err := s.txnRepo.FindInstallmentGroup(ctx, userID, parentID)
	if err != nil {
		return nil, apperrors.Persistence("find installment group", err)
	}
	return group, nil
}

func (s *transactionService) ListIncompleteInstallments(ctx context.Context, userID string) ([]domain.IncompleteInstallment, error) {
	txns, err := s.txnRepo.ListTransactions(ctx, userID)
	if err != nil {
		return nil, apperrors.Persistence("list transactions", err)
	}
	incomplete := installments.FindIncomplete(txns)
	if len(incomplete) > 0 {
		s.LogInfo(ctx, "Found incomplete installment purchases", slog.Int("count", len(incomplete)))
	}
	return incomplete, nil
}

// RepairInstallments recreates the missing children of a split purchase and applies the
// parent's balance effect when it is still pending. Repaired children do not move any balance.
func (s *transactionService) RepairInstallments(ctx context.Context, userID string, parentID string) ([]domain.Transaction, error) {
	group, err := s.txnRepo.FindInstallmentGroup(ctx, userID, parentID)
	if err != nil {
		return nil, apperrors.Persistence("find installment group", err)
	}

	var parent *domain.Transaction
	children := make([]domain.Transaction, 0, len(group))
	for i := range group {
		if group[i].TransactionID == parentID {
			parent = &group[i]
			continue
		}
		children = append(children, group[i])
	}
	if parent == nil {
		return nil, fmt.Errorf("%w: installment parent %s", apperrors.ErrNotFound, parentID)
	}
	if parent.ParentTransactionID != nil || (!parent.IsInstallmentParent() && !parent.BalancePending) {
		return nil, apperrors.NewValidationError("parentID", "transaction %s is not an installment parent", parentID)
	}

	missing := installments.Missing(*parent, children)
	created := make([]domain.Transaction, 0, len(missing))
	now := s.Now()
	for _, i := range missing {
		child := installments.Child(*parent, i)
		child.TransactionID = uuid.NewString()
		child.BalancePending = false
		child.CreatedAt, child.LastUpdatedAt = now, now
		child.CreatedBy, child.LastUpdatedBy = userID, userID
		if err := s.txnRepo.SaveTransaction(ctx, child); err != nil {
			partial := &apperrors.PartialFailureError{
				Operation:  "installment repair",
				ParentID:   parentID,
				CreatedIDs: transactionIDs(created),
				Expected:   len(missing),
				Cause:      err,
			}
			s.Report(ctx, "installments.repair", userID, partial, map[string]any{"parent_id": parentID, "failed_installment": i})
			s.Invalidate(userID)
			return created, partial
		}
		created = append(created, child)
	}

	wasPending := parent.BalancePending
	if _, err := s.settle(ctx, userID, *parent); err != nil {
		partial := &apperrors.PartialFailureError{
			Operation:  "installment repair",
			ParentID:   parentID,
			CreatedIDs: transactionIDs(created),
			Expected:   len(missing),
			Cause:      err,
		}
		s.Report(ctx, "installments.repair.reconcile", userID, partial, map[string]any{"parent_id": parentID})
		s.Invalidate(userID)
		return created, partial
	}

	if len(created) > 0 || wasPending {
		s.Invalidate(userID)
		s.LogInfo(ctx, "Installments repaired",
			slog.String("parent_id", parentID),
			slog.Int("created", len(created)),
			slog.Bool("balance_applied", wasPending))
	}
	return created, nil
}

func transactionIDs(txns []domain.Transaction) []string {
	ids := make([]string, len(txns))
	for i, t := range txns {
		ids[i] = t.TransactionID
	}
	return ids
}
