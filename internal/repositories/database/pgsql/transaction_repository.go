package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker/internal/models"
	"github.com/SscSPs/finance_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `transaction_id, user_id, amount, transaction_type, category_id, transaction_date, description,
	account_id, credit_card_id, notes, installments, current_installment, parent_transaction_id, balance_pending,
	created_at, created_by, last_updated_at, last_updated_by`

const transactionOrder = `ORDER BY transaction_date DESC, created_at DESC, transaction_id DESC`

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.CollectableRow) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.UserID,
		&m.Amount,
		&m.TransactionType,
		&m.CategoryID,
		&m.TransactionDate,
		&m.Description,
		&m.AccountID,
		&m.CreditCardID,
		&m.Notes,
		&m.Installments,
		&m.CurrentInstallment,
		&m.ParentTransactionID,
		&m.BalancePending,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxTransactionRepository) query(ctx context.Context, what string, sql string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError(err, "%s", what)
	}
	ms, err := pgx.CollectRows(rows, scanTransaction)
	if err != nil {
		return nil, mapError(err, "%s", what)
	}
	return mapping.ToDomainTransactionSlice(ms), nil
}

// SaveTransaction inserts one transaction record. Installment records are saved one
// call at a time by the caller.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TransactionID, m.UserID, m.Amount, m.TransactionType, m.CategoryID, m.TransactionDate, m.Description,
		m.AccountID, m.CreditCardID, m.Notes, m.Installments, m.CurrentInstallment, m.ParentTransactionID, m.BalancePending,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapError(err, "save transaction %s", m.TransactionID)
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	txns, err := r.query(ctx, "find transaction "+transactionID,
		`SELECT `+transactionColumns+` FROM transactions WHERE transaction_id = $1 AND user_id = $2;`,
		transactionID, userID)
	if err != nil {
		return nil, err
	}
	if len(txns) == 0 {
		return nil, mapError(pgx.ErrNoRows, "find transaction %s", transactionID)
	}
	return &txns[0], nil
}

func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	return r.query(ctx, "list transactions",
		`SELECT `+transactionColumns+` FROM transactions WHERE user_id = $1 `+transactionOrder+`;`,
		userID)
}

// ListTransactionsPage returns up to params.Limit transactions after the cursor, newest
// first. The cursor compares (date, created_at, id) as a row value.
func (r *PgxTransactionRepository) ListTransactionsPage(ctx context.Context, userID string, params portsrepo.ListTransactionsParams) ([]domain.Transaction, error) {
	var (
		clauses = []string{"user_id = $1"}
		args    = []any{userID}
	)
	add := func(clause string, values ...any) {
		for _, v := range values {
			args = append(args, v)
			clause = strings.Replace(clause, "?", "$"+strconv.Itoa(len(args)), 1)
		}
		clauses = append(clauses, clause)
	}

	if params.From != nil {
		add("transaction_date >= ?", *params.From)
	}
	if params.To != nil {
		add("transaction_date <= ?", *params.To)
	}
	if params.OwnerUserID != nil {
		add("user_id = ?", *params.OwnerUserID)
	}
	if params.AccountID != nil {
		add("account_id = ?", *params.AccountID)
	}
	if params.CreditCardID != nil {
		add("credit_card_id = ?", *params.CreditCardID)
	}
	if params.After != nil {
		add("(transaction_date, created_at, transaction_id) < (?, ?, ?)",
			domain.Date(params.After.Date), params.After.CreatedAt, params.After.TransactionID)
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` + strings.Join(clauses, " AND ") + ` ` + transactionOrder
	if params.Limit > 0 {
		args = append(args, params.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}
	return r.query(ctx, "list transactions page", query+";", args...)
}

// FindInstallmentGroup returns a parent and its children ordered by installment number.
func (r *PgxTransactionRepository) FindInstallmentGroup(ctx context.Context, userID string, parentID string) ([]domain.Transaction, error) {
	return r.query(ctx, "find installment group "+parentID, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE user_id = $1 AND (transaction_id = $2 OR parent_transaction_id = $2)
		ORDER BY current_installment, transaction_id;`,
		userID, parentID)
}

func (r *PgxTransactionRepository) CountTransactionsReferencing(ctx context.Context, field portsrepo.ReferenceField, id string) (int, error) {
	switch field {
	case portsrepo.RefAccount, portsrepo.RefCreditCard, portsrepo.RefCategory:
	default:
		return 0, fmt.Errorf("unknown reference field %q", field)
	}
	var count int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE `+string(field)+` = $1;`, id).Scan(&count)
	if err != nil {
		return 0, mapError(err, "count transactions referencing %s", id)
	}
	return count, nil
}

func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions
		SET amount = $3, transaction_type = $4, category_id = $5, transaction_date = $6, description = $7,
			account_id = $8, credit_card_id = $9, notes = $10, balance_pending = $11, last_updated_at = $12, last_updated_by = $13
		WHERE transaction_id = $1 AND user_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.TransactionID, m.UserID, m.Amount, m.TransactionType, m.CategoryID, m.TransactionDate, m.Description,
		m.AccountID, m.CreditCardID, m.Notes, m.BalancePending, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "update transaction %s", m.TransactionID)
	}
	return expectOne(tag, "transaction %s", m.TransactionID)
}

// DeleteTransaction removes a single record. Children of a deleted parent keep existing
// and keep their parent_transaction_id, which carries no foreign key.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1 AND user_id = $2;`, transactionID, userID)
	if err != nil {
		return mapError(err, "delete transaction %s", transactionID)
	}
	return expectOne(tag, "transaction %s", transactionID)
}
