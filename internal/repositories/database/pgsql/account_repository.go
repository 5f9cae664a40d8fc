package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker/internal/models"
	"github.com/SscSPs/finance_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const accountColumns = `account_id, user_id, name, account_type, balance, color, icon, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.CollectableRow) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.UserID,
		&m.Name,
		&m.AccountType,
		&m.Balance,
		&m.Color,
		&m.Icon,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveAccount inserts a new account with its opening balance.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID, m.UserID, m.Name, m.AccountType, m.Balance, m.Color, m.Icon,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapError(err, "save account %s", m.AccountID)
}

// FindAccountByID retrieves an account of the user by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1 AND user_id = $2;`
	rows, err := r.Pool.Query(ctx, query, accountID, userID)
	if err != nil {
		return nil, mapError(err, "find account %s", accountID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, scanAccount)
	if err != nil {
		return nil, mapError(err, "find account %s", accountID)
	}
	d := mapping.ToDomainAccount(m)
	return &d, nil
}

// ListAccounts retrieves every account of the user ordered by name.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 ORDER BY name, account_id;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, mapError(err, "list accounts")
	}
	ms, err := pgx.CollectRows(rows, scanAccount)
	if err != nil {
		return nil, mapError(err, "scan accounts")
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

// UpdateAccount updates the descriptive fields of an account. The balance is only ever
// changed through AdjustBalance.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET name = $3, account_type = $4, color = $5, icon = $6, last_updated_at = $7, last_updated_by = $8
		WHERE account_id = $1 AND user_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, m.AccountID, m.UserID, m.Name, m.AccountType, m.Color, m.Icon, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return mapError(err, "update account %s", m.AccountID)
	}
	return expectOne(tag, "account %s", m.AccountID)
}

// DeleteAccount removes an account. The foreign keys of transactions refuse the delete
// while any still reference it.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, userID string, accountID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1 AND user_id = $2;`, accountID, userID)
	if err != nil {
		return mapError(err, "delete account %s", accountID)
	}
	return expectOne(tag, "account %s", accountID)
}

// AdjustBalance adds delta to the stored balance in a single statement, so concurrent
// adjustments never lose an update.
func (r *PgxAccountRepository) AdjustBalance(ctx context.Context, userID string, accountID string, delta decimal.Decimal, updatedBy string, now time.Time) error {
	query := `
		UPDATE accounts
		SET balance = COALESCE(balance, 0) + $3, last_updated_at = $4, last_updated_by = $5
		WHERE account_id = $1 AND user_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, userID, delta, now, updatedBy)
	if err != nil {
		return mapError(err, "adjust balance of account %s", accountID)
	}
	return expectOne(tag, "account %s", accountID)
}
