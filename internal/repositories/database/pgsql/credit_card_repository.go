package pgsql

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker/internal/models"
	"github.com/SscSPs/finance_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const creditCardColumns = `credit_card_id, user_id, name, credit_limit, due_day, close_day, color, icon, created_at, created_by, last_updated_at, last_updated_by`

type PgxCreditCardRepository struct {
	BaseRepository
}

func newPgxCreditCardRepository(pool *pgxpool.Pool) portsrepo.CreditCardRepositoryFacade {
	return &PgxCreditCardRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CreditCardRepositoryFacade = (*PgxCreditCardRepository)(nil)

func scanCreditCard(row pgx.CollectableRow) (models.CreditCard, error) {
	var m models.CreditCard
	err := row.Scan(
		&m.CreditCardID,
		&m.UserID,
		&m.Name,
		&m.CreditLimit,
		&m.DueDay,
		&m.CloseDay,
		&m.Color,
		&m.Icon,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxCreditCardRepository) SaveCreditCard(ctx context.Context, card domain.CreditCard) error {
	m := mapping.ToModelCreditCard(card)
	query := `
		INSERT INTO credit_cards (` + creditCardColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CreditCardID, m.UserID, m.Name, m.CreditLimit, m.DueDay, m.CloseDay, m.Color, m.Icon,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapError(err, "save credit card %s", m.CreditCardID)
}

func (r *PgxCreditCardRepository) FindCreditCardByID(ctx context.Context, userID string, creditCardID string) (*domain.CreditCard, error) {
	query := `SELECT ` + creditCardColumns + ` FROM credit_cards WHERE credit_card_id = $1 AND user_id = $2;`
	rows, err := r.Pool.Query(ctx, query, creditCardID, userID)
	if err != nil {
		return nil, mapError(err, "find credit card %s", creditCardID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, scanCreditCard)
	if err != nil {
		return nil, mapError(err, "find credit card %s", creditCardID)
	}
	d := mapping.ToDomainCreditCard(m)
	return &d, nil
}

func (r *PgxCreditCardRepository) ListCreditCards(ctx context.Context, userID string) ([]domain.CreditCard, error) {
	query := `SELECT ` + creditCardColumns + ` FROM credit_cards WHERE user_id = $1 ORDER BY name, credit_card_id;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, mapError(err, "list credit cards")
	}
	ms, err := pgx.CollectRows(rows, scanCreditCard)
	if err != nil {
		return nil, mapError(err, "scan credit cards")
	}
	return mapping.ToDomainCreditCardSlice(ms), nil
}

func (r *PgxCreditCardRepository) UpdateCreditCard(ctx context.Context, card domain.CreditCard) error {
	m := mapping.ToModelCreditCard(card)
	query := `
		UPDATE credit_cards
		SET name = $3, credit_limit = $4, due_day = $5, close_day = $6, color = $7, icon = $8,
			last_updated_at = $9, last_updated_by = $10
		WHERE credit_card_id = $1 AND user_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.CreditCardID, m.UserID, m.Name, m.CreditLimit, m.DueDay, m.CloseDay, m.Color, m.Icon,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "update credit card %s", m.CreditCardID)
	}
	return expectOne(tag, "credit card %s", m.CreditCardID)
}

func (r *PgxCreditCardRepository) DeleteCreditCard(ctx context.Context, userID string, creditCardID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM credit_cards WHERE credit_card_id = $1 AND user_id = $2;`, creditCardID, userID)
	if err != nil {
		return mapError(err, "delete credit card %s", creditCardID)
	}
	return expectOne(tag, "credit card %s", creditCardID)
}
