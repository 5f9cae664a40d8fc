package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker/internal/models"
	"github.com/SscSPs/finance_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const categoryColumns = `category_id, user_id, name, category_type, color, icon, is_default, created_at, created_by, last_updated_at, last_updated_by`

type PgxCategoryRepository struct {
	BaseRepository
}

func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

func scanCategory(row pgx.CollectableRow) (models.Category, error) {
	var m models.Category
	err := row.Scan(
		&m.CategoryID,
		&m.UserID,
		&m.Name,
		&m.CategoryType,
		&m.Color,
		&m.Icon,
		&m.IsDefault,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)
	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CategoryID, m.UserID, m.Name, m.CategoryType, m.Color, m.Icon, m.IsDefault,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapError(err, "save category %s", m.CategoryID)
}

// FindCategoryByID finds a category owned by the user or a shared default one.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, userID string, categoryID string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE category_id = $1 AND (user_id = $2 OR is_default);`
	rows, err := r.Pool.Query(ctx, query, categoryID, userID)
	if err != nil {
		return nil, mapError(err, "find category %s", categoryID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, scanCategory)
	if err != nil {
		return nil, mapError(err, "find category %s", categoryID)
	}
	d := mapping.ToDomainCategory(m)
	return &d, nil
}

// ListCategories returns the defaults followed by the user's own categories.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE user_id = $1 OR is_default
		ORDER BY is_default DESC, name, category_id;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, mapError(err, "list categories")
	}
	ms, err := pgx.CollectRows(rows, scanCategory)
	if err != nil {
		return nil, mapError(err, "scan categories")
	}
	return mapping.ToDomainCategorySlice(ms), nil
}

func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)
	query := `
		UPDATE categories
		SET name = $3, category_type = $4, color = $5, icon = $6, last_updated_at = $7, last_updated_by = $8
		WHERE category_id = $1 AND user_id = $2 AND NOT is_default;
	`
	tag, err := r.Pool.Exec(ctx, query, m.CategoryID, m.UserID, m.Name, m.CategoryType, m.Color, m.Icon, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return mapError(err, "update category %s", m.CategoryID)
	}
	return expectOne(tag, "category %s", m.CategoryID)
}

// DeleteCategory locks the row, refuses defaults and removes the category. Transactions
// referencing it make the foreign key refuse the delete.
func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, userID string, categoryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var isDefault bool
	err = tx.QueryRow(ctx,
		`SELECT is_default FROM categories WHERE category_id = $1 AND (user_id = $2 OR is_default) FOR UPDATE;`,
		categoryID, userID,
	).Scan(&isDefault)
	if err != nil {
		return mapError(err, "lock category %s", categoryID)
	}
	if isDefault {
		return fmt.Errorf("%w: default category %s cannot be deleted", apperrors.ErrReferentialIntegrity, categoryID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM categories WHERE category_id = $1;`, categoryID); err != nil {
		return mapError(err, "delete category %s", categoryID)
	}
	return r.Commit(ctx, tx)
}
