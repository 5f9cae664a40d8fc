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

const goalColumns = `goal_id, user_id, name, target_amount, current_amount, deadline, color, icon, created_at, created_by, last_updated_at, last_updated_by`

type PgxGoalRepository struct {
	BaseRepository
}

func newPgxGoalRepository(pool *pgxpool.Pool) portsrepo.GoalRepositoryFacade {
	return &PgxGoalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.GoalRepositoryFacade = (*PgxGoalRepository)(nil)

func scanGoal(row pgx.CollectableRow) (models.Goal, error) {
	var m models.Goal
	err := row.Scan(
		&m.GoalID,
		&m.UserID,
		&m.Name,
		&m.TargetAmount,
		&m.CurrentAmount,
		&m.Deadline,
		&m.Color,
		&m.Icon,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxGoalRepository) SaveGoal(ctx context.Context, goal domain.Goal) error {
	m := mapping.ToModelGoal(goal)
	query := `
		INSERT INTO goals (` + goalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.GoalID, m.UserID, m.Name, m.TargetAmount, m.CurrentAmount, m.Deadline, m.Color, m.Icon,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapError(err, "save goal %s", m.GoalID)
}

func (r *PgxGoalRepository) FindGoalByID(ctx context.Context, userID string, goalID string) (*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE goal_id = $1 AND user_id = $2;`
	rows, err := r.Pool.Query(ctx, query, goalID, userID)
	if err != nil {
		return nil, mapError(err, "find goal %s", goalID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, scanGoal)
	if err != nil {
		return nil, mapError(err, "find goal %s", goalID)
	}
	d := mapping.ToDomainGoal(m)
	return &d, nil
}

// ListGoals returns the user's goals, nearest deadline first.
func (r *PgxGoalRepository) ListGoals(ctx context.Context, userID string) ([]domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = $1 ORDER BY deadline, goal_id;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, mapError(err, "list goals")
	}
	ms, err := pgx.CollectRows(rows, scanGoal)
	if err != nil {
		return nil, mapError(err, "scan goals")
	}
	return mapping.ToDomainGoalSlice(ms), nil
}

func (r *PgxGoalRepository) UpdateGoal(ctx context.Context, goal domain.Goal) error {
	m := mapping.ToModelGoal(goal)
	query := `
		UPDATE goals
		SET name = $3, target_amount = $4, current_amount = $5, deadline = $6, color = $7, icon = $8,
			last_updated_at = $9, last_updated_by = $10
		WHERE goal_id = $1 AND user_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.GoalID, m.UserID, m.Name, m.TargetAmount, m.CurrentAmount, m.Deadline, m.Color, m.Icon,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "update goal %s", m.GoalID)
	}
	return expectOne(tag, "goal %s", m.GoalID)
}

func (r *PgxGoalRepository) DeleteGoal(ctx context.Context, userID string, goalID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM goals WHERE goal_id = $1 AND user_id = $2;`, goalID, userID)
	if err != nil {
		return mapError(err, "delete goal %s", goalID)
	}
	return expectOne(tag, "goal %s", goalID)
}
