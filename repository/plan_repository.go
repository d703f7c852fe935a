package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"landLotPlanner/models"
)

// PlanRepository is the core repository for Plan entities.
// The layout is stored as a JSON column.
type PlanRepository struct {
	db *sql.DB
}

// NewPlanRepository creates a new PlanRepository.
func NewPlanRepository(db *sql.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

const planColumns = `id, problem_id, status, yield, layout, solve_ms, seed, created_at`

// Create inserts a new plan for a problem.
func (r *PlanRepository) Create(ctx context.Context, pl *models.Plan) (*models.Plan, error) {
	if pl == nil {
		return nil, errors.New("plan is nil")
	}
	layout, err := json.Marshal(pl.Layout)
	if err != nil {
		return nil, fmt.Errorf("marshal layout: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO plans (problem_id, status, yield, layout, solve_ms, seed) VALUES (?,?,?,?,?,?)`,
		pl.ProblemID, string(pl.Status), pl.Yield, string(layout), pl.SolveMillis, pl.Seed)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	p2, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p2 == nil {
		return nil, fmt.Errorf("created plan not found: id=%d", id)
	}
	return p2, nil
}

// GetByID fetches a plan by its ID.
func (r *PlanRepository) GetByID(ctx context.Context, id int64) (*models.Plan, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	row := r.db.QueryRowContext(ctx, `SELECT `+planColumns+` FROM plans WHERE id = ?`, id)
	pl, err := scanPlan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return pl, nil
}

// GetLatestForProblem returns the most recent plan for the given problem
// (by created_at desc, id desc), or nil when the problem has none.
func (r *PlanRepository) GetLatestForProblem(ctx context.Context, problemID int64) (*models.Plan, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	row := r.db.QueryRowContext(ctx,
		`SELECT `+planColumns+` FROM plans WHERE problem_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`, problemID)
	pl, err := scanPlan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return pl, nil
}

// ListByProblem returns all plans for a problem, newest first.
func (r *PlanRepository) ListByProblem(ctx context.Context, problemID int64) ([]models.Plan, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+planColumns+` FROM plans WHERE problem_id = ? ORDER BY created_at DESC, id DESC`, problemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPlanRows(rows)
}

// Delete removes a plan by ID.
func (r *PlanRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id)
	return err
}

func scanPlan(row rowScanner) (*models.Plan, error) {
	var pl models.Plan
	var status, layout string
	if err := row.Scan(&pl.ID, &pl.ProblemID, &status, &pl.Yield, &layout, &pl.SolveMillis, &pl.Seed, &pl.CreatedAt); err != nil {
		return nil, err
	}
	pl.Status = models.PlanStatus(status)
	if err := json.Unmarshal([]byte(layout), &pl.Layout); err != nil {
		return nil, fmt.Errorf("unmarshal layout for plan %d: %w", pl.ID, err)
	}
	return &pl, nil
}

func scanPlanRows(rows *sql.Rows) ([]models.Plan, error) {
	var out []models.Plan
	for rows.Next() {
		pl, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *pl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
