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

// ErrStatusConflict is returned when a guarded status transition matched no
// row, i.e. the problem was missing or not in the expected status.
var ErrStatusConflict = errors.New("repository: problem not in expected status")

// ProblemRepository is the core repository for Problem entities.
// Zones are stored as a JSON column.
type ProblemRepository struct {
	db *sql.DB
}

// NewProblemRepository creates a new ProblemRepository.
func NewProblemRepository(db *sql.DB) *ProblemRepository {
	return &ProblemRepository{db: db}
}

const problemColumns = `id, name, lot_width, lot_height, max_buildings, max_parking_lots, min_parking_pct, zones, status, created_at, submitted_by`

// Create inserts a new problem. Status defaults to 'submitted' if empty.
func (r *ProblemRepository) Create(ctx context.Context, p *models.Problem) (*models.Problem, error) {
	if p == nil {
		return nil, errors.New("problem is nil")
	}
	if p.Status == "" {
		p.Status = models.ProblemStatusSubmitted
	}
	zones, err := json.Marshal(p.Zones)
	if err != nil {
		return nil, fmt.Errorf("marshal zones: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	// Insert and query back to capture created_at.
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO problems (name, lot_width, lot_height, max_buildings, max_parking_lots, min_parking_pct, zones, status, submitted_by) VALUES (?,?,?,?,?,?,?,?,?)`,
		p.Name, p.LotWidth, p.LotHeight, p.MaxBuildings, p.MaxParkingLots, p.MinParkingPct, string(zones), string(p.Status), p.SubmittedBy)
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
		return nil, fmt.Errorf("created problem not found: id=%d", id)
	}
	return p2, nil
}

// GetByID fetches a problem by its ID.
func (r *ProblemRepository) GetByID(ctx context.Context, id int64) (*models.Problem, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	row := r.db.QueryRowContext(ctx, `SELECT `+problemColumns+` FROM problems WHERE id = ?`, id)
	p, err := scanProblem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// ListBySubmitterPage returns a page of problems for a user ordered by
// created_at desc, id desc. Uses keyset pagination with a numeric cursor
// (created unix seconds, id).
func (r *ProblemRepository) ListBySubmitterPage(ctx context.Context, userID int64, pageSize int, afterSeconds, afterID int64) ([]models.Problem, error) {
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rows *sql.Rows
	var err error
	if afterSeconds > 0 && afterID > 0 {
		// Keyset pagination using numeric time to avoid string-format pitfalls
		rows, err = r.db.QueryContext(ctx, `
SELECT `+problemColumns+`
FROM problems
WHERE submitted_by = ?
  AND (
        CAST(strftime('%s', created_at) AS INTEGER) < ?
        OR (CAST(strftime('%s', created_at) AS INTEGER) = ? AND id < ?)
      )
ORDER BY created_at DESC, id DESC
LIMIT ?`, userID, afterSeconds, afterSeconds, afterID, pageSize)
	} else {
		rows, err = r.db.QueryContext(ctx, `
SELECT `+problemColumns+`
FROM problems
WHERE submitted_by = ?
ORDER BY created_at DESC, id DESC
LIMIT ?`, userID, pageSize)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProblemRows(rows)
}

// UpdateStatus updates the status of a problem unconditionally.
func (r *ProblemRepository) UpdateStatus(ctx context.Context, id int64, status models.ProblemStatus) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `UPDATE problems SET status = ? WHERE id = ?`, string(status), id)
	return err
}

// TransitionStatus moves a problem from one status to another, guarding
// against concurrent solvers: the update only applies when the current
// status matches. Returns ErrStatusConflict otherwise.
func (r *ProblemRepository) TransitionStatus(ctx context.Context, id int64, from, to models.ProblemStatus) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `UPDATE problems SET status = ? WHERE id = ? AND status = ?`,
		string(to), id, string(from))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStatusConflict
	}
	return nil
}

// Withdraw sets the status of the problem to withdrawn. Only submitted
// problems can be withdrawn.
func (r *ProblemRepository) Withdraw(ctx context.Context, id int64) error {
	return r.TransitionStatus(ctx, id, models.ProblemStatusSubmitted, models.ProblemStatusWithdrawn)
}

// Delete removes a problem by ID; plans cascade.
func (r *ProblemRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `DELETE FROM problems WHERE id = ?`, id)
	return err
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProblem(row rowScanner) (*models.Problem, error) {
	var p models.Problem
	var status, zones string
	if err := row.Scan(&p.ID, &p.Name, &p.LotWidth, &p.LotHeight, &p.MaxBuildings, &p.MaxParkingLots,
		&p.MinParkingPct, &zones, &status, &p.CreatedAt, &p.SubmittedBy); err != nil {
		return nil, err
	}
	p.Status = models.ProblemStatus(status)
	if err := json.Unmarshal([]byte(zones), &p.Zones); err != nil {
		return nil, fmt.Errorf("unmarshal zones for problem %d: %w", p.ID, err)
	}
	return &p, nil
}

func scanProblemRows(rows *sql.Rows) ([]models.Problem, error) {
	var out []models.Problem
	for rows.Next() {
		p, err := scanProblem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
