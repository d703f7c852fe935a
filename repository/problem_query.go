package repository

import (
	"context"
	"strings"
	"time"

	"landLotPlanner/models"
)

// ListProblemsAdminParams represents filters and pagination for ListAdmin.
type ListProblemsAdminParams struct {
	Statuses     []models.ProblemStatus
	SubmittedBy  *int64
	CreatedFrom  *string // optional inclusive lower bound on created_at
	CreatedTo    *string // optional inclusive upper bound on created_at
	PageSize     int
	AfterSeconds int64 // keyset cursor: created_at unix seconds
	AfterID      int64 // keyset cursor: problem id
}

// ListAdmin returns a page of problems across all users with optional
// status, submitter, and creation-window filters, ordered by created_at
// desc, id desc with keyset pagination.
func (r *ProblemRepository) ListAdmin(ctx context.Context, params ListProblemsAdminParams) ([]models.Problem, error) {
	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var sb strings.Builder
	sb.WriteString(`SELECT ` + problemColumns + ` FROM problems WHERE 1=1`)
	var args []any

	if len(params.Statuses) > 0 {
		sb.WriteString(` AND status IN (`)
		for i, st := range params.Statuses {
			if i > 0 {
				sb.WriteString(",")
			}
			sb.WriteString("?")
			args = append(args, string(st))
		}
		sb.WriteString(`)`)
	}
	if params.SubmittedBy != nil {
		sb.WriteString(` AND submitted_by = ?`)
		args = append(args, *params.SubmittedBy)
	}
	if params.CreatedFrom != nil {
		sb.WriteString(` AND created_at >= ?`)
		args = append(args, *params.CreatedFrom)
	}
	if params.CreatedTo != nil {
		sb.WriteString(` AND created_at <= ?`)
		args = append(args, *params.CreatedTo)
	}
	if params.AfterSeconds > 0 && params.AfterID > 0 {
		sb.WriteString(` AND (
        CAST(strftime('%s', created_at) AS INTEGER) < ?
        OR (CAST(strftime('%s', created_at) AS INTEGER) = ? AND id < ?)
      )`)
		args = append(args, params.AfterSeconds, params.AfterSeconds, params.AfterID)
	}
	sb.WriteString(` ORDER BY created_at DESC, id DESC LIMIT ?`)
	args = append(args, pageSize)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProblemRows(rows)
}
