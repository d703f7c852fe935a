package repository

import (
	"context"

	"landLotPlanner/models"
)

// UserRepositoryI defines operations on User entities.
type UserRepositoryI interface {
	Create(ctx context.Context, username string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context, limit, offset int) ([]models.User, error)
}

// ProblemRepositoryI defines operations on Problem entities.
type ProblemRepositoryI interface {
	Create(ctx context.Context, p *models.Problem) (*models.Problem, error)
	GetByID(ctx context.Context, id int64) (*models.Problem, error)
	ListBySubmitterPage(ctx context.Context, userID int64, pageSize int, afterSeconds, afterID int64) ([]models.Problem, error)
	UpdateStatus(ctx context.Context, id int64, status models.ProblemStatus) error
	TransitionStatus(ctx context.Context, id int64, from, to models.ProblemStatus) error
	Withdraw(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// PlanRepositoryI defines operations on Plan entities.
type PlanRepositoryI interface {
	Create(ctx context.Context, pl *models.Plan) (*models.Plan, error)
	GetByID(ctx context.Context, id int64) (*models.Plan, error)
	GetLatestForProblem(ctx context.Context, problemID int64) (*models.Plan, error)
	ListByProblem(ctx context.Context, problemID int64) ([]models.Plan, error)
	Delete(ctx context.Context, id int64) error
}
