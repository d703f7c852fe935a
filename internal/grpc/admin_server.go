//go:build grpcserver

package grpcserver

import (
	"context"
	"strings"

	plannerv1 "landLotPlanner/api/planner/v1"
	"landLotPlanner/internal/auth"
	"landLotPlanner/models"
	"landLotPlanner/repository"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// AdminServer implements planner.v1.AdminService.
type AdminServer struct {
	plannerv1.UnimplementedAdminServiceServer
	Users    *repository.UserRepository
	Problems *repository.ProblemRepository
	Plans    *repository.PlanRepository
}

// Authentication is centralized in internal/auth.

// ListProblems lists problems across all users with optional filters and cursor pagination.
func (s *AdminServer) ListProblems(ctx context.Context, req *plannerv1.ListProblemsRequest) (*plannerv1.ListProblemsResponse, error) {
	if _, err := auth.RequireAdmin(ctx, s.Users); err != nil {
		return nil, err
	}
	if req == nil {
		req = &plannerv1.ListProblemsRequest{}
	}
	size := int(req.GetPageSize())
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	var afterSec, afterID int64
	if strings.TrimSpace(req.GetPageToken()) != "" {
		if err := decodeCursor(req.GetPageToken(), &afterSec, &afterID); err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid page_token: %v", err)
		}
	}

	// Build filters
	var statuses []models.ProblemStatus
	for _, st := range req.GetStatusFilter() {
		switch st {
		case plannerv1.ProblemStatus_PROBLEM_STATUS_SUBMITTED:
			statuses = append(statuses, models.ProblemStatusSubmitted)
		case plannerv1.ProblemStatus_PROBLEM_STATUS_SOLVING:
			statuses = append(statuses, models.ProblemStatusSolving)
		case plannerv1.ProblemStatus_PROBLEM_STATUS_SOLVED:
			statuses = append(statuses, models.ProblemStatusSolved)
		case plannerv1.ProblemStatus_PROBLEM_STATUS_FAILED:
			statuses = append(statuses, models.ProblemStatusFailed)
		case plannerv1.ProblemStatus_PROBLEM_STATUS_WITHDRAWN:
			statuses = append(statuses, models.ProblemStatusWithdrawn)
		}
	}
	var submittedBy *int64
	if req.SubmittedBy != nil {
		v := req.GetSubmittedBy()
		submittedBy = &v
	}
	var from, to *string
	if req.CreatedFrom != nil {
		v := strings.TrimSpace(req.GetCreatedFrom())
		if v != "" {
			from = &v
		}
	}
	if req.CreatedTo != nil {
		v := strings.TrimSpace(req.GetCreatedTo())
		if v != "" {
			to = &v
		}
	}

	list, err := s.Problems.ListAdmin(ctx, repository.ListProblemsAdminParams{
		Statuses:     statuses,
		SubmittedBy:  submittedBy,
		CreatedFrom:  from,
		CreatedTo:    to,
		PageSize:     size,
		AfterSeconds: afterSec,
		AfterID:      afterID,
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "list problems: %v", err)
	}
	resp := &plannerv1.ListProblemsResponse{}
	resp.Problems = make([]*plannerv1.Problem, 0, len(list))
	var lastSec, lastID int64
	for i := range list {
		resp.Problems = append(resp.Problems, toProtoProblem(&list[i]))
		sec, err := createdToUnixSeconds(list[i].CreatedAt)
		if err == nil {
			lastSec = sec
			lastID = list[i].ID
		}
	}
	if len(list) == size && lastID != 0 {
		resp.NextPageToken = encodeCursor(lastSec, lastID)
	}
	return resp, nil
}

// ListUsers lists users with simple limit/offset pagination.
func (s *AdminServer) ListUsers(ctx context.Context, req *plannerv1.ListUsersRequest) (*plannerv1.ListUsersResponse, error) {
	if _, err := auth.RequireAdmin(ctx, s.Users); err != nil {
		return nil, err
	}
	if req == nil {
		req = &plannerv1.ListUsersRequest{}
	}
	size := int(req.GetPageSize())
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	offset := int(req.GetOffset())
	if offset < 0 {
		offset = 0
	}

	list, err := s.Users.List(ctx, size, offset)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "list users: %v", err)
	}
	out := make([]*plannerv1.User, 0, len(list))
	for i := range list {
		out = append(out, toProtoUser(&list[i]))
	}
	return &plannerv1.ListUsersResponse{Users: out}, nil
}

// PromoteUser grants the admin role to an existing user.
func (s *AdminServer) PromoteUser(ctx context.Context, req *plannerv1.PromoteUserRequest) (*plannerv1.PromoteUserResponse, error) {
	if _, err := auth.RequireAdmin(ctx, s.Users); err != nil {
		return nil, err
	}
	username := strings.TrimSpace(req.GetUsername())
	if username == "" {
		return nil, status.Error(codes.InvalidArgument, "username is required")
	}
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "get user: %v", err)
	}
	if u == nil {
		return nil, status.Error(codes.NotFound, "user not found")
	}
	if err := s.Users.UpdateRoleByUsername(ctx, username, "admin"); err != nil {
		return nil, status.Errorf(codes.Internal, "update role: %v", err)
	}
	u, err = s.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "get user: %v", err)
	}
	return &plannerv1.PromoteUserResponse{User: toProtoUser(u)}, nil
}

// DeletePlan removes a stored plan.
func (s *AdminServer) DeletePlan(ctx context.Context, req *plannerv1.DeletePlanRequest) (*plannerv1.DeletePlanResponse, error) {
	if _, err := auth.RequireAdmin(ctx, s.Users); err != nil {
		return nil, err
	}
	if req == nil || req.GetPlanId() == 0 {
		return nil, status.Error(codes.InvalidArgument, "plan_id is required")
	}
	pl, err := s.Plans.GetByID(ctx, req.GetPlanId())
	if err != nil {
		return nil, status.Errorf(codes.Internal, "get plan: %v", err)
	}
	if pl == nil {
		return nil, status.Error(codes.NotFound, "plan not found")
	}
	if err := s.Plans.Delete(ctx, req.GetPlanId()); err != nil {
		return nil, status.Errorf(codes.Internal, "delete plan: %v", err)
	}
	return &plannerv1.DeletePlanResponse{}, nil
}

func toProtoUser(u *models.User) *plannerv1.User {
	if u == nil {
		return nil
	}
	return &plannerv1.User{Id: u.ID, Username: u.Username, Role: u.Role}
}
