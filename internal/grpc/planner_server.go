//go:build grpcserver

package grpcserver

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	plannerv1 "landLotPlanner/api/planner/v1"
	"landLotPlanner/internal/auth"
	"landLotPlanner/internal/config"
	"landLotPlanner/internal/geom"
	"landLotPlanner/internal/render"
	"landLotPlanner/internal/solver"
	"landLotPlanner/models"
	"landLotPlanner/repository"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Server bundles dependencies and implements the PlannerService.
type Server struct {
	plannerv1.UnimplementedPlannerServiceServer
	Users    *repository.UserRepository
	Problems *repository.ProblemRepository
	Plans    *repository.PlanRepository
	Solver   config.SolverConfig
}

const (
	maxPageSize      = 100 // Maximum allowed page size for list operations.
	defaultPageSize  = 20  // Default page size for list operations.
	cursorSeparator  = "|" // Separator for cursor components.
	sqliteDateFormat = "2006-01-02 15:04:05"
)

// Authentication helpers centralized in internal/auth.

// resolveCurrentUser retrieves the authenticated user from the database.
func (s *Server) resolveCurrentUser(ctx context.Context, p *auth.Principal) (*models.User, error) {
	u, err := s.Users.GetByUsername(ctx, p.Name)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "get user: %v", err)
	}
	if u == nil {
		return nil, status.Error(codes.NotFound, "user not found")
	}
	return u, nil
}

// getOwnedProblem fetches a problem and verifies the caller owns it.
func (s *Server) getOwnedProblem(ctx context.Context, u *models.User, problemID int64) (*models.Problem, error) {
	prob, err := s.Problems.GetByID(ctx, problemID)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "get problem: %v", err)
	}
	if prob == nil {
		return nil, status.Error(codes.NotFound, "problem not found")
	}
	if prob.SubmittedBy != u.ID {
		return nil, status.Error(codes.PermissionDenied, "cannot access another user's problem")
	}
	return prob, nil
}

// SubmitProblem validates and stores a new planning problem for the authenticated user.
func (s *Server) SubmitProblem(ctx context.Context, req *plannerv1.SubmitProblemRequest) (*plannerv1.SubmitProblemResponse, error) {
	p, err := auth.RequireEndUserOrAdmin(ctx)
	if err != nil {
		return nil, err
	}

	u, err := s.resolveCurrentUser(ctx, p)
	if err != nil {
		return nil, err
	}

	prob := problemFromReq(u.ID, req)
	if err := solver.Validate(prob); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid problem: %v", err)
	}

	created, err := s.Problems.Create(ctx, prob)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "create problem: %v", err)
	}

	return &plannerv1.SubmitProblemResponse{Problem: toProtoProblem(created)}, nil
}

// GetProblem returns one of the caller's problems by ID.
func (s *Server) GetProblem(ctx context.Context, req *plannerv1.GetProblemRequest) (*plannerv1.GetProblemResponse, error) {
	if req == nil || req.ProblemId == 0 {
		return nil, status.Error(codes.InvalidArgument, "problem_id is required")
	}

	p, err := auth.RequireEndUserOrAdmin(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.resolveCurrentUser(ctx, p)
	if err != nil {
		return nil, err
	}
	prob, err := s.getOwnedProblem(ctx, u, req.ProblemId)
	if err != nil {
		return nil, err
	}
	return &plannerv1.GetProblemResponse{Problem: toProtoProblem(prob)}, nil
}

// ListMyProblems retrieves paginated problems for the authenticated user.
func (s *Server) ListMyProblems(ctx context.Context, req *plannerv1.ListMyProblemsRequest) (*plannerv1.ListMyProblemsResponse, error) {
	p, err := auth.RequireEndUserOrAdmin(ctx)
	if err != nil {
		return nil, err
	}

	u, err := s.resolveCurrentUser(ctx, p)
	if err != nil {
		return nil, err
	}

	// Extract and validate pagination parameters.
	pageSize := int32(defaultPageSize)
	pageToken := ""
	if req != nil {
		if req.GetPageSize() > 0 {
			pageSize = req.GetPageSize()
		}
		pageToken = req.GetPageToken()
	}
	if pageSize > int32(maxPageSize) {
		pageSize = int32(maxPageSize)
	}

	// Decode cursor if provided.
	var afterSeconds int64
	var afterID int64
	if pageToken != "" {
		if err := decodeCursor(pageToken, &afterSeconds, &afterID); err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid page_token: %v", err)
		}
	}

	list, err := s.Problems.ListBySubmitterPage(ctx, u.ID, int(pageSize), afterSeconds, afterID)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "list problems: %v", err)
	}

	out := make([]*plannerv1.Problem, 0, len(list))
	for i := range list {
		out = append(out, toProtoProblem(&list[i]))
	}

	// Build next page token if we have a full page.
	nextToken := ""
	if int32(len(list)) == pageSize && len(list) > 0 {
		last := list[len(list)-1]
		sec, err := createdToUnixSeconds(last.CreatedAt)
		if err == nil {
			nextToken = encodeCursor(sec, last.ID)
		}
	}

	return &plannerv1.ListMyProblemsResponse{Problems: out, NextPageToken: nextToken}, nil
}

// SolveProblem runs the solver on a submitted problem and stores the plan.
// The problem moves submitted -> solving -> solved (or failed).
func (s *Server) SolveProblem(ctx context.Context, req *plannerv1.SolveProblemRequest) (*plannerv1.SolveProblemResponse, error) {
	if req == nil || req.ProblemId == 0 {
		return nil, status.Error(codes.InvalidArgument, "problem_id is required")
	}

	p, err := auth.RequireEndUserOrAdmin(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.resolveCurrentUser(ctx, p)
	if err != nil {
		return nil, err
	}
	prob, err := s.getOwnedProblem(ctx, u, req.ProblemId)
	if err != nil {
		return nil, err
	}

	// Claim the problem; a concurrent solver loses the transition.
	if err := s.Problems.TransitionStatus(ctx, prob.ID, models.ProblemStatusSubmitted, models.ProblemStatusSolving); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, status.Errorf(codes.FailedPrecondition, "problem is not in %s status", models.ProblemStatusSubmitted)
		}
		return nil, status.Errorf(codes.Internal, "transition status: %v", err)
	}

	started := time.Now()
	res, err := solver.Solve(ctx, prob, solver.Options{
		TimeLimit: s.Solver.Budget(),
		Seed:      s.Solver.Seed,
	})
	if err != nil {
		_ = s.Problems.UpdateStatus(ctx, prob.ID, models.ProblemStatusFailed)
		return nil, status.Errorf(codes.Internal, "solve: %v", err)
	}

	planStatus := models.PlanStatusFeasible
	if res.Status == solver.StatusOptimal {
		planStatus = models.PlanStatusOptimal
	}
	plan, err := s.Plans.Create(ctx, &models.Plan{
		ProblemID:   prob.ID,
		Status:      planStatus,
		Yield:       res.Yield,
		Layout:      res.Layout,
		SolveMillis: time.Since(started).Milliseconds(),
		Seed:        s.Solver.Seed,
	})
	if err != nil {
		_ = s.Problems.UpdateStatus(ctx, prob.ID, models.ProblemStatusFailed)
		return nil, status.Errorf(codes.Internal, "store plan: %v", err)
	}

	if err := s.Problems.UpdateStatus(ctx, prob.ID, models.ProblemStatusSolved); err != nil {
		return nil, status.Errorf(codes.Internal, "update status: %v", err)
	}
	prob, err = s.Problems.GetByID(ctx, prob.ID)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "get problem: %v", err)
	}

	return &plannerv1.SolveProblemResponse{Problem: toProtoProblem(prob), Plan: toProtoPlan(plan)}, nil
}

// getOwnedPlan fetches a plan and verifies the caller owns its problem.
func (s *Server) getOwnedPlan(ctx context.Context, u *models.User, planID int64) (*models.Plan, *models.Problem, error) {
	plan, err := s.Plans.GetByID(ctx, planID)
	if err != nil {
		return nil, nil, status.Errorf(codes.Internal, "get plan: %v", err)
	}
	if plan == nil {
		return nil, nil, status.Error(codes.NotFound, "plan not found")
	}
	prob, err := s.getOwnedProblem(ctx, u, plan.ProblemID)
	if err != nil {
		return nil, nil, err
	}
	return plan, prob, nil
}

// GetPlan returns a stored plan belonging to one of the caller's problems.
func (s *Server) GetPlan(ctx context.Context, req *plannerv1.GetPlanRequest) (*plannerv1.GetPlanResponse, error) {
	if req == nil || req.PlanId == 0 {
		return nil, status.Error(codes.InvalidArgument, "plan_id is required")
	}
	p, err := auth.RequireEndUserOrAdmin(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.resolveCurrentUser(ctx, p)
	if err != nil {
		return nil, err
	}
	plan, _, err := s.getOwnedPlan(ctx, u, req.PlanId)
	if err != nil {
		return nil, err
	}
	return &plannerv1.GetPlanResponse{Plan: toProtoPlan(plan)}, nil
}

// GetLatestPlan returns the most recent plan for one of the caller's problems.
func (s *Server) GetLatestPlan(ctx context.Context, req *plannerv1.GetLatestPlanRequest) (*plannerv1.GetLatestPlanResponse, error) {
	if req == nil || req.ProblemId == 0 {
		return nil, status.Error(codes.InvalidArgument, "problem_id is required")
	}
	p, err := auth.RequireEndUserOrAdmin(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.resolveCurrentUser(ctx, p)
	if err != nil {
		return nil, err
	}
	if _, err := s.getOwnedProblem(ctx, u, req.ProblemId); err != nil {
		return nil, err
	}

	plan, err := s.Plans.GetLatestForProblem(ctx, req.ProblemId)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "get latest plan: %v", err)
	}
	if plan == nil {
		return nil, status.Error(codes.NotFound, "problem has no plans")
	}
	return &plannerv1.GetLatestPlanResponse{Plan: toProtoPlan(plan)}, nil
}

// ListPlans returns every stored plan for one of the caller's problems,
// newest first.
func (s *Server) ListPlans(ctx context.Context, req *plannerv1.ListPlansRequest) (*plannerv1.ListPlansResponse, error) {
	if req == nil || req.ProblemId == 0 {
		return nil, status.Error(codes.InvalidArgument, "problem_id is required")
	}
	p, err := auth.RequireEndUserOrAdmin(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.resolveCurrentUser(ctx, p)
	if err != nil {
		return nil, err
	}
	if _, err := s.getOwnedProblem(ctx, u, req.ProblemId); err != nil {
		return nil, err
	}

	list, err := s.Plans.ListByProblem(ctx, req.ProblemId)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "list plans: %v", err)
	}
	out := make([]*plannerv1.Plan, 0, len(list))
	for i := range list {
		out = append(out, toProtoPlan(&list[i]))
	}
	return &plannerv1.ListPlansResponse{Plans: out}, nil
}

// RenderPlan returns an SVG rendering of a stored plan.
func (s *Server) RenderPlan(ctx context.Context, req *plannerv1.RenderPlanRequest) (*plannerv1.RenderPlanResponse, error) {
	if req == nil || req.PlanId == 0 {
		return nil, status.Error(codes.InvalidArgument, "plan_id is required")
	}
	p, err := auth.RequireEndUserOrAdmin(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.resolveCurrentUser(ctx, p)
	if err != nil {
		return nil, err
	}
	plan, prob, err := s.getOwnedPlan(ctx, u, req.PlanId)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := render.SVG(&buf, prob, &plan.Layout); err != nil {
		return nil, status.Errorf(codes.Internal, "render: %v", err)
	}
	return &plannerv1.RenderPlanResponse{Svg: buf.Bytes()}, nil
}

// WithdrawProblem withdraws one of the caller's submitted problems.
func (s *Server) WithdrawProblem(ctx context.Context, req *plannerv1.WithdrawProblemRequest) (*plannerv1.WithdrawProblemResponse, error) {
	if req == nil || req.ProblemId == 0 {
		return nil, status.Error(codes.InvalidArgument, "problem_id is required")
	}

	p, err := auth.RequireEndUserOrAdmin(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.resolveCurrentUser(ctx, p)
	if err != nil {
		return nil, err
	}
	if _, err := s.getOwnedProblem(ctx, u, req.ProblemId); err != nil {
		return nil, err
	}

	if err := s.Problems.Withdraw(ctx, req.ProblemId); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, status.Error(codes.FailedPrecondition, "only submitted problems can be withdrawn")
		}
		return nil, status.Errorf(codes.Internal, "withdraw: %v", err)
	}

	prob, err := s.Problems.GetByID(ctx, req.ProblemId)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "get problem: %v", err)
	}
	return &plannerv1.WithdrawProblemResponse{Problem: toProtoProblem(prob)}, nil
}

// problemFromReq builds a models.Problem from a SubmitProblemRequest proto message.
func problemFromReq(userID int64, req *plannerv1.SubmitProblemRequest) *models.Problem {
	prob := &models.Problem{
		Name:           req.GetName(),
		LotWidth:       int(req.GetLotWidth()),
		LotHeight:      int(req.GetLotHeight()),
		MaxBuildings:   int(req.GetMaxBuildings()),
		MaxParkingLots: int(req.GetMaxParkingLots()),
		MinParkingPct:  int(req.GetMinParkingPct()),
		SubmittedBy:    userID,
		Status:         models.ProblemStatusSubmitted,
	}
	for _, z := range req.GetZones() {
		prob.Zones = append(prob.Zones, models.Zone{
			Kind: zoneKindFromProto(z.GetKind()),
			Rect: rectFromProto(z.GetRect()),
		})
	}
	return prob
}

func rectFromProto(r *plannerv1.Rect) geom.Rect {
	if r == nil {
		return geom.Rect{}
	}
	return geom.Rect{X: int(r.GetX()), Y: int(r.GetY()), W: int(r.GetW()), H: int(r.GetH())}
}

func toProtoRect(r geom.Rect) *plannerv1.Rect {
	return &plannerv1.Rect{X: int32(r.X), Y: int32(r.Y), W: int32(r.W), H: int32(r.H)}
}

func zoneKindFromProto(k plannerv1.ZoneKind) models.ZoneKind {
	switch k {
	case plannerv1.ZoneKind_ZONE_KIND_BLOCKED:
		return models.ZoneBlocked
	case plannerv1.ZoneKind_ZONE_KIND_NO_BUILD:
		return models.ZoneNoBuild
	default:
		return ""
	}
}

func toProtoZoneKind(k models.ZoneKind) plannerv1.ZoneKind {
	switch k {
	case models.ZoneBlocked:
		return plannerv1.ZoneKind_ZONE_KIND_BLOCKED
	case models.ZoneNoBuild:
		return plannerv1.ZoneKind_ZONE_KIND_NO_BUILD
	default:
		return plannerv1.ZoneKind_ZONE_KIND_UNSPECIFIED
	}
}

// toProtoProblem converts a models.Problem to a proto Problem message.
func toProtoProblem(p *models.Problem) *plannerv1.Problem {
	if p == nil {
		return nil
	}
	out := &plannerv1.Problem{
		Id:             p.ID,
		Name:           p.Name,
		LotWidth:       int32(p.LotWidth),
		LotHeight:      int32(p.LotHeight),
		MaxBuildings:   int32(p.MaxBuildings),
		MaxParkingLots: int32(p.MaxParkingLots),
		MinParkingPct:  int32(p.MinParkingPct),
		Status:         toProtoProblemStatus(p.Status),
		SubmittedBy:    p.SubmittedBy,
		CreatedAt:      createdToTimestamp(p.CreatedAt),
	}
	for _, z := range p.Zones {
		out.Zones = append(out.Zones, &plannerv1.Zone{Kind: toProtoZoneKind(z.Kind), Rect: toProtoRect(z.Rect)})
	}
	return out
}

// toProtoPlan converts a models.Plan to a proto Plan message.
func toProtoPlan(pl *models.Plan) *plannerv1.Plan {
	if pl == nil {
		return nil
	}
	layout := &plannerv1.Layout{Park: toProtoRect(pl.Layout.Park)}
	for _, b := range pl.Layout.Buildings {
		layout.Buildings = append(layout.Buildings, toProtoRect(b))
	}
	for _, p := range pl.Layout.ParkingLots {
		layout.ParkingLots = append(layout.ParkingLots, toProtoRect(p))
	}
	return &plannerv1.Plan{
		Id:        pl.ID,
		ProblemId: pl.ProblemID,
		Status:    toProtoPlanStatus(pl.Status),
		Yield:     int64(pl.Yield),
		Layout:    layout,
		SolveMs:   pl.SolveMillis,
		Seed:      pl.Seed,
		CreatedAt: createdToTimestamp(pl.CreatedAt),
	}
}

// toProtoProblemStatus converts a models.ProblemStatus to a proto enum.
func toProtoProblemStatus(s models.ProblemStatus) plannerv1.ProblemStatus {
	switch s {
	case models.ProblemStatusSubmitted:
		return plannerv1.ProblemStatus_PROBLEM_STATUS_SUBMITTED
	case models.ProblemStatusSolving:
		return plannerv1.ProblemStatus_PROBLEM_STATUS_SOLVING
	case models.ProblemStatusSolved:
		return plannerv1.ProblemStatus_PROBLEM_STATUS_SOLVED
	case models.ProblemStatusFailed:
		return plannerv1.ProblemStatus_PROBLEM_STATUS_FAILED
	case models.ProblemStatusWithdrawn:
		return plannerv1.ProblemStatus_PROBLEM_STATUS_WITHDRAWN
	default:
		return plannerv1.ProblemStatus_PROBLEM_STATUS_UNSPECIFIED
	}
}

func toProtoPlanStatus(s models.PlanStatus) plannerv1.PlanStatus {
	switch s {
	case models.PlanStatusOptimal:
		return plannerv1.PlanStatus_PLAN_STATUS_OPTIMAL
	case models.PlanStatusFeasible:
		return plannerv1.PlanStatus_PLAN_STATUS_FEASIBLE
	default:
		return plannerv1.PlanStatus_PLAN_STATUS_UNSPECIFIED
	}
}

// encodeCursor builds an opaque next_page_token from creation unix seconds and problem id.
func encodeCursor(seconds int64, id int64) string {
	raw := strconv.FormatInt(seconds, 10) + cursorSeparator + strconv.FormatInt(id, 10)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// decodeCursor parses an opaque page_token into creation unix seconds and problem id.
func decodeCursor(token string, seconds *int64, id *int64) error {
	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return fmt.Errorf("base64: %w", err)
	}
	parts := strings.SplitN(string(b), cursorSeparator, 2)
	if len(parts) != 2 {
		return fmt.Errorf("invalid cursor format")
	}
	sec, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return fmt.Errorf("parse seconds: %w", err)
	}
	pid, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return fmt.Errorf("parse id: %w", err)
	}
	*seconds = sec
	*id = pid
	return nil
}

// createdToUnixSeconds parses creation dates into unix seconds.
// Supports RFC3339 format (e.g., 2006-01-02T15:04:05Z) and SQLite CURRENT_TIMESTAMP format.
func createdToUnixSeconds(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty created_at")
	}

	// Try RFC3339 first.
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Unix(), nil
	}

	// Try SQLite CURRENT_TIMESTAMP default format (UTC).
	if t, err := time.ParseInLocation(sqliteDateFormat, s, time.UTC); err == nil {
		return t.Unix(), nil
	}

	return 0, fmt.Errorf("unsupported created_at format: %q", s)
}

// createdToTimestamp converts a stored creation date to a proto timestamp,
// nil when the date cannot be parsed.
func createdToTimestamp(s string) *timestamppb.Timestamp {
	sec, err := createdToUnixSeconds(s)
	if err != nil {
		return nil
	}
	return timestamppb.New(time.Unix(sec, 0).UTC())
}
