package repository

import (
	"context"
	"testing"

	"landLotPlanner/internal/db"
	"landLotPlanner/internal/geom"
	"landLotPlanner/models"
)

func seedProblem(t *testing.T, users *UserRepository, problems *ProblemRepository) *models.Problem {
	t.Helper()
	ctx := context.Background()
	u, err := users.Create(ctx, "planner")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	p := models.DefaultProblem()
	p.SubmittedBy = u.ID
	created, err := problems.Create(ctx, p)
	if err != nil {
		t.Fatalf("create problem: %v", err)
	}
	return created
}

func TestPlanRepository_CreateAndRoundtrip(t *testing.T) {
	d, err := db.Open("file:planrepo?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	users := NewUserRepository(d)
	problems := NewProblemRepository(d)
	plans := NewPlanRepository(d)
	ctx := context.Background()

	prob := seedProblem(t, users, problems)

	layout := models.Layout{
		Buildings:   []geom.Rect{{X: 0, Y: 0, W: 10, H: 10}, {}},
		ParkingLots: []geom.Rect{{X: 40, Y: 30, W: 5, H: 2}},
		Park:        geom.Rect{X: 20, Y: 0, W: 10, H: 10},
	}
	created, err := plans.Create(ctx, &models.Plan{
		ProblemID:   prob.ID,
		Status:      models.PlanStatusFeasible,
		Yield:       layout.Yield(),
		Layout:      layout,
		SolveMillis: 123,
		Seed:        7,
	})
	if err != nil {
		t.Fatalf("create plan: %v", err)
	}
	if created.ID == 0 || created.CreatedAt == "" {
		t.Fatalf("unexpected created plan: %+v", created)
	}
	if created.Yield != 100 || created.Seed != 7 || created.SolveMillis != 123 {
		t.Fatalf("plan fields lost: %+v", created)
	}
	if len(created.Layout.Buildings) != 2 || created.Layout.Park.W != 10 {
		t.Fatalf("layout not round-tripped: %+v", created.Layout)
	}

	g, err := plans.GetByID(ctx, created.ID)
	if err != nil || g == nil || g.Layout.ParkingLots[0].X != 40 {
		t.Fatalf("get by id: %v %+v", err, g)
	}

	missing, err := plans.GetByID(ctx, created.ID+100)
	if err != nil || missing != nil {
		t.Fatalf("expected nil for missing plan, got %+v err=%v", missing, err)
	}
}

func TestPlanRepository_LatestListDelete(t *testing.T) {
	d, err := db.Open("file:planlatest?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	users := NewUserRepository(d)
	problems := NewProblemRepository(d)
	plans := NewPlanRepository(d)
	ctx := context.Background()

	prob := seedProblem(t, users, problems)

	none, err := plans.GetLatestForProblem(ctx, prob.ID)
	if err != nil || none != nil {
		t.Fatalf("expected no plan yet, got %+v err=%v", none, err)
	}

	var last *models.Plan
	for i := 0; i < 3; i++ {
		last, err = plans.Create(ctx, &models.Plan{
			ProblemID: prob.ID,
			Status:    models.PlanStatusFeasible,
			Yield:     100 + i,
			Layout:    models.Layout{Buildings: []geom.Rect{{W: 10, H: 10}}},
		})
		if err != nil {
			t.Fatalf("create plan %d: %v", i, err)
		}
	}

	latest, err := plans.GetLatestForProblem(ctx, prob.ID)
	if err != nil || latest == nil {
		t.Fatalf("latest: %v %+v", err, latest)
	}
	if latest.ID != last.ID {
		t.Fatalf("expected latest plan id %d, got %d", last.ID, latest.ID)
	}

	all, err := plans.ListByProblem(ctx, prob.ID)
	if err != nil || len(all) != 3 {
		t.Fatalf("list: %v len=%d", err, len(all))
	}
	if all[0].ID != last.ID {
		t.Fatalf("expected newest first, got id %d", all[0].ID)
	}

	if err := plans.Delete(ctx, last.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	remaining, _ := plans.ListByProblem(ctx, prob.ID)
	if len(remaining) != 2 {
		t.Fatalf("expected 2 plans after delete, got %d", len(remaining))
	}

	// Plans cascade when the problem goes away.
	if err := problems.Delete(ctx, prob.ID); err != nil {
		t.Fatalf("delete problem: %v", err)
	}
	gone, _ := plans.ListByProblem(ctx, prob.ID)
	if len(gone) != 0 {
		t.Fatalf("expected cascade delete, got %d plans", len(gone))
	}
}
