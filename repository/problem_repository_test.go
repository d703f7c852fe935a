package repository

import (
	"context"
	"errors"
	"testing"

	"landLotPlanner/internal/db"
	"landLotPlanner/models"
)

func openProblemRepos(t *testing.T, name string) (*UserRepository, *ProblemRepository) {
	t.Helper()
	d, err := db.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return NewUserRepository(d), NewProblemRepository(d)
}

func TestProblemRepository_CreateAndGet(t *testing.T) {
	users, problems := openProblemRepos(t, "problemrepo")
	ctx := context.Background()

	u, err := users.Create(ctx, "alice")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	p := models.DefaultProblem()
	p.SubmittedBy = u.ID
	created, err := problems.Create(ctx, p)
	if err != nil {
		t.Fatalf("create problem: %v", err)
	}
	if created.ID == 0 || created.Status != models.ProblemStatusSubmitted || created.CreatedAt == "" {
		t.Fatalf("unexpected created problem: %+v", created)
	}
	if len(created.Zones) != 2 || created.Zones[0].Kind != models.ZoneBlocked {
		t.Fatalf("zones not round-tripped: %+v", created.Zones)
	}

	g, err := problems.GetByID(ctx, created.ID)
	if err != nil || g == nil {
		t.Fatalf("get by id: %v %+v", err, g)
	}
	if g.LotWidth != 60 || g.LotHeight != 40 || g.MaxBuildings != 5 {
		t.Fatalf("problem fields lost: %+v", g)
	}

	missing, err := problems.GetByID(ctx, created.ID+100)
	if err != nil || missing != nil {
		t.Fatalf("expected nil for missing problem, got %+v err=%v", missing, err)
	}
}

func TestProblemRepository_StatusTransitions(t *testing.T) {
	users, problems := openProblemRepos(t, "problemstatus")
	ctx := context.Background()

	u, _ := users.Create(ctx, "bob")
	p := models.DefaultProblem()
	p.SubmittedBy = u.ID
	created, err := problems.Create(ctx, p)
	if err != nil {
		t.Fatalf("create problem: %v", err)
	}

	// Guarded transition from the right status succeeds.
	if err := problems.TransitionStatus(ctx, created.ID, models.ProblemStatusSubmitted, models.ProblemStatusSolving); err != nil {
		t.Fatalf("transition submitted->solving: %v", err)
	}
	// Second solver loses the race.
	err = problems.TransitionStatus(ctx, created.ID, models.ProblemStatusSubmitted, models.ProblemStatusSolving)
	if !errors.Is(err, ErrStatusConflict) {
		t.Fatalf("expected ErrStatusConflict, got %v", err)
	}

	// Withdraw only applies to submitted problems.
	if err := problems.Withdraw(ctx, created.ID); !errors.Is(err, ErrStatusConflict) {
		t.Fatalf("expected withdraw conflict while solving, got %v", err)
	}

	if err := problems.UpdateStatus(ctx, created.ID, models.ProblemStatusSolved); err != nil {
		t.Fatalf("update status: %v", err)
	}
	g, _ := problems.GetByID(ctx, created.ID)
	if g.Status != models.ProblemStatusSolved {
		t.Fatalf("status not updated: %+v", g)
	}
}

func TestProblemRepository_ListBySubmitterPage(t *testing.T) {
	users, problems := openProblemRepos(t, "problempage")
	ctx := context.Background()

	u, _ := users.Create(ctx, "carol")
	for i := 0; i < 3; i++ {
		p := models.DefaultProblem()
		p.SubmittedBy = u.ID
		if _, err := problems.Create(ctx, p); err != nil {
			t.Fatalf("create problem %d: %v", i, err)
		}
	}

	page, err := problems.ListBySubmitterPage(ctx, u.ID, 2, 0, 0)
	if err != nil {
		t.Fatalf("list page: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("expected 2 problems, got %d", len(page))
	}
	// Newest first.
	if page[0].ID < page[1].ID {
		t.Fatalf("expected descending ids, got %d then %d", page[0].ID, page[1].ID)
	}

	all, err := problems.ListBySubmitterPage(ctx, u.ID, 10, 0, 0)
	if err != nil || len(all) != 3 {
		t.Fatalf("list all: %v len=%d", err, len(all))
	}
}

func TestProblemRepository_ListAdminFilters(t *testing.T) {
	users, problems := openProblemRepos(t, "problemadmin")
	ctx := context.Background()

	ua, _ := users.Create(ctx, "dan")
	ub, _ := users.Create(ctx, "eve")
	for _, uid := range []int64{ua.ID, ua.ID, ub.ID} {
		p := models.DefaultProblem()
		p.SubmittedBy = uid
		if _, err := problems.Create(ctx, p); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	last, _ := problems.ListBySubmitterPage(ctx, ub.ID, 1, 0, 0)
	if err := problems.UpdateStatus(ctx, last[0].ID, models.ProblemStatusSolved); err != nil {
		t.Fatalf("update status: %v", err)
	}

	bySubmitter, err := problems.ListAdmin(ctx, ListProblemsAdminParams{SubmittedBy: &ua.ID})
	if err != nil || len(bySubmitter) != 2 {
		t.Fatalf("filter by submitter: %v len=%d", err, len(bySubmitter))
	}

	solved, err := problems.ListAdmin(ctx, ListProblemsAdminParams{
		Statuses: []models.ProblemStatus{models.ProblemStatusSolved},
	})
	if err != nil || len(solved) != 1 || solved[0].SubmittedBy != ub.ID {
		t.Fatalf("filter by status: %v %+v", err, solved)
	}
}
