// Package memstore provides in-memory implementations of the lead and plan
// services. They back the handler tests and any environment that runs
// without Postgres; the stores are safe for concurrent use.
package memstore

import (
	"context"
	"sort"
	"sync"

	reserbox "github.com/reserbox/reserbox"
)

// LeadService stores leads in a map guarded by a mutex. The duplicate check
// and the insert happen under the same lock, so concurrent duplicates cannot
// both land.
type LeadService struct {
	mu    sync.Mutex
	leads []reserbox.Lead
}

func NewLeadService() *LeadService {
	return &LeadService{}
}

func (ls *LeadService) Create(ctx context.Context, lead reserbox.Lead) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	cutoff := lead.CreatedAt.Add(-reserbox.DedupWindow)
	for _, existing := range ls.leads {
		if existing.CreatedAt.Before(cutoff) {
			continue
		}
		if existing.Email == lead.Email || existing.Phone == lead.Phone {
			return reserbox.ErrDuplicateLead
		}
	}

	ls.leads = append(ls.leads, lead)
	return nil
}

func (ls *LeadService) List(ctx context.Context, status string, limit int) ([]reserbox.Lead, error) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	out := []reserbox.Lead{}
	for _, lead := range ls.leads {
		if status == "" || lead.Status == status {
			out = append(out, lead)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Len reports how many leads have been stored.
func (ls *LeadService) Len() int {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return len(ls.leads)
}

// PlanService keeps the plan catalog in memory, keyed by slug.
type PlanService struct {
	mu    sync.Mutex
	plans map[string]reserbox.Plan
}

func NewPlanService() *PlanService {
	return &PlanService{plans: make(map[string]reserbox.Plan)}
}

func (ps *PlanService) List(ctx context.Context, showAll bool) ([]reserbox.Plan, error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	out := []reserbox.Plan{}
	for _, plan := range ps.plans {
		if showAll || plan.IsVisible {
			out = append(out, plan)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (ps *PlanService) Create(ctx context.Context, plan reserbox.Plan) error {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if _, exists := ps.plans[plan.Slug]; exists {
		return reserbox.ErrDuplicateSlug
	}
	ps.plans[plan.Slug] = plan
	return nil
}

func (ps *PlanService) Seed(ctx context.Context, plans []reserbox.Plan) (reserbox.SeedResult, error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if len(ps.plans) > 0 {
		return reserbox.SeedResult{Seeded: false, Count: len(ps.plans)}, nil
	}
	for _, plan := range plans {
		ps.plans[plan.Slug] = plan
	}
	return reserbox.SeedResult{Seeded: true, Count: len(plans)}, nil
}
