package handler

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	reserbox "github.com/reserbox/reserbox"
)

type PlanHandler struct {
	service reserbox.PlanService
	log     *zap.SugaredLogger
}

func NewPlanHandler(service reserbox.PlanService, log *zap.SugaredLogger) *PlanHandler {
	return &PlanHandler{
		service: service,
		log:     log,
	}
}

// List returns visible plans ordered for display. ?all=true includes hidden
// plans, for administrative use.
func (ph PlanHandler) List(rw http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	showAll := r.URL.Query().Get("all") == "true"

	plans, err := ph.service.List(ctx, showAll)
	if err != nil {
		ph.log.Errorw("plans.List", "error", err.Error())
		respondErr(ctx, rw, http.StatusInternalServerError, errInternal)
		return
	}

	respond(ctx, rw, http.StatusOK, plans)
}

// Create inserts a new plan. Administrative; duplicate slugs are a conflict.
func (ph PlanHandler) Create(rw http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var plan reserbox.Plan
	if err := decode(r, &plan); err != nil {
		ph.log.Errorw("plans.Create", "error", err.Error())
		respondErr(ctx, rw, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	if err := plan.Validate(); err != nil {
		respondErr(ctx, rw, http.StatusBadRequest, err)
		return
	}

	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	if err := ph.service.Create(ctx, plan); err != nil {
		switch {
		case errors.Is(err, reserbox.ErrDuplicateSlug):
			respondErr(ctx, rw, http.StatusConflict, err)
		default:
			ph.log.Errorw("plans.Create", "error", err.Error())
			respondErr(ctx, rw, http.StatusInternalServerError, errInternal)
		}
		return
	}

	respond(ctx, rw, http.StatusCreated, plan)
}

// Seed populates the default tiers when the catalog is empty; otherwise it
// reports the existing count and changes nothing.
func (ph PlanHandler) Seed(rw http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	now := time.Now().UTC()
	plans := reserbox.DefaultPlans()
	for i := range plans {
		plans[i].CreatedAt = now
		plans[i].UpdatedAt = now
	}

	result, err := ph.service.Seed(ctx, plans)
	if err != nil {
		ph.log.Errorw("plans.Seed", "error", err.Error())
		respondErr(ctx, rw, http.StatusInternalServerError, errInternal)
		return
	}

	respond(ctx, rw, http.StatusOK, result)
}
