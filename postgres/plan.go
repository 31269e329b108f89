package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
	reserbox "github.com/reserbox/reserbox"
)

// lib/pq errorCodeNames
// https://github.com/lib/pq/blob/master/error.go#L178
const uniqueViolation = "23505"

type PlanService struct {
	db *sql.DB
}

func NewPlanService(db *sql.DB) reserbox.PlanService {
	return &PlanService{
		db: db,
	}
}

const planColumns = `
	slug, name, subtitle, description, price, currency, period,
	min_employees, max_employees, features, highlighted, highlight_label,
	cta_text, is_visible, sort_order, created_at, updated_at`

// List returns visible plans ordered by sort_order, or every plan when
// showAll is set.
func (ps PlanService) List(ctx context.Context, showAll bool) ([]reserbox.Plan, error) {
	query := `
	SELECT` + planColumns + `
	FROM plans
	WHERE ($1 OR is_visible)
	ORDER BY sort_order ASC`

	rows, err := ps.db.QueryContext(ctx, query, showAll)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()

	plans := []reserbox.Plan{}
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}

	return plans, nil
}

// Create inserts a plan. Slug uniqueness is enforced by the primary key, so
// a concurrent duplicate cannot slip past the check.
func (ps PlanService) Create(ctx context.Context, plan reserbox.Plan) error {
	features, err := json.Marshal(plan.Features)
	if err != nil {
		return fmt.Errorf("encoding plan features: %w", err)
	}

	query := `
	INSERT INTO plans (` + planColumns + `
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
	)`

	_, err = ps.db.ExecContext(ctx, query,
		plan.Slug,
		plan.Name,
		plan.Subtitle,
		plan.Description,
		plan.Price,
		plan.Currency,
		plan.Period,
		plan.MinEmployees,
		plan.MaxEmployees,
		features,
		plan.Highlighted,
		plan.HighlightLabel,
		plan.CTAText,
		plan.IsVisible,
		plan.Order,
		plan.CreatedAt,
		plan.UpdatedAt,
	)
	if err != nil {
		if pqerr, ok := err.(*pq.Error); ok && pqerr.Code == uniqueViolation {
			return reserbox.ErrDuplicateSlug
		}
		return fmt.Errorf("inserting plan: %w", err)
	}
	return nil
}

// Seed populates the catalog only when it is empty. The count and inserts
// share one transaction so two seeders cannot both find an empty table.
func (ps PlanService) Seed(ctx context.Context, plans []reserbox.Plan) (reserbox.SeedResult, error) {
	tx, err := ps.db.BeginTx(ctx, nil)
	if err != nil {
		return reserbox.SeedResult{}, fmt.Errorf("seeding plans: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM plans`).Scan(&count); err != nil {
		return reserbox.SeedResult{}, fmt.Errorf("counting plans: %w", err)
	}
	if count > 0 {
		return reserbox.SeedResult{Seeded: false, Count: count}, nil
	}

	query := `
	INSERT INTO plans (` + planColumns + `
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
	)`

	for _, plan := range plans {
		features, err := json.Marshal(plan.Features)
		if err != nil {
			return reserbox.SeedResult{}, fmt.Errorf("encoding plan features: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query,
			plan.Slug,
			plan.Name,
			plan.Subtitle,
			plan.Description,
			plan.Price,
			plan.Currency,
			plan.Period,
			plan.MinEmployees,
			plan.MaxEmployees,
			features,
			plan.Highlighted,
			plan.HighlightLabel,
			plan.CTAText,
			plan.IsVisible,
			plan.Order,
			plan.CreatedAt,
			plan.UpdatedAt,
		); err != nil {
			return reserbox.SeedResult{}, fmt.Errorf("seeding plan %s: %w", plan.Slug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return reserbox.SeedResult{}, fmt.Errorf("seeding plans: %w", err)
	}
	return reserbox.SeedResult{Seeded: true, Count: len(plans)}, nil
}

func scanPlan(rows *sql.Rows) (reserbox.Plan, error) {
	var plan reserbox.Plan
	var features []byte
	if err := rows.Scan(
		&plan.Slug,
		&plan.Name,
		&plan.Subtitle,
		&plan.Description,
		&plan.Price,
		&plan.Currency,
		&plan.Period,
		&plan.MinEmployees,
		&plan.MaxEmployees,
		&features,
		&plan.Highlighted,
		&plan.HighlightLabel,
		&plan.CTAText,
		&plan.IsVisible,
		&plan.Order,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	); err != nil {
		return plan, fmt.Errorf("scanning plan: %w", err)
	}
	if err := json.Unmarshal(features, &plan.Features); err != nil {
		return plan, fmt.Errorf("decoding plan features: %w", err)
	}
	return plan, nil
}
