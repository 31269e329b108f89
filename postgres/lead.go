package postgres

import (
	"context"
	"database/sql"
	"fmt"

	reserbox "github.com/reserbox/reserbox"
)

type LeadService struct {
	db *sql.DB
}

func NewLeadService(db *sql.DB) reserbox.LeadService {
	return &LeadService{
		db: db,
	}
}

// Create inserts the lead through a single conditional statement: the row
// only lands when no lead with the same normalized email or phone exists
// inside the dedup window. Doing the check and the insert in one statement
// closes the read-then-write race a separate existence query would leave.
func (ls LeadService) Create(ctx context.Context, lead reserbox.Lead) error {
	query := `
	INSERT INTO leads (
		id, name, email, phone, business_name, industry,
		employee_count, city, plan, how_found, message, status, created_at
	)
	SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
	WHERE NOT EXISTS (
		SELECT 1 FROM leads
		WHERE (email = $3 OR phone = $4)
		AND created_at >= $14
	)`

	cutoff := lead.CreatedAt.Add(-reserbox.DedupWindow)

	res, err := ls.db.ExecContext(ctx, query,
		lead.ID,
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.BusinessName,
		lead.Industry,
		lead.EmployeeCount,
		lead.City,
		lead.Plan,
		lead.HowFound,
		lead.Message,
		lead.Status,
		lead.CreatedAt,
		cutoff,
	)
	if err != nil {
		return fmt.Errorf("inserting lead: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("inserting lead: %w", err)
	}
	if affected == 0 {
		return reserbox.ErrDuplicateLead
	}
	return nil
}

// List returns the most recent leads, optionally filtered by status.
func (ls LeadService) List(ctx context.Context, status string, limit int) ([]reserbox.Lead, error) {
	query := `
	SELECT
		id, name, email, phone, business_name, industry,
		employee_count, city, plan, how_found, message, status, created_at
	FROM leads
	WHERE ($1 = '' OR status = $1)
	ORDER BY created_at DESC
	LIMIT $2`

	rows, err := ls.db.QueryContext(ctx, query, status, limit)
	if err != nil {
		return nil, fmt.Errorf("listing leads: %w", err)
	}
	defer rows.Close()

	leads := []reserbox.Lead{}
	for rows.Next() {
		var lead reserbox.Lead
		if err := rows.Scan(
			&lead.ID,
			&lead.Name,
			&lead.Email,
			&lead.Phone,
			&lead.BusinessName,
			&lead.Industry,
			&lead.EmployeeCount,
			&lead.City,
			&lead.Plan,
			&lead.HowFound,
			&lead.Message,
			&lead.Status,
			&lead.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning lead: %w", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing leads: %w", err)
	}

	return leads, nil
}
