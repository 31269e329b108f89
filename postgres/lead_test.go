package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reserbox "github.com/reserbox/reserbox"
)

func testLead(createdAt time.Time) reserbox.Lead {
	return reserbox.NewLead{
		Name:         "María González",
		Email:        "maria@test.com",
		Phone:        "3001234567",
		BusinessName: "Salón Glamour",
		Industry:     "belleza",
		Plan:         "profesional",
	}.Lead("7b8c0b4e-0000-0000-0000-000000000001", createdAt)
}

func TestLeadCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	lead := testLead(now)

	mock.ExpectExec("INSERT INTO leads").
		WithArgs(
			lead.ID, lead.Name, lead.Email, lead.Phone, lead.BusinessName,
			lead.Industry, lead.EmployeeCount, lead.City, lead.Plan,
			lead.HowFound, lead.Message, lead.Status, lead.CreatedAt,
			lead.CreatedAt.Add(-reserbox.DedupWindow),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := NewLeadService(db)
	require.NoError(t, svc.Create(context.Background(), lead))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadCreateDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	lead := testLead(time.Now().UTC())

	// Conditional insert touches no rows when a contact match exists in the
	// window.
	mock.ExpectExec("INSERT INTO leads").
		WillReturnResult(sqlmock.NewResult(0, 0))

	svc := NewLeadService(db)
	err = svc.Create(context.Background(), lead)
	assert.ErrorIs(t, err, reserbox.ErrDuplicateLead)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadCreateStoreError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO leads").
		WillReturnError(errors.New("connection reset"))

	svc := NewLeadService(db)
	err = svc.Create(context.Background(), testLead(time.Now().UTC()))
	require.Error(t, err)
	assert.NotErrorIs(t, err, reserbox.ErrDuplicateLead)
}

func TestLeadList(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	cols := []string{
		"id", "name", "email", "phone", "business_name", "industry",
		"employee_count", "city", "plan", "how_found", "message", "status", "created_at",
	}
	rows := sqlmock.NewRows(cols).
		AddRow("id-2", "Ana", "ana@test.com", "3002222222", "Spa Norte", "belleza",
			"", "", "emprendedor", "", "", "new", now).
		AddRow("id-1", "Luis", "luis@test.com", "3001111111", "Barber Bros", "barbería",
			"", "", "negocio", "", "", "new", now.Add(-time.Hour))

	mock.ExpectQuery("SELECT(.|\n)+FROM leads").
		WithArgs("new", 100).
		WillReturnRows(rows)

	svc := NewLeadService(db)
	leads, err := svc.List(context.Background(), "new", 100)
	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, "id-2", leads[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
