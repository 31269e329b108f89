package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reserbox "github.com/reserbox/reserbox"
)

func TestPlanCreateDuplicateSlug(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO plans").
		WillReturnError(&pq.Error{Code: uniqueViolation})

	svc := NewPlanService(db)
	err = svc.Create(context.Background(), reserbox.DefaultPlans()[0])
	assert.ErrorIs(t, err, reserbox.ErrDuplicateSlug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO plans").
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := NewPlanService(db)
	require.NoError(t, svc.Create(context.Background(), reserbox.DefaultPlans()[0]))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanList(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	features, err := json.Marshal([]reserbox.PlanFeature{{Text: "Calendario de citas", Included: true}})
	require.NoError(t, err)

	cols := []string{
		"slug", "name", "subtitle", "description", "price", "currency", "period",
		"min_employees", "max_employees", "features", "highlighted", "highlight_label",
		"cta_text", "is_visible", "sort_order", "created_at", "updated_at",
	}
	rows := sqlmock.NewRows(cols).
		AddRow("emprendedor", "Emprendedor", "1 empleado", "", int64(39000), "COP", "/mes",
			1, 1, features, false, "", "Comenzar ahora", true, 1, now, now).
		AddRow("profesional", "Profesional", "2-5 empleados", "", int64(69000), "COP", "/mes",
			2, 5, features, true, "Más popular", "Comenzar ahora", true, 2, now, now)

	mock.ExpectQuery("SELECT(.|\n)+FROM plans").
		WithArgs(false).
		WillReturnRows(rows)

	svc := NewPlanService(db)
	plans, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "emprendedor", plans[0].Slug)
	assert.True(t, plans[1].Highlighted)
	require.Len(t, plans[0].Features, 1)
	assert.Equal(t, "Calendario de citas", plans[0].Features[0].Text)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanSeedSkipsPopulatedCatalog(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectRollback()

	svc := NewPlanService(db)
	res, err := svc.Seed(context.Background(), reserbox.DefaultPlans())
	require.NoError(t, err)
	assert.False(t, res.Seeded)
	assert.Equal(t, 3, res.Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanSeedEmptyCatalog(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	for range reserbox.DefaultPlans() {
		mock.ExpectExec("INSERT INTO plans").
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	svc := NewPlanService(db)
	res, err := svc.Seed(context.Background(), reserbox.DefaultPlans())
	require.NoError(t, err)
	assert.True(t, res.Seeded)
	assert.Equal(t, 3, res.Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
