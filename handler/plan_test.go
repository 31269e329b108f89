package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	reserbox "github.com/reserbox/reserbox"
	"github.com/reserbox/reserbox/memstore"
)

func seedHandler(t *testing.T) (*PlanHandler, *memstore.PlanService) {
	t.Helper()
	store := memstore.NewPlanService()
	return NewPlanHandler(store, zap.NewNop().Sugar()), store
}

func TestPlanSeedThenList(t *testing.T) {
	h, _ := seedHandler(t)

	rec := httptest.NewRecorder()
	h.Seed(rec, httptest.NewRequest(http.MethodPost, "/plans/seed", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var env struct {
		OK   bool                `json:"ok"`
		Data reserbox.SeedResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Data.Seeded)
	assert.Equal(t, 3, env.Data.Count)

	// Seeding again is a no-op reporting the existing count.
	rec = httptest.NewRecorder()
	h.Seed(rec, httptest.NewRequest(http.MethodPost, "/plans/seed", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Data.Seeded)
	assert.Equal(t, 3, env.Data.Count)

	rec = httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/plans", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var listEnv struct {
		OK   bool            `json:"ok"`
		Data []reserbox.Plan `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listEnv))
	require.Len(t, listEnv.Data, 3)
	assert.Equal(t, "emprendedor", listEnv.Data[0].Slug)
	assert.Equal(t, "negocio", listEnv.Data[2].Slug)
}

func TestPlanCreate(t *testing.T) {
	h, store := seedHandler(t)

	plan := reserbox.Plan{
		Slug:      "corporativo",
		Name:      "Corporativo",
		Price:     149000,
		Currency:  "COP",
		IsVisible: true,
		Order:     4,
	}
	body, _ := json.Marshal(plan)

	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/plans", bytes.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	// Duplicate slug is a conflict and creates nothing.
	rec = httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/plans", bytes.NewReader(body)))
	assert.Equal(t, http.StatusConflict, rec.Code)

	plans, err := store.List(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, plans, 1)
	assert.False(t, plans[0].CreatedAt.IsZero())
}

func TestPlanCreateValidation(t *testing.T) {
	h, store := seedHandler(t)

	body, _ := json.Marshal(reserbox.Plan{Name: "Sin slug", Price: 1000})

	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/plans", bytes.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	plans, err := store.List(context.Background(), true)
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestPlanListAll(t *testing.T) {
	h, store := seedHandler(t)

	require.NoError(t, store.Create(context.Background(),
		reserbox.Plan{Slug: "oculto", Name: "Oculto", IsVisible: false}))

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/plans", nil))
	var env struct {
		Data []reserbox.Plan `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Empty(t, env.Data)

	rec = httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/plans?all=true", nil))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Len(t, env.Data, 1)
}
