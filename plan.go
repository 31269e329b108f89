package reserbox

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrDuplicateSlug = errors.New("a plan with this slug already exists")
	ErrPlanNotFound  = errors.New("plan not found")
	ErrInvalidPrice  = errors.New("plan price must not be negative")
)

// PlanFeature is one line of a plan's feature list. Order matters for
// display, so features are kept as an ordered slice.
type PlanFeature struct {
	Text     string `json:"text"`
	Included bool   `json:"included"`
}

// Plan is a pricing-catalog entry. Slug is the unique key.
type Plan struct {
	Slug           string        `json:"slug"`
	Name           string        `json:"name"`
	Subtitle       string        `json:"subtitle"`
	Description    string        `json:"description"`
	Price          int64         `json:"price"`
	Currency       string        `json:"currency"`
	Period         string        `json:"period"`
	MinEmployees   int           `json:"min_employees"`
	MaxEmployees   int           `json:"max_employees"`
	Features       []PlanFeature `json:"features"`
	Highlighted    bool          `json:"highlighted"`
	HighlightLabel string        `json:"highlight_label,omitempty"`
	CTAText        string        `json:"cta_text"`
	IsVisible      bool          `json:"is_visible"`
	Order          int           `json:"order"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// Validate checks the fields required for an administrative insert.
func (p Plan) Validate() error {
	if strings.TrimSpace(p.Slug) == "" {
		return MissingFieldError{Field: "slug"}
	}
	if strings.TrimSpace(p.Name) == "" {
		return MissingFieldError{Field: "name"}
	}
	if p.Price < 0 {
		return ErrInvalidPrice
	}
	return nil
}

// SeedResult reports what a catalog seeding pass did. When the catalog was
// already populated, Seeded is false and Count is the pre-existing count.
type SeedResult struct {
	Seeded bool `json:"seeded"`
	Count  int  `json:"count"`
}

type PlanService interface {
	// List returns visible plans ordered by Order ascending, or every plan
	// when showAll is set.
	List(ctx context.Context, showAll bool) ([]Plan, error)
	// Create inserts the plan, returning ErrDuplicateSlug if the slug is
	// taken.
	Create(ctx context.Context, plan Plan) error
	// Seed inserts the given plans only when the catalog is empty.
	Seed(ctx context.Context, plans []Plan) (SeedResult, error)
}

// DefaultPlans returns the three launch tiers. Prices are in Colombian pesos
// per month.
func DefaultPlans() []Plan {
	return []Plan{
		{
			Slug:         "emprendedor",
			Name:         "Emprendedor",
			Subtitle:     "1 empleado",
			Description:  "Perfecto para profesionales independientes",
			Price:        39000,
			Currency:     "COP",
			Period:       "/mes",
			MinEmployees: 1,
			MaxEmployees: 1,
			Features: []PlanFeature{
				{Text: "Tablero de gestión completo", Included: true},
				{Text: "Página de reservas online", Included: true},
				{Text: "Calendario de citas", Included: true},
				{Text: "Gestión de servicios", Included: true},
				{Text: "Gestión de clientes", Included: true},
				{Text: "Recordatorios por WhatsApp", Included: true},
				{Text: "Métricas básicas", Included: true},
			},
			CTAText:   "Comenzar ahora",
			IsVisible: true,
			Order:     1,
		},
		{
			Slug:         "profesional",
			Name:         "Profesional",
			Subtitle:     "2-5 empleados",
			Description:  "Ideal para equipos pequeños",
			Price:        69000,
			Currency:     "COP",
			Period:       "/mes",
			MinEmployees: 2,
			MaxEmployees: 5,
			Features: []PlanFeature{
				{Text: "Todo del plan Emprendedor", Included: true},
				{Text: "Hasta 5 empleados", Included: true},
				{Text: "Horarios por empleado", Included: true},
				{Text: "Asignación de servicios", Included: true},
				{Text: "Recordatorios ilimitados", Included: true},
				{Text: "Reportes detallados", Included: true},
				{Text: "Soporte prioritario", Included: true},
			},
			Highlighted:    true,
			HighlightLabel: "Más popular",
			CTAText:        "Comenzar ahora",
			IsVisible:      true,
			Order:          2,
		},
		{
			Slug:         "negocio",
			Name:         "Negocio",
			Subtitle:     "6-15 empleados",
			Description:  "Para negocios en crecimiento",
			Price:        99000,
			Currency:     "COP",
			Period:       "/mes",
			MinEmployees: 6,
			MaxEmployees: 15,
			Features: []PlanFeature{
				{Text: "Todo del plan Profesional", Included: true},
				{Text: "Hasta 15 empleados", Included: true},
				{Text: "Múltiples sucursales", Included: true},
				{Text: "Reportes avanzados", Included: true},
				{Text: "Exportación de datos", Included: true},
				{Text: "Soporte VIP", Included: true},
				{Text: "Capacitación incluida", Included: true},
			},
			CTAText:   "Comenzar ahora",
			IsVisible: true,
			Order:     3,
		},
	}
}
