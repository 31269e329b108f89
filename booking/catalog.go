// Package booking implements the demo booking wizard: a session-scoped
// finite-state flow that collects services, an employee and time slot, and
// customer contact details, then simulates a confirmation call. Nothing here
// is persisted; the wizard exists so prospects can try the booking
// experience before signing up.
package booking

import (
	"strconv"
	"time"
)

// Business is the fictional salon the demo books against.
type Business struct {
	Name        string
	Slug        string
	Description string
	Phone       string
	Address     string
	Logo        string
}

// Service is an immutable catalog entry. Price is in minor currency units
// (Colombian pesos have no cents, so price == pesos), Duration in minutes.
type Service struct {
	ID       int
	Name     string
	Duration int
	Price    int64
	Icon     string
}

// Employee is a bookable staff member. Blocked holds the slot labels the
// employee is unavailable for across the demo's whole lookahead window.
type Employee struct {
	ID      int
	Name    string
	Role    string
	Avatar  string
	Blocked map[string]bool
}

// Catalog bundles the fixtures a wizard session works against.
type Catalog struct {
	Business  Business
	Services  []Service
	Employees []Employee
	Slots     []string
	Days      int
}

// Day is one entry of the date-selection strip.
type Day struct {
	Date    time.Time
	Label   string
	DayName string
}

var dayNames = []string{"Dom", "Lun", "Mar", "Mié", "Jue", "Vie", "Sáb"}

var monthNames = []string{
	"Ene", "Feb", "Mar", "Abr", "May", "Jun",
	"Jul", "Ago", "Sep", "Oct", "Nov", "Dic",
}

// UpcomingDays returns count calendar days starting at now's date, with
// display labels ("Hoy", "Mañana", then weekday abbreviations).
func UpcomingDays(now time.Time, count int) []Day {
	days := make([]Day, 0, count)
	start := now
	for i := 0; i < count; i++ {
		d := start.AddDate(0, 0, i)
		day := Day{
			Date:  time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location()),
			Label: formatDayLabel(d),
		}
		switch i {
		case 0:
			day.DayName = "Hoy"
		case 1:
			day.DayName = "Mañana"
		default:
			day.DayName = dayNames[int(d.Weekday())]
		}
		days = append(days, day)
	}
	return days
}

func formatDayLabel(d time.Time) string {
	return strconv.Itoa(d.Day()) + " " + monthNames[int(d.Month())-1]
}

// DefaultCatalog returns the fixtures for "Salón Glamour", the demo salon.
func DefaultCatalog() Catalog {
	return Catalog{
		Business: Business{
			Name:        "Salón Glamour",
			Slug:        "salon-glamour",
			Description: "Tu destino de belleza integral",
			Phone:       "573001234567",
			Address:     "Cra 15 #85-24, Bogotá",
			Logo:        "💇",
		},
		Services: []Service{
			{ID: 1, Name: "Corte de cabello", Duration: 45, Price: 35000, Icon: "✂️"},
			{ID: 2, Name: "Tinte completo", Duration: 120, Price: 120000, Icon: "🎨"},
			{ID: 3, Name: "Manicure", Duration: 45, Price: 25000, Icon: "💅"},
			{ID: 4, Name: "Pedicure", Duration: 60, Price: 35000, Icon: "🦶"},
			{ID: 5, Name: "Tratamiento capilar", Duration: 60, Price: 80000, Icon: "✨"},
			{ID: 6, Name: "Maquillaje", Duration: 60, Price: 65000, Icon: "💄"},
		},
		Employees: []Employee{
			{
				ID: 1, Name: "María García", Role: "Estilista Senior", Avatar: "👩",
				Blocked: slotSet("09:00 AM", "09:30 AM", "05:30 PM"),
			},
			{
				ID: 2, Name: "Laura Pérez", Role: "Colorista", Avatar: "👱",
				Blocked: slotSet("12:00 PM", "02:00 PM", "02:30 PM", "03:00 PM"),
			},
			{
				ID: 3, Name: "Carlos López", Role: "Manicurista", Avatar: "👨",
				Blocked: slotSet("10:00 AM", "10:30 AM", "11:00 AM", "04:30 PM", "05:00 PM"),
			},
		},
		Slots: []string{
			"09:00 AM", "09:30 AM", "10:00 AM", "10:30 AM", "11:00 AM", "11:30 AM",
			"12:00 PM", "02:00 PM", "02:30 PM", "03:00 PM", "03:30 PM", "04:00 PM",
			"04:30 PM", "05:00 PM", "05:30 PM",
		},
		Days: 7,
	}
}

func slotSet(slots ...string) map[string]bool {
	set := make(map[string]bool, len(slots))
	for _, s := range slots {
		set[s] = true
	}
	return set
}
