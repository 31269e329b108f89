package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Stage is the wizard's current step. Transitions only move one step at a
// time, forward through Next/Confirm and backward through Back.
type Stage int

const (
	StageServices Stage = iota
	StageSchedule
	StageConfirm
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageServices:
		return "services"
	case StageSchedule:
		return "schedule"
	case StageConfirm:
		return "confirm"
	case StageDone:
		return "success"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// NoPreference selects "any available professional". Every slot of the grid
// counts as available for it.
const NoPreference = 0

// Minimum lengths the confirmation gate enforces on the contact fields.
const (
	MinNameLen  = 2
	MinPhoneLen = 7
)

// DefaultConfirmDelay is the simulated latency of the confirmation call.
const DefaultConfirmDelay = 1500 * time.Millisecond

var (
	ErrUnknownService  = errors.New("booking: unknown service")
	ErrUnknownEmployee = errors.New("booking: unknown employee")
	ErrDateOutOfRange  = errors.New("booking: date outside the booking window")
	ErrSlotUnavailable = errors.New("booking: slot not available for the selected professional")
	ErrNoServices      = errors.New("booking: select at least one service")
	ErrNoSchedule      = errors.New("booking: select a date and time first")
	ErrNameTooShort    = errors.New("booking: name must have at least 2 characters")
	ErrPhoneTooShort   = errors.New("booking: phone must have at least 7 digits")
	ErrConfirmPending  = errors.New("booking: a confirmation is already in progress")
	ErrWrongStage      = errors.New("booking: operation not valid in current stage")
)

// Wizard holds one demo-booking session. It is owned by a single interactive
// session; the mutex only exists because Confirm blocks and runs off the
// UI goroutine.
type Wizard struct {
	mu sync.Mutex

	catalog Catalog
	days    []Day

	stage    Stage
	services map[int]bool
	employee int
	date     time.Time
	slot     string
	name     string
	phone    string

	confirming   bool
	confirmDelay time.Duration
}

// NewWizard starts a session at the service-selection stage. The 7-day date
// window is fixed at construction time.
func NewWizard(catalog Catalog) *Wizard {
	return &Wizard{
		catalog:      catalog,
		days:         UpcomingDays(time.Now(), catalog.Days),
		stage:        StageServices,
		services:     make(map[int]bool),
		employee:     NoPreference,
		confirmDelay: DefaultConfirmDelay,
	}
}

// SetConfirmDelay overrides the simulated confirmation latency.
func (w *Wizard) SetConfirmDelay(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.confirmDelay = d
}

func (w *Wizard) Stage() Stage {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stage
}

func (w *Wizard) Catalog() Catalog { return w.catalog }

// Days returns the date-selection window computed at session start.
func (w *Wizard) Days() []Day { return w.days }

// ToggleService adds the service to the selection, or removes it if already
// selected.
func (w *Wizard) ToggleService(id int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.serviceByID(id) == nil {
		return fmt.Errorf("%w: id %d", ErrUnknownService, id)
	}
	if w.services[id] {
		delete(w.services, id)
	} else {
		w.services[id] = true
	}
	return nil
}

// SelectedServices returns the selection in catalog order.
func (w *Wizard) SelectedServices() []Service {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selectedLocked()
}

func (w *Wizard) selectedLocked() []Service {
	var out []Service
	for _, s := range w.catalog.Services {
		if w.services[s.ID] {
			out = append(out, s)
		}
	}
	return out
}

// TotalPrice is the sum of the selected services' prices. It is derived on
// every call, never stored.
func (w *Wizard) TotalPrice() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	var total int64
	for _, s := range w.selectedLocked() {
		total += s.Price
	}
	return total
}

// TotalDuration is the summed duration in minutes of the selected services.
func (w *Wizard) TotalDuration() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	var total int
	for _, s := range w.selectedLocked() {
		total += s.Duration
	}
	return total
}

// SelectEmployee picks a professional (or NoPreference). Recomputing the
// available set here also clears a previously chosen time that the new
// professional cannot serve, which keeps the slot invariant without callers
// having to remember a second step.
func (w *Wizard) SelectEmployee(id int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if id != NoPreference && w.employeeByID(id) == nil {
		return fmt.Errorf("%w: id %d", ErrUnknownEmployee, id)
	}
	w.employee = id
	if w.slot != "" && !w.slotAvailableLocked(w.slot) {
		w.slot = ""
	}
	return nil
}

// Employee returns the selected professional's ID, or NoPreference.
func (w *Wizard) Employee() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.employee
}

// EmployeeByID looks up a catalog employee. Nil for NoPreference or unknown
// IDs.
func (w *Wizard) EmployeeByID(id int) *Employee {
	return w.employeeByID(id)
}

// SelectDate picks a day from the lookahead window. Only dates that appear
// in Days() are accepted.
func (w *Wizard) SelectDate(date time.Time) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, d := range w.days {
		if sameDay(d.Date, date) {
			w.date = d.Date
			return nil
		}
	}
	return ErrDateOutOfRange
}

func (w *Wizard) Date() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.date
}

// SelectTime picks a slot label. The slot must be in the available set for
// the currently selected professional.
func (w *Wizard) SelectTime(slot string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.slotAvailableLocked(slot) {
		return fmt.Errorf("%w: %s", ErrSlotUnavailable, slot)
	}
	w.slot = slot
	return nil
}

func (w *Wizard) Time() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.slot
}

// AvailableSlots derives the bookable slots for the current professional:
// the full grid for NoPreference, otherwise the grid minus the blocked set.
// The result is never nil, so an empty day renders as an explicit
// empty state rather than a missing one.
func (w *Wizard) AvailableSlots() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]string, 0, len(w.catalog.Slots))
	for _, s := range w.catalog.Slots {
		if w.slotAvailableLocked(s) {
			out = append(out, s)
		}
	}
	return out
}

func (w *Wizard) slotAvailableLocked(slot string) bool {
	found := false
	for _, s := range w.catalog.Slots {
		if s == slot {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	if w.employee == NoPreference {
		return true
	}
	emp := w.employeeByID(w.employee)
	return emp != nil && !emp.Blocked[slot]
}

// SetContact stores the customer's contact fields. Validation happens at the
// confirmation gate so the form can be typed into freely.
func (w *Wizard) SetContact(name, phone string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.name = name
	w.phone = phone
}

func (w *Wizard) Contact() (name, phone string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.name, w.phone
}

// Next advances one stage. Leaving StageServices requires a non-empty
// selection; leaving StageSchedule requires both date and time.
func (w *Wizard) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.stage {
	case StageServices:
		if len(w.services) == 0 {
			return ErrNoServices
		}
		w.stage = StageSchedule
	case StageSchedule:
		if w.date.IsZero() || w.slot == "" {
			return ErrNoSchedule
		}
		w.stage = StageConfirm
	default:
		return ErrWrongStage
	}
	return nil
}

// Back moves one stage earlier. StageDone is terminal and StageServices is
// the first stage, so neither moves.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.stage {
	case StageSchedule:
		w.stage = StageServices
	case StageConfirm:
		w.stage = StageSchedule
	default:
		return ErrWrongStage
	}
	return nil
}

// Busy reports whether a confirmation call is in flight.
func (w *Wizard) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.confirming
}

// Confirm validates the contact fields and runs the simulated confirmation
// call. At most one confirmation can be in flight; a second call while busy
// fails with ErrConfirmPending. On success the wizard reaches StageDone.
func (w *Wizard) Confirm(ctx context.Context) error {
	w.mu.Lock()
	if w.stage != StageConfirm {
		w.mu.Unlock()
		return ErrWrongStage
	}
	if w.confirming {
		w.mu.Unlock()
		return ErrConfirmPending
	}
	if len([]rune(w.name)) < MinNameLen {
		w.mu.Unlock()
		return ErrNameTooShort
	}
	if len(w.phone) < MinPhoneLen {
		w.mu.Unlock()
		return ErrPhoneTooShort
	}
	w.confirming = true
	delay := w.confirmDelay
	w.mu.Unlock()

	// Stand-in for the real reservation API call.
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		w.mu.Lock()
		w.confirming = false
		w.mu.Unlock()
		return ctx.Err()
	case <-timer.C:
	}

	w.mu.Lock()
	w.confirming = false
	w.stage = StageDone
	w.mu.Unlock()
	return nil
}

func (w *Wizard) serviceByID(id int) *Service {
	for i := range w.catalog.Services {
		if w.catalog.Services[i].ID == id {
			return &w.catalog.Services[i]
		}
	}
	return nil
}

func (w *Wizard) employeeByID(id int) *Employee {
	for i := range w.catalog.Employees {
		if w.catalog.Employees[i].ID == id {
			return &w.catalog.Employees[i]
		}
	}
	return nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
