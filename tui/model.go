// Package tui renders the demo booking wizard in the terminal. All booking
// rules live in the booking package; this model only tracks cursor positions
// and relays key presses.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/reserbox/reserbox/booking"
)

// scheduleFocus is the section of the schedule screen the cursor is in.
type scheduleFocus int

const (
	focusEmployee scheduleFocus = iota
	focusDay
	focusSlot
)

// contactFocus is the input focused on the confirmation screen.
type contactFocus int

const (
	focusName contactFocus = iota
	focusPhone
)

type confirmDoneMsg struct {
	err error
}

type Model struct {
	wizard *booking.Wizard
	keys   KeyMap

	serviceCursor  int
	employeeCursor int // 0 is "sin preferencia", 1..n catalog employees
	dayCursor      int
	slotCursor     int
	focus          scheduleFocus

	nameInput  textinput.Model
	phoneInput textinput.Model
	contact    contactFocus

	spin     spinner.Model
	errMsg   string
	quitting bool
	width    int
	height   int
}

func New(wizard *booking.Wizard) Model {
	name := textinput.New()
	name.Placeholder = "Tu nombre"
	name.CharLimit = 60
	name.Focus()

	phone := textinput.New()
	phone.Placeholder = "Tu teléfono"
	phone.CharLimit = 20

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		wizard:     wizard,
		keys:       DefaultKeyMap(),
		nameInput:  name,
		phoneInput: phone,
		spin:       sp,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// confirmCmd runs the simulated confirmation call off the UI loop.
func (m Model) confirmCmd() tea.Cmd {
	wizard := m.wizard
	return func() tea.Msg {
		return confirmDoneMsg{err: wizard.Confirm(context.Background())}
	}
}
