package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/reserbox/reserbox/booking"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if m.wizard.Busy() {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case confirmDoneMsg:
		if msg.err != nil {
			m.errMsg = errText(msg.err)
		} else {
			m.errMsg = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c always quits; plain q only outside the text inputs.
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.wizard.Stage() {
	case booking.StageServices:
		return m.updateServices(msg)
	case booking.StageSchedule:
		return m.updateSchedule(msg)
	case booking.StageConfirm:
		return m.updateConfirm(msg)
	default:
		if key.Matches(msg, m.keys.Quit) || key.Matches(msg, m.keys.Enter) {
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) updateServices(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	services := m.wizard.Catalog().Services

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.serviceCursor > 0 {
			m.serviceCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.serviceCursor < len(services)-1 {
			m.serviceCursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		m.errMsg = ""
		if err := m.wizard.ToggleService(services[m.serviceCursor].ID); err != nil {
			m.errMsg = errText(err)
		}
	case key.Matches(msg, m.keys.Enter):
		if err := m.wizard.Next(); err != nil {
			m.errMsg = errText(err)
		} else {
			m.errMsg = ""
		}
	}
	return m, nil
}

func (m Model) updateSchedule(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	employees := m.wizard.Catalog().Employees
	days := m.wizard.Days()
	slots := m.wizard.AvailableSlots()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.errMsg = ""
		m.wizard.Back()
	case key.Matches(msg, m.keys.Tab):
		m.focus = (m.focus + 1) % 3
	case key.Matches(msg, m.keys.Up):
		m.moveVertical(-1, len(employees), len(slots))
	case key.Matches(msg, m.keys.Down):
		m.moveVertical(1, len(employees), len(slots))
	case key.Matches(msg, m.keys.Left):
		if m.focus == focusDay && m.dayCursor > 0 {
			m.dayCursor--
		}
	case key.Matches(msg, m.keys.Right):
		if m.focus == focusDay && m.dayCursor < len(days)-1 {
			m.dayCursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		m.errMsg = ""
		switch m.focus {
		case focusEmployee:
			id := booking.NoPreference
			if m.employeeCursor > 0 {
				id = employees[m.employeeCursor-1].ID
			}
			if err := m.wizard.SelectEmployee(id); err != nil {
				m.errMsg = errText(err)
			}
			// Availability changed; keep the slot cursor inside the new set.
			m.slotCursor = 0
		case focusDay:
			if err := m.wizard.SelectDate(days[m.dayCursor].Date); err != nil {
				m.errMsg = errText(err)
			}
		case focusSlot:
			if len(slots) == 0 {
				return m, nil
			}
			if m.slotCursor >= len(slots) {
				m.slotCursor = len(slots) - 1
			}
			if err := m.wizard.SelectTime(slots[m.slotCursor]); err != nil {
				m.errMsg = errText(err)
			}
		}
	case key.Matches(msg, m.keys.Enter):
		if err := m.wizard.Next(); err != nil {
			m.errMsg = errText(err)
		} else {
			m.errMsg = ""
		}
	}
	return m, nil
}

func (m *Model) moveVertical(delta, employeeCount, slotCount int) {
	switch m.focus {
	case focusEmployee:
		next := m.employeeCursor + delta
		if next >= 0 && next <= employeeCount {
			m.employeeCursor = next
		}
	case focusSlot:
		next := m.slotCursor + delta
		if next >= 0 && next < slotCount {
			m.slotCursor = next
		}
	}
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.wizard.Busy() {
		// Locked while the confirmation call is in flight.
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		m.errMsg = ""
		m.wizard.Back()
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		if m.contact == focusName {
			m.contact = focusPhone
			m.nameInput.Blur()
			return m, m.phoneInput.Focus()
		}
		m.contact = focusName
		m.phoneInput.Blur()
		return m, m.nameInput.Focus()
	case key.Matches(msg, m.keys.Enter):
		m.wizard.SetContact(m.nameInput.Value(), m.phoneInput.Value())
		return m, tea.Batch(m.spin.Tick, m.confirmCmd())
	}

	var cmd tea.Cmd
	if m.contact == focusName {
		m.nameInput, cmd = m.nameInput.Update(msg)
	} else {
		m.phoneInput, cmd = m.phoneInput.Update(msg)
	}
	return m, cmd
}

// errText translates wizard errors into the messages shown under the form.
func errText(err error) string {
	switch {
	case errors.Is(err, booking.ErrNoServices):
		return "Selecciona al menos un servicio"
	case errors.Is(err, booking.ErrNoSchedule):
		return "Elige fecha y hora para continuar"
	case errors.Is(err, booking.ErrSlotUnavailable):
		return "Ese horario no está disponible"
	case errors.Is(err, booking.ErrNameTooShort):
		return "Ingresa tu nombre completo"
	case errors.Is(err, booking.ErrPhoneTooShort):
		return "Ingresa un teléfono válido"
	case errors.Is(err, booking.ErrConfirmPending):
		return "Tu reserva se está procesando"
	case errors.Is(err, context.Canceled):
		return "Reserva cancelada"
	default:
		return err.Error()
	}
}
