package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reserbox/reserbox/booking"
)

func TestFormatCOP(t *testing.T) {
	assert.Equal(t, "$0", formatCOP(0))
	assert.Equal(t, "$950", formatCOP(950))
	assert.Equal(t, "$35.000", formatCOP(35000))
	assert.Equal(t, "$1.250.000", formatCOP(1250000))
}

func TestErrText(t *testing.T) {
	assert.Equal(t, "Selecciona al menos un servicio", errText(booking.ErrNoServices))
	assert.Equal(t, "Elige fecha y hora para continuar", errText(booking.ErrNoSchedule))
}

func pressKey(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		}
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func TestServiceSelectionFlow(t *testing.T) {
	w := booking.NewWizard(booking.DefaultCatalog())
	m := New(w)

	// Enter without a selection stays on the services screen with a message.
	m = pressKey(t, m, "enter")
	assert.Equal(t, booking.StageServices, w.Stage())
	assert.NotEmpty(t, m.errMsg)

	m = pressKey(t, m, "space", "enter")
	assert.Equal(t, booking.StageSchedule, w.Stage())
	assert.Empty(t, m.errMsg)
	assert.NotEmpty(t, m.View())
}
