package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/reserbox/reserbox/booking"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	business := m.wizard.Catalog().Business
	header := titleStyle.Render(business.Logo+" "+business.Name) + "\n" +
		subtitleStyle.Render(business.Description)

	var content string
	switch m.wizard.Stage() {
	case booking.StageServices:
		content = m.viewServices()
	case booking.StageSchedule:
		content = m.viewSchedule()
	case booking.StageConfirm:
		content = m.viewConfirm()
	case booking.StageDone:
		content = m.viewSuccess()
	}

	if m.errMsg != "" {
		content += "\n" + errorStyle.Render(m.errMsg)
	}

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, content))
}

func (m Model) viewServices() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Selecciona tus servicios") + "\n")
	b.WriteString(subtitleStyle.Render("Puedes elegir uno o más servicios") + "\n")

	selected := map[int]bool{}
	for _, s := range m.wizard.SelectedServices() {
		selected[s.ID] = true
	}

	for i, s := range m.wizard.Catalog().Services {
		cursor := "  "
		if i == m.serviceCursor {
			cursor = cursorStyle.Render("› ")
		}
		mark := "[ ]"
		line := fmt.Sprintf("%s %s %s · %d min · %s", mark, s.Icon, s.Name, s.Duration, formatCOP(s.Price))
		if selected[s.ID] {
			mark = "[x]"
			line = selectedStyle.Render(fmt.Sprintf("%s %s %s · %d min · %s", mark, s.Icon, s.Name, s.Duration, formatCOP(s.Price)))
		}
		b.WriteString(cursor + line + "\n")
	}

	if len(selected) > 0 {
		b.WriteString(totalStyle.Render(fmt.Sprintf(
			"Total: %s · Duración aprox: %d min",
			formatCOP(m.wizard.TotalPrice()), m.wizard.TotalDuration(),
		)) + "\n")
	}

	b.WriteString("\n" + dimStyle.Render("space: seleccionar · enter: continuar · q: salir"))
	return b.String()
}

func (m Model) viewSchedule() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Elige profesional, fecha y hora") + "\n")

	b.WriteString(m.sectionTitle("Profesional", focusEmployee))
	b.WriteString(m.viewEmployees())
	b.WriteString(m.sectionTitle("Fecha", focusDay))
	b.WriteString(m.viewDays())
	b.WriteString(m.sectionTitle("Horario", focusSlot))
	b.WriteString(m.viewSlots())

	b.WriteString("\n" + dimStyle.Render("tab: sección · space: elegir · enter: continuar · esc: volver"))
	return b.String()
}

func (m Model) sectionTitle(name string, section scheduleFocus) string {
	if m.focus == section {
		return selectedStyle.Render("▸ "+name) + "\n"
	}
	return dimStyle.Render("  "+name) + "\n"
}

func (m Model) viewEmployees() string {
	var b strings.Builder
	current := m.wizard.Employee()

	for i := 0; i <= len(m.wizard.Catalog().Employees); i++ {
		label := "🎲 Sin preferencia · Cualquier profesional disponible"
		id := booking.NoPreference
		if i > 0 {
			e := m.wizard.Catalog().Employees[i-1]
			label = fmt.Sprintf("%s %s · %s", e.Avatar, e.Name, e.Role)
			id = e.ID
		}
		cursor := "  "
		if m.focus == focusEmployee && i == m.employeeCursor {
			cursor = cursorStyle.Render("› ")
		}
		if id == current {
			label = selectedStyle.Render(label + " ✓")
		}
		b.WriteString("  " + cursor + label + "\n")
	}
	return b.String()
}

func (m Model) viewDays() string {
	var cells []string
	selected := m.wizard.Date()

	for i, d := range m.wizard.Days() {
		cell := fmt.Sprintf("%s %s", d.DayName, d.Label)
		switch {
		case !selected.IsZero() && selected.Equal(d.Date):
			cell = selectedStyle.Render(cell)
		case m.focus == focusDay && i == m.dayCursor:
			cell = cursorStyle.Render(cell)
		default:
			cell = dimStyle.Render(cell)
		}
		cells = append(cells, cell)
	}
	return "    " + strings.Join(cells, "  ") + "\n"
}

func (m Model) viewSlots() string {
	slots := m.wizard.AvailableSlots()
	if len(slots) == 0 {
		return "    " + emptyStyle.Render(
			"No hay horarios disponibles con este profesional. Prueba cambiando de profesional.",
		) + "\n"
	}

	chosen := m.wizard.Time()
	var b strings.Builder
	for i, slot := range slots {
		cell := slot
		switch {
		case slot == chosen:
			cell = selectedStyle.Render(cell)
		case m.focus == focusSlot && i == m.slotCursor:
			cell = cursorStyle.Render(cell)
		}
		if i%5 == 0 {
			b.WriteString("    ")
		}
		b.WriteString(cell + "  ")
		if i%5 == 4 {
			b.WriteString("\n")
		}
	}
	if len(slots)%5 != 0 {
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewConfirm() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Confirma tu reserva") + "\n")

	day := m.wizard.Date()
	b.WriteString(fmt.Sprintf("  📅 %s · %s\n", day.Format("2006-01-02"), m.wizard.Time()))

	if id := m.wizard.Employee(); id != booking.NoPreference {
		if e := m.wizard.EmployeeByID(id); e != nil {
			b.WriteString(fmt.Sprintf("  %s %s\n", e.Avatar, e.Name))
		}
	}

	b.WriteString("\n  Servicios:\n")
	for _, s := range m.wizard.SelectedServices() {
		b.WriteString(fmt.Sprintf("    %s %s  %s\n", s.Icon, s.Name, formatCOP(s.Price)))
	}
	b.WriteString(totalStyle.Render(fmt.Sprintf(
		"  Total: %s · %d min", formatCOP(m.wizard.TotalPrice()), m.wizard.TotalDuration(),
	)) + "\n\n")

	b.WriteString("  Nombre:   " + m.nameInput.View() + "\n")
	b.WriteString("  Teléfono: " + m.phoneInput.View() + "\n")

	if m.wizard.Busy() {
		b.WriteString("\n  " + m.spin.View() + " Confirmando tu reserva...\n")
	} else {
		b.WriteString("\n" + dimStyle.Render("tab: cambiar campo · enter: confirmar · esc: volver"))
	}
	return b.String()
}

func (m Model) viewSuccess() string {
	var b strings.Builder
	b.WriteString(successStyle.Render("✓ ¡Reserva confirmada!") + "\n\n")
	b.WriteString(fmt.Sprintf("  %s · %s\n", m.wizard.Date().Format("2006-01-02"), m.wizard.Time()))
	name, phone := m.wizard.Contact()
	b.WriteString(fmt.Sprintf("  A nombre de %s (%s)\n", name, phone))
	b.WriteString("\n" + dimStyle.Render("Esto es una simulación: ninguna reserva fue creada. enter: salir"))
	return b.String()
}

// formatCOP renders minor units as Colombian peso amounts, dot-separated
// thousands, no decimals.
func formatCOP(amount int64) string {
	digits := fmt.Sprintf("%d", amount)
	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	parts = append([]string{digits}, parts...)
	return "$" + strings.Join(parts, ".")
}
