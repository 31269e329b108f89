// Command demo runs the interactive booking simulation in the terminal. It
// is self-contained: nothing is persisted and no network calls are made.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/reserbox/reserbox/booking"
	"github.com/reserbox/reserbox/tui"
)

func main() {
	wizard := booking.NewWizard(booking.DefaultCatalog())

	p := tea.NewProgram(tui.New(wizard), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "demo:", err)
		os.Exit(1)
	}
}
