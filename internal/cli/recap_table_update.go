package cli

import tea "github.com/charmbracelet/bubbletea"

func (m recapModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m = m.ensureCursorVisible()
	case tea.KeyMsg:
		last := len(m.report.Records) - 1
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "down", "j":
			if m.cursorRow < last {
				m.cursorRow++
			}
		case "up", "k":
			if m.cursorRow > 0 {
				m.cursorRow--
			}
		case "pgdown", "ctrl+d":
			m.cursorRow = min(m.cursorRow+m.visibleRows(), max(last, 0))
		case "pgup", "ctrl+u":
			m.cursorRow = max(m.cursorRow-m.visibleRows(), 0)
		case "home", "g":
			m.cursorRow = 0
		case "end", "G":
			m.cursorRow = max(last, 0)
		}
		m = m.ensureCursorVisible()
	}
	return m, nil
}
