package cli

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/emRival/rekap-absensi/internal/export"
	"github.com/emRival/rekap-absensi/internal/recap"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

const (
	nameColWidth  = 24
	roleColWidth  = 9
	tierColWidth  = 15
	countColWidth = 5
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	footerStyle   = lipgloss.NewStyle().Faint(true)
	dotStyle      = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
)

type recapModel struct {
	report     export.Report
	summary    recap.Summary
	scrollY    int // first visible row
	cursorRow  int // selected record
	termWidth  int
	termHeight int
}

func newRecapModel(rep export.Report) recapModel {
	return recapModel{
		report:     rep,
		summary:    recap.Summarize(rep.Records),
		termWidth:  120,
		termHeight: 40,
	}
}

func (m recapModel) visibleRows() int {
	// title(1) + header(1) + separator(1) + separator(1) + details(5) + footer(2)
	reserved := 11
	available := m.termHeight - reserved
	if available < 1 {
		return 1
	}
	if available > len(m.report.Records) {
		return len(m.report.Records)
	}
	return available
}

func (m recapModel) maxScrollY() int {
	max := len(m.report.Records) - m.visibleRows()
	if max < 0 {
		return 0
	}
	return max
}

func (m recapModel) Init() tea.Cmd {
	return nil
}

// ensureCursorVisible adjusts scroll so the cursor is within the viewport.
func (m recapModel) ensureCursorVisible() recapModel {
	if m.cursorRow < m.scrollY {
		m.scrollY = m.cursorRow
	}
	if m.cursorRow >= m.scrollY+m.visibleRows() {
		m.scrollY = m.cursorRow - m.visibleRows() + 1
	}
	return m.clampScroll()
}

func (m recapModel) clampScroll() recapModel {
	if m.scrollY > m.maxScrollY() {
		m.scrollY = m.maxScrollY()
	}
	if m.scrollY < 0 {
		m.scrollY = 0
	}
	return m
}

func runRecapTable(cmd *cobra.Command, rep export.Report) error {
	out := cmd.OutOrStdout()

	// Non-TTY fallback: print static table
	if f, ok := out.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		return printStaticRecapTable(out, rep)
	}

	p := tea.NewProgram(newRecapModel(rep), tea.WithAltScreen(), tea.WithOutput(out))
	_, err := p.Run()
	return err
}

func printStaticRecapTable(w io.Writer, rep export.Report) error {
	s := recap.Summarize(rep.Records)
	table := renderRecapTable(rep, 0, len(rep.Records), -1)
	_, err := fmt.Fprintf(w, "%s\n%s\n", table, summaryLine(s))
	return err
}
