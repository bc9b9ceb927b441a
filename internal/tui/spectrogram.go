// SPDX-License-Identifier: MIT
// Package tui contains the Bubble Tea terminal views: the live spectrogram
// and the device browser.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"spectro/internal/analysis"
	"spectro/internal/render"
)

// Redraw cadence. The viewer runs on its own clock and only ever snapshots
// the history; it never touches pipeline state.
const drawInterval = 33 * time.Millisecond

const axisLabelWidth = 11 // "  1234Hz | "

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#25A065")).
			Padding(0, 1).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

type drawTickMsg time.Time

func drawTick() tea.Cmd {
	return tea.Tick(drawInterval, func(t time.Time) tea.Msg {
		return drawTickMsg(t)
	})
}

// SpectrogramModel renders the rolling spectrogram with a log frequency
// axis, newest column at the right edge, time flowing left.
type SpectrogramModel struct {
	history *analysis.History
	axis    render.Axis

	width  int
	height int
	ready  bool
}

func NewSpectrogramModel(history *analysis.History, axis render.Axis) SpectrogramModel {
	return SpectrogramModel{history: history, axis: axis}
}

func (m SpectrogramModel) Init() tea.Cmd {
	return drawTick()
}

func (m SpectrogramModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case tea.KeyMsg:
		if key.Matches(msg, key.NewBinding(key.WithKeys("q", "ctrl+c"))) {
			return m, tea.Quit
		}

	case drawTickMsg:
		return m, drawTick()
	}

	return m, nil
}

func (m SpectrogramModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	rows := m.height - 2 // header and help lines
	cols := m.width - axisLabelWidth
	if rows < 1 || cols < 1 {
		return "Terminal too small"
	}

	snapshot := m.history.Snapshot()
	if cols > len(snapshot) {
		cols = len(snapshot)
	}

	labelEvery := rows / 8
	if labelEvery < 1 {
		labelEvery = 1
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("Spectrogram (log scale)"))
	sb.WriteString("\n")

	for row := 0; row < rows; row++ {
		freq := m.axis.RowFreq(row, rows)

		if row%labelEvery == 0 {
			fmt.Fprintf(&sb, "%6.0fHz | ", freq)
		} else {
			sb.WriteString("         | ")
		}

		bin, ok := m.axis.BinIndex(freq)
		for x := cols - 1; x >= 0; x-- {
			// snapshot[0] is the newest frame and lands rightmost.
			if !ok {
				sb.WriteByte(' ')
				continue
			}
			val := snapshot[x][bin]
			ch := render.IntensityRune(val)
			sb.WriteString(lipgloss.NewStyle().
				Foreground(render.IntensityColor(val)).
				Render(string(ch)))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(helpStyle.Render("q: quit"))
	return sb.String()
}

// RunSpectrogram blocks running the viewer until the user quits.
func RunSpectrogram(history *analysis.History, axis render.Axis) error {
	p := tea.NewProgram(
		NewSpectrogramModel(history, axis),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
