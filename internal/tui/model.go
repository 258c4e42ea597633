// Package tui provides the Bubbletea display for a running equaliser. It
// polls the processor for fresh analysis data on a fixed tick and draws
// the input and output spectra together with the filter responses.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cwbudde/algo-eq/dsp/curve"
	"github.com/cwbudde/algo-eq/dsp/eq"
	"github.com/cwbudde/algo-eq/processor"
)

// RefreshRate is how often the model polls the processor.
const RefreshRate = 30

// Lines taken by the header and the band legend.
const (
	headerLines = 2
	legendLines = 3
	minPlotRows = 4
)

// tickMsg drives polling.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/RefreshRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is the Bubbletea model for the live display.
type Model struct {
	proc *processor.Processor

	// Title is shown in the header, e.g. the signal being played.
	Title string

	// Terminal dimensions
	Width  int
	Height int

	// ShowInput draws the pre-EQ spectrum behind the output spectrum.
	ShowInput bool

	// Refreshes counts ticks that found new analysis data.
	Refreshes int
	Done      bool

	spectrum [2]curve.Path
	bands    [eq.NumBands]curve.Path
	combined curve.Path
}

// NewModel creates a display for proc.
func NewModel(proc *processor.Processor, title string) Model {
	return Model{
		proc:      proc,
		Title:     title,
		ShowInput: true,
	}
}

// Init starts the polling tick.
func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c":
			m.Done = true
			return m, tea.Quit
		case "0":
			m.proc.SetSolo(eq.NoSolo)
			m.refreshResponse()
		case "1", "2", "3", "4", "5", "6":
			m.toggleSolo(int(key[0] - '1'))
			m.refreshResponse()
		case "i":
			m.ShowInput = !m.ShowInput
		case "a":
			m.proc.SetAnalysisEnabled(!m.proc.AnalysisEnabled())
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.refreshSpectrum()
		m.refreshResponse()

	case tickMsg:
		if m.proc.HasNewAnalysisData() {
			m.Refreshes++
			m.refreshSpectrum()
		}
		// Parameters may change from other goroutines.
		m.refreshResponse()

		return m, tick()
	}

	return m, nil
}

func (m *Model) toggleSolo(index int) {
	if m.proc.Bank().Solo() == index {
		m.proc.SetSolo(eq.NoSolo)
		return
	}
	m.proc.SetSolo(index)
}

// plotBounds is the curve area in cell coordinates.
func (m Model) plotBounds() curve.Rect {
	cols := max(m.Width, 1)
	rows := max(m.Height-headerLines-legendLines, minPlotRows)

	return curve.NewRect(0, 0, float64(cols-1), float64(rows-1))
}

func (m *Model) refreshSpectrum() {
	if m.Width == 0 {
		return
	}
	bounds := m.plotBounds()
	m.spectrum[processor.Input] = m.proc.BuildSpectrumCurve(processor.Input, bounds, eq.MinFrequency)
	m.spectrum[processor.Output] = m.proc.BuildSpectrumCurve(processor.Output, bounds, eq.MinFrequency)
}

func (m *Model) refreshResponse() {
	if m.Width == 0 {
		return
	}
	bounds := m.plotBounds()
	for i := range m.bands {
		m.bands[i] = m.proc.BuildResponsePath(i, bounds)
	}
	m.combined = m.proc.BuildResponsePath(processor.CombinedCurve, bounds)
}

// View renders the UI
func (m Model) View() string {
	if m.Width == 0 {
		return "Initializing..."
	}

	return renderHeader(m) + "\n" + renderPlot(m) + "\n" + renderLegend(m)
}

func bandTint(b eq.Band) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", b.Colour.R, b.Colour.G, b.Colour.B))
}
