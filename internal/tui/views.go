package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cwbudde/algo-eq/dsp/eq"
	"github.com/cwbudde/algo-eq/processor"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A40000"))

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))

	layerStyles = map[layer]lipgloss.Style{
		layerGrid:     lipgloss.NewStyle().Foreground(lipgloss.Color("#333333")),
		layerInput:    lipgloss.NewStyle().Foreground(lipgloss.Color("#555555")),
		layerOutput:   lipgloss.NewStyle().Foreground(lipgloss.Color("#1E90FF")),
		layerBand:     lipgloss.NewStyle(),
		layerCombined: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true),
	}
)

// renderHeader renders the title line and the status line
func renderHeader(m Model) string {
	title := titleStyle.Render("eqscope")
	if m.Title != "" {
		title += " " + subtitleStyle.Render(m.Title)
	}

	analysis := "on"
	if !m.proc.AnalysisEnabled() {
		analysis = "off"
	}
	status := subtitleStyle.Render(fmt.Sprintf("%.0f Hz | solo %s | analysis %s | %d refreshes",
		m.proc.SampleRate(), soloLabel(m.proc.Bank()), analysis, m.Refreshes))

	return title + "\n" + status
}

// renderPlot draws spectra behind the filter responses.
func renderPlot(m Model) string {
	bounds := m.plotBounds()
	c := newCanvas(int(bounds.Width)+1, int(bounds.Height)+1)
	c.hline(int(bounds.CentreY() + 0.5))

	if m.ShowInput {
		c.plot(m.spectrum[processor.Input], layerInput, "")
	}
	c.plot(m.spectrum[processor.Output], layerOutput, "")

	bank := m.proc.Bank()
	for i, b := range bank.Bands() {
		if bank.Bypassed(i) {
			continue
		}
		c.plot(m.bands[i], layerBand, bandTint(b))
	}
	c.plot(m.combined, layerCombined, "")

	return c.render(layerStyles)
}

// renderLegend lists the bands with their key, colour and settings
func renderLegend(m Model) string {
	bank := m.proc.Bank()
	solo := bank.Solo()

	var b strings.Builder
	for i, band := range bank.Bands() {
		entry := fmt.Sprintf("[%d] %s %s %.0fHz %+.1fdB", i+1, band.Name, band.Type, band.Frequency, band.GainDB())
		style := lipgloss.NewStyle().Foreground(bandTint(band))
		switch {
		case i == solo:
			style = style.Bold(true).Underline(true)
		case bank.Bypassed(i):
			style = dimStyle
		}
		b.WriteString(style.Render(entry))
		if i%3 == 2 {
			b.WriteString("\n")
		} else {
			b.WriteString("  ")
		}
	}
	b.WriteString(subtitleStyle.Render("1-6 solo | 0 clear | i input | a analysis | q quit"))

	return b.String()
}

// soloLabel describes the solo state for status output.
func soloLabel(bank *eq.Bank) string {
	s := bank.Solo()
	if s == eq.NoSolo {
		return "none"
	}
	b, _ := bank.Band(s)
	return b.Name
}
