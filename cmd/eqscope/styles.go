package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	primaryColor = lipgloss.Color("#A40000")
	mutedColor   = lipgloss.Color("#888888")
)

var (
	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	hintStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)
)

// printError prints an error message
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", errorStyle.Render("Error:"), err)
	fmt.Fprintln(w, hintStyle.Render("Run with --help for usage."))
}
