// Package tui renders the interactive chat surface. All functions
// return strings; callers decide where output goes.
package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	colorBrand  = lipgloss.Color("#5FAFD7")
	colorDim    = lipgloss.Color("#7C6F64")
	colorAnswer = lipgloss.Color("#B8BB26")
	colorErr    = lipgloss.Color("#FB4934")
	colorBorder = lipgloss.Color("#504945")
	colorTool   = lipgloss.Color("#D3869B")
)

var (
	sBrand   = lipgloss.NewStyle().Bold(true).Foreground(colorBrand)
	sDim     = lipgloss.NewStyle().Foreground(colorDim)
	sAnswer  = lipgloss.NewStyle().Bold(true).Foreground(colorAnswer)
	sErr     = lipgloss.NewStyle().Bold(true).Foreground(colorErr)
	sBorder  = lipgloss.NewStyle().Foreground(colorBorder)
	sToolLog = lipgloss.NewStyle().Foreground(colorTool)
	sSection = lipgloss.NewStyle().Bold(true).Foreground(colorBrand)
)

// TermWidth returns the current terminal width, defaulting to 80.
func TermWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

func thinLine() string {
	return sBorder.Render(strings.Repeat("─", TermWidth()-1))
}

// Banner returns the startup header for the chat loop.
func Banner(version, model, server string, tools int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(thinLine())
	b.WriteString("\n\n")
	b.WriteString("  ")
	b.WriteString(sBrand.Render("parley"))
	b.WriteString(" ")
	b.WriteString(sDim.Render(version))
	b.WriteString("\n\n")
	b.WriteString("  ")
	b.WriteString(sDim.Render(fmt.Sprintf("model   %s", model)))
	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(sDim.Render(fmt.Sprintf("server  %s   tools  %d", server, tools)))
	b.WriteString("\n\n")
	b.WriteString(thinLine())
	b.WriteString("\n")
	b.WriteString(sDim.Render("  type a query · quit or ctrl-d to exit"))
	b.WriteString("\n")
	return b.String()
}

// Answer styles a finished answer. Tool log lines (the bracketed
// "[Used ...]" and "[Error: ...]" segments) get their own muted color
// so the surrounding prose stands out.
func Answer(text string) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(sAnswer.Render("parley"))
	b.WriteString("\n")
	for _, line := range strings.Split(text, "\n") {
		if isToolLogLine(line) {
			b.WriteString(sToolLog.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func isToolLogLine(line string) bool {
	return (strings.HasPrefix(line, "[Used ") || strings.HasPrefix(line, "[Error: ")) &&
		strings.HasSuffix(line, "]")
}

// Error styles a per-query failure. The loop keeps running after one.
func Error(err error) string {
	return fmt.Sprintf("\n%s %v\n", sErr.Render("error:"), err)
}

// Section renders one member listing block: a title, its entries, or a
// placeholder when the server exposes none.
func Section(title string, entries []string) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(sSection.Render(title))
	b.WriteString("\n")
	if len(entries) == 0 {
		b.WriteString(sDim.Render("  (none)"))
		b.WriteString("\n")
		return b.String()
	}
	for _, e := range entries {
		b.WriteString("  ")
		b.WriteString(e)
		b.WriteString("\n")
	}
	return b.String()
}

// Entry formats one catalog member, dimming the description so
// scanning by name stays easy.
func Entry(name, description string) string {
	if description == "" {
		return name
	}
	return fmt.Sprintf("%s  %s", name, sDim.Render(description))
}
