package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"lasergcode/internal/gcode"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")). // Grey
			Width(16)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

// Report formats the analysis of a program for the terminal.
func Report(name string, p *gcode.Program, s gcode.Summary) string {
	rows := [][2]string{
		{"Commands", fmt.Sprint(p.Len())},
		{"Laser on", fmt.Sprintf("%.3f mm in %s", s.TravelOn, duration(s.TimeOn))},
		{"Laser off", fmt.Sprintf("%.3f mm in %s", s.TravelOff, duration(s.TimeOff))},
		{"Total", fmt.Sprintf("%.3f mm in %s", s.Travel(), duration(s.EstimatedTime()))},
		{"Drawing X", formatRange(s.Range.Drawing.X)},
		{"Drawing Y", formatRange(s.Range.Drawing.Y)},
		{"Moving X", formatRange(s.Range.Moving.X)},
		{"Moving Y", formatRange(s.Range.Moving.Y)},
		{"Power", formatRange(s.Range.Power.Range)},
	}
	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(labelStyle.Render(r[0]))
		b.WriteString(valueStyle.Render(r[1]))
	}
	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(name), boxStyle.Render(b.String()))
}

func formatRange(r gcode.Range) string {
	if !r.Valid() {
		return "n/a"
	}
	return fmt.Sprintf("%.3f .. %.3f", r.Min, r.Max)
}

func duration(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}
