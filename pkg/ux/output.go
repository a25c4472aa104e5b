/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: output.go
Description: Terminal rendering for search results. Styled natural class verdicts,
description lists, per-language summaries, best trees and horizontal text bar charts
for the per-feature statistics.
*/

package ux

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kleascm/featuremin/pkg/core"
	"github.com/kleascm/featuremin/pkg/features"
	"github.com/kleascm/featuremin/pkg/search"
	"github.com/kleascm/featuremin/pkg/stats"
	"github.com/kleascm/featuremin/pkg/tree"
)

// Color palette
var (
	ColorPrimary = lipgloss.Color("#667EEA")
	ColorAccent  = lipgloss.Color("#764BA2")
	ColorSuccess = lipgloss.Color("#48BB78")
	ColorWarning = lipgloss.Color("#ED8936")
	ColorError   = lipgloss.Color("#E53E3E")
	ColorMuted   = lipgloss.Color("#718096")
)

// Styles provides pre-configured lipgloss styles
var Styles = struct {
	Title   lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Feature lipgloss.Style
	Bar     lipgloss.Style
	Box     lipgloss.Style
}{
	Title:   lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary),
	Bold:    lipgloss.NewStyle().Bold(true),
	Muted:   lipgloss.NewStyle().Foreground(ColorMuted),
	Success: lipgloss.NewStyle().Foreground(ColorSuccess),
	Warning: lipgloss.NewStyle().Foreground(ColorWarning),
	Error:   lipgloss.NewStyle().Foreground(ColorError),
	Feature: lipgloss.NewStyle().Foreground(ColorAccent),
	Bar:     lipgloss.NewStyle().Foreground(ColorPrimary),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorAccent).
		Padding(0, 1),
}

// Icon provides status icons
type Icon string

const (
	IconSuccess Icon = "✓"
	IconWarning Icon = "⚠"
	IconError   Icon = "✗"
	IconBullet  Icon = "•"
)

// Render returns the icon with appropriate styling
func (i Icon) Render() string {
	switch i {
	case IconSuccess:
		return Styles.Success.Render(string(i))
	case IconWarning:
		return Styles.Warning.Render(string(i))
	case IconError:
		return Styles.Error.Render(string(i))
	default:
		return string(i)
	}
}

// barRune draws the bars of text charts
const barRune = "█"

// DefaultBarWidth is the length of the longest bar
const DefaultBarWidth = 40

// Set formats phoneme names as {p, b, m}
func Set(phonemes []string) string {
	return "{" + strings.Join(phonemes, ", ") + "}"
}

// Description renders a description with styled features
func Description(d features.Description) string {
	if d.Len() == 0 {
		return Styles.Muted.Render("[]")
	}
	parts := make([]string, len(d))
	for i, sf := range d {
		parts[i] = Styles.Feature.Render(sf.String())
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// RenderResult renders the outcome of one Describe call
func RenderResult(r *search.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", Styles.Title.Render("Target"), Set(r.Target))
	fmt.Fprintf(&b, "  Candidate pool: %s\n", Description(r.Pool))

	if !r.NaturalClass {
		fmt.Fprintf(&b, "  %s Set is not a natural class\n", IconError.Render())
		return b.String()
	}

	fmt.Fprintf(&b, "  %s Set is a natural class\n", IconSuccess.Render())
	if len(r.Solutions) > 0 {
		fmt.Fprintf(&b, "  Minimal solution(s), length %d:\n", r.MinLength())
		for _, d := range r.Minimal {
			fmt.Fprintf(&b, "    %s %s\n", IconBullet.Render(), Description(d))
		}
		if count := r.Solutions.Count(); count > len(r.Minimal) {
			fmt.Fprintf(&b, "  %s\n", Styles.Muted.Render(fmt.Sprintf("%d descriptions found in total, %d nodes", count, r.Nodes)))
		}
	}

	switch {
	case r.GreedyFailed:
		fmt.Fprintf(&b, "  %s Greedy search found no description\n", IconWarning.Render())
	case r.Greedy != nil:
		fmt.Fprintf(&b, "  Greedy: %s\n", Description(r.Greedy))
	}

	return b.String()
}

// RenderBarChart draws ranked entries as horizontal bars scaled to width
func RenderBarChart(title string, entries []stats.Entry, width int) string {
	if width <= 0 {
		width = DefaultBarWidth
	}

	var b strings.Builder
	b.WriteString(Styles.Bold.Render(title))
	b.WriteString("\n")
	if len(entries) == 0 {
		b.WriteString(Styles.Muted.Render("  (no data)"))
		b.WriteString("\n")
		return b.String()
	}

	nameWidth := 0
	maxValue := 0.0
	for _, e := range entries {
		nameWidth = max(nameWidth, lipgloss.Width(e.Name))
		maxValue = math.Max(maxValue, e.Value)
	}

	for _, e := range entries {
		n := 0
		if maxValue > 0 {
			n = int(math.Round(e.Value / maxValue * float64(width)))
		}
		padding := strings.Repeat(" ", nameWidth-lipgloss.Width(e.Name))
		fmt.Fprintf(&b, "  %s%s %s %s\n", e.Name, padding, Styles.Bar.Render(strings.Repeat(barRune, n)), formatValue(e.Value))
	}

	return b.String()
}

// RenderLanguage renders a language report with its charts
func RenderLanguage(report *core.LanguageReport, width int) string {
	var b strings.Builder

	header := fmt.Sprintf("%s  %d phonemes, %d natural classes", report.Language, len(report.Phonemes), report.NaturalClasses)
	if report.Family != "" {
		header += "  (" + report.Family + ")"
	}
	b.WriteString(Styles.Box.Render(Styles.Title.Render(header)))
	b.WriteString("\n")

	if len(report.Missing) > 0 {
		fmt.Fprintf(&b, "%s Missing from the feature table: %s\n", IconWarning.Render(), Set(report.Missing))
	}
	if len(report.NonNatural) > 0 {
		fmt.Fprintf(&b, "%s Not natural classes: %s\n", IconError.Render(), Set(report.NonNatural))
	}

	if s := report.Summary; s != nil {
		for _, p := range report.Phonemes {
			descs, ok := s.MinDescriptions[p]
			if !ok {
				continue
			}
			rendered := make([]string, len(descs))
			for i, d := range descs {
				rendered[i] = Description(d)
			}
			fmt.Fprintf(&b, "  %s: %s\n", p, strings.Join(rendered, " "))
		}
		b.WriteString("\n")
		b.WriteString(RenderBarChart("Minimal description length per feature", stats.Ranked(s.MinLengths), width))
		b.WriteString(RenderBarChart("Average description length per feature", stats.Ranked(s.AvgLengths), width))
	}

	switch {
	case report.TreeError != "":
		fmt.Fprintf(&b, "%s Tree search skipped: %s\n", IconWarning.Render(), report.TreeError)
	case report.Trees != nil:
		b.WriteString(RenderTrees(report.Trees, report.Phonemes))
	}

	return b.String()
}

// RenderTrees renders every best tree in phoneme order
func RenderTrees(result *tree.Result, order []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d phonemes matched, %d best trees (%d partial trees, %d combinations)\n",
		Styles.Title.Render("Best trees"), result.BestCount, len(result.Trees), result.PartialTrees, result.Combinations)

	for i, t := range result.Trees {
		fmt.Fprintf(&b, "  %s\n", Styles.Muted.Render(fmt.Sprintf("tree %d", i+1)))
		for _, p := range order {
			d, ok := t[p]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "    %s: %s\n", p, Description(d))
		}
	}

	return b.String()
}

// RenderStats renders batch totals
func RenderStats(s core.StatsSnapshot) string {
	lines := []string{
		Styles.Title.Render("Batch statistics"),
		fmt.Sprintf("Languages:       %d", s.Languages),
		fmt.Sprintf("Targets:         %d", s.Targets),
		fmt.Sprintf("Natural classes: %d", s.NaturalClasses),
		fmt.Sprintf("Not natural:     %d", s.NonNatural),
		fmt.Sprintf("Greedy failures: %d", s.GreedyFailures),
		fmt.Sprintf("Search nodes:    %d", s.Nodes),
		fmt.Sprintf("Targets/sec:     %.1f", s.TargetsPerSecond),
	}
	return Styles.Box.Render(strings.Join(lines, "\n")) + "\n"
}

// formatValue prints integers without decimals
func formatValue(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
