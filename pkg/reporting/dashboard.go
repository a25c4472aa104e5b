/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: dashboard.go
Description: HTML dashboard for batch runs. Renders one section per language with
feature-importance bar charts (minimal and average description length per feature,
minimal description lengths), the minimal descriptions of every phoneme and the first
best tree, plus the run totals.
*/

package reporting

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/kleascm/featuremin/pkg/core"
	"github.com/kleascm/featuremin/pkg/stats"
	"github.com/sirupsen/logrus"
)

// DashboardFile is the name of the generated page
const DashboardFile = "dashboard.html"

// DashboardGenerator creates HTML dashboards
type DashboardGenerator struct {
	outputDir string
	logger    *logrus.Logger
	templates *template.Template
}

// DashboardData contains all data for dashboard generation
type DashboardData struct {
	Title       string             `json:"title"`
	GeneratedAt time.Time          `json:"generated_at"`
	SessionID   string             `json:"session_id"`
	RunID       string             `json:"run_id"`
	Table       string             `json:"table"`
	Stats       core.StatsSnapshot `json:"stats"`
	Languages   []*LanguageSection `json:"languages"`
}

// LanguageSection is the part of the page for one inventory
type LanguageSection struct {
	Name           string           `json:"name"`
	Family         string           `json:"family"`
	Phonemes       int              `json:"phonemes"`
	NaturalClasses int              `json:"natural_classes"`
	NonNatural     []string         `json:"non_natural"`
	GreedyLonger   int              `json:"greedy_longer"`
	Missing        []string         `json:"missing"`
	Descriptions   []DescriptionRow `json:"descriptions"`
	BestCount      int              `json:"best_count"`
	BestTrees      int              `json:"best_trees"`
	BestTree       []DescriptionRow `json:"best_tree"`
	TreeError      string           `json:"tree_error"`
	Charts         []*ChartConfig   `json:"charts"`
}

// DescriptionRow lists the descriptions of one phoneme
type DescriptionRow struct {
	Phoneme      string   `json:"phoneme"`
	Length       int      `json:"length"`
	Descriptions []string `json:"descriptions"`
}

// ChartConfig is a Chart.js configuration object
type ChartConfig struct {
	Type    string                 `json:"type"`
	Data    map[string]interface{} `json:"data"`
	Options map[string]interface{} `json:"options"`
}

// NewDashboardGenerator creates a new dashboard generator
func NewDashboardGenerator(outputDir string, logger *logrus.Logger) *DashboardGenerator {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &DashboardGenerator{
		outputDir: outputDir,
		logger:    logger,
		templates: template.Must(template.New("dashboard").Parse(dashboardTemplate)),
	}
}

// GenerateDashboard writes dashboard.html for a batch report and returns its path
func (dg *DashboardGenerator) GenerateDashboard(report *core.BatchReport, title string) (string, error) {
	if err := os.MkdirAll(dg.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	data := BuildDashboardData(report, title)

	outputFile := filepath.Join(dg.outputDir, DashboardFile)
	file, err := os.Create(outputFile)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := dg.templates.Execute(file, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	dg.logger.WithFields(logrus.Fields{
		"path":      outputFile,
		"languages": len(data.Languages),
		"session":   data.SessionID,
	}).Info("Dashboard generated")
	return outputFile, nil
}

// BuildDashboardData prepares the template data for a batch report
func BuildDashboardData(report *core.BatchReport, title string) *DashboardData {
	if title == "" {
		title = "Feature Minimization Report"
	}
	data := &DashboardData{
		Title:       title,
		GeneratedAt: time.Now(),
		SessionID:   uuid.New().String(),
		RunID:       report.RunID,
		Table:       report.Table,
		Stats:       report.Stats,
	}
	for _, lr := range report.Languages {
		if lr != nil {
			data.Languages = append(data.Languages, buildSection(lr))
		}
	}
	return data
}

// buildSection converts one language report
func buildSection(lr *core.LanguageReport) *LanguageSection {
	section := &LanguageSection{
		Name:           lr.Language,
		Family:         lr.Family,
		Phonemes:       len(lr.Phonemes),
		NaturalClasses: lr.NaturalClasses,
		NonNatural:     lr.NonNatural,
		GreedyLonger:   lr.GreedyLonger,
		Missing:        lr.Missing,
		TreeError:      lr.TreeError,
	}

	if s := lr.Summary; s != nil {
		for _, p := range lr.Phonemes {
			descs, ok := s.MinDescriptions[p]
			if !ok {
				continue
			}
			row := DescriptionRow{Phoneme: p, Length: s.MinLengthsPhonemes[p]}
			for _, d := range descs {
				row.Descriptions = append(row.Descriptions, d.String())
			}
			section.Descriptions = append(section.Descriptions, row)
		}

		section.Charts = []*ChartConfig{
			barChart("Minimal description length per feature", "Length", stats.Ranked(s.MinLengths), "rgba(102, 126, 234, 0.7)"),
			barChart("Average description length per feature", "Length", stats.Ranked(s.AvgLengths), "rgba(118, 75, 162, 0.7)"),
			barChart("Minimal descriptions per feature", "Count", stats.Ranked(s.CountPhoneme), "rgba(72, 187, 120, 0.7)"),
			lengthChart(s.CountLengths),
		}
	}

	if lr.Trees != nil {
		section.BestCount = lr.Trees.BestCount
		section.BestTrees = len(lr.Trees.Trees)
		if len(lr.Trees.Trees) > 0 {
			best := lr.Trees.Trees[0]
			for _, p := range lr.Phonemes {
				d, ok := best[p]
				if !ok {
					continue
				}
				section.BestTree = append(section.BestTree, DescriptionRow{
					Phoneme:      p,
					Length:       d.Len(),
					Descriptions: []string{d.String()},
				})
			}
		}
	}

	return section
}

// barChart creates a bar chart over ranked entries
func barChart(title string, axis string, entries []stats.Entry, color string) *ChartConfig {
	labels := make([]string, len(entries))
	values := make([]float64, len(entries))
	for i, e := range entries {
		labels[i] = e.Name
		values[i] = e.Value
	}
	return &ChartConfig{
		Type: "bar",
		Data: map[string]interface{}{
			"labels": labels,
			"datasets": []map[string]interface{}{
				{
					"label":           axis,
					"data":            values,
					"backgroundColor": color,
				},
			},
		},
		Options: chartOptions(title),
	}
}

// lengthChart shows how many minimal descriptions have each length
func lengthChart(counts map[int]int) *ChartConfig {
	lengths := make([]int, 0, len(counts))
	for l := range counts {
		lengths = append(lengths, l)
	}
	sort.Ints(lengths)

	labels := make([]string, len(lengths))
	values := make([]int, len(lengths))
	for i, l := range lengths {
		labels[i] = fmt.Sprintf("%d", l)
		values[i] = counts[l]
	}
	return &ChartConfig{
		Type: "bar",
		Data: map[string]interface{}{
			"labels": labels,
			"datasets": []map[string]interface{}{
				{
					"label":           "Minimal descriptions",
					"data":            values,
					"backgroundColor": "rgba(237, 137, 54, 0.7)",
				},
			},
		},
		Options: chartOptions("Minimal description lengths"),
	}
}

func chartOptions(title string) map[string]interface{} {
	return map[string]interface{}{
		"responsive":          true,
		"maintainAspectRatio": false,
		"plugins": map[string]interface{}{
			"title":  map[string]interface{}{"display": true, "text": title},
			"legend": map[string]interface{}{"display": false},
		},
		"scales": map[string]interface{}{
			"y": map[string]interface{}{
				"beginAtZero": true,
			},
		},
	}
}
