/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: engine_test.go
Description: Tests for the batch engine, its workers, counters and reporters.
*/

package core_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/kleascm/featuremin/pkg/core"
	"github.com/kleascm/featuremin/pkg/features"
	"github.com/kleascm/featuremin/pkg/inventory"
	"github.com/kleascm/featuremin/pkg/logging"
	"github.com/kleascm/featuremin/pkg/search"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pbmTable = `voiced nasal
p - -
b + -
m + +
`

func setupTable(t *testing.T) *features.Table {
	t.Helper()
	table, err := features.ReadTable(strings.NewReader(pbmTable))
	require.NoError(t, err)
	return table
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func languages() []inventory.Language {
	return []inventory.Language{
		{Name: "Full", Family: "Test", Phonemes: []string{"p", "b", "m"}},
		{Name: "Gappy", Family: "Test", Phonemes: []string{"p", "m", "x"}},
	}
}

// countingReporter records every event it sees
type countingReporter struct {
	mu        sync.Mutex
	targets   map[string]int
	completed []string
}

func (r *countingReporter) OnTargetDescribed(language string, _ *search.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.targets == nil {
		r.targets = make(map[string]int)
	}
	r.targets[language]++
}

func (r *countingReporter) OnLanguageCompleted(report *core.LanguageReport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completed = append(r.completed, report.Language)
}

// TestEngineRun tests a full run over two inventories
func TestEngineRun(t *testing.T) {
	engine := core.NewEngine(setupTable(t), core.Config{Workers: 4, TableName: "pbm"}, quietLogger())
	reporter := &countingReporter{}
	engine.SetReporter(reporter)

	report, err := engine.Run(context.Background(), languages())
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, "pbm", report.Table)
	require.Len(t, report.Languages, 2)

	full := report.Languages[0]
	assert.Equal(t, "Full", full.Language)
	assert.Equal(t, "Test", full.Family)
	assert.Equal(t, 3, full.NaturalClasses)
	assert.Empty(t, full.NonNatural)
	assert.Equal(t, 0, full.GreedyLonger)
	assert.Len(t, full.Results, 3)
	assert.Equal(t, map[string]int{"p": 1, "b": 2, "m": 1}, full.Summary.MinLengthsPhonemes)
	assert.Equal(t, "[+nasal]", full.Summary.MinDescriptions["m"][0].String())
	assert.Nil(t, full.Trees)

	gappy := report.Languages[1]
	assert.Equal(t, "Gappy", gappy.Language)
	assert.Equal(t, []string{"p", "m", "x"}, gappy.Phonemes)
	assert.Equal(t, []string{"x"}, gappy.Missing)
	assert.Equal(t, 2, gappy.NaturalClasses)
	assert.Equal(t, []string{"x"}, gappy.NonNatural)

	assert.Equal(t, int64(2), report.Stats.Languages)
	assert.Equal(t, int64(6), report.Stats.Targets)
	assert.Equal(t, int64(5), report.Stats.NaturalClasses)
	assert.Equal(t, int64(1), report.Stats.NonNatural)
	assert.Equal(t, int64(0), report.Stats.GreedyFailures)

	assert.Equal(t, map[string]int{"Full": 3, "Gappy": 3}, reporter.targets)
	assert.ElementsMatch(t, []string{"Full", "Gappy"}, reporter.completed)
}

// TestEngineTrees tests tree building and the partial tree limit
func TestEngineTrees(t *testing.T) {
	table := setupTable(t)
	lang := languages()[0]

	engine := core.NewEngine(table, core.Config{Workers: 1, Trees: true}, quietLogger())
	report, err := engine.RunLanguage(context.Background(), 0, lang)
	require.NoError(t, err)
	require.NotNil(t, report.Trees)
	assert.Equal(t, 1, report.Trees.BestCount)
	assert.Len(t, report.Trees.Trees, 3)
	assert.Empty(t, report.TreeError)

	engine = core.NewEngine(table, core.Config{Workers: 1, Trees: true, MaxPartialTrees: 1}, quietLogger())
	report, err = engine.RunLanguage(context.Background(), 0, lang)
	require.NoError(t, err)
	assert.Nil(t, report.Trees)
	assert.Contains(t, report.TreeError, "too many partial trees")
}

// TestEngineCancelled tests that a cancelled context stops the run
func TestEngineCancelled(t *testing.T) {
	engine := core.NewEngine(setupTable(t), core.Config{Workers: 2}, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Run(ctx, languages())
	assert.ErrorIs(t, err, context.Canceled)
}

// TestEngineDefaults tests the worker default and an empty run
func TestEngineDefaults(t *testing.T) {
	engine := core.NewEngine(setupTable(t), core.Config{}, nil)

	report, err := engine.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, report.Languages)
	assert.Equal(t, int64(0), engine.Stats().Snapshot().Targets)
}

// TestWorkerExecute tests results and counters of a worker
func TestWorkerExecute(t *testing.T) {
	worker := core.NewWorker(7, "Full", setupTable(t), search.Options{}, quietLogger())

	result, err := worker.Execute(core.Task{ID: "1", Language: "Full", Target: []string{"b", "m"}})
	require.NoError(t, err)
	assert.True(t, result.NaturalClass)
	assert.Equal(t, "[+voiced]", result.Minimal[0].String())

	_, err = worker.Execute(core.Task{ID: "2", Language: "Full", Target: []string{"x"}})
	assert.ErrorIs(t, err, features.ErrUnknownPhoneme)

	stats := worker.GetStats()
	assert.Equal(t, 7, stats["id"])
	assert.Equal(t, int64(2), stats["executions"])
	assert.Equal(t, int64(1), stats["failures"])
}

// TestBatchStats tests result folding and snapshots
func TestBatchStats(t *testing.T) {
	var s core.BatchStats
	s.RecordResult(&search.Result{NaturalClass: false})
	s.RecordResult(&search.Result{
		NaturalClass: true,
		Solutions:    search.Solutions{1: {features.Description{}}},
		Nodes:        4,
		GreedyFailed: true,
	})
	s.IncrementLanguages()

	snap := s.Snapshot()
	assert.Equal(t, int64(1), snap.Languages)
	assert.Equal(t, int64(2), snap.Targets)
	assert.Equal(t, int64(1), snap.NaturalClasses)
	assert.Equal(t, int64(1), snap.NonNatural)
	assert.Equal(t, int64(1), snap.GreedyFailures)
	assert.Equal(t, int64(1), snap.Solutions)
	assert.Equal(t, int64(4), snap.Nodes)
	assert.Zero(t, snap.Uptime)
}

// TestPrometheusReporter tests the metrics textfile after a run
func TestPrometheusReporter(t *testing.T) {
	prom := core.NewPrometheusReporter()
	engine := core.NewEngine(setupTable(t), core.Config{Workers: 2, Trees: true}, quietLogger())
	engine.SetReporter(core.MultiReporter{prom})

	_, err := engine.Run(context.Background(), languages())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "featuremin.prom")
	require.NoError(t, prom.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `featuremin_targets_total{result="natural"} 5`)
	assert.Contains(t, text, `featuremin_targets_total{result="non_natural"} 1`)
	assert.Contains(t, text, "featuremin_languages_total 2")
	assert.Contains(t, text, `featuremin_tree_best_count{language="Full"} 1`)
	assert.Contains(t, text, "featuremin_minimal_description_length_count 5")

	families, err := prom.Registry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

// TestLoggerReporter tests the log lines produced for a run
func TestLoggerReporter(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.NewLogger(&logging.LoggerConfig{
		Level:   logging.LogLevelInfo,
		Format:  logging.LogFormatCustom,
		Console: &buf,
	})
	require.NoError(t, err)
	defer logger.Close()

	engine := core.NewEngine(setupTable(t), core.Config{Workers: 1, Trees: true, MaxPartialTrees: 1}, quietLogger())
	engine.SetReporter(core.NewLoggerReporter(logger))

	_, err = engine.Run(context.Background(), languages()[:1])
	require.NoError(t, err)

	out := buf.String()
	assert.Equal(t, 3, strings.Count(out, "[TARGET] Target described"))
	assert.Contains(t, out, "[LANGUAGE] Language completed")
	assert.Contains(t, out, "[TREE] Tree search skipped")
}
