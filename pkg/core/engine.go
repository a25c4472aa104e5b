/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: engine.go
Description: Batch engine. Fans languages out over a bounded pool of goroutines; each
language restricts the shared feature table to its inventory, describes every phoneme as
a singleton target, summarizes the descriptions and optionally builds the best trees.
Reports come back in input order whatever order the languages finish in.
*/

package core

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/kleascm/featuremin/pkg/features"
	"github.com/kleascm/featuremin/pkg/inventory"
	"github.com/kleascm/featuremin/pkg/search"
	"github.com/kleascm/featuremin/pkg/stats"
	"github.com/kleascm/featuremin/pkg/tree"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Config controls a batch run
type Config struct {
	Workers         int    // Languages processed in parallel (0 = NumCPU)
	SkipGreedy      bool   // Do not run the greedy search
	Trees           bool   // Build best trees per language
	MaxPartialTrees int    // Tree search limit (0 = unlimited)
	TableName       string // Recorded in the batch report
}

// Engine runs natural class searches over many inventories
type Engine struct {
	table    *features.Table
	config   Config
	logger   *logrus.Logger
	reporter Reporter
	stats    *BatchStats
}

// NewEngine creates an engine over the full feature table
func NewEngine(table *features.Table, config Config, logger *logrus.Logger) *Engine {
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Engine{
		table:    table,
		config:   config,
		logger:   logger,
		reporter: MultiReporter{},
		stats:    &BatchStats{},
	}
}

// SetReporter installs the telemetry hooks
func (e *Engine) SetReporter(r Reporter) {
	e.reporter = r
}

// Stats returns the run counters
func (e *Engine) Stats() *BatchStats {
	return e.stats
}

// Run processes every language and returns the batch report.
// A search defect or a cancelled context stops the run.
func (e *Engine) Run(ctx context.Context, languages []inventory.Language) (*BatchReport, error) {
	e.stats.StartTime = time.Now()
	e.logger.WithFields(logrus.Fields{
		"languages": len(languages),
		"workers":   e.config.Workers,
		"trees":     e.config.Trees,
	}).Info("Starting batch run")

	reports := make([]*LanguageReport, len(languages))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.Workers)

	for i, lang := range languages {
		i, lang := i, lang
		g.Go(func() error {
			report, err := e.RunLanguage(gCtx, i, lang)
			if err != nil {
				return fmt.Errorf("language %s: %w", lang.Name, err)
			}
			reports[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	snapshot := e.stats.Snapshot()
	e.logger.WithFields(logrus.Fields{
		"languages":          snapshot.Languages,
		"targets":            snapshot.Targets,
		"natural_classes":    snapshot.NaturalClasses,
		"greedy_failures":    snapshot.GreedyFailures,
		"targets_per_second": snapshot.TargetsPerSecond,
	}).Info("Batch run completed")

	return &BatchReport{
		RunID:       uuid.New().String(),
		GeneratedAt: time.Now(),
		Table:       e.config.TableName,
		Stats:       snapshot,
		Languages:   reports,
	}, nil
}

// RunLanguage describes every phoneme of one inventory
func (e *Engine) RunLanguage(ctx context.Context, workerID int, lang inventory.Language) (*LanguageReport, error) {
	start := time.Now()

	table, missing, err := e.table.Restrict(lang.Phonemes)
	if err != nil {
		return nil, fmt.Errorf("failed to restrict table: %w", err)
	}
	if len(missing) > 0 {
		e.logger.WithFields(logrus.Fields{
			"language": lang.Name,
			"missing":  missing,
		}).Warn("Inventory phonemes missing from feature table")
	}

	worker := NewWorker(workerID, lang.Name, table, search.Options{SkipGreedy: e.config.SkipGreedy}, e.logger)
	report := &LanguageReport{
		Language: lang.Name,
		Family:   lang.Family,
		Phonemes: table.Phonemes(),
		Missing:  missing,
	}

	perPhoneme := make(map[string][]features.Description)
	for _, phoneme := range table.Phonemes() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		task := Task{
			ID:       fmt.Sprintf("%s/%s", lang.Name, phoneme),
			Language: lang.Name,
			Target:   []string{phoneme},
		}
		result, err := worker.Execute(task)
		if err != nil {
			return nil, err
		}

		e.stats.RecordResult(result)
		e.reporter.OnTargetDescribed(lang.Name, result)
		report.Results = append(report.Results, result)

		if !result.NaturalClass {
			report.NonNatural = append(report.NonNatural, phoneme)
			continue
		}
		report.NaturalClasses++
		perPhoneme[phoneme] = result.Solutions.All()
		if !result.GreedyFailed && result.Greedy != nil && result.Greedy.Len() > result.MinLength() {
			report.GreedyLonger++
		}
	}

	report.Summary = stats.Summarize(perPhoneme, table.FeatureNames())

	if e.config.Trees {
		trees, err := tree.Build(table, report.Summary.MinDescriptions, tree.Options{MaxPartialTrees: e.config.MaxPartialTrees})
		switch {
		case errors.Is(err, tree.ErrTooManyPartialTrees):
			report.TreeError = err.Error()
		case err != nil:
			return nil, fmt.Errorf("failed to build trees: %w", err)
		default:
			report.Trees = trees
		}
	}

	report.Duration = time.Since(start)
	e.stats.IncrementLanguages()
	e.reporter.OnLanguageCompleted(report)

	return report, nil
}
