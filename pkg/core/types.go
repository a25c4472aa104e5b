/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: types.go
Description: Core types for the batch engine. Defines tasks (one target set of one
language), per-language reports, the batch report written at the end of a run, and the
atomic counters shared by every worker.
*/

package core

import (
	"sync/atomic"
	"time"

	"github.com/kleascm/featuremin/pkg/search"
	"github.com/kleascm/featuremin/pkg/stats"
	"github.com/kleascm/featuremin/pkg/tree"
)

// Task is a single unit of work: one target set in one language's inventory
type Task struct {
	ID       string   `json:"id"`       // Unique identifier within the run
	Language string   `json:"language"` // Language the inventory belongs to
	Target   []string `json:"target"`   // Phonemes to describe
}

// LanguageReport collects everything computed for one inventory
type LanguageReport struct {
	Language       string           `json:"language" yaml:"language"`
	Family         string           `json:"family,omitempty" yaml:"family,omitempty"`
	Phonemes       []string         `json:"phonemes" yaml:"phonemes"`
	Missing        []string         `json:"missing,omitempty" yaml:"missing,omitempty"` // Inventory phonemes absent from the feature table
	NaturalClasses int              `json:"natural_classes" yaml:"natural_classes"`
	NonNatural     []string         `json:"non_natural,omitempty" yaml:"non_natural,omitempty"`
	GreedyLonger   int              `json:"greedy_longer" yaml:"greedy_longer"` // Targets where greedy is longer than the minimal length
	Summary        *stats.Summary   `json:"summary" yaml:"summary"`
	Trees          *tree.Result     `json:"trees,omitempty" yaml:"trees,omitempty"`
	TreeError      string           `json:"tree_error,omitempty" yaml:"tree_error,omitempty"`
	Duration       time.Duration    `json:"duration" yaml:"duration"`
	Results        []*search.Result `json:"-" yaml:"-"` // Per-target results in inventory order
}

// BatchReport is the output of one engine run
type BatchReport struct {
	RunID       string            `json:"run_id" yaml:"run_id"`
	GeneratedAt time.Time         `json:"generated_at" yaml:"generated_at"`
	Table       string            `json:"table" yaml:"table"`
	Stats       StatsSnapshot     `json:"stats" yaml:"stats"`
	Languages   []*LanguageReport `json:"languages" yaml:"languages"`
}

// BatchStats tracks run-wide counters.
// Uses atomic operations so workers can update it concurrently.
type BatchStats struct {
	Languages      int64     // Languages completed
	Targets        int64     // Targets described
	NaturalClasses int64     // Targets that are natural classes
	NonNatural     int64     // Targets that are not
	GreedyFailures int64     // Greedy searches that found nothing
	Solutions      int64     // Descriptions stored by exhaustive searches
	Nodes          int64     // Exhaustive search nodes visited
	StartTime      time.Time // When the run started
}

// StatsSnapshot is a consistent copy of BatchStats for reporting
type StatsSnapshot struct {
	Languages        int64         `json:"languages" yaml:"languages"`
	Targets          int64         `json:"targets" yaml:"targets"`
	NaturalClasses   int64         `json:"natural_classes" yaml:"natural_classes"`
	NonNatural       int64         `json:"non_natural" yaml:"non_natural"`
	GreedyFailures   int64         `json:"greedy_failures" yaml:"greedy_failures"`
	Solutions        int64         `json:"solutions" yaml:"solutions"`
	Nodes            int64         `json:"nodes" yaml:"nodes"`
	Uptime           time.Duration `json:"uptime" yaml:"uptime"`
	TargetsPerSecond float64       `json:"targets_per_second" yaml:"targets_per_second"`
}

// RecordResult folds one target result into the counters
func (s *BatchStats) RecordResult(r *search.Result) {
	atomic.AddInt64(&s.Targets, 1)
	if !r.NaturalClass {
		atomic.AddInt64(&s.NonNatural, 1)
		return
	}
	atomic.AddInt64(&s.NaturalClasses, 1)
	atomic.AddInt64(&s.Solutions, int64(r.Solutions.Count()))
	atomic.AddInt64(&s.Nodes, int64(r.Nodes))
	if r.GreedyFailed {
		atomic.AddInt64(&s.GreedyFailures, 1)
	}
}

// IncrementLanguages atomically increments the language counter
func (s *BatchStats) IncrementLanguages() {
	atomic.AddInt64(&s.Languages, 1)
}

// Snapshot returns the current counters
func (s *BatchStats) Snapshot() StatsSnapshot {
	snap := StatsSnapshot{
		Languages:      atomic.LoadInt64(&s.Languages),
		Targets:        atomic.LoadInt64(&s.Targets),
		NaturalClasses: atomic.LoadInt64(&s.NaturalClasses),
		NonNatural:     atomic.LoadInt64(&s.NonNatural),
		GreedyFailures: atomic.LoadInt64(&s.GreedyFailures),
		Solutions:      atomic.LoadInt64(&s.Solutions),
		Nodes:          atomic.LoadInt64(&s.Nodes),
	}
	if !s.StartTime.IsZero() {
		snap.Uptime = time.Since(s.StartTime)
		if secs := snap.Uptime.Seconds(); secs > 0 {
			snap.TargetsPerSecond = float64(snap.Targets) / secs
		}
	}
	return snap
}
