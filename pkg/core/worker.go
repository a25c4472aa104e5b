/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: worker.go
Description: Worker implementation for the batch engine. A worker owns one language's
restricted feature table and describes its targets one after another; every search it
runs keeps its own state, so workers never share anything but read-only data.
*/

package core

import (
	"fmt"
	"sync"
	"time"

	"github.com/kleascm/featuremin/pkg/features"
	"github.com/kleascm/featuremin/pkg/search"
	"github.com/sirupsen/logrus"
)

// Worker describes the targets of a single inventory
type Worker struct {
	ID       int             // Unique worker identifier
	Language string          // Language name for logging
	table    *features.Table // Restricted, read-only table
	options  search.Options  // Which searches to run
	logger   *logrus.Logger  // Worker-specific logger

	// Performance tracking
	executions int64         // Targets described
	failures   int64         // Targets that returned an error
	busy       time.Duration // Time spent searching
	startTime  time.Time     // When worker was created

	mu sync.RWMutex // Thread safety for the counters
}

// NewWorker creates a new worker over a restricted table
func NewWorker(id int, language string, table *features.Table, options search.Options, logger *logrus.Logger) *Worker {
	return &Worker{
		ID:        id,
		Language:  language,
		table:     table,
		options:   options,
		logger:    logger,
		startTime: time.Now(),
	}
}

// Execute describes one task's target set
func (w *Worker) Execute(task Task) (*search.Result, error) {
	fields := logrus.Fields{
		"worker":   w.ID,
		"language": w.Language,
		"task":     task.ID,
		"target":   task.Target,
	}

	result, err := search.DescribePhonemes(w.table, task.Target, w.options)

	w.mu.Lock()
	w.executions++
	if err != nil {
		w.failures++
	} else {
		w.busy += result.Duration
	}
	w.mu.Unlock()

	if err != nil {
		w.logger.WithFields(fields).Errorf("Search failed: %v", err)
		return nil, fmt.Errorf("search failed for %v: %w", task.Target, err)
	}

	fields["natural_class"] = result.NaturalClass
	fields["duration"] = result.Duration
	if result.NaturalClass {
		fields["min_length"] = result.MinLength()
		fields["solutions"] = result.Solutions.Count()
		fields["nodes"] = result.Nodes
	}
	if result.GreedyErr != nil {
		fields["greedy"] = result.GreedyErr.Error()
		w.logger.WithFields(fields).Warn("Greedy search found no description")
	} else {
		w.logger.WithFields(fields).Debug("Target described")
	}

	return result, nil
}

// GetStats returns worker performance statistics
func (w *Worker) GetStats() map[string]interface{} {
	w.mu.RLock()
	defer w.mu.RUnlock()

	stats := make(map[string]interface{})
	stats["id"] = w.ID
	stats["language"] = w.Language
	stats["executions"] = w.executions
	stats["failures"] = w.failures
	stats["busy"] = w.busy
	stats["uptime"] = time.Since(w.startTime)

	// Calculate execution rate
	if busy := w.busy.Seconds(); busy > 0 {
		stats["targets_per_second"] = float64(w.executions) / busy
	}

	return stats
}
