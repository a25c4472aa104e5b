/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: batch.go
Description: Batch command. Runs every language of a dataset through the parallel
engine with logging and Prometheus reporters, then writes the batch report, the
natural class listings, the optional HTML dashboard and the optional metrics file.
*/

package commands

import (
	"errors"
	"fmt"

	"github.com/kleascm/featuremin/pkg/core"
	"github.com/kleascm/featuremin/pkg/export"
	"github.com/kleascm/featuremin/pkg/inventory"
	"github.com/kleascm/featuremin/pkg/reporting"
	"github.com/kleascm/featuremin/pkg/ux"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunBatch processes a languages dataset
func RunBatch(cmd *cobra.Command, args []string) error {
	logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Close()

	path := viper.GetString("languages")
	if path == "" {
		return errors.New("no languages file given (use --languages or FEATUREMIN_LANGUAGES)")
	}

	table, err := loadTable()
	if err != nil {
		return err
	}
	languages, err := inventory.LoadLanguages(path)
	if err != nil {
		return fmt.Errorf("failed to load languages: %w", err)
	}
	if len(languages) == 0 {
		return fmt.Errorf("%w: %s", inventory.ErrEmptyInventory, path)
	}

	engine := core.NewEngine(table, engineConfig(), logger.GetLogger())
	metrics := core.NewPrometheusReporter()
	engine.SetReporter(core.MultiReporter{core.NewLoggerReporter(logger), metrics})

	ctx, cancel := signalContext(logger)
	defer cancel()

	report, err := engine.Run(ctx, languages)
	if err != nil {
		return fmt.Errorf("batch run failed: %w", err)
	}

	logger.LogBatchStats(report.Stats.Languages, report.Stats.Targets, report.Stats.NaturalClasses, report.Stats.TargetsPerSecond, map[string]interface{}{
		"run_id":          report.RunID,
		"greedy_failures": report.Stats.GreedyFailures,
	})

	out := cmd.OutOrStdout()
	for _, lr := range report.Languages {
		fmt.Fprint(out, ux.RenderLanguage(lr, ux.DefaultBarWidth))
		fmt.Fprintln(out)
	}
	fmt.Fprint(out, ux.RenderStats(report.Stats))

	if metricsFile := viper.GetString("metrics_file"); metricsFile != "" {
		if err := metrics.WriteTextfile(metricsFile); err != nil {
			return err
		}
		logger.Info("Metrics written", map[string]interface{}{"path": metricsFile})
	}

	dir := viper.GetString("output_dir")
	if dir == "" {
		return nil
	}

	for _, lr := range report.Languages {
		if _, err := export.WriteNaturalClassesFile(dir, lr.Language, lr.Results); err != nil {
			return err
		}
	}

	if viper.GetBool("dashboard") {
		generator := reporting.NewDashboardGenerator(dir, logger.GetLogger())
		if _, err := generator.GenerateDashboard(report, ""); err != nil {
			return fmt.Errorf("failed to generate dashboard: %w", err)
		}
	}

	return writeResult("batch", report, logger)
}
