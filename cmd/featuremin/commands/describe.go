/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: describe.go
Description: Single inventory commands. describe searches one target set, denote
evaluates a written description, classes describes every phoneme of the inventory and
tree builds its best feature trees.
*/

package commands

import (
	"fmt"
	"strings"

	"github.com/kleascm/featuremin/pkg/core"
	"github.com/kleascm/featuremin/pkg/export"
	"github.com/kleascm/featuremin/pkg/features"
	"github.com/kleascm/featuremin/pkg/logging"
	"github.com/kleascm/featuremin/pkg/search"
	"github.com/kleascm/featuremin/pkg/ux"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunDescribe describes the phonemes given as arguments
func RunDescribe(cmd *cobra.Command, args []string) error {
	logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Close()

	table, lang, err := restrictedTable(logger)
	if err != nil {
		return err
	}

	result, err := search.DescribePhonemes(table, args, searchOptions())
	if err != nil {
		return fmt.Errorf("failed to describe %v: %w", args, err)
	}

	logger.LogTarget(lang, result.Target, result.NaturalClass, result.MinLength(), map[string]interface{}{
		"nodes":    result.Nodes,
		"duration": result.Duration,
	})
	fmt.Fprint(cmd.OutOrStdout(), ux.RenderResult(result))

	return writeResult("describe_"+strings.Join(result.Target, "_"), result, logger)
}

// RunDenote prints the phonemes a description picks out
func RunDenote(cmd *cobra.Command, args []string) error {
	logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Close()

	table, _, err := restrictedTable(logger)
	if err != nil {
		return err
	}

	d, err := features.ParseDescription(args[0])
	if err != nil {
		return err
	}
	for _, name := range d.Names() {
		if _, ok := table.Feature(name); !ok {
			return fmt.Errorf("%w: %q", features.ErrUnknownFeature, name)
		}
	}

	denotation := search.Denotation(table, d)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", ux.Description(d), ux.Set(table.Names(denotation)))

	if denotation.Empty() {
		fmt.Fprintf(out, "  %s Picks out no phoneme\n", ux.IconWarning.Render())
		return nil
	}

	result, err := search.Describe(table, denotation, search.Options{SkipGreedy: true})
	if err != nil {
		return err
	}
	if shortest := result.MinLength(); shortest >= 0 && d.Len() > shortest {
		fmt.Fprintf(out, "  %s Not minimal, shortest length is %d\n", ux.IconWarning.Render(), shortest)
		for _, m := range result.Minimal {
			fmt.Fprintf(out, "    %s %s\n", ux.IconBullet.Render(), ux.Description(m))
		}
	} else {
		fmt.Fprintf(out, "  %s Minimal\n", ux.IconSuccess.Render())
	}

	return nil
}

// RunClasses describes every phoneme of the inventory
func RunClasses(cmd *cobra.Command, args []string) error {
	return runInventory(cmd, false)
}

// RunTree builds the best trees of the inventory
func RunTree(cmd *cobra.Command, args []string) error {
	return runInventory(cmd, true)
}

// runInventory runs the engine on the configured inventory
func runInventory(cmd *cobra.Command, treesOnly bool) error {
	logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Close()

	table, err := loadTable()
	if err != nil {
		return err
	}
	lang, err := loadInventory(table)
	if err != nil {
		return err
	}

	config := engineConfig()
	config.Trees = config.Trees || treesOnly
	engine := core.NewEngine(table, config, logger.GetLogger())
	engine.SetReporter(core.NewLoggerReporter(logger))

	ctx, cancel := signalContext(logger)
	defer cancel()

	report, err := engine.RunLanguage(ctx, 0, lang)
	if err != nil {
		return fmt.Errorf("failed to process %s: %w", lang.Name, err)
	}

	out := cmd.OutOrStdout()
	if treesOnly {
		if report.TreeError != "" {
			return fmt.Errorf("tree search for %s: %s", lang.Name, report.TreeError)
		}
		fmt.Fprint(out, ux.RenderTrees(report.Trees, report.Phonemes))
		return writeResult(lang.Name+"_trees", report.Trees, logger)
	}

	fmt.Fprint(out, ux.RenderLanguage(report, ux.DefaultBarWidth))

	if dir := viper.GetString("output_dir"); dir != "" {
		path, err := export.WriteNaturalClassesFile(dir, lang.Name, report.Results)
		if err != nil {
			return err
		}
		logger.Info("Natural classes written", map[string]interface{}{"path": path})
	}
	return writeResult(lang.Name, report, logger)
}

// restrictedTable loads the table restricted to the configured inventory
func restrictedTable(logger *logging.Logger) (*features.Table, string, error) {
	table, err := loadTable()
	if err != nil {
		return nil, "", err
	}
	lang, err := loadInventory(table)
	if err != nil {
		return nil, "", err
	}

	restricted, missing, err := table.Restrict(lang.Phonemes)
	if err != nil {
		return nil, "", fmt.Errorf("failed to restrict table: %w", err)
	}
	if len(missing) > 0 {
		logger.Warning("Inventory phonemes missing from feature table", map[string]interface{}{
			"language": lang.Name,
			"missing":  missing,
		})
	}
	return restricted, lang.Name, nil
}

// writeResult exports value when an output directory is configured
func writeResult(name string, value interface{}, logger *logging.Logger) error {
	dir := viper.GetString("output_dir")
	if dir == "" {
		return nil
	}

	format, err := export.ParseFormat(viper.GetString("format"))
	if err != nil {
		return err
	}
	path, err := export.Write(dir, name, format, value)
	if err != nil {
		return err
	}

	logger.Info("Result written", map[string]interface{}{"path": path})
	return nil
}
