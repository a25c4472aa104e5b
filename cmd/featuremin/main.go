/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Command-line interface for featuremin. Finds the minimal feature
descriptions of phoneme sets, checks which sets are natural classes, builds best
feature trees and runs whole language datasets in parallel. Flags are bound to viper
keys so every option can also come from a config file or FEATUREMIN_* variables.
*/

package main

import (
	"fmt"
	"os"

	"github.com/kleascm/featuremin/cmd/featuremin/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "featuremin",
		Short: "featuremin - minimal feature descriptions of phoneme sets",
		Long: `featuremin reads a phonological feature table and finds, for a set of phonemes,
every shortest conjunction of signed features that picks out exactly that set. Sets
with no such description are reported as not being natural classes.`,
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags shared by every command
	rootCmd.PersistentFlags().String("config", "", "Configuration file path")
	rootCmd.PersistentFlags().String("log-level", "info", "Logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "custom", "Log format (text, json, custom)")
	rootCmd.PersistentFlags().String("log-dir", "", "Directory for log files (empty = console only)")
	rootCmd.PersistentFlags().Int("log-max-files", 10, "Maximum number of log files to keep")

	rootCmd.PersistentFlags().StringP("table", "t", "", "Feature table file")
	rootCmd.PersistentFlags().StringP("language-file", "l", "", "Phoneme inventory, one phoneme per line (default: every phoneme of the table)")
	rootCmd.PersistentFlags().String("languages", "", "Languages CSV with columns language, family, core inventory")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Directory for result files (empty = no files)")
	rootCmd.PersistentFlags().String("format", "json", "Result file format (json, yaml)")
	rootCmd.PersistentFlags().Bool("greedy", true, "Also run the greedy search")
	rootCmd.PersistentFlags().Bool("trees", false, "Build best feature trees")
	rootCmd.PersistentFlags().Int("max-partial-trees", 20, "Largest number of distinct partial trees to combine (0 = unlimited)")

	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("log_dir", rootCmd.PersistentFlags().Lookup("log-dir"))
	viper.BindPFlag("log_max_files", rootCmd.PersistentFlags().Lookup("log-max-files"))
	viper.BindPFlag("table", rootCmd.PersistentFlags().Lookup("table"))
	viper.BindPFlag("language_file", rootCmd.PersistentFlags().Lookup("language-file"))
	viper.BindPFlag("languages", rootCmd.PersistentFlags().Lookup("languages"))
	viper.BindPFlag("output_dir", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	viper.BindPFlag("greedy", rootCmd.PersistentFlags().Lookup("greedy"))
	viper.BindPFlag("trees", rootCmd.PersistentFlags().Lookup("trees"))
	viper.BindPFlag("max_partial_trees", rootCmd.PersistentFlags().Lookup("max-partial-trees"))

	// describe: one target set
	rootCmd.AddCommand(&cobra.Command{
		Use:   "describe PHONEME...",
		Short: "Find the minimal descriptions of a set of phonemes",
		Long: `Build the candidate pool for the given phonemes, report whether they form a
natural class, and list every minimal description plus the greedy one.`,
		Args: cobra.MinimumNArgs(1),
		RunE: commands.RunDescribe,
	})

	// denote: the phonemes a description picks out
	rootCmd.AddCommand(&cobra.Command{
		Use:   "denote DESCRIPTION",
		Short: "List the phonemes a description picks out",
		Long:  `Parse a description such as "[+voiced,-nasal]" and print its denotation.`,
		Args:  cobra.ExactArgs(1),
		RunE:  commands.RunDenote,
	})

	// classes: every phoneme of one inventory
	rootCmd.AddCommand(&cobra.Command{
		Use:   "classes",
		Short: "Describe every phoneme of an inventory",
		Long: `Describe each phoneme of the inventory as a singleton target, summarize the
description lengths per feature and, with --output, write the natural class listing
and the summary.`,
		RunE: commands.RunClasses,
	})

	// tree: best trees of one inventory
	rootCmd.AddCommand(&cobra.Command{
		Use:   "tree",
		Short: "Build the best feature trees of an inventory",
		Long: `Combine the minimal descriptions of every phoneme into trees and keep the ones
giving the most phonemes one of their minimal descriptions.`,
		RunE: commands.RunTree,
	})

	// batch: a languages dataset
	batchCmd := &cobra.Command{
		Use:   "batch",
		Short: "Process every language of a dataset in parallel",
		Long: `Read a languages CSV (columns "language", "family", "core inventory"), describe
every phoneme of every inventory using a bounded pool of workers, and write one report
for the whole run.`,
		RunE: commands.RunBatch,
	}
	batchCmd.Flags().Int("workers", 0, "Languages processed in parallel (0 = auto-detect)")
	batchCmd.Flags().Bool("dashboard", false, "Write an HTML dashboard to the output directory")
	batchCmd.Flags().String("metrics-file", "", "Write Prometheus metrics to this file")

	viper.BindPFlag("workers", batchCmd.Flags().Lookup("workers"))
	viper.BindPFlag("dashboard", batchCmd.Flags().Lookup("dashboard"))
	viper.BindPFlag("metrics_file", batchCmd.Flags().Lookup("metrics-file"))
	rootCmd.AddCommand(batchCmd)

	// check: validate inputs
	rootCmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Validate the feature table and inventory files",
		Long: `Parse the feature table and, when given, the inventory and languages files,
and report phonemes of the inventories that the table does not know.`,
		RunE: commands.RunCheck,
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
