/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Shared utilities for the featuremin commands. Configuration loading,
logging setup, and loading of the feature table and the inventory a command works on.
*/

package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/kleascm/featuremin/pkg/core"
	"github.com/kleascm/featuremin/pkg/features"
	"github.com/kleascm/featuremin/pkg/inventory"
	"github.com/kleascm/featuremin/pkg/logging"
	"github.com/kleascm/featuremin/pkg/search"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// envPrefix prefixes every environment variable read through viper
const envPrefix = "FEATUREMIN"

// errNoTable is returned when no feature table was configured
var errNoTable = errors.New("no feature table given (use --table or FEATUREMIN_TABLE)")

// LoadConfig loads configuration from files and environment
func LoadConfig() error {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	return nil
}

// SetupLogging configures the global logrus logger and returns the run logger
func SetupLogging() (*logging.Logger, error) {
	config := &logging.LoggerConfig{
		Level:     logging.LogLevel(viper.GetString("log_level")),
		Format:    logging.LogFormat(viper.GetString("log_format")),
		OutputDir: viper.GetString("log_dir"),
		MaxFiles:  viper.GetInt("log_max_files"),
		Timestamp: true,
		Colors:    true,
	}

	level, err := logrus.ParseLevel(string(config.Level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	logger, err := logging.NewLogger(config)
	if err != nil {
		return nil, err
	}

	logrus.SetLevel(level)
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	return logger, nil
}

// setup runs LoadConfig and SetupLogging, as every command does first
func setup() (*logging.Logger, error) {
	if err := LoadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger, err := SetupLogging()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}
	return logger, nil
}

// loadTable reads the configured feature table
func loadTable() (*features.Table, error) {
	path := viper.GetString("table")
	if path == "" {
		return nil, errNoTable
	}
	table, err := features.LoadTable(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load feature table: %w", err)
	}
	return table, nil
}

// loadInventory reads the configured inventory, or uses every phoneme of the table
func loadInventory(table *features.Table) (inventory.Language, error) {
	path := viper.GetString("language_file")
	if path == "" {
		return inventory.Language{Name: baseName(viper.GetString("table")), Phonemes: table.Phonemes()}, nil
	}

	phonemes, err := inventory.LoadPhonemeList(path)
	if err != nil {
		return inventory.Language{}, fmt.Errorf("failed to load inventory: %w", err)
	}
	return inventory.Language{Name: inventory.LanguageName(baseName(path)), Phonemes: phonemes}, nil
}

// baseName strips the directory and extension of a path
func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// searchOptions builds the search options from the configuration
func searchOptions() search.Options {
	return search.Options{SkipGreedy: !viper.GetBool("greedy")}
}

// engineConfig builds the engine configuration from the configuration
func engineConfig() core.Config {
	return core.Config{
		Workers:         viper.GetInt("workers"),
		SkipGreedy:      !viper.GetBool("greedy"),
		Trees:           viper.GetBool("trees"),
		MaxPartialTrees: viper.GetInt("max_partial_trees"),
		TableName:       baseName(viper.GetString("table")),
	}
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext(logger *logging.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigChan:
			logger.Warning("Received shutdown signal, stopping", nil)
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}
