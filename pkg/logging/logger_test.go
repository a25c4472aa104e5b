/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: logger_test.go
Description: Tests for logger configuration, the search event helpers, log files and
retention, and the custom formatter.
*/

package logging_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kleascm/featuremin/pkg/logging"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainConfig(buf *bytes.Buffer) *logging.LoggerConfig {
	return &logging.LoggerConfig{
		Level:   logging.LogLevelInfo,
		Format:  logging.LogFormatCustom,
		Console: buf,
	}
}

// TestLoggerConfigValidate tests rejected configurations
func TestLoggerConfigValidate(t *testing.T) {
	assert.NoError(t, logging.DefaultConfig().Validate())

	tests := []struct {
		name   string
		modify func(c *logging.LoggerConfig)
	}{
		{"format", func(c *logging.LoggerConfig) { c.Format = "xml" }},
		{"level", func(c *logging.LoggerConfig) { c.Level = "loud" }},
		{"max files", func(c *logging.LoggerConfig) { c.OutputDir = "logs"; c.MaxFiles = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := logging.DefaultConfig()
			tt.modify(c)
			assert.Error(t, c.Validate())

			_, err := logging.NewLogger(c)
			assert.Error(t, err)
		})
	}
}

// TestLoggerSearchEvents tests the custom format of the event helpers
func TestLoggerSearchEvents(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.NewLogger(plainConfig(&buf))
	require.NoError(t, err)
	defer logger.Close()

	logger.LogTarget("pbm", []string{"m"}, true, 1, nil)
	assert.Contains(t, buf.String(), "INFO [TARGET] Target described language=pbm min_length=1 natural_class=true target={m}\n")

	buf.Reset()
	logger.LogTarget("pbm", []string{"p", "m"}, false, -1, nil)
	assert.NotContains(t, buf.String(), "min_length")

	buf.Reset()
	logger.LogLanguage("pbm", 3, 3, 2*time.Second, map[string]interface{}{"non_natural": 0})
	assert.Contains(t, buf.String(), "[LANGUAGE] Language completed duration=2s language=pbm natural_classes=3 non_natural=0 phonemes=3")

	buf.Reset()
	logger.LogTree("pbm", 1, 3, 3, nil)
	assert.Contains(t, buf.String(), "[TREE] Best trees found")

	buf.Reset()
	logger.LogBatchStats(2, 6, 5, 12.5, nil)
	assert.Contains(t, buf.String(), "[BATCH] Batch statistics")
	assert.Contains(t, buf.String(), "targets_per_sec=12.50")

	// Below the configured level
	buf.Reset()
	logger.Debug("hidden", nil)
	assert.Empty(t, buf.String())

	logger.Warning("Tree search skipped", map[string]interface{}{"language": "pbm"})
	assert.Contains(t, buf.String(), "WARNING [TREE] Tree search skipped language=pbm")
}

// TestLoggerJSON tests the JSON format
func TestLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	config := plainConfig(&buf)
	config.Format = logging.LogFormatJSON
	logger, err := logging.NewLogger(config)
	require.NoError(t, err)
	defer logger.Close()

	logger.LogLanguage("pbm", 3, 2, time.Millisecond, nil)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Language completed", entry["msg"])
	assert.Equal(t, "pbm", entry["language"])
	assert.Equal(t, float64(2), entry["natural_classes"])
}

// TestLoggerFileOutput tests that a log file is written next to the console
func TestLoggerFileOutput(t *testing.T) {
	var buf bytes.Buffer
	dir := t.TempDir()
	config := plainConfig(&buf)
	config.OutputDir = dir
	config.MaxFiles = 5

	logger, err := logging.NewLogger(config)
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(logger.FilePath()))

	logger.Info("Run started", map[string]interface{}{"run": "abc"})
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(logger.FilePath())
	require.NoError(t, err)
	assert.Contains(t, string(data), "Run started run=abc")
	assert.Contains(t, buf.String(), "Run started run=abc")
}

// TestLoggerRetention tests that Close keeps only the newest MaxFiles logs
func TestLoggerRetention(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"featuremin_2001-01-01_00-00-00.000.log",
		"featuremin_2002-01-01_00-00-00.000.log",
		"featuremin_2003-01-01_00-00-00.000.log",
		"other.log",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}

	var buf bytes.Buffer
	config := plainConfig(&buf)
	config.OutputDir = dir
	config.MaxFiles = 2

	logger, err := logging.NewLogger(config)
	require.NoError(t, err)
	require.NoError(t, logger.Close())

	files, err := filepath.Glob(filepath.Join(dir, "featuremin_*.log"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "featuremin_2003-01-01_00-00-00.000.log"),
		logger.FilePath(),
	}, files)

	_, err = os.Stat(filepath.Join(dir, "other.log"))
	assert.NoError(t, err)
}

// TestCustomFormatter tests prefixes, field order and value formatting
func TestCustomFormatter(t *testing.T) {
	f := &logging.CustomFormatter{}
	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Level:   logrus.InfoLevel,
		Message: "Batch statistics",
		Data: logrus.Fields{
			"rate":    1.234,
			"elapsed": time.Second,
			"set":     []string{"p", "b"},
		},
	}

	out, err := f.Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "INFO [BATCH] Batch statistics elapsed=1s rate=1.23 set={p,b}\n", string(out))

	entry.Message = "plain"
	entry.Data = logrus.Fields{}
	out, err = f.Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "INFO plain\n", string(out))

	f.Colors = true
	out, err = f.Format(entry)
	require.NoError(t, err)
	assert.Contains(t, string(out), "\033[32mINFO\033[0m")
}
