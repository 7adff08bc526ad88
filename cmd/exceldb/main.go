// Package main provides the CLI entry point for exceldb.
package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/ukaji3/exceldb-go/internal/config"
	"github.com/ukaji3/exceldb-go/pkg/exceldb"
)

var (
	configPath string
	logLevel   string
	outputPath string
	pretty     bool

	cfg *config.Config
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "exceldb",
		Short: "Read spreadsheet ranges as keyed records and merge them into documents",
		Long: `exceldb turns rectangular ranges of a workbook into JSON records keyed
by their first column, and fills Word templates from record data.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	rootCmd.AddCommand(
		newExtractCmd(),
		newTablesCmd(),
		newSheetsCmd(),
		newBoundsCmd(),
		newFieldsCmd(),
		newMergeCmd(),
	)
	return rootCmd
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	c.ConfigureLogging()
	cfg = c
	return nil
}

// workbookPath picks the positional argument, falling back to the config.
func workbookPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Workbook.Path != "" {
		return cfg.Workbook.Path, nil
	}
	return "", fmt.Errorf("no workbook given: pass a path or set workbook.path")
}

// loadWorkbook loads path, through a Cache when the config enables one.
func loadWorkbook(path string) (*exceldb.Workbook, error) {
	if cfg.Workbook.Cache {
		return workbookCache().Load(path)
	}
	return exceldb.LoadWithOptions(path, cfg.LoadOptions())
}

var cache *exceldb.Cache

func workbookCache() *exceldb.Cache {
	if cache == nil {
		cache = exceldb.NewCache(cfg.LoadOptions())
	}
	return cache
}

// writeOutput writes data to --output, or stdout when unset.
func writeOutput(cmd *cobra.Command, data []byte) error {
	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		log.WithField("path", outputPath).Info("output written")
		return nil
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
