// Package main provides the CLI entry point for docmerge.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aerissecure/docmerge"
	"github.com/aerissecure/docmerge/internal/logging"
)

var (
	configPath string
	logFolder  string
	reportPath string
	verbose    bool

	cfg = docmerge.DefaultConfig()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg = docmerge.DefaultConfig()
	cfg.ExcelPath = "./data/excel/data.xlsx"
	cfg.TemplateColumn = "template"
	cfg.OutputColumn = "output"

	rootCmd := &cobra.Command{
		Use:   "docmerge",
		Short: "Fill Word templates with rows from an Excel sheet",
		Long: `docmerge reads the first sheet of an .xlsx file and renders one .docx per
row. The template column names the template ({data}/{templates}/<value>.docx);
the output column, when set, names the generated file.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	f := rootCmd.Flags()
	f.StringVarP(&configPath, "config", "c", "", "YAML config file; flags override its values")
	f.StringVarP(&cfg.ExcelPath, "excel", "e", cfg.ExcelPath, "Spreadsheet to read")
	f.StringVarP(&cfg.TemplateColumn, "template-column", "t", cfg.TemplateColumn, "Column that selects the template")
	f.StringVarP(&cfg.OutputColumn, "output-column", "o", cfg.OutputColumn, "Column that names the output file (empty to disable)")
	f.StringVar(&cfg.DefaultOutputName, "default-output-name", cfg.DefaultOutputName, "Base name for rows without an output name")
	f.StringVar(&cfg.DataFolder, "data-folder", cfg.DataFolder, "Root folder for templates and output")
	f.StringVar(&cfg.TemplateFolder, "template-folder", cfg.TemplateFolder, "Template subfolder of the data folder")
	f.StringVar(&cfg.OutputFolder, "output-folder", cfg.OutputFolder, "Output subfolder of the data folder")
	f.StringVar(&logFolder, "log-folder", logging.DefaultDir, "Folder for log files")
	f.StringVar(&reportPath, "report", "", "Write a per-row .xlsx report to this path")
	f.BoolVarP(&verbose, "verbose", "v", false, "Debug output on the console")

	return rootCmd
}

func run(cmd *cobra.Command, _ []string) error {
	logger, _, closeLog, err := logging.New(logFolder, verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	defer closeLog()

	logger.Info("Starting docmerge...")

	runCfg, err := resolveConfig(cmd)
	if err != nil {
		logger.Error("docmerge failed", zap.Error(err))
		return err
	}

	merger, err := docmerge.New(runCfg, docmerge.WithLogger(logger))
	if err != nil {
		logger.Error("docmerge failed", zap.Error(err))
		return err
	}

	report := merger.Run()
	logger.Info("Output paths", zap.Strings("output_paths", report.Outputs()))

	if reportPath != "" {
		if err := report.WriteXLSX(reportPath); err != nil {
			logger.Error("Failed to write report", zap.Error(err))
		} else {
			logger.Info("Report written", zap.String("path", reportPath))
		}
	}

	logger.Info("docmerge completed")
	return nil
}

// resolveConfig starts from the --config file when given and applies every
// flag the user set explicitly on top of it.
func resolveConfig(cmd *cobra.Command) (docmerge.Config, error) {
	out := cfg
	if configPath != "" {
		fileCfg, err := docmerge.LoadConfig(configPath)
		if err != nil {
			return docmerge.Config{}, err
		}
		out = overrideFromFlags(cmd, fileCfg)
	}
	if err := out.Validate(); err != nil {
		return docmerge.Config{}, err
	}
	return out, nil
}

func overrideFromFlags(cmd *cobra.Command, base docmerge.Config) docmerge.Config {
	flags := cmd.Flags()
	set := func(name string, dst *string, v string) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	set("excel", &base.ExcelPath, cfg.ExcelPath)
	set("template-column", &base.TemplateColumn, cfg.TemplateColumn)
	set("output-column", &base.OutputColumn, cfg.OutputColumn)
	set("default-output-name", &base.DefaultOutputName, cfg.DefaultOutputName)
	set("data-folder", &base.DataFolder, cfg.DataFolder)
	set("template-folder", &base.TemplateFolder, cfg.TemplateFolder)
	set("output-folder", &base.OutputFolder, cfg.OutputFolder)
	return base
}
