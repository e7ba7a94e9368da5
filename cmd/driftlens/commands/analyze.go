package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/driftlens/driftlens/internal/analyzer"
	"github.com/driftlens/driftlens/internal/loader"
	"github.com/driftlens/driftlens/internal/logger"
	"github.com/driftlens/driftlens/internal/output"
	"github.com/driftlens/driftlens/internal/storage"
)

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <cloud-file> <iac-file>",
		Short: "Compare deployed cloud resources against IaC declarations",
		Long: `Compare two resource collections and classify every cloud resource as
Match, Modified, or Missing. Input files are JSON or YAML arrays of resource
records; matching tries the 'id' field first, then 'name'.

Exit codes with --quiet: 0 = no drift, 1 = drift detected.`,
		Example: `  # Print a drift summary
  driftlens analyze cloud.json iac.json

  # Write the full JSON report to a file
  driftlens analyze cloud.json iac.json -o report.json

  # Store the report in the local history for later upload
  driftlens analyze cloud.json iac.json --save

  # Use in CI pipelines
  driftlens analyze cloud.json iac.json --quiet || echo "drift detected"`,
		Args: cobra.ExactArgs(2),
		RunE: runAnalyze,
	}

	cmd.Flags().StringP("output-file", "o", "", "write the JSON report to a file")
	cmd.Flags().String("format", "", "stdout format (table, json, markdown)")
	cmd.Flags().Int("workers", 0, "number of comparison workers (default from config)")
	cmd.Flags().Bool("save", false, "store the report in the local history")
	cmd.Flags().BoolP("quiet", "q", false, "suppress output, exit with status only")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	observed, err := loader.Load(args[0])
	if err != nil {
		return err
	}
	declared, err := loader.Load(args[1])
	if err != nil {
		return err
	}

	workers, _ := cmd.Flags().GetInt("workers")
	if workers == 0 {
		workers = cfg.Analyze.Workers
	}

	report := analyzer.Analyze(observed, declared, analyzer.Options{
		Workers: workers,
		Logger:  log,
	})

	renderer := output.NewRenderer()
	jsonData, err := renderer.FormatReport(report, output.FormatJSON)
	if err != nil {
		return err
	}

	if outputFile, _ := cmd.Flags().GetString("output-file"); outputFile != "" {
		if err := renderer.WriteToFile(jsonData, outputFile); err != nil {
			return fmt.Errorf("failed to write report to %s: %w", outputFile, err)
		}
		log.WithField("path", outputFile).Info("report written")
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		store, err := storage.NewLocal(cfg.Storage.BaseDir)
		if err != nil {
			return err
		}
		path, err := store.SaveReport(jsonData, report.Timestamp)
		if err != nil {
			return err
		}
		log.WithFields(map[string]any{
			"path":    path,
			"history": store.BaseDir(),
		}).Info("report saved to history")
	}

	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		if report.Summary.HasDrift() {
			os.Exit(1)
		}
		return nil
	}

	formatName, _ := cmd.Flags().GetString("format")
	if formatName == "" {
		formatName = cfg.Output.Format
	}
	format, err := output.ParseFormat(formatName)
	if err != nil {
		return err
	}
	formatted, err := renderer.FormatReport(report, format)
	if err != nil {
		return err
	}
	return renderer.WriteTo(formatted, cmd.OutOrStdout())
}
