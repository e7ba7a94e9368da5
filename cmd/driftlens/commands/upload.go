package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/driftlens/driftlens/internal/logger"
	"github.com/driftlens/driftlens/internal/storage"
	"github.com/driftlens/driftlens/internal/uploader"
)

func newUploadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload [report-file]",
		Short: "Archive an analysis report in S3",
		Long: `Upload a report file to an S3 bucket under a timestamped key. With no
argument, the most recently saved report from the local history is uploaded.

Credentials come from the standard AWS environment. Set --endpoint (or
AWS_ENDPOINT_URL) to target LocalStack or another S3-compatible store.`,
		Example: `  # Upload a specific report
  driftlens upload report.json

  # Upload the latest saved report to LocalStack
  driftlens upload --endpoint http://localhost:4566 --bucket analyzer-reports`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUpload,
	}

	cmd.Flags().String("bucket", "", "target S3 bucket (default from config)")
	cmd.Flags().String("prefix", "", "S3 key prefix (default from config)")
	cmd.Flags().String("endpoint", "", "custom S3 endpoint, e.g. http://localhost:4566")
	cmd.Flags().String("region", "", "AWS region (default from config)")
	cmd.Flags().Duration("timeout", 30*time.Second, "upload timeout")

	return cmd
}

func runUpload(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	reportPath := ""
	if len(args) == 1 {
		reportPath = args[0]
	} else {
		store, err := storage.NewLocal(cfg.Storage.BaseDir)
		if err != nil {
			return err
		}
		reportPath, err = store.LatestReport()
		if err != nil {
			return err
		}
		log.WithField("path", reportPath).Info("uploading latest saved report")
	}

	uploadCfg := uploader.Config{
		Endpoint: cfg.Upload.Endpoint,
		Bucket:   cfg.Upload.Bucket,
		Prefix:   cfg.Upload.Prefix,
		Region:   cfg.Upload.Region,
	}
	if v, _ := cmd.Flags().GetString("bucket"); v != "" {
		uploadCfg.Bucket = v
	}
	if v, _ := cmd.Flags().GetString("prefix"); v != "" {
		uploadCfg.Prefix = v
	}
	if v, _ := cmd.Flags().GetString("endpoint"); v != "" {
		uploadCfg.Endpoint = v
	}
	if v, _ := cmd.Flags().GetString("region"); v != "" {
		uploadCfg.Region = v
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	up, err := uploader.New(ctx, uploadCfg)
	if err != nil {
		return err
	}

	uri, err := up.Upload(ctx, reportPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Report uploaded to %s\n", uri)
	return nil
}
