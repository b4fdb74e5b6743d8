package admin

import (
	"context"
	"fmt"
	"os"

	"github.com/helpbeacon/helpbeacon/internal/config"
	"github.com/helpbeacon/helpbeacon/internal/repository"
	"github.com/helpbeacon/helpbeacon/internal/service"
	"github.com/helpbeacon/helpbeacon/internal/storage"
	"github.com/spf13/cobra"
)

func ExportCmd() *cobra.Command {
	var (
		outputFile string
		toBucket   bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the search log as CSV",
		Long:  "Export the full search log as CSV to stdout, a file, or the configured S3 bucket",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(outputFile, toBucket)
		},
	}

	cmd.Flags().StringVarP(&outputFile, "file", "f", "", "Write CSV to a file instead of stdout")
	cmd.Flags().BoolVar(&toBucket, "bucket", false, "Upload CSV to the configured S3 bucket")

	return cmd
}

func runExport(outputFile string, toBucket bool) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	pool, err := getDBPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	searchLogRepo := repository.NewSearchLogRepository(pool)

	var s3Client *storage.S3Client
	var uploader service.ObjectUploader
	if toBucket {
		if !cfg.HasS3() {
			return fmt.Errorf("S3 is not configured (HELPBEACON_S3_ENDPOINT required)")
		}
		s3Client, err = storage.NewS3Client(ctx, storage.S3ClientConfig{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
			Bucket:          cfg.S3Bucket,
			UsePathStyle:    true,
		})
		if err != nil {
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		if err := s3Client.EnsureBucket(ctx); err != nil {
			return fmt.Errorf("failed to ensure S3 bucket: %w", err)
		}
		uploader = s3Client
	}

	exportSvc := service.NewExportService(searchLogRepo, uploader)

	if toBucket {
		key, err := exportSvc.ExportToBucket(ctx)
		if err != nil {
			return err
		}
		downloadURL, err := s3Client.GenerateDownloadURL(ctx, key)
		if err != nil {
			return fmt.Errorf("failed to generate download URL: %w", err)
		}
		fmt.Printf("Exported to s3://%s/%s\n", cfg.S3Bucket, key)
		fmt.Printf("Download (valid 1h): %s\n", downloadURL)
		return nil
	}

	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		if err := exportSvc.WriteCSV(ctx, f); err != nil {
			return err
		}
		fmt.Printf("Exported to %s\n", outputFile)
		return nil
	}

	return exportSvc.WriteCSV(ctx, os.Stdout)
}
