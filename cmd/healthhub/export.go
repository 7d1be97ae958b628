package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"

	"healthhub/internal/app"
	"healthhub/internal/domain"
)

var (
	exportUser   string
	exportFormat string
	exportRange  string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a user's health data without running the server",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportUser, "user", "", "Username (defaults to auth.default_user)")
	exportCmd.Flags().StringVar(&exportFormat, "format", string(domain.FormatCSV), "Export format: csv, json or report")
	exportCmd.Flags().StringVar(&exportRange, "range", string(domain.RangeAll), "Range label: week, month, quarter or all")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (defaults to stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer sentry.Flush(2 * time.Second)

	format, err := domain.ParseExportFormat(exportFormat)
	if err != nil {
		return err
	}
	rng, err := domain.ParseExportRange(exportRange)
	if err != nil {
		return err
	}
	if exportUser == "" {
		exportUser = cfg.Auth.DefaultUser
	}

	b, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	user, err := app.NewIdentityService(b.users, "").Resolve(ctx, exportUser)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("export: %w", domain.ErrNoUser)
	}

	art, err := app.NewExporter(b.health, b.artifacts, cfg.S3.Prefix).Produce(ctx, user, format, rng)
	if err != nil {
		return err
	}
	body, err := b.artifacts.Get(ctx, art.Key)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if _, err := w.Write(body); err != nil {
		return err
	}
	if exportOut != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d bytes) to %s\n", art.Filename, art.Size, exportOut)
	}
	return nil
}
