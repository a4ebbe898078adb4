package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/BerylCAtieno/happyhour-menu-api/internal/config"
	"github.com/BerylCAtieno/happyhour-menu-api/internal/menus"
	"github.com/BerylCAtieno/happyhour-menu-api/internal/storage"
	"github.com/BerylCAtieno/happyhour-menu-api/internal/utils"
)

var (
	bucket string
	prefix string
	outDir string
	strict bool
)

var rootCmd = &cobra.Command{
	Use:   "fetch-menus",
	Short: "Download happy hour menu PDFs from object storage",
	Long: `fetch-menus lists every object under the menu prefix of an S3-compatible
bucket, downloads each PDF into a local directory (keeping the key layout)
and checks that it opens as a PDF.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVarP(&bucket, "bucket", "b", "", "bucket name (overrides S3_BUCKET_NAME)")
	rootCmd.Flags().StringVarP(&prefix, "prefix", "p", "", "object key prefix (overrides MENU_PREFIX)")
	rootCmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (overrides MENUS_DIR)")
	rootCmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any menu fails")
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadFetcher()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if bucket != "" {
		cfg.S3BucketName = bucket
	}
	if prefix != "" {
		cfg.MenuPrefix = prefix
	}
	if outDir != "" {
		cfg.MenusDir = outDir
	}

	logger := utils.NewLogger(cfg.LogLevel)

	store, err := storage.NewS3Storage(ctx, cfg)
	if err != nil {
		return err
	}

	summary, err := menus.NewFetcher(store, cfg.MenuPrefix, cfg.MenusDir, logger).FetchAll(ctx)
	if err != nil {
		return err
	}

	logger.Info("Fetch complete",
		"listed", summary.Listed,
		"downloaded", len(summary.Downloaded),
		"skipped", summary.Skipped,
		"invalid", summary.Invalid,
		"failed", summary.Failed,
	)

	if strict && summary.Failed+summary.Invalid > 0 {
		return fmt.Errorf("%d menus failed, %d were unreadable", summary.Failed, summary.Invalid)
	}
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
