package main

import (
	"bufio"
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"phishguard/internal/config"
	"phishguard/pkg/domain"
	"phishguard/pkg/logger"
)

// blacklistCommand groups the blacklist maintenance subcommands.
func blacklistCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blacklist",
		Short: "Maintains the phishing blacklist",
	}
	cmd.AddCommand(blacklistSyncCommand(cfg), blacklistImportCommand(cfg))

	return cmd
}

func blacklistSyncCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Synchronizes the blacklist with the KISA feed",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			mode := domain.SyncModeIncremental
			if full, _ := cmd.Flags().GetBool("full"); full {
				mode = domain.SyncModeFull
			}

			a, closeStrg := newApp(ctx, cfg)
			defer closeStrg()

			res, err := a.syncer.Sync(ctx, mode)
			if err != nil {
				logger.Error(ctx, "blacklist sync failed", zap.Error(err))

				return
			}
			logger.Info(ctx, "blacklist synced",
				zap.String("mode", string(res.Mode)),
				zap.Int("pages", res.Pages),
				zap.Int64("added", res.Added),
				zap.Int64("total", res.Total))
		},
	}
	cmd.Flags().Bool("full", false, "Replace the stored list with every page of the feed")

	return cmd
}

func blacklistImportCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Imports hostnames or URLs from a file, one per line",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			source, _ := cmd.Flags().GetString("source")

			hostnames, err := readLines(args[0])
			if err != nil {
				logger.Fatal(ctx, "could not read blacklist file", zap.Error(err))
			}

			a, closeStrg := newApp(ctx, cfg)
			defer closeStrg()

			if _, err := a.syncer.Import(ctx, source, hostnames); err != nil {
				logger.Error(ctx, "could not import blacklist", zap.Error(err))
			}
		},
	}
	cmd.Flags().String("source", "manual", "Source recorded for the imported entries")

	return cmd
}

// readLines returns the non-empty lines of the file at path. Lines starting
// with # are comments.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if line == "" || line[0] == '#' {
			continue
		}
		lines = append(lines, line)
	}

	return lines, sc.Err()
}
