package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"phishguard/internal/analyzer"
	"phishguard/internal/api/handler/v1handler"
	"phishguard/internal/config"
	"phishguard/pkg/logger"
	"phishguard/pkg/page"
)

// analyzeCommand scores a single URL and prints the result as JSON.
func analyzeCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <url>",
		Short: "Analyzes a URL and prints the verdict",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			htmlPath, _ := cmd.Flags().GetString("html")
			noLLM, _ := cmd.Flags().GetBool("no-llm")
			disabled, _ := cmd.Flags().GetStringSlice("disable")

			a, closeStrg := newApp(ctx, cfg)
			defer closeStrg()

			req := analyzer.Request{URL: args[0]}
			if noLLM {
				enable := false
				req.EnableLLM = &enable
			}
			if len(disabled) > 0 {
				req.Detectors = make(map[string]bool, len(disabled))
				for _, key := range disabled {
					req.Detectors[key] = false
				}
			}

			if htmlPath != "" {
				f, err := os.Open(htmlPath)
				if err != nil {
					logger.Fatal(ctx, "could not open html file", zap.Error(err))
				}
				req.Page, err = page.Extract(f, args[0])
				_ = f.Close()
				if err != nil {
					logger.Fatal(ctx, "could not extract page content", zap.Error(err))
				}
			}

			res, err := a.analyzer.Analyze(ctx, req)
			if err != nil {
				logger.Fatal(ctx, "could not analyze url", zap.Error(err))
			}

			fmt.Println(string(v1handler.EncodeResult(res))) //nolint: forbidigo
		},
	}

	cmd.Flags().String("html", "", "HTML file of the page served at the URL")
	cmd.Flags().Bool("no-llm", false, "Disable escalation to the language model")
	cmd.Flags().StringSlice("disable", nil, "Detector keys to disable (e.g., domainAge,kisaBlacklist)")

	return cmd
}
