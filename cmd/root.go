package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/earnings-cli/internal/config"
	"github.com/sells-group/earnings-cli/internal/extractor"
	"github.com/sells-group/earnings-cli/internal/store"
	"github.com/sells-group/earnings-cli/pkg/gemini"
	"github.com/sells-group/earnings-cli/pkg/groq"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "earnings-cli",
	Short: "Structured earnings-call summary extraction",
	Long:  "Extracts a structured financial summary (tone, confidence, positives, concerns, guidance) from earnings-call transcripts via Groq and Gemini with model-tier fallback.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// newExtractor wires the provider chain in priority order: Groq first, then
// Gemini. Ordering is a policy constant, not a structural requirement.
func newExtractor(cfg *config.Config) *extractor.Extractor {
	groqOpts := []groq.Option{groq.WithBaseURL(cfg.Groq.BaseURL)}
	if cfg.Groq.RequestsPerSecond > 0 {
		groqOpts = append(groqOpts, groq.WithRateLimiter(rate.NewLimiter(rate.Limit(cfg.Groq.RequestsPerSecond), 1)))
	}
	groqClient := groq.NewClient(cfg.Groq.Key, groqOpts...)
	geminiClient := gemini.NewClient(cfg.Gemini.Key, gemini.WithBaseURL(cfg.Gemini.BaseURL))

	return extractor.New(
		extractor.NewGroqProvider(groqClient, cfg.Groq),
		extractor.NewGeminiProvider(geminiClient, cfg.Gemini),
	)
}

// openStore opens the run-history database and applies migrations.
func openStore(ctx context.Context) (store.Store, error) {
	s, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
