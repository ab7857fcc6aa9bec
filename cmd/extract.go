package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/earnings-cli/internal/extractor"
	"github.com/sells-group/earnings-cli/internal/store"
	"github.com/sells-group/earnings-cli/internal/summary"
)

// rateLimitHint is shown when every provider path failed with a quota signal;
// free-tier quotas typically reset within minutes.
const rateLimitHint = "hint: providers reported rate limits; this is usually transient, retry in a few minutes"

var extractOutput string

var extractCmd = &cobra.Command{
	Use:   "extract <transcript-file>",
	Short: "Extract a summary from a single transcript",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.ValidateCredentials(); err != nil {
			return err
		}

		transcript, err := os.ReadFile(args[0])
		if err != nil {
			return eris.Wrapf(err, "read transcript %s", args[0])
		}

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		sum, err := runExtraction(ctx, newExtractor(cfg), st, args[0], string(transcript))
		if err != nil {
			if extractor.HasRateLimitSignal(err) {
				fmt.Fprintln(cmd.ErrOrStderr(), rateLimitHint)
			}
			return err
		}

		out, err := json.MarshalIndent(sum, "", "  ")
		if err != nil {
			return eris.Wrap(err, "marshal summary")
		}

		if extractOutput != "" {
			if err := os.WriteFile(extractOutput, append(out, '\n'), 0o644); err != nil {
				return eris.Wrapf(err, "write %s", extractOutput)
			}
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "write summary JSON to file instead of stdout")
	rootCmd.AddCommand(extractCmd)
}

// summarizer is the extraction entry point the commands depend on; satisfied
// by *extractor.Extractor and stubbed in tests.
type summarizer interface {
	ExtractSummary(ctx context.Context, transcript string) (*summary.EarningsSummary, error)
}

// runExtraction performs one extraction and records it in the run history.
func runExtraction(ctx context.Context, ext summarizer, st store.Store, source, transcript string) (*summary.EarningsSummary, error) {
	run, err := st.CreateRun(ctx, source)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	sum, err := ext.ExtractSummary(ctx, transcript)
	elapsed := time.Since(start)

	if err != nil {
		if failErr := st.FailRun(ctx, run.ID, err, elapsed); failErr != nil {
			zap.L().Warn("extract: record failed run", zap.String("run_id", run.ID), zap.Error(failErr))
		}
		return nil, err
	}

	if err := st.CompleteRun(ctx, run.ID, sum, elapsed); err != nil {
		zap.L().Warn("extract: record completed run", zap.String("run_id", run.ID), zap.Error(err))
	}

	zap.L().Info("extract: run recorded",
		zap.String("run_id", run.ID),
		zap.String("source", source),
		zap.Duration("elapsed", elapsed),
	)
	return sum, nil
}
