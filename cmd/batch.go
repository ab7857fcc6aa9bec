package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	batchOutDir string
	batchLimit  int
)

var batchCmd = &cobra.Command{
	Use:   "batch <transcript-dir>",
	Short: "Extract summaries for every transcript in a directory",
	Long:  "Runs extraction for each .txt/.md file in the directory. Transcripts are processed concurrently; the provider fallback within each extraction stays strictly sequential.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.ValidateCredentials(); err != nil {
			return err
		}

		files, err := collectTranscripts(args[0], batchLimit)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return eris.Errorf("no .txt or .md transcripts found in %s", args[0])
		}

		outDir := batchOutDir
		if outDir == "" {
			outDir = args[0]
		}
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return eris.Wrapf(err, "create output dir %s", outDir)
		}

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		ext := newExtractor(cfg)

		var succeeded, failed atomic.Int64
		g, gCtx := errgroup.WithContext(ctx)
		g.SetLimit(cfg.Batch.MaxConcurrentTranscripts)

		for _, file := range files {
			g.Go(func() error {
				transcript, err := os.ReadFile(file)
				if err != nil {
					failed.Add(1)
					zap.L().Error("batch: read transcript", zap.String("file", file), zap.Error(err))
					return nil
				}

				sum, err := runExtraction(gCtx, ext, st, file, string(transcript))
				if err != nil {
					failed.Add(1)
					zap.L().Error("batch: extraction failed", zap.String("file", file), zap.Error(err))
					return nil // one bad transcript must not stop the batch
				}

				out, err := json.MarshalIndent(sum, "", "  ")
				if err != nil {
					failed.Add(1)
					return nil
				}
				dest := summaryPath(outDir, file)
				if err := os.WriteFile(dest, append(out, '\n'), 0o644); err != nil {
					failed.Add(1)
					zap.L().Error("batch: write summary", zap.String("file", dest), zap.Error(err))
					return nil
				}

				succeeded.Add(1)
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "batch complete: %d succeeded, %d failed of %d transcripts\n",
			succeeded.Load(), failed.Load(), len(files))

		if succeeded.Load() == 0 {
			return eris.New("batch: every transcript failed")
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchOutDir, "out", "", "directory for summary JSON files (default: alongside transcripts)")
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "max number of transcripts to process (0 = all)")
	rootCmd.AddCommand(batchCmd)
}

// collectTranscripts returns the .txt/.md files of dir in stable name order.
func collectTranscripts(dir string, limit int) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "read dir %s", dir)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".txt", ".md":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)

	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}
	return files, nil
}

// summaryPath maps a transcript path to its summary file in outDir.
func summaryPath(outDir, transcript string) string {
	base := filepath.Base(transcript)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outDir, name+".summary.json")
}
