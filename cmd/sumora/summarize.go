package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/markdave123-py/Sumora/internal/app"
	"github.com/markdave123-py/Sumora/internal/config"
	"github.com/markdave123-py/Sumora/internal/logger"
	"github.com/markdave123-py/Sumora/internal/models"
	"github.com/markdave123-py/Sumora/internal/services"
)

func newSummarizeCmd() *cobra.Command {
	var (
		in       inputFlags
		opts     models.SummaryOptions
		outPath  string
		asJSON   bool
		logLevel string
	)
	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Summarize text or a document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, err := in.read(cmd)
			if err != nil {
				return err
			}

			cfg := config.LoadConfig()
			log, err := logger.New(logLevel)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			tuning, err := config.EffectiveTuning(cfg)
			if err != nil {
				return err
			}
			svc := services.NewSummaryService(services.SummaryServiceDeps{
				Registry:      app.BuildRegistry(cfg, log),
				Tuning:        tuning,
				Log:           log,
				MaxInputChars: cfg.MaxInputChars,
				Concurrency:   cfg.ChunkConcurrency,
			})

			s, err := svc.Summarize(cmd.Context(), services.SummaryRequest{Text: text, Options: opts})
			if err != nil {
				return err
			}

			if outPath != "" {
				body, _ := services.ExportText(s)
				if err := os.WriteFile(outPath, body, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", outPath, err)
				}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(s)
			}
			fmt.Fprintln(out, s.Text)
			fmt.Fprintf(out, "\n%d words, %d chunks (%s)\n", s.WordCount, s.ChunkCount, s.Mode)
			return nil
		},
	}
	in.register(cmd)
	f := cmd.Flags()
	f.StringVarP(&opts.Mode, "mode", "m", "extractive", "extractive or abstractive")
	f.IntVar(&opts.MaxLength, "max-length", 0, "sentences (extractive) or words (abstractive); 0 uses the mode default")
	f.IntVar(&opts.MinLength, "min-length", 0, "lower bound; 0 uses the mode default")
	f.IntVar(&opts.MaxChunk, "max-chunk", 0, "maximum characters per chunk; 0 uses the configured value")
	f.StringVarP(&outPath, "out", "o", "", "also write the summary to this file ("+services.ExportFilename+" style)")
	f.BoolVar(&asJSON, "json", false, "print the full summary record as JSON")
	f.StringVar(&logLevel, "log-level", "error", "log level")
	return cmd
}
