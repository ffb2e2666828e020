package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	ingest "github.com/markdave123-py/Sumora/internal/core/ingestion_engine"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sumora",
		Short:         "Extractive and abstractive summaries of text and documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSummarizeCmd(), newFragmentCmd())
	return root
}

type inputFlags struct {
	file string
	text string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "document to read (txt, md, pdf, docx, odt, rtf, html)")
	cmd.Flags().StringVarP(&f.text, "text", "t", "", "literal text; stdin is read when neither --text nor --file is set")
	cmd.MarkFlagsMutuallyExclusive("file", "text")
}

// read returns the input as plain text, extracting documents by extension.
func (f *inputFlags) read(cmd *cobra.Command) (string, error) {
	if f.text != "" {
		return f.text, nil
	}
	if f.file == "" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}

	data, err := os.ReadFile(f.file)
	if err != nil {
		return "", err
	}
	ct := ingest.ResolveContentType("", filepath.Base(f.file))
	if !ingest.SupportedContentType(ct) {
		return "", fmt.Errorf("%w: %s", ingest.ErrUnsupportedContentType, f.file)
	}
	return ingest.NewDocconvExtractor(false).ExtractText(cmd.Context(), data, ct)
}
