package main

import (
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/markdave123-py/Sumora/internal/core/summarize"
)

func newFragmentCmd() *cobra.Command {
	var (
		in       inputFlags
		maxChunk int
	)
	cmd := &cobra.Command{
		Use:   "fragment",
		Short: "Print the chunks the summarizer would process",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, err := in.read(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, chunk := range summarize.Fragment(text, maxChunk) {
				fmt.Fprintf(out, "--- chunk %d (%d chars)\n%s\n", i+1, utf8.RuneCountInString(chunk), chunk)
			}
			return nil
		},
	}
	in.register(cmd)
	cmd.Flags().IntVar(&maxChunk, "max-chunk", summarize.DefaultMaxChunk, "maximum characters per chunk")
	return cmd
}
