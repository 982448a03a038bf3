package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rvrjc/campusbot/internal/engine"
)

func newAskCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <message>",
		Short: "Answer a single message",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := opts.engine(opts.intentsPath)
			if err != nil {
				return err
			}
			resp := eng.Handle(strings.Join(args, " "), nil)
			printResponse(cmd.OutOrStdout(), resp, opts.verbose)
			return nil
		},
	}
}

func printResponse(w io.Writer, resp engine.Response, verbose bool) {
	fmt.Fprintln(w, resp.Text)
	for _, l := range resp.Links {
		fmt.Fprintf(w, "  - %s: %s\n", l.Text, l.URL)
	}
	if !verbose {
		return
	}
	fmt.Fprintf(w, "  [kind=%s intent=%s score=%.3f", resp.Kind, resp.Intent, resp.Score)
	if resp.Strategy != "" {
		fmt.Fprintf(w, " strategy=%s", resp.Strategy)
	}
	if resp.Corrected != "" {
		fmt.Fprintf(w, " corrected=%q", resp.Corrected)
	}
	fmt.Fprintln(w, "]")
}
