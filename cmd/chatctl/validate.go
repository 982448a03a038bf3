package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rvrjc/campusbot/internal/followup"
	"github.com/rvrjc/campusbot/internal/intent"
)

func newValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [path]",
		Short: "Check an intents file",
		Long:  `Loads an intents file, builds the engine from it and reports problems. Defaults to --intents.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.intentsPath
			if len(args) == 1 {
				path = args[0]
			}

			store, err := intent.LoadFile(path)
			if err != nil {
				return err
			}
			eng, err := opts.engine(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range store.Unreachable() {
				fmt.Fprintf(out, "warning: intent %q has no keywords\n", name)
			}
			for _, r := range followup.DefaultRules() {
				if r.Intent != "" && !store.Has(r.Intent) {
					fmt.Fprintf(out, "warning: follow-up on %q refers to missing intent %q, inline response used\n", r.Topic, r.Intent)
				}
			}
			fmt.Fprintf(out, "ok: %s: %d intents, %d lexicon words, %d topics\n",
				path, store.Len(), eng.Lexicon().Len(), len(eng.Topics()))
			return nil
		},
	}
}
