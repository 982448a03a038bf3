package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTopicsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "topics",
		Short: "List the topics the assistant can answer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := opts.engine(opts.intentsPath)
			if err != nil {
				return err
			}
			for _, t := range eng.Topics() {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
			return nil
		},
	}
}
