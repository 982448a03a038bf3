package main

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rvrjc/campusbot/internal/engine"
	"github.com/rvrjc/campusbot/internal/model"
)

func newChatCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive conversation",
		Long:  `Reads one message per line from stdin until EOF or "exit". Follow-up questions use the history of this run.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := opts.engine(opts.intentsPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			scanner := bufio.NewScanner(cmd.InOrStdin())
			var history []model.Exchange

			fmt.Fprintln(out, `Ask me about the college. Type "exit" to quit.`)
			for {
				fmt.Fprint(out, "you> ")
				if !scanner.Scan() {
					fmt.Fprintln(out)
					return scanner.Err()
				}
				line := scanner.Text()
				switch strings.ToLower(strings.TrimSpace(line)) {
				case "exit", "quit":
					return nil
				}

				resp := eng.Handle(line, history)
				fmt.Fprint(out, "bot> ")
				printResponse(out, resp, opts.verbose)

				if resp.Kind != engine.KindClarification {
					now := time.Now()
					history = append(history,
						model.NewExchange(model.SenderUser, line, now),
						model.NewExchange(model.SenderBot, resp.Text, now),
					)
				}
			}
		},
	}
}
