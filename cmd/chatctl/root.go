package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rvrjc/campusbot/internal/engine"
	"github.com/rvrjc/campusbot/internal/intent"
	"github.com/rvrjc/campusbot/pkg/logger"
)

type rootOptions struct {
	intentsPath string
	strategy    string
	noCorrect   bool
	verbose     bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "chatctl",
		Short: "Query the college FAQ assistant locally",
		Long: `chatctl loads an intents file and answers questions with the same
engine the API server uses, without starting a server.

Examples:
  chatctl ask "what courses does the cse department offer"
  chatctl chat
  chatctl validate data/intents.yaml
  chatctl topics`,
		SilenceUsage: true,
	}

	defaultPath := os.Getenv("INTENTS_PATH")
	if defaultPath == "" {
		defaultPath = "data/intents.json"
	}

	cmd.PersistentFlags().StringVar(&opts.intentsPath, "intents", defaultPath, "Path to the intents file (JSON or YAML)")
	cmd.PersistentFlags().StringVar(&opts.strategy, "strategy", string(engine.StrategyHybrid), "Match strategy: keyword, tfidf or hybrid")
	cmd.PersistentFlags().BoolVar(&opts.noCorrect, "no-correction", false, "Disable spelling correction")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print match details and engine debug logs")

	cmd.AddCommand(
		newAskCmd(opts),
		newChatCmd(opts),
		newValidateCmd(opts),
		newTopicsCmd(opts),
	)
	return cmd
}

func (o *rootOptions) logger() *zap.Logger {
	if !o.verbose {
		return zap.NewNop()
	}
	l, err := logger.NewDevelopment("debug")
	if err != nil {
		return zap.NewNop()
	}
	return l.Logger
}

func (o *rootOptions) engine(path string) (*engine.Engine, error) {
	store, err := intent.LoadFile(path)
	if err != nil {
		return nil, err
	}

	strategy, err := engine.ParseStrategy(o.strategy)
	if err != nil {
		return nil, err
	}
	eopts := engine.DefaultOptions()
	eopts.Strategy = strategy
	eopts.SpellCorrection = !o.noCorrect
	eopts.Logger = o.logger()

	eng, err := engine.New(store, eopts)
	if err != nil {
		return nil, fmt.Errorf("build engine: %w", err)
	}
	return eng, nil
}
