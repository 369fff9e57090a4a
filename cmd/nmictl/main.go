package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/oldgods/nmibot/internal/domain/roster"
	"github.com/oldgods/nmibot/internal/gateways/documents"
	"github.com/oldgods/nmibot/nmibot"
	"github.com/spf13/cobra"
)

const programName = "nmictl"

type cli struct {
	configFile string
	cfg        *nmibot.Config
}

func newRootCommand() *cobra.Command {
	c := &cli{}
	rootCmd := &cobra.Command{
		Use:           programName,
		Short:         "Administer the NMI onboarding bot",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := nmibot.LoadConfig(c.configFile)
			if err != nil {
				return err
			}
			c.cfg = cfg
			slog.SetDefault(slog.New(cfg.Log.Handler(cmd.ErrOrStderr())))
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&c.configFile, "config", "c", "config.toml", "path to config file to load")

	rootCmd.AddCommand(
		c.chaptersCommand(),
		c.migrateCommand(),
		c.recordsCommand(),
	)
	return rootCmd
}

// chapters loads the roster through the same cache the bot uses.
func (c *cli) chapters(ctx context.Context) (*documents.Cache[roster.Roster], roster.Roster, error) {
	source, err := documents.OpenSource(ctx, c.cfg.Documents.Chapters, c.cfg.Spaces)
	if err != nil {
		return nil, roster.Roster{}, err
	}
	cache := documents.NewCache[roster.Roster](source)
	r, err := cache.Load(ctx)
	if err != nil {
		return nil, roster.Roster{}, err
	}
	return cache, r, nil
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", programName, err)
		os.Exit(1)
	}
}
