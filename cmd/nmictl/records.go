package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/oldgods/nmibot/internal/gateways/database"
	"github.com/oldgods/nmibot/internal/gateways/database/repositories"
	"github.com/spf13/cobra"
)

func (c *cli) migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the tracking store schema if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			start := time.Now()
			db := database.New(c.cfg.DB)
			defer db.Close()

			if err := db.Ping(cmd.Context()); err != nil {
				slog.Error("Failed to connect to database", slog.String("type", "db"), slog.Any("error", err))
				return err
			}
			slog.Info("Schema is up to date",
				slog.String("type", "db"),
				slog.String("driver", c.cfg.DB.Driver),
				slog.Duration("took", time.Since(start)),
			)
			return nil
		},
	}
}

func (c *cli) recordsCommand() *cobra.Command {
	var byMessage bool
	cmd := &cobra.Command{
		Use:   "records <id>",
		Short: "Show the newest onboarding record for a member (or tracking message with --message)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := snowflake.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", args[0], err)
			}

			db := database.New(c.cfg.DB)
			defer db.Close()
			repo, err := repositories.NewOnboardingRepository(db, 1)
			if err != nil {
				return err
			}

			find := repo.FindByMember
			if byMessage {
				find = repo.FindByTrackingMessage
			}
			record, err := find(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "record %d: member %s, message %s, stage %s\n",
				record.ID, record.MemberID, record.MessageID, record.Stage)
			return nil
		},
	}
	cmd.Flags().BoolVar(&byMessage, "message", false, "look up by tracking message id")
	return cmd
}
