package main

import (
	"fmt"
	"strconv"

	"github.com/oldgods/nmibot/internal/domain/roster"
	"github.com/spf13/cobra"
)

func (c *cli) chaptersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chapters",
		Short: "Manage the chapter roster",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List chapters with their form numbers",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				_, r, err := c.chapters(cmd.Context())
				if err != nil {
					return err
				}
				for i, ch := range r.Chapters {
					fmt.Fprintf(cmd.OutOrStdout(), "[%d] %s (role %d)\n", i, ch.Name, ch.RoleID)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "add <name> <role-id>",
			Short: "Add a chapter; the roster stays sorted by name",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				roleID, err := strconv.ParseUint(args[1], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid role id %q: %w", args[1], err)
				}
				cache, r, err := c.chapters(cmd.Context())
				if err != nil {
					return err
				}
				updated, err := r.WithChapter(roster.Chapter{Name: args[0], RoleID: roleID})
				if err != nil {
					return err
				}
				if err := cache.Save(cmd.Context(), updated); err != nil {
					return err
				}
				index, _ := updated.Index(args[0])
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s as chapter %d\n", args[0], index)
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <name>",
			Short: "Remove the chapter best matching name",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				cache, r, err := c.chapters(cmd.Context())
				if err != nil {
					return err
				}
				match, err := r.Resolve(args[0])
				if err != nil {
					return err
				}
				updated, err := r.WithoutChapter(match.Index)
				if err != nil {
					return err
				}
				if err := cache.Save(cmd.Context(), updated); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s (was chapter %d)\n", match.Chapter.Name, match.Index)
				return nil
			},
		},
	)
	return cmd
}
