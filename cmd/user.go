package cmd

import (
	"context"
	"fmt"

	"github.com/example/exercise-tracker/internal/tracker"
	"github.com/spf13/cobra"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}
	cmd.AddCommand(newUserAddCmd())
	cmd.AddCommand(newUserListCmd())
	return cmd
}

func newUserAddCmd() *cobra.Command {
	var username string

	c := &cobra.Command{
		Use:   "add",
		Short: "Register a username",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := context.Background()
			st, err := openMigrated(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer st.Close()

			u, err := tracker.New(st, nil).CreateUser(ctx, username)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user id=%s username=%q\n", u.ID, u.Username)
			return nil
		},
	}

	c.Flags().StringVar(&username, "username", "", "username")
	_ = c.MarkFlagRequired("username")
	return c
}

func newUserListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all users in creation order",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := context.Background()
			st, err := openMigrated(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer st.Close()

			users, err := tracker.New(st, nil).ListUsers(ctx)
			if err != nil {
				return err
			}
			for _, u := range users {
				fmt.Fprintf(cmd.OutOrStdout(), "id=%s username=%q\n", u.ID, u.Username)
			}
			return nil
		},
	}
}
