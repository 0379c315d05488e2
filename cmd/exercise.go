package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/example/exercise-tracker/internal/exercise"
	"github.com/example/exercise-tracker/internal/tracker"
	"github.com/spf13/cobra"
)

func newExerciseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exercise",
		Short: "Record and query exercise logs",
	}
	cmd.AddCommand(newExerciseAddCmd())
	cmd.AddCommand(newExerciseLogCmd())
	return cmd
}

func newExerciseAddCmd() *cobra.Command {
	var in tracker.AddExerciseInput

	c := &cobra.Command{
		Use:   "add",
		Short: "Append an exercise to a user's log",
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

			out, err := tracker.New(st, nil).AddExercise(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user=%q entries=%d\n", out.Username, len(out.Log))
			printLog(cmd.OutOrStdout(), out.Log)
			return nil
		},
	}

	c.Flags().StringVar(&in.UserID, "user-id", "", "user id")
	c.Flags().StringVar(&in.Description, "description", "", "what was done")
	c.Flags().StringVar(&in.Duration, "duration", "", "duration (non-negative integer)")
	c.Flags().StringVar(&in.Date, "date", "", "date YYYY-MM-DD (default today, UTC)")
	_ = c.MarkFlagRequired("user-id")
	_ = c.MarkFlagRequired("description")
	_ = c.MarkFlagRequired("duration")
	return c
}

func newExerciseLogCmd() *cobra.Command {
	var (
		userID string
		q      exercise.LogQuery
	)

	c := &cobra.Command{
		Use:   "log",
		Short: "Show a user's log, optionally filtered",
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

			rep, err := tracker.New(st, nil).GetLog(ctx, tracker.LogInput{UserID: userID, LogQuery: q})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user=%q count=%d\n", rep.Username, rep.Count)
			printLog(cmd.OutOrStdout(), rep.Log)
			return nil
		},
	}

	c.Flags().StringVar(&userID, "user-id", "", "user id")
	c.Flags().StringVar(&q.From, "from", "", "earliest date YYYY-MM-DD (inclusive)")
	c.Flags().StringVar(&q.To, "to", "", "latest date YYYY-MM-DD (inclusive)")
	c.Flags().StringVar(&q.Limit, "limit", "", "keep at most N entries")
	_ = c.MarkFlagRequired("user-id")
	return c
}

func printLog(w io.Writer, log []tracker.LogItem) {
	for _, e := range log {
		fmt.Fprintf(w, "%s duration=%d %q\n", e.Date, e.Duration, e.Description)
	}
}
