package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/cobra"

	"signupweb/internal/config"
	"signupweb/internal/repo"
)

func newAttemptsCmd() *cobra.Command {
	var (
		email string
		limit int64
	)

	attemptsCmd := &cobra.Command{
		Use:   "attempts",
		Short: "List recent sign-up attempts for an email",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewConfigFromEnvironment(staticFS)
			if err != nil {
				return err
			}
			if cfg.DatabaseUrl == "" {
				return errors.New("attempts: DATABASE_URL is not set")
			}

			db, err := repo.Open(cmd.Context(), cfg.DatabaseUrl)
			if err != nil {
				return err
			}
			defer func() {
				if err := db.Close(); err != nil {
					log.Errorf("failed to close db: %+v", err)
				}
			}()

			return printAttempts(cmd.Context(), cmd.OutOrStdout(), repo.New(db), email, limit)
		},
	}

	attemptsCmd.Flags().StringVar(&email, "email", "", "account email")
	attemptsCmd.Flags().Int64Var(&limit, "limit", 10, "how many attempts to show, newest first")
	_ = attemptsCmd.MarkFlagRequired("email")

	return attemptsCmd
}

func printAttempts(ctx context.Context, w io.Writer, attempts repo.Repository, email string, limit int64) error {
	if limit <= 0 {
		return fmt.Errorf("attempts: --limit must be positive, got %d", limit)
	}

	list, err := attempts.RecentAttempts(ctx, email, limit)
	if err != nil {
		return err
	}

	if len(list) == 0 {
		fmt.Fprintf(w, "no attempts for %s\n", email)
		return nil
	}
	for _, a := range list {
		fmt.Fprintf(w, "%s  %-16s  %s\n", a.CreatedAt.UTC().Format(time.RFC3339), a.Outcome, a.RequestID)
	}
	return nil
}
