package cmd

import (
	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/cobra"

	"signupweb/internal/app"
	"signupweb/internal/config"
	"signupweb/internal/repo"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewConfigFromEnvironment(staticFS)
	if err != nil {
		return err
	}

	if cfg.DatabaseUrl != "" {
		db, err := repo.Open(cmd.Context(), cfg.DatabaseUrl)
		if err != nil {
			return err
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Errorf("failed to close db: %+v", err)
			}
		}()
		cfg.Repo = repo.New(db)
	}

	a, err := app.New(&cfg)
	if err != nil {
		return err
	}

	return a.Listen(cfg.Host + ":" + cfg.Port)
}
