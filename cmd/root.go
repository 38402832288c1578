package cmd

import (
	"embed"
	"errors"
	"io/fs"

	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	version  = "dev"
	envFile  string
	staticFS embed.FS
)

// SetVersion sets the version reported by --version.
func SetVersion(v string) {
	version = v
}

// Execute runs the command line. staticFS holds the /static assets.
func Execute(static embed.FS) error {
	staticFS = static
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "signupweb",
		Short:        "Registration form server",
		Long:         `Serves the account registration form and forwards sign-ups to the registration service.`,
		Version:      version,
		SilenceUsage: true,
		RunE:         runServe,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadEnv(envFile)
		},
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	rootCmd.AddCommand(newServeCmd(), newRegisterCmd(), newAttemptsCmd())
	return rootCmd
}

// loadEnv loads a dotenv file. A missing file is not an error; the environment may be set already.
func loadEnv(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		fiberlog.Debugf("no %s file, using the environment", path)
		return nil
	}
	return err
}
