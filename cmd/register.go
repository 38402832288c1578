package cmd

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"signupweb/internal/app"
	"signupweb/internal/config"
	"signupweb/internal/registration"
	"signupweb/internal/signup"
)

func newRegisterCmd() *cobra.Command {
	var draft signup.Draft

	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Register an account from the command line",
		Long:  `Submits one registration to the configured backend, the same way the web form does.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewConfigFromEnvironment(staticFS)
			if err != nil {
				return err
			}
			registrar, err := app.NewRegistrar(cmd.Context(), &cfg)
			if err != nil {
				return err
			}
			return runRegister(cmd, registrar, cfg.RegistrationTimeout, draft)
		},
	}

	registerCmd.Flags().StringVar(&draft.Email, "email", "", "account email")
	registerCmd.Flags().StringVar(&draft.Name, "name", "", "display name")
	registerCmd.Flags().StringVar(&draft.Password, "password", "", "account password")
	for _, flag := range []string{"email", "name", "password"} {
		_ = registerCmd.MarkFlagRequired(flag)
	}

	return registerCmd
}

func runRegister(cmd *cobra.Command, registrar signup.Registrar, timeout time.Duration, draft signup.Draft) error {
	out := &printer{w: cmd.OutOrStdout()}
	workflow := signup.Workflow{
		Registrar: registrar,
		Notifier:  out,
		Navigator: out,
		Guard:     signup.NewCacheGuard(2 * timeout),
		Timeout:   timeout,
	}

	ctx := registration.WithRequestID(cmd.Context(), registration.NewRequestID())
	result := workflow.Submit(ctx, "cli", draft)
	if result.Err != nil {
		return fmt.Errorf("%w: %s", result.Err, result.Form.Alert)
	}
	if result.Form.Alert != "" {
		return errors.New(result.Form.Alert)
	}
	return nil
}

// printer reports notices and navigation on the terminal.
type printer struct {
	w io.Writer
}

func (p *printer) Notify(message string) {
	fmt.Fprintln(p.w, message)
}

func (p *printer) Navigate(path string) {
	fmt.Fprintf(p.w, "next: %s\n", path)
}
