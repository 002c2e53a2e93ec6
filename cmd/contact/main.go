package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/csg33k/contact-form/internal/adapters/console"
	"github.com/csg33k/contact-form/internal/bootstrap"
	"github.com/csg33k/contact-form/internal/contact"
	"github.com/csg33k/contact-form/internal/domain"
	"github.com/csg33k/contact-form/internal/viewmodel"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "contact",
		Short:         "Send a message through the site's contact form relay",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newSendCmd())
	return root
}

type sendFlags struct {
	endpoint string
	name     string
	email    string
	message  string
	noInput  bool
	noRetry  bool
}

func newSendCmd() *cobra.Command {
	var f sendFlags
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Fill in and submit the contact form",
		Long: `Prompts for name, email and message, validates them and posts the form
to the relay endpoint once. Invalid fields are asked again. With --no-input
the flag values are submitted as-is.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSend(cmd.Context(), f)
		},
	}
	cmd.Flags().StringVar(&f.endpoint, "endpoint", "", "relay endpoint (overrides CONTACT_ENDPOINT)")
	cmd.Flags().StringVar(&f.name, "name", "", "prefill the name field")
	cmd.Flags().StringVar(&f.email, "email", "", "prefill the email field")
	cmd.Flags().StringVar(&f.message, "message", "", "prefill the message field")
	cmd.Flags().BoolVar(&f.noInput, "no-input", false, "do not prompt; submit the flag values")
	cmd.Flags().BoolVar(&f.noRetry, "no-retry-prompt", false, "do not offer to resend after a failure")
	return cmd
}

func runSend(ctx context.Context, f sendFlags) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	if f.endpoint != "" {
		cfg.Contact.Endpoint = f.endpoint
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := bootstrap.InitLogger(cfg.Log, os.Stderr)

	page := viewmodel.NewPage(cfg.Contact.Endpoint, cfg.Site.Hidden)
	page.Form.Fill(func(id string) (string, bool) {
		switch id {
		case domain.FieldName:
			return f.name, true
		case domain.FieldEmail:
			return f.email, true
		case domain.FieldMessage:
			return f.message, true
		}
		return "", false
	})

	ctrl, err := contact.New(page.Handles(), bootstrap.NewRelay(cfg.Contact),
		contact.WithMessages(cfg.Site.Messages),
		contact.WithHideAfter(cfg.Contact.HideAfter),
		contact.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	session, err := console.NewSession(console.NewSurveyDriver(), page, ctrl,
		console.WithRetryPrompt(!f.noRetry && !f.noInput),
	)
	if err != nil {
		return err
	}

	var outcome domain.SubmissionOutcome
	if f.noInput {
		outcome, err = session.Send(ctx)
	} else {
		outcome, err = session.Run(ctx)
	}
	if errors.Is(err, console.ErrAborted) {
		return errors.New("aborted")
	}
	if err != nil {
		return err
	}
	if outcome.Kind != domain.OutcomeSuccess {
		return fmt.Errorf("message not sent (%s)", outcome.Kind)
	}
	return nil
}
