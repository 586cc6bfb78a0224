package main

import (
	"errors"
	"os"
	"time"

	"github.com/advisor-site/lead-intake/internal/intake"
	"github.com/advisor-site/lead-intake/internal/utils/httpclient"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		apiURL  string
		timeout time.Duration
	)

	root := &cobra.Command{
		Use:          "intake",
		Short:        "Fill in the advisor site forms from a terminal",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&apiURL, "api", "http://localhost:8080", "base URL of the intake API")
	root.PersistentFlags().DurationVar(&timeout, "timeout", httpclient.DefaultTimeout, "request timeout")

	submitter := func() intake.Submitter {
		return intake.NewHTTPSubmitter(apiURL, httpclient.NewPool(1, timeout))
	}

	root.AddCommand(&cobra.Command{
		Use:   "apply",
		Short: "Walk through the IUL application wizard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return newSession(cmd.InOrStdin(), cmd.OutOrStdout()).runApply(cmd.Context(), submitter())
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "contact",
		Short: "Send a message to the advisor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return newSession(cmd.InOrStdin(), cmd.OutOrStdout()).runContact(cmd.Context(), submitter())
		},
	})

	return root
}

// errAborted is returned when input ends before the form is sent.
var errAborted = errors.New("input closed before the form was sent")
