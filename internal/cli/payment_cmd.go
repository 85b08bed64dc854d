package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/bharathg-scrimpify/accord/internal/domain"
)

func newPaymentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payment",
		Short: "Manage payment tranches",
	}

	cmd.AddCommand(
		newPaymentRequestCmd(app),
		newPaymentApproveCmd(app),
		newPaymentCancelCmd(app),
		newPaymentCaptureCmd(app),
	)

	return cmd
}

// trancheArg parses the 1-based tranche number shown in the payment plan
// into the 0-based index the services use.
func trancheArg(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid tranche number %q", arg)
	}
	return n - 1, nil
}

func newPaymentRequestCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "request <id> <tranche>",
		Short: "Request payment for a tranche (payee)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := loadContract(ctx, app, args[0])
			if err != nil {
				return err
			}
			idx, err := trancheArg(args[1])
			if err != nil {
				return err
			}
			actor := domain.Actor{Role: domain.RolePayee, Name: c.To.Name}

			c, err = app.Payments.Request(ctx, c.ID, idx, actor)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Requested payment for tranche %s of %s\n", args[1], c.ShortCode)
			return nil
		},
	}
	return cmd
}

func newPaymentApproveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approve <id> <tranche>",
		Short: "Approve a requested tranche (payer)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := loadContract(ctx, app, args[0])
			if err != nil {
				return err
			}
			idx, err := trancheArg(args[1])
			if err != nil {
				return err
			}
			actor := domain.Actor{Role: domain.RolePayer, Name: c.From.Name}

			c, err = app.Payments.Approve(ctx, c.ID, idx, actor)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tranche %s of %s marked paid\n", args[1], c.ShortCode)
			return nil
		},
	}
	return cmd
}

func newPaymentCancelCmd(app *App) *cobra.Command {
	var as string

	cmd := &cobra.Command{
		Use:   "cancel <id> <tranche>",
		Short: "Cancel a pending payment request",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := loadContract(ctx, app, args[0])
			if err != nil {
				return err
			}
			idx, err := trancheArg(args[1])
			if err != nil {
				return err
			}
			actor, err := actorFlag(c, as)
			if err != nil {
				return err
			}

			c, err = app.Payments.Cancel(ctx, c.ID, idx, actor)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cancelled payment request for tranche %s of %s\n", args[1], c.ShortCode)
			return nil
		},
	}

	cmd.Flags().StringVar(&as, "as", "payer", "Acting party: payer or payee")
	return cmd
}

func newPaymentCaptureCmd(app *App) *cobra.Command {
	var hold time.Duration

	cmd := &cobra.Command{
		Use:   "capture <id> <tranche>",
		Short: "Approve a tranche after a hold period",
		Long: `Capture validates the tranche immediately, waits for the hold period,
then commits the paid state. Interrupting the command during the hold
leaves the tranche in its requested state.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := loadContract(ctx, app, args[0])
			if err != nil {
				return err
			}
			idx, err := trancheArg(args[1])
			if err != nil {
				return err
			}
			actor := domain.Actor{Role: domain.RolePayer, Name: c.From.Name}

			if hold > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Holding tranche %s of %s for %s...\n", args[1], c.ShortCode, hold)
			}
			c, err = app.Payments.Capture(ctx, c.ID, idx, actor, hold)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tranche %s of %s captured\n", args[1], c.ShortCode)
			return nil
		},
	}

	cmd.Flags().DurationVar(&hold, "hold", 0, "Hold period before the payment commits (e.g. 30s)")
	return cmd
}
