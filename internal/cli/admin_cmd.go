package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bharathg-scrimpify/accord/internal/domain"
)

func newAdminCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative overrides",
	}

	cmd.AddCommand(
		newAdminSetStatusCmd(app),
		newAdminSetProgressCmd(app),
		newAdminSetTrancheCmd(app),
	)

	return cmd
}

func newAdminSetStatusCmd(app *App) *cobra.Command {
	var actorName string

	cmd := &cobra.Command{
		Use:   "set-status <id> <status>",
		Short: "Force the contract into a status, bypassing lifecycle rules",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveContractID(ctx, app, args[0])
			if err != nil {
				return err
			}

			c, err := app.Admin.SetStatus(ctx, id, domain.ContractStatus(args[1]), actorName)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s status overridden to %s\n", c.ShortCode, c.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&actorName, "actor", "admin", "Name recorded in the history entry")
	return cmd
}

func newAdminSetProgressCmd(app *App) *cobra.Command {
	var actorName string

	cmd := &cobra.Command{
		Use:   "set-progress <id> <percent>",
		Short: "Override the progress percentage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveContractID(ctx, app, args[0])
			if err != nil {
				return err
			}
			var pct int
			if _, err := fmt.Sscanf(args[1], "%d", &pct); err != nil {
				return fmt.Errorf("invalid progress %q", args[1])
			}

			c, err := app.Admin.SetProgress(ctx, id, pct, actorName)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s progress set to %d%%\n", c.ShortCode, c.Progress)
			return nil
		},
	}

	cmd.Flags().StringVar(&actorName, "actor", "admin", "Name recorded in the history entry")
	return cmd
}

func newAdminSetTrancheCmd(app *App) *cobra.Command {
	var (
		actorName   string
		frequency   string
		status      string
		requestDate string
		paymentDate string
	)

	cmd := &cobra.Command{
		Use:   "set-tranche <id> <tranche>",
		Short: "Override a tranche's status and dates",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveContractID(ctx, app, args[0])
			if err != nil {
				return err
			}
			idx, err := trancheArg(args[1])
			if err != nil {
				return err
			}

			parseDate := func(value string) (*time.Time, error) {
				if value == "" {
					return nil, nil
				}
				t, err := time.Parse("2006-01-02", value)
				if err != nil {
					return nil, fmt.Errorf("invalid date %q: %w", value, err)
				}
				return &t, nil
			}
			reqAt, err := parseDate(requestDate)
			if err != nil {
				return err
			}
			paidAt, err := parseDate(paymentDate)
			if err != nil {
				return err
			}

			c, err := app.Admin.SetTranche(ctx, id,
				domain.PaymentFrequency(frequency), idx,
				domain.TrancheStatus(status), reqAt, paidAt, actorName)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tranche %s (%s) of %s set to %s\n", args[1], frequency, c.ShortCode, status)
			return nil
		},
	}

	cmd.Flags().StringVar(&frequency, "frequency", "", "Schedule frequency the tranche belongs to")
	cmd.Flags().StringVar(&status, "status", "", "New tranche status: not_paid, requested or paid")
	cmd.Flags().StringVar(&requestDate, "request-date", "", "Request date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&paymentDate, "payment-date", "", "Payment date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&actorName, "actor", "admin", "Name recorded in the history entry")
	_ = cmd.MarkFlagRequired("frequency")
	_ = cmd.MarkFlagRequired("status")
	return cmd
}
