package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bharathg-scrimpify/accord/internal/cli/formatter"
	"github.com/bharathg-scrimpify/accord/internal/domain"
	"github.com/bharathg-scrimpify/accord/internal/export"
	"github.com/bharathg-scrimpify/accord/internal/service"
)

func newContractCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contract",
		Short: "Manage contracts",
	}

	cmd.AddCommand(
		newContractAddCmd(app),
		newContractListCmd(app),
		newContractShowCmd(app),
		newContractViewCmd(app),
		newContractSignCmd(app),
		newContractSendCmd(app),
		newContractStartCmd(app),
		newContractRequestCompletionCmd(app),
		newContractConfirmCompletionCmd(app),
		newContractCancelCmd(app),
		newContractSelectPaymentCmd(app),
		newContractEditCmd(app),
		newContractRemoveCmd(app),
		newContractExportCmd(app),
		newContractImportCmd(app),
	)

	return cmd
}

// actorFlag parses the --as flag into a domain actor named after the matching
// contract party.
func actorFlag(c *domain.Contract, as string) (domain.Actor, error) {
	switch strings.ToLower(as) {
	case "payer":
		return domain.Actor{Role: domain.RolePayer, Name: c.From.Name}, nil
	case "payee":
		return domain.Actor{Role: domain.RolePayee, Name: c.To.Name}, nil
	case "admin":
		return domain.Actor{Role: domain.RoleAdmin, Name: "admin"}, nil
	default:
		return domain.Actor{}, fmt.Errorf("invalid --as value %q (payer, payee or admin)", as)
	}
}

// loadContract resolves the id argument and fetches the aggregate.
func loadContract(ctx context.Context, app *App, input string) (*domain.Contract, error) {
	id, err := resolveContractID(ctx, app, input)
	if err != nil {
		return nil, err
	}
	return app.Contracts.GetByID(ctx, id)
}

func newContractAddCmd(app *App) *cobra.Command {
	var (
		fromName, fromEmail, fromOrg string
		toName, toEmail, toOrg       string
		place, start, end, rate      string
		notes                        string
		meals                        bool
		currency                     string
		total, receivable            string
		feePayer, feePayee           string
		monthly, weekly, daily       int
		interactive                  bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Draft a new contract",
		RunE: func(cmd *cobra.Command, args []string) error {
			var in service.CreateContractInput
			if interactive {
				if !app.interactive() {
					return fmt.Errorf("the wizard needs an interactive terminal")
				}
				wizIn, err := runContractWizard()
				if err != nil {
					return err
				}
				in = *wizIn
			} else {
				startDate, err := time.Parse("2006-01-02", start)
				if err != nil {
					return fmt.Errorf("invalid start date %q: %w", start, err)
				}
				endDate, err := time.Parse("2006-01-02", end)
				if err != nil {
					return fmt.Errorf("invalid end date %q: %w", end, err)
				}

				payment, err := buildPaymentPlan(currency, total, receivable, feePayer, feePayee, startDate, monthly, weekly, daily)
				if err != nil {
					return err
				}

				in = service.CreateContractInput{
					From: domain.ContractParty{Name: fromName, Email: fromEmail, Organization: fromOrg},
					To:   domain.ContractParty{Name: toName, Email: toEmail, Organization: toOrg},
					Details: domain.ContractDetails{
						PlaceOfService:    place,
						StartDate:         startDate,
						EndDate:           endDate,
						Rate:              rate,
						MealsIncluded:     meals,
						AdditionalDetails: notes,
					},
					Payment: payment,
				}
			}

			c, err := app.Contracts.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created contract %s (%s -> %s)\n", c.ShortCode, c.From.Name, c.To.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&fromName, "from-name", "", "Payer name")
	cmd.Flags().StringVar(&fromEmail, "from-email", "", "Payer email")
	cmd.Flags().StringVar(&fromOrg, "from-org", "", "Payer organization")
	cmd.Flags().StringVar(&toName, "to-name", "", "Payee name")
	cmd.Flags().StringVar(&toEmail, "to-email", "", "Payee email")
	cmd.Flags().StringVar(&toOrg, "to-org", "", "Payee organization")
	cmd.Flags().StringVar(&place, "place", "", "Place of service")
	cmd.Flags().StringVar(&start, "start", "", "Service start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Service end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&rate, "rate", "", "Rate description, e.g. \"USD 500/day\"")
	cmd.Flags().BoolVar(&meals, "meals", false, "Meals included")
	cmd.Flags().StringVar(&notes, "notes", "", "Additional details")
	cmd.Flags().StringVar(&currency, "currency", "USD", "ISO currency code")
	cmd.Flags().StringVar(&total, "total", "", "Total payable amount")
	cmd.Flags().StringVar(&receivable, "receivable", "", "Total receivable amount")
	cmd.Flags().StringVar(&feePayer, "fee-payer", "0", "Marketplace fee charged to the payer")
	cmd.Flags().StringVar(&feePayee, "fee-payee", "0", "Marketplace fee charged to the payee")
	cmd.Flags().IntVar(&monthly, "monthly", 0, "Number of monthly tranches to offer")
	cmd.Flags().IntVar(&weekly, "weekly", 0, "Number of weekly tranches to offer")
	cmd.Flags().IntVar(&daily, "daily", 0, "Number of daily tranches to offer")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Launch the guided wizard")

	return cmd
}

// buildPaymentPlan assembles the plan from flag values: money fields plus one
// generated schedule per requested frequency, all starting at the service
// start date.
func buildPaymentPlan(currency, total, receivable, feePayer, feePayee string, start time.Time, monthly, weekly, daily int) (domain.PaymentPlan, error) {
	var plan domain.PaymentPlan
	var err error

	if plan.TotalPayable, err = domain.NewMoneyFromString(currency, total); err != nil {
		return plan, fmt.Errorf("invalid --total: %w", err)
	}
	if plan.TotalReceivable, err = domain.NewMoneyFromString(currency, receivable); err != nil {
		return plan, fmt.Errorf("invalid --receivable: %w", err)
	}
	if plan.FeeFromPayer, err = domain.NewMoneyFromString(currency, feePayer); err != nil {
		return plan, fmt.Errorf("invalid --fee-payer: %w", err)
	}
	if plan.FeeFromPayee, err = domain.NewMoneyFromString(currency, feePayee); err != nil {
		return plan, fmt.Errorf("invalid --fee-payee: %w", err)
	}

	counts := []struct {
		freq  domain.PaymentFrequency
		count int
	}{
		{domain.FrequencyMonthly, monthly},
		{domain.FrequencyWeekly, weekly},
		{domain.FrequencyDaily, daily},
	}
	for _, c := range counts {
		if c.count <= 0 {
			continue
		}
		sched, err := domain.GenerateSchedule(plan.TotalPayable, c.freq, c.count, start)
		if err != nil {
			return plan, err
		}
		plan.Schedules = append(plan.Schedules, sched)
	}

	return plan, nil
}

// statusFilterValue is a pflag.Value that parses a comma-separated status
// list and rejects unknown statuses at flag-parse time.
type statusFilterValue struct {
	statuses []domain.ContractStatus
}

func (v *statusFilterValue) String() string {
	parts := make([]string, len(v.statuses))
	for i, s := range v.statuses {
		parts[i] = string(s)
	}
	return strings.Join(parts, ",")
}

func (v *statusFilterValue) Set(raw string) error {
	v.statuses = nil
	for _, s := range strings.Split(raw, ",") {
		status := domain.ContractStatus(strings.TrimSpace(s))
		if !status.Valid() {
			return fmt.Errorf("unknown status %q", s)
		}
		v.statuses = append(v.statuses, status)
	}
	return nil
}

func (v *statusFilterValue) Type() string { return "statusList" }

var _ pflag.Value = (*statusFilterValue)(nil)

func newContractListCmd(app *App) *cobra.Command {
	var filter statusFilterValue

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contracts",
		RunE: func(cmd *cobra.Command, args []string) error {
			summaries, err := app.Contracts.List(cmd.Context(), filter.statuses)
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No contracts found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatContractList(summaries))
			return nil
		},
	}

	cmd.Flags().Var(&filter, "status", "Comma-separated status filter (e.g. active,in_progress)")
	return cmd
}

func newContractShowCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show contract details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadContract(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return export.WriteDocument(export.ToDocument(c), "")
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatContractDetail(c))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the contract as JSON")
	return cmd
}

func newContractSignCmd(app *App) *cobra.Command {
	var as, signature string

	cmd := &cobra.Command{
		Use:   "sign <id>",
		Short: "Sign the contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := loadContract(ctx, app, args[0])
			if err != nil {
				return err
			}
			actor, err := actorFlag(c, as)
			if err != nil {
				return err
			}
			if signature == "" {
				signature = actor.Name
			}

			c, err = app.Contracts.Sign(ctx, c.ID, actor, signature)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed %s as %s; status is now %s\n", c.ShortCode, as, c.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&as, "as", "", "Signing party: payer or payee")
	cmd.Flags().StringVar(&signature, "signature", "", "Signature text (defaults to the party name)")
	_ = cmd.MarkFlagRequired("as")
	return cmd
}

// newAdvanceCmd builds the shared shape of the single-event lifecycle commands.
func newAdvanceCmd(app *App, use, short string, event domain.LifecycleEvent, defaultAs string) *cobra.Command {
	var as string

	cmd := &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := loadContract(ctx, app, args[0])
			if err != nil {
				return err
			}
			actor, err := actorFlag(c, as)
			if err != nil {
				return err
			}

			c, err = app.Contracts.Advance(ctx, c.ID, event, actor)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", c.ShortCode, domain.MetaFor(c.Status).Label)
			return nil
		},
	}

	cmd.Flags().StringVar(&as, "as", defaultAs, "Acting party: payer or payee")
	return cmd
}

func newContractSendCmd(app *App) *cobra.Command {
	return newAdvanceCmd(app, "send", "Send the draft for counterparty review", domain.EventSendForReview, "payer")
}

func newContractStartCmd(app *App) *cobra.Command {
	return newAdvanceCmd(app, "start", "Mark the service as started", domain.EventStart, "payer")
}

func newContractRequestCompletionCmd(app *App) *cobra.Command {
	return newAdvanceCmd(app, "request-completion", "Request completion confirmation", domain.EventRequestCompletion, "payee")
}

func newContractConfirmCompletionCmd(app *App) *cobra.Command {
	return newAdvanceCmd(app, "confirm-completion", "Confirm completion", domain.EventConfirmCompletion, "")
}

func newContractCancelCmd(app *App) *cobra.Command {
	return newAdvanceCmd(app, "cancel", "Cancel the contract", domain.EventCancel, "")
}

func newContractSelectPaymentCmd(app *App) *cobra.Command {
	var ptype, frequency string

	cmd := &cobra.Command{
		Use:   "select-payment <id>",
		Short: "Choose the payment method",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := loadContract(ctx, app, args[0])
			if err != nil {
				return err
			}
			actor := domain.Actor{Role: domain.RolePayer, Name: c.From.Name}

			c, err = app.Contracts.SelectPaymentMethod(ctx, c.ID,
				domain.PaymentType(ptype), domain.PaymentFrequency(frequency), actor)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Payment method for %s set to %s\n", c.ShortCode, ptype)
			return nil
		},
	}

	cmd.Flags().StringVar(&ptype, "type", "", "Payment type: one_time or partial")
	cmd.Flags().StringVar(&frequency, "frequency", "", "Schedule frequency for partial payment")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func newContractEditCmd(app *App) *cobra.Command {
	var as string

	cmd := &cobra.Command{
		Use:   "edit <id> <section> <field> <value>",
		Short: "Edit a draft field (sections: from, to, details)",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := loadContract(ctx, app, args[0])
			if err != nil {
				return err
			}
			actor, err := actorFlag(c, as)
			if err != nil {
				return err
			}

			c, err = app.Contracts.EditField(ctx, c.ID, args[1], args[2], args[3], actor)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s.%s on %s\n", args[1], args[2], c.ShortCode)
			return nil
		},
	}

	cmd.Flags().StringVar(&as, "as", "payer", "Acting party: payer or payee")
	return cmd
}

func newContractRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveContractID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Contracts.Delete(ctx, id, force); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Contract removed.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Delete even if the contract is signed or underway")
	return cmd
}

func newContractExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export a contract as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadContract(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := export.WriteDocument(export.ToDocument(c), out); err != nil {
				return err
			}
			if out != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", c.ShortCode, out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output file (default stdout)")
	return cmd
}

func newContractImportCmd(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a contract from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := export.LoadDocument(file)
			if err != nil {
				return err
			}
			if errs := export.ValidateDocument(doc); len(errs) > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "Import failed with %d error(s):\n", len(errs))
				for _, e := range errs {
					fmt.Fprintf(cmd.ErrOrStderr(), "  - %v\n", e)
				}
				return fmt.Errorf("invalid contract file %s", file)
			}

			imported, err := export.FromDocument(doc)
			if err != nil {
				return err
			}

			c, err := app.Contracts.Create(cmd.Context(), service.CreateContractInput{
				From:    imported.From,
				To:      imported.To,
				Details: imported.Details,
				Payment: imported.Payment,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported contract %s (%s -> %s)\n", c.ShortCode, c.From.Name, c.To.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Contract JSON file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
