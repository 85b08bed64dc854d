package cli

import (
	"github.com/spf13/cobra"

	"github.com/bharathg-scrimpify/accord/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Contracts service.ContractService
	Payments  service.PaymentService
	Admin     service.AdminService

	// IsInteractive reports whether stdin is attached to a terminal.
	// The wizard and the live view refuse to start without one.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive == nil || a.IsInteractive()
}

// NewRootCmd creates the top-level "accord" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "accord",
		Short: "Bilateral service-contract and payment-plan manager",
	}

	root.AddCommand(
		newContractCmd(app),
		newPaymentCmd(app),
		newAdminCmd(app),
	)

	return root
}
