package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bharathg-scrimpify/accord/internal/cli/formatter"
	"github.com/bharathg-scrimpify/accord/internal/domain"
)

// contractLoadedMsg signals that the contract snapshot has been (re)loaded.
type contractLoadedMsg struct {
	contract *domain.Contract
	err      error
}

// contractViewModel is a read-only live view of a single contract. It renders
// the same detail layout as `contract show` and reloads the snapshot on
// demand, so a second terminal can watch a contract while the lifecycle is
// driven elsewhere.
type contractViewModel struct {
	app        *App
	contractID string

	contract *domain.Contract
	loading  bool
	err      error

	keys contractViewKeys
}

type contractViewKeys struct {
	Refresh key.Binding
	Quit    key.Binding
}

func newContractViewKeys() contractViewKeys {
	return contractViewKeys{
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func newContractViewModel(app *App, contractID string) *contractViewModel {
	return &contractViewModel{
		app:        app,
		contractID: contractID,
		loading:    true,
		keys:       newContractViewKeys(),
	}
}

func (m *contractViewModel) loadContract() tea.Cmd {
	app, id := m.app, m.contractID
	return func() tea.Msg {
		c, err := app.Contracts.GetByID(context.Background(), id)
		return contractLoadedMsg{contract: c, err: err}
	}
}

func (m *contractViewModel) Init() tea.Cmd {
	return m.loadContract()
}

func (m *contractViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case contractLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.contract = msg.contract
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			return m, m.loadContract()
		}
	}
	return m, nil
}

func (m *contractViewModel) View() string {
	if m.err != nil {
		return formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n\nPress q to quit.\n"
	}
	if m.contract == nil {
		return formatter.Dim("Loading contract...") + "\n"
	}

	out := formatter.FormatContractDetail(m.contract) + "\n"
	if m.loading {
		out += formatter.Dim("refreshing...") + "\n"
	}
	out += formatter.Dim("r refresh · q quit") + "\n"
	return out
}

func newContractViewCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <id>",
		Short: "Watch a contract in an interactive view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("the live view needs an interactive terminal")
			}
			id, err := resolveContractID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}

			p := tea.NewProgram(newContractViewModel(app, id))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("view failed: %w", err)
			}
			return nil
		},
	}
	return cmd
}
