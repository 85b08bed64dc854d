package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/bharathg-scrimpify/accord/internal/cli/formatter"
	"github.com/bharathg-scrimpify/accord/internal/domain"
	"github.com/bharathg-scrimpify/accord/internal/service"
)

// accordHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func accordHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func validateRequired(label string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", label)
		}
		return nil
	}
}

func validateDate(s string) error {
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

func validateAmount(s string) error {
	if _, err := domain.NewMoneyFromString("USD", s); err != nil {
		return fmt.Errorf("not a valid amount")
	}
	return nil
}

func validateOptionalCount(s string) error {
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err != nil || n < 0 {
		return fmt.Errorf("must be a non-negative number")
	}
	return nil
}

// runContractWizard walks the user through drafting a contract: parties,
// service details, then the payment plan with optional schedules per
// frequency.
func runContractWizard() (*service.CreateContractInput, error) {
	var (
		fromName, fromEmail, fromOrg string
		toName, toEmail, toOrg       string
		place, start, end, rate      string
		notes                        string
		meals                        bool
		currency                     = "USD"
		total, receivable            string
		feePayer, feePayee           = "0", "0"
		monthly, weekly, daily       string
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Payer name").Value(&fromName).Validate(validateRequired("payer name")),
			huh.NewInput().Title("Payer email").Value(&fromEmail),
			huh.NewInput().Title("Payer organization").Value(&fromOrg),
			huh.NewInput().Title("Payee name").Value(&toName).Validate(validateRequired("payee name")),
			huh.NewInput().Title("Payee email").Value(&toEmail),
			huh.NewInput().Title("Payee organization").Value(&toOrg),
		).Title("Parties"),
		huh.NewGroup(
			huh.NewInput().Title("Place of service").Value(&place),
			huh.NewInput().Title("Start date").Placeholder("YYYY-MM-DD").Value(&start).Validate(validateDate),
			huh.NewInput().Title("End date").Placeholder("YYYY-MM-DD").Value(&end).Validate(validateDate),
			huh.NewInput().Title("Rate").Placeholder("USD 500/day").Value(&rate),
			huh.NewConfirm().Title("Meals included?").Value(&meals),
			huh.NewText().Title("Additional details").Value(&notes).Lines(3),
		).Title("Service details"),
		huh.NewGroup(
			huh.NewInput().Title("Currency").Value(&currency).Validate(validateRequired("currency")),
			huh.NewInput().Title("Total payable").Value(&total).Validate(validateAmount),
			huh.NewInput().Title("Total receivable").Value(&receivable).Validate(validateAmount),
			huh.NewInput().Title("Fee from payer").Value(&feePayer).Validate(validateAmount),
			huh.NewInput().Title("Fee from payee").Value(&feePayee).Validate(validateAmount),
			huh.NewInput().Title("Monthly tranches").Description("Leave empty for none").Value(&monthly).Validate(validateOptionalCount),
			huh.NewInput().Title("Weekly tranches").Description("Leave empty for none").Value(&weekly).Validate(validateOptionalCount),
			huh.NewInput().Title("Daily tranches").Description("Leave empty for none").Value(&daily).Validate(validateOptionalCount),
		).Title("Payment plan"),
	).WithTheme(accordHuhTheme())

	if err := form.Run(); err != nil {
		return nil, err
	}

	startDate, err := time.Parse("2006-01-02", start)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	endDate, err := time.Parse("2006-01-02", end)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", end, err)
	}

	count := func(s string) int {
		n, _ := strconv.Atoi(s)
		return n
	}
	payment, err := buildPaymentPlan(currency, total, receivable, feePayer, feePayee,
		startDate, count(monthly), count(weekly), count(daily))
	if err != nil {
		return nil, err
	}

	return &service.CreateContractInput{
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
	}, nil
}
