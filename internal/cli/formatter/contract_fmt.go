package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bharathg-scrimpify/accord/internal/domain"
	"github.com/bharathg-scrimpify/accord/internal/repository"
)

// FormatContractList renders the contract overview table inside a bordered box.
func FormatContractList(summaries []repository.ContractSummary) string {
	headers := []string{"CODE", "FROM", "TO", "STATUS", "PROGRESS", "TOTAL"}
	rows := make([][]string, 0, len(summaries))

	for _, s := range summaries {
		code := s.ShortCode
		if strings.TrimSpace(code) == "" {
			code = TruncID(s.ID)
		}
		rows = append(rows, []string{
			Bold(code),
			s.FromName,
			s.ToName,
			StatusBadge(s.Status),
			RenderProgress(s.Progress, 10),
			s.TotalPayable.String(),
		})
	}

	return RenderBox("Contracts", RenderTable(headers, rows))
}

// FormatContractDetail renders the full contract card: metadata, lifecycle
// stepper, parties, payment plan, and history.
func FormatContractDetail(c *domain.Contract) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(c.ShortCode) + "  " + Dim(TruncID(c.ID)) + "\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("STATUS  "), StatusBadge(c.Status)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("PROGRESS"), RenderProgress(c.Progress, 20)))
	b.WriteString("\n" + RenderStepper(c.Status) + "\n\n")

	b.WriteString(formatParties(c))
	b.WriteString("\n")
	b.WriteString(formatDetails(c.Details))
	b.WriteString("\n")
	b.WriteString(FormatPaymentPlan(c.Payment))
	if len(c.History) > 0 {
		b.WriteString("\n")
		b.WriteString(FormatHistory(c.History))
	}

	return RenderBox("", strings.TrimRight(b.String(), "\n"))
}

func formatParties(c *domain.Contract) string {
	var b strings.Builder
	b.WriteString(Header("Parties") + "\n")
	b.WriteString(formatParty("PAYER", c.From))
	b.WriteString(formatParty("PAYEE", c.To))
	return b.String()
}

func formatParty(role string, p domain.ContractParty) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s", StyleDim.Render(role), Bold(p.Name)))
	if p.Organization != "" {
		b.WriteString(Dim(" · " + p.Organization))
	}
	if p.Signed() {
		b.WriteString("  " + StyleGreen.Render("✓ signed"))
	} else {
		b.WriteString("  " + Dim("unsigned"))
	}
	b.WriteString("\n")
	if p.Email != "" {
		b.WriteString("       " + Dim(p.Email) + "\n")
	}
	return b.String()
}

func formatDetails(d domain.ContractDetails) string {
	var b strings.Builder
	b.WriteString(Header("Terms") + "\n")
	if d.PlaceOfService != "" {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("PLACE"), StyleFg.Render(d.PlaceOfService)))
	}
	b.WriteString(fmt.Sprintf("%s  %s %s %s\n", StyleDim.Render("DATES"),
		StyleFg.Render(HumanDate(d.StartDate)), Dim("to"), StyleFg.Render(HumanDate(d.EndDate))))
	if d.Rate != "" {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("RATE "), StyleFg.Render(d.Rate)))
	}
	if d.MealsIncluded {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("MEALS"), StyleFg.Render("included")))
	}
	if d.AdditionalDetails != "" {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("NOTES"), Dim(d.AdditionalDetails)))
	}
	return b.String()
}

// FormatPaymentPlan renders totals, fee split, the selected method, and one
// table per schedule with the selected schedule marked.
func FormatPaymentPlan(p domain.PaymentPlan) string {
	var b strings.Builder
	b.WriteString(Header("Payment") + "\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("PAYABLE   "), Bold(p.TotalPayable.String())))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("RECEIVABLE"), StyleFg.Render(p.TotalReceivable.String())))
	b.WriteString(fmt.Sprintf("%s  %s %s %s\n", StyleDim.Render("FEES      "),
		StyleFg.Render(p.FeeFromPayer.String()), Dim("payer /"),
		StyleFg.Render(p.FeeFromPayee.String()+" payee")))

	method := Dim("not selected")
	switch p.SelectedType {
	case domain.PaymentOneTime:
		method = StyleFg.Render("one-time")
	case domain.PaymentPartial:
		method = StyleFg.Render(fmt.Sprintf("partial, %s", p.SelectedFrequency))
	}
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("METHOD    "), method))

	for _, s := range p.Schedules {
		title := strings.ToUpper(string(s.Frequency))
		if p.SelectedType == domain.PaymentPartial && s.Frequency == p.SelectedFrequency {
			title += " " + StyleGreen.Render("(selected)")
		}
		b.WriteString("\n" + StyleBold.Render(title) + "\n")
		b.WriteString(formatScheduleTable(s) + "\n")
	}

	return b.String()
}

func formatScheduleTable(s domain.PaymentSchedule) string {
	headers := []string{"#", "DUE", "AMOUNT", "STATUS", "PAID"}
	rows := make([][]string, 0, len(s.Tranches))
	for i, t := range s.Tranches {
		paid := Dim("--")
		if t.PaymentDate != nil {
			paid = StyleFg.Render(HumanDate(*t.PaymentDate))
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			HumanDate(t.DueDate),
			t.Amount.String(),
			TrancheBadge(t.Status),
			paid,
		})
	}
	return RenderTable(headers, rows)
}

// FormatHistory renders the audit trail, newest entry last.
func FormatHistory(entries []domain.HistoryEntry) string {
	var b strings.Builder
	b.WriteString(Header("History") + "\n")
	for _, h := range entries {
		b.WriteString(fmt.Sprintf("%s  %s %s",
			Dim(HumanTimestamp(h.Timestamp)), Bold(h.Action), Dim("by "+h.Actor)))
		if h.Notes != "" {
			b.WriteString(Dim(" — " + h.Notes))
		}
		b.WriteString("\n")
	}
	return b.String()
}
