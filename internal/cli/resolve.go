package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolveContractID turns user input into a contract UUID. Matching order:
// exact short code (case-insensitive), exact UUID, then unique UUID prefix.
func resolveContractID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("contract ID is required")
	}

	summaries, err := app.Contracts.List(ctx, nil)
	if err != nil {
		return "", err
	}

	for _, s := range summaries {
		if strings.EqualFold(s.ShortCode, input) {
			return s.ID, nil
		}
	}

	for _, s := range summaries {
		if s.ID == input {
			return s.ID, nil
		}
	}

	var matches []string
	for _, s := range summaries {
		if strings.HasPrefix(s.ID, input) {
			matches = append(matches, s.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("contract not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("contract ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
