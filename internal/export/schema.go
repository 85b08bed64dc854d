package export

import (
	"encoding/json"
	"fmt"
	"os"
)

// ContractDocument is the top-level JSON structure for contract export and
// import. Dates are YYYY-MM-DD, timestamps RFC3339, money amounts decimal
// strings.
type ContractDocument struct {
	Contract ContractSection `json:"contract"`
	Payment  PaymentSection  `json:"payment"`
	History  []HistoryRecord `json:"history,omitempty"`
}

// ContractSection holds the lifecycle state, parties and terms.
type ContractSection struct {
	ID             string        `json:"id,omitempty"`
	ShortCode      string        `json:"short_code,omitempty"`
	Status         string        `json:"status"`
	Progress       int           `json:"progress"`
	From           PartyRecord   `json:"from"`
	To             PartyRecord   `json:"to"`
	Details        DetailsRecord `json:"details"`
	PayerConfirmed bool          `json:"payer_confirmed,omitempty"`
	PayeeConfirmed bool          `json:"payee_confirmed,omitempty"`
	CreatedAt      string        `json:"created_at,omitempty"`
	UpdatedAt      string        `json:"updated_at,omitempty"`
}

type PartyRecord struct {
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	Organization string `json:"organization,omitempty"`
	Address      string `json:"address,omitempty"`
	Signature    string `json:"signature,omitempty"`
}

type DetailsRecord struct {
	PlaceOfService    string `json:"place_of_service,omitempty"`
	StartDate         string `json:"start_date"`
	EndDate           string `json:"end_date"`
	Rate              string `json:"rate,omitempty"`
	MealsIncluded     bool   `json:"meals_included,omitempty"`
	AdditionalDetails string `json:"additional_details,omitempty"`
}

// PaymentSection holds the plan: totals, fees, method selection, schedules.
type PaymentSection struct {
	Currency          string           `json:"currency"`
	TotalPayable      string           `json:"total_payable"`
	TotalReceivable   string           `json:"total_receivable"`
	FeeFromPayer      string           `json:"fee_from_payer"`
	FeeFromPayee      string           `json:"fee_from_payee"`
	SelectedType      string           `json:"selected_type,omitempty"`
	SelectedFrequency string           `json:"selected_frequency,omitempty"`
	Schedules         []ScheduleRecord `json:"schedules,omitempty"`
}

type ScheduleRecord struct {
	Frequency string          `json:"frequency"`
	Tranches  []TrancheRecord `json:"tranches"`
}

type TrancheRecord struct {
	DueDate     string  `json:"due_date"`
	Amount      string  `json:"amount"`
	Status      string  `json:"status,omitempty"`
	RequestDate *string `json:"request_date,omitempty"`
	PaymentDate *string `json:"payment_date,omitempty"`
}

type HistoryRecord struct {
	ID        string `json:"id,omitempty"`
	Timestamp string `json:"timestamp"`
	Action    string `json:"action"`
	Actor     string `json:"actor"`
	Notes     string `json:"notes,omitempty"`
}

// LoadDocument reads and parses a contract JSON file.
func LoadDocument(path string) (*ContractDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc ContractDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing contract file: %w", err)
	}
	return &doc, nil
}

// WriteDocument writes the document as indented JSON. An empty path writes
// to stdout.
func WriteDocument(doc *ContractDocument, path string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding contract: %w", err)
	}
	data = append(data, '\n')
	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644)
}
