package domain

type ContractStatus string

const (
	StatusDraft             ContractStatus = "draft"
	StatusPendingReview     ContractStatus = "pending_review"
	StatusActive            ContractStatus = "active"
	StatusInProgress        ContractStatus = "in_progress"
	StatusPendingCompletion ContractStatus = "pending_completion"
	StatusCompleted         ContractStatus = "completed"
	StatusCancelled         ContractStatus = "cancelled"
)

type TrancheStatus string

const (
	TrancheNotPaid   TrancheStatus = "not_paid"
	TrancheRequested TrancheStatus = "requested"
	TranchePaid      TrancheStatus = "paid"
	TrancheCancelled TrancheStatus = "cancelled"
)

// Terminal reports whether no further tranche transitions are allowed.
func (s TrancheStatus) Terminal() bool {
	return s == TranchePaid || s == TrancheCancelled
}

type PaymentFrequency string

const (
	FrequencyMonthly PaymentFrequency = "monthly"
	FrequencyWeekly  PaymentFrequency = "weekly"
	FrequencyDaily   PaymentFrequency = "daily"
)

// ValidFrequencies is the canonical set of accepted frequency strings.
var ValidFrequencies = map[string]bool{
	"monthly": true, "weekly": true, "daily": true,
}

type PaymentType string

const (
	PaymentOneTime PaymentType = "one_time"
	PaymentPartial PaymentType = "partial"
)

type PartyRole string

const (
	RolePayer PartyRole = "payer"
	RolePayee PartyRole = "payee"
	RoleAdmin PartyRole = "admin"
)

type LifecycleEvent string

const (
	EventSendForReview     LifecycleEvent = "send_for_review"
	EventCounterpartySign  LifecycleEvent = "counterparty_sign"
	EventStart             LifecycleEvent = "start"
	EventRequestCompletion LifecycleEvent = "request_completion"
	EventConfirmCompletion LifecycleEvent = "confirm_completion"
	EventCancel            LifecycleEvent = "cancel"
)
