package domain

import "fmt"

// StatusTone classifies a status for display so badge rendering derives from
// this package instead of per-view switch statements.
type StatusTone string

const (
	ToneNeutral StatusTone = "neutral"
	ToneInfo    StatusTone = "info"
	ToneActive  StatusTone = "active"
	ToneSuccess StatusTone = "success"
	ToneDanger  StatusTone = "danger"
)

// StatusMeta carries everything derived from a contract status: display label,
// badge tone, stepper progress percentage, ordering, and terminality. Progress
// is a denormalized cache of this table, never an independent source of truth.
type StatusMeta struct {
	Label    string
	Tone     StatusTone
	Progress int
	Order    int
	Terminal bool
}

var statusMeta = map[ContractStatus]StatusMeta{
	StatusDraft:             {Label: "Draft", Tone: ToneNeutral, Progress: 25, Order: 0},
	StatusPendingReview:     {Label: "Pending Review", Tone: ToneInfo, Progress: 40, Order: 1},
	StatusActive:            {Label: "Active", Tone: ToneActive, Progress: 60, Order: 2},
	StatusInProgress:        {Label: "In Progress", Tone: ToneActive, Progress: 75, Order: 3},
	StatusPendingCompletion: {Label: "Pending Completion", Tone: ToneInfo, Progress: 90, Order: 4},
	StatusCompleted:         {Label: "Completed", Tone: ToneSuccess, Progress: 100, Order: 5, Terminal: true},
	StatusCancelled:         {Label: "Cancelled", Tone: ToneDanger, Progress: 0, Order: 6, Terminal: true},
}

// MetaFor returns the display/progress metadata for a status. Unknown statuses
// get a zero-valued neutral entry rather than a panic.
func MetaFor(s ContractStatus) StatusMeta {
	if m, ok := statusMeta[s]; ok {
		return m
	}
	return StatusMeta{Label: string(s), Tone: ToneNeutral}
}

// ProgressFor returns the derived progress percentage for a status.
func ProgressFor(s ContractStatus) int {
	return MetaFor(s).Progress
}

// IsTerminal reports whether s admits no further lifecycle transitions.
func (s ContractStatus) IsTerminal() bool {
	return MetaFor(s).Terminal
}

// Valid reports whether s is a known contract status.
func (s ContractStatus) Valid() bool {
	_, ok := statusMeta[s]
	return ok
}

// StepperStatuses lists the linear lifecycle stages in order, excluding the
// absorbing cancelled state. The presentation stepper renders exactly these.
var StepperStatuses = []ContractStatus{
	StatusDraft,
	StatusPendingReview,
	StatusActive,
	StatusInProgress,
	StatusPendingCompletion,
	StatusCompleted,
}

// lifecycleTransitions maps each event to its required source status and
// resulting status. Guards that need aggregate state (signatures, payment
// selection, confirmations, actor role) are enforced in Contract.Advance.
var lifecycleTransitions = map[LifecycleEvent]struct {
	from ContractStatus
	to   ContractStatus
}{
	EventSendForReview:     {from: StatusDraft, to: StatusPendingReview},
	EventCounterpartySign:  {from: StatusPendingReview, to: StatusActive},
	EventStart:             {from: StatusActive, to: StatusInProgress},
	EventRequestCompletion: {from: StatusInProgress, to: StatusPendingCompletion},
	EventConfirmCompletion: {from: StatusPendingCompletion, to: StatusCompleted},
}

// NextStatus resolves the target status for an event fired from the given
// status. EventCancel is valid from any non-terminal status.
func NextStatus(from ContractStatus, event LifecycleEvent) (ContractStatus, error) {
	if event == EventCancel {
		if from.IsTerminal() {
			return "", fmt.Errorf("%w: cannot cancel a %s contract", ErrInvalidTransition, from)
		}
		return StatusCancelled, nil
	}
	t, ok := lifecycleTransitions[event]
	if !ok {
		return "", fmt.Errorf("%w: unknown event %q", ErrValidation, event)
	}
	if from != t.from {
		return "", fmt.Errorf("%w: %s requires status %s, contract is %s", ErrInvalidTransition, event, t.from, from)
	}
	return t.to, nil
}
