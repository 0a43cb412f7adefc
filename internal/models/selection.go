package models

// Selection outcomes. Only OutcomeSelected carries a recipient record; the
// other outcomes are expected steady states, not failures.
const (
	OutcomeSelected         = "selected"
	OutcomeNotSelectionDay  = "not_selection_day"
	OutcomeNoEligibleMember = "no_eligible_members"
	OutcomeAlreadyDrawn     = "already_drawn"
)

// SelectionResult is the tagged result of one invocation of the recipient
// selection routine.
type SelectionResult struct {
	Outcome   string     `json:"outcome"`
	Recipient *Recipient `json:"recipient,omitempty"`
}
